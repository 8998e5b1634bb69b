package alloc

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/verify"
	"github.com/joshuapare/heapkit/internal/format"
)

// maxAllocSize bounds a single request so page rounding cannot overflow.
const maxAllocSize = 1 << 30

// Allocator is a first-fit allocator over the region of one page provider.
//
// The free list is singly linked through the in-band headers and kept in
// ascending address order. The head lives in the Allocator, so allocators
// over distinct providers are independent.
type Allocator struct {
	p   heap.Provider
	cfg Config
	log *zap.Logger
	mu  sync.Locker

	head  Block
	ready bool

	// Statistics for testing and instrumentation
	stats Stats
}

// New creates an allocator over p. A nil cfg uses DefaultConfig.
// The heap is empty until Init is called.
func New(p heap.Provider, cfg *Config) (*Allocator, error) {
	if p == nil {
		return nil, errors.New("alloc: nil provider")
	}
	c := DefaultConfig
	if cfg != nil {
		c = *cfg
	}
	c = c.normalized()

	return &Allocator{
		p:    p,
		cfg:  c,
		log:  newLogger(c.Logger),
		mu:   newLocker(c.Concurrent),
		head: NoBlock,
	}, nil
}

// Init requests the initial pages from the provider and seeds the free list
// with a single block spanning them.
func (a *Allocator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ready {
		return ErrAlreadyInitialized
	}
	b, err := a.extend(a.cfg.InitialPages*format.PageSize - format.HeaderSize)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	a.head = b
	a.ready = true
	return nil
}

// Alloc reserves at least n bytes and returns the payload pointer together
// with a slice of length n over the payload. n is rounded up to the
// alignment; a zero request still receives one alignment unit.
//
// When no free block fits, the heap is extended by whole pages. If the
// provider is exhausted, ErrOutOfMemory is returned and the heap is left
// exactly as it was.
func (a *Allocator) Alloc(n int) (Ptr, []byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ready {
		return Nil, nil, ErrNotInitialized
	}
	if n < 0 || n > maxAllocSize {
		return Nil, nil, fmt.Errorf("%w: %d", ErrBadSize, n)
	}
	a.stats.AllocCalls++

	size := format.Align16(max(n, 1))

	b := a.findFit(size)
	if b != NoBlock {
		a.stats.AllocFastPath++
	} else {
		nb, err := a.extend(size)
		if err != nil {
			return Nil, nil, err
		}
		a.insert(nb)
		b = nb
		a.stats.AllocSlowPath++
	}

	b = a.split(b, size)
	a.stats.BytesAllocated += int64(a.size(b))

	return payloadOf(b), a.payload(b)[:n], nil
}

// Free returns the block behind p to the free list and merges it with any
// physically adjacent free neighbors.
//
// Freeing a block that is not currently allocated returns ErrDoubleRelease
// and leaves the heap untouched. Pointers that cannot address a block in
// this heap return ErrBadPointer. Other pointers not obtained from Alloc are
// not detected.
func (a *Allocator) Free(p Ptr) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ready {
		return ErrNotInitialized
	}
	a.stats.FreeCalls++

	b, err := a.lookup(p)
	if err != nil {
		return err
	}
	if !a.isAllocated(b) {
		a.stats.DoubleReleases++
		a.log.Warn("double release", zap.Int("ptr", int(p)), zap.Int("block", int(b)))
		return fmt.Errorf("%w: payload %d", ErrDoubleRelease, p)
	}

	size := a.size(b)
	a.markFree(b)
	a.stats.BytesFreed += int64(size)

	prev := a.insert(b)
	if a.size(a.coalesce(b)) != size {
		a.stats.CoalesceRight++
	}
	// One merge per side suffices: the block beyond a merged neighbor was
	// never adjacent to b.
	if prev != NoBlock {
		before := a.size(prev)
		if a.size(a.coalesce(prev)) != before {
			a.stats.CoalesceLeft++
		}
	}
	return nil
}

// Bytes returns the full payload of the allocated block behind p.
func (a *Allocator) Bytes(p Ptr) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	b, err := a.lookupAllocated(p)
	if err != nil {
		return nil, err
	}
	return a.payload(b), nil
}

// Size returns the payload size of the allocated block behind p, which may
// exceed the size originally requested.
func (a *Allocator) Size(p Ptr) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	b, err := a.lookupAllocated(p)
	if err != nil {
		return 0, err
	}
	return a.size(b), nil
}

// CheckHeap validates the free list and returns 0 when it is consistent,
// or one of the verify.Code* values otherwise.
func (a *Allocator) CheckHeap() int {
	return verify.Code(a.Verify())
}

// Verify validates the free list and returns the first violation found.
func (a *Allocator) Verify() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return verify.FreeList(a.p.Bytes(), int(a.head))
}

// lookup maps a payload pointer to its block, rejecting pointers whose
// header cannot lie inside the heap.
func (a *Allocator) lookup(p Ptr) (Block, error) {
	data := a.p.Bytes()
	off := int(p)
	if off < format.HeaderSize || off >= len(data) || !format.IsAligned(off) {
		return NoBlock, fmt.Errorf("%w: %d outside heap of %d bytes", ErrBadPointer, off, len(data))
	}

	b := blockOf(p)
	size, _ := format.ReadHeader(data, int(b))
	if size <= 0 || !format.IsAligned(size) || size > len(data)-off {
		return NoBlock, fmt.Errorf("%w: %d has corrupt header (size %d)", ErrBadPointer, off, size)
	}
	return b, nil
}

func (a *Allocator) lookupAllocated(p Ptr) (Block, error) {
	if !a.ready {
		return NoBlock, ErrNotInitialized
	}
	b, err := a.lookup(p)
	if err != nil {
		return NoBlock, err
	}
	if !a.isAllocated(b) {
		return NoBlock, fmt.Errorf("%w: payload %d is free", ErrBadPointer, p)
	}
	return b, nil
}

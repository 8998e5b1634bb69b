package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// ============================================================================
// Block accessors
// ============================================================================
//
// Every accessor takes a block reference and reads or writes its in-band
// header. A reference that does not address a full header inside the heap
// is a contract breach and panics with ErrInvalidBlock.

// assertBlock returns the heap bytes after checking that b addresses a header.
func (a *Allocator) assertBlock(b Block) []byte {
	data := a.p.Bytes()
	if b < 0 || int(b) > len(data)-format.HeaderSize {
		panic(fmt.Errorf("%w: %d (heap is %d bytes)", ErrInvalidBlock, b, len(data)))
	}
	return data
}

func (a *Allocator) isAllocated(b Block) bool {
	_, allocated := format.ReadHeader(a.assertBlock(b), int(b))
	return allocated
}

func (a *Allocator) markAllocated(b Block) {
	data := a.assertBlock(b)
	size, _ := format.ReadHeader(data, int(b))
	format.PutHeader(data, int(b), size, true)
}

func (a *Allocator) markFree(b Block) {
	data := a.assertBlock(b)
	size, _ := format.ReadHeader(data, int(b))
	format.PutHeader(data, int(b), size, false)
}

func (a *Allocator) size(b Block) int {
	size, _ := format.ReadHeader(a.assertBlock(b), int(b))
	return size
}

func (a *Allocator) next(b Block) Block {
	return Block(format.ReadNext(a.assertBlock(b), int(b)))
}

func (a *Allocator) setNext(b, next Block) {
	format.PutNext(a.assertBlock(b), int(b), int(next))
}

// formatBlock writes the size word of b. The free-list link is left alone.
func (a *Allocator) formatBlock(b Block, size int, allocated bool) {
	if size <= 0 || !format.IsAligned(size) {
		panic(fmt.Errorf("%w: size %d at %d is not a positive multiple of %d",
			ErrInvalidBlock, size, b, format.Alignment))
	}
	format.PutHeader(a.assertBlock(b), int(b), size, allocated)
}

// end returns the first byte past the payload of b.
func (a *Allocator) end(b Block) int {
	return format.BlockEnd(int(b), a.size(b))
}

// payload returns the payload bytes of b, capped so appends cannot spill
// into the next header.
func (a *Allocator) payload(b Block) []byte {
	data := a.assertBlock(b)
	size, _ := format.ReadHeader(data, int(b))
	start := int(b) + format.HeaderSize
	return data[start : start+size : start+size]
}

func payloadOf(b Block) Ptr {
	return Ptr(int(b) + format.HeaderSize)
}

func blockOf(p Ptr) Block {
	return Block(int(p) - format.HeaderSize)
}

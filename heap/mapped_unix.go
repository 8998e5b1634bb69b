//go:build linux || darwin

package heap

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Mapped is a Provider backed by an anonymous private mapping. The whole
// limit is reserved as address space up front; Extend advances a break
// pointer and the kernel supplies zero pages on first touch.
type Mapped struct {
	mem     []byte
	brk     int
	extents int
}

// NewMapped reserves limit bytes (rounded down to whole pages) of address space.
// A zero limit selects DefaultLimit.
func NewMapped(limit int) (*Mapped, error) {
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	mem, err := unix.Mmap(-1, 0, limit, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("heap: mmap %d bytes: %w", limit, err)
	}
	return &Mapped{mem: mem}, nil
}

// Extend moves the break forward by n bytes.
func (m *Mapped) Extend(n int) (int, error) {
	if m.mem == nil {
		return 0, ErrClosed
	}
	off := m.brk
	if err := checkExtent(off, n, len(m.mem)); err != nil {
		return 0, err
	}
	m.brk += n
	m.extents++
	return off, nil
}

// Bytes returns the mapped bytes below the break.
func (m *Mapped) Bytes() []byte {
	if m.mem == nil {
		return nil
	}
	return m.mem[:m.brk]
}

// Limit returns the size of the reservation.
func (m *Mapped) Limit() int { return len(m.mem) }

// Extents returns the number of successful Extend calls.
func (m *Mapped) Extents() int { return m.extents }

// Close unmaps the reservation. Slices previously obtained from Bytes must
// not be used afterwards. Closing twice is a no-op.
func (m *Mapped) Close() error {
	if m.mem == nil {
		return nil
	}
	err := unix.Munmap(m.mem)
	m.mem = nil
	m.brk = 0
	if errors.Is(err, unix.EINVAL) {
		return nil
	}
	return err
}

// Compile-time interface check
var _ Provider = (*Mapped)(nil)

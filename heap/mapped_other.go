//go:build !linux && !darwin

package heap

// Mapped falls back to a slice-backed region where anonymous mmap is not used.
type Mapped struct {
	a *Arena
}

// NewMapped creates a Mapped provider of up to limit bytes.
func NewMapped(limit int) (*Mapped, error) {
	a, err := NewArena(limit)
	if err != nil {
		return nil, err
	}
	return &Mapped{a: a}, nil
}

// Extend grows the region by n bytes.
func (m *Mapped) Extend(n int) (int, error) {
	if m.a == nil {
		return 0, ErrClosed
	}
	return m.a.Extend(n)
}

// Bytes returns the region handed out so far.
func (m *Mapped) Bytes() []byte {
	if m.a == nil {
		return nil
	}
	return m.a.Bytes()
}

// Limit returns the maximum size of the region.
func (m *Mapped) Limit() int {
	if m.a == nil {
		return 0
	}
	return m.a.Limit()
}

// Extents returns the number of successful Extend calls.
func (m *Mapped) Extents() int {
	if m.a == nil {
		return 0
	}
	return m.a.Extents()
}

// Close drops the region.
func (m *Mapped) Close() error {
	m.a = nil
	return nil
}

// Compile-time interface check
var _ Provider = (*Mapped)(nil)

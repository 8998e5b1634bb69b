package heap

import "fmt"

// Provider names accepted by Open.
const (
	KindArena  = "arena"
	KindMapped = "mmap"
)

// Open creates a provider by name and returns it with a cleanup function.
// The cleanup function is never nil.
func Open(kind string, limit int) (Provider, func() error, error) {
	switch kind {
	case "", KindArena:
		a, err := NewArena(limit)
		if err != nil {
			return nil, func() error { return nil }, err
		}
		return a, func() error { return nil }, nil
	case KindMapped:
		m, err := NewMapped(limit)
		if err != nil {
			return nil, func() error { return nil }, err
		}
		return m, m.Close, nil
	default:
		return nil, func() error { return nil }, fmt.Errorf("%w: %q", ErrUnknownProvider, kind)
	}
}

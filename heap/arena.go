package heap

// Arena is a slice-backed Provider. Its full capacity is reserved when it is
// created so the backing array never moves: payload slices handed out by an
// allocator remain valid while the arena grows.
type Arena struct {
	data    []byte
	limit   int
	extents int
}

// NewArena creates an Arena that can grow up to limit bytes (rounded down to
// whole pages). A zero limit selects DefaultLimit.
func NewArena(limit int) (*Arena, error) {
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	return &Arena{
		data:  make([]byte, 0, limit),
		limit: limit,
	}, nil
}

// Extend appends n zero bytes to the region.
func (a *Arena) Extend(n int) (int, error) {
	off := len(a.data)
	if err := checkExtent(off, n, a.limit); err != nil {
		return 0, err
	}
	// Bytes past len were zeroed by make and are never written before this point.
	a.data = a.data[:off+n]
	a.extents++
	return off, nil
}

// Bytes returns the region handed out so far.
func (a *Arena) Bytes() []byte { return a.data }

// Limit returns the maximum size of the region.
func (a *Arena) Limit() int { return a.limit }

// Extents returns the number of successful Extend calls.
func (a *Arena) Extents() int { return a.extents }

// Compile-time interface check
var _ Provider = (*Arena)(nil)

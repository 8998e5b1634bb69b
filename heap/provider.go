package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Provider is the page provider contract consumed by the allocator.
type Provider interface {
	// Extend grows the region by n bytes and returns the offset of the new
	// bytes. n must be a positive multiple of format.PageSize. The new bytes
	// are zero-filled. Returns ErrExhausted when the host is out of memory;
	// the region is unchanged in that case.
	Extend(n int) (int, error)

	// Bytes returns the whole region handed out so far.
	Bytes() []byte
}

// DefaultLimit is the reservation used when a caller passes a zero limit.
const DefaultLimit = 64 << 20

// checkExtent validates an Extend request against the current break and limit.
func checkExtent(brk, n, limit int) error {
	if n <= 0 || !format.IsPageAligned(n) {
		return fmt.Errorf("%w: %d bytes", ErrBadExtent, n)
	}
	if n > limit-brk {
		return fmt.Errorf("%w: need %d bytes, %d of %d in use", ErrExhausted, n, brk, limit)
	}
	return nil
}

// normalizeLimit rounds limit down to whole pages, substituting DefaultLimit for zero.
func normalizeLimit(limit int) (int, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	limit &^= format.PageMask
	if limit < format.PageSize {
		return 0, fmt.Errorf("%w: limit below one page", ErrBadExtent)
	}
	return limit, nil
}

package heap

import "errors"

var (
	// ErrExhausted indicates the provider cannot hand out any more memory.
	ErrExhausted = errors.New("heap: provider exhausted")

	// ErrBadExtent indicates a request that is not a positive whole number of pages.
	ErrBadExtent = errors.New("heap: extent must be a positive multiple of the page size")

	// ErrClosed indicates use of a provider after Close.
	ErrClosed = errors.New("heap: provider closed")

	// ErrUnknownProvider indicates an unrecognized provider name passed to Open.
	ErrUnknownProvider = errors.New("heap: unknown provider")
)

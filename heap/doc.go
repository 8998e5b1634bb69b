// Package heap provides page providers: coarse-grained sources of fresh,
// zero-filled memory that an allocator carves into blocks.
//
// # Provider Contract
//
// A Provider hands out memory in whole pages (4KB). Each Extend call returns
// the offset of a new region that directly follows the previous one, so the
// managed heap is always a single contiguous byte range starting at offset 0:
//
//	off, err := p.Extend(3 * format.PageSize)
//	if errors.Is(err, heap.ErrExhausted) {
//	    // host is out of memory
//	}
//	region := p.Bytes()[off:]
//
// Memory is never returned to the provider.
//
// # Implementations
//
// Arena: a Go byte slice whose capacity is reserved up front
//
//   - Works on every platform
//   - Payload slices taken from Bytes() stay valid across Extend calls
//
// Mapped: an anonymous mmap reservation (linux and darwin)
//
//   - Address space is reserved once, pages are committed lazily by the OS
//   - Extend only advances a break pointer, like sbrk
//   - Close unmaps the reservation
//
// On other platforms Mapped falls back to an Arena.
//
// # Thread Safety
//
// Providers are not thread-safe. An alloc.Allocator created with
// Config.Concurrent serializes its own calls into the provider.
package heap

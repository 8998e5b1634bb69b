// Package verify provides read-only consistency checks for an allocator heap.
//
// # Overview
//
// FreeList walks the address-ordered free list once from its head and
// checks, for every visited block:
//   - the header address and payload size are multiples of format.Alignment
//   - each link points to a strictly greater address than the current block
//   - consecutive free blocks do not overlap
//   - the block is not flagged as allocated
//   - the header and payload lie inside the heap
//
// It does not prove that every free block is reachable from the list, nor
// that every allocated block is absent from it; that needs knowledge of the
// whole heap. Blocks performs that heavier walk: it tiles the heap from offset
// 0 block by block and cross-checks the free list against the allocated flags.
// Blocks assumes the heap was carved exclusively by one allocator.
//
// # ValidationError
//
// All checks return *ValidationError on failure:
//
//	err := verify.FreeList(data, head)
//	var verr *verify.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Printf("%s at 0x%X: %s\n", verr.Type, verr.Offset, verr.Message)
//	}
//
// Code maps an error to the nonzero status reported by Allocator.CheckHeap.
package verify

package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Block is the byte offset of a block header inside the heap.
type Block int

// Ptr is the byte offset of a block's payload inside the heap. Payloads
// always start after a header, so the zero Ptr never refers to a block.
type Ptr int

const (
	// NoBlock is the empty block reference. Offset 0 is a valid block.
	NoBlock Block = format.NoOffset

	// Nil is the Ptr returned alongside an error.
	Nil Ptr = 0
)

// BlockInfo describes one free block.
type BlockInfo struct {
	Offset Block `json:"offset"`
	Size   int   `json:"size"`
}

// Package format describes the in-band block layout shared by the allocator
// and the heap validator. Everything here operates on raw heap bytes and
// offsets into them; no package above it touches header words directly.
package format

const (
	// Alignment is the granularity of every block address and payload size.
	// Both are multiples of it, which leaves the low bits of the size word
	// free for flags.
	Alignment = 16

	// AlignmentMask is Alignment - 1.
	AlignmentMask = Alignment - 1

	// HeaderSize is the number of bytes preceding every payload.
	//
	// Header layout (little-endian):
	//
	//	Offset  Size  Description
	//	0x00    8     Payload size in bytes. Bit 0 is the allocated flag.
	//	0x08    8     Offset of the next free block, or NoOffset.
	HeaderSize = 16

	// SizeWordOffset is the offset of the size/flag word within a header.
	SizeWordOffset = 0x00

	// NextWordOffset is the offset of the free-list link within a header.
	NextWordOffset = 0x08

	// AllocatedBit marks a block as handed out to a caller.
	AllocatedBit = 0x1

	// NoOffset terminates the free list.
	NoOffset = -1

	// PageSize is the unit in which memory is requested from a page provider.
	PageSize = 0x1000

	// PageMask is PageSize - 1.
	PageMask = PageSize - 1

	// MinSplitRemainder is the smallest leftover worth carving into its own
	// free block: one header plus one alignment unit of payload.
	MinSplitRemainder = HeaderSize + Alignment
)

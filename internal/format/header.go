package format

// ReadHeader decodes the size/flag word of the block header at off.
// The size is returned with only the allocated bit stripped, so a corrupted
// word shows up as a misaligned size rather than being silently masked.
func ReadHeader(b []byte, off int) (size int, allocated bool) {
	w := ReadU64(b, off+SizeWordOffset)
	return int(w &^ AllocatedBit), w&AllocatedBit != 0
}

// PutHeader encodes size and the allocated flag into the header at off.
// The free-list link is left untouched.
func PutHeader(b []byte, off, size int, allocated bool) {
	w := uint64(size)
	if allocated {
		w |= AllocatedBit
	}
	PutU64(b, off+SizeWordOffset, w)
}

// ReadNext returns the free-list link stored in the header at off.
func ReadNext(b []byte, off int) int {
	return int(ReadI64(b, off+NextWordOffset))
}

// PutNext stores the free-list link in the header at off.
func PutNext(b []byte, off, next int) {
	PutI64(b, off+NextWordOffset, int64(next))
}

// BlockEnd returns the first byte past the payload of a block at off.
func BlockEnd(off, size int) int {
	return off + HeaderSize + size
}

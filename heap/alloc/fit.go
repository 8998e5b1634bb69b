package alloc

// findFit returns the first free block in address order whose payload is at
// least size bytes, or NoBlock.
func (a *Allocator) findFit(size int) Block {
	for b := a.head; b != NoBlock; b = a.next(b) {
		if a.size(b) >= size {
			return b
		}
	}
	return NoBlock
}

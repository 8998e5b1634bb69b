package alloc

import "fmt"

// prev returns the free block whose link points at b, or NoBlock when b is
// the head. b must be on the free list.
func (a *Allocator) prev(b Block) Block {
	if a.head == b {
		return NoBlock
	}
	for cur := a.head; cur != NoBlock; cur = a.next(cur) {
		if a.next(cur) == b {
			return cur
		}
	}
	panic(fmt.Errorf("%w: %d is not on the free list", ErrInvalidBlock, b))
}

// unlink removes b from the free list.
func (a *Allocator) unlink(b Block) {
	p, nxt := a.prev(b), a.next(b)
	if p == NoBlock {
		a.head = nxt
	} else {
		a.setNext(p, nxt)
	}
	a.setNext(b, NoBlock)
}

// insert links b at its address-ordered position and returns the block that
// now precedes it, or NoBlock when b became the head.
func (a *Allocator) insert(b Block) Block {
	p, cur := NoBlock, a.head
	for cur != NoBlock && cur < b {
		p, cur = cur, a.next(cur)
	}
	a.setNext(b, cur)
	if p == NoBlock {
		a.head = b
	} else {
		a.setNext(p, b)
	}
	return p
}

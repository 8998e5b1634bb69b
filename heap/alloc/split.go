package alloc

import (
	"go.uber.org/zap"

	"github.com/joshuapare/heapkit/internal/format"
)

// split hands out size bytes from the free block b and returns b, now
// allocated and off the free list.
//
// When the leftover could not hold a header plus one alignment unit, the
// whole block is handed out at its full size. Otherwise the tail becomes a
// new free block that takes b's place in the list, which keeps the list
// address-ordered without a re-insert.
func (a *Allocator) split(b Block, size int) Block {
	total := a.size(b)
	if total-size < format.MinSplitRemainder {
		a.unlink(b)
		a.markAllocated(b)
		a.stats.WholeFits++
		return b
	}

	// Read the links before any header is rewritten.
	p, nxt := a.prev(b), a.next(b)

	rem := Block(int(b) + format.HeaderSize + size)
	a.formatBlock(rem, total-size-format.HeaderSize, false)
	a.setNext(rem, nxt)
	if p == NoBlock {
		a.head = rem
	} else {
		a.setNext(p, rem)
	}

	a.formatBlock(b, size, true)
	a.setNext(b, NoBlock)
	a.stats.Splits++

	if ce := a.log.Check(zap.DebugLevel, "split"); ce != nil {
		ce.Write(zap.Int("block", int(b)), zap.Int("size", size),
			zap.Int("remainder", int(rem)), zap.Int("remainder_size", total-size-format.HeaderSize))
	}
	return b
}

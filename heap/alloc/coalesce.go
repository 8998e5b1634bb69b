package alloc

import (
	"go.uber.org/zap"

	"github.com/joshuapare/heapkit/internal/format"
)

// coalesce merges the free block b with the free block that follows it on
// the list when the two are physically adjacent, and returns b.
//
// Only the forward neighbor is examined. Callers merge the left side by
// calling coalesce on the predecessor.
func (a *Allocator) coalesce(b Block) Block {
	nxt := a.next(b)
	if nxt == NoBlock || int(nxt) != a.end(b) {
		return b
	}

	// nxt's header becomes payload; take its link first.
	after := a.next(nxt)
	merged := a.end(nxt) - int(b) - format.HeaderSize
	a.formatBlock(b, merged, false)
	a.setNext(b, after)

	if ce := a.log.Check(zap.DebugLevel, "coalesce"); ce != nil {
		ce.Write(zap.Int("block", int(b)), zap.Int("absorbed", int(nxt)), zap.Int("size", merged))
	}
	return b
}

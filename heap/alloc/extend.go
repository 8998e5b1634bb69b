package alloc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/joshuapare/heapkit/internal/format"
)

// extend requests enough whole pages from the provider to hold a payload of
// minSize bytes and formats them as a single free block. The block is not
// linked into the free list. On failure nothing is modified.
func (a *Allocator) extend(minSize int) (Block, error) {
	rounded := format.AlignPage(minSize + format.HeaderSize)
	if rounded <= 0 {
		return NoBlock, fmt.Errorf("%w: request of %d bytes overflows", ErrOutOfMemory, minSize)
	}

	off, err := a.p.Extend(rounded)
	if err != nil {
		a.log.Debug("extend failed", zap.Int("bytes", rounded), zap.Error(err))
		return NoBlock, fmt.Errorf("%w: extend by %d bytes: %w", ErrOutOfMemory, rounded, err)
	}
	if !format.IsAligned(off) || off < 0 || off+rounded > len(a.p.Bytes()) {
		return NoBlock, fmt.Errorf("%w: offset %d for %d bytes", ErrMisalignedExtent, off, rounded)
	}

	b := Block(off)
	a.formatBlock(b, rounded-format.HeaderSize, false)
	a.setNext(b, NoBlock)

	a.stats.ExtendCalls++
	a.stats.ExtendBytes += int64(rounded)
	a.log.Debug("extend",
		zap.Int("offset", off),
		zap.Int("bytes", rounded),
		zap.Int("heap", len(a.p.Bytes())))
	return b, nil
}

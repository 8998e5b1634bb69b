package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

// Test_Split_RemainderTakesListPosition checks the split of the initial block.
func Test_Split_RemainderTakesListPosition(t *testing.T) {
	a, _ := newTestAllocator(t)

	p := mustAlloc(t, a, 100)
	assert.Equal(t, Ptr(16), p)

	b := blockOf(p)
	assert.Equal(t, 112, a.size(b))
	assert.True(t, a.isAllocated(b))

	assert.Equal(t, []BlockInfo{{Offset: 128, Size: initialFree - 112 - format.HeaderSize}}, freeList(a))
	assert.Equal(t, 1, a.Stats().Splits)
	requireHeapValid(t, a)
}

// Test_Split_MiddleOfList splits a block that has both a predecessor and a successor.
func Test_Split_MiddleOfList(t *testing.T) {
	a, _ := newTestAllocator(t)

	first := mustAlloc(t, a, 16)   // block 0
	_ = mustAlloc(t, a, 16)        // block 32, guard
	second := mustAlloc(t, a, 128) // block 64
	_ = mustAlloc(t, a, 16)        // block 208, guard
	require.NoError(t, a.Free(first))
	require.NoError(t, a.Free(second))

	// List: [0(16), 64(128), 240(tail)]
	p := mustAlloc(t, a, 48)
	assert.Equal(t, payloadOf(64), p)

	got := freeList(a)
	require.Len(t, got, 3)
	assert.Equal(t, BlockInfo{Offset: 0, Size: 16}, got[0])
	assert.Equal(t, BlockInfo{Offset: 128, Size: 128 - 48 - format.HeaderSize}, got[1])
	assert.Equal(t, Block(240), got[2].Offset)
	requireHeapValid(t, a)
}

// Test_Split_WholeBlockBelowThreshold hands out the full block when the
// leftover could not hold a header plus one alignment unit.
func Test_Split_WholeBlockBelowThreshold(t *testing.T) {
	a, _ := newTestAllocator(t)

	x := mustAlloc(t, a, 64) // block 0
	_ = mustAlloc(t, a, 16)  // block 80, guard
	require.NoError(t, a.Free(x))
	require.Equal(t, []BlockInfo{{Offset: 0, Size: 64}, {Offset: 112, Size: initialFree - 112}}, freeList(a))

	// 64 - 48 = 16 < 32: no split.
	p := mustAlloc(t, a, 48)
	assert.Equal(t, x, p)
	size, err := a.Size(p)
	require.NoError(t, err)
	assert.Equal(t, 64, size)
	assert.Equal(t, 1, a.Stats().WholeFits)
	assert.Equal(t, []BlockInfo{{Offset: 112, Size: initialFree - 112}}, freeList(a))
	requireHeapValid(t, a)
}

// Test_Split_AtThreshold splits when the leftover is exactly one header plus 16.
func Test_Split_AtThreshold(t *testing.T) {
	a, _ := newTestAllocator(t)

	x := mustAlloc(t, a, 64)
	_ = mustAlloc(t, a, 16)
	require.NoError(t, a.Free(x))

	// 64 - 32 = 32: split into 32 + header + 16.
	p := mustAlloc(t, a, 32)
	assert.Equal(t, x, p)
	size, err := a.Size(p)
	require.NoError(t, err)
	assert.Equal(t, 32, size)
	assert.Equal(t, BlockInfo{Offset: 48, Size: 16}, freeList(a)[0])
	requireHeapValid(t, a)
}

package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

// Test_Coalesce_BothReleaseOrders allocates three adjacent blocks and releases
// the first two in either order. Both orders must leave one free block whose
// size is the sum of the two payloads plus one header.
func Test_Coalesce_BothReleaseOrders(t *testing.T) {
	for _, tc := range []struct {
		name  string
		order []int
	}{
		{"first_then_second", []int{0, 1}},
		{"second_then_first", []int{1, 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a, _ := newTestAllocator(t)

			ptrs := []Ptr{mustAlloc(t, a, 64), mustAlloc(t, a, 128), mustAlloc(t, a, 16)}
			for _, i := range tc.order {
				require.NoError(t, a.Free(ptrs[i]))
			}

			got := freeList(a)
			require.Len(t, got, 2)
			assert.Equal(t, BlockInfo{Offset: blockOf(ptrs[0]), Size: 64 + 128 + format.HeaderSize}, got[0])
			requireHeapValid(t, a)
		})
	}
}

// Test_Coalesce_ThreeWay releases the block between two free neighbors.
func Test_Coalesce_ThreeWay(t *testing.T) {
	a, _ := newTestAllocator(t)

	x := mustAlloc(t, a, 32)
	y := mustAlloc(t, a, 32)
	z := mustAlloc(t, a, 32)
	_ = mustAlloc(t, a, 16)

	require.NoError(t, a.Free(x))
	require.NoError(t, a.Free(z))
	require.Len(t, freeList(a), 3)

	require.NoError(t, a.Free(y))
	got := freeList(a)
	require.Len(t, got, 2)
	assert.Equal(t, BlockInfo{Offset: 0, Size: 3*32 + 2*format.HeaderSize}, got[0])

	st := a.Stats()
	assert.Equal(t, 1, st.CoalesceRight)
	assert.Equal(t, 1, st.CoalesceLeft)
	requireHeapValid(t, a)
}

// Test_Coalesce_NotAcrossAllocated keeps free blocks separated by a live block apart.
func Test_Coalesce_NotAcrossAllocated(t *testing.T) {
	a, _ := newTestAllocator(t)

	x := mustAlloc(t, a, 32)
	_ = mustAlloc(t, a, 32)
	z := mustAlloc(t, a, 32)
	_ = mustAlloc(t, a, 16)

	require.NoError(t, a.Free(x))
	require.NoError(t, a.Free(z))

	got := freeList(a)
	require.Len(t, got, 3)
	assert.Equal(t, 32, got[0].Size)
	assert.Equal(t, 32, got[1].Size)
	assert.Zero(t, a.Stats().CoalesceRight+a.Stats().CoalesceLeft)
}

// Test_Coalesce_IntoTail merges a released block with the free tail.
func Test_Coalesce_IntoTail(t *testing.T) {
	a, _ := newTestAllocator(t)

	p := mustAlloc(t, a, 100)
	require.NoError(t, a.Free(p))

	assert.Equal(t, []BlockInfo{{Offset: 0, Size: initialFree}}, freeList(a))
	requireHeapValid(t, a)
}

// Test_Coalesce_AcrossExtents merges blocks from separate provider extensions,
// which are contiguous.
func Test_Coalesce_AcrossExtents(t *testing.T) {
	a, p := newTestAllocator(t)

	first := mustAlloc(t, a, initialFree)
	second := mustAlloc(t, a, 100)
	require.Equal(t, 2, p.calls)

	require.NoError(t, a.Free(first))
	require.NoError(t, a.Free(second))

	assert.Equal(t, []BlockInfo{{Offset: 0, Size: a.HeapSize() - format.HeaderSize}}, freeList(a))
	requireHeapValid(t, a)
}

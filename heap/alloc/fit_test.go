package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_FindFit_FirstFitNotBestFit builds the list [0(256), 304(64), 416(tail)]
// and checks that the first sufficient block wins even when a tighter one exists.
func Test_FindFit_FirstFitNotBestFit(t *testing.T) {
	a, _ := newTestAllocator(t)

	big := mustAlloc(t, a, 256)  // block 0
	_ = mustAlloc(t, a, 16)      // block 272
	small := mustAlloc(t, a, 64) // block 304
	_ = mustAlloc(t, a, 16)      // block 384
	require.NoError(t, a.Free(big))
	require.NoError(t, a.Free(small))

	require.Equal(t, []BlockInfo{
		{Offset: 0, Size: 256},
		{Offset: 304, Size: 64},
		{Offset: 416, Size: initialFree - 416},
	}, freeList(a))

	assert.Equal(t, Block(0), a.findFit(48), "first fit takes the 256-byte block")
	assert.Equal(t, Block(0), a.findFit(256))
	assert.Equal(t, Block(416), a.findFit(257))
	assert.Equal(t, NoBlock, a.findFit(initialFree))
}

func Test_FindFit_EmptyList(t *testing.T) {
	a, _ := newTestAllocator(t)

	p := mustAlloc(t, a, initialFree)
	require.NotEqual(t, Nil, p)
	require.Equal(t, NoBlock, a.head)

	assert.Equal(t, NoBlock, a.findFit(16))
}

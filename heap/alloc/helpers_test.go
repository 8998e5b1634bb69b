package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/verify"
	"github.com/joshuapare/heapkit/internal/format"
)

// ============================================================================
// Test Helpers
// ============================================================================

// initialFree is the payload of the single block created by a default Init.
const initialFree = DefaultInitialPages*format.PageSize - format.HeaderSize

// countingProvider wraps an Arena, counts Extend calls and can be told to
// fail after a number of successful extensions.
type countingProvider struct {
	*heap.Arena
	calls     int
	failAfter int // 0 = never fail
}

func (c *countingProvider) Extend(n int) (int, error) {
	if c.failAfter > 0 && c.calls >= c.failAfter {
		return 0, heap.ErrExhausted
	}
	off, err := c.Arena.Extend(n)
	if err == nil {
		c.calls++
	}
	return off, err
}

// newTestProvider creates a counting provider over an arena of limit bytes.
func newTestProvider(t testing.TB, limit int) *countingProvider {
	t.Helper()

	arena, err := heap.NewArena(limit)
	require.NoError(t, err)
	return &countingProvider{Arena: arena}
}

// newTestAllocator returns an initialized allocator with the default
// configuration over a 1MB arena.
func newTestAllocator(t testing.TB) (*Allocator, *countingProvider) {
	t.Helper()

	p := newTestProvider(t, 1<<20)
	a, err := New(p, nil)
	require.NoError(t, err)
	require.NoError(t, a.Init())
	return a, p
}

// mustAlloc allocates n bytes and fails the test on error.
func mustAlloc(t testing.TB, a *Allocator, n int) Ptr {
	t.Helper()

	p, _, err := a.Alloc(n)
	require.NoError(t, err, "Alloc(%d)", n)
	return p
}

// requireHeapValid runs both the free-list validator and the full heap walk.
func requireHeapValid(t testing.TB, a *Allocator) {
	t.Helper()

	require.Equal(t, 0, a.CheckHeap(), "CheckHeap")
	require.NoError(t, verify.Blocks(a.p.Bytes(), int(a.head)), "full heap walk")
}

// freeList returns the free list as offset/size pairs.
func freeList(a *Allocator) []BlockInfo {
	return a.freeBlocks()
}

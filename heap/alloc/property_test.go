package alloc

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

type liveBlock struct {
	p    Ptr
	n    int
	fill byte
}

// Test_Property_RandomAllocFree performs random alloc/free and validates
// alignment, payload isolation, free-list order and the full heap tiling
// after every step.
func Test_Property_RandomAllocFree(t *testing.T) {
	for _, seed := range []int64{1, 42, 1337} {
		p := newTestProvider(t, 16<<20)
		a, err := New(p, nil)
		require.NoError(t, err)
		require.NoError(t, a.Init())

		rng := rand.New(rand.NewSource(seed)) // Fixed seed for reproducibility
		var live []liveBlock

		for i := range 2000 {
			if len(live) == 0 || rng.Intn(3) != 0 {
				n := rng.Intn(600)
				if rng.Intn(20) == 0 {
					n = 4000 + rng.Intn(8000)
				}
				ptr, buf, err := a.Alloc(n)
				require.NoError(t, err, "seed %d step %d: Alloc(%d)", seed, i, n)
				require.Zero(t, int(ptr)%format.Alignment)

				fill := byte(rng.Intn(255) + 1)
				for j := range buf {
					buf[j] = fill
				}
				live = append(live, liveBlock{p: ptr, n: n, fill: fill})
			} else {
				k := rng.Intn(len(live))
				require.NoError(t, a.Free(live[k].p), "seed %d step %d", seed, i)
				live[k] = live[len(live)-1]
				live = live[:len(live)-1]
			}

			requireHeapValid(t, a)
		}

		// Live payloads are disjoint and intact.
		sort.Slice(live, func(i, j int) bool { return live[i].p < live[j].p })
		for i, lb := range live {
			size, err := a.Size(lb.p)
			require.NoError(t, err)
			if i > 0 {
				prevSize, err := a.Size(live[i-1].p)
				require.NoError(t, err)
				require.LessOrEqual(t, int(live[i-1].p)+prevSize, int(lb.p)-format.HeaderSize)
			}
			buf, err := a.Bytes(lb.p)
			require.NoError(t, err)
			require.GreaterOrEqual(t, size, lb.n)
			for j := range lb.n {
				require.Equal(t, lb.fill, buf[j], "seed %d block 0x%X byte %d", seed, lb.p, j)
			}
		}

		// Release everything: the heap collapses to one free block.
		for _, lb := range live {
			require.NoError(t, a.Free(lb.p))
		}
		require.Equal(t, []BlockInfo{{Offset: 0, Size: a.HeapSize() - format.HeaderSize}}, freeList(a),
			"seed %d", seed)
		t.Logf("seed %d: %d extends, %d bytes", seed, p.calls, a.HeapSize())
	}
}

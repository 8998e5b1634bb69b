package alloc

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report summarizes heap usage and free-list fragmentation.
type Report struct {
	HeapBytes   int `json:"heap_bytes"`
	FreeBlocks  int `json:"free_blocks"`
	FreeBytes   int `json:"free_bytes"`
	LargestFree int `json:"largest_free"`

	// Fragmentation is 1 - LargestFree/FreeBytes: 0 when all free memory is
	// one block, approaching 1 as it scatters.
	Fragmentation float64 `json:"fragmentation"`

	// Free block size distribution. Zero when the free list is empty.
	MeanFree   float64 `json:"mean_free"`
	MedianFree float64 `json:"median_free"`
	P90Free    float64 `json:"p90_free"`

	Stats Stats `json:"stats"`
}

// Report walks the free list and returns a usage summary.
func (a *Allocator) Report() Report {
	a.mu.Lock()
	defer a.mu.Unlock()

	r := Report{
		HeapBytes: len(a.p.Bytes()),
		Stats:     a.stats,
	}

	blocks := a.freeBlocks()
	if len(blocks) == 0 {
		return r
	}

	sizes := make(stats.Float64Data, 0, len(blocks))
	for _, b := range blocks {
		r.FreeBytes += b.Size
		r.LargestFree = max(r.LargestFree, b.Size)
		sizes = append(sizes, float64(b.Size))
	}
	r.FreeBlocks = len(blocks)
	r.Fragmentation = 1 - float64(r.LargestFree)/float64(r.FreeBytes)

	// Errors are only returned for empty input, excluded above.
	r.MeanFree, _ = stats.Mean(sizes)
	r.MedianFree, _ = stats.Median(sizes)
	r.P90Free, _ = stats.Percentile(sizes, 90)
	return r
}

// Fprint writes a human-readable report to w.
func (r Report) Fprint(w io.Writer) error {
	p := message.NewPrinter(language.English)
	lines := []struct {
		format string
		args   []any
	}{
		{"Heap:            %s (%d bytes)\n", []any{humanize.IBytes(uint64(r.HeapBytes)), r.HeapBytes}},
		{"Extends:         %d\n", []any{r.Stats.ExtendCalls}},
		{"Free blocks:     %d\n", []any{r.FreeBlocks}},
		{"Free bytes:      %s (%d bytes)\n", []any{humanize.IBytes(uint64(r.FreeBytes)), r.FreeBytes}},
		{"Largest free:    %d bytes\n", []any{r.LargestFree}},
		{"Fragmentation:   %.2f%%\n", []any{r.Fragmentation * 100}},
		{"Free size mean:  %.1f  median: %.1f  p90: %.1f\n", []any{r.MeanFree, r.MedianFree, r.P90Free}},
		{"Allocs:          %d (fast %d, slow %d)\n", []any{r.Stats.AllocCalls, r.Stats.AllocFastPath, r.Stats.AllocSlowPath}},
		{"Frees:           %d (double releases %d)\n", []any{r.Stats.FreeCalls, r.Stats.DoubleReleases}},
		{"Splits:          %d  whole fits: %d\n", []any{r.Stats.Splits, r.Stats.WholeFits}},
		{"Coalesces:       right %d, left %d\n", []any{r.Stats.CoalesceRight, r.Stats.CoalesceLeft}},
	}
	for _, l := range lines {
		if _, err := p.Fprintf(w, l.format, l.args...); err != nil {
			return err
		}
	}
	return nil
}

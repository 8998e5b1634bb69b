package alloc

// Stats holds allocator counters.
type Stats struct {
	ExtendCalls    int   `json:"extend_calls"`    // Successful provider extensions, including Init
	ExtendBytes    int64 `json:"extend_bytes"`    // Total bytes obtained from the provider
	AllocCalls     int   `json:"alloc_calls"`     // Alloc calls with a valid size
	AllocFastPath  int   `json:"alloc_fast_path"` // Allocations served from the free list
	AllocSlowPath  int   `json:"alloc_slow_path"` // Allocations that extended the heap
	FreeCalls      int   `json:"free_calls"`      // Free calls after Init
	BytesAllocated int64 `json:"bytes_allocated"` // Payload bytes handed out
	BytesFreed     int64 `json:"bytes_freed"`     // Payload bytes returned
	Splits         int   `json:"splits"`          // Blocks split to serve a request
	WholeFits      int   `json:"whole_fits"`      // Blocks handed out whole
	CoalesceRight  int   `json:"coalesce_right"`  // Released blocks merged with the following block
	CoalesceLeft   int   `json:"coalesce_left"`   // Released blocks merged into the preceding block
	DoubleReleases int   `json:"double_releases"` // Free calls rejected as double release
}

// Stats returns a snapshot of the allocator counters.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// FreeBlocks returns the free list in list order.
func (a *Allocator) FreeBlocks() []BlockInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.freeBlocks()
}

func (a *Allocator) freeBlocks() []BlockInfo {
	var out []BlockInfo
	for b := a.head; b != NoBlock; b = a.next(b) {
		out = append(out, BlockInfo{Offset: b, Size: a.size(b)})
	}
	return out
}

// HeapSize returns the number of bytes obtained from the provider so far.
func (a *Allocator) HeapSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.p.Bytes())
}

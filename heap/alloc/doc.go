// Package alloc provides a first-fit free-list allocator over a heap.Provider.
//
// # Overview
//
// Every block in the heap starts with a 16-byte header holding the payload
// size, an allocated flag packed into the low bit of the size, and the offset
// of the next free block. Free blocks form a singly linked list kept in
// ascending address order; no metadata lives outside the managed bytes
// except the list head.
//
//	offset:  0        16                16+size
//	         +--------+-----------------+--------+------ ...
//	         | header | payload         | header | payload
//	         +--------+-----------------+--------+------ ...
//
// # Allocation
//
// Alloc rounds the request up to a multiple of 16 and walks the free list
// from the head, taking the first block that is large enough. If the
// leftover can hold a header plus 16 bytes it is split off as a new free
// block that takes over the split block's list position; otherwise the whole block
// is handed out.
//
// When nothing fits, the heap is extended by whole 4KB pages, the new region
// is linked into the list as one free block, and the request is served from
// it.
//
// # Release
//
// Free re-inserts the block at its address-ordered position and merges it
// with the following block and then with the preceding block when they are
// physically adjacent. Releasing a block twice returns ErrDoubleRelease.
//
// # Usage Example
//
//	arena, err := heap.NewArena(1 << 20)
//	if err != nil {
//	    return err
//	}
//	a, err := alloc.New(arena, nil)
//	if err != nil {
//	    return err
//	}
//	if err := a.Init(); err != nil {
//	    return err
//	}
//
//	p, buf, err := a.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	copy(buf, "hello")
//
//	err = a.Free(p)
//
// # Concurrency
//
// An Allocator is not safe for concurrent use unless it was created with
// Config.Concurrent, which serializes every method behind one mutex.
//
// # Debugging
//
// Set HEAP_LOG_ALLOC=1 to log extend, split, coalesce and double-release
// events to stderr, or pass a *zap.Logger in Config.
package alloc

package alloc

import "errors"

var (
	// ErrOutOfMemory indicates the page provider could not extend the heap.
	// The allocator state is unchanged when it is returned.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrDoubleRelease indicates Free on a block that is not allocated.
	ErrDoubleRelease = errors.New("alloc: block is not allocated")

	// ErrBadPointer indicates a payload pointer that cannot belong to this heap.
	ErrBadPointer = errors.New("alloc: bad payload pointer")

	// ErrBadSize indicates a negative or oversized allocation request.
	ErrBadSize = errors.New("alloc: bad allocation size")

	// ErrInvalidBlock is the panic value (wrapped) for a block reference that
	// does not address a header inside the heap.
	ErrInvalidBlock = errors.New("alloc: invalid block reference")

	// ErrMisalignedExtent indicates a provider returned memory at an offset
	// that is not a multiple of the alignment.
	ErrMisalignedExtent = errors.New("alloc: provider returned misaligned extent")

	// ErrNotInitialized indicates use of an allocator before Init.
	ErrNotInitialized = errors.New("alloc: allocator not initialized")

	// ErrAlreadyInitialized indicates a second call to Init.
	ErrAlreadyInitialized = errors.New("alloc: allocator already initialized")
)

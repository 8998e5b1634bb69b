package verify

import (
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Validation error types.
const (
	TypeMisaligned  = "Misaligned"
	TypeUnordered   = "Unordered"
	TypeOverlapping = "Overlapping"
	TypeAllocated   = "Allocated"
	TypeOutOfBounds = "OutOfBounds"
	TypeUnreachable = "Unreachable"
)

// ValidationError describes the first invariant violation found.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Status codes returned by Code.
const (
	CodeOK          = 0
	CodeMisaligned  = 1
	CodeUnordered   = 2
	CodeOverlapping = 3
	CodeAllocated   = 4
	CodeOutOfBounds = 5
	CodeUnreachable = 6
	CodeUnknown     = -1
)

// Code converts a validation result into a status: 0 for nil, a positive
// code per ValidationError type, CodeUnknown for anything else.
func Code(err error) int {
	if err == nil {
		return CodeOK
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return CodeUnknown
	}
	switch verr.Type {
	case TypeMisaligned:
		return CodeMisaligned
	case TypeUnordered:
		return CodeUnordered
	case TypeOverlapping:
		return CodeOverlapping
	case TypeAllocated:
		return CodeAllocated
	case TypeOutOfBounds:
		return CodeOutOfBounds
	case TypeUnreachable:
		return CodeUnreachable
	default:
		return CodeUnknown
	}
}

// FreeList validates the free list starting at head in a single pass.
// head may be format.NoOffset for an empty list.
func FreeList(data []byte, head int) error {
	prev, prevEnd := format.NoOffset, 0

	for cur := head; cur != format.NoOffset; cur = format.ReadNext(data, cur) {
		if cur < 0 || cur > len(data)-format.HeaderSize {
			return &ValidationError{
				Type:    TypeOutOfBounds,
				Message: fmt.Sprintf("free block header outside heap of %d bytes", len(data)),
				Offset:  cur,
				Details: map[string]interface{}{"prev": prev},
			}
		}
		if !format.IsAligned(cur) {
			return &ValidationError{
				Type:    TypeMisaligned,
				Message: fmt.Sprintf("block address not %d-byte aligned", format.Alignment),
				Offset:  cur,
			}
		}
		if prev != format.NoOffset {
			// Strict ordering also guarantees the walk terminates.
			if cur <= prev {
				return &ValidationError{
					Type:    TypeUnordered,
					Message: fmt.Sprintf("link from 0x%X does not ascend", prev),
					Offset:  cur,
					Details: map[string]interface{}{"prev": prev},
				}
			}
			if prevEnd > cur {
				return &ValidationError{
					Type:    TypeOverlapping,
					Message: fmt.Sprintf("previous free block at 0x%X ends at 0x%X", prev, prevEnd),
					Offset:  cur,
					Details: map[string]interface{}{"prev": prev, "prev_end": prevEnd},
				}
			}
		}

		size, allocated := format.ReadHeader(data, cur)
		if !format.IsAligned(size) {
			return &ValidationError{
				Type:    TypeMisaligned,
				Message: fmt.Sprintf("size %d not a multiple of %d", size, format.Alignment),
				Offset:  cur,
			}
		}
		if allocated {
			return &ValidationError{
				Type:    TypeAllocated,
				Message: "block on free list is marked allocated",
				Offset:  cur,
			}
		}
		if size < 0 || size > len(data)-cur-format.HeaderSize {
			return &ValidationError{
				Type:    TypeOutOfBounds,
				Message: fmt.Sprintf("payload of %d bytes runs past heap end 0x%X", size, len(data)),
				Offset:  cur,
			}
		}

		prev, prevEnd = cur, format.BlockEnd(cur, size)
	}

	return nil
}

// Blocks walks every block in the heap from offset 0 and checks that the
// blocks tile the heap exactly and that the free list holds precisely the
// blocks whose allocated flag is clear. FreeList is run first.
func Blocks(data []byte, head int) error {
	if err := FreeList(data, head); err != nil {
		return err
	}

	free := make(map[int]bool)
	pos := 0
	for pos < len(data) {
		if pos > len(data)-format.HeaderSize {
			return &ValidationError{
				Type:    TypeOutOfBounds,
				Message: fmt.Sprintf("trailing %d bytes too short for a header", len(data)-pos),
				Offset:  pos,
			}
		}
		size, allocated := format.ReadHeader(data, pos)
		if size <= 0 || !format.IsAligned(size) {
			return &ValidationError{
				Type:    TypeMisaligned,
				Message: fmt.Sprintf("size %d breaks block tiling", size),
				Offset:  pos,
			}
		}
		end := format.BlockEnd(pos, size)
		if size > len(data)-pos-format.HeaderSize {
			return &ValidationError{
				Type:    TypeOutOfBounds,
				Message: fmt.Sprintf("block ends at 0x%X past heap end 0x%X", end, len(data)),
				Offset:  pos,
			}
		}
		if !allocated {
			free[pos] = true
		}
		pos = end
	}

	for cur := head; cur != format.NoOffset; cur = format.ReadNext(data, cur) {
		if !free[cur] {
			return &ValidationError{
				Type:    TypeOverlapping,
				Message: "free list entry is not a block boundary",
				Offset:  cur,
			}
		}
		delete(free, cur)
	}
	for off := range free {
		return &ValidationError{
			Type:    TypeUnreachable,
			Message: "free block missing from free list",
			Offset:  off,
			Details: map[string]interface{}{"missing": len(free)},
		}
	}

	return nil
}

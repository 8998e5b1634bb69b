// Package trace parses and replays allocator workload scripts.
//
// A script is YAML:
//
//	name: coalesce
//	heap:
//	  provider: arena     # or mmap
//	  limit: 1MiB
//	  initial_pages: 3
//	ops:
//	  - alloc: a
//	    size: 64
//	  - alloc: b
//	    size: 128
//	  - free: a
//	  - free: b
//	  - check: true
//	  - free: a
//	    expect: double-release
//
// Each op does exactly one of alloc, free or check. Names bind payload
// pointers; a freed name keeps its pointer so a later release of it
// exercises double-release detection.
package trace

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

// DefaultLimit is the provider limit used when a script does not set one.
const DefaultLimit = 1 << 20

var (
	// ErrInvalidScript indicates a malformed script.
	ErrInvalidScript = errors.New("trace: invalid script")

	// ErrUnexpected indicates an op whose outcome differs from its expectation.
	ErrUnexpected = errors.New("trace: unexpected outcome")
)

// Expectation names accepted in an op's expect field.
var expectations = map[string]error{
	"out-of-memory":  alloc.ErrOutOfMemory,
	"double-release": alloc.ErrDoubleRelease,
	"bad-pointer":    alloc.ErrBadPointer,
	"bad-size":       alloc.ErrBadSize,
}

// Script is a named sequence of allocator operations.
type Script struct {
	Name string `yaml:"name"`
	Heap Heap   `yaml:"heap"`
	Ops  []Op   `yaml:"ops"`
}

// Heap selects the provider and allocator configuration for a script.
type Heap struct {
	Provider     string `yaml:"provider"`
	Limit        string `yaml:"limit"`
	InitialPages int    `yaml:"initial_pages"`
}

// Op is a single step.
type Op struct {
	Alloc  string `yaml:"alloc,omitempty"`
	Size   int    `yaml:"size,omitempty"`
	Free   string `yaml:"free,omitempty"`
	Check  bool   `yaml:"check,omitempty"`
	Expect string `yaml:"expect,omitempty"`
}

// Kind returns "alloc", "free" or "check".
func (o Op) Kind() string {
	switch {
	case o.Alloc != "":
		return "alloc"
	case o.Free != "":
		return "free"
	default:
		return "check"
	}
}

// Result records the outcome of one op.
type Result struct {
	Index int       `json:"index"`
	Kind  string    `json:"kind"`
	Name  string    `json:"name,omitempty"`
	Ptr   alloc.Ptr `json:"ptr,omitempty"`
	Size  int       `json:"size,omitempty"`
	Err   string    `json:"error,omitempty"`
}

// Parse decodes and validates a script.
func Parse(r io.Reader) (*Script, error) {
	s := &Script{}
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads a script from a file.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Script) validate() error {
	if _, err := s.LimitBytes(); err != nil {
		return err
	}
	for i, op := range s.Ops {
		set := 0
		if op.Alloc != "" {
			set++
		}
		if op.Free != "" {
			set++
		}
		if op.Check {
			set++
		}
		if set != 1 {
			return fmt.Errorf("%w: op %d must set exactly one of alloc, free, check", ErrInvalidScript, i)
		}
		if op.Alloc == "" && op.Size != 0 {
			return fmt.Errorf("%w: op %d: size without alloc", ErrInvalidScript, i)
		}
		if op.Expect != "" {
			if _, ok := expectations[op.Expect]; !ok {
				return fmt.Errorf("%w: op %d: unknown expectation %q", ErrInvalidScript, i, op.Expect)
			}
		}
	}
	return nil
}

// LimitBytes parses the heap limit, returning DefaultLimit when unset.
func (s *Script) LimitBytes() (int, error) {
	if s.Heap.Limit == "" {
		return DefaultLimit, nil
	}
	n, err := humanize.ParseBytes(s.Heap.Limit)
	if err != nil {
		return 0, fmt.Errorf("%w: limit: %w", ErrInvalidScript, err)
	}
	return int(n), nil
}

// Open creates and initializes the allocator described by the script's heap
// section. The returned cleanup function releases the provider.
func (s *Script) Open(log *zap.Logger) (*alloc.Allocator, func() error, error) {
	limit, err := s.LimitBytes()
	if err != nil {
		return nil, nil, err
	}
	p, cleanup, err := heap.Open(s.Heap.Provider, limit)
	if err != nil {
		return nil, nil, err
	}
	a, err := alloc.New(p, &alloc.Config{InitialPages: s.Heap.InitialPages, Logger: log})
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	if err := a.Init(); err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	return a, cleanup, nil
}

// Run replays the script against a. It stops at the first op whose outcome
// does not match its expectation and returns the results so far.
func Run(a *alloc.Allocator, s *Script) ([]Result, error) {
	names := make(map[string]alloc.Ptr)
	live := make(map[string]bool)
	results := make([]Result, 0, len(s.Ops))

	for i, op := range s.Ops {
		res := Result{Index: i, Kind: op.Kind()}
		var err error

		switch res.Kind {
		case "alloc":
			res.Name = op.Alloc
			if live[op.Alloc] {
				return results, fmt.Errorf("%w: op %d: %q is still allocated", ErrInvalidScript, i, op.Alloc)
			}
			var p alloc.Ptr
			p, _, err = a.Alloc(op.Size)
			if err == nil {
				names[op.Alloc], live[op.Alloc] = p, true
				res.Ptr = p
				res.Size, _ = a.Size(p)
			}
		case "free":
			res.Name = op.Free
			p, ok := names[op.Free]
			if !ok {
				return results, fmt.Errorf("%w: op %d: unknown name %q", ErrInvalidScript, i, op.Free)
			}
			res.Ptr = p
			err = a.Free(p)
			if err == nil {
				live[op.Free] = false
			}
		default:
			err = a.Verify()
		}

		if err != nil {
			res.Err = err.Error()
		}
		results = append(results, res)

		if err := match(op, err); err != nil {
			return results, fmt.Errorf("op %d (%s %s): %w", i, res.Kind, res.Name, err)
		}
	}
	return results, nil
}

func match(op Op, got error) error {
	if op.Expect == "" {
		if got != nil {
			return fmt.Errorf("%w: %w", ErrUnexpected, got)
		}
		return nil
	}
	want := expectations[op.Expect]
	if !errors.Is(got, want) {
		return fmt.Errorf("%w: want %s, got %v", ErrUnexpected, op.Expect, got)
	}
	return nil
}

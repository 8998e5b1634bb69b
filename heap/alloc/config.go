package alloc

import "go.uber.org/zap"

// Config controls allocator construction.
type Config struct {
	// InitialPages is the number of pages requested by Init.
	// Values <= 0 select DefaultInitialPages.
	InitialPages int

	// Concurrent serializes every public method behind one mutex.
	// Without it the caller must guarantee a single mutator.
	Concurrent bool

	// Logger receives debug events (extend, split, coalesce, double release).
	// nil selects a no-op logger unless HEAP_LOG_ALLOC is set.
	Logger *zap.Logger
}

// DefaultInitialPages is the size of the heap created by Init.
const DefaultInitialPages = 3

// DefaultConfig is used when New is called with a nil config.
var DefaultConfig = Config{
	InitialPages: DefaultInitialPages,
}

func (c Config) normalized() Config {
	if c.InitialPages <= 0 {
		c.InitialPages = DefaultInitialPages
	}
	return c
}

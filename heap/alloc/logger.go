package alloc

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

// Runtime debug flag for allocation logging - controlled by HEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

func newLogger(l *zap.Logger) *zap.Logger {
	if l != nil {
		return l.Named("alloc")
	}
	if logAlloc {
		if dl, err := zap.NewDevelopment(); err == nil {
			return dl.Named("alloc")
		}
	}
	return zap.NewNop()
}

// nopLocker is installed when Config.Concurrent is false.
type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

func newLocker(concurrent bool) sync.Locker {
	if concurrent {
		return &sync.Mutex{}
	}
	return nopLocker{}
}

package kernel

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// FatalInfo describes the error that put the system into fatal mode.
type FatalInfo struct {
	Err   error
	Stack []byte
}

var (
	fatalActive atomic.Bool
	fatalOnce   sync.Once

	fatalHandler atomic.Value // func(FatalInfo)
	haltFunc     atomic.Value // func()
)

// InFatalMode reports whether Fatal has been called.
func InFatalMode() bool {
	return fatalActive.Load()
}

// SetFatalHandler installs the process-wide fatal handler.
//
// The handler is invoked at most once (on the first Fatal). It must not call
// Fatal itself.
func SetFatalHandler(fn func(FatalInfo)) {
	fatalHandler.Store(fn)
}

// SetHaltFunc replaces what Fatal does once the handler has run. The default
// parks the calling goroutine forever, which is all boot-time code can do.
func SetHaltFunc(fn func()) {
	haltFunc.Store(fn)
}

// Fatal enters fatal mode, runs the handler once and halts. It does not
// return unless the halt function does.
func Fatal(err error) {
	fatalOnce.Do(func() {
		fatalActive.Store(true)
		info := FatalInfo{Err: err, Stack: debug.Stack()}
		if v := fatalHandler.Load(); v != nil {
			if fn, ok := v.(func(FatalInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
	halt()
}

func halt() {
	if v := haltFunc.Load(); v != nil {
		if fn, ok := v.(func()); ok && fn != nil {
			fn()
			return
		}
	}
	select {}
}


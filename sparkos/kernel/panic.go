package kernel

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
)

// PanicInfo describes a panic recovered from a task.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

func (p PanicInfo) String() string {
	return fmt.Sprintf("task=%d panic=%v", p.TaskID, p.Value)
}

// StackLines returns the non-empty lines of the captured stack.
func (p PanicInfo) StackLines() []string {
	var out []string
	for _, line := range strings.Split(string(p.Stack), "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

var (
	panicActive  atomic.Bool
	panicOnce    sync.Once
	panicHandler atomic.Value // func(PanicInfo)
)

// InPanicMode reports whether a task has panicked.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs the process-wide panic handler. Only the first
// panic reaches it, on the panicking task's goroutine.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicActive.Store(true)
		info.Stack = debug.Stack()
		fn, _ := panicHandler.Load().(func(PanicInfo))
		if fn != nil {
			fn(info)
		}
	})
}

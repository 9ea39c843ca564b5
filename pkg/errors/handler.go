package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every reported error. Replace it with
	// SetHandler; the zero configuration logs to stderr.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler installs h as the global error handler. A nil h restores a
// quiet LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	DefaultHandler = h
	handlerMu.Unlock()
}

// withHandler calls fn with the installed handler, if any.
func withHandler(fn func(ErrorHandler)) {
	handlerMu.RLock()
	h := DefaultHandler
	handlerMu.RUnlock()
	if h != nil {
		fn(h)
	}
}

// Report stamps err with the current time if unset and hands it to the
// global handler. A nil err is ignored.
func Report(err *TimingError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	withHandler(func(h ErrorHandler) { h.HandleError(err) })
}

// ReportPanic hands a recovered panic to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	withHandler(func(h ErrorHandler) { h.HandlePanic(err) })
}

// Assert checks an engine invariant. When cond is false the failure is
// reported as an *InvariantError and then raised with panic.
func Assert(cond bool, op, msg string) {
	if cond {
		return
	}
	err := &InvariantError{
		Op:         op,
		Message:    msg,
		StackTrace: captureStack(1),
		Timestamp:  time.Now(),
	}
	withHandler(func(h ErrorHandler) { h.HandleInvariant(err) })
	panic(err)
}

func newPanicError(op string, value any) *PanicError {
	return &PanicError{
		Op:         op,
		Value:      value,
		StackTrace: captureStack(2),
		Timestamp:  time.Now(),
	}
}

// Recover reports a panic in progress. It must be deferred directly:
//
//	defer errors.Recover("cmd.sample")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(newPanicError(op, r))
	}
}

// RecoverWithCallback is Recover followed by callback(r), letting the
// caller turn the panic into an error return.
func RecoverWithCallback(op string, callback func(r any)) {
	r := recover()
	if r == nil {
		return
	}
	ReportPanic(newPanicError(op, r))
	if callback != nil {
		callback(r)
	}
}

// CaptureStack returns the caller's stack, one "function\n\tfile:line"
// entry per frame.
func CaptureStack() string {
	return captureStack(1)
}

// captureStack skips its own frame, its caller's, and skip more.
func captureStack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}

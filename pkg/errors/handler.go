package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// ErrorHandler receives structured errors that the runtime reports rather
// than raises, such as contract violations surfaced during teardown.
type ErrorHandler interface {
	HandleError(err *Error)
}

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler = &LogHandler{}
)

// SetHandler configures the global error handler. Passing nil restores the
// default non-verbose LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	handler = h
	handlerMu.Unlock()
}

// Handler returns the current global error handler.
func Handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// Report sends an error to the global handler, capturing the reporter's call
// stack if the error does not already carry one.
func Report(err *Error) {
	if err == nil {
		return
	}
	if err.StackTrace == "" {
		err.StackTrace = CaptureStack()
	}
	Handler().HandleError(err)
}

// CaptureStack returns the current call stack as a string.
// It skips the first few frames to exclude the CaptureStack call itself.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}

package routine

import (
	"fmt"
	"io"
	"runtime"

	"github.com/pkg/errors"
)

const maxCallers = 32

// PanicError wraps a recovered panic value as an error, together with the
// call stack captured at the point of recovery.
type PanicError struct {
	Value   any
	callers []uintptr
}

// NewPanicError captures the current call stack and pairs it with the panic
// value. skip is the number of stack frames to skip above the caller.
func NewPanicError(skip int, value any) *PanicError {
	var pcs [maxCallers]uintptr
	n := runtime.Callers(skip+2, pcs[:])
	return &PanicError{Value: value, callers: pcs[:n]}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, e.Error())
			e.StackTrace().Format(s, verb)
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// StackTrace exposes the captured stack in pkg/errors form, so the error
// formats with %+v the same way a WithStack error does.
func (e *PanicError) StackTrace() errors.StackTrace {
	if e == nil {
		return nil
	}
	frames := make([]errors.Frame, len(e.callers))
	for i, pc := range e.callers {
		frames[i] = errors.Frame(pc)
	}
	return frames
}

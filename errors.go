package subproc

import (
	"fmt"
)

// ExitError reports a process that ran to completion with a non-zero exit
// status. The captured output, if any, travels on the Result returned
// alongside the error, not on the error itself.
type ExitError struct {
	Spec Spec // the invocation that produced the failure

	// Code is the exit status. Go reports -1 when the process was
	// terminated by a signal rather than exiting on its own.
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.Spec.String(), e.Code)
}

// SystemError reports a failure in the operating system layer: the process
// could not be launched (binary not found, permission denied), a captured
// stream could not be drained, or waiting for termination failed.
type SystemError struct {
	Spec Spec
	Err  error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Spec.String(), e.Err)
}

func (e *SystemError) Unwrap() error {
	return e.Err
}

// DecodeError reports captured bytes that are not valid UTF-8. It is a
// decoding concern layered on top of execution and is never produced by
// the engine itself.
type DecodeError struct {
	Stream string // "stdout" or "stderr"
	Offset int    // byte offset of the first invalid sequence
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s is not valid UTF-8 at byte %d", e.Stream, e.Offset)
}

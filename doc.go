// Package subproc launches external OS processes and collects their output
// under a selectable capture policy.
//
// # Capture Policies
//
// Every invocation names one of four policies: Pass (both streams
// inherited), CaptureStdout, CaptureStderr, or CaptureBoth. Captured
// streams are fully buffered in memory and returned after the child
// terminates; inherited streams appear on the parent's console in real
// time. Stdin is always inherited.
//
// When both streams are captured they are drained on independent
// goroutines, so a child that writes heavily to stdout and stderr cannot
// deadlock against a full pipe.
//
// # Errors
//
// Failures are classified into exactly two kinds: *ExitError (the process
// ran and exited non-zero) and *SystemError (the process could not be
// launched, a stream could not be drained, or waiting failed). Both carry
// the Spec that produced them. Neither kind is retried; retry policy
// belongs to the caller, as does mapping into another error domain (see
// WithErrorMap).
//
// # Blocking
//
// Calls block until the child exits and every captured stream reaches
// end-of-stream. There is no timeout and no cancellation in this package:
// a child that never terminates blocks its caller.
package subproc

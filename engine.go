package subproc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// Invoke launches the process described by spec, wires its streams according
// to policy, and blocks until the child has terminated and every captured
// stream has been drained to end-of-stream.
//
// The child's stdin is always the parent's. Streams the policy does not
// capture are inherited, so their output appears on the parent's console in
// real time. There is no timeout and no cancellation: a child that never
// exits blocks the caller indefinitely.
//
// A non-zero exit status yields a *ExitError alongside the fully captured
// output; launch and stream failures yield a *SystemError with a zero
// Result. No failure escapes unclassified.
func Invoke(spec Spec, policy Policy) (Result, error) {
	return invoke(spec, policy, engineConfig{})
}

// engineConfig carries per-invocation tuning supplied by an Invoker.
type engineConfig struct {
	maxCapture int // bytes kept per captured stream; 0 means unlimited
}

func invoke(spec Spec, policy Policy, cfg engineConfig) (Result, error) {
	if err := spec.Validate(); err != nil {
		return Result{}, &SystemError{Spec: spec, Err: err}
	}

	if !policy.valid() {
		return Result{}, &SystemError{Spec: spec, Err: fmt.Errorf("invalid capture policy %d", int(policy))}
	}

	cmd := exec.Command(spec.Path, spec.Args...)
	cmd.Stdin = os.Stdin

	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}

	// A nil override inherits the parent environment; a non-nil map
	// replaces it entirely.
	if spec.Env != nil {
		cmd.Env = spec.environ()
	}

	outPipe, errPipe, err := wirePipes(cmd, policy)
	if err != nil {
		return Result{}, &SystemError{Spec: spec, Err: err}
	}

	start := time.Now()

	if err := cmd.Start(); err != nil {
		return Result{}, &SystemError{Spec: spec, Err: err}
	}

	res := Result{Policy: policy}

	var drainErr error

	switch {
	case outPipe != nil && errPipe != nil:
		// Each pipe gets its own reader so the child can never stall with
		// one pipe full while the parent is blocked reading the other.
		// Both drains must finish before Wait, which closes the pipes.
		outCh := drainAsync(outPipe, "stdout", cfg.maxCapture)
		errCh := drainAsync(errPipe, "stderr", cfg.maxCapture)

		out := <-outCh
		errOut := <-errCh

		res.Stdout, res.Stderr = out.data, errOut.data
		res.Truncated = out.truncated || errOut.truncated
		drainErr = errors.Join(out.err, errOut.err)
	case outPipe != nil:
		// The other stream is an inherited descriptor, so a single
		// synchronous drain cannot deadlock the child.
		out := drain(outPipe, "stdout", cfg.maxCapture)
		res.Stdout, res.Truncated = out.data, out.truncated
		drainErr = out.err
	case errPipe != nil:
		errOut := drain(errPipe, "stderr", cfg.maxCapture)
		res.Stderr, res.Truncated = errOut.data, errOut.truncated
		drainErr = errOut.err
	}

	// The child is reaped unconditionally, even when a drain failed.
	waitErr := cmd.Wait()
	res.Duration = time.Since(start)

	if drainErr != nil {
		return Result{}, &SystemError{Spec: spec, Err: drainErr}
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return res, &ExitError{Spec: spec, Code: exitErr.ExitCode()}
		}

		return Result{}, &SystemError{Spec: spec, Err: waitErr}
	}

	return res, nil
}

// wirePipes attaches the child's stdout/stderr according to policy:
// captured streams get pipes, inherited streams get the parent's
// descriptors. A pipe already created when the second request fails is
// closed here; Start never ran, so nothing else would release it.
func wirePipes(cmd *exec.Cmd, policy Policy) (io.ReadCloser, io.ReadCloser, error) {
	var outPipe, errPipe io.ReadCloser

	if policy.capturesStdout() {
		p, err := cmd.StdoutPipe()
		if err != nil {
			return nil, nil, err
		}

		outPipe = p
	} else {
		cmd.Stdout = os.Stdout
	}

	if policy.capturesStderr() {
		p, err := cmd.StderrPipe()
		if err != nil {
			closePipe(outPipe, cmd.Stdout)

			return nil, nil, err
		}

		errPipe = p
	} else {
		cmd.Stderr = os.Stderr
	}

	return outPipe, errPipe, nil
}

// closePipe releases both descriptors of a pipe created by StdoutPipe or
// StderrPipe before the process started: the parent read end directly, the
// child write end through the stream it was attached to. A nil r means no
// pipe was created and w is the parent's own descriptor, which stays open.
func closePipe(r io.ReadCloser, w io.Writer) {
	if r == nil {
		return
	}

	_ = r.Close()

	if f, ok := w.(io.Closer); ok {
		_ = f.Close()
	}
}

// drainResult is the outcome of reading one pipe to end-of-stream.
type drainResult struct {
	data      []byte
	truncated bool
	err       error
}

// drainAsync drains r on its own goroutine and delivers the outcome on the
// returned channel. The goroutine never outlives the invocation that
// receives from the channel.
func drainAsync(r io.ReadCloser, stream string, limit int) <-chan drainResult {
	ch := make(chan drainResult, 1)

	go func() {
		ch <- drain(r, stream, limit)
	}()

	return ch
}

// drain reads r to end-of-stream, keeping at most limit bytes (unlimited
// when limit <= 0). The read end is closed afterwards so a failed drain
// cannot leave the child blocked writing into a full pipe.
func drain(r io.ReadCloser, stream string, limit int) drainResult {
	defer func() { _ = r.Close() }()

	data, truncated, err := readAll(r, limit)
	if err != nil {
		err = fmt.Errorf("draining %s: %w", stream, err)
	}

	return drainResult{data: data, truncated: truncated, err: err}
}

func readAll(r io.Reader, limit int) ([]byte, bool, error) {
	if limit <= 0 {
		data, err := io.ReadAll(r)

		return data, false, err
	}

	buf := &cappedBuffer{limit: limit}
	_, err := io.Copy(buf, r)

	return buf.Bytes(), buf.Truncated(), err
}

// cappedBuffer keeps the first limit bytes written and discards the rest,
// claiming every write in full so io.Copy keeps draining to end-of-stream.
type cappedBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - b.buf.Len()
	if remaining <= 0 {
		return len(p), nil
	}

	if len(p) > remaining {
		b.buf.Write(p[:remaining])

		return len(p), nil
	}

	return b.buf.Write(p)
}

func (b *cappedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}

func (b *cappedBuffer) Truncated() bool {
	return b.buf.Len() == b.limit
}

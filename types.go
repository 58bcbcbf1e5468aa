package subproc

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/shlex"
)

// Spec describes a process to launch. It is a plain value: constructing one
// has no side effects, and the engine never mutates it.
type Spec struct {
	Path string   // Binary name or path to executable
	Args []string // Arguments to pass to the binary

	// Dir is the working directory for the child. Empty means the child
	// inherits the caller's working directory.
	Dir string

	// Env is the environment override. A nil map means the child inherits
	// the caller's environment; a non-nil map replaces it entirely, even
	// when empty.
	Env map[string]string
}

// New creates a Spec for the given binary and arguments.
func New(path string, args ...string) Spec {
	return Spec{
		Path: path,
		Args: args,
	}
}

// Parse splits a shell-style command string into a Spec using shlex.
// It handles quoted arguments correctly.
func Parse(command string) (Spec, error) {
	parts, err := shlex.Split(command)
	if err != nil {
		return Spec{}, fmt.Errorf("failed to parse command: %w", err)
	}

	if len(parts) == 0 {
		return Spec{}, errors.New("empty command")
	}

	return Spec{
		Path: parts[0],
		Args: parts[1:],
	}, nil
}

// Validate checks that the spec is well-formed.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Path) == "" {
		return errors.New("process path cannot be empty")
	}

	return nil
}

// String returns a simplified, shell-quoted rendering of the invocation.
func (s Spec) String() string {
	if len(s.Args) == 0 {
		return s.Path
	}

	var b strings.Builder
	b.WriteString(s.Path)

	for _, arg := range s.Args {
		b.WriteString(" ")

		if strings.Contains(arg, " ") {
			fmt.Fprintf(&b, "%q", arg)
		} else {
			b.WriteString(arg)
		}
	}

	return b.String()
}

// Equal reports whether two specs are structurally identical. A nil and an
// empty environment override are distinct: the first inherits, the second
// launches with an empty environment.
func (s Spec) Equal(o Spec) bool {
	if s.Path != o.Path || s.Dir != o.Dir {
		return false
	}

	if !slices.Equal(s.Args, o.Args) {
		return false
	}

	if (s.Env == nil) != (o.Env == nil) {
		return false
	}

	return maps.Equal(s.Env, o.Env)
}

// WithDir returns a copy of the spec with the working directory set.
func (s Spec) WithDir(dir string) Spec {
	s.Dir = dir

	return s
}

// WithEnv returns a copy of the spec with the environment override set.
// The map is copied; passing nil removes the override so the child
// inherits the caller's environment.
func (s Spec) WithEnv(env map[string]string) Spec {
	s.Env = maps.Clone(env)

	return s
}

// environ renders the override as KEY=VALUE pairs, sorted for determinism.
func (s Spec) environ() []string {
	kv := make([]string, 0, len(s.Env))
	for k, v := range s.Env {
		kv = append(kv, k+"="+v)
	}

	slices.Sort(kv)

	return kv
}

// Policy selects which of a child's stdout/stderr are redirected into
// memory-buffered pipes versus inherited from the parent. Only the four
// named policies are valid.
type Policy int

const (
	// Pass inherits both stdout and stderr; nothing is captured.
	Pass Policy = iota
	// CaptureStdout buffers stdout; stderr is inherited.
	CaptureStdout
	// CaptureStderr buffers stderr; stdout is inherited.
	CaptureStderr
	// CaptureBoth buffers stdout and stderr on independent drains.
	CaptureBoth
)

func (p Policy) String() string {
	switch p {
	case Pass:
		return "pass"
	case CaptureStdout:
		return "stdout"
	case CaptureStderr:
		return "stderr"
	case CaptureBoth:
		return "both"
	default:
		return "unknown"
	}
}

func (p Policy) valid() bool {
	return p >= Pass && p <= CaptureBoth
}

func (p Policy) capturesStdout() bool {
	return p == CaptureStdout || p == CaptureBoth
}

func (p Policy) capturesStderr() bool {
	return p == CaptureStderr || p == CaptureBoth
}

// Result holds the output captured from one completed invocation, tagged
// with the policy that produced it. Streams the policy did not capture
// are nil.
type Result struct {
	Policy Policy

	Stdout []byte
	Stderr []byte

	// Duration is the wall time from launch to termination.
	Duration time.Duration

	// Truncated reports whether a captured stream hit the byte cap
	// configured with WithMaxCaptureBytes.
	Truncated bool
}

// StdoutText decodes the captured stdout as strict UTF-8. Decoding is a
// pure function of the already-captured bytes; it never re-runs the
// process. Invalid input yields a *DecodeError. An uncaptured stream
// decodes to "".
func (r Result) StdoutText() (string, error) {
	return decodeText("stdout", r.Stdout)
}

// StderrText decodes the captured stderr as strict UTF-8.
func (r Result) StderrText() (string, error) {
	return decodeText("stderr", r.Stderr)
}

func decodeText(stream string, b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", &DecodeError{Stream: stream, Offset: invalidOffset(b)}
	}

	return string(b), nil
}

// invalidOffset returns the byte offset of the first invalid UTF-8 sequence.
func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}

		i += size
	}

	return -1 // not reached for input rejected by utf8.Valid
}

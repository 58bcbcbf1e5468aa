package subproc

// Invoker executes processes with a fixed set of invocation options,
// passing every classified failure through a caller-supplied error mapping.
//
// The zero Invoker is ready to use: identity error mapping and unlimited
// capture.
type Invoker struct {
	mapErr     func(error) error
	maxCapture int
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithErrorMap installs a pure mapping from classified process errors
// (*ExitError, *SystemError) into the caller's error domain. The mapping is
// applied to every failure returned by this Invoker and never sees nil.
func WithErrorMap(f func(error) error) Option {
	return func(v *Invoker) {
		v.mapErr = f
	}
}

// WithMaxCaptureBytes caps each captured stream at n bytes. The engine
// still drains streams to end-of-stream; excess bytes are discarded and
// Result.Truncated is set. n <= 0 means unlimited.
func WithMaxCaptureBytes(n int) Option {
	return func(v *Invoker) {
		v.maxCapture = n
	}
}

// NewInvoker creates an Invoker with the given options.
func NewInvoker(opts ...Option) *Invoker {
	v := &Invoker{}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Invoke runs the process described by spec under policy.
func (v *Invoker) Invoke(spec Spec, policy Policy) (Result, error) {
	res, err := invoke(spec, policy, engineConfig{maxCapture: v.maxCapture})

	return res, v.wrap(err)
}

// Call constructs a Spec from path and args and invokes it under policy.
func (v *Invoker) Call(policy Policy, path string, args ...string) (Result, error) {
	return v.Invoke(New(path, args...), policy)
}

// CallFrom is Call with the child's working directory set to dir.
func (v *Invoker) CallFrom(dir string, policy Policy, path string, args ...string) (Result, error) {
	return v.Invoke(New(path, args...).WithDir(dir), policy)
}

// Run invokes path with args under the Pass policy and discards the empty
// result. Output appears on the parent's streams in real time.
func (v *Invoker) Run(path string, args ...string) error {
	_, err := v.Invoke(New(path, args...), Pass)

	return err
}

// RunFrom is Run with the child's working directory set to dir.
func (v *Invoker) RunFrom(dir string, path string, args ...string) error {
	_, err := v.Invoke(New(path, args...).WithDir(dir), Pass)

	return err
}

func (v *Invoker) wrap(err error) error {
	if err == nil || v.mapErr == nil {
		return err
	}

	return v.mapErr(err)
}

// Call invokes path with args under policy using default options.
func Call(policy Policy, path string, args ...string) (Result, error) {
	return Invoke(New(path, args...), policy)
}

// CallFrom is Call with the child's working directory set to dir.
func CallFrom(dir string, policy Policy, path string, args ...string) (Result, error) {
	return Invoke(New(path, args...).WithDir(dir), policy)
}

// Run invokes path with args under the Pass policy and discards the empty
// result.
func Run(path string, args ...string) error {
	_, err := Invoke(New(path, args...), Pass)

	return err
}

// RunFrom is Run with the child's working directory set to dir.
func RunFrom(dir string, path string, args ...string) error {
	_, err := Invoke(New(path, args...).WithDir(dir), Pass)

	return err
}

package subproc

// Builder provides a fluent API for constructing Specs.
type Builder struct {
	spec Spec
}

// Cmd creates a new Builder for a process with the given path or name.
func Cmd(path string) *Builder {
	return &Builder{
		spec: Spec{Path: path},
	}
}

// Arg appends a single argument.
func (b *Builder) Arg(arg string) *Builder {
	b.spec.Args = append(b.spec.Args, arg)
	return b
}

// Args appends multiple arguments.
func (b *Builder) Args(args ...string) *Builder {
	b.spec.Args = append(b.spec.Args, args...)
	return b
}

// Dir sets the working directory.
func (b *Builder) Dir(dir string) *Builder {
	b.spec.Dir = dir
	return b
}

// Env sets one variable on the environment override. Creating the override
// stops inheritance: the child's environment becomes exactly the variables
// set here.
func (b *Builder) Env(key, value string) *Builder {
	if b.spec.Env == nil {
		b.spec.Env = make(map[string]string)
	}

	b.spec.Env[key] = value

	return b
}

// Build returns the constructed Spec.
func (b *Builder) Build() Spec {
	return b.spec
}

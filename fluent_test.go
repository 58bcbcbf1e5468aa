package subproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	spec := Cmd("ls").Arg("-l").Arg("-a").Dir("/tmp").Build()

	assert.Equal(t, "ls", spec.Path)
	assert.Equal(t, []string{"-l", "-a"}, spec.Args)
	assert.Equal(t, "/tmp", spec.Dir)
	assert.Nil(t, spec.Env)
}

func TestBuilder_Args(t *testing.T) {
	t.Parallel()

	spec := Cmd("git").Args("log", "--oneline", "-n", "5").Build()

	assert.Equal(t, "git", spec.Path)
	assert.Equal(t, []string{"log", "--oneline", "-n", "5"}, spec.Args)
}

func TestBuilder_Env(t *testing.T) {
	t.Parallel()

	spec := Cmd("env").Env("FOO", "bar").Env("BAZ", "qux").Build()

	assert.Equal(t, map[string]string{"FOO": "bar", "BAZ": "qux"}, spec.Env)
}

func TestBuilder_NoEnvKeepsInheritance(t *testing.T) {
	t.Parallel()

	spec := Cmd("env").Build()

	assert.Nil(t, spec.Env)
}

func TestBuilder_EnvOverwritesKey(t *testing.T) {
	t.Parallel()

	spec := Cmd("env").Env("FOO", "old").Env("FOO", "new").Build()

	assert.Equal(t, map[string]string{"FOO": "new"}, spec.Env)
}

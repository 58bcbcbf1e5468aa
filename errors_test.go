package subproc

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	err := &ExitError{
		Spec: New("ls", "-la"),
		Code: 1,
	}

	assert.Equal(t, `command "ls -la" exited with code 1`, err.Error())
}

func TestExitError_SignalCode(t *testing.T) {
	t.Parallel()

	err := &ExitError{
		Spec: New("sleep", "60"),
		Code: -1,
	}

	assert.Equal(t, `command "sleep 60" exited with code -1`, err.Error())
}

func TestSystemError_Error(t *testing.T) {
	t.Parallel()

	err := &SystemError{
		Spec: New("missing"),
		Err:  errors.New("executable file not found"),
	}

	assert.Equal(t, `command "missing" failed: executable file not found`, err.Error())
}

func TestSystemError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := fs.ErrNotExist
	err := &SystemError{Spec: New("missing"), Err: cause}

	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestDecodeError_Error(t *testing.T) {
	t.Parallel()

	err := &DecodeError{Stream: "stderr", Offset: 7}

	assert.Equal(t, "stderr is not valid UTF-8 at byte 7", err.Error())
}

package errtax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryWrapIsUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := Acquire.Wrap(cause)

	require.True(t, errors.Is(err, Acquire))
	assert.False(t, errors.Is(err, IO))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "input acquisition error -- permission denied", err.Error())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(Usage.Wrap(errors.New("extra args"))))
	assert.Equal(t, 2, ExitCode(Usage))
	assert.Equal(t, 1, ExitCode(Acquire.Wrap(errors.New("boom"))))
	assert.Equal(t, 1, ExitCode(IO))
	assert.Equal(t, 1, ExitCode(ResourceExhausted))
}

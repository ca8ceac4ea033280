package enc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func Test_InvalidArgumentError(t *testing.T) {
	err := invalidCharacter('$', 3)
	require.Equal(t, "invalid character '$' at index 3", err.Error())
	require.True(t, errors.Is(err, ErrInvalidArgument))
	require.True(t, IsKind(err, InvalidCharacter))
	require.False(t, IsKind(err, MalformedInput))

	cause := errors.New("boom")
	err = ioFailure(cause, "could not read input", 7)
	require.Equal(t, "could not read input at index 7: boom", err.Error())
	require.True(t, errors.Is(err, cause))
	require.True(t, errors.Is(err, ErrInvalidArgument))

	err = malformedInput("odd length (%d characters)", 3)
	require.Equal(t, "odd length (3 characters)", err.Error())

	err = errors.Wrap(configurationError(nil, "bad"), "context")
	require.True(t, IsKind(err, ConfigurationError))
	require.Equal(t, "context: bad", err.Error())

	require.False(t, IsKind(errors.New("other"), IOFailure))
	require.False(t, IsKind(nil, IOFailure))
}

func Test_ErrorKind_String(t *testing.T) {
	require.Equal(t, "ConfigurationError", ConfigurationError.String())
	require.Equal(t, "MalformedInput", MalformedInput.String())
	require.Equal(t, "InvalidCharacter", InvalidCharacter.String())
	require.Equal(t, "IOFailure", IOFailure.String())
	require.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}

func Test_CorruptInput(t *testing.T) {
	require.True(t, IsKind(corruptInput([]byte("abc"), 1), InvalidCharacter))
	require.True(t, IsKind(corruptInput([]byte("abc"), 3), MalformedInput))
}

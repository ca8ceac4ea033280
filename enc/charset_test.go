package enc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func Test_NewCharset_Sorts(t *testing.T) {
	c, err := NewCharset(StdAlphabet)
	require.NoError(t, err)
	require.Equal(t, "+/0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", c.String())

	idx, ok := c.Index('+')
	require.True(t, ok)
	require.Equal(t, 0, idx)

	idx, ok = c.Index('z')
	require.True(t, ok)
	require.Equal(t, 63, idx)

	require.Equal(t, byte('A'), c.Symbol(12))
}

func Test_NewCharset_Lookup(t *testing.T) {
	c, err := NewCharset(customAlphabet)
	require.NoError(t, err)

	for i := 0; i < CharsetSize; i++ {
		idx, ok := c.Index(c.Symbol(i))
		require.True(t, ok)
		require.Equal(t, i, idx)
	}

	for _, s := range []byte{'+', '/', '=', ' ', '\n', 0, 127, 128, 255} {
		idx, ok := c.Index(s)
		require.Falsef(t, ok, "%q should not be a part of the charset", s)
		require.Equal(t, -1, idx)
		require.False(t, c.Contains(s))
	}
}

func Test_OrderedCharset(t *testing.T) {
	require.Equal(t, StdAlphabet, stdCharset.String())
	idx, ok := stdCharset.Index('A')
	require.True(t, ok)
	require.Equal(t, 0, idx)
}

func Test_NewCharset_WrongLength(t *testing.T) {
	for _, alphabet := range []string{"", "abc", StdAlphabet + "!"} {
		_, err := NewCharset(alphabet)
		require.Errorf(t, err, "%q should be rejected", alphabet)
		require.True(t, IsKind(err, ConfigurationError))
		require.True(t, errors.Is(err, ErrInvalidArgument))
		require.Contains(t, err.Error(), "wrong length")
	}
}

func Test_NewCharset_Duplicates(t *testing.T) {
	_, err := NewCharset(StdAlphabet[:62] + "AA")
	require.Error(t, err)
	require.True(t, IsKind(err, ConfigurationError))
	require.Contains(t, err.Error(), "duplicate character 'A'")
}

func Test_NewCharset_NotPrintable(t *testing.T) {
	_, err := NewCharset("\n" + StdAlphabet[1:])
	require.Error(t, err)
	require.Contains(t, err.Error(), "not printable ASCII")

	_, err = NewCharset("\xe9" + StdAlphabet[1:])
	require.Error(t, err)
	require.Contains(t, err.Error(), "not printable ASCII")
}

func Test_NewCharset_AllProblems(t *testing.T) {
	_, err := NewCharset("aab\x01")
	require.Error(t, err)
	require.Contains(t, err.Error(), "wrong length")
	require.Contains(t, err.Error(), "duplicate character 'a'")
	require.Contains(t, err.Error(), "not printable ASCII")
}

func Test_NewOrderedCharset_Panics(t *testing.T) {
	require.Panics(t, func() {
		newOrderedCharset("abc")
	})
}

package encode

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bokysan/codecs/enc"
	"github.com/stretchr/testify/require"
)

func Test_Execute(t *testing.T) {
	dir, err := ioutil.TempDir("", "encode")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input.bin")
	output := filepath.Join(dir, "output.txt")
	require.NoError(t, ioutil.WriteFile(input, []byte("any carnal pleasure"), 0600))

	cmd := NewCommand()
	cmd.Encoder = "base64"
	cmd.Wrap = 4
	cmd.Input = input
	cmd.Output = output
	require.NoError(t, cmd.Execute(nil))

	data, err := ioutil.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, "YW55\nIGNh\ncm5h\nbCBw\nbGVh\nc3Vy\nZQ==", string(data))
}

func Test_Execute_InvalidOptions(t *testing.T) {
	cmd := NewCommand()
	cmd.Encoder = "any64"
	err := cmd.Execute(nil)
	require.True(t, enc.IsKind(err, enc.ConfigurationError))

	cmd.Encoder = "hex"
	cmd.Wrap = 76
	err = cmd.Execute(nil)
	require.True(t, enc.IsKind(err, enc.ConfigurationError))
}

package decode

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bokysan/codecs/internal/util"
	"github.com/stretchr/testify/require"
)

func Test_Execute(t *testing.T) {
	dir, err := ioutil.TempDir("", "decode")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	alphabet := "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789?!"
	input := filepath.Join(dir, "input.txt")
	output := filepath.Join(dir, "output.bin")

	cmd := NewCommand()
	cmd.Encoder = "A"
	cmd.Alphabet = alphabet
	cmd.Input = input
	cmd.Output = output

	// "a" in the sorted alphabet: 24 and 16 are 'M' and 'E'
	require.NoError(t, ioutil.WriteFile(input, []byte("ME\n"), 0600))
	require.NoError(t, cmd.Execute(nil))

	data, err := ioutil.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, "a", string(data))
}

func Test_Execute_MalformedInput(t *testing.T) {
	dir, err := ioutil.TempDir("", "decode")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input.txt")
	require.NoError(t, ioutil.WriteFile(input, []byte("QUJ\n"), 0600))

	cmd := NewCommand()
	cmd.Encoder = "base64"
	cmd.Input = input
	cmd.Output = filepath.Join(dir, "output.bin")

	err = cmd.Execute(nil)
	require.Error(t, err)
	require.Equal(t, util.ErrDataInvalid, util.ExitCode(err))
}

package flags

import (
	"strings"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"
)

type testOptions struct {
	Alphabet string `long:"alphabet"`
	Wrap     int    `long:"wrap"`
	File     string `long:"file"`
}

func Test_EmptyParse(t *testing.T) {
	file := "testdata/empty.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)
	err := yamlParser.ParseFile(file)

	require.NoErrorf(t, err, "Parsing not successful: %v", file)
}

func Test_GeneralParse(t *testing.T) {
	file := "testdata/general.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)

	data := &testOptions{}
	_, err := parser.AddCommand("general", "General", "General options", data)
	require.NoErrorf(t, err, "Could not add general group")

	err = yamlParser.ParseFile(file)
	require.NoErrorf(t, err, "Parsing not successful: %v", file)

	require.Equal(t, "+/0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", data.Alphabet, "Invalid reading of string value")
	require.Equal(t, 76, data.Wrap, "Invalid reading of int value")
	require.Equal(t, "something.txt", data.File, "Invalid reading of string value")
}

func Test_GroupParse(t *testing.T) {
	file := "testdata/multiple.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)

	data := &testOptions{}
	_, err := parser.AddGroup("Options", "Test options", data)
	require.NoErrorf(t, err, "Could not add options group")

	err = yamlParser.ParseFile(file)
	require.NoErrorf(t, err, "Parsing not successful: %v", file)

	require.Equal(t, 8, data.Wrap, "Later documents should override earlier ones")
	require.Equal(t, "second.txt", data.File)
}

func Test_InvalidGeneralParse(t *testing.T) {
	file := "testdata/invalid_general.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)

	_, err := parser.AddCommand("general", "General", "General options", &testOptions{})
	require.NoErrorf(t, err, "Could not add general group")

	// Unknown keys are ignored
	err = yamlParser.ParseFile(file)
	require.NoErrorf(t, err, "Parsing not successful: %v", file)
}

func Test_InvalidNoCommand(t *testing.T) {
	file := "testdata/invalid_no_command.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)

	_, err := parser.AddCommand("general", "General", "General options", &testOptions{})
	require.NoErrorf(t, err, "Could not add general group")

	err = yamlParser.ParseFile(file)
	require.Errorf(t, err, "Parsing not successful, expected error but did not get one: %v", file)
}

func Test_MissingFile(t *testing.T) {
	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	err := NewYamlParser(parser).ParseFile("testdata/does-not-exist.yml")
	require.Error(t, err)
}

func Test_ParseReader(t *testing.T) {
	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	data := &testOptions{}
	_, err := parser.AddCommand("encode", "Encode", "Encode data", data)
	require.NoError(t, err)

	err = NewYamlParser(parser).Parse(strings.NewReader("encode:\n  wrap: 12\n"))
	require.NoError(t, err)
	require.Equal(t, 12, data.Wrap)
}

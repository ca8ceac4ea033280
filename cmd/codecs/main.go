package main

import (
	"fmt"
	"os"
	"path"

	"github.com/bokysan/codecs/internal/args"
	"github.com/bokysan/codecs/internal/commands/decode"
	"github.com/bokysan/codecs/internal/commands/encode"
	"github.com/bokysan/codecs/internal/commands/list"
	"github.com/bokysan/codecs/internal/commands/serve"
	"github.com/bokysan/codecs/internal/commands/version"
	cFlags "github.com/bokysan/codecs/internal/flags"
	"github.com/bokysan/codecs/internal/util"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	// ErrConfigFileDoesNotExist is raised when configuration file cannot be found
	ErrConfigFileDoesNotExist = flags.ErrInvalidTag + 1
)

// Codecs is the main executable
type Codecs struct {
	parser *flags.Parser
}

// NewCodecs will create a new instance of Codecs and initialize the parser
func NewCodecs() *Codecs {
	executablePath := path.Base(os.Args[0])

	c := &Codecs{
		parser: flags.NewNamedParser(executablePath, flags.HelpFlag|flags.PrintErrors),
	}

	c.setupGeneral()
	c.addCommand("version", "Print the version", "Print the application version and exit", &version.Command{})
	c.addCommand("list", "List the encoders", "List the available encoders with their codes", list.NewCommand())
	c.addCommand("encode", "Encode data", "Encode binary data into text with the selected encoder", encode.NewCommand())
	c.addCommand("decode", "Decode data", "Decode text back into binary data with the selected encoder", decode.NewCommand())
	c.addCommand("serve", "Run the codec service", "Serve the encoders over HTTP and websockets", serve.NewCommand())

	return c
}

// setupGeneral will configure general options
func (c *Codecs) setupGeneral() {
	if _, err := c.parser.AddGroup("General", "General options", &args.General); err != nil {
		util.MustErrorNilOrExit(errors.WithStack(err))
	}
}

func (c *Codecs) addCommand(name, short, long string, data interface{}) {
	_, err := c.parser.AddCommand(name, short, long, data)
	util.MustErrorNilOrExit(err)
}

// main parses the command line (and the configuration file) and runs the selected command
func main() {
	codecs := NewCodecs()
	args.General.ConfigurationFile = func(file string) error {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			util.MustErrorNilOrExit(&flags.Error{
				Type:    ErrConfigFileDoesNotExist,
				Message: fmt.Sprintf("Configuration file %s does not exist.", file),
			})
		}

		args.General.ConfigurationFilePath = file
		return cFlags.NewYamlParser(codecs.parser).ParseFile(file)
	}

	_, err := codecs.parser.Parse()
	util.MustErrorNilOrExit(err)
}

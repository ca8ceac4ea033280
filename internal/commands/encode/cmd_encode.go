package encode

import (
	"github.com/bokysan/codecs/enc"
	"github.com/bokysan/codecs/internal/commands/codec"
	"github.com/bokysan/codecs/internal/logging"
)

// Command encodes binary input into text
type Command struct {
	codec.Options

	Wrap     int  `json:"wrap"     short:"w" long:"wrap"      env:"WRAP"      description:"Break base64 output into lines of this length, e.g. 76 for MIME. 0 disables wrapping."`
	NonASCII bool `json:"nonAscii"           long:"non-ascii" env:"NON_ASCII" description:"Also escape the non-ASCII characters (html encoder only)"`
}

func NewCommand() *Command {
	return &Command{}
}

func (c *Command) Execute(args []string) error {
	logging.SetupLogging()

	if c.IsHTML() {
		return codec.RunHTML(codec.Encode, c.NonASCII, c.Input, c.Output)
	}

	e, err := enc.NewEncoderByName(c.Encoder, c.Alphabet, c.Wrap)
	if err != nil {
		return err
	}
	return codec.Run(e, codec.Encode, c.Input, c.Output)
}

package decode

import (
	"github.com/bokysan/codecs/enc"
	"github.com/bokysan/codecs/internal/commands/codec"
	"github.com/bokysan/codecs/internal/logging"
)

// Command decodes text back into binary data
type Command struct {
	codec.Options
}

func NewCommand() *Command {
	return &Command{}
}

func (c *Command) Execute(args []string) error {
	logging.SetupLogging()

	if c.IsHTML() {
		return codec.RunHTML(codec.Decode, false, c.Input, c.Output)
	}

	e, err := enc.NewEncoderByName(c.Encoder, c.Alphabet, 0)
	if err != nil {
		return err
	}
	return codec.Run(e, codec.Decode, c.Input, c.Output)
}

package list

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bokysan/codecs/internal/server"
	"github.com/k0kubun/go-ansi"
)

// Command prints the available encoders
type Command struct {
	out io.Writer
}

func NewCommand() *Command {
	return &Command{
		out: ansi.NewAnsiStdout(),
	}
}

func (c *Command) Execute(args []string) error {
	return Print(c.out)
}

// Print writes the table of encoders
func Print(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCODE\tRATIO\tSTREAMING\tALPHABET")
	for _, c := range server.Codecs() {
		ratio := "-"
		if c.Ratio > 0 {
			ratio = fmt.Sprintf("%.2f", c.Ratio)
		}
		code := c.Code
		if code == "" {
			code = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%v\n", c.Name, code, ratio, c.Streaming, c.Alphabet)
	}
	return w.Flush()
}

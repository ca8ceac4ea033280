package codec

import (
	"io"
	"io/ioutil"
	"strings"

	"github.com/bokysan/codecs/enc"
	"github.com/bokysan/codecs/internal/streams"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// HTML is the name of the HTML entity escaper, which is not an enc.Encoder
const HTML = "html"

// Options are the options shared by the `encode` and `decode` commands
type Options struct {
	Encoder  string `json:"encoder"  short:"e" long:"encoder"  env:"ENCODER"  description:"Encoder name or one-letter code (see 'list')" default:"base64"`
	Alphabet string `json:"alphabet" short:"a" long:"alphabet" env:"ALPHABET" description:"The 64 character alphabet for the any64 encoder"`
	Input    string `json:"input"    short:"i" long:"input"    env:"INPUT"    description:"Input file, '-' for standard input" default:"-"`
	Output   string `json:"output"   short:"o" long:"output"   env:"OUTPUT"   description:"Output file, '-' for standard output" default:"-"`
}

// IsHTML returns true if the HTML escaper was selected
func (o *Options) IsHTML() bool {
	return strings.EqualFold(strings.TrimSpace(o.Encoder), HTML)
}

// Direction selects what Run does with the input
type Direction int

const (
	Encode Direction = iota
	Decode
)

func (d Direction) String() string {
	if d == Encode {
		return "Encoding"
	}
	return "Decoding"
}

// Run opens the input and the output and pushes the data through the encoder. Stream encoders encode the input
// incrementally. Decoding always reads the input whole, so malformed input is rejected before anything is
// written.
func Run(e enc.Encoder, direction Direction, input, output string) (err error) {
	in, err := streams.OpenInput(input)
	if err != nil {
		return err
	}
	out, err := streams.OpenOutput(output)
	if err != nil {
		streams.TryClose(in)
		return err
	}
	defer func() {
		if closeErr := streams.CloseAll(in, out); err == nil && closeErr != nil {
			err = errors.WithStack(closeErr)
		}
	}()

	log.Debugf("%v %v -> %v with %v", direction, in, out, e)
	written, err := Transform(e, direction, in, out)
	if err != nil {
		return errors.Wrapf(err, "%v %v failed", direction, in)
	}
	log.Infof("%v done, %d bytes written to %v", direction, written, out)
	return nil
}

// Transform encodes or decodes the data from r into w and returns the number of bytes written. Decoding uses
// the validating Decode of the encoder, never the lenient DecodeStream.
func Transform(e enc.Encoder, direction Direction, r io.Reader, w io.Writer) (int64, error) {
	if s, ok := e.(enc.StreamEncoder); ok && direction == Encode {
		return s.EncodeStream(r, w)
	}

	data, err := ioutil.ReadAll(r)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	var result []byte
	if direction == Encode {
		result = e.Encode(data)
	} else if result, err = e.Decode(trimLineEnd(data)); err != nil {
		return 0, err
	}

	n, err := w.Write(result)
	return int64(n), errors.WithStack(err)
}

// RunHTML escapes or unescapes the HTML entities of the input
func RunHTML(direction Direction, nonASCII bool, input, output string) (err error) {
	var opts []enc.HTMLOption
	if nonASCII {
		opts = append(opts, enc.WithNonASCII())
	}
	escaper := enc.NewHTMLEscaper(opts...)

	in, err := streams.OpenInput(input)
	if err != nil {
		return err
	}
	out, err := streams.OpenOutput(output)
	if err != nil {
		streams.TryClose(in)
		return err
	}
	defer func() {
		if closeErr := streams.CloseAll(in, out); err == nil && closeErr != nil {
			err = errors.WithStack(closeErr)
		}
	}()

	data, err := ioutil.ReadAll(in)
	if err != nil {
		return errors.Wrapf(err, "Could not read %v", in)
	}

	var result string
	if direction == Encode {
		result = escaper.EscapeString(string(data))
	} else {
		result = escaper.UnescapeString(string(data))
	}

	_, err = io.WriteString(out, result)
	return errors.Wrapf(err, "Could not write %v", out)
}

// trimLineEnd removes the line terminator which usually ends a text file
func trimLineEnd(data []byte) []byte {
	for len(data) > 0 && (data[len(data)-1] == '\n' || data[len(data)-1] == '\r') {
		data = data[:len(data)-1]
	}
	return data
}

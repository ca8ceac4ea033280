package enc

import (
	"fmt"
	"io"
)

const (
	// StdAlphabet is the alphabet of the standard Base64 encoding, in value order
	StdAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

	// MimeLineLength is the line length used by MIME
	MimeLineLength = 76
)

var stdCharset = newOrderedCharset(StdAlphabet)

// stdSextets is what the zero value of Base64Encoder uses
var stdSextets = sextets{
	charset:   stdCharset,
	padding:   true,
	separator: "\n",
}

// Base64Option configures a Base64Encoder
type Base64Option func(*Base64Encoder)

// WithLineWrap breaks the encoded output into lines of n characters. Zero (or less) disables wrapping.
func WithLineWrap(n int) Base64Option {
	return func(b *Base64Encoder) {
		if n < 0 {
			n = 0
		}
		b.sextets.wrap = n
	}
}

// WithLineSeparator sets the line separator used when wrapping lines. Defaults to "\n".
func WithLineSeparator(separator string) Base64Option {
	return func(b *Base64Encoder) {
		b.sextets.separator = separator
	}
}

// -------------------------------------------------------

// Base64Encoder encodes 3 bytes to 4 characters using the standard alphabet and `=` padding. The output is
// optionally wrapped into lines. Decoding ignores whitespace.
//
// The zero value is ready to use and produces a single line.
type Base64Encoder struct {
	sextets sextets
}

// NewBase64Encoder creates a standard, padded Base64 encoder. Without options the output is a single line.
func NewBase64Encoder(opts ...Base64Option) *Base64Encoder {
	b := &Base64Encoder{
		sextets: sextets{
			charset:   stdCharset,
			padding:   true,
			separator: "\n",
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Base64Encoder) engine() *sextets {
	if b.sextets.charset == nil {
		return &stdSextets
	}
	return &b.sextets
}

func (b *Base64Encoder) Name() string {
	return "Base64"
}

func (b *Base64Encoder) String() string {
	if wrap := b.LineWrap(); wrap > 0 {
		return fmt.Sprintf("%v(%v, wrap=%d)", b.Name(), string(b.Code()), wrap)
	}
	return fmt.Sprintf("%v(%v)", b.Name(), string(b.Code()))
}

func (b *Base64Encoder) Code() byte {
	return 'S'
}

// LineWrap returns the configured line length, 0 if lines are not wrapped
func (b *Base64Encoder) LineWrap() int {
	return b.engine().wrap
}

func (b *Base64Encoder) Encode(src []byte) []byte {
	return b.engine().encode(src)
}

func (b *Base64Encoder) EncodeToString(src []byte) string {
	return string(b.Encode(src))
}

// Decode decodes padded Base64. Whitespace (newline, carriage return, tab and space) is ignored. The number of
// remaining characters must be divisible by 4.
func (b *Base64Encoder) Decode(src []byte) ([]byte, error) {
	return b.engine().decode(src)
}

func (b *Base64Encoder) DecodeString(src string) ([]byte, error) {
	return b.Decode([]byte(src))
}

func (b *Base64Encoder) EncodeStream(r io.Reader, w io.Writer) (int64, error) {
	return b.engine().encodeStream(r, w)
}

// DecodeStream decodes Base64 from r. The first `=` ends the stream.
func (b *Base64Encoder) DecodeStream(r io.Reader, w io.Writer) (int64, error) {
	return b.engine().decodeStream(r, w)
}

func (b *Base64Encoder) Ratio() float64 {
	return 4.0 / 3.0
}

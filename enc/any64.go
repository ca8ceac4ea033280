package enc

import (
	"fmt"
	"io"
)

// Any64Encoder is a Base64-style encoder with a caller supplied alphabet of 64 unique printable ASCII
// characters. The alphabet is sorted, so a character's value is its position in the sorted alphabet.
// No padding is emitted (the length of the last group is derived from the length of the input) and the output
// is never wrapped.
//
// The zero value has no alphabet: it encodes to nil and every other operation fails with a ConfigurationError.
// Use NewAny64Encoder.
type Any64Encoder struct {
	sextets sextets
}

// NewAny64Encoder builds the encoder for the given alphabet. Building the lookup table is the expensive part,
// so keep the encoder around: it is safe for concurrent use.
func NewAny64Encoder(alphabet string) (*Any64Encoder, error) {
	charset, err := NewCharset(alphabet)
	if err != nil {
		return nil, err
	}
	return &Any64Encoder{
		sextets: sextets{
			charset: charset,
		},
	}, nil
}

func (a *Any64Encoder) checkCharset() error {
	if a.sextets.charset == nil {
		return configurationError(nil, "%v has no alphabet, use NewAny64Encoder", a.Name())
	}
	return nil
}

func (a *Any64Encoder) Name() string {
	return "Any64"
}

func (a *Any64Encoder) String() string {
	return fmt.Sprintf("%v(%v)", a.Name(), string(a.Code()))
}

func (a *Any64Encoder) Code() byte {
	return 'A'
}

// Charset returns the (sorted) alphabet used by this encoder, nil for the zero value
func (a *Any64Encoder) Charset() *Charset {
	return a.sextets.charset
}

func (a *Any64Encoder) Encode(src []byte) []byte {
	if a.sextets.charset == nil {
		return nil
	}
	return a.sextets.encode(src)
}

func (a *Any64Encoder) EncodeToString(src []byte) string {
	return string(a.Encode(src))
}

// Decode decodes the text back into bytes. Whitespace which is not part of the alphabet is ignored. A final
// group of 2 characters yields one byte, a group of 3 characters two bytes. A single trailing character is
// rejected.
func (a *Any64Encoder) Decode(src []byte) ([]byte, error) {
	if err := a.checkCharset(); err != nil {
		return nil, err
	}
	return a.sextets.decode(src)
}

func (a *Any64Encoder) DecodeString(src string) ([]byte, error) {
	return a.Decode([]byte(src))
}

func (a *Any64Encoder) EncodeStream(r io.Reader, w io.Writer) (int64, error) {
	if err := a.checkCharset(); err != nil {
		return 0, err
	}
	return a.sextets.encodeStream(r, w)
}

// DecodeStream decodes the text from r. If `=` is not a part of the alphabet, it ends the stream.
func (a *Any64Encoder) DecodeStream(r io.Reader, w io.Writer) (int64, error) {
	if err := a.checkCharset(); err != nil {
		return 0, err
	}
	return a.sextets.decodeStream(r, w)
}

func (a *Any64Encoder) Ratio() float64 {
	return 4.0 / 3.0
}

package enc

import (
	"encoding/ascii85"
	"fmt"

	"github.com/pkg/errors"
)

// ascii85 characters which are replaced in the output, as they have a special meaning in domain names,
// paths and shells. The replacements are above the ascii85 range.
var base85Escapes = map[byte]byte{
	'.':  'v',
	'\\': 'w',
	'`':  'x',
}

var base85Unescapes = map[byte]byte{
	'v': '.',
	'w': '\\',
	'x': '`',
}

// -------------------------------------------------------

// Base85Encoder encodes 4 bytes to 5 characters (ascii85, with a few characters replaced)
type Base85Encoder struct {
}

func (b *Base85Encoder) Name() string {
	return "Base85"
}

func (b *Base85Encoder) String() string {
	return fmt.Sprintf("%v(%v)", b.Name(), string(b.Code()))
}

func (b *Base85Encoder) Code() byte {
	return 'W'
}

func (b *Base85Encoder) Encode(src []byte) []byte {
	if src == nil {
		return nil
	}
	dst := make([]byte, ascii85.MaxEncodedLen(len(src)))
	n := ascii85.Encode(dst, src)
	dst = dst[:n]
	for k, c := range dst {
		if r, ok := base85Escapes[c]; ok {
			dst[k] = r
		}
	}
	return dst
}

func (b *Base85Encoder) EncodeToString(src []byte) string {
	return string(b.Encode(src))
}

func (b *Base85Encoder) Decode(src []byte) ([]byte, error) {
	if src == nil {
		return nil, nil
	}

	source := make([]byte, len(src))
	for k, c := range src {
		if _, ok := base85Escapes[c]; ok {
			// The original character may not appear in the input
			return nil, invalidCharacter(c, int64(k))
		}
		if r, ok := base85Unescapes[c]; ok {
			c = r
		}
		source[k] = c
	}

	// Every 5 characters decode to at most 4 bytes, 'z' expands to 4 zero bytes
	dst := make([]byte, 4*len(source))
	ndst, _, err := ascii85.Decode(dst, source, true)
	if err != nil {
		var corrupt ascii85.CorruptInputError
		if errors.As(err, &corrupt) {
			return nil, corruptInput(src, int64(corrupt))
		}
		return nil, errors.WithStack(err)
	}
	return dst[:ndst], nil
}

func (b *Base85Encoder) DecodeString(src string) ([]byte, error) {
	return b.Decode([]byte(src))
}

func (b *Base85Encoder) Ratio() float64 {
	return 1.25
}

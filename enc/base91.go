package enc

import (
	"fmt"
	"strings"

	"github.com/mtraver/base91"
)

const (
	cb91 = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!#$%&()*+,-/:;<=>?@[]^_`{|}~\""
)

var base91Encoding = base91.NewEncoding(cb91)

// -------------------------------------------------------

// Base91Encoder when encoding, each group of 13 bits is converted into 2 radix-91 digits.
type Base91Encoder struct {
}

func (b *Base91Encoder) Name() string {
	return "Base91"
}

func (b *Base91Encoder) String() string {
	return fmt.Sprintf("%v(%v)", b.Name(), string(b.Code()))
}

func (b *Base91Encoder) Code() byte {
	return 'X'
}

func (b *Base91Encoder) Encode(src []byte) []byte {
	if src == nil {
		return nil
	}
	return []byte(base91Encoding.EncodeToString(src))
}

func (b *Base91Encoder) EncodeToString(src []byte) string {
	return string(b.Encode(src))
}

func (b *Base91Encoder) Decode(src []byte) ([]byte, error) {
	if src == nil {
		return nil, nil
	}
	if len(src) == 0 {
		return []byte{}, nil
	}
	for i, c := range src {
		if strings.IndexByte(cb91, c) == -1 {
			return nil, invalidCharacter(c, int64(i))
		}
	}

	res, err := base91Encoding.DecodeString(string(src))
	if err != nil {
		return nil, malformedInput("could not decode base91 (%d characters): %v", len(src), err)
	}
	return res, nil
}

func (b *Base91Encoder) DecodeString(src string) ([]byte, error) {
	return b.Decode([]byte(src))
}

func (b *Base91Encoder) Ratio() float64 {
	return 16.0 / 13.0
}

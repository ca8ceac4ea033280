package enc

import "fmt"

const hexAlphabet = "0123456789ABCDEF"

// HexEncoder encodes every byte into two uppercase hexadecimal digits. Decoding accepts both cases.
//
// Note the asymmetry: encoding nil yields an empty result, while decoding nil yields nil.
type HexEncoder struct {
}

func (h *HexEncoder) Name() string {
	return "Hex"
}

func (h *HexEncoder) String() string {
	return fmt.Sprintf("%v(%v)", h.Name(), string(h.Code()))
}

func (h *HexEncoder) Code() byte {
	return 'H'
}

// Encode never returns nil, not even for nil input.
func (h *HexEncoder) Encode(src []byte) []byte {
	dst := make([]byte, len(src)*2)
	for i, b := range src {
		dst[i*2] = hexAlphabet[b>>4]
		dst[i*2+1] = hexAlphabet[b&0x0f]
	}
	return dst
}

func (h *HexEncoder) EncodeToString(src []byte) string {
	return string(h.Encode(src))
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Decode requires an even number of hexadecimal digits
func (h *HexEncoder) Decode(src []byte) ([]byte, error) {
	if src == nil {
		return nil, nil
	}
	if len(src)%2 != 0 {
		return nil, malformedInput("odd length hex string (%d characters)", len(src))
	}

	dst := make([]byte, len(src)/2)
	for i := 0; i < len(src); i += 2 {
		hi, ok := fromHexChar(src[i])
		if !ok {
			return nil, invalidCharacter(src[i], int64(i))
		}
		lo, ok := fromHexChar(src[i+1])
		if !ok {
			return nil, invalidCharacter(src[i+1], int64(i+1))
		}
		dst[i/2] = hi<<4 | lo
	}
	return dst, nil
}

func (h *HexEncoder) DecodeString(src string) ([]byte, error) {
	return h.Decode([]byte(src))
}

func (h *HexEncoder) Ratio() float64 {
	return 2
}

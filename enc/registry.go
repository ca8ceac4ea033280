package enc

import (
	"strings"

	"github.com/pkg/errors"
)

// Encoders returns the default instance of every encoder which needs no configuration, in a stable order.
// Any64 is not on the list, as it needs an alphabet.
func Encoders() []Encoder {
	return []Encoder{
		NewBase64Encoder(),
		&HexEncoder{},
		&Base32Encoder{},
		&Base85Encoder{},
		&Base91Encoder{},
		&Base128Encoder{},
	}
}

func matches(e Encoder, nameOrCode string) bool {
	if strings.EqualFold(e.Name(), nameOrCode) {
		return true
	}
	return len(nameOrCode) == 1 && strings.EqualFold(string(e.Code()), nameOrCode)
}

// Lookup finds an encoder by its name (case insensitive) or its one-letter code.
func Lookup(nameOrCode string) (Encoder, error) {
	nameOrCode = strings.TrimSpace(nameOrCode)
	for _, e := range Encoders() {
		if matches(e, nameOrCode) {
			return e, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownEncoder, "%q", nameOrCode)
}

// NewEncoderByName creates an encoder by name or code. The alphabet is required for Any64 and not allowed
// anywhere else. Line wrapping is only supported by Base64.
func NewEncoderByName(nameOrCode string, alphabet string, wrap int) (Encoder, error) {
	nameOrCode = strings.TrimSpace(nameOrCode)

	any64 := &Any64Encoder{}
	if matches(any64, nameOrCode) {
		if alphabet == "" {
			return nil, configurationError(nil, "%v needs an alphabet", any64.Name())
		}
		if wrap > 0 {
			return nil, configurationError(nil, "%v does not support line wrapping", any64.Name())
		}
		a, err := NewAny64Encoder(alphabet)
		if err != nil {
			return nil, err
		}
		return a, nil
	}

	e, err := Lookup(nameOrCode)
	if err != nil {
		return nil, err
	}
	if alphabet != "" {
		return nil, configurationError(nil, "%v does not accept a custom alphabet", e.Name())
	}

	if b, ok := e.(*Base64Encoder); ok {
		if wrap > 0 {
			return NewBase64Encoder(WithLineWrap(wrap)), nil
		}
		return b, nil
	} else if wrap > 0 {
		return nil, configurationError(nil, "%v does not support line wrapping", e.Name())
	}
	return e, nil
}

package enc

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind tells apart the different ways an input (or a configuration) can be rejected. All of them are
// reported as an InvalidArgumentError and all of them match ErrInvalidArgument.
type ErrorKind int

const (
	// ConfigurationError is returned when an encoder cannot be constructed, e.g. the alphabet is too short.
	ConfigurationError ErrorKind = iota + 1
	// MalformedInput is returned when the input does not follow the grouping rules of the encoding.
	MalformedInput
	// InvalidCharacter is returned when a character outside of the alphabet is found while decoding.
	InvalidCharacter
	// IOFailure is returned when the underlying stream fails while encoding or decoding a stream.
	IOFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigurationError:
		return "ConfigurationError"
	case MalformedInput:
		return "MalformedInput"
	case InvalidCharacter:
		return "InvalidCharacter"
	case IOFailure:
		return "IOFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ErrInvalidArgument is matched (with errors.Is) by every error returned by the encoders.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUnknownEncoder is returned by Lookup when no encoder with the given name or code exists.
var ErrUnknownEncoder = errors.New("unknown encoder")

// InvalidArgumentError is the single error type returned by the encoders. The Kind field distinguishes
// between configuration problems, malformed input, invalid characters and stream failures.
type InvalidArgumentError struct {
	Kind    ErrorKind
	Message string
	// Char is the offending character. Only set for InvalidCharacter.
	Char byte
	// Index is the (approximate) position in the input where the problem was detected, -1 if unknown.
	Index int64
	// Err is the underlying cause, if any.
	Err error
}

func (e *InvalidArgumentError) Error() string {
	msg := e.Message
	switch e.Kind {
	case InvalidCharacter:
		msg = fmt.Sprintf("%s %q at index %d", msg, rune(e.Char), e.Index)
	case IOFailure:
		msg = fmt.Sprintf("%s at index %d", msg, e.Index)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvalidArgument) succeed for any kind.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// IsKind returns true if any error in the chain is an InvalidArgumentError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var iae *InvalidArgumentError
	if errors.As(err, &iae) {
		return iae.Kind == kind
	}
	return false
}

func configurationError(cause error, format string, args ...interface{}) error {
	return errors.WithStack(&InvalidArgumentError{
		Kind:    ConfigurationError,
		Message: fmt.Sprintf(format, args...),
		Index:   -1,
		Err:     cause,
	})
}

func malformedInput(format string, args ...interface{}) error {
	return errors.WithStack(&InvalidArgumentError{
		Kind:    MalformedInput,
		Message: fmt.Sprintf(format, args...),
		Index:   -1,
	})
}

func invalidCharacter(c byte, index int64) error {
	return errors.WithStack(&InvalidArgumentError{
		Kind:    InvalidCharacter,
		Message: "invalid character",
		Char:    c,
		Index:   index,
	})
}

func ioFailure(cause error, message string, index int64) error {
	return errors.WithStack(&InvalidArgumentError{
		Kind:    IOFailure,
		Message: message,
		Index:   index,
		Err:     cause,
	})
}

// corruptInput converts an offset reported by the standard library decoders (base32.CorruptInputError,
// ascii85.CorruptInputError) into an InvalidCharacter or a MalformedInput error.
func corruptInput(src []byte, offset int64) error {
	if offset >= 0 && offset < int64(len(src)) {
		return invalidCharacter(src[offset], offset)
	}
	return malformedInput("truncated input (%d characters)", len(src))
}

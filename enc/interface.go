package enc

import "io"

// BufferSize is the size of the read and write buffers used by the stream encoders
const BufferSize = 16384

// Encoder converts binary data into text and back.
//
// A nil input is passed through as nil (with the exception of HexEncoder.Encode, see there), an empty input
// produces an empty, non-nil output.
type Encoder interface {
	// Name is the user-friendly name of this encoder
	Name() string
	// Code represents the short (one-letter) code for the encoder
	Code() byte

	// Encode will take an array of bytes and encode it using this encoder
	Encode(src []byte) []byte
	// Decode is the reverse process of encoding
	Decode(src []byte) ([]byte, error)

	// EncodeToString is the same as Encode, but returns a string
	EncodeToString(src []byte) string
	// DecodeString is the same as Decode, but takes a string
	DecodeString(src string) ([]byte, error)

	// Ratio returns the (approximate) number of output characters produced for every input byte
	Ratio() float64
}

// StreamEncoder is an Encoder which can also process data incrementally, without keeping the whole input or
// output in memory. The streams are not synchronized: use one stream per call.
type StreamEncoder interface {
	Encoder

	// EncodeStream reads binary data from r until EOF and writes the encoded text to w. It returns the number
	// of bytes written to w.
	EncodeStream(r io.Reader, w io.Writer) (int64, error)
	// DecodeStream reads encoded text from r until EOF (or the padding sentinel) and writes the decoded bytes
	// to w. It returns the number of bytes written to w.
	DecodeStream(r io.Reader, w io.Writer) (int64, error)
}

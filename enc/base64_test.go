package enc

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func Test_Base64Encoder(t *testing.T) {
	encoder := NewBase64Encoder()
	for _, encoderTest := range encoderTests {
		encoded := encoder.Encode(encoderTest)
		require.NotContains(t, string(encoded), "\n")
		require.Equal(t, base64.StdEncoding.EncodeToString(encoderTest), string(encoded))
		decoded, err := encoder.Decode(encoded)
		require.NoError(t, err)
		require.Equal(t, encoderTest, decoded)
	}
}

func Test_Base64Encoder_Pleasure(t *testing.T) {
	encoder := NewBase64Encoder()
	require.Equal(t, "YW55IGNhcm5hbCBwbGVhc3VyZQ==", encoder.EncodeToString([]byte("any carnal pleasure")))

	decoded, err := encoder.DecodeString("YW55IGNhcm5hbCBwbGVhc3VyZQ==")
	require.NoError(t, err)
	require.Equal(t, []byte("any carnal pleasure"), decoded)
}

func Test_Base64Encoder_LengthAndPadding(t *testing.T) {
	encoder := NewBase64Encoder()
	for n := 0; n < 100; n++ {
		encoded := encoder.EncodeToString(randomBytes(int64(n), n))
		require.Equal(t, 4*((n+2)/3), len(encoded), "wrong length for %d bytes", n)
		require.Equal(t, (3-n%3)%3, strings.Count(encoded, "="), "wrong padding for %d bytes", n)
	}
}

func Test_Base64Encoder_LineWrap(t *testing.T) {
	encoder := NewBase64Encoder(WithLineWrap(4))
	require.Equal(t, 4, encoder.LineWrap())
	encoded := encoder.EncodeToString([]byte("any carnal pleasure"))
	require.Equal(t, "YW55\nIGNh\ncm5h\nbCBw\nbGVh\nc3Vy\nZQ==", encoded)

	decoded, err := NewBase64Encoder().DecodeString(encoded)
	require.NoError(t, err)
	require.Equal(t, []byte("any carnal pleasure"), decoded)
}

func Test_Base64Encoder_MimeLineWrap(t *testing.T) {
	encoder := NewBase64Encoder(WithLineWrap(MimeLineLength), WithLineSeparator("\r\n"))
	data := randomBytes(7, 1000)
	encoded := encoder.EncodeToString(data)

	lines := strings.Split(encoded, "\r\n")
	for i, line := range lines {
		if i < len(lines)-1 {
			require.Len(t, line, MimeLineLength)
		} else {
			require.True(t, len(line) > 0 && len(line) <= MimeLineLength)
		}
	}
	require.Equal(t, base64.StdEncoding.EncodeToString(data), strings.Join(lines, ""))

	decoded, err := encoder.DecodeString(encoded)
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func Test_Base64Encoder_LineWrapExactMultiple(t *testing.T) {
	encoded := NewBase64Encoder(WithLineWrap(4)).EncodeToString([]byte("abcdef"))
	require.Equal(t, "YWJj\nZGVm", encoded)
}

func Test_Base64Encoder_Whitespace(t *testing.T) {
	decoded, err := NewBase64Encoder().DecodeString(" YW55 IGNh\r\ncm5h\tbCBwbGVhc3VyZQ==\n")
	require.NoError(t, err)
	require.Equal(t, []byte("any carnal pleasure"), decoded)
}

func Test_Base64Encoder_RejectsLength(t *testing.T) {
	_, err := NewBase64Encoder().DecodeString("YW55I")
	require.Error(t, err)
	require.True(t, IsKind(err, MalformedInput), "expected MalformedInput, got %v", err)
	require.Contains(t, err.Error(), "length not divisible by 4")

	// Unpadded input is not standard Base64
	_, err = NewBase64Encoder().DecodeString("YQ")
	require.True(t, IsKind(err, MalformedInput))
}

func Test_Base64Encoder_RejectsCharacter(t *testing.T) {
	_, err := NewBase64Encoder().DecodeString("YW5$")
	require.Error(t, err)
	require.True(t, IsKind(err, InvalidCharacter), "expected InvalidCharacter, got %v", err)
	require.Contains(t, err.Error(), "'$'")

	var iae *InvalidArgumentError
	require.True(t, errors.As(err, &iae))
	require.Equal(t, byte('$'), iae.Char)
	require.Equal(t, int64(3), iae.Index)
}

func Test_Base64Encoder_RejectsMisplacedPadding(t *testing.T) {
	for _, input := range []string{"Y===", "=YWJ", "YQ==YWJj", "AB=C", "YW=A"} {
		_, err := NewBase64Encoder().DecodeString(input)
		require.Errorf(t, err, "%q should not decode", input)
		require.Truef(t, IsKind(err, InvalidCharacter), "%q: expected InvalidCharacter, got %v", input, err)
	}
}

func Test_Base64Encoder_Stream(t *testing.T) {
	for _, wrap := range []int{0, 1, 4, 7, MimeLineLength} {
		encoder := NewBase64Encoder(WithLineWrap(wrap))
		for n := 0; n < 100; n++ {
			data := randomBytes(int64(n), n)

			out := &bytes.Buffer{}
			written, err := encoder.EncodeStream(bytes.NewReader(data), out)
			require.NoError(t, err)
			require.Equal(t, int64(out.Len()), written)
			require.Equal(t, encoder.EncodeToString(data), out.String(), "wrap=%d, n=%d", wrap, n)

			decoded := &bytes.Buffer{}
			written, err = encoder.DecodeStream(strings.NewReader(out.String()), decoded)
			require.NoError(t, err)
			require.Equal(t, int64(n), written)
			require.Equal(t, string(data), decoded.String())
		}
	}
}

func Test_Base64Encoder_StreamStopsAtPadding(t *testing.T) {
	out := &bytes.Buffer{}
	_, err := NewBase64Encoder().DecodeStream(strings.NewReader("YQ==YWJj"), out)
	require.NoError(t, err)
	require.Equal(t, "a", out.String())
}

func Test_Base64Encoder_StreamDropsDanglingCharacter(t *testing.T) {
	out := &bytes.Buffer{}
	_, err := NewBase64Encoder().DecodeStream(strings.NewReader("YWJjZ"), out)
	require.NoError(t, err)
	require.Equal(t, "abc", out.String())

	// The in-memory decoder is strict about the same input
	_, err = NewBase64Encoder().DecodeString("YWJjZ")
	require.True(t, IsKind(err, MalformedInput))
}

func Test_Base64Encoder_StreamWhitespace(t *testing.T) {
	out := &bytes.Buffer{}
	_, err := NewBase64Encoder().DecodeStream(strings.NewReader("YW55\nIGNh\r\ncm5h bCBw\tbGVhc3VyZQ==\n"), out)
	require.NoError(t, err)
	require.Equal(t, "any carnal pleasure", out.String())
}

func Test_Base64Encoder_ZeroValue(t *testing.T) {
	encoder := Base64Encoder{}
	require.Equal(t, "YW55IGNhcm5hbCBwbGVhc3VyZQ==", encoder.EncodeToString([]byte("any carnal pleasure")))
	require.Equal(t, 0, encoder.LineWrap())
	require.Equal(t, "Base64(S)", encoder.String())

	decoded, err := encoder.DecodeString("YW55IGNhcm5hbCBwbGVhc3VyZQ==")
	require.NoError(t, err)
	require.Equal(t, "any carnal pleasure", string(decoded))

	out := &bytes.Buffer{}
	_, err = encoder.EncodeStream(strings.NewReader("any carnal pleasure"), out)
	require.NoError(t, err)
	require.Equal(t, "YW55IGNhcm5hbCBwbGVhc3VyZQ==", out.String())

	for _, encoderTest := range encoderTests {
		require.Equal(t, base64.StdEncoding.EncodeToString(encoderTest), encoder.EncodeToString(encoderTest))
	}
}

package enc

import (
	"bufio"
	"io"

	"go.chromium.org/luci/common/iotools"
)

// PadChar is the padding sentinel of the standard Base64 encoding. It is never part of the standard alphabet.
const PadChar = '='

// sextets is the machinery shared by Base64Encoder and Any64Encoder: it splits every 3 bytes into four 6-bit
// values and maps them through a Charset.
type sextets struct {
	charset   *Charset
	padding   bool
	wrap      int
	separator string
}

// isWhitespace returns true for the characters which are skipped while decoding
func isWhitespace(c byte) bool {
	return c == '\n' || c == '\r' || c == '\t' || c == ' '
}

// ignorable returns true for whitespace which is not a symbol of the alphabet
func (s *sextets) ignorable(c byte) bool {
	return isWhitespace(c) && !s.charset.Contains(c)
}

// terminates returns true if the character is a padding sentinel for this alphabet
func (s *sextets) terminates(c byte) bool {
	return c == PadChar && !s.charset.Contains(c)
}

// encodedLen returns the number of symbols (without line breaks) for n input bytes
func (s *sextets) encodedLen(n int) int {
	if s.padding {
		return (n + 2) / 3 * 4
	}
	return n/3*4 + [3]int{0, 2, 3}[n%3]
}

// appendGroup appends the symbols for one group of n (1-3) bytes. Missing bytes must be zero.
func (s *sextets) appendGroup(dst []byte, b0, b1, b2 byte, n int) []byte {
	sym := &s.charset.symbols
	dst = append(dst, sym[b0>>2], sym[(b0&0x03)<<4|b1>>4])
	switch n {
	case 1:
		if s.padding {
			dst = append(dst, PadChar, PadChar)
		}
	case 2:
		dst = append(dst, sym[(b1&0x0f)<<2|b2>>6])
		if s.padding {
			dst = append(dst, PadChar)
		}
	default:
		dst = append(dst, sym[(b1&0x0f)<<2|b2>>6], sym[b2&0x3f])
	}
	return dst
}

func (s *sextets) encode(src []byte) []byte {
	if src == nil {
		return nil
	}

	dst := make([]byte, 0, s.encodedLen(len(src)))
	i := 0
	for ; i+3 <= len(src); i += 3 {
		dst = s.appendGroup(dst, src[i], src[i+1], src[i+2], 3)
	}
	switch len(src) - i {
	case 1:
		dst = s.appendGroup(dst, src[i], 0, 0, 1)
	case 2:
		dst = s.appendGroup(dst, src[i], src[i+1], 0, 2)
	}

	return wrapLines(dst, s.wrap, s.separator)
}

// wrapLines inserts the separator after every width symbols. No separator is added after the last line.
func wrapLines(symbols []byte, width int, separator string) []byte {
	if width <= 0 || len(symbols) <= width {
		return symbols
	}

	breaks := (len(symbols) - 1) / width
	dst := make([]byte, 0, len(symbols)+breaks*len(separator))
	for i := 0; i < len(symbols); i += width {
		if i > 0 {
			dst = append(dst, separator...)
		}
		end := i + width
		if end > len(symbols) {
			end = len(symbols)
		}
		dst = append(dst, symbols[i:end]...)
	}
	return dst
}

func (s *sextets) decode(src []byte) ([]byte, error) {
	if src == nil {
		return nil, nil
	}

	n := 0
	for _, c := range src {
		if !s.ignorable(c) {
			n++
		}
	}

	if s.padding {
		if n%4 != 0 {
			return nil, malformedInput("length not divisible by 4 (%d characters)", n)
		}
	} else if n%4 == 1 {
		return nil, malformedInput("length %d leaves a single dangling character", n)
	}

	dst := make([]byte, 0, n/4*3+2)
	var quad [4]byte
	pos, seen, pads := 0, 0, 0

	for i, c := range src {
		if s.ignorable(c) {
			continue
		}
		seen++

		if s.padding && c == PadChar {
			// Padding may only fill the last one or two places of the final group
			if seen <= n-2 || pos < 2 {
				return nil, invalidCharacter(c, int64(i))
			}
			pads++
			continue
		}
		if pads > 0 {
			return nil, invalidCharacter(c, int64(i))
		}

		v, ok := s.charset.Index(c)
		if !ok {
			return nil, invalidCharacter(c, int64(i))
		}
		quad[pos] = byte(v)
		pos++

		if pos == 4 {
			dst = append(dst, quad[0]<<2|quad[1]>>4, quad[1]<<4|quad[2]>>2, quad[2]<<6|quad[3])
			pos = 0
		}
	}

	switch pos {
	case 2:
		dst = append(dst, quad[0]<<2|quad[1]>>4)
	case 3:
		dst = append(dst, quad[0]<<2|quad[1]>>4, quad[1]<<4|quad[2]>>2)
	}

	return dst, nil
}

// countingWriter counts the bytes which actually reached the underlying writer
type countingWriter struct {
	w     io.Writer
	count int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.count += int64(n)
	return n, err
}

// symbolWriter writes symbols into a buffered sink, breaking the lines if needed
type symbolWriter struct {
	w         *bufio.Writer
	wrap      int
	separator string
	column    int
}

func (sw *symbolWriter) write(symbols []byte) error {
	for _, c := range symbols {
		if sw.wrap > 0 && sw.column == sw.wrap {
			if _, err := sw.w.WriteString(sw.separator); err != nil {
				return err
			}
			sw.column = 0
		}
		if err := sw.w.WriteByte(c); err != nil {
			return err
		}
		sw.column++
	}
	return nil
}

// encodeStream encodes the data from r into w. A group of three bytes is always encoded in full, so only the
// final (partial) group needs to wait for the end of the stream. Whatever was encoded before a read failure is
// still flushed to w.
func (s *sextets) encodeStream(r io.Reader, w io.Writer) (int64, error) {
	in := &iotools.CountingReader{Reader: bufio.NewReaderSize(r, BufferSize)}
	sink := &countingWriter{w: w}
	out := &symbolWriter{
		w:         bufio.NewWriterSize(sink, BufferSize),
		wrap:      s.wrap,
		separator: s.separator,
	}

	var group [3]byte
	var symbols [4]byte
	n := 0

	for {
		b, err := in.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			_ = out.w.Flush()
			return sink.count, ioFailure(err, "could not read input", in.Count)
		}

		group[n] = b
		n++
		if n == 3 {
			if err := out.write(s.appendGroup(symbols[:0], group[0], group[1], group[2], 3)); err != nil {
				return sink.count, ioFailure(err, "could not write output", sink.count)
			}
			n = 0
		}
	}

	if n > 0 {
		if n == 1 {
			group[1] = 0
		}
		if err := out.write(s.appendGroup(symbols[:0], group[0], group[1], 0, n)); err != nil {
			return sink.count, ioFailure(err, "could not write output", sink.count)
		}
	}

	if err := out.w.Flush(); err != nil {
		return sink.count, ioFailure(err, "could not write output", sink.count)
	}
	return sink.count, nil
}

// decodeStream runs a four position state machine over the characters of r. A byte is complete (and written)
// at the second, third and fourth position of every group. Whitespace is skipped at any position and the
// padding sentinel ends the stream.
//
// A single dangling character at the end of the stream carries less than a byte's worth of bits and is
// dropped without an error, in line with the padding sentinel simply ending the stream. The bytes decoded
// before an invalid character or a read failure are flushed to w before the error is returned.
func (s *sextets) decodeStream(r io.Reader, w io.Writer) (int64, error) {
	in := &iotools.CountingReader{Reader: bufio.NewReaderSize(r, BufferSize)}
	sink := &countingWriter{w: w}
	out := bufio.NewWriterSize(sink, BufferSize)

	var prev byte
	pos := 0

	for {
		c, err := in.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			_ = out.Flush()
			return sink.count, ioFailure(err, "could not read input", in.Count)
		}

		if s.ignorable(c) {
			continue
		}
		if s.terminates(c) {
			break
		}

		idx, ok := s.charset.Index(c)
		if !ok {
			_ = out.Flush()
			return sink.count, invalidCharacter(c, in.Count-1)
		}
		v := byte(idx)

		var b byte
		switch pos {
		case 1:
			b = prev<<2 | v>>4
		case 2:
			b = prev<<4 | v>>2
		case 3:
			b = prev<<6 | v
		}
		if pos > 0 {
			if err := out.WriteByte(b); err != nil {
				return sink.count, ioFailure(err, "could not write output", sink.count)
			}
		}

		prev = v
		pos = (pos + 1) % 4
	}

	if err := out.Flush(); err != nil {
		return sink.count, ioFailure(err, "could not write output", sink.count)
	}
	return sink.count, nil
}

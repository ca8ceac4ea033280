package streams

import (
	"fmt"
	"io"

	"github.com/bokysan/codecs/enc"
)

// NamedReader implements the io.ReadCloser interface as well as fmt.Stringer. The name (usually the file name)
// is returned when printing the stream with `%v`, followed by the name of the first named stream it wraps.
// `Close()` can be called safely multiple times.
type NamedReader struct {
	ReadCloserClosed
	name string
}

func NewNamedReader(wrapped io.ReadCloser, name string) *NamedReader {
	return &NamedReader{
		ReadCloserClosed: NewSafeReader(wrapped),
		name:             name,
	}
}

func (ns *NamedReader) WriteTo(w io.Writer) (n int64, err error) {
	if o, ok := ns.ReadCloserClosed.(io.WriterTo); ok {
		return o.WriteTo(w)
	}
	return io.CopyBuffer(w, ns.ReadCloserClosed, make([]byte, enc.BufferSize))
}

func (ns *NamedReader) String() string {
	result := ns.name

	var s io.ReadCloser = ns.ReadCloserClosed
	for {
		t, ok := s.(UnwrappedReadCloser)
		if !ok {
			break
		}
		u := t.Unwrap()
		if v, ok := u.(fmt.Stringer); ok {
			result += "->" + v.String()
			break
		}
		s = u
	}

	return result
}

func (ns *NamedReader) Unwrap() io.ReadCloser {
	return ns.ReadCloserClosed
}

package streams

import (
	"fmt"
	"io"

	"github.com/bokysan/codecs/enc"
)

// NamedWriter implements the io.WriteCloser interface as well as fmt.Stringer. The name (usually the file name)
// is returned when printing the stream with `%v`, followed by the name of the first named stream it wraps.
// `Close()` can be called safely multiple times.
type NamedWriter struct {
	WriteCloserClosed
	name string
}

// NewNamedWriter will, unsurprisingly, create a new NamedWriter with a given name
func NewNamedWriter(wrapped io.WriteCloser, name string) *NamedWriter {
	return &NamedWriter{
		WriteCloserClosed: NewSafeWriter(wrapped),
		name:              name,
	}
}

func (ns *NamedWriter) ReadFrom(r io.Reader) (n int64, err error) {
	if o, ok := ns.WriteCloserClosed.(io.ReaderFrom); ok {
		return o.ReadFrom(r)
	}
	return io.CopyBuffer(ns.WriteCloserClosed, r, make([]byte, enc.BufferSize))
}

func (ns *NamedWriter) String() string {
	result := ns.name

	var s io.WriteCloser = ns.WriteCloserClosed
	for {
		t, ok := s.(UnwrappedWriteCloser)
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

func (ns *NamedWriter) Unwrap() io.WriteCloser {
	return ns.WriteCloserClosed
}

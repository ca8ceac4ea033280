package streams

import (
	"io"
	"sync"

	"github.com/bokysan/codecs/enc"
)

// SafeReader implements the io.ReadCloser and makes sure that `Close()` can be called safely multiple times,
// from multiple goroutines. Calling `Close()` on a closed object will simply succeed without an error.
type SafeReader struct {
	io.ReadCloser
	mu     sync.Mutex
	closed bool
}

func NewSafeReader(wrapped io.ReadCloser) *SafeReader {
	if scs, ok := wrapped.(*SafeReader); ok {
		return scs
	}

	return &SafeReader{
		ReadCloser: wrapped,
	}
}

func (ns *SafeReader) WriteTo(w io.Writer) (n int64, err error) {
	if o, ok := ns.ReadCloser.(io.WriterTo); ok {
		return o.WriteTo(w)
	}
	return io.CopyBuffer(w, ns.ReadCloser, make([]byte, enc.BufferSize))
}

// Close will close the underlying stream. If the Close has already been called, it will do nothing
func (ns *SafeReader) Close() error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if ns.closed {
		return nil
	}
	ns.closed = true
	return LogClose(ns.ReadCloser)
}

// Closed will return `true` if SafeReader.Close has been called at least once
func (ns *SafeReader) Closed() bool {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.closed
}

// Unwrap returns the embedded io.ReadCloser
func (ns *SafeReader) Unwrap() io.ReadCloser {
	return ns.ReadCloser
}

package streams

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// StdStreamName is the file name which selects standard input or standard output
const StdStreamName = "-"

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// OpenInput opens the named file for reading. An empty name or "-" selects the standard input, which is never
// closed.
func OpenInput(name string) (*NamedReader, error) {
	if name == "" || name == StdStreamName {
		return NewNamedReader(ioutil.NopCloser(os.Stdin), "stdin"), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not open input file %v", name)
	}
	log.Debugf("Reading from %v", name)
	return NewNamedReader(f, name), nil
}

// OpenOutput creates (or truncates) the named file. An empty name or "-" selects the standard output, which is
// never closed.
func OpenOutput(name string) (*NamedWriter, error) {
	if name == "" || name == StdStreamName {
		return NewNamedWriter(nopWriteCloser{os.Stdout}, "stdout"), nil
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not create output file %v", name)
	}
	log.Debugf("Writing to %v", name)
	return NewNamedWriter(f, name), nil
}

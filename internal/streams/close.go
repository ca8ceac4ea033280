package streams

import (
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// TryClose closes the stream and only reports to the log if that fails
func TryClose(closer io.Closer) {
	if closer == nil {
		return
	}

	if c, ok := closer.(Closed); ok && c.Closed() {
		return
	}

	if err := closer.Close(); err != nil && !strings.Contains(err.Error(), "use of closed network connection") {
		err = errors.WithStack(err)
		log.WithError(err).Errorf("Could not close stream: %v", err)
	}
}

// LogClose closes the stream, logs the failure and returns it
func LogClose(closer io.Closer) error {
	if closer == nil {
		return nil
	}

	if c, ok := closer.(Closed); ok && c.Closed() {
		return nil
	}

	if err := closer.Close(); err != nil {
		err = errors.WithStack(err)
		log.WithError(err).Errorf("Could not close %v: %v", closer, err)
		return err
	}
	return nil
}

// CloseAll closes every stream, even if some of them fail, and returns all the errors together
func CloseAll(closers ...io.Closer) error {
	var errs error
	for _, c := range closers {
		if err := LogClose(c); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}

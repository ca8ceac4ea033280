package util

import (
	"github.com/bokysan/codecs/enc"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"os"
)

const (
	ErrGeneric = 99

	// Exit codes for the codec errors, taken from sysexits.h
	ErrDataInvalid   = 65
	ErrIOFailure     = 74
	ErrConfiguration = 78
)

// ExitCode returns the process exit code for the given error. Flag errors exit with the flags error type, codec
// errors with the matching sysexits code and everything else with ErrGeneric.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var flagsError *flags.Error
	if errors.As(err, &flagsError) {
		if flagsError.Type == flags.ErrHelp {
			return 0
		}
		return int(flagsError.Type)
	}

	var codecError *enc.InvalidArgumentError
	if errors.As(err, &codecError) {
		switch codecError.Kind {
		case enc.ConfigurationError:
			return ErrConfiguration
		case enc.IOFailure:
			return ErrIOFailure
		default:
			return ErrDataInvalid
		}
	}

	return ErrGeneric
}

// MustErrorNilOrExit will check the provided argument. If it's `nil` it will simply return. If it's
// not `nil`, it will log the error as `log.FatalLevel` and exit immediately with the code from ExitCode.
// Help requests exit with 0 without logging anything.
func MustErrorNilOrExit(err error) {
	if err == nil {
		return
	}

	code := ExitCode(err)
	if code == 0 {
		os.Exit(0)
		return
	}

	log.StandardLogger().WithError(err).Logf(log.FatalLevel, "Error: %+v", err)
	log.Exit(code)
}

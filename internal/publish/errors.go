package publish

import (
	"errors"

	"github.com/Kush-Singh-26/publish/builder/config"
	"github.com/Kush-Singh-26/publish/builder/parser"
	"github.com/Kush-Singh-26/publish/builder/services"
)

// Exit codes
const (
	ExitOK    = 0
	ExitAbort = 1 // an expected precondition did not hold
	ExitFault = 2 // unexpected I/O failure
)

var (
	ErrDirMissing       = errors.New("directory does not exist")
	ErrEmptyDestination = errors.New("destination file name is empty")
)

// preconditions are reported as clean aborts; anything else is a fault.
var preconditions = []error{
	ErrDirMissing,
	ErrEmptyDestination,
	services.ErrNoMarkdownFiles,
	services.ErrSourceMissing,
	services.ErrSameFile,
	parser.ErrTitleNotFound,
	config.ErrInvalid,
}

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }
func (e *ExitError) ExitCode() int { return e.Code }

// Classify wraps err with the exit code it should produce. nil stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return err
	}
	for _, target := range preconditions {
		if errors.Is(err, target) {
			return &ExitError{Code: ExitAbort, Err: err}
		}
	}
	return &ExitError{Code: ExitFault, Err: err}
}

// ExitCode returns the exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(Classify(err), &ee) {
		return ee.Code
	}
	return ExitFault
}

package cli

import (
	"errors"

	"github.com/yaklabco/livemark/pkg/fsutil"
)

// Exit codes for livemark.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates style sheet or configuration errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrStyleConfig wraps style sheet loading failures so they map to
// ExitConfigError.
var ErrStyleConfig = errors.New("style configuration error")

// ExitCodeFromError maps an error returned by command execution to an
// exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	case errors.Is(err, ErrStyleConfig):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

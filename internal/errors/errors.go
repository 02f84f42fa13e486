package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/mholecek/worktrack/internal/logger"
)

// Sentinel errors for the storage and backup layers. Callers match them with
// errors.Is.
var (
	// ErrStorageUnavailable means the backing database could not be opened or
	// failed its integrity probe. Fatal at startup; there is no fallback to an
	// empty in-memory state.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotFound is returned by update operations referencing an absent id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidBackup means a snapshot failed structural validation. It is
	// always reported before any collection is cleared.
	ErrInvalidBackup = errors.New("invalid backup")

	// ErrBudgetAdjust classifies a failed shared-budget adjustment. The
	// enclosing transaction rolls back, so the record write is undone with it;
	// the error is logged distinctly so a reconcile can be offered.
	ErrBudgetAdjust = errors.New("budget adjustment failed")
)

// PartialRestoreError reports how many records failed to insert during a
// restore. Records that did insert are retained; restore is best-effort, not
// atomic.
type PartialRestoreError struct {
	Failed int
}

func (e *PartialRestoreError) Error() string {
	return fmt.Sprintf("%d errors during restore", e.Failed)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

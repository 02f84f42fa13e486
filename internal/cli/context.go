package cli

import (
	"fmt"
	"time"

	"github.com/mholecek/worktrack/internal/backup"
	"github.com/mholecek/worktrack/internal/constants"
	"github.com/mholecek/worktrack/internal/logger"
	"github.com/mholecek/worktrack/internal/storage"
)

// Context is passed to every command. The store handle lives here instead of
// a package-level variable so tests can run commands against isolated
// databases.
type Context struct {
	Store *storage.Store
}

// PerformAutomaticBackup creates a backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.Path())
	if _, err := mgr.Create(c.Store); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseDateFlag parses a date or datetime flag in local time. A bare date
// used as an end bound means the end of that day.
func ParseDateFlag(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	if t, err := time.ParseInLocation(constants.DateTimeFormat, s, time.Local); err == nil {
		return &t, nil
	}

	t, err := time.ParseInLocation(constants.DateFormat, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected %s or %s)", s, constants.DateFormat, constants.DateTimeFormat)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}

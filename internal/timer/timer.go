// Package timer keeps the running work session as durable scratch state in
// the settings store, so a crash or restart while the timer runs can resume.
// This is best-effort: the work log itself is written only on stop.
package timer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mholecek/worktrack/internal/constants"
	"github.com/mholecek/worktrack/internal/models"
	"github.com/mholecek/worktrack/internal/storage"
)

// Session is the in-flight timer state.
type Session struct {
	Person      models.Person `json:"person"`
	Activity    string        `json:"activity"`
	Subcategory string        `json:"subcategory,omitempty"`
	Note        string        `json:"note,omitempty"`
	StartTime   time.Time     `json:"startTime"`
}

// Elapsed returns how long the session has been running.
func (s Session) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.StartTime)
}

// Current returns the running session, if any.
func Current(store *storage.Store) (Session, bool, error) {
	value, ok, err := store.GetSetting(constants.SettingActiveTimer)
	if err != nil || !ok {
		return Session{}, false, err
	}

	// The setting round-trips through JSON as a generic map; re-decode it.
	raw, err := json.Marshal(value)
	if err != nil {
		return Session{}, false, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, false, fmt.Errorf("failed to decode timer state: %w", err)
	}
	return sess, true, nil
}

// Start begins a session. A session that is already running is an error;
// stop or cancel it first.
func Start(store *storage.Store, sess Session) error {
	if !sess.Person.Valid() {
		return fmt.Errorf("unknown person %q", sess.Person)
	}
	if sess.Activity == "" {
		return fmt.Errorf("activity is required")
	}

	if _, running, err := Current(store); err != nil {
		return err
	} else if running {
		return fmt.Errorf("a timer is already running")
	}

	if sess.StartTime.IsZero() {
		sess.StartTime = time.Now().UTC()
	}
	return store.SetSetting(constants.SettingActiveTimer, sess)
}

// Stop ends the running session and persists it as a work log, crediting
// earnings to the shared budget through the repository.
func Stop(store *storage.Store, now time.Time) (models.WorkLog, error) {
	sess, running, err := Current(store)
	if err != nil {
		return models.WorkLog{}, err
	}
	if !running {
		return models.WorkLog{}, fmt.Errorf("no timer is running")
	}

	log, err := store.CreateWorkLog(models.WorkLog{
		Person:      sess.Person,
		Activity:    sess.Activity,
		Subcategory: sess.Subcategory,
		Note:        sess.Note,
		StartTime:   sess.StartTime,
		EndTime:     now,
	})
	if err != nil {
		return models.WorkLog{}, err
	}

	if err := store.DeleteSetting(constants.SettingActiveTimer); err != nil {
		return log, fmt.Errorf("work log saved but timer state not cleared: %w", err)
	}
	return log, nil
}

// Cancel discards the running session without writing a work log.
func Cancel(store *storage.Store) error {
	_, running, err := Current(store)
	if err != nil {
		return err
	}
	if !running {
		return fmt.Errorf("no timer is running")
	}
	return store.DeleteSetting(constants.SettingActiveTimer)
}

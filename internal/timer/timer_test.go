package timer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mholecek/worktrack/internal/models"
	"github.com/mholecek/worktrack/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	store := storage.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestTimerLifecycle(t *testing.T) {
	store := newTestStore(t)
	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	if _, running, err := Current(store); err != nil || running {
		t.Fatalf("Current() = (running=%v, err=%v) on a fresh store, want no timer", running, err)
	}

	if err := Start(store, Session{
		Person:    models.PersonMaru,
		Activity:  "Development",
		Note:      "refactor",
		StartTime: start,
	}); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	sess, running, err := Current(store)
	if err != nil {
		t.Fatalf("Current() failed: %v", err)
	}
	if !running {
		t.Fatal("Current() reports no timer after Start()")
	}
	if sess.Person != models.PersonMaru || !sess.StartTime.Equal(start) {
		t.Errorf("Current() = %+v, want the started session back", sess)
	}

	// A second start must be refused while one is running.
	if err := Start(store, Session{Person: models.PersonMarty, Activity: "Meeting"}); err == nil {
		t.Error("Start() succeeded with a timer already running")
	}

	log, err := Stop(store, start.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if log.Earnings != 550 {
		t.Errorf("earnings = %d, want 550", log.Earnings)
	}
	if log.Note != "refactor" {
		t.Errorf("note = %q, want %q", log.Note, "refactor")
	}

	budget, err := store.GetBudget()
	if err != nil {
		t.Fatalf("GetBudget() failed: %v", err)
	}
	if budget.Balance != 550 {
		t.Errorf("budget balance = %d after stop, want 550", budget.Balance)
	}

	if _, running, _ := Current(store); running {
		t.Error("timer still running after Stop()")
	}
}

func TestTimerCancel(t *testing.T) {
	store := newTestStore(t)

	if err := Cancel(store); err == nil {
		t.Error("Cancel() succeeded with no timer running")
	}

	if err := Start(store, Session{Person: models.PersonMarty, Activity: "Admin"}); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := Cancel(store); err != nil {
		t.Fatalf("Cancel() failed: %v", err)
	}

	logs, err := store.ListWorkLogs(storage.WorkLogFilter{})
	if err != nil {
		t.Fatalf("ListWorkLogs() failed: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("len(logs) = %d after cancel, want 0", len(logs))
	}

	budget, err := store.GetBudget()
	if err != nil {
		t.Fatalf("GetBudget() failed: %v", err)
	}
	if budget.Balance != 0 {
		t.Errorf("budget balance = %d after cancel, want 0", budget.Balance)
	}
}

func TestStartValidation(t *testing.T) {
	store := newTestStore(t)

	if err := Start(store, Session{Person: "nobody", Activity: "Development"}); err == nil {
		t.Error("Start() accepted an unknown person")
	}
	if err := Start(store, Session{Person: models.PersonMaru}); err == nil {
		t.Error("Start() accepted an empty activity")
	}

	if _, err := Stop(store, time.Now()); err == nil {
		t.Error("Stop() succeeded with no timer running")
	}
}

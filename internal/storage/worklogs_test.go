package storage

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/mholecek/worktrack/internal/errors"
	"github.com/mholecek/worktrack/internal/models"
)

func mustBudgetBalance(t *testing.T, store *Store) int64 {
	t.Helper()
	b, err := store.GetBudget()
	if err != nil {
		t.Fatalf("GetBudget() failed: %v", err)
	}
	return b.Balance
}

func TestCreateWorkLog(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("derives earnings and credits the budget", func(t *testing.T) {
		store := newTestStore(t)

		log, err := store.CreateWorkLog(models.WorkLog{
			Person:    models.PersonMaru,
			Activity:  "Development",
			StartTime: start,
			EndTime:   start.Add(2 * time.Hour),
		})
		if err != nil {
			t.Fatalf("CreateWorkLog() failed: %v", err)
		}

		if log.ID == "" {
			t.Error("CreateWorkLog() assigned no id")
		}
		if log.DurationMS != (2 * time.Hour).Milliseconds() {
			t.Errorf("duration = %d ms, want %d", log.DurationMS, (2 * time.Hour).Milliseconds())
		}
		if log.Earnings != 550 {
			t.Errorf("earnings = %d, want 550 (2h at maru's rate)", log.Earnings)
		}
		if got := mustBudgetBalance(t, store); got != 550 {
			t.Errorf("budget balance = %d, want 550", got)
		}
	})

	t.Run("explicit earnings override the derived value", func(t *testing.T) {
		store := newTestStore(t)

		log, err := store.CreateWorkLog(models.WorkLog{
			Person:    models.PersonMarty,
			Activity:  "Meeting",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Earnings:  999,
		})
		if err != nil {
			t.Fatalf("CreateWorkLog() failed: %v", err)
		}
		if log.Earnings != 999 {
			t.Errorf("earnings = %d, want 999", log.Earnings)
		}
		if got := mustBudgetBalance(t, store); got != 999 {
			t.Errorf("budget balance = %d, want 999", got)
		}
	})

	t.Run("rejects unknown person", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.CreateWorkLog(models.WorkLog{
			Person:    "nobody",
			Activity:  "Development",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		if err == nil {
			t.Error("CreateWorkLog() accepted an unknown person")
		}
	})

	t.Run("rejects end before start", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.CreateWorkLog(models.WorkLog{
			Person:    models.PersonMaru,
			Activity:  "Development",
			StartTime: start,
			EndTime:   start.Add(-time.Minute),
		})
		if err == nil {
			t.Error("CreateWorkLog() accepted end time before start time")
		}
		if got := mustBudgetBalance(t, store); got != 0 {
			t.Errorf("budget balance = %d after rejected create, want 0", got)
		}
	})
}

func TestGetWorkLog(t *testing.T) {
	store := newTestStore(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	created, err := store.CreateWorkLog(models.WorkLog{
		Person:    models.PersonMaru,
		Activity:  "Design",
		Note:      "mockups",
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
	})
	if err != nil {
		t.Fatalf("CreateWorkLog() failed: %v", err)
	}

	got, err := store.GetWorkLog(created.ID)
	if err != nil {
		t.Fatalf("GetWorkLog() failed: %v", err)
	}
	if got.Note != "mockups" || !got.StartTime.Equal(start) {
		t.Errorf("GetWorkLog() = %+v, want stored record back", got)
	}

	_, err = store.GetWorkLog("does-not-exist")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetWorkLog(absent) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateWorkLog(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("applies the earnings difference to the budget", func(t *testing.T) {
		store := newTestStore(t)

		log, err := store.CreateWorkLog(models.WorkLog{
			Person:    models.PersonMaru,
			Activity:  "Development",
			StartTime: start,
			EndTime:   start.Add(2 * time.Hour),
		})
		if err != nil {
			t.Fatalf("CreateWorkLog() failed: %v", err)
		}

		// Shrink the session to one hour, explicit earnings for the new length.
		log.EndTime = start.Add(time.Hour)
		log.Earnings = models.EarningsFor(models.PersonMaru, time.Hour.Milliseconds())
		updated, err := store.UpdateWorkLog(log)
		if err != nil {
			t.Fatalf("UpdateWorkLog() failed: %v", err)
		}

		if updated.Earnings != 275 {
			t.Errorf("earnings = %d, want 275", updated.Earnings)
		}
		if got := mustBudgetBalance(t, store); got != 275 {
			t.Errorf("budget balance = %d after update, want 275", got)
		}
	})

	t.Run("created timestamp is immutable", func(t *testing.T) {
		store := newTestStore(t)

		log, err := store.CreateWorkLog(models.WorkLog{
			Person:    models.PersonMaru,
			Activity:  "Development",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("CreateWorkLog() failed: %v", err)
		}

		log.Created = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		if _, err := store.UpdateWorkLog(log); err != nil {
			t.Fatalf("UpdateWorkLog() failed: %v", err)
		}

		got, err := store.GetWorkLog(log.ID)
		if err != nil {
			t.Fatalf("GetWorkLog() failed: %v", err)
		}
		if got.Created.Year() == 2000 {
			t.Error("UpdateWorkLog() overwrote the created timestamp")
		}
	})

	t.Run("absent id is ErrNotFound", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.UpdateWorkLog(models.WorkLog{
			ID:        "does-not-exist",
			Person:    models.PersonMaru,
			Activity:  "Development",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		if !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("UpdateWorkLog(absent) error = %v, want ErrNotFound", err)
		}
	})
}

func TestDeleteWorkLog(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("debits earnings from the budget", func(t *testing.T) {
		store := newTestStore(t)

		log, err := store.CreateWorkLog(models.WorkLog{
			Person:    models.PersonMarty,
			Activity:  "Development",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("CreateWorkLog() failed: %v", err)
		}
		if got := mustBudgetBalance(t, store); got != 400 {
			t.Fatalf("budget balance = %d before delete, want 400", got)
		}

		if err := store.DeleteWorkLog(log.ID); err != nil {
			t.Fatalf("DeleteWorkLog() failed: %v", err)
		}
		if got := mustBudgetBalance(t, store); got != 0 {
			t.Errorf("budget balance = %d after delete, want 0", got)
		}
		if _, err := store.GetWorkLog(log.ID); !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("GetWorkLog(deleted) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("absent id is a silent no-op", func(t *testing.T) {
		store := newTestStore(t)

		if _, err := store.AdjustBudget(100); err != nil {
			t.Fatalf("AdjustBudget() failed: %v", err)
		}

		if err := store.DeleteWorkLog("does-not-exist"); err != nil {
			t.Errorf("DeleteWorkLog(absent) = %v, want nil", err)
		}
		if got := mustBudgetBalance(t, store); got != 100 {
			t.Errorf("budget balance = %d after no-op delete, want 100", got)
		}
	})
}

func TestListWorkLogs(t *testing.T) {
	store := newTestStore(t)
	day1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)

	seed := []models.WorkLog{
		{Person: models.PersonMaru, Activity: "Development", StartTime: day1, EndTime: day1.Add(time.Hour)},
		{Person: models.PersonMaru, Activity: "Design", StartTime: day2, EndTime: day2.Add(time.Hour)},
		{Person: models.PersonMarty, Activity: "Development", StartTime: day2, EndTime: day2.Add(2 * time.Hour)},
	}
	for _, log := range seed {
		if _, err := store.CreateWorkLog(log); err != nil {
			t.Fatalf("CreateWorkLog() failed: %v", err)
		}
	}

	t.Run("no filter returns everything", func(t *testing.T) {
		logs, err := store.ListWorkLogs(WorkLogFilter{})
		if err != nil {
			t.Fatalf("ListWorkLogs() failed: %v", err)
		}
		if len(logs) != 3 {
			t.Errorf("len(logs) = %d, want 3", len(logs))
		}
	})

	t.Run("filter by person", func(t *testing.T) {
		logs, err := store.ListWorkLogs(WorkLogFilter{Person: models.PersonMaru})
		if err != nil {
			t.Fatalf("ListWorkLogs() failed: %v", err)
		}
		if len(logs) != 2 {
			t.Errorf("len(logs) = %d, want 2", len(logs))
		}
	})

	t.Run("filter by activity and person", func(t *testing.T) {
		logs, err := store.ListWorkLogs(WorkLogFilter{Person: models.PersonMarty, Activity: "Development"})
		if err != nil {
			t.Fatalf("ListWorkLogs() failed: %v", err)
		}
		if len(logs) != 1 {
			t.Errorf("len(logs) = %d, want 1", len(logs))
		}
	})

	t.Run("filter by date range", func(t *testing.T) {
		from := day2.Add(-time.Hour)
		logs, err := store.ListWorkLogs(WorkLogFilter{StartDate: &from})
		if err != nil {
			t.Fatalf("ListWorkLogs() failed: %v", err)
		}
		if len(logs) != 2 {
			t.Errorf("len(logs) = %d, want 2 (sessions starting on day 2)", len(logs))
		}

		until := day1.Add(2 * time.Hour)
		logs, err = store.ListWorkLogs(WorkLogFilter{EndDate: &until})
		if err != nil {
			t.Fatalf("ListWorkLogs() failed: %v", err)
		}
		if len(logs) != 1 {
			t.Errorf("len(logs) = %d, want 1 (session ending on day 1)", len(logs))
		}
	})
}

package backup

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "github.com/mholecek/worktrack/internal/errors"
	"github.com/mholecek/worktrack/internal/models"
)

// SnapshotVersion is the format version written to new snapshots.
const SnapshotVersion = 1

// Collection keys as they appear in snapshot documents.
const (
	ColWorkLogs          = "workLogs"
	ColFinanceRecords    = "financeRecords"
	ColTaskCategories    = "taskCategories"
	ColExpenseCategories = "expenseCategories"
	ColDebts             = "debts"
	ColDebtPayments      = "debtPayments"
	ColSettings          = "settings"
	ColSharedBudget      = "sharedBudget"
)

// Snapshot is the portable backup document. The canonical shape carries all
// collections under "data", settings flattened to a key -> value map and the
// shared budget as its singleton record.
type Snapshot struct {
	Version int          `json:"version"`
	Date    string       `json:"date"`
	Data    SnapshotData `json:"data"`

	// contains records which collections the parsed document carried.
	// Restore only touches collections the document contained; older flat
	// exports without category keys must not wipe the category tables.
	contains map[string]bool
}

// Has reports whether the document carried the named collection. Snapshots
// built in memory (CreateSnapshot, literals) carry every collection.
func (s *Snapshot) Has(collection string) bool {
	if s.contains == nil {
		return true
	}
	return s.contains[collection]
}

// SnapshotData holds one array (or map) per collection.
type SnapshotData struct {
	WorkLogs          []models.WorkLog       `json:"workLogs"`
	FinanceRecords    []models.FinanceRecord `json:"financeRecords"`
	TaskCategories    []models.Category      `json:"taskCategories"`
	ExpenseCategories []models.Category      `json:"expenseCategories"`
	Debts             []models.Debt          `json:"debts"`
	DebtPayments      []models.DebtPayment   `json:"debtPayments"`
	Settings          map[string]interface{} `json:"settings"`
	SharedBudget      models.SharedBudget    `json:"sharedBudget"`
}

// rawSnapshotData mirrors SnapshotData with loose fields, so exports that
// carry settings as a [{key, value}] array and the budget as a one-element
// array (the raw per-collection dump shape) still parse.
type rawSnapshotData struct {
	WorkLogs          []models.WorkLog       `json:"workLogs"`
	FinanceRecords    []models.FinanceRecord `json:"financeRecords"`
	TaskCategories    []models.Category      `json:"taskCategories"`
	ExpenseCategories []models.Category      `json:"expenseCategories"`
	Debts             []models.Debt          `json:"debts"`
	DebtPayments      []models.DebtPayment   `json:"debtPayments"`
	Settings          json.RawMessage        `json:"settings"`
	SharedBudget      json.RawMessage        `json:"sharedBudget"`
}

func (d *rawSnapshotData) toData() (SnapshotData, error) {
	out := SnapshotData{
		WorkLogs:          d.WorkLogs,
		FinanceRecords:    d.FinanceRecords,
		TaskCategories:    d.TaskCategories,
		ExpenseCategories: d.ExpenseCategories,
		Debts:             d.Debts,
		DebtPayments:      d.DebtPayments,
		Settings:          map[string]interface{}{},
	}

	if len(d.Settings) > 0 && string(d.Settings) != "null" {
		settings, err := parseSettings(d.Settings)
		if err != nil {
			return SnapshotData{}, err
		}
		out.Settings = settings
	}

	if len(d.SharedBudget) > 0 && string(d.SharedBudget) != "null" {
		budget, err := parseBudget(d.SharedBudget)
		if err != nil {
			return SnapshotData{}, err
		}
		out.SharedBudget = budget
	}

	return out, nil
}

func parseSettings(raw json.RawMessage) (map[string]interface{}, error) {
	var asMap map[string]interface{}
	if err := json.Unmarshal(raw, &asMap); err == nil {
		return asMap, nil
	}

	var asRecords []models.Setting
	if err := json.Unmarshal(raw, &asRecords); err != nil {
		return nil, fmt.Errorf("settings are neither a map nor a record array: %w", err)
	}
	out := make(map[string]interface{}, len(asRecords))
	for _, rec := range asRecords {
		out[rec.Key] = rec.Value
	}
	return out, nil
}

func parseBudget(raw json.RawMessage) (models.SharedBudget, error) {
	var single models.SharedBudget
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, nil
	}

	var many []models.SharedBudget
	if err := json.Unmarshal(raw, &many); err != nil {
		return models.SharedBudget{}, fmt.Errorf("sharedBudget is neither a record nor a record array: %w", err)
	}
	if len(many) == 0 {
		return models.SharedBudget{}, nil
	}
	return many[0], nil
}

// legacySnapshot is the flat export shape: collections at the top level with
// no "data" wrapper.
type legacySnapshot struct {
	Version        int                    `json:"version"`
	Date           string                 `json:"date"`
	ExportDate     string                 `json:"exportDate"`
	WorkLogs       []models.WorkLog       `json:"workLogs"`
	FinanceRecords []models.FinanceRecord `json:"financeRecords"`
	Debts          []models.Debt          `json:"debts"`
	DebtPayments   []models.DebtPayment   `json:"debtPayments"`
	Settings       json.RawMessage        `json:"settings"`
	SharedBudget   json.RawMessage        `json:"sharedBudget"`
	Budget         json.RawMessage        `json:"budget"`
}

// ParseSnapshot validates and decodes a snapshot document. It accepts the
// canonical collection-map shape and the legacy flat export shape; anything
// else is ErrInvalidBackup. No collection is touched before this succeeds.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var probe struct {
		Version    int             `json:"version"`
		Date       string          `json:"date"`
		ExportDate string          `json:"exportDate"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: not a JSON document: %v", apperrors.ErrInvalidBackup, err)
	}

	date := probe.Date
	if date == "" {
		date = probe.ExportDate
	}

	if len(probe.Data) > 0 && string(probe.Data) != "null" {
		var raw rawSnapshotData
		if err := json.Unmarshal(probe.Data, &raw); err != nil {
			return nil, fmt.Errorf("%w: malformed data section: %v", apperrors.ErrInvalidBackup, err)
		}
		parsed, err := raw.toData()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidBackup, err)
		}

		// Presence comes from the document's actual keys, so a data section
		// that omits a collection leaves that table alone on restore.
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(probe.Data, &keys); err != nil {
			return nil, fmt.Errorf("%w: malformed data section: %v", apperrors.ErrInvalidBackup, err)
		}
		contains := make(map[string]bool, len(keys))
		for key, value := range keys {
			if string(value) != "null" {
				contains[key] = true
			}
		}

		return &Snapshot{Version: probe.Version, Date: date, Data: parsed, contains: contains}, nil
	}

	// No data section: try the legacy flat shape.
	var legacy legacySnapshot
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("%w: malformed document: %v", apperrors.ErrInvalidBackup, err)
	}

	if legacy.WorkLogs == nil && legacy.FinanceRecords == nil &&
		legacy.Debts == nil && legacy.DebtPayments == nil {
		return nil, fmt.Errorf("%w: no recognizable collections", apperrors.ErrInvalidBackup)
	}

	budgetRaw := legacy.SharedBudget
	if len(budgetRaw) == 0 {
		budgetRaw = legacy.Budget
	}

	raw := rawSnapshotData{
		WorkLogs:       legacy.WorkLogs,
		FinanceRecords: legacy.FinanceRecords,
		Debts:          legacy.Debts,
		DebtPayments:   legacy.DebtPayments,
		Settings:       legacy.Settings,
		SharedBudget:   budgetRaw,
	}
	parsed, err := raw.toData()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidBackup, err)
	}

	// Flat exports never carried category tables; only the collections the
	// document named take part in a restore.
	contains := map[string]bool{}
	if legacy.WorkLogs != nil {
		contains[ColWorkLogs] = true
	}
	if legacy.FinanceRecords != nil {
		contains[ColFinanceRecords] = true
	}
	if legacy.Debts != nil {
		contains[ColDebts] = true
	}
	if legacy.DebtPayments != nil {
		contains[ColDebtPayments] = true
	}
	if len(legacy.Settings) > 0 && string(legacy.Settings) != "null" {
		contains[ColSettings] = true
	}
	if len(budgetRaw) > 0 && string(budgetRaw) != "null" {
		contains[ColSharedBudget] = true
	}

	if date == "" {
		date = legacy.Date
	}
	version := probe.Version
	if version == 0 {
		version = legacy.Version
	}

	return &Snapshot{Version: version, Date: date, Data: parsed, contains: contains}, nil
}

// Encode serializes the snapshot in the canonical shape.
func (s *Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

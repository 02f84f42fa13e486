package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mholecek/worktrack/internal/constants"
	"github.com/mholecek/worktrack/internal/logger"
)

// GetSetting returns the value stored under key. The second return is false
// if the key is absent.
func (s *Store) GetSetting(key string) (interface{}, bool, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false, fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting upserts a value under key. Values are stored JSON-encoded so
// booleans, numbers and strings round-trip with their types.
func (s *Store) SetSetting(key string, value interface{}) error {
	return s.withTx(func(tx *sql.Tx) error {
		return setSettingTx(tx, key, value)
	})
}

// DeleteSetting removes a key. Absent keys are a no-op.
func (s *Store) DeleteSetting(key string) error {
	_, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key)
	return err
}

// AllSettings returns every setting flattened to a key -> value map, the
// shape the backup snapshot carries.
func (s *Store) AllSettings() (map[string]interface{}, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]interface{})
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, err
		}
		var value interface{}
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("failed to decode setting %s: %w", key, err)
		}
		settings[key] = value
	}

	return settings, rows.Err()
}

// SettingBool reads a boolean setting; absent or differently-typed values
// report false.
func (s *Store) SettingBool(key string) (bool, error) {
	v, ok, err := s.GetSetting(key)
	if err != nil || !ok {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

// SettingInt64 reads a numeric setting. JSON numbers decode as float64.
func (s *Store) SettingInt64(key string) (int64, bool, error) {
	v, ok, err := s.GetSetting(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	f, isNum := v.(float64)
	if !isNum {
		return 0, false, fmt.Errorf("setting %s is not a number", key)
	}
	return int64(f), true, nil
}

// SettingString reads a string setting.
func (s *Store) SettingString(key string) (string, bool, error) {
	v, ok, err := s.GetSetting(key)
	if err != nil || !ok {
		return "", ok, err
	}
	str, isStr := v.(string)
	if !isStr {
		return "", false, fmt.Errorf("setting %s is not a string", key)
	}
	return str, true, nil
}

// EnsureInitialized seeds first-run defaults exactly once: the default task
// categories, rent settings, theme, the zero budget row and an install id.
// The whole seed and the final initialized flag commit in one transaction,
// so a crash mid-seed retries on the next boot; every individual write is an
// upsert, which makes the retry (and a second call) idempotent.
func (s *Store) EnsureInitialized() error {
	initialized, err := s.SettingBool(constants.SettingInitialized)
	if err != nil {
		return err
	}
	if initialized {
		return nil
	}

	logger.Info("seeding first-run defaults")

	return s.withTx(func(tx *sql.Tx) error {
		for _, name := range constants.DefaultTaskCategories {
			if _, err := tx.Exec(
				"INSERT OR IGNORE INTO task_categories (name, active) VALUES (?, 1)", name,
			); err != nil {
				return err
			}
		}

		// INSERT OR IGNORE keeps values a partially-seeded run already wrote.
		seeds := []struct {
			key   string
			value interface{}
		}{
			{constants.SettingRentAmount, constants.DefaultRentAmount},
			{constants.SettingRentDay, constants.DefaultRentDay},
			{constants.SettingTheme, constants.DefaultTheme},
			{constants.SettingInstallID, uuid.NewString()},
		}
		for _, seed := range seeds {
			raw, err := json.Marshal(seed.value)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(
				"INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)", seed.key, string(raw),
			); err != nil {
				return err
			}
		}

		// Materialize the budget row without touching an existing balance.
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO shared_budget (id, balance, last_updated) VALUES (?, 0, ?)",
			budgetRowID, formatTime(nowUTC()),
		); err != nil {
			return err
		}

		return setSettingTx(tx, constants.SettingInitialized, true)
	})
}

func setSettingTx(tx *sql.Tx, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	_, err = tx.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, string(raw))
	return err
}

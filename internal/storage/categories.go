package storage

import (
	"database/sql"

	"github.com/mholecek/worktrack/internal/models"
)

// TaskCategories lists task categories. Inactive ones are excluded unless
// includeInactive is set; they stay in the table so old logs keep resolving.
func (s *Store) TaskCategories(includeInactive bool) ([]models.Category, error) {
	return s.listCategories("task_categories", includeInactive)
}

// ExpenseCategories lists expense categories.
func (s *Store) ExpenseCategories(includeInactive bool) ([]models.Category, error) {
	return s.listCategories("expense_categories", includeInactive)
}

// SaveTaskCategory upserts a category by name.
func (s *Store) SaveTaskCategory(cat models.Category) error {
	return s.saveCategory("task_categories", cat)
}

// SaveExpenseCategory upserts a category by name.
func (s *Store) SaveExpenseCategory(cat models.Category) error {
	return s.saveCategory("expense_categories", cat)
}

// The table name is always one of the two fixed category tables, never user
// input.
func (s *Store) listCategories(table string, includeInactive bool) ([]models.Category, error) {
	query := "SELECT name, active FROM " + table
	if !includeInactive {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.Name, &c.Active); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}

	return cats, rows.Err()
}

func (s *Store) saveCategory(table string, cat models.Category) error {
	return s.withTx(func(tx *sql.Tx) error {
		return upsertCategoryTx(tx, table, cat)
	})
}

func upsertCategoryTx(tx *sql.Tx, table string, cat models.Category) error {
	_, err := tx.Exec(
		"INSERT OR REPLACE INTO "+table+" (name, active) VALUES (?, ?)",
		cat.Name, cat.Active,
	)
	return err
}

// Package store persists the batch item list between CLI invocations, so a
// batch can be generated, edited, and exported across separate commands.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/labelforge/labelforge/batch"
)

// ErrNotFound is returned when a batch item id does not exist.
var ErrNotFound = errors.New("batch item not found")

// BatchStore manages SQLite storage for batch items.
type BatchStore struct {
	db *sql.DB
}

const createItemsTable = `
CREATE TABLE IF NOT EXISTS batch_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    data TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    price TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL
);
`

const createPositionIndex = `
CREATE INDEX IF NOT EXISTS idx_batch_items_position ON batch_items(position);
`

// Open opens (or creates) the SQLite database at dbPath, initialises the
// schema, and returns a ready-to-use BatchStore.
func Open(dbPath string) (*BatchStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	for _, stmt := range []string{createItemsTable, createPositionIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec schema statement: %w", err)
		}
	}

	return &BatchStore{db: db}, nil
}

// AddItems appends items to the end of the batch list, preserving their
// order.
func (s *BatchStore) AddItems(items []batch.Item) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin add items: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(position), 0) + 1 FROM batch_items`).Scan(&next); err != nil {
		return fmt.Errorf("next position: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO batch_items (data, name, price, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		if _, err := stmt.Exec(item.Data, item.Name, item.Price, next+i); err != nil {
			return fmt.Errorf("insert item %q: %w", item.Data, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add items: %w", err)
	}
	return nil
}

// ListItems returns all batch items in insertion order.
func (s *BatchStore) ListItems() ([]batch.Item, error) {
	rows, err := s.db.Query(`SELECT id, data, name, price FROM batch_items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []batch.Item
	for rows.Next() {
		var it batch.Item
		if err := rows.Scan(&it.ID, &it.Data, &it.Name, &it.Price); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item rows: %w", err)
	}
	return items, nil
}

// GetItem returns the item with the given id.
func (s *BatchStore) GetItem(id int64) (batch.Item, error) {
	var it batch.Item
	err := s.db.QueryRow(`SELECT id, data, name, price FROM batch_items WHERE id = ?`, id).
		Scan(&it.ID, &it.Data, &it.Name, &it.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return batch.Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return batch.Item{}, fmt.Errorf("get item %d: %w", id, err)
	}
	return it, nil
}

// UpdateItem overwrites the data, name, and price of the item identified by
// item.ID. Items remain editable until the batch is exported or cleared.
func (s *BatchStore) UpdateItem(item batch.Item) error {
	res, err := s.db.Exec(
		`UPDATE batch_items SET data = ?, name = ?, price = ? WHERE id = ?`,
		item.Data, item.Name, item.Price, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item %d: %w", item.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item %d: %w", item.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("item %d: %w", item.ID, ErrNotFound)
	}
	return nil
}

// RemoveItems deletes the items with the given ids. Unknown ids are
// ignored.
func (s *BatchStore) RemoveItems(ids ...int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin remove items: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.Exec(`DELETE FROM batch_items WHERE id = ?`, id); err != nil {
			return fmt.Errorf("remove item %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit remove items: %w", err)
	}
	return nil
}

// ClearItems deletes every batch item.
func (s *BatchStore) ClearItems() error {
	if _, err := s.db.Exec(`DELETE FROM batch_items`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	return nil
}

// CountItems returns the number of stored batch items.
func (s *BatchStore) CountItems() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM batch_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// Close closes the underlying database connection.
func (s *BatchStore) Close() error {
	return s.db.Close()
}

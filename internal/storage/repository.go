package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"actlog/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the SQLite-backed log store. It offers the same
// load/append/delete contract as the CSV backend over a table; load order
// is insertion order, so positional deletes address the same rows a fresh
// load would show.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements store.Loader.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, category, hours FROM activity_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	pos := 0
	for rows.Next() {
		var dateStr, category string
		var hours float64
		if err := rows.Scan(&dateStr, &category, &hours); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		date, err := core.ParseDateAt(pos, dateStr)
		if err != nil {
			return nil, err
		}
		records = append(records, core.Record{Date: date, Category: category, Hours: hours})
		pos++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Append implements store.Appender. The reference is the new row's id.
func (r *SQLiteRepository) Append(ctx context.Context, rec core.Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_records (date, category, hours) VALUES (?, ?, ?)`,
		rec.Date.String(), rec.Category, rec.Hours)
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Record saved to SQLite",
		"id", id,
		"date", rec.Date.String(),
		"category", rec.Category,
		"hours", rec.Hours)

	return strconv.FormatInt(id, 10), nil
}

// Delete implements store.Deleter. Positions index the id-ordered
// sequence a fresh Load would return.
func (r *SQLiteRepository) Delete(ctx context.Context, positions []int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT id FROM activity_records ORDER BY id`)
	if err != nil {
		return 0, fmt.Errorf("query ids: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("iterate ids: %w", err)
	}
	rows.Close()

	removed := 0
	seen := make(map[int]bool, len(positions))
	for _, p := range positions {
		if p < 0 || p >= len(ids) || seen[p] {
			continue
		}
		seen[p] = true
		if _, err := tx.ExecContext(ctx, `DELETE FROM activity_records WHERE id = ?`, ids[p]); err != nil {
			return 0, fmt.Errorf("delete record %d: %w", ids[p], err)
		}
		removed++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete: %w", err)
	}

	if removed > 0 {
		slog.InfoContext(ctx, "Records deleted from SQLite", "removed", removed)
	}
	return removed, nil
}

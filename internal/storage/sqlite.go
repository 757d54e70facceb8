package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

// SQLiteBackend stores the planner document field-by-field in a local
// SQLite database, one JSON blob per top-level slice. Partial updates
// rewrite only the touched rows.
type SQLiteBackend struct {
	path string
	user string
	db   *sql.DB
}

func NewSQLiteBackend(path, user string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS planner_fields (
			user  TEXT NOT NULL,
			field TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (user, field)
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteBackend{path: path, user: user, db: db}, nil
}

func (b *SQLiteBackend) Location() string { return b.path }

// DB exposes the underlying handle for diagnostics.
func (b *SQLiteBackend) DB() *sql.DB { return b.db }

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) read() (*models.PlannerDoc, error) {
	rows, err := b.db.Query(`SELECT field, value FROM planner_fields WHERE user = ?`, b.user)
	if err != nil {
		return nil, fmt.Errorf("failed to read planner fields: %w", err)
	}
	defer rows.Close()

	doc := models.NewPlannerDoc()
	found := false
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("failed to scan planner field: %w", err)
		}
		found = true
		var dest any
		switch field {
		case models.FieldWeeks:
			dest = &doc.Weeks
		case models.FieldMeals:
			dest = &doc.MealsByDay
		case models.FieldTasks:
			dest = &doc.TasksByDay
		case models.FieldNotes:
			dest = &doc.NotesByDay
		default:
			continue
		}
		if err := json.Unmarshal([]byte(value), dest); err != nil {
			return nil, fmt.Errorf("failed to parse field %q: %w", field, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read planner fields: %w", err)
	}
	if !found {
		return nil, nil
	}
	doc.EnsureMaps()
	return &doc, nil
}

func (b *SQLiteBackend) upsertFields(ctx context.Context, fields map[string]any) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO planner_fields (user, field, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for field, v := range fields {
		value, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to serialize field %q: %w", field, err)
		}
		if _, err := stmt.Exec(b.user, field, string(value)); err != nil {
			return fmt.Errorf("failed to write field %q: %w", field, err)
		}
	}
	return tx.Commit()
}

func (b *SQLiteBackend) Set(ctx context.Context, doc models.PlannerDoc) error {
	fields := make(map[string]any, len(models.AllFields))
	for _, name := range models.AllFields {
		fields[name] = doc.Field(name)
	}
	return b.upsertFields(ctx, fields)
}

func (b *SQLiteBackend) Update(ctx context.Context, fields map[string]any) error {
	var n int
	if err := b.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM planner_fields WHERE user = ?`, b.user).Scan(&n); err != nil {
		return fmt.Errorf("failed to check planner document: %w", err)
	}
	if n == 0 {
		return ErrDocMissing
	}
	return b.upsertFields(ctx, fields)
}

// Subscribe delivers the stored document once. The database is owned by a
// single process, so there is no ongoing change feed to follow.
func (b *SQLiteBackend) Subscribe(_ context.Context, fn SnapshotFunc) (func(), error) {
	doc, err := b.read()
	if err != nil {
		return nil, err
	}
	fn(doc)
	return func() {}, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/todotree/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) LoadRegistry(ctx context.Context) (*model.Registry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT kind, position, name, color, alpha, red, green, blue
		FROM lookups
		ORDER BY kind, position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LookupRow, 0)
	for rows.Next() {
		var row LookupRow
		var red, green, blue sql.NullFloat64
		if err := rows.Scan(&row.Kind, &row.Position, &row.Name, &row.Color, &row.Alpha, &red, &green, &blue); err != nil {
			return nil, err
		}
		if red.Valid && green.Valid && blue.Valid {
			row.RGB = &[3]float64{red.Float64, green.Float64, blue.Float64}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return registryFromRows(out)
}

func (r *SQLiteRepository) SaveRegistry(ctx context.Context, reg *model.Registry) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM lookups`); err != nil {
			return err
		}
		for _, row := range registryRows(reg) {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO lookups (kind, position, name, color, alpha, red, green, blue)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				row.Kind, row.Position, row.Name, row.Color, row.Alpha, row.RGB[0], row.RGB[1], row.RGB[2],
			); err != nil {
				return fmt.Errorf("insert %s %d: %w", row.Kind, row.Position, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) LoadStore(ctx context.Context) (*model.Store, error) {
	groups, err := r.listGroups(ctx)
	if err != nil {
		return nil, err
	}
	todos, err := r.listTodos(ctx)
	if err != nil {
		return nil, err
	}
	return storeFromRows(groups, todos), nil
}

func (r *SQLiteRepository) SaveStore(ctx context.Context, store *model.Store) error {
	groups, todos := storeRows(store)
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM todos`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM todo_groups`); err != nil {
			return err
		}
		for _, g := range groups {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO todo_groups (id, position, title, note, tag_index, asset)
				VALUES (?, ?, ?, ?, ?, ?)`,
				g.ID, g.Position, g.Title, g.Note, g.TagIndex, g.Asset,
			); err != nil {
				return fmt.Errorf("insert group %s: %w", g.ID, err)
			}
		}
		for _, t := range todos {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO todos (id, group_id, position, title, description, progress_index, priority_index, created_at, end_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID, t.GroupID, t.Position, t.Title, t.Description, t.ProgressIndex, t.PriorityIndex,
				mustTime(t.CreatedAt), nullTime(t.EndAt),
			); err != nil {
				return fmt.Errorf("insert todo %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// GetGroup loads a single group row by id.
func (r *SQLiteRepository) GetGroup(ctx context.Context, id string) (GroupRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, position, title, note, tag_index, asset
		FROM todo_groups WHERE id = ?`, id)
	var out GroupRow
	if err := row.Scan(&out.ID, &out.Position, &out.Title, &out.Note, &out.TagIndex, &out.Asset); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GroupRow{}, ErrNotFound
		}
		return GroupRow{}, err
	}
	return out, nil
}

func (r *SQLiteRepository) listGroups(ctx context.Context) ([]GroupRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, position, title, note, tag_index, asset
		FROM todo_groups ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GroupRow, 0)
	for rows.Next() {
		var g GroupRow
		if err := rows.Scan(&g.ID, &g.Position, &g.Title, &g.Note, &g.TagIndex, &g.Asset); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) listTodos(ctx context.Context) ([]TodoRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, group_id, position, title, description, progress_index, priority_index, created_at, end_at
		FROM todos ORDER BY group_id, position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TodoRow, 0)
	for rows.Next() {
		item, scanErr := scanTodo(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (TodoRow, error) {
	var out TodoRow
	var created string
	var end sql.NullString
	if err := s.Scan(&out.ID, &out.GroupID, &out.Position, &out.Title, &out.Description,
		&out.ProgressIndex, &out.PriorityIndex, &created, &end); err != nil {
		return TodoRow{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return TodoRow{}, err
	}
	endAt, err := parseNullableTime(end)
	if err != nil {
		return TodoRow{}, err
	}
	out.CreatedAt = createdAt
	out.EndAt = endAt
	return out, nil
}

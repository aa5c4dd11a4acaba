package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lixenwraith/taskfall/task"
)

const timestampLayout = time.RFC3339

// SQLite is a task source backed by a local database file
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and ensures the schema
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect db %s: %w", path, err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &SQLite{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		duration INTEGER,
		type TEXT NOT NULL DEFAULT '',
		importance TEXT NOT NULL DEFAULT '',
		due_date TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		archived_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_archived ON tasks(archived_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// List returns the tasks that are not archived, newest first
func (s *SQLite) List(ctx context.Context) ([]task.Task, error) {
	return s.query(ctx, `
		SELECT id, title, duration, type, importance, due_date, created_at
		FROM tasks
		WHERE archived_at IS NULL
		ORDER BY created_at DESC, id DESC
	`)
}

// ListArchived returns archived tasks, most recently archived first
func (s *SQLite) ListArchived(ctx context.Context) ([]task.Task, error) {
	return s.query(ctx, `
		SELECT id, title, duration, type, importance, due_date, created_at
		FROM tasks
		WHERE archived_at IS NOT NULL
		ORDER BY archived_at DESC, id DESC
	`)
}

func (s *SQLite) query(ctx context.Context, q string) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var (
			id         int64
			title      string
			duration   sql.NullInt64
			typ        string
			importance string
			due        sql.NullString
			created    sql.NullString
		)
		if err := rows.Scan(&id, &title, &duration, &typ, &importance, &due, &created); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}

		t := task.Task{
			ID:         task.Int64Ptr(id),
			Title:      title,
			Type:       task.ParseType(typ),
			Importance: task.ParseImportance(importance),
		}
		if duration.Valid {
			t.Duration = task.IntPtr(int(duration.Int64))
		}
		if due.Valid {
			t.DueDate = task.ParseTimestampPtr(due.String)
		}
		if created.Valid {
			t.CreatedAt = task.ParseTimestampPtr(created.String)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Insert stores t and returns its new id; a missing creation time defaults to now
func (s *SQLite) Insert(ctx context.Context, t task.Task) (int64, error) {
	var duration sql.NullInt64
	if t.Duration != nil {
		duration = sql.NullInt64{Int64: int64(*t.Duration), Valid: true}
	}
	var due sql.NullString
	if t.DueDate != nil {
		due = sql.NullString{String: t.DueDate.Format(timestampLayout), Valid: true}
	}
	created := time.Now()
	if t.CreatedAt != nil {
		created = *t.CreatedAt
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (title, duration, type, importance, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.Title, duration, string(t.Type), string(t.Importance), due, created.Format(timestampLayout))
	if err != nil {
		return 0, fmt.Errorf("insert task %q: %w", t.Title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert task %q: %w", t.Title, err)
	}
	return id, nil
}

// Archive retires the task with id; ErrNotFound when it is absent or already archived
func (s *SQLite) Archive(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET archived_at = ?
		WHERE id = ? AND archived_at IS NULL
	`, time.Now().Format(timestampLayout), id)
	if err != nil {
		return fmt.Errorf("archive task %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive task %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("archive task %d: %w", id, ErrNotFound)
	}
	return nil
}

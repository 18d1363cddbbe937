package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studia/internal/modules/session/domain"
	sessionout "studia/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteRecordStore struct {
	db *sql.DB
}

func NewSQLiteRecordStore(dbPath string) (*SQLiteRecordStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteRecordStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

var _ sessionout.RecordStore = (*SQLiteRecordStore)(nil)

func (s *SQLiteRecordStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tags (
  name TEXT PRIMARY KEY,
  category TEXT
);
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  date TEXT NOT NULL,
  duration_min INTEGER NOT NULL,
  tag TEXT REFERENCES tags(name)
);
CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create session tables: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) Save(ctx context.Context, record domain.Record) error {
	const stmt = `
INSERT INTO sessions (id, date, duration_min, tag)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  date=excluded.date,
  duration_min=excluded.duration_min,
  tag=excluded.tag;
`
	var tag any
	if record.Tag != "" {
		tag = record.Tag
	}
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		record.Date.Format("2006-01-02"),
		record.DurationMin,
		tag,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) List(ctx context.Context, from, to time.Time, tag string) ([]domain.Record, error) {
	query := `SELECT id, date, duration_min, COALESCE(tag, '') FROM sessions WHERE 1=1`
	args := make([]any, 0, 3)
	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		query += ` AND date <= ?`
		args = append(args, to.Format("2006-01-02"))
	}
	if tag != "" {
		query += ` AND tag = ?`
		args = append(args, tag)
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []domain.Record
	for rows.Next() {
		var record domain.Record
		var date string
		if err := rows.Scan(&record.ID, &date, &record.DurationMin, &record.Tag); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("parse session date %q: %w", date, err)
		}
		record.Date = parsed
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return records, nil
}

func (s *SQLiteRecordStore) UpsertTag(ctx context.Context, tag domain.Tag) error {
	const stmt = `
INSERT INTO tags (name, category) VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET category=excluded.category;
`
	if _, err := s.db.ExecContext(ctx, stmt, tag.Name, tag.Category); err != nil {
		return fmt.Errorf("upsert tag: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, COALESCE(category, '') FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tags []domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.Name, &tag.Category); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (s *SQLiteRecordStore) Close() error {
	return s.db.Close()
}

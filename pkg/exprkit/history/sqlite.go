package history

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists history to SQLite.
// It is suitable for single-process use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite history store.
// The path should be a file path (e.g., "./history.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Each pooled connection to ":memory:" would get its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS evaluations (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			expression TEXT NOT NULL,
			value TEXT NOT NULL DEFAULT '',
			value_type TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			error_kind TEXT NOT NULL DEFAULT '',
			duration_ns INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(rec Record) error {
	if rec.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	err := withRetry(busyRetry, func() error {
		_, err := s.db.Exec(`
			INSERT INTO evaluations (id, expression, value, value_type, error, error_kind, duration_ns, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				expression = excluded.expression,
				value = excluded.value,
				value_type = excluded.value_type,
				error = excluded.error,
				error_kind = excluded.error_kind,
				duration_ns = excluded.duration_ns,
				created_at = excluded.created_at
		`, rec.ID, rec.Expression, rec.Value, rec.ValueType, rec.Error, rec.ErrorKind,
			int64(rec.Duration), rec.CreatedAt.UTC().Format(time.RFC3339Nano))
		return err
	})
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Record{}, ErrStoreClosed
	}

	rec, err := scanRecord(s.db.QueryRow(`
		SELECT id, expression, value, value_type, error, error_kind, duration_ns, created_at
		FROM evaluations
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// List implements Store.
func (s *SQLiteStore) List(limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.Query(`
		SELECT id, expression, value, value_type, error, error_kind, duration_ns, created_at
		FROM evaluations
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// Clear implements Store.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	err := withRetry(busyRetry, func() error {
		_, err := s.db.Exec(`DELETE FROM evaluations`)
		return err
	})
	if err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec       Record
		duration  int64
		createdAt string
	)
	if err := row.Scan(&rec.ID, &rec.Expression, &rec.Value, &rec.ValueType,
		&rec.Error, &rec.ErrorKind, &duration, &createdAt); err != nil {
		return Record{}, err
	}
	rec.Duration = time.Duration(duration)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return rec, nil
}

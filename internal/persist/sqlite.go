package persist

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly

	"multiselect/internal/domain"
	"multiselect/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS selections (
	control  TEXT    NOT NULL,
	position INTEGER NOT NULL,
	value    TEXT    NOT NULL,
	label    TEXT    NOT NULL,
	PRIMARY KEY (control, position)
)`

// SQLiteStore persists selection snapshots in a local SQLite database.
// Rows are keyed by a control name so several controls can share one
// history file. Save replaces the control's rows in one transaction.
type SQLiteStore struct {
	dsn     string
	control string
}

// NewSQLiteStore opens (creating if needed) the history database at
// dbPath and ensures the schema exists. control names the owning
// control's row set.
func NewSQLiteStore(dbPath, control string) (*SQLiteStore, error) {
	trimmed := strings.TrimSpace(dbPath)
	if trimmed == "" {
		return nil, errors.New(errors.CodeConfigurationError, "history database path is empty", nil)
	}
	if strings.TrimSpace(control) == "" {
		return nil, errors.New(errors.CodeConfigurationError, "control name is empty", nil)
	}
	s := &SQLiteStore{dsn: buildDSN(trimmed), control: control}

	db, err := s.openDB(context.Background())
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create selections table: %w", err)
	}
	return s, nil
}

// buildDSN creates a read-write WAL DSN for the given path.
func buildDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", "3000")
	q.Set("_foreign_keys", "on")
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *SQLiteStore) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	return db, nil
}

// Load reads the persisted selection for this control in stored order.
// Failures are reported as persistence_load_failed; callers degrade to
// an empty selection rather than blocking startup.
func (s *SQLiteStore) Load() ([]domain.Option, error) {
	ctx := context.Background()
	db, err := s.openDB(ctx)
	if err != nil {
		return nil, errors.New(errors.CodePersistenceLoadFailed, "", err)
	}
	defer func() {
		_ = db.Close()
	}()

	rows, err := db.QueryContext(ctx, `
		SELECT value, label
		FROM selections
		WHERE control = ?
		ORDER BY position
	`, s.control)
	if err != nil {
		return nil, errors.New(errors.CodePersistenceLoadFailed, "", fmt.Errorf("query selections: %w", err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var selected []domain.Option
	for rows.Next() {
		var value, label string
		if err := rows.Scan(&value, &label); err != nil {
			return nil, errors.New(errors.CodePersistenceLoadFailed, "", fmt.Errorf("scan selection row: %w", err))
		}
		selected = append(selected, domain.NewWithValue(label, value))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New(errors.CodePersistenceLoadFailed, "", err)
	}
	return selected, nil
}

// Save replaces this control's persisted rows with the snapshot.
func (s *SQLiteStore) Save(selected []domain.Option) error {
	ctx := context.Background()
	db, err := s.openDB(ctx)
	if err != nil {
		return errors.New(errors.CodePersistenceSaveFailed, "", err)
	}
	defer func() {
		_ = db.Close()
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.New(errors.CodePersistenceSaveFailed, "", fmt.Errorf("begin tx: %w", err))
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM selections WHERE control = ?`, s.control); err != nil {
		_ = tx.Rollback()
		return errors.New(errors.CodePersistenceSaveFailed, "", fmt.Errorf("clear selections: %w", err))
	}
	for i, opt := range selected {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO selections (control, position, value, label)
			VALUES (?, ?, ?, ?)
		`, s.control, i, opt.Key(), opt.Label); err != nil {
			_ = tx.Rollback()
			return errors.New(errors.CodePersistenceSaveFailed, "", fmt.Errorf("insert selection row: %w", err))
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.New(errors.CodePersistenceSaveFailed, "", fmt.Errorf("commit selections: %w", err))
	}
	return nil
}

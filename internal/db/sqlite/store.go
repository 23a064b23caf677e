// Package sqlite is an embedded, durable db.Store backed by modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/kailas-cloud/ncosearch/internal/db"
	"github.com/kailas-cloud/ncosearch/internal/db/sqlite/migrations"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store implements db.Store on a single SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database at path and applies
// pending migrations.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := path
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
		// WAL lets readers proceed while a writer commits.
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		// Every connection would otherwise get its own empty database.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	s := &Store{db: sqlDB, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Path returns the database path.
func (s *Store) Path() string { return s.path }

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady pings once; an embedded database is ready as soon as it opens.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Ping(ctx)
}

// migrate applies every NNN_*.up.sql newer than the recorded schema version.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("%s: %w", name, err)}
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return &db.Error{Op: db.OpMigrate, Err: err}
		}
	}
	return nil
}

// ReplaceRecords swaps the records table contents in one transaction.
func (s *Store) ReplaceRecords(ctx context.Context, rows []db.RecordRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpBegin, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO records (code, title, description, path) VALUES (?, ?, ?, ?)")
	if err != nil {
		return &db.Error{Op: db.OpInsert, Err: err}
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Code, r.Title, r.Description, r.Path); err != nil {
			return &db.Error{Op: db.OpInsert, Err: fmt.Errorf("code %s: %w", r.Code, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpCommit, Err: err}
	}
	return nil
}

// Records returns the committed records ordered by code.
func (s *Store) Records(ctx context.Context) ([]db.RecordRow, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT code, title, description, path FROM records ORDER BY code")
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []db.RecordRow
	for rows.Next() {
		var r db.RecordRow
		if err := rows.Scan(&r.Code, &r.Title, &r.Description, &r.Path); err != nil {
			return nil, &db.Error{Op: db.OpQuery, Err: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	return out, nil
}

// AddSynonym inserts row; the autoincrement key becomes its Seq.
func (s *Store) AddSynonym(ctx context.Context, row db.SynonymRow) (db.SynonymRow, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO synonyms (id, anchor, term, created_at) VALUES (?, ?, ?, ?)",
		row.ID, row.For, row.Term, row.CreatedAt)
	if err != nil {
		return db.SynonymRow{}, &db.Error{Op: db.OpInsert, Err: err}
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return db.SynonymRow{}, &db.Error{Op: db.OpInsert, Err: err}
	}
	row.Seq = seq
	return row, nil
}

// Synonyms returns all rows in creation order.
func (s *Store) Synonyms(ctx context.Context) ([]db.SynonymRow, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT seq, id, anchor, term, created_at FROM synonyms ORDER BY seq")
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []db.SynonymRow
	for rows.Next() {
		var r db.SynonymRow
		if err := rows.Scan(&r.Seq, &r.ID, &r.For, &r.Term, &r.CreatedAt); err != nil {
			return nil, &db.Error{Op: db.OpQuery, Err: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	return out, nil
}

// DeleteSynonym removes the row with id; zero affected rows is not an error.
func (s *Store) DeleteSynonym(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM synonyms WHERE id = ?", id); err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}
	return nil
}

// AppendAudit inserts one audit row with its results encoded as JSON.
func (s *Store) AppendAudit(ctx context.Context, row db.AuditRow) error {
	results := row.Results
	if results == nil {
		results = []db.AuditResultRow{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode audit results: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO audit (id, at, q, expanded, top_k, results) VALUES (?, ?, ?, ?, ?, ?)",
		row.ID, row.At, row.Query, row.Expanded, row.TopK, string(data))
	if err != nil {
		return &db.Error{Op: db.OpInsert, Err: err}
	}
	return nil
}

// AuditEntries returns the newest limit rows in insertion order.
func (s *Store) AuditEntries(ctx context.Context, limit int) ([]db.AuditRow, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, at, q, expanded, top_k, results FROM (
			SELECT seq, id, at, q, expanded, top_k, results
			FROM audit ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`, limit)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []db.AuditRow
	for rows.Next() {
		var r db.AuditRow
		var results string
		if err := rows.Scan(&r.ID, &r.At, &r.Query, &r.Expanded, &r.TopK, &results); err != nil {
			return nil, &db.Error{Op: db.OpQuery, Err: err}
		}
		if err := json.Unmarshal([]byte(results), &r.Results); err != nil {
			return nil, fmt.Errorf("audit %s: %w", r.ID, db.ErrCorrupt)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	return out, nil
}

// Package symstore persists symbol tables in SQLite, one snapshot per run.
package symstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/funvibe/classc/internal/symbols"
	"github.com/funvibe/classc/internal/token"
)

const sqliteDriverName = "sqlite"

// ErrRunNotFound is returned when a run ID has no snapshot.
var ErrRunNotFound = errors.New("run not found")

type Store struct {
	db *sql.DB
}

// Run describes one stored snapshot.
type Run struct {
	ID        string
	CreatedAt time.Time
	Symbols   int
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("symbol store path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("symbol store path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create symbol store directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite symbol store %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite symbol store %q: %w", cleanPath, err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
  id         TEXT PRIMARY KEY,
  created_at INTEGER NOT NULL,
  symbols    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS symbols (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
  namespace  TEXT NOT NULL,
  scope      TEXT NOT NULL,
  depth      INTEGER NOT NULL,
  name       TEXT NOT NULL,
  kind       TEXT NOT NULL,
  type_name  TEXT NOT NULL,
  interfaces TEXT NOT NULL,
  line       INTEGER NOT NULL,
  col        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS symbols_by_run ON symbols(run_id, depth, id);
CREATE INDEX IF NOT EXISTS symbols_by_name ON symbols(run_id, namespace, name);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate symbol store schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores gst under runID, replacing an earlier snapshot of the same run.
func (s *Store) Save(ctx context.Context, runID string, gst symbols.GlobalSymbolTable) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID); err != nil {
		return fmt.Errorf("replace run %s: %w", runID, err)
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO runs (id, created_at, symbols) VALUES (?, ?, ?)`,
		runID, time.Now().UnixNano(), gst.Count()); err != nil {
		return fmt.Errorf("insert run %s: %w", runID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO symbols
  (run_id, namespace, scope, depth, name, kind, type_name, interfaces, line, col)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert symbol: %w", err)
	}
	defer stmt.Close()

	gst.Walk(func(path []string, e symbols.Entry) {
		if err != nil {
			return
		}
		var ifaces string
		if c, ok := e.(*symbols.ClassEntry); ok {
			ifaces = strings.Join(c.Interfaces, ",")
		}
		scope := path[1 : len(path)-1]
		pos := e.GetPos()
		_, err = stmt.ExecContext(ctx, runID, path[0], strings.Join(scope, "/"), len(scope),
			path[len(path)-1], e.Kind().String(), e.TypeName(), ifaces, pos.Line, pos.Column)
		if err != nil {
			err = fmt.Errorf("insert symbol %s: %w", strings.Join(path, "."), err)
		}
	})
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load rebuilds the table saved under runID.
func (s *Store) Load(ctx context.Context, runID string) (symbols.GlobalSymbolTable, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT namespace, scope, name, kind, type_name, interfaces, line, col
FROM symbols WHERE run_id = ? ORDER BY depth, id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query symbols of run %s: %w", runID, err)
	}
	defer rows.Close()

	gst := make(symbols.GlobalSymbolTable)
	for rows.Next() {
		var (
			ns, scope, name, kindName, typeName, ifaces string
			line, col                                   int
		)
		if err := rows.Scan(&ns, &scope, &name, &kindName, &typeName, &ifaces, &line, &col); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		kind, ok := symbols.ParseSymbolKind(kindName)
		if !ok {
			return nil, fmt.Errorf("symbol %s.%s: unknown kind %q", ns, name, kindName)
		}
		var interfaces []string
		if ifaces != "" {
			interfaces = strings.Split(ifaces, ",")
		}

		path := []string{ns}
		if scope != "" {
			path = append(path, strings.Split(scope, "/")...)
		}
		path = append(path, name)
		entry := symbols.NewEntry(kind, typeName, token.Pos(line, col), interfaces)
		if err := gst.Attach(path, entry); err != nil {
			return nil, fmt.Errorf("rebuild run %s: %w", runID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate symbols: %w", err)
	}
	return gst, nil
}

// Runs lists the stored snapshots, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, symbols FROM runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var created int64
		if err := rows.Scan(&r.ID, &created, &r.Symbols); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt = time.Unix(0, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Latest returns the newest run, or ErrRunNotFound for an empty store.
func (s *Store) Latest(ctx context.Context) (Run, error) {
	runs, err := s.Runs(ctx)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, ErrRunNotFound
	}
	return runs[0], nil
}

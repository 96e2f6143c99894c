package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite" // CGO-free SQLite driver

	"github.com/codewithboateng/rulebench/internal/model"
)

// DB is the concrete storage backed by SQLite.
type DB struct {
	conn *sql.DB
}

// OpenSQLite opens (and creates if missing) a SQLite DB at path.
func OpenSQLite(path string) (*DB, error) {
	// Pragmas via DSN keep it portable with the modernc driver.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"
	c, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{conn: c}, nil
}

func (db *DB) Close() error { return db.conn.Close() }

// CreateSchema ensures all tables exist.
func (db *DB) CreateSchema() error {
	_, err := db.conn.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id           TEXT PRIMARY KEY,
  started_at   TEXT,          -- RFC3339
  catalog_path TEXT,
  selector     TEXT,
  version      TEXT,
  run_json     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
  case_id    TEXT,
  run_id     TEXT NOT NULL,
  standard   TEXT,
  rule_code  TEXT,
  outcome    TEXT,
  matched    INTEGER,
  suppressed INTEGER,
  detail     TEXT,
  PRIMARY KEY (case_id, run_id),
  FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
CREATE INDEX IF NOT EXISTS idx_results_rule ON results(rule_code);

CREATE TABLE IF NOT EXISTS suppressions (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  case_id    TEXT,              -- optional exact match; NULL = any
  rule_code  TEXT,              -- optional exact match; NULL = any
  reason     TEXT NOT NULL,
  expires_at TEXT NOT NULL,     -- RFC3339Nano
  created_by TEXT NOT NULL,
  created_at TEXT NOT NULL,
  revoked_at TEXT               -- NULL = active
);

CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT UNIQUE NOT NULL,
  pass_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'viewer',
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
  token TEXT PRIMARY KEY,
  user_id INTEGER NOT NULL,
  expires_at TEXT NOT NULL,
  created_at TEXT NOT NULL,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS audit (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts TEXT NOT NULL,
  username TEXT,
  action TEXT NOT NULL,
  resource TEXT,
  meta_json TEXT
);
`)
	return err
}

// SaveRun upserts a run JSON and (re)writes its per-case results.
func (db *DB) SaveRun(run *model.Run) error {
	b, err := json.Marshal(run)
	if err != nil {
		return err
	}
	ts := run.StartedAt.UTC().Format(time.RFC3339Nano)

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, started_at, catalog_path, selector, version, run_json)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET started_at=excluded.started_at, catalog_path=excluded.catalog_path, selector=excluded.selector, version=excluded.version, run_json=excluded.run_json`,
		run.ID, ts, run.CatalogPath, run.Selector, run.Version, string(b),
	); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM results WHERE run_id = ?`, run.ID); err != nil {
		return err
	}
	if len(run.Results) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO results
			(case_id, run_id, standard, rule_code, outcome, matched, suppressed, detail)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range run.Results {
			if _, err := stmt.Exec(
				r.CaseID,
				run.ID,
				string(r.Standard),
				r.ExpectedRule,
				string(r.Outcome),
				boolInt(r.Matched),
				boolInt(r.Suppressed),
				r.Detail,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// LoadRun returns the full run (from stored JSON).
func (db *DB) LoadRun(id string) (model.Run, error) {
	var s string
	row := db.conn.QueryRow(`SELECT run_json FROM runs WHERE id = ?`, id)
	if err := row.Scan(&s); err != nil {
		return model.Run{}, err
	}
	var run model.Run
	if err := json.Unmarshal([]byte(s), &run); err != nil {
		return model.Run{}, err
	}
	return run, nil
}

// LoadLatestRun returns the most recently started run.
func (db *DB) LoadLatestRun() (model.Run, error) {
	var id string
	row := db.conn.QueryRow(`SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`)
	if err := row.Scan(&id); err != nil {
		return model.Run{}, err
	}
	return db.LoadRun(id)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

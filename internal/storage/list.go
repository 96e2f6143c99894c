package storage

import (
	"database/sql"
	"time"

	"github.com/codewithboateng/rulebench/internal/model"
)

// ListRuns returns a lightweight list of runs with counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.selector, r.version,
		       (SELECT COUNT(1) FROM results x WHERE x.run_id = r.id) AS cases,
		       (SELECT COUNT(1) FROM results x WHERE x.run_id = r.id AND x.outcome <> 'PASS') AS failures
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Selector, &rr.Version, &rr.Cases, &rr.Failures); err != nil {
			return nil, err
		}
		// Parse RFC3339Nano first, fallback to RFC3339
		if t, err := time.Parse(time.RFC3339Nano, startedAtStr); err == nil {
			rr.StartedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, startedAtStr); err2 == nil {
			rr.StartedAt = t2
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListResults returns per-case results for a run, optionally filtered to a
// single outcome, in a stable order.
func (db *DB) ListResults(runID, outcome string) ([]model.VerificationResult, error) {
	const q = `
		SELECT case_id, standard, rule_code, outcome, matched, suppressed, detail
		  FROM results
		 WHERE run_id = ?
		   AND (? = '' OR outcome = ?)
		 ORDER BY case_id`
	rows, err := db.conn.Query(q, runID, outcome, outcome)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.VerificationResult
	for rows.Next() {
		var (
			r                   model.VerificationResult
			std                 string
			matched, suppressed int
		)
		if err := rows.Scan(&r.CaseID, &std, &r.ExpectedRule, &r.Outcome, &matched, &suppressed, &r.Detail); err != nil {
			return nil, err
		}
		r.Standard = model.Standard(std)
		r.Matched = matched != 0
		r.Suppressed = suppressed != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// HasRun reports whether a run id exists.
func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

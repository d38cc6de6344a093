package habitat

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS patch_metrics (
	run           TEXT    NOT NULL,
	step          INTEGER NOT NULL,
	time_yr       REAL    NOT NULL,
	npatch        INTEGER NOT NULL,
	area_total    REAL    NOT NULL,
	area_mean     REAL    NOT NULL,
	area_largest  REAL    NOT NULL,
	edge_density  REAL    NOT NULL,
	PRIMARY KEY (run, step)
);`

// Store persists habitat metrics time series to SQLite so runs can be
// compared without re-reading snapshot gobs.
type Store struct {
	db *sql.DB
}

func NewStore(fp string) (*Store, error) {
	db, err := sql.Open("sqlite", fp+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("habitat store open: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("habitat store schema: %v", err)
	}
	return &Store{db: db}, nil
}

func (st *Store) Close() error { return st.db.Close() }

// Put saves (or replaces) a run's metrics series.
func (st *Store) Put(run string, mm []Metrics) error {
	tx, err := st.db.Begin()
	if err != nil {
		return fmt.Errorf("habitat store put: %v", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO patch_metrics
		(run, step, time_yr, npatch, area_total, area_mean, area_largest, edge_density)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("habitat store put: %v", err)
	}
	defer stmt.Close()
	for _, v := range mm {
		if _, err := stmt.Exec(run, v.Step, v.Time, v.Npatch, v.AreaTotal, v.AreaMean, v.AreaLargest, v.EdgeDensity); err != nil {
			tx.Rollback()
			return fmt.Errorf("habitat store put step %d: %v", v.Step, err)
		}
	}
	return tx.Commit()
}

// Get returns a run's metrics series ordered by step.
func (st *Store) Get(run string) ([]Metrics, error) {
	rows, err := st.db.Query(`SELECT step, time_yr, npatch, area_total, area_mean, area_largest, edge_density
		FROM patch_metrics WHERE run = ? ORDER BY step`, run)
	if err != nil {
		return nil, fmt.Errorf("habitat store get: %v", err)
	}
	defer rows.Close()
	var out []Metrics
	for rows.Next() {
		var v Metrics
		if err := rows.Scan(&v.Step, &v.Time, &v.Npatch, &v.AreaTotal, &v.AreaMean, &v.AreaLargest, &v.EdgeDensity); err != nil {
			return nil, fmt.Errorf("habitat store get: %v", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

package main

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/piratevector/dyclee/snapshot"
)

// exportStore is the thin persistence layer for one demo run: it knows
// nothing about clustering, only how to file an already-computed
// snapshot.Archive into SQLite for offline inspection.
type exportStore struct {
	db *sql.DB
}

func openExportStore(path string) (*exportStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("dyclee-demo: open %s: %w", path, err)
	}
	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &exportStore{db: db}, nil
}

func (s *exportStore) Close() error { return s.db.Close() }

func (s *exportStore) insertRun(runID string, startedAtNs int64, phi float64, tGlobal int64, alpha, l int) error {
	_, err := s.db.Exec(
		`INSERT INTO dyclee_runs (run_id, started_at_ns, phi, t_global, pyramid_alpha, pyramid_l) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, startedAtNs, phi, tGlobal, alpha, l,
	)
	if err != nil {
		return fmt.Errorf("dyclee-demo: insert run %s: %w", runID, err)
	}
	return nil
}

// insertSnapshot stores one archived instant as two JSON blobs, the same
// loosely-structured-column idiom internal/db uses for nested result
// payloads it otherwise has no reason to normalize into extra tables.
func (s *exportStore) insertSnapshot(runID string, snap *snapshot.Snapshot) error {
	popJSON, err := json.Marshal(snap.Population)
	if err != nil {
		return fmt.Errorf("dyclee-demo: marshal population at t=%d: %w", snap.T, err)
	}
	finalJSON, err := json.Marshal(snap.Final)
	if err != nil {
		return fmt.Errorf("dyclee-demo: marshal final clusters at t=%d: %w", snap.T, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO dyclee_snapshots (run_id, t, population_json, final_clusters_json) VALUES (?, ?, ?, ?)`,
		runID, snap.T, string(popJSON), string(finalJSON),
	)
	if err != nil {
		return fmt.Errorf("dyclee-demo: insert snapshot at t=%d: %w", snap.T, err)
	}
	return nil
}

// exportArchive persists every distinct snapshot retained anywhere in
// arc, deduplicated across pyramid tiers by snapshot.Archive.All.
func exportArchive(s *exportStore, runID string, arc *snapshot.Archive) (int, error) {
	all := arc.All()
	for _, snap := range all {
		if err := s.insertSnapshot(runID, snap); err != nil {
			return 0, err
		}
	}
	return len(all), nil
}

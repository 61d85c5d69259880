package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/banshee-data/gait.report/internal/gait"
)

// Run is a persisted gait analysis of one recording.
type Run struct {
	RunID       string          `json:"run_id"`
	RecordingID string          `json:"recording_id"`
	ConfigJSON  json.RawMessage `json:"config_json,omitempty"`
	StrideCount int             `json:"stride_count"`
	BoutCount   int             `json:"bout_count"`
	CreatedAt   int64           `json:"created_at"`
}

// SaveRun stores the result table of an analysis together with the
// configuration that produced it. NaN values are stored as NULL.
func (db *DB) SaveRun(recordingID string, cfg gait.Config, res *gait.Result) (*Run, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	run := &Run{
		RunID:       uuid.New().String(),
		RecordingID: recordingID,
		ConfigJSON:  cfgJSON,
		StrideCount: res.NumStrides(),
		BoutCount:   len(res.Bouts),
		CreatedAt:   db.clock.Now().UnixNano(),
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO analysis_runs (
			run_id, recording_id, config_json, stride_count, bout_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID, run.RecordingID, string(run.ConfigJSON),
		run.StrideCount, run.BoutCount, run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO stride_values (run_id, stride_idx, column_name, value)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for name, values := range res.Columns() {
		for i, v := range values {
			if _, err := stmt.Exec(run.RunID, i, name, finiteOrNull(v)); err != nil {
				return nil, fmt.Errorf("failed to insert %q row %d: %w", name, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the runs of a recording, newest first. An empty
// recordingID lists every run.
func (db *DB) ListRuns(recordingID string) ([]*Run, error) {
	query := `SELECT run_id, recording_id, config_json, stride_count, bout_count, created_at
		FROM analysis_runs`
	var args []interface{}
	if recordingID != "" {
		query += ` WHERE recording_id = ?`
		args = append(args, recordingID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns a single run.
func (db *DB) GetRun(runID string) (*Run, error) {
	row := db.QueryRow(`
		SELECT run_id, recording_id, config_json, stride_count, bout_count, created_at
		FROM analysis_runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %q: %w", runID, ErrNotFound)
	}
	return r, err
}

// LoadRunColumns rebuilds the result table of a run. Every key of
// gait.Keys is present and NULL values come back as NaN.
func (db *DB) LoadRunColumns(runID string) (map[string][]float64, error) {
	run, err := db.GetRun(runID)
	if err != nil {
		return nil, err
	}

	cols := make(map[string][]float64, len(gait.Keys()))
	for _, k := range gait.Keys() {
		cols[k] = nanSlice(run.StrideCount)
	}

	rows, err := db.Query(`
		SELECT stride_idx, column_name, value
		FROM stride_values WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			idx   int
			name  string
			value sql.NullFloat64
		)
		if err := rows.Scan(&idx, &name, &value); err != nil {
			return nil, err
		}
		if idx < 0 || idx >= run.StrideCount {
			return nil, fmt.Errorf("run %q: stride index %d out of range [0, %d)", runID, idx, run.StrideCount)
		}
		col, ok := cols[name]
		if !ok {
			col = nanSlice(run.StrideCount)
			cols[name] = col
		}
		if value.Valid {
			col[idx] = value.Float64
		}
	}
	return cols, rows.Err()
}

func scanRun(s scanner) (*Run, error) {
	var (
		r       Run
		cfgJSON sql.NullString
	)
	if err := s.Scan(&r.RunID, &r.RecordingID, &cfgJSON, &r.StrideCount, &r.BoutCount, &r.CreatedAt); err != nil {
		return nil, err
	}
	if cfgJSON.Valid && cfgJSON.String != "" {
		r.ConfigJSON = json.RawMessage(cfgJSON.String)
	}
	return &r, nil
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

func finiteOrNull(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

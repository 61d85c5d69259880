package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/gait.report/internal/gait"
	"github.com/banshee-data/gait.report/internal/units"
)

// Recording is the metadata of a stored recording.
type Recording struct {
	RecordingID string `json:"recording_id"`
	Subject     string `json:"subject"`
	// AccelUnits is the unit the samples were stored in, units.G or
	// units.MPS2. Loaded samples are always converted to g.
	AccelUnits        string   `json:"accel_units"`
	SampleCount       int      `json:"sample_count"`
	Height            *float64 `json:"height_m,omitempty"`
	HeightIsLegLength bool     `json:"height_is_leg_length"`
	CreatedAt         int64    `json:"created_at"`
}

// StoredRecording is a recording with its samples and walking labels.
type StoredRecording struct {
	Recording
	Data   gait.Recording
	Labels []bool
}

// InsertRecording stores rec with its samples, labels and day windows.
// If RecordingID is empty a UUID is generated. Data.Height is ignored in
// favour of Recording.Height.
func (db *DB) InsertRecording(rec *StoredRecording) error {
	n := len(rec.Data.Time)
	if len(rec.Data.Accel) != n || len(rec.Labels) != n {
		return fmt.Errorf("%w: %d timestamps, %d acceleration samples, %d labels",
			gait.ErrInvalidInput, n, len(rec.Data.Accel), len(rec.Labels))
	}
	if rec.Data.Gyro != nil && len(rec.Data.Gyro) != n {
		return fmt.Errorf("%w: %d gyroscope samples for %d timestamps", gait.ErrInvalidInput, len(rec.Data.Gyro), n)
	}
	if rec.AccelUnits == "" {
		rec.AccelUnits = units.G
	}
	if !units.IsValidAccelUnit(rec.AccelUnits) {
		return fmt.Errorf("%w: acceleration units %q, want one of %v", gait.ErrInvalidInput, rec.AccelUnits, units.ValidAccelUnits)
	}
	if rec.RecordingID == "" {
		rec.RecordingID = uuid.New().String()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = db.clock.Now().UnixNano()
	}
	rec.SampleCount = n

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO recordings (
			recording_id, subject, accel_units, sample_count,
			height_m, height_is_leg_length, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RecordingID, rec.Subject, rec.AccelUnits, rec.SampleCount,
		nullFloat(rec.Height), rec.HeightIsLegLength, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recording: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO samples (recording_id, idx, t, ax, ay, az, gx, gy, gz, gait)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		a := rec.Data.Accel[i]
		var gx, gy, gz interface{}
		if rec.Data.Gyro != nil {
			gx, gy, gz = rec.Data.Gyro[i][0], rec.Data.Gyro[i][1], rec.Data.Gyro[i][2]
		}
		if _, err := stmt.Exec(rec.RecordingID, i, rec.Data.Time[i], a[0], a[1], a[2], gx, gy, gz, rec.Labels[i]); err != nil {
			return fmt.Errorf("failed to insert sample %d: %w", i, err)
		}
	}

	for i, d := range rec.Data.Days {
		_, err := tx.Exec(`
			INSERT INTO recording_days (recording_id, day_n, start_idx, stop_idx)
			VALUES (?, ?, ?, ?)`,
			rec.RecordingID, i+1, d.Start, d.Stop,
		)
		if err != nil {
			return fmt.Errorf("failed to insert day %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// GetRecording returns the metadata of a recording.
func (db *DB) GetRecording(id string) (*Recording, error) {
	row := db.QueryRow(`
		SELECT recording_id, subject, accel_units, sample_count,
			height_m, height_is_leg_length, created_at
		FROM recordings WHERE recording_id = ?`, id)

	r, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recording %q: %w", id, ErrNotFound)
	}
	return r, err
}

// ListRecordings returns all recordings, newest first.
func (db *DB) ListRecordings() ([]*Recording, error) {
	rows, err := db.Query(`
		SELECT recording_id, subject, accel_units, sample_count,
			height_m, height_is_leg_length, created_at
		FROM recordings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Recording
	for rows.Next() {
		r, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadRecording reads a recording with its samples in g, labels and day
// windows, ready for gait.Gait.Predict.
func (db *DB) LoadRecording(id string) (*StoredRecording, error) {
	meta, err := db.GetRecording(id)
	if err != nil {
		return nil, err
	}

	rec := &StoredRecording{
		Recording: *meta,
		Data: gait.Recording{
			Time:   make([]float64, 0, meta.SampleCount),
			Accel:  make([][3]float64, 0, meta.SampleCount),
			Height: meta.Height,
		},
		Labels: make([]bool, 0, meta.SampleCount),
	}

	rows, err := db.Query(`
		SELECT t, ax, ay, az, gx, gy, gz, gait
		FROM samples WHERE recording_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gyro [][3]float64
	hasGyro := false
	for rows.Next() {
		var (
			t          float64
			a          [3]float64
			gx, gy, gz sql.NullFloat64
			label      bool
		)
		if err := rows.Scan(&t, &a[0], &a[1], &a[2], &gx, &gy, &gz, &label); err != nil {
			return nil, err
		}
		for j := range a {
			a[j] = units.ToG(a[j], meta.AccelUnits)
		}
		rec.Data.Time = append(rec.Data.Time, t)
		rec.Data.Accel = append(rec.Data.Accel, a)
		rec.Labels = append(rec.Labels, label)

		hasGyro = hasGyro || gx.Valid
		gyro = append(gyro, [3]float64{gx.Float64, gy.Float64, gz.Float64})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if hasGyro {
		rec.Data.Gyro = gyro
	}

	days, err := db.recordingDays(id)
	if err != nil {
		return nil, err
	}
	rec.Data.Days = days
	return rec, nil
}

func (db *DB) recordingDays(id string) ([]gait.Window, error) {
	rows, err := db.Query(`
		SELECT start_idx, stop_idx FROM recording_days
		WHERE recording_id = ? ORDER BY day_n`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []gait.Window
	for rows.Next() {
		var w gait.Window
		if err := rows.Scan(&w.Start, &w.Stop); err != nil {
			return nil, err
		}
		days = append(days, w)
	}
	return days, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecording(s scanner) (*Recording, error) {
	var (
		r      Recording
		height sql.NullFloat64
	)
	err := s.Scan(&r.RecordingID, &r.Subject, &r.AccelUnits, &r.SampleCount,
		&height, &r.HeightIsLegLength, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if height.Valid {
		h := height.Float64
		r.Height = &h
	}
	return &r, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

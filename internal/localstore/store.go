// Package localstore keeps the CLI workout history in SQLite.
package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/2beens/posecoach/internal/report"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Workout is one stored replay result.
type Workout struct {
	ID              int64
	RecordedAt      time.Time
	ExerciseID      string
	ExerciseName    string
	Source          string
	Grade           report.Grade
	AverageScore    float64
	DurationSeconds float64
	Reps            int
	Calories        int
	Frames          int
}

// ExerciseTotals aggregates all workouts of one exercise.
type ExerciseTotals struct {
	ExerciseID     string
	Workouts       int
	TotalReps      int
	TotalDuration  float64
	TotalCalories  int
	AverageScore   float64
	BestScore      float64
	LastRecordedAt time.Time
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type Store struct {
	db *sql.DB
}

// Open opens or creates the history database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			log.Debugf("close db after failed migration: %s", cerr)
		}
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS workouts (
			id INTEGER PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			exercise_id TEXT NOT NULL,
			exercise_name TEXT NOT NULL,
			source TEXT NOT NULL,
			grade TEXT NOT NULL,
			average_score REAL NOT NULL,
			duration_seconds REAL NOT NULL,
			reps INTEGER NOT NULL,
			calories INTEGER NOT NULL,
			frames INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_exercise ON workouts(exercise_id);`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_recorded_at ON workouts(recorded_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save stores a report produced from source at recordedAt.
func (s *Store) Save(ctx context.Context, rep *report.Report, source string, recordedAt time.Time) (int64, error) {
	if rep == nil {
		return 0, fmt.Errorf("nil report")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO workouts (recorded_at, exercise_id, exercise_name, source, grade, average_score, duration_seconds, reps, calories, frames)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recordedAt.UTC().Format(timeLayout),
		rep.ExerciseID,
		rep.ExerciseName,
		source,
		string(rep.Grade),
		rep.AverageScore,
		rep.DurationSeconds,
		rep.Reps,
		rep.Calories,
		rep.TotalFrames,
	)
	if err != nil {
		return 0, fmt.Errorf("insert workout: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent workouts first. An empty exerciseID matches all.
func (s *Store) List(ctx context.Context, exerciseID string, limit int) ([]Workout, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recorded_at, exercise_id, exercise_name, source, grade, average_score, duration_seconds, reps, calories, frames
		 FROM workouts
		 WHERE (? = '' OR exercise_id = ?)
		 ORDER BY recorded_at DESC, id DESC
		 LIMIT ?`,
		exerciseID, exerciseID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Debugf("close rows: %s", cerr)
		}
	}()

	var workouts []Workout
	for rows.Next() {
		var (
			w          Workout
			recordedAt string
			grade      string
		)
		if err := rows.Scan(
			&w.ID, &recordedAt, &w.ExerciseID, &w.ExerciseName, &w.Source, &grade,
			&w.AverageScore, &w.DurationSeconds, &w.Reps, &w.Calories, &w.Frames,
		); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		if w.RecordedAt, err = time.Parse(timeLayout, recordedAt); err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
		}
		w.Grade = report.Grade(grade)
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Totals aggregates workouts per exercise, ordered by exercise id.
func (s *Store) Totals(ctx context.Context) ([]ExerciseTotals, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT exercise_id, COUNT(*), SUM(reps), SUM(duration_seconds), SUM(calories),
			AVG(average_score), MAX(average_score), MAX(recorded_at)
		 FROM workouts
		 GROUP BY exercise_id
		 ORDER BY exercise_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Debugf("close rows: %s", cerr)
		}
	}()

	var totals []ExerciseTotals
	for rows.Next() {
		var (
			t    ExerciseTotals
			last string
		)
		if err := rows.Scan(
			&t.ExerciseID, &t.Workouts, &t.TotalReps, &t.TotalDuration, &t.TotalCalories,
			&t.AverageScore, &t.BestScore, &last,
		); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		if t.LastRecordedAt, err = time.Parse(timeLayout, last); err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", last, err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}

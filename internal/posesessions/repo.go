package posesessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/posecoach/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Schema creates the tables used by Repo.
const Schema = `
CREATE TABLE IF NOT EXISTS pose_session
(
    id            VARCHAR PRIMARY KEY,
    user_id       VARCHAR          NOT NULL DEFAULT '',
    exercise_id   VARCHAR          NOT NULL,
    mode          VARCHAR          NOT NULL,
    created_at    TIMESTAMPTZ      NOT NULL,
    completed_at  TIMESTAMPTZ,
    duration      DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_frames  INTEGER          NOT NULL DEFAULT 0,
    total_reps    INTEGER          NOT NULL DEFAULT 0,
    average_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    max_score     DOUBLE PRECISION NOT NULL DEFAULT 0,
    min_score     DOUBLE PRECISION NOT NULL DEFAULT 0,
    summary       JSONB
);
CREATE INDEX IF NOT EXISTS ix_pose_session_user_created ON pose_session (user_id, created_at);

CREATE TABLE IF NOT EXISTS pose_frame
(
    id           BIGSERIAL PRIMARY KEY,
    session_id   VARCHAR          NOT NULL REFERENCES pose_session (id) ON DELETE CASCADE,
    frame_index  INTEGER          NOT NULL,
    timestamp    DOUBLE PRECISION NOT NULL,
    landmarks    JSONB            NOT NULL,
    frame_width  INTEGER          NOT NULL DEFAULT 0,
    frame_height INTEGER          NOT NULL DEFAULT 0,
    result       JSONB            NOT NULL,
    created_at   TIMESTAMPTZ      NOT NULL
);
CREATE INDEX IF NOT EXISTS ix_pose_frame_session ON pose_frame (session_id, frame_index);

CREATE TABLE IF NOT EXISTS pose_user_exercise_stats
(
    user_id          VARCHAR          NOT NULL,
    exercise_id      VARCHAR          NOT NULL,
    total_sessions   INTEGER          NOT NULL DEFAULT 0,
    total_duration   DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_reps       INTEGER          NOT NULL DEFAULT 0,
    average_score    DOUBLE PRECISION NOT NULL DEFAULT 0,
    best_score       DOUBLE PRECISION NOT NULL DEFAULT 0,
    improvement_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
    updated_at       TIMESTAMPTZ      NOT NULL,
    PRIMARY KEY (user_id, exercise_id)
);
`

const sessionColumns = `id, user_id, exercise_id, mode, created_at, completed_at, duration,
	total_frames, total_reps, average_score, max_score, min_score, summary`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Migrate applies Schema. Statements are idempotent.
func (r *Repo) Migrate(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posesessions.migrate")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	_, err = r.db.Exec(ctx, Schema)
	return err
}

func scanSession(row pgx.Row) (*Session, error) {
	s := &Session{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.ExerciseID, &s.Mode, &s.CreatedAt, &s.CompletedAt, &s.Duration,
		&s.TotalFrames, &s.TotalReps, &s.AverageScore, &s.MaxScore, &s.MinScore, &s.Summary,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repo) CreateSession(ctx context.Context, s Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posesessions.session.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("exercise", s.ExerciseID))

	_, err = r.db.Exec(ctx, `
		INSERT INTO pose_session (id, user_id, exercise_id, mode, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		s.ID, s.UserID, s.ExerciseID, s.Mode, s.CreatedAt,
	)
	return err
}

func (r *Repo) GetSession(ctx context.Context, id string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posesessions.session.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	s, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM pose_session
		WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repo) AddFrame(ctx context.Context, f Frame) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posesessions.frame.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO pose_frame (session_id, frame_index, timestamp, landmarks, frame_width, frame_height, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		f.SessionID, f.FrameIndex, f.Timestamp, f.Landmarks,
		f.FrameWidth, f.FrameHeight, f.Result, f.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListFrames returns the session frames in frame index order.
func (r *Repo) ListFrames(ctx context.Context, sessionID string) (_ []Frame, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posesessions.frame.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT id, session_id, frame_index, timestamp, landmarks, frame_width, frame_height, result, created_at
		FROM pose_frame
		WHERE session_id = $1
		ORDER BY frame_index, id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	frames := make([]Frame, 0)
	for rows.Next() {
		var f Frame
		if err := rows.Scan(
			&f.ID, &f.SessionID, &f.FrameIndex, &f.Timestamp, &f.Landmarks,
			&f.FrameWidth, &f.FrameHeight, &f.Result, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("frames", len(frames)))
	return frames, nil
}

// CompleteSession stores the session totals and the user stats in one
// transaction. It fails with ErrSessionCompleted if the session was already completed.
func (r *Repo) CompleteSession(ctx context.Context, s *Session, stats *UserExerciseStats) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posesessions.session.complete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE pose_session
		SET completed_at = $2, duration = $3, total_frames = $4, total_reps = $5,
			average_score = $6, max_score = $7, min_score = $8, summary = $9
		WHERE id = $1 AND completed_at IS NULL
	`,
		s.ID, s.CompletedAt, s.Duration, s.TotalFrames, s.TotalReps,
		s.AverageScore, s.MaxScore, s.MinScore, s.Summary,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionCompleted
	}

	if stats == nil {
		return nil
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO pose_user_exercise_stats
			(user_id, exercise_id, total_sessions, total_duration, total_reps, average_score, best_score, improvement_rate, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, exercise_id) DO UPDATE
		SET total_sessions = EXCLUDED.total_sessions,
			total_duration = EXCLUDED.total_duration,
			total_reps = EXCLUDED.total_reps,
			average_score = EXCLUDED.average_score,
			best_score = EXCLUDED.best_score,
			improvement_rate = EXCLUDED.improvement_rate,
			updated_at = EXCLUDED.updated_at
	`,
		stats.UserID, stats.ExerciseID, stats.TotalSessions, stats.TotalDuration, stats.TotalReps,
		stats.AverageScore, stats.BestScore, stats.ImprovementRate, stats.UpdatedAt,
	)
	return err
}

const statsColumns = `user_id, exercise_id, total_sessions, total_duration, total_reps,
	average_score, best_score, improvement_rate, updated_at`

func scanStats(row pgx.Row) (UserExerciseStats, error) {
	var st UserExerciseStats
	err := row.Scan(
		&st.UserID, &st.ExerciseID, &st.TotalSessions, &st.TotalDuration, &st.TotalReps,
		&st.AverageScore, &st.BestScore, &st.ImprovementRate, &st.UpdatedAt,
	)
	return st, err
}

// GetUserStats returns nil stats when the user never completed the exercise.
func (r *Repo) GetUserStats(ctx context.Context, userID, exerciseID string) (_ *UserExerciseStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posesessions.stats.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	st, err := scanStats(r.db.QueryRow(ctx, `
		SELECT `+statsColumns+`
		FROM pose_user_exercise_stats
		WHERE user_id = $1 AND exercise_id = $2
	`, userID, exerciseID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *Repo) ListUserStats(ctx context.Context, userID string) (_ []UserExerciseStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posesessions.stats.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+statsColumns+`
		FROM pose_user_exercise_stats
		WHERE user_id = $1
		ORDER BY exercise_id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]UserExerciseStats, 0)
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecentSessions returns the latest sessions of a user, newest first.
func (r *Repo) RecentSessions(ctx context.Context, userID string, limit int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posesessions.session.recent")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM pose_session
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ExercisesSince returns the distinct exercises a user started since the given time.
func (r *Repo) ExercisesSince(ctx context.Context, userID string, since time.Time) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posesessions.session.exercisessince")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT exercise_id
		FROM pose_session
		WHERE user_id = $1 AND created_at >= $2
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

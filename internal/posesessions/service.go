package posesessions

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/posecoach/internal/evaluator"
	"github.com/2beens/posecoach/internal/exercise"
	"github.com/2beens/posecoach/internal/pose"
	"github.com/2beens/posecoach/internal/report"
	"github.com/2beens/posecoach/internal/telemetry/metrics"
	"github.com/2beens/posecoach/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=posesessions_test

type sessionsRepo interface {
	CreateSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	AddFrame(ctx context.Context, f Frame) (int64, error)
	ListFrames(ctx context.Context, sessionID string) ([]Frame, error)
	CompleteSession(ctx context.Context, s *Session, stats *UserExerciseStats) error
	GetUserStats(ctx context.Context, userID, exerciseID string) (*UserExerciseStats, error)
	ListUserStats(ctx context.Context, userID string) ([]UserExerciseStats, error)
	RecentSessions(ctx context.Context, userID string, limit int) ([]Session, error)
	ExercisesSince(ctx context.Context, userID string, since time.Time) ([]string, error)
}

type reportCache interface {
	Get(ctx context.Context, sessionID string) (*report.Report, string)
	Set(ctx context.Context, sessionID string, rep *report.Report) error
	Invalidate(ctx context.Context, sessionID string) error
}

type NewServiceParams struct {
	Repo     sessionsRepo
	Cache    reportCache
	Registry *exercise.Registry
	Metrics  *metrics.Manager
	// Now defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	repo      sessionsRepo
	cache     reportCache
	registry  *exercise.Registry
	evaluator *evaluator.Evaluator
	metrics   *metrics.Manager
	now       func() time.Time
}

func NewService(params NewServiceParams) *Service {
	registry := params.Registry
	if registry == nil {
		registry = exercise.Default()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	// no tracker and no filter: frames of concurrent sessions share it
	ev := evaluator.New(evaluator.NewEvaluatorParams{Feedback: registry})
	return &Service{
		repo:      params.Repo,
		cache:     params.Cache,
		registry:  registry,
		evaluator: ev,
		metrics:   params.Metrics,
		now:       now,
	}
}

func (s *Service) Exercises(category string) ([]exercise.Exercise, error) {
	if category == "" {
		return s.registry.List(), nil
	}
	c := exercise.Category(category)
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}
	list := s.registry.ByCategory(c)
	if list == nil {
		list = []exercise.Exercise{}
	}
	return list, nil
}

func (s *Service) CreateSession(ctx context.Context, params CreateParams) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posesessions.session.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("exercise", params.ExerciseID))

	if _, ok := s.registry.Get(params.ExerciseID); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExercise, params.ExerciseID)
	}
	if params.Mode == "" {
		params.Mode = ModeRealtime
	}
	if !params.Mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, params.Mode)
	}

	session := Session{
		ID:         uuid.NewString(),
		UserID:     params.UserID,
		ExerciseID: params.ExerciseID,
		Mode:       params.Mode,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.metrics.CounterSessionsStarted.WithLabelValues(session.ExerciseID).Inc()
	log.Debugf("pose session [%s] created: exercise %s, mode %s", session.ID, session.ExerciseID, session.Mode)
	return &session, nil
}

func (s *Service) GetSession(ctx context.Context, id string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posesessions.session.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// SubmitFrame evaluates a client frame against the session exercise, stores it
// and returns the realtime feedback envelope.
func (s *Service) SubmitFrame(ctx context.Context, sessionID string, sub FrameSubmission) (_ *FrameResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posesessions.frame.submit")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if len(sub.Landmarks) == 0 {
		return nil, ErrNoLandmarks
	}

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.Completed() {
		return nil, ErrSessionCompleted
	}
	ex, ok := s.registry.Get(session.ExerciseID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExercise, session.ExerciseID)
	}

	frame := pose.Frame{
		Landmarks: sub.Landmarks,
		Width:     sub.FrameWidth,
		Height:    sub.FrameHeight,
	}
	res, _ := s.evaluator.Evaluate(evaluator.Input{
		Exercise:   ex,
		Landmarks:  frame.Normalized(),
		FrameIndex: sub.FrameIndex,
		Timestamp:  sub.Timestamp,
	})

	frameID, err := s.repo.AddFrame(ctx, Frame{
		SessionID:   sessionID,
		FrameIndex:  sub.FrameIndex,
		Timestamp:   sub.Timestamp,
		Landmarks:   sub.Landmarks,
		FrameWidth:  sub.FrameWidth,
		FrameHeight: sub.FrameHeight,
		Result:      res,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("add frame: %w", err)
	}

	s.metrics.CounterFramesEvaluated.Inc()
	s.metrics.HistFrameScore.Observe(res.OverallScore)

	return &FrameResponse{
		FrameID:      frameID,
		OverallScore: res.OverallScore,
		Feedback:     RealtimeEnvelope(res, session.ExerciseID),
		IsInPosition: res.IsInPosition,
	}, nil
}

// CompleteSession computes the session totals and summary from the stored
// frames and folds them into the user stats.
func (s *Service) CompleteSession(ctx context.Context, sessionID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posesessions.session.complete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.Completed() {
		return nil, ErrSessionCompleted
	}
	ex, ok := s.registry.Get(session.ExerciseID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExercise, session.ExerciseID)
	}

	frames, err := s.repo.ListFrames(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}

	stats := ComputeStats(ex, frames)
	summary := SessionSummary(stats)
	completedAt := s.now().UTC()

	session.CompletedAt = &completedAt
	session.Duration = stats.Duration
	session.TotalFrames = stats.Frames
	session.TotalReps = stats.Reps
	session.AverageScore = stats.AverageScore
	session.MaxScore = stats.MaxScore
	session.MinScore = stats.MinScore
	session.Summary = &summary

	var userStats *UserExerciseStats
	if session.UserID != "" {
		prev, err := s.repo.GetUserStats(ctx, session.UserID, session.ExerciseID)
		if err != nil {
			return nil, fmt.Errorf("get user stats: %w", err)
		}
		next := UpdateUserStats(prev, session, completedAt)
		userStats = &next
	}

	if err := s.repo.CompleteSession(ctx, session, userStats); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, sessionID); err != nil {
			log.Warnf("pose session [%s]: invalidate cached report: %s", sessionID, err)
		}
	}
	s.metrics.CounterSessionsCompleted.WithLabelValues(session.ExerciseID).Inc()
	log.Debugf("pose session [%s] completed: %d frames, avg score %.1f", sessionID, stats.Frames, stats.AverageScore)
	return session, nil
}

// Report synthesizes the coaching report from the stored frames. Reports of
// completed sessions are cached.
func (s *Service) Report(ctx context.Context, sessionID string) (_ *report.Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posesessions.session.report")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Completed() && s.cache != nil {
		rep, result := s.cache.Get(ctx, sessionID)
		s.metrics.CounterReportCacheHits.WithLabelValues(result).Inc()
		span.SetAttributes(attribute.String("cache", result))
		if rep != nil {
			return rep, nil
		}
	}

	ex, ok := s.registry.Get(session.ExerciseID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExercise, session.ExerciseID)
	}
	frames, err := s.repo.ListFrames(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}

	stats := ComputeStats(ex, frames)
	results := make([]evaluator.FrameResult, 0, len(frames))
	for _, f := range frames {
		results = append(results, f.Result)
	}
	coaching, _ := s.registry.Coaching(session.ExerciseID)

	start := time.Now()
	rep := report.Synthesize(report.Input{
		Exercise: ex,
		Coaching: coaching,
		Frames:   results,
		Active:   time.Duration(stats.Duration * float64(time.Second)),
		Reps:     stats.Reps,
	})
	s.metrics.HistReportDuration.Observe(time.Since(start).Seconds())

	if session.Completed() && s.cache != nil {
		if err := s.cache.Set(ctx, sessionID, rep); err != nil {
			log.Warnf("pose session [%s]: cache report: %s", sessionID, err)
		}
	}
	return rep, nil
}

func (s *Service) UserStats(ctx context.Context, userID string) (_ []UserExerciseStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posesessions.stats.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return nil, ErrMissingUser
	}
	stats, err := s.repo.ListUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user stats: %w", err)
	}
	return stats, nil
}

func (s *Service) StatsSummary(ctx context.Context, userID string) (_ *StatsSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posesessions.stats.summary")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return nil, ErrMissingUser
	}
	stats, err := s.repo.ListUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user stats: %w", err)
	}
	recent, err := s.repo.RecentSessions(ctx, userID, RecentSessionsSize)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}

	summary := &StatsSummary{
		TotalExercises: len(stats),
		AverageScore:   averageScore(stats),
		RecentSessions: make([]RecentSession, 0, len(recent)),
	}
	for _, st := range stats {
		summary.TotalSessions += st.TotalSessions
		summary.TotalDuration += st.TotalDuration
		summary.TotalReps += st.TotalReps

		if summary.BestExercise == nil || st.AverageScore > summary.BestExercise.Score {
			summary.BestExercise = &BestExercise{
				ExerciseID: st.ExerciseID,
				Name:       s.exerciseName(st.ExerciseID),
				Score:      st.AverageScore,
				Sessions:   st.TotalSessions,
			}
		}
		if st.ImprovementRate > 0 && (summary.MostImproved == nil || st.ImprovementRate > summary.MostImproved.Improvement) {
			summary.MostImproved = &MostImproved{
				ExerciseID:   st.ExerciseID,
				Name:         s.exerciseName(st.ExerciseID),
				Improvement:  st.ImprovementRate,
				CurrentScore: st.AverageScore,
			}
		}
	}

	for _, rs := range recent {
		summary.RecentSessions = append(summary.RecentSessions, RecentSession{
			SessionID:  rs.ID,
			ExerciseID: rs.ExerciseID,
			Exercise:   s.exerciseName(rs.ExerciseID),
			Date:       rs.CreatedAt,
			Score:      rs.AverageScore,
			Duration:   rs.Duration,
		})
	}
	return summary, nil
}

// Recommendations suggests exercises for a user. Without a user id the
// beginner exercises come first.
func (s *Service) Recommendations(ctx context.Context, userID string) (_ []exercise.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posesessions.recommendations")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	catalog := s.registry.List()
	if userID == "" {
		return Recommend(catalog, 0, nil), nil
	}

	stats, err := s.repo.ListUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user stats: %w", err)
	}
	since := s.now().UTC().AddDate(0, 0, -RecentExerciseDays)
	ids, err := s.repo.ExercisesSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("recent exercises: %w", err)
	}

	recent := make(map[string]bool, len(ids))
	for _, id := range ids {
		recent[id] = true
	}
	return Recommend(catalog, averageScore(stats), recent), nil
}

func (s *Service) exerciseName(id string) string {
	if ex, ok := s.registry.Get(id); ok {
		return ex.Name
	}
	return id
}

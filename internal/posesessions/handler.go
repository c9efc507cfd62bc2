package posesessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/posecoach/internal/exercise"
	"github.com/2beens/posecoach/internal/middleware"
	"github.com/2beens/posecoach/internal/report"
	"github.com/2beens/posecoach/internal/telemetry/metrics"
	"github.com/2beens/posecoach/internal/telemetry/tracing"
	"github.com/2beens/posecoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=posesessions_test

type service interface {
	Exercises(category string) ([]exercise.Exercise, error)
	Recommendations(ctx context.Context, userID string) ([]exercise.Exercise, error)
	CreateSession(ctx context.Context, params CreateParams) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	SubmitFrame(ctx context.Context, sessionID string, sub FrameSubmission) (*FrameResponse, error)
	CompleteSession(ctx context.Context, sessionID string) (*Session, error)
	Report(ctx context.Context, sessionID string) (*report.Report, error)
	UserStats(ctx context.Context, userID string) ([]UserExerciseStats, error)
	StatsSummary(ctx context.Context, userID string) (*StatsSummary, error)
}

type ExercisesResponse struct {
	Exercises []exercise.Exercise `json:"exercises"`
}

type SessionResponse struct {
	Session *Session `json:"session"`
}

type UserStatsResponse struct {
	Stats []UserExerciseStats `json:"stats"`
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes mounts the pose API. Frame submissions are rate limited per
// session when limiter is not nil.
func (handler *Handler) SetupRoutes(
	router *mux.Router,
	limiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	framesPerMin int,
) {
	router.HandleFunc("/pose/exercises", handler.HandleExercises).Methods("GET", "OPTIONS").Name("list-exercises")
	router.HandleFunc("/pose/exercises/recommendations", handler.HandleRecommendations).Methods("GET", "OPTIONS").Name("recommend-exercises")
	router.HandleFunc("/pose/sessions", handler.HandleCreateSession).Methods("POST", "OPTIONS").Name("new-session")
	router.HandleFunc("/pose/sessions/{id}", handler.HandleGetSession).Methods("GET", "OPTIONS").Name("get-session")
	router.HandleFunc("/pose/sessions/{id}/complete", handler.HandleCompleteSession).Methods("POST", "OPTIONS").Name("complete-session")
	router.HandleFunc("/pose/sessions/{id}/report", handler.HandleReport).Methods("GET", "OPTIONS").Name("session-report")
	router.HandleFunc("/pose/stats/{userId}", handler.HandleUserStats).Methods("GET", "OPTIONS").Name("user-stats")
	router.HandleFunc("/pose/stats/{userId}/summary", handler.HandleStatsSummary).Methods("GET", "OPTIONS").Name("user-stats-summary")

	var submitFrame http.Handler = http.HandlerFunc(handler.HandleSubmitFrame)
	if limiter != nil && framesPerMin > 0 {
		submitFrame = middleware.RateLimitBy(limiter, func(r *http.Request) string {
			return "posecoach:frames:" + mux.Vars(r)["id"]
		}, framesPerMin, metricsManager)(submitFrame)
	}
	router.Handle("/pose/sessions/{id}/frames", submitFrame).Methods("POST", "OPTIONS").Name("submit-frame")
}

func (handler *Handler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.posesessions.exercises")
	defer span.End()

	list, err := handler.service.Exercises(r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, "list exercises", err)
		return
	}
	pkg.WriteJSON(w, ExercisesResponse{Exercises: list}, http.StatusOK)
}

func (handler *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posesessions.recommendations")
	defer span.End()

	list, err := handler.service.Recommendations(ctx, r.URL.Query().Get("user"))
	if err != nil {
		writeServiceError(w, "recommend exercises", err)
		return
	}
	pkg.WriteJSON(w, ExercisesResponse{Exercises: list}, http.StatusOK)
}

func (handler *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posesessions.session.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var params CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("new pose session, unmarshal json params: %s", err)
		http.Error(w, "create session failed", decodeStatus(err))
		return
	}
	if params.ExerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	session, err := handler.service.CreateSession(ctx, params)
	if err != nil {
		writeServiceError(w, "create session", err)
		return
	}
	pkg.WriteJSON(w, SessionResponse{Session: session}, http.StatusCreated)
}

func (handler *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posesessions.session.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	session, err := handler.service.GetSession(ctx, id)
	if err != nil {
		writeServiceError(w, "get session "+id, err)
		return
	}
	pkg.WriteJSON(w, SessionResponse{Session: session}, http.StatusOK)
}

func (handler *Handler) HandleSubmitFrame(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posesessions.frame.submit")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var sub FrameSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		log.Errorf("submit frame, unmarshal json params: %s", err)
		http.Error(w, "submit frame failed", decodeStatus(err))
		return
	}

	id := mux.Vars(r)["id"]
	resp, err := handler.service.SubmitFrame(ctx, id, sub)
	if err != nil {
		writeServiceError(w, "submit frame to "+id, err)
		return
	}
	pkg.WriteJSON(w, resp, http.StatusCreated)
}

func (handler *Handler) HandleCompleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posesessions.session.complete")
	defer span.End()

	id := mux.Vars(r)["id"]
	session, err := handler.service.CompleteSession(ctx, id)
	if err != nil {
		writeServiceError(w, "complete session "+id, err)
		return
	}
	log.Debugf("pose session [%s] completed via api", id)
	pkg.WriteJSON(w, SessionResponse{Session: session}, http.StatusOK)
}

func (handler *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posesessions.session.report")
	defer span.End()

	id := mux.Vars(r)["id"]
	rep, err := handler.service.Report(ctx, id)
	if err != nil {
		writeServiceError(w, "report of session "+id, err)
		return
	}
	pkg.WriteJSON(w, rep, http.StatusOK)
}

func (handler *Handler) HandleUserStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posesessions.stats.list")
	defer span.End()

	stats, err := handler.service.UserStats(ctx, mux.Vars(r)["userId"])
	if err != nil {
		writeServiceError(w, "user stats", err)
		return
	}
	if stats == nil {
		stats = []UserExerciseStats{}
	}
	pkg.WriteJSON(w, UserStatsResponse{Stats: stats}, http.StatusOK)
}

func (handler *Handler) HandleStatsSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posesessions.stats.summary")
	defer span.End()

	summary, err := handler.service.StatsSummary(ctx, mux.Vars(r)["userId"])
	if err != nil {
		writeServiceError(w, "stats summary", err)
		return
	}
	pkg.WriteJSON(w, summary, http.StatusOK)
}

func decodeStatus(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
		http.Error(w, "error, "+op+" failed", status)
		return
	}
	log.Debugf("%s: %s", op, err)
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSessionCompleted):
		return http.StatusConflict
	case errors.Is(err, ErrUnknownExercise),
		errors.Is(err, ErrInvalidMode),
		errors.Is(err, ErrNoLandmarks),
		errors.Is(err, ErrMissingUser),
		errors.Is(err, ErrInvalidCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

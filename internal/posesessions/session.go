package posesessions

import (
	"errors"
	"time"

	"github.com/2beens/posecoach/internal/evaluator"
	"github.com/2beens/posecoach/internal/pose"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session already completed")
	ErrUnknownExercise  = errors.New("unknown exercise")
	ErrInvalidMode      = errors.New("invalid session mode")
	ErrNoLandmarks      = errors.New("frame has no landmarks")
	ErrMissingUser      = errors.New("missing user id")
	ErrInvalidCategory  = errors.New("invalid exercise category")
)

// Mode can be one of:
//   - realtime
//   - replay
//   - upload
type Mode string

const (
	ModeRealtime Mode = "realtime"
	ModeReplay   Mode = "replay"
	ModeUpload   Mode = "upload"
)

func (m Mode) String() string {
	return string(m)
}

func (m Mode) IsValid() bool {
	switch m {
	case ModeRealtime, ModeReplay, ModeUpload:
		return true
	default:
		return false
	}
}

// Summary is the coaching text attached to a session on completion.
type Summary struct {
	OverallPerformance string   `json:"overallPerformance"`
	Strengths          []string `json:"strengths"`
	Improvements       []string `json:"improvements"`
	NextSteps          []string `json:"nextSteps"`
}

type Session struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId,omitempty"`
	ExerciseID   string     `json:"exerciseId"`
	Mode         Mode       `json:"mode"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	Duration     float64    `json:"duration"`
	TotalFrames  int        `json:"totalFrames"`
	TotalReps    int        `json:"totalReps"`
	AverageScore float64    `json:"averageScore"`
	MaxScore     float64    `json:"maxScore"`
	MinScore     float64    `json:"minScore"`
	Summary      *Summary   `json:"summary,omitempty"`
}

func (s *Session) Completed() bool {
	return s.CompletedAt != nil
}

type CreateParams struct {
	ExerciseID string `json:"exerciseId"`
	Mode       Mode   `json:"mode"`
	UserID     string `json:"userId"`
}

// FrameSubmission is one client frame. Landmarks are normalized detector
// output; they are mapped to pixel space when the frame dimensions are given.
type FrameSubmission struct {
	FrameIndex  int            `json:"frameIndex"`
	Timestamp   float64        `json:"timestamp"`
	Landmarks   pose.Landmarks `json:"landmarks"`
	FrameWidth  int            `json:"frameWidth,omitempty"`
	FrameHeight int            `json:"frameHeight,omitempty"`
}

// Frame (DB level type) is a stored, evaluated frame.
type Frame struct {
	ID          int64                 `json:"id"`
	SessionID   string                `json:"sessionId"`
	FrameIndex  int                   `json:"frameIndex"`
	Timestamp   float64               `json:"timestamp"`
	Landmarks   pose.Landmarks        `json:"landmarks"`
	FrameWidth  int                   `json:"frameWidth"`
	FrameHeight int                   `json:"frameHeight"`
	Result      evaluator.FrameResult `json:"result"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// AudioCue can be one of:
//   - success
//   - good
//   - warning
//   - neutral
type AudioCue string

const (
	AudioCueSuccess AudioCue = "success"
	AudioCueGood    AudioCue = "good"
	AudioCueWarning AudioCue = "warning"
	AudioCueNeutral AudioCue = "neutral"
)

type RealtimeFeedback struct {
	Messages          []string `json:"messages"`
	Score             float64  `json:"score"`
	CorrectionsNeeded bool     `json:"correctionsNeeded"`
	AudioCue          AudioCue `json:"audioCue"`
}

type FrameResponse struct {
	FrameID      int64            `json:"frameId"`
	OverallScore float64          `json:"overallScore"`
	Feedback     RealtimeFeedback `json:"feedback"`
	IsInPosition bool             `json:"isInPosition"`
}

// UserExerciseStats aggregates the completed sessions of one user and exercise.
type UserExerciseStats struct {
	UserID        string  `json:"userId"`
	ExerciseID    string  `json:"exerciseId"`
	TotalSessions int     `json:"totalSessions"`
	TotalDuration float64 `json:"totalDuration"`
	TotalReps     int     `json:"totalReps"`
	AverageScore  float64 `json:"averageScore"`
	BestScore     float64 `json:"bestScore"`

	// ImprovementRate is the last session average relative to the previous running mean, in percent.
	ImprovementRate float64   `json:"improvementRate"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BestExercise struct {
	ExerciseID string  `json:"exerciseId"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	Sessions   int     `json:"sessions"`
}

type MostImproved struct {
	ExerciseID   string  `json:"exerciseId"`
	Name         string  `json:"name"`
	Improvement  float64 `json:"improvement"`
	CurrentScore float64 `json:"currentScore"`
}

type RecentSession struct {
	SessionID  string    `json:"sessionId"`
	ExerciseID string    `json:"exerciseId"`
	Exercise   string    `json:"exercise"`
	Date       time.Time `json:"date"`
	Score      float64   `json:"score"`
	Duration   float64   `json:"duration"`
}

type StatsSummary struct {
	TotalExercises int             `json:"totalExercises"`
	TotalSessions  int             `json:"totalSessions"`
	TotalDuration  float64         `json:"totalDuration"`
	TotalReps      int             `json:"totalReps"`
	AverageScore   float64         `json:"averageScore"`
	BestExercise   *BestExercise   `json:"bestExercise"`
	MostImproved   *MostImproved   `json:"mostImproved"`
	RecentSessions []RecentSession `json:"recentSessions"`
}

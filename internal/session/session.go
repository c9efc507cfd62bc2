package session

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/posecoach/internal/evaluator"
	"github.com/2beens/posecoach/internal/pose"
	"github.com/2beens/posecoach/internal/timer"
)

var (
	ErrInvalidState     = errors.New("invalid session state")
	ErrInvalidMode      = errors.New("invalid session mode")
	ErrUnknownExercise  = errors.New("unknown exercise")
	ErrNoDetector       = errors.New("no pose detector configured")
	ErrNotReplay        = errors.New("session is not in replay mode")
	ErrPauseUnsupported = timer.ErrPauseUnsupported
)

// State can be one of:
//   - idle
//   - running
//   - paused
//   - completed
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

func (s State) String() string {
	return string(s)
}

type Mode string

const (
	ModeRealtime Mode = "realtime"
	ModeReplay   Mode = "replay"
)

func (m Mode) IsValid() bool {
	return m == ModeRealtime || m == ModeReplay
}

type StartParams struct {
	ExerciseID string
	Mode       Mode
	UserID     string
}

type Status struct {
	SessionID  string        `json:"sessionId"`
	State      State         `json:"state"`
	Mode       Mode          `json:"mode"`
	ExerciseID string        `json:"exerciseId"`
	Frames     int           `json:"frames"`
	Reps       int           `json:"reps"`
	Active     time.Duration `json:"active"`
	Timing     timer.Timing  `json:"timing"`
}

// SessionInfo describes a started session to a Persister.
type SessionInfo struct {
	LocalID    string
	ExerciseID string
	Mode       Mode
	UserID     string
	StartedAt  time.Time
}

// FrameRecord is one evaluated frame as handed to a Persister.
type FrameRecord struct {
	FrameIndex int
	Timestamp  float64
	Landmarks  pose.Landmarks
	Width      int
	Height     int
	Result     evaluator.FrameResult
}

// MediaFrame is one frame read from a replay source. Image is sent through the
// pose detector when the frame carries no landmarks.
type MediaFrame struct {
	Time  time.Duration
	Frame pose.Frame
	Image []byte
}

//go:generate mockgen -source=$GOFILE -destination=session_mocks_test.go -package=session_test

type PoseDetector interface {
	Detect(ctx context.Context, image []byte) (pose.Landmarks, error)
}

// Persister mirrors a session to remote storage. The controller calls it from a
// background worker and never lets its failures affect the local session.
type Persister interface {
	CreateSession(ctx context.Context, info SessionInfo) (string, error)
	SubmitFrame(ctx context.Context, sessionID string, frame FrameRecord) error
	CompleteSession(ctx context.Context, sessionID string) error
}

// FrameSource feeds a replay. Next returns io.EOF once the media has ended.
type FrameSource interface {
	Next(ctx context.Context) (MediaFrame, error)
}

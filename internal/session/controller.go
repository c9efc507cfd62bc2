package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2beens/posecoach/internal/evaluator"
	"github.com/2beens/posecoach/internal/exercise"
	"github.com/2beens/posecoach/internal/pose"
	"github.com/2beens/posecoach/internal/report"
	"github.com/2beens/posecoach/internal/telemetry/metrics"
	"github.com/2beens/posecoach/internal/timer"
	"github.com/2beens/posecoach/internal/tracker"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type NewControllerParams struct {
	Registry *exercise.Registry
	// Metrics is required.
	Metrics *metrics.Manager
	// Detector is required for OnImage and for replays of image frames.
	Detector PoseDetector
	// Persister is optional.
	Persister Persister
	// Clock defaults to the system clock. Replays use a *timer.ManualClock so
	// the active duration follows media time.
	Clock timer.Clock
	// FilterWindow > 0 smooths joint angles with a moving average.
	FilterWindow     int
	MinVisibility    float64
	HistorySize      int
	PersistQueueSize int
	PersistTimeout   time.Duration
}

// Controller owns exactly one session at a time and drives it through
// idle -> running <-> paused -> completed.
type Controller struct {
	registry  *exercise.Registry
	metrics   *metrics.Manager
	detector  PoseDetector
	persister Persister
	clock     timer.Clock

	persistQueueSize int
	persistTimeout   time.Duration

	// busy drops frames that arrive while another one is processed
	busy atomic.Bool

	mu        sync.Mutex
	state     State
	mode      Mode
	sessionID string
	userID    string
	exercise  *exercise.Exercise
	coaching  *exercise.CoachingProfile
	primary   string
	frameLog  []evaluator.FrameResult
	reps      int
	report    *report.Report
	tracker   *tracker.Tracker
	evaluator *evaluator.Evaluator
	timer     *timer.Timer
	persist   *persistQueue
	pending   []*persistQueue
}

func NewController(params NewControllerParams) *Controller {
	if params.Registry == nil {
		params.Registry = exercise.Default()
	}
	if params.Clock == nil {
		params.Clock = timer.SystemClock{}
	}
	if params.PersistQueueSize <= 0 {
		params.PersistQueueSize = DefaultPersistQueueSize
	}
	if params.PersistTimeout <= 0 {
		params.PersistTimeout = DefaultPersistTimeout
	}

	t := tracker.New(params.HistorySize)
	var filter *pose.JointFilter
	if params.FilterWindow > 0 {
		filter = pose.NewJointFilter(params.FilterWindow)
	}

	return &Controller{
		registry:         params.Registry,
		metrics:          params.Metrics,
		detector:         params.Detector,
		persister:        params.Persister,
		clock:            params.Clock,
		persistQueueSize: params.PersistQueueSize,
		persistTimeout:   params.PersistTimeout,
		state:            StateIdle,
		tracker:          t,
		timer:            timer.New(params.Clock),
		evaluator: evaluator.New(evaluator.NewEvaluatorParams{
			Feedback:      params.Registry,
			Tracker:       t,
			Filter:        filter,
			MinVisibility: params.MinVisibility,
		}),
	}
}

// Start begins a new session. A completed session is discarded.
func (c *Controller) Start(params StartParams) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateRunning || c.state == StatePaused {
		return "", fmt.Errorf("%w: cannot start while %s", ErrInvalidState, c.state)
	}
	if !params.Mode.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, params.Mode)
	}
	ex, ok := c.registry.Get(params.ExerciseID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownExercise, params.ExerciseID)
	}
	primary, _ := ex.PrimaryJoint()
	coaching, _ := c.registry.Coaching(ex.ID)

	c.tracker.Clear()
	c.evaluator.Reset()
	c.frameLog = nil
	c.reps = 0
	c.report = nil
	c.exercise = ex
	c.coaching = coaching
	c.primary = primary
	c.mode = params.Mode
	c.userID = params.UserID
	c.sessionID = uuid.NewString()
	c.timer.Start(params.Mode == ModeReplay)
	c.state = StateRunning

	c.metrics.CounterSessionsStarted.WithLabelValues(ex.ID).Inc()
	c.metrics.GaugeActiveSessions.Inc()
	log.Debugf("session [%s]: started %s in %s mode", c.sessionID, ex.ID, c.mode)

	if c.persister != nil {
		c.prunePending()
		c.persist = newPersistQueue(c.persister, c.metrics, c.sessionID, c.persistQueueSize, c.persistTimeout)
		c.pending = append(c.pending, c.persist)
		c.persist.push(persistOp{
			name: opCreateSession,
			info: SessionInfo{
				LocalID:    c.sessionID,
				ExerciseID: ex.ID,
				Mode:       c.mode,
				UserID:     c.userID,
				StartedAt:  c.timer.Timing().StartedAt,
			},
		})
	}

	return c.sessionID, nil
}

// OnFrame evaluates one set of landmarks. It reports false when the frame was
// dropped: the session is not running, the frame is empty, or another frame is
// still being processed.
func (c *Controller) OnFrame(frame pose.Frame) (evaluator.FrameResult, bool) {
	if !c.busy.CompareAndSwap(false, true) {
		c.drop(metrics.DropReasonBusy)
		return evaluator.FrameResult{}, false
	}
	defer c.busy.Store(false)

	return c.evaluate(frame)
}

// OnImage runs the pose detector on an image and evaluates the result.
func (c *Controller) OnImage(ctx context.Context, image []byte, width, height int) (evaluator.FrameResult, bool, error) {
	if c.detector == nil {
		return evaluator.FrameResult{}, false, ErrNoDetector
	}
	if !c.busy.CompareAndSwap(false, true) {
		c.drop(metrics.DropReasonBusy)
		return evaluator.FrameResult{}, false, nil
	}
	defer c.busy.Store(false)

	if c.State() != StateRunning {
		c.drop(metrics.DropReasonNotRunning)
		return evaluator.FrameResult{}, false, nil
	}

	landmarks, err := c.detector.Detect(ctx, image)
	if err != nil {
		c.drop(metrics.DropReasonDetector)
		return evaluator.FrameResult{}, false, fmt.Errorf("detect pose: %w", err)
	}

	res, ok := c.evaluate(pose.Frame{Landmarks: landmarks, Width: width, Height: height})
	return res, ok, nil
}

func (c *Controller) evaluate(frame pose.Frame) (evaluator.FrameResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		c.drop(metrics.DropReasonNotRunning)
		return evaluator.FrameResult{}, false
	}
	if len(frame.Landmarks) == 0 {
		c.drop(metrics.DropReasonEmpty)
		return evaluator.FrameResult{}, false
	}

	landmarks := frame.Landmarks
	if frame.Width > 0 && frame.Height > 0 {
		landmarks = frame.Normalized()
	}

	res, ok := c.evaluator.Evaluate(evaluator.Input{
		Exercise:   c.exercise,
		Landmarks:  landmarks,
		FrameIndex: len(c.frameLog),
		Timestamp:  c.timer.Active().Seconds(),
		Paused:     c.state == StatePaused,
	})
	if !ok {
		return evaluator.FrameResult{}, false
	}

	c.frameLog = append(c.frameLog, res)
	if c.primary != "" {
		c.reps = c.tracker.Pattern(c.primary).Reps()
	}

	c.metrics.CounterFramesEvaluated.Inc()
	c.metrics.HistFrameScore.Observe(res.OverallScore)

	if c.persist != nil {
		c.persist.push(persistOp{
			name: opSubmitFrame,
			frame: FrameRecord{
				FrameIndex: res.FrameIndex,
				Timestamp:  res.Timestamp,
				Landmarks:  append(pose.Landmarks(nil), frame.Landmarks...),
				Width:      frame.Width,
				Height:     frame.Height,
				Result:     res.Clone(),
			},
		})
	}

	return res.Clone(), true
}

func (c *Controller) drop(reason string) {
	c.metrics.CounterFramesDropped.WithLabelValues(reason).Inc()
	log.Tracef("frame dropped: %s", reason)
}

func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeReplay && c.state != StateIdle {
		return ErrPauseUnsupported
	}
	if c.state != StateRunning {
		return fmt.Errorf("%w: cannot pause while %s", ErrInvalidState, c.state)
	}
	if err := c.timer.Pause(); err != nil {
		return fmt.Errorf("pause timer: %w", err)
	}
	c.state = StatePaused
	log.Debugf("session [%s]: paused", c.sessionID)
	return nil
}

func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeReplay && c.state != StateIdle {
		return ErrPauseUnsupported
	}
	if c.state != StatePaused {
		return fmt.Errorf("%w: cannot resume while %s", ErrInvalidState, c.state)
	}
	if err := c.timer.Resume(); err != nil {
		return fmt.Errorf("resume timer: %w", err)
	}
	c.state = StateRunning
	log.Debugf("session [%s]: resumed", c.sessionID)
	return nil
}

// Stop completes the session and returns its report.
func (c *Controller) Stop() (*report.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning && c.state != StatePaused {
		return nil, fmt.Errorf("%w: cannot stop while %s", ErrInvalidState, c.state)
	}

	c.timer.Stop()
	c.state = StateCompleted

	start := time.Now()
	c.report = report.Synthesize(report.Input{
		Exercise: c.exercise,
		Coaching: c.coaching,
		Frames:   c.frameLog,
		Active:   c.timer.Active(),
		Reps:     c.reps,
	})
	c.metrics.HistReportDuration.Observe(time.Since(start).Seconds())
	c.metrics.CounterSessionsCompleted.WithLabelValues(c.exercise.ID).Inc()
	c.metrics.GaugeActiveSessions.Dec()
	log.Debugf("session [%s]: completed with %d frames, %d reps", c.sessionID, len(c.frameLog), c.reps)

	if c.persist != nil {
		c.persist.push(persistOp{name: opCompleteSession})
		c.persist.close()
		c.persist = nil
	}

	return c.report.Clone(), nil
}

// EndOfMedia completes a replay session.
func (c *Controller) EndOfMedia() (*report.Report, error) {
	c.mu.Lock()
	mode := c.mode
	c.mu.Unlock()

	if mode != ModeReplay {
		return nil, ErrNotReplay
	}
	return c.Stop()
}

// Report returns the report of the last completed session.
func (c *Controller) Report() (*report.Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.report == nil {
		return nil, false
	}
	return c.report.Clone(), true
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		SessionID: c.sessionID,
		State:     c.state,
		Mode:      c.mode,
		Frames:    len(c.frameLog),
		Reps:      c.reps,
		Active:    c.timer.Active(),
		Timing:    c.timer.Timing(),
	}
	if c.exercise != nil {
		st.ExerciseID = c.exercise.ID
	}
	return st
}

// Frames returns a copy of the frame log.
func (c *Controller) Frames() []evaluator.FrameResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	frames := make([]evaluator.FrameResult, len(c.frameLog))
	for i, f := range c.frameLog {
		frames[i] = f.Clone()
	}
	return frames
}

func (c *Controller) prunePending() {
	live := c.pending[:0]
	for _, q := range c.pending {
		select {
		case <-q.done:
		default:
			live = append(live, q)
		}
	}
	c.pending = live
}

// Close waits for pending persistence calls to finish. A running session is no
// longer mirrored afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.persist != nil {
		c.persist.close()
		c.persist = nil
	}
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, q := range pending {
		<-q.done
	}
}

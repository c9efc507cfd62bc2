package evaluator

import (
	"fmt"
	"math"

	"github.com/2beens/posecoach/internal/exercise"
	"github.com/2beens/posecoach/internal/pose"
	"github.com/2beens/posecoach/internal/tracker"
)

const (
	// MaxImperfectScore caps the overall score unless every joint scored 100.
	MaxImperfectScore = 95.0

	MsgNoExercise      = "no exercise selected"
	MsgNoConfiguration = "exercise has no angle configuration"
)

type TargetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Correction struct {
	Joint        string      `json:"joint"`
	CurrentAngle float64     `json:"currentAngle"`
	TargetRange  TargetRange `json:"targetRange"`
	Message      string      `json:"message"`
}

// FrameResult is the evaluation of one frame. It is treated as immutable once
// returned; Clone must be used before handing it to code that may modify it.
type FrameResult struct {
	Timestamp    float64            `json:"timestamp"`
	FrameIndex   int                `json:"frameIndex"`
	Angles       map[string]float64 `json:"angles"`
	Scores       map[string]float64 `json:"scores"`
	OverallScore float64            `json:"overallScore"`
	Feedback     []string           `json:"feedback"`
	Corrections  []Correction       `json:"corrections"`
	IsInPosition bool               `json:"isInPosition"`
	// Degenerate marks results produced without a usable exercise configuration.
	Degenerate bool `json:"degenerate,omitempty"`
}

func (r FrameResult) Clone() FrameResult {
	angles := make(map[string]float64, len(r.Angles))
	for k, v := range r.Angles {
		angles[k] = v
	}
	scores := make(map[string]float64, len(r.Scores))
	for k, v := range r.Scores {
		scores[k] = v
	}
	r.Angles = angles
	r.Scores = scores
	r.Feedback = append([]string(nil), r.Feedback...)
	r.Corrections = append([]Correction(nil), r.Corrections...)
	return r
}

type Input struct {
	Exercise   *exercise.Exercise
	Landmarks  pose.Landmarks
	FrameIndex int
	Timestamp  float64
	Paused     bool
}

// FeedbackSource resolves the realtime feedback rule of an exercise id.
// *exercise.Registry implements it.
type FeedbackSource interface {
	Feedback(id string) exercise.FeedbackRule
}

type NewEvaluatorParams struct {
	// Feedback resolves the realtime feedback rule of an exercise. Nil disables
	// rule based feedback.
	Feedback FeedbackSource
	// Tracker receives the angles of every successful evaluation. Optional.
	Tracker *tracker.Tracker
	// Filter smooths angles before scoring. Optional.
	Filter        *pose.JointFilter
	MinVisibility float64
}

type Evaluator struct {
	feedback      FeedbackSource
	tracker       *tracker.Tracker
	filter        *pose.JointFilter
	minVisibility float64
}

func New(params NewEvaluatorParams) *Evaluator {
	return &Evaluator{
		feedback:      params.Feedback,
		tracker:       params.Tracker,
		filter:        params.Filter,
		minVisibility: params.MinVisibility,
	}
}

// Reset clears the smoothing state. The tracker is owned and reset by the caller.
func (e *Evaluator) Reset() {
	if e.filter != nil {
		e.filter.Reset()
	}
}

// Evaluate scores one frame. It reports false when the evaluation was paused.
func (e *Evaluator) Evaluate(in Input) (FrameResult, bool) {
	if in.Paused {
		return FrameResult{}, false
	}

	if in.Exercise == nil {
		return degenerate(in, MsgNoExercise), true
	}
	if len(in.Exercise.Angles) == 0 {
		return degenerate(in, MsgNoConfiguration), true
	}

	raw := make(map[string]float64, len(in.Exercise.Angles))
	for _, spec := range in.Exercise.Angles {
		angle, ok := pose.JointAngle(in.Landmarks, spec.Points, e.minVisibility)
		if !ok {
			continue
		}
		raw[spec.Joint] = angle
	}

	angles := raw
	if e.filter != nil {
		angles = e.filter.Apply(raw)
	}

	result := FrameResult{
		Timestamp:   in.Timestamp,
		FrameIndex:  in.FrameIndex,
		Angles:      angles,
		Scores:      make(map[string]float64, len(angles)),
		Feedback:    []string{},
		Corrections: []Correction{},
	}

	var sum float64
	allPerfect := true
	for _, spec := range in.Exercise.Angles {
		angle, ok := angles[spec.Joint]
		if !ok {
			continue
		}
		score := pose.Score(angle, spec.MinAngle, spec.MaxAngle)
		result.Scores[spec.Joint] = score
		sum += score
		if score != 100 {
			allPerfect = false
		}

		if score < pose.CorrectionThreshold {
			result.Corrections = append(result.Corrections, Correction{
				Joint:        spec.Joint,
				CurrentAngle: angle,
				TargetRange:  TargetRange{Min: spec.MinAngle, Max: spec.MaxAngle},
				Message:      correctionMessage(spec),
			})
		}
	}

	if n := len(result.Scores); n > 0 {
		result.OverallScore = sum / float64(n)
		if !allPerfect {
			result.OverallScore = math.Min(result.OverallScore, MaxImperfectScore)
		}
	}
	result.IsInPosition = len(result.Corrections) == 0

	if rule := e.rule(in.Exercise.ID); rule != nil {
		result.Feedback = append(result.Feedback, rule.Feedback(angles)...)
	} else {
		for _, c := range result.Corrections {
			result.Feedback = append(result.Feedback, c.Message)
		}
	}

	if e.tracker != nil {
		e.tracker.TrackAll(angles)
	}

	return result, true
}

func (e *Evaluator) rule(id string) exercise.FeedbackRule {
	if e.feedback == nil {
		return nil
	}
	return e.feedback.Feedback(id)
}

func correctionMessage(spec exercise.AngleSpec) string {
	if spec.Feedback != "" {
		return spec.Feedback
	}
	return fmt.Sprintf("Adjust your %s angle to %.0f-%.0f degrees", spec.Joint, spec.MinAngle, spec.MaxAngle)
}

func degenerate(in Input, msg string) FrameResult {
	return FrameResult{
		Timestamp:    in.Timestamp,
		FrameIndex:   in.FrameIndex,
		Angles:       map[string]float64{},
		Scores:       map[string]float64{},
		OverallScore: 0,
		Feedback:     []string{msg},
		Corrections:  []Correction{},
		IsInPosition: false,
		Degenerate:   true,
	}
}

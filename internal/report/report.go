package report

import (
	"math"
	"sort"
	"time"

	"github.com/2beens/posecoach/internal/evaluator"
	"github.com/2beens/posecoach/internal/exercise"
)

const (
	// BodyWeightKg is the reference weight for the calories estimate.
	BodyWeightKg = 70.0
	// TopFeedbackSize is the number of most frequent frame feedback lines kept.
	TopFeedbackSize = 5

	MsgNoFrames = "No frames were analyzed. Make sure your whole body is visible to the camera."
)

type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
)

func GradeFor(score float64) Grade {
	switch {
	case score >= 90:
		return GradeAPlus
	case score >= 80:
		return GradeA
	case score >= 70:
		return GradeB
	case score >= 60:
		return GradeC
	default:
		return GradeD
	}
}

// Distribution counts frames per overall score bucket.
type Distribution struct {
	Excellent        int `json:"excellent"`
	Good             int `json:"good"`
	NeedsImprovement int `json:"needsImprovement"`
}

func (d *Distribution) add(score float64) {
	switch {
	case score >= 90:
		d.Excellent++
	case score >= 70:
		d.Good++
	default:
		d.NeedsImprovement++
	}
}

type JointStats struct {
	Joint           string  `json:"joint"`
	Average         float64 `json:"average"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	StdDev          float64 `json:"stdDev"`
	AverageScore    float64 `json:"averageScore"`
	Samples         int     `json:"samples"`
	OutOfRange      int     `json:"outOfRange"`
	OutOfRangeRatio float64 `json:"outOfRangeRatio"`
	TargetMin       float64 `json:"targetMin"`
	TargetMax       float64 `json:"targetMax"`

	values []float64
}

type FeedbackCount struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Report is the read-only post-session summary.
type Report struct {
	ExerciseID         string          `json:"exerciseId"`
	ExerciseName       string          `json:"exerciseName"`
	Grade              Grade           `json:"grade"`
	AverageScore       float64         `json:"averageScore"`
	TotalFrames        int             `json:"totalFrames"`
	InPositionFrames   int             `json:"inPositionFrames"`
	DurationSeconds    float64         `json:"durationSeconds"`
	CorrectFormSeconds float64         `json:"correctFormSeconds"`
	Reps               int             `json:"reps"`
	Calories           int             `json:"calories"`
	Distribution       Distribution    `json:"distribution"`
	Joints             []JointStats    `json:"joints"`
	Feedback           []string        `json:"feedback"`
	TopFeedback        []FeedbackCount `json:"topFeedback"`
}

// Clone returns a deep copy of the report.
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}
	c := *r
	c.Joints = make([]JointStats, len(r.Joints))
	for i, j := range r.Joints {
		j.values = nil
		c.Joints[i] = j
	}
	c.Feedback = append([]string(nil), r.Feedback...)
	c.TopFeedback = append([]FeedbackCount(nil), r.TopFeedback...)
	return &c
}

// Joint returns the statistics of one joint.
func (r *Report) Joint(name string) (JointStats, bool) {
	for _, j := range r.Joints {
		if j.Joint == name {
			return j, true
		}
	}
	return JointStats{}, false
}

type Input struct {
	Exercise *exercise.Exercise
	// Coaching enables checkpoint analysis and exercise tips. Optional.
	Coaching *exercise.CoachingProfile
	Frames   []evaluator.FrameResult
	Active   time.Duration
	Reps     int
}

// Synthesize builds the coaching report. It never modifies its input and
// returns the same report for the same input.
func Synthesize(in Input) *Report {
	r := &Report{
		Reps:            in.Reps,
		DurationSeconds: in.Active.Seconds(),
		Joints:          []JointStats{},
		Feedback:        []string{},
		TopFeedback:     []FeedbackCount{},
	}
	if in.Exercise != nil {
		r.ExerciseID = in.Exercise.ID
		r.ExerciseName = in.Exercise.Name
	}

	frames := make([]evaluator.FrameResult, 0, len(in.Frames))
	for _, f := range in.Frames {
		if !f.Degenerate {
			frames = append(frames, f)
		}
	}
	r.TotalFrames = len(frames)

	if len(frames) == 0 {
		r.Grade = GradeD
		r.Feedback = append(r.Feedback, MsgNoFrames)
		return r
	}

	var sum float64
	for _, f := range frames {
		sum += f.OverallScore
		r.Distribution.add(f.OverallScore)
		if f.IsInPosition {
			r.InPositionFrames++
		}
	}
	r.AverageScore = sum / float64(len(frames))
	r.Grade = GradeFor(r.AverageScore)
	r.CorrectFormSeconds = float64(r.InPositionFrames) / float64(r.TotalFrames) * r.DurationSeconds

	met := exercise.DefaultMET
	if in.Exercise != nil && in.Exercise.MET > 0 {
		met = in.Exercise.MET
	}
	r.Calories = int(math.Round(met * BodyWeightKg * in.Active.Hours()))

	r.Joints = jointStats(in.Exercise, frames)
	r.TopFeedback = topFeedback(frames, TopFeedbackSize)
	r.Feedback = coachingFeedback(in, r)

	for i := range r.Joints {
		r.Joints[i].values = nil
	}
	return r
}

func jointStats(ex *exercise.Exercise, frames []evaluator.FrameResult) []JointStats {
	stats := []JointStats{}
	if ex == nil {
		return stats
	}

	for _, spec := range ex.Angles {
		js := JointStats{
			Joint:     spec.Joint,
			TargetMin: spec.MinAngle,
			TargetMax: spec.MaxAngle,
			Min:       math.Inf(1),
			Max:       math.Inf(-1),
		}
		var sum, scoreSum float64
		for _, f := range frames {
			angle, ok := f.Angles[spec.Joint]
			if !ok {
				continue
			}
			js.values = append(js.values, angle)
			sum += angle
			scoreSum += f.Scores[spec.Joint]
			js.Min = math.Min(js.Min, angle)
			js.Max = math.Max(js.Max, angle)
			if angle < spec.MinAngle || angle > spec.MaxAngle {
				js.OutOfRange++
			}
		}

		js.Samples = len(js.values)
		if js.Samples == 0 {
			js.Min, js.Max = 0, 0
			stats = append(stats, js)
			continue
		}

		js.Average = sum / float64(js.Samples)
		js.AverageScore = scoreSum / float64(js.Samples)
		js.OutOfRangeRatio = float64(js.OutOfRange) / float64(len(frames))

		var sq float64
		for _, v := range js.values {
			sq += (v - js.Average) * (v - js.Average)
		}
		js.StdDev = math.Sqrt(sq / float64(js.Samples))
		stats = append(stats, js)
	}
	return stats
}

func topFeedback(frames []evaluator.FrameResult, n int) []FeedbackCount {
	counts := make(map[string]int)
	for _, f := range frames {
		for _, msg := range f.Feedback {
			counts[msg]++
		}
	}

	list := make([]FeedbackCount, 0, len(counts))
	for msg, c := range counts {
		list = append(list, FeedbackCount{Message: msg, Count: c})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].Message < list[j].Message
	})

	if len(list) > n {
		list = list[:n]
	}
	return list
}

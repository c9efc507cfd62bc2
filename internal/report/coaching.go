package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/2beens/posecoach/internal/exercise"
)

const (
	// ConsistencyStdDev is the mean per-joint standard deviation above which
	// the session is reported as inconsistent.
	ConsistencyStdDev = 15.0
	ImprovementBelow  = 85.0
	SafetyBelow       = 70.0

	MsgInconsistent  = "Your form varied a lot during the session. Focus on making every repetition look the same."
	MsgSafety        = "Safety first: if you feel pain or discomfort, stop and reduce the range of motion."
	MsgEncouragement = "Keep going! Consistent practice is what builds good form."
)

func gradeMessage(avg float64) string {
	switch {
	case avg >= 90:
		return "Excellent form! You performed this exercise with great technique."
	case avg >= 80:
		return "Good job! Your form is solid with a few details to refine."
	case avg >= 70:
		return "Decent effort. Some parts of your form need attention."
	default:
		return "Your form needs work. Focus on the basics below."
	}
}

func coachingFeedback(in Input, r *Report) []string {
	feedback := []string{gradeMessage(r.AverageScore)}

	analysis := checkpointAnalysis(in.Coaching, r)
	if len(analysis) == 0 && in.Coaching != nil {
		for _, fb := range in.Coaching.Fallback {
			if fb.Applies(r.AverageScore) {
				analysis = append(analysis, fb.Messages...)
				break
			}
		}
	}
	feedback = append(feedback, analysis...)

	static := in.Exercise != nil && in.Exercise.Static
	feedback = append(feedback, durationGuidance(static, r)...)

	if r.AverageScore < ImprovementBelow {
		feedback = append(feedback, improvementTip(r))
	}
	if in.Coaching != nil {
		if in.Coaching.Tip != "" {
			feedback = append(feedback, in.Coaching.Tip)
		}
		if in.Coaching.BeginnerTip != "" && r.AverageScore < in.Coaching.BeginnerTipBelow {
			feedback = append(feedback, in.Coaching.BeginnerTip)
		}
	}
	if r.AverageScore < SafetyBelow {
		feedback = append(feedback, MsgSafety)
	}
	return append(feedback, MsgEncouragement)
}

func checkpointAnalysis(profile *exercise.CoachingProfile, r *Report) []string {
	if profile == nil {
		return nil
	}

	var lines []string
	var stdDevSum float64
	var measured int
	for _, js := range r.Joints {
		if js.Samples == 0 {
			continue
		}
		stdDevSum += js.StdDev
		measured++

		cp, ok := profile.Checkpoint(js.Joint)
		if !ok {
			continue
		}
		for _, rule := range cp.Rules {
			if msg, fired := applyRule(rule, cp, js, r.TotalFrames); fired {
				lines = append(lines, msg)
			}
		}
	}

	if measured > 0 && stdDevSum/float64(measured) > ConsistencyStdDev {
		lines = append(lines, MsgInconsistent)
	}
	return lines
}

func applyRule(rule exercise.CheckRule, cp exercise.Checkpoint, js JointStats, totalFrames int) (string, bool) {
	var pct float64
	fired := false

	switch rule.Kind {
	case exercise.CheckAvgBelowMin:
		fired = js.Average < cp.Min
	case exercise.CheckAvgAboveMax:
		fired = js.Average > cp.Max
	case exercise.CheckLowestBelowMin:
		fired = js.Min < cp.Min
	case exercise.CheckLowestAbove:
		fired = js.Min > rule.Threshold
	case exercise.CheckAvgOffIdeal:
		fired = math.Abs(js.Average-cp.Ideal) > rule.Threshold
	case exercise.CheckVariation:
		fired = js.Max-js.Min > rule.Threshold
	case exercise.CheckOutOfRangeShare:
		out := countValues(js.values, func(v float64) bool { return v < cp.Min || v > cp.Max })
		if totalFrames > 0 {
			pct = float64(out) / float64(totalFrames) * 100
		}
		fired = pct > rule.Threshold
	case exercise.CheckShareBelow:
		share := float64(countValues(js.values, func(v float64) bool { return v < rule.Value })) / float64(js.Samples)
		pct = share * 100
		fired = share > rule.Threshold
	case exercise.CheckInRangeShareBelow:
		share := float64(countValues(js.values, func(v float64) bool { return v >= cp.Min && v <= cp.Max })) / float64(js.Samples)
		pct = share * 100
		fired = share < rule.Threshold
	}

	if !fired {
		return "", false
	}

	return strings.NewReplacer(
		"{avg}", fmt.Sprintf("%.0f", js.Average),
		"{min}", fmt.Sprintf("%.0f", js.Min),
		"{max}", fmt.Sprintf("%.0f", js.Max),
		"{ideal}", fmt.Sprintf("%.0f", cp.Ideal),
		"{pct}", fmt.Sprintf("%.0f", pct),
		"{variation}", fmt.Sprintf("%.0f", js.Max-js.Min),
	).Replace(rule.Message), true
}

func countValues(values []float64, match func(float64) bool) int {
	n := 0
	for _, v := range values {
		if match(v) {
			n++
		}
	}
	return n
}

func durationGuidance(static bool, r *Report) []string {
	if static {
		held := r.CorrectFormSeconds
		switch {
		case held < 30:
			return []string{fmt.Sprintf("You held correct form for %.0f seconds. Build up toward 30 seconds.", held)}
		case held < 60:
			return []string{fmt.Sprintf("Solid hold of %.0f seconds with correct form. Aim for a full minute next time.", held)}
		case held < 120:
			return []string{fmt.Sprintf("Great hold of %.0f seconds with correct form. Try extending it toward two minutes.", held)}
		default:
			return []string{fmt.Sprintf("Outstanding endurance: %.0f seconds of correct form.", held)}
		}
	}

	var lines []string
	switch {
	case r.DurationSeconds < 60:
		lines = append(lines, fmt.Sprintf("This was a short session (%.0f seconds). Aim for at least one minute of work.", r.DurationSeconds))
	case r.DurationSeconds > 180:
		lines = append(lines, fmt.Sprintf("This was a long session (%.0f seconds). Make sure your form holds up as you get tired.", r.DurationSeconds))
	}

	if r.Reps > 0 && r.DurationSeconds > 0 {
		cadence := float64(r.Reps) / (r.DurationSeconds / 60)
		switch {
		case cadence > 30:
			lines = append(lines, fmt.Sprintf("Your pace was too fast (%.0f reps per minute). Slow down and control every repetition.", cadence))
		case cadence < 10:
			lines = append(lines, fmt.Sprintf("Your pace was quite slow (%.0f reps per minute). Try to keep a steady rhythm.", cadence))
		default:
			lines = append(lines, fmt.Sprintf("Nice steady pace of %.0f reps per minute.", cadence))
		}
	}
	return lines
}

func improvementTip(r *Report) string {
	var weakest *JointStats
	for i := range r.Joints {
		js := &r.Joints[i]
		if js.Samples == 0 {
			continue
		}
		if weakest == nil || js.AverageScore < weakest.AverageScore {
			weakest = js
		}
	}
	if weakest == nil {
		return "Work on the fundamentals and keep your movement slow and controlled."
	}
	return fmt.Sprintf(
		"Focus on your %s: it had the lowest score (%.0f). Keep it between %.0f and %.0f degrees.",
		weakest.Joint, weakest.AverageScore, weakest.TargetMin, weakest.TargetMax,
	)
}

package posesessions

import (
	"math"
	"time"

	"github.com/2beens/posecoach/internal/evaluator"
	"github.com/2beens/posecoach/internal/exercise"
	"github.com/2beens/posecoach/internal/tracker"
)

const (
	MaxRealtimeDetails = 2
	MaxRecommendations = 5
	RecentExerciseDays = 7
	RecentSessionsSize = 5
	EnduranceSeconds   = 300
)

var positivePhrases = []string{
	"Great! Hold that form.",
	"Excellent! Keep going.",
	"Perfect form.",
	"Very good! Great focus.",
	"Precise movement.",
}

const (
	MsgGoodForm   = "Good form. Keep refining the details."
	MsgAdjustForm = "Adjust your form."

	msgSquatKneesOverToes = "Keep your knees from passing your toes."
	msgSquatDeeper        = "Bend your knees a little deeper."
	msgPushupBodyLine     = "Keep your torso in one straight line."
	msgPlankHold          = "Hold the position and keep breathing."
)

// RealtimeEnvelope builds the per frame response feedback. The positive phrase
// is picked by frame index so the same frame always gets the same message.
func RealtimeEnvelope(res evaluator.FrameResult, exerciseID string) RealtimeFeedback {
	score := res.OverallScore
	messages := make([]string, 0, 1+MaxRealtimeDetails+1)

	switch {
	case score >= 90:
		idx := res.FrameIndex % len(positivePhrases)
		if idx < 0 {
			idx += len(positivePhrases)
		}
		messages = append(messages, positivePhrases[idx])
	case score >= 70:
		messages = append(messages, MsgGoodForm)
	default:
		messages = append(messages, MsgAdjustForm)
	}

	details := res.Feedback
	if len(details) > MaxRealtimeDetails {
		details = details[:MaxRealtimeDetails]
	}
	messages = append(messages, details...)
	messages = append(messages, exerciseSpecific(res, exerciseID)...)

	return RealtimeFeedback{
		Messages:          messages,
		Score:             score,
		CorrectionsNeeded: len(res.Corrections) > 0,
		AudioCue:          audioCue(score, len(res.Corrections)),
	}
}

func exerciseSpecific(res evaluator.FrameResult, exerciseID string) []string {
	switch exerciseID {
	case exercise.IDSquat:
		if knee, ok := res.Scores["knee"]; ok {
			if knee < 60 {
				return []string{msgSquatKneesOverToes}
			}
			if knee < 80 {
				return []string{msgSquatDeeper}
			}
		}
	case exercise.IDPushup:
		if hip, ok := res.Scores["hip"]; ok && hip < 70 {
			return []string{msgPushupBodyLine}
		}
	case exercise.IDPlank:
		if res.IsInPosition && !res.Degenerate {
			return []string{msgPlankHold}
		}
	}
	return nil
}

func audioCue(score float64, corrections int) AudioCue {
	switch {
	case score >= 90:
		return AudioCueSuccess
	case score >= 70:
		return AudioCueGood
	case corrections > 2:
		return AudioCueWarning
	default:
		return AudioCueNeutral
	}
}

// SessionStats are the figures computed from the stored frames of a session.
type SessionStats struct {
	Frames       int
	AverageScore float64
	MaxScore     float64
	MinScore     float64
	Reps         int
	Duration     float64
}

// ComputeStats aggregates the non degenerate frames in the given order. Reps are
// counted on the last tracker.DefaultCapacity primary joint samples, the same
// window the session controller counts on. The duration is the latest frame
// timestamp.
func ComputeStats(ex *exercise.Exercise, frames []Frame) SessionStats {
	var (
		stats   SessionStats
		sum     float64
		primary []float64
	)
	joint, hasPrimary := ex.PrimaryJoint()

	for _, f := range frames {
		stats.Duration = math.Max(stats.Duration, f.Timestamp)
		if f.Result.Degenerate {
			continue
		}
		score := f.Result.OverallScore
		if stats.Frames == 0 {
			stats.MaxScore, stats.MinScore = score, score
		}
		stats.MaxScore = math.Max(stats.MaxScore, score)
		stats.MinScore = math.Min(stats.MinScore, score)
		sum += score
		stats.Frames++

		if hasPrimary {
			if angle, ok := f.Result.Angles[joint]; ok {
				primary = append(primary, angle)
			}
		}
	}

	if stats.Frames > 0 {
		stats.AverageScore = sum / float64(stats.Frames)
	}
	if len(primary) > tracker.DefaultCapacity {
		primary = primary[len(primary)-tracker.DefaultCapacity:]
	}
	stats.Reps = tracker.DetectPattern(primary).Reps()
	return stats
}

func SessionSummary(stats SessionStats) Summary {
	summary := Summary{
		Strengths:    []string{},
		Improvements: []string{},
		NextSteps:    []string{},
	}

	avg := stats.AverageScore
	switch {
	case avg >= 90:
		summary.OverallPerformance = "Outstanding workout! You kept an almost perfect form."
	case avg >= 75:
		summary.OverallPerformance = "Good workout. Refine a few details and it will get even better."
	case avg >= 60:
		summary.OverallPerformance = "A decent start. Keep practicing and you will improve quickly."
	default:
		summary.OverallPerformance = "Let's build it up from the basics. Don't give up!"
	}

	if stats.MaxScore >= 85 {
		summary.Strengths = append(summary.Strengths, "Your best score shows great potential.")
	}
	if stats.Duration > EnduranceSeconds {
		summary.Strengths = append(summary.Strengths, "Great endurance.")
	}

	if stats.Frames > 0 && stats.MinScore < 60 {
		summary.Improvements = append(summary.Improvements, "Work on holding your form consistently.")
	}
	if avg < 70 {
		summary.Improvements = append(summary.Improvements, "Keep practicing the basic position.")
	}

	if avg >= 85 {
		summary.NextSteps = append(summary.NextSteps, "Try a harder variation.", "Add more sets.")
	} else {
		summary.NextSteps = append(summary.NextSteps, "Repeat this exercise to build the pattern.", "Check your form in a mirror.")
	}

	return summary
}

// UpdateUserStats folds a completed session into the previous stats, which may be nil.
func UpdateUserStats(prev *UserExerciseStats, s *Session, now time.Time) UserExerciseStats {
	next := UserExerciseStats{
		UserID:     s.UserID,
		ExerciseID: s.ExerciseID,
	}
	if prev != nil {
		next = *prev
	}

	n := float64(next.TotalSessions)
	prevAvg := next.AverageScore

	next.TotalSessions++
	next.TotalDuration += s.Duration
	next.TotalReps += s.TotalReps
	next.AverageScore = (prevAvg*n + s.AverageScore) / (n + 1)
	next.BestScore = math.Max(next.BestScore, s.AverageScore)
	next.ImprovementRate = 0
	if n > 0 && prevAvg > 0 {
		next.ImprovementRate = (s.AverageScore - prevAvg) / prevAvg * 100
	}
	next.UpdatedAt = now
	return next
}

// DifficultyFor maps a user's average score to the recommended difficulty.
func DifficultyFor(avgScore float64) exercise.Difficulty {
	switch {
	case avgScore < 60:
		return exercise.DifficultyBeginner
	case avgScore < 80:
		return exercise.DifficultyIntermediate
	default:
		return exercise.DifficultyAdvanced
	}
}

// Recommend picks up to MaxRecommendations exercises of the user's difficulty
// that were not done recently, then fills up from other difficulties.
func Recommend(catalog []exercise.Exercise, avgScore float64, recent map[string]bool) []exercise.Exercise {
	difficulty := DifficultyFor(avgScore)
	picked := make(map[string]bool)
	result := make([]exercise.Exercise, 0, MaxRecommendations)

	for _, ex := range catalog {
		if len(result) == MaxRecommendations {
			return result
		}
		if ex.Difficulty == difficulty && !recent[ex.ID] {
			result = append(result, ex)
			picked[ex.ID] = true
		}
	}
	for _, ex := range catalog {
		if len(result) == MaxRecommendations {
			break
		}
		if !recent[ex.ID] && !picked[ex.ID] {
			result = append(result, ex)
		}
	}
	return result
}

func averageScore(stats []UserExerciseStats) float64 {
	if len(stats) == 0 {
		return 0
	}
	var sum float64
	for _, s := range stats {
		sum += s.AverageScore
	}
	return sum / float64(len(stats))
}

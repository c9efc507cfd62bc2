package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/2beens/posecoach/internal/exercise"
	"github.com/2beens/posecoach/internal/localstore"
	"github.com/2beens/posecoach/internal/report"
	"github.com/2beens/posecoach/internal/session"
)

func printReportJSON(out io.Writer, rep *report.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func printReport(out io.Writer, rep *report.Report, stats session.ReplayStats) {
	fmt.Fprintf(out, "%s: grade %s, average score %.1f\n", rep.ExerciseName, rep.Grade, rep.AverageScore)
	fmt.Fprintf(out, "frames: %d evaluated of %d read (%d dropped), %d in position\n",
		rep.TotalFrames, stats.Read, stats.Dropped, rep.InPositionFrames)
	fmt.Fprintf(out, "duration: %.1fs, correct form %.1fs, reps %d, calories %d\n",
		rep.DurationSeconds, rep.CorrectFormSeconds, rep.Reps, rep.Calories)
	fmt.Fprintf(out, "distribution: excellent %d, good %d, needs improvement %d\n",
		rep.Distribution.Excellent, rep.Distribution.Good, rep.Distribution.NeedsImprovement)

	if len(rep.Joints) > 0 {
		fmt.Fprintln(out)
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "joint\tavg\tmin\tmax\tstd dev\tscore\tout of range\ttarget\t")
		for _, j := range rep.Joints {
			fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.0f%%\t%.0f-%.0f\t\n",
				j.Joint, j.Average, j.Min, j.Max, j.StdDev, j.AverageScore,
				j.OutOfRangeRatio*100, j.TargetMin, j.TargetMax)
		}
		_ = tw.Flush()
	}

	if len(rep.Feedback) > 0 {
		fmt.Fprintln(out)
		for _, f := range rep.Feedback {
			fmt.Fprintf(out, "  * %s\n", f)
		}
	}
	if len(rep.TopFeedback) > 0 {
		fmt.Fprintln(out, "\nmost frequent cues:")
		for _, f := range rep.TopFeedback {
			fmt.Fprintf(out, "  %3dx %s\n", f.Count, f.Message)
		}
	}
}

func printExercises(out io.Writer, exercises []exercise.Exercise) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDIFFICULTY\tJOINTS\tMUSCLES")
	for _, ex := range exercises {
		joints := make([]string, 0, len(ex.Angles))
		for _, a := range ex.Angles {
			joints = append(joints, a.Joint)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ex.ID, ex.Name, ex.Category, ex.Difficulty,
			strings.Join(joints, ","), strings.Join(ex.TargetMuscles, ", "))
	}
	_ = tw.Flush()
}

func printTotals(out io.Writer, totals []localstore.ExerciseTotals) {
	if len(totals) == 0 {
		fmt.Fprintln(out, "no workouts yet, run 'posereplay replay --save'")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EXERCISE\tWORKOUTS\tREPS\tDURATION\tCALORIES\tAVG\tBEST\tLAST")
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.0fs\t%d\t%.1f\t%.1f\t%s\n",
			t.ExerciseID, t.Workouts, t.TotalReps, t.TotalDuration, t.TotalCalories,
			t.AverageScore, t.BestScore, t.LastRecordedAt.Local().Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

func printWorkouts(out io.Writer, workouts []localstore.Workout) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tWHEN\tEXERCISE\tGRADE\tAVG\tREPS\tDURATION\tSOURCE")
	for _, w := range workouts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\t%d\t%.0fs\t%s\n",
			w.ID, w.RecordedAt.Local().Format("2006-01-02 15:04"), w.ExerciseID, w.Grade,
			w.AverageScore, w.Reps, w.DurationSeconds, w.Source)
	}
	_ = tw.Flush()
}

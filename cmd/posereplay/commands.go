package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/posecoach/internal/exercise"
	"github.com/2beens/posecoach/internal/localstore"
	"github.com/2beens/posecoach/internal/recording"
)

var (
	historyExercise string
	historyLast     int

	exercisesCategory string
)

func newRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record <frames.json> <out.jsonl.zst>",
		Short: "Convert a JSON frame dump into a recording",
		Long: "Convert a JSON frame dump, as exported by the capture client, into a recording.\n" +
			"The output is zstd compressed when it ends in " + recording.ExtZstd + ".",
		Args: cobra.ExactArgs(2),
		RunE: runRecordCmd,
	}
}

func runRecordCmd(cmd *cobra.Command, args []string) (err error) {
	in, out := args[0], args[1]
	if !strings.HasSuffix(out, recording.ExtJSONL) && !recording.IsCompressed(out) {
		return fmt.Errorf("output must end in %s or %s", recording.ExtJSONL, recording.ExtZstd)
	}

	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open frame dump: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Debugf("close frame dump: %s", cerr)
		}
	}()

	w, err := recording.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close recording: %w", cerr)
		}
	}()

	n, err := recording.ConvertDump(f, w)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", n, out)
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show per exercise totals of saved workouts",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVarP(&historyExercise, "exercise", "e", "", "list the workouts of one exercise")
	cmd.Flags().IntVar(&historyLast, "last", 20, "number of workouts to list with --exercise")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dbPath := historyDBPath(loadConfig())
	st, err := localstore.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Errorf("failed to close history db: %s", cerr)
		}
	}()

	if historyExercise != "" {
		workouts, err := st.List(cmd.Context(), historyExercise, historyLast)
		if err != nil {
			return fmt.Errorf("list workouts: %w", err)
		}
		printWorkouts(cmd.OutOrStdout(), workouts)
		return nil
	}

	totals, err := st.Totals(cmd.Context())
	if err != nil {
		return fmt.Errorf("get totals: %w", err)
	}
	printTotals(cmd.OutOrStdout(), totals)
	return nil
}

func newExercisesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "List the supported exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := exercise.Default()
			if exercisesCategory == "" {
				printExercises(cmd.OutOrStdout(), registry.List())
				return nil
			}
			category := exercise.Category(exercisesCategory)
			if !category.IsValid() {
				return fmt.Errorf("unknown category [%s]", exercisesCategory)
			}
			printExercises(cmd.OutOrStdout(), registry.ByCategory(category))
			return nil
		},
	}
	cmd.Flags().StringVar(&exercisesCategory, "category", "", "filter by category [upper | lower | core | fullbody]")
	return cmd
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/posecoach/internal/exercise"
	"github.com/2beens/posecoach/internal/localstore"
	"github.com/2beens/posecoach/internal/pose"
	"github.com/2beens/posecoach/internal/recording"
	"github.com/2beens/posecoach/internal/remote"
	"github.com/2beens/posecoach/internal/report"
	"github.com/2beens/posecoach/internal/session"
	"github.com/2beens/posecoach/internal/telemetry/metrics"
	"github.com/2beens/posecoach/internal/telemetry/tracing"
	"github.com/2beens/posecoach/internal/timer"
)

var (
	replayExercise     string
	replayUser         string
	replayServer       string
	replayMirror       bool
	replaySave         bool
	replayFilterWindow int
	replayJSON         bool
)

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <recording>",
		Short: "Replay a .jsonl or .jsonl.zst recording and print the report",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplayCmd,
	}
	cmd.Flags().StringVarP(&replayExercise, "exercise", "e", "", "exercise id (required)")
	cmd.Flags().StringVar(&replayUser, "user", "", "user id for the mirrored session")
	cmd.Flags().StringVar(&replayServer, "server", "", "mirror the session to this pose API")
	cmd.Flags().BoolVar(&replayMirror, "mirror", false, "mirror the session to server_url from the config")
	cmd.Flags().BoolVar(&replaySave, "save", false, "store the result in the workout history")
	cmd.Flags().IntVar(&replayFilterWindow, "filter-window", pose.DefaultFilterWindow, "moving average window for joint angles, 0 disables it")
	cmd.Flags().BoolVar(&replayJSON, "json", false, "print the report as JSON")
	_ = cmd.MarkFlagRequired("exercise")
	return cmd
}

// mirror remembers the remote id of the mirrored session.
type mirror struct {
	*remote.Persister

	mu       sync.Mutex
	remoteID string
}

func (m *mirror) CreateSession(ctx context.Context, info session.SessionInfo) (string, error) {
	id, err := m.Persister.CreateSession(ctx, info)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.remoteID = id
	m.mu.Unlock()
	return id, nil
}

func (m *mirror) RemoteID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remoteID
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	registry := exercise.Default()
	if _, ok := registry.Get(replayExercise); !ok {
		return fmt.Errorf("unknown exercise [%s], see 'posereplay exercises'", replayExercise)
	}

	src, err := recording.Open(args[0])
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.Errorf("failed to close recording: %s", cerr)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverURL := replayServer
	if serverURL == "" && replayMirror {
		serverURL = cfg.ServerURL
	}

	var remoteMirror *mirror
	params := session.NewControllerParams{
		Registry:     registry,
		Metrics:      metrics.NewManager("posecoach", "replay", prometheus.NewRegistry()),
		Clock:        timer.NewManualClock(time.Now()),
		FilterWindow: replayFilterWindow,
	}
	if serverURL != "" {
		otelShutdown, err := tracing.HoneycombSetup(os.Getenv("HONEYCOMB_ENABLED") == "true", "posereplay", nil)
		if err != nil {
			return err
		}
		defer otelShutdown()

		remoteMirror = &mirror{Persister: remote.NewPersister(serverURL, nil)}
		params.Persister = remoteMirror
	}
	ctrl := session.NewController(params)

	startedAt := time.Now()
	rep, stats, err := ctrl.Replay(ctx, session.StartParams{
		ExerciseID: replayExercise,
		UserID:     replayUser,
	}, src)
	// wait for the mirror to drain before reading its state
	ctrl.Close()
	if err != nil {
		return fmt.Errorf("replay %s: %w", args[0], err)
	}
	log.Debugf("replay done in %s: read %d, evaluated %d, dropped %d",
		time.Since(startedAt), stats.Read, stats.Evaluated, stats.Dropped)

	out := cmd.OutOrStdout()
	if replayJSON {
		if err := printReportJSON(out, rep); err != nil {
			return err
		}
	} else {
		printReport(out, rep, stats)
	}

	if remoteMirror != nil {
		printRemote(ctx, out, remoteMirror)
	}

	if replaySave {
		if err := saveWorkout(ctx, cmd, historyDBPath(cfg), rep, args[0]); err != nil {
			return err
		}
	}
	return nil
}

func printRemote(ctx context.Context, out io.Writer, m *mirror) {
	remoteID := m.RemoteID()
	if remoteID == "" {
		log.Warnln("session was not mirrored, the server did not accept it")
		return
	}
	remoteRep, err := m.Report(ctx, remoteID)
	if err != nil {
		log.Warnf("failed to get remote report: %s", err)
		return
	}
	fmt.Fprintf(out, "\nremote session %s: grade %s, average %.1f over %d frames\n",
		remoteID, remoteRep.Grade, remoteRep.AverageScore, remoteRep.TotalFrames)
}

func saveWorkout(ctx context.Context, cmd *cobra.Command, dbPath string, rep *report.Report, source string) error {
	st, err := localstore.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Errorf("failed to close history db: %s", cerr)
		}
	}()

	id, err := st.Save(ctx, rep, source, time.Now())
	if err != nil {
		return fmt.Errorf("save workout: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nsaved workout #%d to %s\n", id, dbPath)
	return nil
}

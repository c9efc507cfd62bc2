package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/2beens/posecoach/internal/report"
	"github.com/2beens/posecoach/internal/timer"

	log "github.com/sirupsen/logrus"
)

type ReplayStats struct {
	Read      int
	Evaluated int
	Dropped   int
}

// Replay runs a whole recording through a new replay session and returns the
// report built at the end of the media. When the controller clock is a
// *timer.ManualClock it is moved to each frame time before evaluation.
func (c *Controller) Replay(ctx context.Context, params StartParams, src FrameSource) (*report.Report, ReplayStats, error) {
	var stats ReplayStats

	params.Mode = ModeReplay
	sessionID, err := c.Start(params)
	if err != nil {
		return nil, stats, err
	}

	manual, _ := c.clock.(*timer.ManualClock)
	base := c.clock.Now()

	for {
		if err := ctx.Err(); err != nil {
			c.abort(sessionID)
			return nil, stats, err
		}

		mf, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.abort(sessionID)
			return nil, stats, fmt.Errorf("read frame %d: %w", stats.Read, err)
		}
		stats.Read++

		if manual != nil {
			manual.Set(base.Add(mf.Time))
		}

		var ok bool
		if len(mf.Frame.Landmarks) == 0 && len(mf.Image) > 0 {
			_, ok, err = c.OnImage(ctx, mf.Image, mf.Frame.Width, mf.Frame.Height)
			if err != nil {
				log.Warnf("replay [%s]: frame %d: %s", sessionID, stats.Read-1, err)
			}
		} else {
			_, ok = c.OnFrame(mf.Frame)
		}

		if ok {
			stats.Evaluated++
		} else {
			stats.Dropped++
		}
	}

	rep, err := c.EndOfMedia()
	if err != nil {
		return nil, stats, fmt.Errorf("end of media: %w", err)
	}
	return rep, stats, nil
}

func (c *Controller) abort(sessionID string) {
	if _, err := c.Stop(); err != nil {
		log.Debugf("replay [%s]: stop after failure: %s", sessionID, err)
	}
}

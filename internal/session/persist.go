package session

import (
	"context"
	"time"

	"github.com/2beens/posecoach/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultPersistQueueSize = 512
	DefaultPersistTimeout   = 5 * time.Second

	opCreateSession   = "create_session"
	opSubmitFrame     = "submit_frame"
	opCompleteSession = "complete_session"
)

type persistOp struct {
	name  string
	info  SessionInfo
	frame FrameRecord
}

// persistQueue runs the persistence calls of one session, in order, on a
// single goroutine.
type persistQueue struct {
	persister Persister
	metrics   *metrics.Manager
	timeout   time.Duration
	localID   string
	ops       chan persistOp
	closed    bool
	done      chan struct{}
}

func newPersistQueue(p Persister, m *metrics.Manager, localID string, size int, timeout time.Duration) *persistQueue {
	q := &persistQueue{
		persister: p,
		metrics:   m,
		timeout:   timeout,
		localID:   localID,
		ops:       make(chan persistOp, size),
		done:      make(chan struct{}),
	}
	go q.run()
	return q
}

// push never blocks. A full queue drops the op.
func (q *persistQueue) push(op persistOp) {
	if q.closed {
		return
	}
	select {
	case q.ops <- op:
	default:
		q.metrics.CounterPersistenceFailures.WithLabelValues(op.name).Inc()
		log.Warnf("session [%s]: persist queue full, dropping %s", q.localID, op.name)
	}
}

func (q *persistQueue) close() {
	if q.closed {
		return
	}
	q.closed = true
	close(q.ops)
}

func (q *persistQueue) run() {
	defer close(q.done)

	var remoteID string
	for op := range q.ops {
		if op.name != opCreateSession && remoteID == "" {
			log.Tracef("session [%s]: no remote session, skipping %s", q.localID, op.name)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		var err error
		switch op.name {
		case opCreateSession:
			remoteID, err = q.persister.CreateSession(ctx, op.info)
		case opSubmitFrame:
			err = q.persister.SubmitFrame(ctx, remoteID, op.frame)
		case opCompleteSession:
			err = q.persister.CompleteSession(ctx, remoteID)
		}
		cancel()

		if err != nil {
			q.metrics.CounterPersistenceFailures.WithLabelValues(op.name).Inc()
			log.Errorf("session [%s]: persist %s: %s", q.localID, op.name, err)
			continue
		}
		if op.name == opCreateSession {
			log.Debugf("session [%s]: mirrored as remote session [%s]", q.localID, remoteID)
		}
	}
}

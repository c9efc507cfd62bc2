package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/posecoach/internal/posesessions"
	"github.com/2beens/posecoach/internal/report"
	"github.com/2beens/posecoach/internal/session"
	"github.com/2beens/posecoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout = 10 * time.Second
	UserAgent      = "posereplay/1.0"
	maxErrorBody   = 512
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Persister mirrors controller sessions to the pose API.
type Persister struct {
	baseURL    string
	httpClient *http.Client
}

// NewPersister creates the client. A nil httpClient is replaced by a traced
// client with DefaultTimeout.
func NewPersister(baseURL string, httpClient *http.Client) *Persister {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   DefaultTimeout,
		}
	}
	return &Persister{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

var _ session.Persister = (*Persister)(nil)

func (p *Persister) CreateSession(ctx context.Context, info session.SessionInfo) (_ string, err error) {
	ctx, span := tracing.GlobalReplayTracer.Start(ctx, "remote.session.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var resp posesessions.SessionResponse
	if err := p.do(ctx, http.MethodPost, "/pose/sessions", posesessions.CreateParams{
		ExerciseID: info.ExerciseID,
		Mode:       posesessions.Mode(info.Mode),
		UserID:     info.UserID,
	}, http.StatusCreated, &resp); err != nil {
		return "", fmt.Errorf("create remote session: %w", err)
	}
	if resp.Session == nil || resp.Session.ID == "" {
		return "", errors.New("create remote session: empty session in response")
	}
	log.Debugf("session [%s] mirrored as remote session [%s]", info.LocalID, resp.Session.ID)
	return resp.Session.ID, nil
}

func (p *Persister) SubmitFrame(ctx context.Context, sessionID string, frame session.FrameRecord) (err error) {
	ctx, span := tracing.GlobalReplayTracer.Start(ctx, "remote.frame.submit")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := p.do(ctx, http.MethodPost, "/pose/sessions/"+sessionID+"/frames", posesessions.FrameSubmission{
		FrameIndex:  frame.FrameIndex,
		Timestamp:   frame.Timestamp,
		Landmarks:   frame.Landmarks,
		FrameWidth:  frame.Width,
		FrameHeight: frame.Height,
	}, http.StatusCreated, nil); err != nil {
		return fmt.Errorf("submit frame %d: %w", frame.FrameIndex, err)
	}
	return nil
}

func (p *Persister) CompleteSession(ctx context.Context, sessionID string) (err error) {
	ctx, span := tracing.GlobalReplayTracer.Start(ctx, "remote.session.complete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := p.do(ctx, http.MethodPost, "/pose/sessions/"+sessionID+"/complete", nil, http.StatusOK, nil); err != nil {
		return fmt.Errorf("complete remote session: %w", err)
	}
	return nil
}

// Report fetches the server side report of a remote session.
func (p *Persister) Report(ctx context.Context, sessionID string) (_ *report.Report, err error) {
	ctx, span := tracing.GlobalReplayTracer.Start(ctx, "remote.session.report")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rep := &report.Report{}
	if err := p.do(ctx, http.MethodGet, "/pose/sessions/"+sessionID+"/report", nil, http.StatusOK, rep); err != nil {
		return nil, fmt.Errorf("get remote report: %w", err)
	}
	return rep, nil
}

func (p *Persister) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != wantStatus {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s %s: %d: %s", ErrUnexpectedStatus, method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

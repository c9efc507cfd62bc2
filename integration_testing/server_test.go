//go:build integration_test || all_tests

package integration_testing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/2beens/posecoach/internal/evaluator"
	"github.com/2beens/posecoach/internal/exercise"
	"github.com/2beens/posecoach/internal/pose"
	"github.com/2beens/posecoach/internal/posesessions"
	"github.com/2beens/posecoach/internal/remote"
	"github.com/2beens/posecoach/internal/report"
	"github.com/2beens/posecoach/internal/session"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type IntegrationTestSuite struct {
	suite.Suite
	*Env
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.Env = newSuite(context.Background())
}

func (s *IntegrationTestSuite) TearDownSuite() {
	s.cleanup()
}

func squatLandmarks(kneeDrop float64) pose.Landmarks {
	landmarks := make(pose.Landmarks, pose.NumLandmarks)
	for _, side := range [][4]int{
		{pose.LeftShoulder, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle},
		{pose.RightShoulder, pose.RightHip, pose.RightKnee, pose.RightAnkle},
	} {
		landmarks[side[0]] = pose.Landmark{X: 0.5, Y: 0.2 + kneeDrop, Visibility: pose.Vis(0.9)}
		landmarks[side[1]] = pose.Landmark{X: 0.5, Y: 0.5 + kneeDrop, Visibility: pose.Vis(0.9)}
		landmarks[side[2]] = pose.Landmark{X: 0.55 + kneeDrop, Y: 0.7, Visibility: pose.Vis(0.9)}
		landmarks[side[3]] = pose.Landmark{X: 0.5, Y: 0.9, Visibility: pose.Vis(0.9)}
	}
	return landmarks
}

func (s *IntegrationTestSuite) do(ctx context.Context, method, path string, body any, out any) int {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.Unmarshal(respBytes, out), string(respBytes))
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) TestHealthAndVersion() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Equal(s.T(), http.StatusOK, s.do(ctx, http.MethodGet, "/health", nil, nil))
	assert.Equal(s.T(), http.StatusOK, s.do(ctx, http.MethodGet, "/version", nil, nil))
	assert.Equal(s.T(), http.StatusNotFound, s.do(ctx, http.MethodGet, "/nope", nil, nil))
}

func (s *IntegrationTestSuite) TestExercises() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	t := s.T()

	var resp posesessions.ExercisesResponse
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/pose/exercises", nil, &resp))
	assert.Len(t, resp.Exercises, len(exercise.Default().List()))

	resp = posesessions.ExercisesResponse{}
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/pose/exercises?category=core", nil, &resp))
	require.NotEmpty(t, resp.Exercises)
	for _, ex := range resp.Exercises {
		assert.Equal(t, exercise.CategoryCore, ex.Category)
	}

	assert.Equal(t, http.StatusBadRequest, s.do(ctx, http.MethodGet, "/pose/exercises?category=arms", nil, nil))
}

func (s *IntegrationTestSuite) TestSessionFlow() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	t := s.T()
	userID := gofakeit.Username()

	var created posesessions.SessionResponse
	require.Equal(t, http.StatusCreated, s.do(ctx, http.MethodPost, "/pose/sessions", posesessions.CreateParams{
		ExerciseID: exercise.IDSquat,
		Mode:       posesessions.ModeRealtime,
		UserID:     userID,
	}, &created))
	require.NotNil(t, created.Session)
	sessionID := created.Session.ID
	require.NotEmpty(t, sessionID)

	for i, drop := range []float64{0, 0.1, 0.2, 0.1, 0} {
		var frame posesessions.FrameResponse
		require.Equal(t, http.StatusCreated, s.do(ctx, http.MethodPost, fmt.Sprintf("/pose/sessions/%s/frames", sessionID), posesessions.FrameSubmission{
			FrameIndex: i,
			Timestamp:  float64(i) * 0.5,
			Landmarks:  squatLandmarks(drop),
		}, &frame))
		assert.Positive(t, frame.FrameID)
		assert.GreaterOrEqual(t, frame.OverallScore, 0.0)
		assert.LessOrEqual(t, frame.OverallScore, 100.0)
	}

	// no landmarks
	assert.Equal(t, http.StatusBadRequest, s.do(ctx, http.MethodPost, fmt.Sprintf("/pose/sessions/%s/frames", sessionID), posesessions.FrameSubmission{
		FrameIndex: 99,
	}, nil))

	var completed posesessions.SessionResponse
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodPost, fmt.Sprintf("/pose/sessions/%s/complete", sessionID), nil, &completed))
	require.NotNil(t, completed.Session.CompletedAt)
	assert.Equal(t, 5, completed.Session.TotalFrames)
	require.NotNil(t, completed.Session.Summary)

	assert.Equal(t, http.StatusConflict, s.do(ctx, http.MethodPost, fmt.Sprintf("/pose/sessions/%s/complete", sessionID), nil, nil))

	var rep report.Report
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, fmt.Sprintf("/pose/sessions/%s/report", sessionID), nil, &rep))
	assert.Equal(t, exercise.IDSquat, rep.ExerciseID)
	assert.Equal(t, 5, rep.TotalFrames)

	// second read comes from the cache and is the same report
	var cached report.Report
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, fmt.Sprintf("/pose/sessions/%s/report", sessionID), nil, &cached))
	assert.Equal(t, rep, cached)

	var stats posesessions.UserStatsResponse
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/pose/stats/"+userID, nil, &stats))
	require.Len(t, stats.Stats, 1)
	assert.Equal(t, exercise.IDSquat, stats.Stats[0].ExerciseID)
	assert.Equal(t, 1, stats.Stats[0].TotalSessions)

	var summary posesessions.StatsSummary
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/pose/stats/"+userID+"/summary", nil, &summary))
	assert.Equal(t, 1, summary.TotalExercises)

	assert.Equal(t, http.StatusNotFound, s.do(ctx, http.MethodGet, "/pose/sessions/"+gofakeit.UUID(), nil, nil))
}

func (s *IntegrationTestSuite) TestRemotePersister() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	t := s.T()

	p := remote.NewPersister(serverEndpoint, s.httpClient)
	remoteID, err := p.CreateSession(ctx, session.SessionInfo{
		LocalID:    gofakeit.UUID(),
		ExerciseID: exercise.IDPlank,
		Mode:       session.ModeReplay,
		StartedAt:  time.Now(),
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, p.SubmitFrame(ctx, remoteID, session.FrameRecord{
			FrameIndex: i,
			Timestamp:  float64(i),
			Landmarks:  squatLandmarks(0),
			Result:     evaluator.FrameResult{FrameIndex: i},
		}))
	}
	require.NoError(t, p.CompleteSession(ctx, remoteID))

	rep, err := p.Report(ctx, remoteID)
	require.NoError(t, err)
	assert.Equal(t, exercise.IDPlank, rep.ExerciseID)
	assert.Equal(t, 3, rep.TotalFrames)

	err = p.CompleteSession(ctx, remoteID)
	require.ErrorIs(t, err, remote.ErrUnexpectedStatus)
}

func (s *IntegrationTestSuite) TestSchemaTables() {
	t := s.T()
	for _, table := range []string{"pose_session", "pose_frame", "pose_user_exercise_stats"} {
		var exists bool
		err := s.DB.QueryRow(
			`SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = $1)`, table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}
}

package posesessions_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/2beens/posecoach/internal/posesessions"
	"github.com/2beens/posecoach/internal/report"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() *report.Report {
	return &report.Report{
		ExerciseID:   "squat",
		ExerciseName: "Squat",
		Grade:        report.GradeB,
		AverageScore: 77.5,
		TotalFrames:  40,
		Reps:         8,
		Feedback:     []string{"Keep your back straight"},
	}
}

func TestReportCache_LocalOnly(t *testing.T) {
	ctx := context.Background()
	c := posesessions.NewReportCache(0, 0, nil)

	rep, result := c.Get(ctx, "s1")
	assert.Nil(t, rep)
	assert.Equal(t, posesessions.CacheMiss, result)

	require.NoError(t, c.Set(ctx, "s1", testReport()))
	rep, result = c.Get(ctx, "s1")
	require.NotNil(t, rep)
	assert.Equal(t, posesessions.CacheHitLocal, result)
	assert.Equal(t, testReport(), rep)

	require.NoError(t, c.Invalidate(ctx, "s1"))
	_, result = c.Get(ctx, "s1")
	assert.Equal(t, posesessions.CacheMiss, result)
}

func TestReportCache_SharedLayer(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	defer db.Close()

	ttl := 10 * time.Minute
	c := posesessions.NewReportCache(1024*1024, ttl, db)
	data, err := json.Marshal(testReport())
	require.NoError(t, err)

	mock.ExpectGet("posecoach:report:s1").RedisNil()
	rep, result := c.Get(ctx, "s1")
	assert.Nil(t, rep)
	assert.Equal(t, posesessions.CacheMiss, result)

	// written by another instance
	mock.ExpectGet("posecoach:report:s1").SetVal(string(data))
	rep, result = c.Get(ctx, "s1")
	require.NotNil(t, rep)
	assert.Equal(t, posesessions.CacheHitShared, result)
	assert.Equal(t, 8, rep.Reps)

	// backfilled into the local layer, redis is not asked again
	rep, result = c.Get(ctx, "s1")
	require.NotNil(t, rep)
	assert.Equal(t, posesessions.CacheHitLocal, result)

	mock.ExpectDel("posecoach:report:s1").SetVal(1)
	require.NoError(t, c.Invalidate(ctx, "s1"))

	mock.ExpectSet("posecoach:report:s2", data, ttl).SetVal("OK")
	require.NoError(t, c.Set(ctx, "s2", testReport()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportCache_RedisErrors(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := posesessions.NewReportCache(1024*1024, time.Minute, db)

	mock.ExpectGet("posecoach:report:s1").SetErr(errors.New("connection refused"))
	rep, result := c.Get(ctx, "s1")
	assert.Nil(t, rep)
	assert.Equal(t, posesessions.CacheMiss, result)

	mock.ExpectGet("posecoach:report:s2").SetVal("{not json")
	_, result = c.Get(ctx, "s2")
	assert.Equal(t, posesessions.CacheMiss, result)

	data, err := json.Marshal(testReport())
	require.NoError(t, err)
	mock.ExpectSet("posecoach:report:s3", data, time.Minute).SetErr(errors.New("readonly replica"))
	err = c.Set(ctx, "s3", testReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "readonly replica")

	// the local layer still got the report
	_, result = c.Get(ctx, "s3")
	assert.Equal(t, posesessions.CacheHitLocal, result)

	assert.NoError(t, mock.ExpectationsWereMet())
}

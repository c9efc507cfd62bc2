package recording_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/2beens/posecoach/internal/pose"
	"github.com/2beens/posecoach/internal/recording"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleEntries() []recording.Entry {
	return []recording.Entry{
		{
			TimeMs:      0,
			Landmarks:   pose.Landmarks{{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.4, Visibility: pose.Vis(0.9)}},
			FrameWidth:  640,
			FrameHeight: 480,
		},
		{
			TimeMs:    40,
			Landmarks: pose.Landmarks{{X: 0.5, Y: 0.6}},
		},
		{
			TimeMs: 80,
			Image:  []byte{0xff, 0xd8, 0xff},
		},
	}
}

func writeAll(t *testing.T, path string, entries []recording.Entry) {
	t.Helper()
	w, err := recording.Create(path)
	require.NoError(t, err)
	for _, e := range entries {
		require.NoError(t, w.Write(e))
	}
	assert.Equal(t, len(entries), w.Count())
	require.NoError(t, w.Close())
}

func readAll(t *testing.T, r *recording.Reader) []recording.Entry {
	t.Helper()
	var entries []recording.Entry
	for {
		e, err := r.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		entries = append(entries, e)
	}
	return entries
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"session.jsonl", "session.jsonl.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			writeAll(t, path, sampleEntries())

			r, err := recording.Open(path)
			require.NoError(t, err)
			defer func() {
				assert.NoError(t, r.Close())
			}()

			assert.Equal(t, sampleEntries(), readAll(t, r))
		})
	}
}

func TestCompressedFileIsZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl.zst")
	writeAll(t, path, sampleEntries())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	decoder, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer decoder.Close()

	plain, err := decoder.DecodeAll(raw, nil)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(plain)), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `{"timeMs":0,`))
}

func TestIsCompressed(t *testing.T) {
	assert.True(t, recording.IsCompressed("a/b.jsonl.zst"))
	assert.False(t, recording.IsCompressed("a/b.jsonl"))
	assert.False(t, recording.IsCompressed("a/b.zst"))
}

func TestReader_Next(t *testing.T) {
	input := `{"timeMs":0,"landmarks":[{"x":10,"y":20,"z":0}],"frameWidth":100,"frameHeight":200}
{"timeMs":1500,"landmarks":[{"x":0.5,"y":0.5,"z":0}]}
`
	r := recording.NewReader(strings.NewReader(input))

	mf, err := r.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), mf.Time)
	assert.Equal(t, 100, mf.Frame.Width)
	assert.Equal(t, 200, mf.Frame.Height)
	require.Len(t, mf.Frame.Landmarks, 1)
	assert.Equal(t, 10.0, mf.Frame.Landmarks[0].X)

	mf, err = r.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, mf.Time)
	assert.Zero(t, mf.Frame.Width)

	_, err = r.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_Next_CanceledContext(t *testing.T) {
	r := recording.NewReader(strings.NewReader(`{"timeMs":0}`))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_Malformed(t *testing.T) {
	r := recording.NewReader(strings.NewReader("{\"timeMs\":0}\n{not json}\n"))

	_, err := r.Read()
	require.NoError(t, err)

	_, err = r.Read()
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
	assert.Contains(t, err.Error(), "decode entry 1")
}

func TestOpen_Missing(t *testing.T) {
	_, err := recording.Open(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvertDump(t *testing.T) {
	dump := `[
		{"timestamp": 0, "landmarks": [{"x": 0.1, "y": 0.1, "z": 0}], "frameWidth": 640, "frameHeight": 480},
		{"timestamp": 0.04, "landmarks": []},
		{"timestamp": 0.5, "landmarks": [{"x": 0.2, "y": 0.3, "z": 0}]}
	]`

	var buf bytes.Buffer
	w := recording.NewWriter(&buf)
	n, err := recording.ConvertDump(strings.NewReader(dump), w)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, 2, n)

	entries := readAll(t, recording.NewReader(&buf))
	require.Len(t, entries, 2)
	assert.Equal(t, int64(0), entries[0].TimeMs)
	assert.Equal(t, 640, entries[0].FrameWidth)
	assert.Equal(t, int64(500), entries[1].TimeMs)
	assert.Equal(t, 0.3, entries[1].Landmarks[0].Y)
}

func TestConvertDump_Invalid(t *testing.T) {
	var buf bytes.Buffer
	w := recording.NewWriter(&buf)
	_, err := recording.ConvertDump(strings.NewReader(`{"timestamp": 1}`), w)
	assert.ErrorContains(t, err, "decode frame dump")
}

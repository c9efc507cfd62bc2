package recording

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/2beens/posecoach/internal/pose"
	"github.com/2beens/posecoach/internal/session"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/multierr"
)

const (
	ExtJSONL = ".jsonl"
	ExtZstd  = ".jsonl.zst"
)

// Entry is one line of a recording.
type Entry struct {
	TimeMs      int64          `json:"timeMs"`
	Landmarks   pose.Landmarks `json:"landmarks,omitempty"`
	FrameWidth  int            `json:"frameWidth,omitempty"`
	FrameHeight int            `json:"frameHeight,omitempty"`
	// Image is an encoded camera frame, used when no landmarks were captured.
	Image []byte `json:"image,omitempty"`
}

func (e Entry) MediaFrame() session.MediaFrame {
	return session.MediaFrame{
		Time: time.Duration(e.TimeMs) * time.Millisecond,
		Frame: pose.Frame{
			Landmarks: e.Landmarks,
			Width:     e.FrameWidth,
			Height:    e.FrameHeight,
		},
		Image: e.Image,
	}
}

func IsCompressed(path string) bool {
	return strings.HasSuffix(path, ExtZstd)
}

// Reader reads recording entries and serves them as a replay frame source.
type Reader struct {
	dec     *json.Decoder
	closers []func() error
	line    int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: json.NewDecoder(bufio.NewReader(r))}
}

func NewZstdReader(r io.Reader) (*Reader, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	reader := NewReader(decoder)
	reader.closers = append(reader.closers, func() error {
		decoder.Close()
		return nil
	})
	return reader, nil
}

// Open opens a .jsonl or .jsonl.zst recording.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}

	var reader *Reader
	if IsCompressed(path) {
		reader, err = NewZstdReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
	} else {
		reader = NewReader(f)
	}
	reader.closers = append(reader.closers, f.Close)
	return reader, nil
}

// Read returns the next entry, io.EOF at the end of the recording.
func (r *Reader) Read() (Entry, error) {
	var e Entry
	if err := r.dec.Decode(&e); err != nil {
		if errors.Is(err, io.EOF) {
			return Entry{}, io.EOF
		}
		return Entry{}, fmt.Errorf("decode entry %d: %w", r.line, err)
	}
	r.line++
	return e, nil
}

func (r *Reader) Next(ctx context.Context) (session.MediaFrame, error) {
	if err := ctx.Err(); err != nil {
		return session.MediaFrame{}, err
	}
	e, err := r.Read()
	if err != nil {
		return session.MediaFrame{}, err
	}
	return e.MediaFrame(), nil
}

func (r *Reader) Close() error {
	var err error
	for _, c := range r.closers {
		err = multierr.Append(err, c())
	}
	r.closers = nil
	return err
}

// Writer writes recording entries, one JSON document per line.
type Writer struct {
	buf     *bufio.Writer
	enc     *json.Encoder
	closers []func() error
	count   int
}

func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	return &Writer{
		buf: buf,
		enc: json.NewEncoder(buf),
	}
}

func NewZstdWriter(w io.Writer) (*Writer, error) {
	encoder, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	writer := NewWriter(encoder)
	writer.closers = append(writer.closers, encoder.Close)
	return writer, nil
}

// Create creates a recording file, compressed when path ends in .jsonl.zst.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}

	var writer *Writer
	if IsCompressed(path) {
		writer, err = NewZstdWriter(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
	} else {
		writer = NewWriter(f)
	}
	writer.closers = append(writer.closers, f.Close)
	return writer, nil
}

func (w *Writer) Write(e Entry) error {
	if err := w.enc.Encode(e); err != nil {
		return fmt.Errorf("encode entry %d: %w", w.count, err)
	}
	w.count++
	return nil
}

func (w *Writer) Count() int {
	return w.count
}

// Close flushes buffered entries, then closes the encoder and the file in order.
func (w *Writer) Close() error {
	err := w.buf.Flush()
	for _, c := range w.closers {
		err = multierr.Append(err, c())
	}
	w.closers = nil
	return err
}

// DumpFrame is one frame of a JSON frame dump, as exported by the capture client.
type DumpFrame struct {
	Timestamp   float64        `json:"timestamp"`
	Landmarks   pose.Landmarks `json:"landmarks"`
	FrameWidth  int            `json:"frameWidth,omitempty"`
	FrameHeight int            `json:"frameHeight,omitempty"`
}

// ConvertDump reads a JSON array of frames and writes them as recording entries.
func ConvertDump(r io.Reader, w *Writer) (int, error) {
	var frames []DumpFrame
	if err := json.NewDecoder(r).Decode(&frames); err != nil {
		return 0, fmt.Errorf("decode frame dump: %w", err)
	}

	for i, f := range frames {
		if len(f.Landmarks) == 0 {
			continue
		}
		err := w.Write(Entry{
			TimeMs:      int64(f.Timestamp * 1000),
			Landmarks:   f.Landmarks,
			FrameWidth:  f.FrameWidth,
			FrameHeight: f.FrameHeight,
		})
		if err != nil {
			return w.Count(), fmt.Errorf("write frame %d: %w", i, err)
		}
	}
	return w.Count(), nil
}

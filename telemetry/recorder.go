// Package telemetry writes per-frame statistics of headless runs as CSV.
package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"
)

// FrameStats is one frame's summary.
type FrameStats struct {
	Frame     uint64  `csv:"frame"`
	Particles int     `csv:"particles"`
	Edges     int     `csv:"edges"`
	MeanAlpha float64 `csv:"mean_alpha"`
	Width     float64 `csv:"width"`
	Height    float64 `csv:"height"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frame", s.Frame),
		slog.Int("particles", s.Particles),
		slog.Int("edges", s.Edges),
		slog.Float64("mean_alpha", s.MeanAlpha),
		slog.Float64("width", s.Width),
		slog.Float64("height", s.Height),
	)
}

// Recorder appends FrameStats rows to a CSV stream. A nil Recorder
// discards everything.
type Recorder struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
	rows          int
}

// NewRecorder writes CSV rows to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Create opens path for writing. Returns nil if path is empty (recording
// disabled).
func Create(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating stats file: %w", err)
	}
	return &Recorder{w: f, closer: f}, nil
}

// Write appends one row, preceded by the header on first use.
func (r *Recorder) Write(s FrameStats) error {
	if r == nil {
		return nil
	}
	records := []FrameStats{s}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.w); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.w); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}
	r.rows++
	return nil
}

// Rows returns how many rows have been written.
func (r *Recorder) Rows() int {
	if r == nil {
		return 0
	}
	return r.rows
}

// Close closes the underlying file, if the recorder opened one.
func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

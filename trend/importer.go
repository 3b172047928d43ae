package trend

import (
	"context"
	"fmt"

	"github.com/panyam/trendchart/logging"
)

// Stride returns the decimation step for n samples shown in a window of
// windowSize: floor(n/windowSize), at least 1.
func Stride(n, windowSize int) int {
	if windowSize <= 0 {
		return 1
	}
	stride := n / windowSize
	if stride < 1 {
		stride = 1
	}
	return stride
}

// Decimate keeps every stride-th item starting at index 0. No averaging or
// interpolation is done.
func Decimate[T any](items []T, windowSize int) []T {
	stride := Stride(len(items), windowSize)
	out := make([]T, 0, (len(items)+stride-1)/stride)
	for i := 0; i < len(items); i += stride {
		out = append(out, items[i])
	}
	return out
}

// MergeRecords concatenates the records of every source per channel, in
// source order. Records are not re-sorted by time.
func MergeRecords(sources []*Records) *Records {
	merged := NewRecords()
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, name := range src.Names() {
			if recs := src.Get(name); len(recs) > 0 {
				merged.Append(name, recs...)
			}
		}
	}
	return merged
}

// ImportedChannel summarizes the decimation of one channel.
type ImportedChannel struct {
	Name   string
	Merged int
	Stride int
	Kept   int
}

// ImportReport is returned by Engine.Import.
type ImportReport struct {
	WindowSize int
	Channels   []ImportedChannel
}

// Import resets the engine and loads bulk history: records are merged per
// channel, decimated to about windowSize samples and fed through AddSample.
// The viewport goes back to AutoFollow afterwards.
func (e *Engine) Import(ctx context.Context, sources []*Records, windowSize int) (*ImportReport, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("import window must be positive, got %d: %w", windowSize, ErrCapacityMisconfiguration)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.Reset()

	merged := MergeRecords(sources)
	report := &ImportReport{WindowSize: windowSize}
	for _, name := range merged.Names() {
		recs := merged.Get(name)
		stride := Stride(len(recs), windowSize)
		kept := Decimate(recs, windowSize)
		for _, rec := range kept {
			if _, err := e.AddSample(name, rec.Value, rec.Time); err != nil {
				return report, fmt.Errorf("importing channel %q: %w", name, err)
			}
		}
		report.Channels = append(report.Channels, ImportedChannel{
			Name:   name,
			Merged: len(recs),
			Stride: stride,
			Kept:   len(kept),
		})
		logging.Debug("imported %q: %d merged, stride %d, %d kept", name, len(recs), stride, len(kept))
	}

	e.viewport.Follow()
	e.target.Redraw()
	logging.Info("imported %d channels from %d sources (window %d)", len(report.Channels), len(sources), windowSize)
	return report, nil
}

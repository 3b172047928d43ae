package trend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingTarget remembers every notification it receives.
type recordingTarget struct {
	calls    []string
	points   map[string][]Point
	bounds   map[string][2]float64
	visible  map[string][2]float64
	redraws  int
	clears   int
	removals map[string]int
}

func newRecordingTarget() *recordingTarget {
	r := &recordingTarget{}
	r.Clear()
	r.clears = 0
	return r
}

func (r *recordingTarget) UpsertPoint(channel, area string, p Point) {
	r.calls = append(r.calls, fmt.Sprintf("upsert %s@%s x=%g", channel, area, p.X))
	r.points[channel] = append(r.points[channel], p)
}

func (r *recordingTarget) RemoveOldest(channel string) {
	r.calls = append(r.calls, "remove "+channel)
	r.points[channel] = r.points[channel][1:]
	r.removals[channel]++
}

func (r *recordingTarget) SetAreaAxisBound(areaID string, axis Axis, min, max float64) {
	r.calls = append(r.calls, fmt.Sprintf("bound %s %s [%g,%g]", areaID, axis, min, max))
	r.bounds[areaID] = [2]float64{min, max}
}

func (r *recordingTarget) SetAreaVisibleRange(areaID string, min, max float64) {
	r.calls = append(r.calls, fmt.Sprintf("visible %s [%g,%g]", areaID, min, max))
	r.visible[areaID] = [2]float64{min, max}
}

func (r *recordingTarget) Clear() {
	r.points = make(map[string][]Point)
	r.bounds = make(map[string][2]float64)
	r.visible = make(map[string][2]float64)
	r.removals = make(map[string]int)
	r.clears++
}

func (r *recordingTarget) Redraw() {
	r.redraws++
}

func newTestEngine(t *testing.T, mutate ...func(*Config)) (*Engine, *recordingTarget) {
	t.Helper()
	cfg := DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	target := newRecordingTarget()
	e, err := NewEngine(cfg, target)
	require.NoError(t, err)
	return e, target
}

func withCapacity(c int) func(*Config) {
	return func(cfg *Config) { cfg.WindowCapacity = c }
}

func withMoveEnabled(cfg *Config) {
	cfg.MoveEnabled = true
}

func numbers(vals ...float64) (out []Record) {
	for i, v := range vals {
		out = append(out, Record{Time: fmt.Sprintf("t%d", i+1), Value: Number(v)})
	}
	return
}

func ys(points []Point) (out []float64) {
	for _, p := range points {
		out = append(out, p.Y)
	}
	return
}

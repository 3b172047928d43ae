package trend

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewportStartsInAutoFollow(t *testing.T) {
	e, _ := newTestEngine(t, withMoveEnabled)
	assert.Equal(t, ViewportState{Mode: AutoFollow}, e.Viewport())

	// live ingestion never leaves auto-follow
	for i := 0; i < 5; i++ {
		_, err := e.AddSample("A", Number(float64(i)), "t")
		require.NoError(t, err)
	}
	assert.Equal(t, AutoFollow, e.Viewport().Mode)
}

func TestViewportZoomTranslates(t *testing.T) {
	e, target := newTestEngine(t, withMoveEnabled, withCapacity(100))
	_, err := e.AddSample("A", Number(1), "t1")
	require.NoError(t, err)
	_, err = e.AddSample("D", Boolean(true), "t1")
	require.NoError(t, err)

	require.True(t, e.Zoom(10, false))
	st := e.Viewport()
	assert.Equal(t, Manual, st.Mode)
	assert.Equal(t, 10.0, st.Min)
	assert.Equal(t, 110.0, st.Max)

	// every area receives the committed range
	assert.Equal(t, [2]float64{10, 110}, target.visible[AnalogAreaID])
	assert.Equal(t, [2]float64{10, 110}, target.visible[DigitalAreaID])
}

func TestViewportCtrlZoomMovesLeftEdge(t *testing.T) {
	e, _ := newTestEngine(t, withMoveEnabled, withCapacity(100))

	require.True(t, e.Zoom(30, true))
	assert.Equal(t, ViewportState{Mode: Manual, Min: 30, Max: 100}, e.Viewport())

	require.True(t, e.Zoom(-50, true))
	assert.Equal(t, ViewportState{Mode: Manual, Min: -20, Max: 100}, e.Viewport())

	// cannot cross the right edge
	require.True(t, e.Zoom(500, true))
	st := e.Viewport()
	assert.Equal(t, st.Max, st.Min)
	assert.LessOrEqual(t, st.Min, st.Max)
}

func TestViewportDrag(t *testing.T) {
	e, _ := newTestEngine(t, withMoveEnabled, withCapacity(100))

	require.True(t, e.DragStart(50))
	assert.Equal(t, AutoFollow, e.Viewport().Mode, "anchoring alone is not a transition")

	require.True(t, e.DragMove(40))
	assert.Equal(t, ViewportState{Mode: Manual, Min: 10, Max: 110}, e.Viewport())

	require.True(t, e.DragMove(45))
	assert.Equal(t, ViewportState{Mode: Manual, Min: 5, Max: 105}, e.Viewport())
}

func TestViewportDisabledIgnoresInput(t *testing.T) {
	e, target := newTestEngine(t)
	_, err := e.AddSample("A", Number(1), "t")
	require.NoError(t, err)

	assert.False(t, e.Zoom(10, false))
	assert.False(t, e.Zoom(10, true))
	assert.False(t, e.DragStart(3))
	assert.False(t, e.DragMove(1))
	assert.Equal(t, ViewportState{Mode: AutoFollow}, e.Viewport())
	assert.Empty(t, target.visible)

	e.SetMoveEnabled(true)
	require.True(t, e.Zoom(1, false))
	before := e.Viewport()
	e.SetMoveEnabled(false)
	assert.False(t, e.DragMove(-100))
	assert.Equal(t, before, e.Viewport())
}

func TestViewportResetReturnsToAutoFollow(t *testing.T) {
	e, _ := newTestEngine(t, withMoveEnabled)
	e.Zoom(3, false)
	require.Equal(t, Manual, e.Viewport().Mode)

	e.Reset()
	assert.Equal(t, ViewportState{Mode: AutoFollow}, e.Viewport())
	assert.True(t, e.MoveEnabled(), "the capability flag belongs to the host")
}

func TestViewportSeedsFromOldestBufferedPoint(t *testing.T) {
	e, _ := newTestEngine(t, withMoveEnabled, withCapacity(4))
	for i := 0; i < 10; i++ {
		_, err := e.AddSample("A", Number(float64(i)), "t")
		require.NoError(t, err)
	}
	// ordinals 6..9 are buffered
	e.Zoom(0, false)
	assert.Equal(t, ViewportState{Mode: Manual, Min: 6, Max: 10}, e.Viewport())
}

func TestViewportAnnouncesRangeToNewAreas(t *testing.T) {
	e, target := newTestEngine(t, withMoveEnabled, withCapacity(10))
	e.Zoom(2, false)

	_, err := e.AddSample("late", Number(1), "t", WithDedicatedArea())
	require.NoError(t, err)
	assert.Equal(t, [2]float64{2, 12}, target.visible[DedicatedAreaPrefix+"late"])
}

func TestViewportStateJSON(t *testing.T) {
	b, err := json.Marshal(ViewportState{Mode: Manual, Min: 1, Max: 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"manual","min":1,"max":4}`, string(b))

	var st ViewportState
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"auto-follow"}`), &st))
	assert.Equal(t, AutoFollow, st.Mode)
	assert.Error(t, json.Unmarshal([]byte(`{"mode":"sideways"}`), &st))
}

func TestViewportIgnoresNonFiniteInput(t *testing.T) {
	e, target := newTestEngine(t, withMoveEnabled, withCapacity(10))

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.False(t, e.Zoom(bad, false))
		assert.False(t, e.Zoom(bad, true))
		assert.False(t, e.DragStart(bad))
		assert.False(t, e.DragMove(bad))
	}
	assert.Equal(t, ViewportState{Mode: AutoFollow}, e.Viewport())
	assert.Empty(t, target.visible)

	require.True(t, e.Zoom(2, false))
	require.True(t, e.DragStart(5))
	assert.False(t, e.DragMove(math.NaN()))
	assert.Equal(t, ViewportState{Mode: Manual, Min: 2, Max: 12}, e.Viewport())

	// the anchor survives a rejected move
	require.True(t, e.DragMove(4))
	assert.Equal(t, ViewportState{Mode: Manual, Min: 3, Max: 13}, e.Viewport())
}

func TestVisibleRange(t *testing.T) {
	e, _ := newTestEngine(t, withMoveEnabled, withCapacity(4))
	min, max := e.VisibleRange()
	assert.Equal(t, [2]float64{0, 4}, [2]float64{min, max})

	for i := 0; i < 6; i++ {
		_, err := e.AddSample("A", Number(float64(i)), "t")
		require.NoError(t, err)
	}
	min, max = e.VisibleRange()
	assert.Equal(t, [2]float64{2, 6}, [2]float64{min, max}, "auto-follow reports the seed range")

	require.True(t, e.Zoom(1, false))
	min, max = e.VisibleRange()
	assert.Equal(t, [2]float64{3, 7}, [2]float64{min, max})
}

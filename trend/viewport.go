package trend

import (
	"fmt"
	"math"
)

// ViewportMode says who owns the visible X range.
type ViewportMode int

const (
	// AutoFollow leaves the visible range to the render target.
	AutoFollow ViewportMode = iota

	// Manual means the engine owns the range after a pan or zoom.
	Manual
)

func (m ViewportMode) String() string {
	if m == Manual {
		return "manual"
	}
	return "auto-follow"
}

// MarshalText encodes the mode by name.
func (m ViewportMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ViewportMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "manual":
		*m = Manual
	case "auto-follow":
		*m = AutoFollow
	default:
		return fmt.Errorf("unknown viewport mode %q", b)
	}
	return nil
}

// ViewportState is a snapshot of the viewport.
type ViewportState struct {
	Mode ViewportMode `json:"mode"`
	Min  float64      `json:"min"`
	Max  float64      `json:"max"`
}

// Viewport applies pan and zoom input to the visible X range.
type Viewport struct {
	mode        ViewportMode
	min, max    float64
	anchor      float64
	moveEnabled bool

	// seed provides the bounds to start from when leaving AutoFollow
	seed func() (min, max float64)

	// commit publishes new bounds
	commit func(min, max float64)
}

// NewViewport creates a viewport in AutoFollow mode.
func NewViewport(seed func() (float64, float64), commit func(float64, float64)) *Viewport {
	return &Viewport{seed: seed, commit: commit}
}

// SetMoveEnabled toggles whether pan and zoom input is honored.
func (v *Viewport) SetMoveEnabled(enabled bool) {
	v.moveEnabled = enabled
}

func (v *Viewport) MoveEnabled() bool {
	return v.moveEnabled
}

// State returns the current mode and bounds. Bounds are zero in AutoFollow.
func (v *Viewport) State() ViewportState {
	if v.mode == AutoFollow {
		return ViewportState{Mode: AutoFollow}
	}
	return ViewportState{Mode: Manual, Min: v.min, Max: v.max}
}

// Zoom with ctrl held moves only the left edge; otherwise the window is
// translated by delta. Returns false when input is disabled or delta is
// not a finite number.
func (v *Viewport) Zoom(delta float64, ctrlHeld bool) bool {
	if !v.moveEnabled || !finite(delta) {
		return false
	}
	v.takeOver()
	v.min += delta
	if !ctrlHeld {
		v.max += delta
	} else if v.min > v.max {
		v.min = v.max
	}
	v.publish()
	return true
}

// BeginDrag records the drag anchor.
func (v *Viewport) BeginDrag(x float64) bool {
	if !v.moveEnabled || !finite(x) {
		return false
	}
	v.anchor = x
	return true
}

// ContinueDrag pans by the distance from the anchor to x and moves the
// anchor to x. Dragging left moves the view forward.
func (v *Viewport) ContinueDrag(x float64) bool {
	if !v.moveEnabled || !finite(x) {
		return false
	}
	v.takeOver()
	moveDelta := v.anchor - x
	v.min += moveDelta
	v.max += moveDelta
	v.anchor = x
	v.publish()
	return true
}

// Follow hands the range back to the render target.
func (v *Viewport) Follow() {
	v.mode = AutoFollow
	v.min, v.max = 0, 0
	v.anchor = 0
}

func (v *Viewport) takeOver() {
	if v.mode == Manual {
		return
	}
	v.mode = Manual
	if v.seed != nil {
		v.min, v.max = v.seed()
	}
}

func (v *Viewport) publish() {
	if v.commit != nil {
		v.commit(v.min, v.max)
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

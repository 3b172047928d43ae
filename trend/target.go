package trend

// Color is a display color tag, a "#rrggbb" hex string or Transparent.
type Color string

// Transparent marks a point that occupies its slot but is not drawn.
const Transparent Color = "transparent"

// Axis selects an axis of a display area.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Point is what a render target receives for one buffered sample.
// X is the channel ordinal of the sample; analog points carry Y, digital
// points carry the Low/High band.
type Point struct {
	X     float64
	Time  string
	Y     float64
	Low   float64
	High  float64
	Band  bool
	Color Color
}

// RenderTarget is the presentation layer driven by the engine. The engine
// pushes every visible mutation as it happens; the target never mutates engine state.
type RenderTarget interface {
	// UpsertPoint appends (or replaces, for an equal X) a point of a channel.
	UpsertPoint(channel string, area string, p Point)

	// RemoveOldest drops the first point of a channel.
	RemoveOldest(channel string)

	SetAreaAxisBound(areaID string, axis Axis, min, max float64)
	SetAreaVisibleRange(areaID string, min, max float64)

	// Clear drops every channel and area.
	Clear()
	Redraw()
}

// NopTarget discards every notification.
type NopTarget struct{}

func (NopTarget) UpsertPoint(string, string, Point)               {}
func (NopTarget) RemoveOldest(string)                             {}
func (NopTarget) SetAreaAxisBound(string, Axis, float64, float64) {}
func (NopTarget) SetAreaVisibleRange(string, float64, float64)    {}
func (NopTarget) Clear()                                          {}
func (NopTarget) Redraw()                                         {}

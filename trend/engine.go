package trend

import (
	"github.com/panyam/trendchart/logging"
)

// SampleOption tunes a single AddSample call.
type SampleOption func(*sampleOptions)

type sampleOptions struct {
	evict     bool
	dedicated bool
}

// WithoutEviction keeps the oldest point even when the buffer is full.
func WithoutEviction() SampleOption {
	return func(o *sampleOptions) { o.evict = false }
}

// WithDedicatedArea puts a new analog channel in its own display area.
func WithDedicatedArea() SampleOption {
	return func(o *sampleOptions) { o.dedicated = true }
}

// Engine owns the channel registry, the per-channel buffers, the axis
// bounds and the viewport, and pushes every change to a RenderTarget.
//
// The engine is not safe for concurrent use; hosts receiving input from
// several goroutines must serialize calls.
type Engine struct {
	cfg      Config
	target   RenderTarget
	registry *Registry
	buffers  map[string]*PointBuffer
	encoder  DigitalEncoder
	scaler   *AxisAutoscaler
	viewport *Viewport
}

// NewEngine validates cfg and creates an empty engine drawing into target.
func NewEngine(cfg Config, target RenderTarget) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if target == nil {
		target = NopTarget{}
	}
	e := &Engine{
		cfg:     cfg,
		target:  target,
		buffers: make(map[string]*PointBuffer),
		encoder: DigitalEncoder{SizeOffset: cfg.DigitalBandSizeOffset},
	}
	e.registry = NewRegistry(cfg)
	e.registry.OnAreaCreated = e.announceArea
	e.scaler = NewAxisAutoscaler(e.registry, e.areaValues)
	e.scaler.OnRescale = func(a *Area) {
		e.setAxisBound(a.ID, AxisY, a.YMin, a.YMax)
		e.target.Redraw()
	}
	e.viewport = NewViewport(e.seedRange, e.commitRange)
	e.viewport.SetMoveEnabled(cfg.MoveEnabled)
	return e, nil
}

// Config returns the engine settings.
func (e *Engine) Config() Config {
	return e.cfg
}

// Registry exposes the channel registry (read only use).
func (e *Engine) Registry() *Registry {
	return e.registry
}

// AddSample ingests one live reading and returns its index in the channel
// buffer at insertion time. A null value is ignored and returns 0.
//
// A reading whose type does not match the channel kind is coerced: numbers
// into a digital channel are high when non-zero, booleans into an analog
// channel become 0 or 1.
func (e *Engine) AddSample(name string, value Value, time string, opts ...SampleOption) (int, error) {
	if value.IsNull() {
		return 0, nil
	}
	o := sampleOptions{evict: true}
	for _, opt := range opts {
		opt(&o)
	}

	ch, err := e.registry.Resolve(name, value, o.dedicated)
	if err != nil {
		return 0, err
	}
	buf, ok := e.buffers[name]
	if !ok {
		buf = NewPointBuffer(e.cfg.WindowCapacity)
		e.buffers[name] = buf
	}

	var p Point
	switch ch.Kind {
	case Digital:
		p = e.encoder.Encode(ch, value.Bool()).Point(buf.NextX(), time)
	case Analog:
		p = Point{X: buf.NextX(), Time: time, Y: value.Float(), Color: ch.Color}
	}

	index, evicted := buf.Append(p, o.evict)
	e.target.UpsertPoint(name, ch.Area, p)
	if evicted {
		e.target.RemoveOldest(name)
	}

	if ch.Kind == Analog {
		e.scaler.Observe(ch.Area, p.Y)
	}
	return index, nil
}

// Reset forgets every channel, buffer and area, restores the default axis
// bounds and returns the viewport to AutoFollow.
func (e *Engine) Reset() {
	e.registry.Reset()
	e.buffers = make(map[string]*PointBuffer)
	e.viewport.Follow()
	e.target.Clear()
	e.target.Redraw()
	logging.Debug("engine reset")
}

// Zoom applies a normalized wheel delta. See Viewport.Zoom.
func (e *Engine) Zoom(delta float64, ctrlHeld bool) bool {
	return e.viewport.Zoom(delta, ctrlHeld)
}

// DragStart records a pan anchor.
func (e *Engine) DragStart(x float64) bool {
	return e.viewport.BeginDrag(x)
}

// DragMove pans from the last anchor to x.
func (e *Engine) DragMove(x float64) bool {
	return e.viewport.ContinueDrag(x)
}

// SetMoveEnabled is the host's pan/zoom capability switch.
func (e *Engine) SetMoveEnabled(enabled bool) {
	e.viewport.SetMoveEnabled(enabled)
}

func (e *Engine) MoveEnabled() bool {
	return e.viewport.MoveEnabled()
}

// Viewport returns the viewport state.
func (e *Engine) Viewport() ViewportState {
	return e.viewport.State()
}

// VisibleRange returns the X range on screen: the manual bounds, or in
// AutoFollow the range a first pan or zoom would start from.
func (e *Engine) VisibleRange() (min, max float64) {
	if st := e.viewport.State(); st.Mode == Manual {
		return st.Min, st.Max
	}
	return e.seedRange()
}

// Points returns the buffered points of a channel, oldest first.
func (e *Engine) Points(name string) []Point {
	if buf, ok := e.buffers[name]; ok {
		return buf.Points()
	}
	return nil
}

// Len returns the number of buffered points of a channel.
func (e *Engine) Len(name string) int {
	if buf, ok := e.buffers[name]; ok {
		return buf.Len()
	}
	return 0
}

// AxisBound returns the Y bounds of an area.
func (e *Engine) AxisBound(areaID string) (min, max float64, ok bool) {
	a, ok := e.registry.Area(areaID)
	if !ok {
		return 0, 0, false
	}
	return a.YMin, a.YMax, true
}

func (e *Engine) announceArea(a *Area) {
	e.setAxisBound(a.ID, AxisY, a.YMin, a.YMax)
	if st := e.viewport.State(); st.Mode == Manual {
		e.setVisibleRange(a.ID, st.Min, st.Max)
	}
}

func (e *Engine) areaValues(areaID string, yield func(float64)) {
	for _, ch := range e.registry.ChannelsInArea(areaID) {
		buf, ok := e.buffers[ch.Name]
		if !ok {
			continue
		}
		for i := 0; i < buf.Len(); i++ {
			yield(buf.At(i).Y)
		}
	}
}

// seedRange starts manual mode at the oldest buffered ordinal, one window wide.
func (e *Engine) seedRange() (float64, float64) {
	first, found := 0.0, false
	for _, buf := range e.buffers {
		if p, ok := buf.Oldest(); ok && (!found || p.X < first) {
			first, found = p.X, true
		}
	}
	return first, first + float64(e.cfg.WindowCapacity)
}

func (e *Engine) commitRange(min, max float64) {
	for _, a := range e.registry.Areas() {
		e.setVisibleRange(a.ID, min, max)
	}
	e.target.Redraw()
}

func (e *Engine) setAxisBound(areaID string, axis Axis, min, max float64) {
	e.mustKnowArea(areaID)
	e.target.SetAreaAxisBound(areaID, axis, min, max)
}

func (e *Engine) setVisibleRange(areaID string, min, max float64) {
	e.mustKnowArea(areaID)
	e.target.SetAreaVisibleRange(areaID, min, max)
}

func (e *Engine) mustKnowArea(areaID string) {
	if _, ok := e.registry.Area(areaID); !ok {
		ensureNoErr(ErrUnknownArea, "render notification for area %q", areaID)
	}
}

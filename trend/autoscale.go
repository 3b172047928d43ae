package trend

import "math"

// AxisAutoscaler widens the Y bounds of analog areas as values arrive.
// Digital areas keep their fixed lane scale.
type AxisAutoscaler struct {
	registry *Registry

	// values yields every buffered Y value of an area
	values func(areaID string, yield func(float64))

	// OnRescale is called after an area's bounds changed.
	OnRescale func(a *Area)
}

// NewAxisAutoscaler creates a scaler reading buffered values through values.
func NewAxisAutoscaler(registry *Registry, values func(areaID string, yield func(float64))) *AxisAutoscaler {
	return &AxisAutoscaler{registry: registry, values: values}
}

// Observe rescales the area when value reaches or exceeds its current
// maximum. The new bounds cover every value buffered in the area and never
// shrink. Returns true when the bounds were recomputed.
func (s *AxisAutoscaler) Observe(areaID string, value float64) bool {
	a, ok := s.registry.Area(areaID)
	if !ok {
		ensureNoErr(ErrUnknownArea, "autoscale %s", areaID)
	}
	if a.Kind == Digital || value < a.YMax || math.IsNaN(value) {
		return false
	}

	lo, hi := a.YMin, a.YMax
	s.values(areaID, func(v float64) {
		if math.IsNaN(v) {
			return
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	})
	hi = math.Max(hi, value)

	a.YMin, a.YMax = lo, hi
	if s.OnRescale != nil {
		s.OnRescale(a)
	}
	return true
}

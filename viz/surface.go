package viz

import (
	"math"

	"github.com/panyam/trendchart/trend"
)

// Series is the render side copy of one channel.
type Series struct {
	Name   string
	Area   string
	Points []trend.Point
}

// Digital reports whether the series is drawn as bands.
func (s *Series) Digital() bool {
	return len(s.Points) > 0 && s.Points[0].Band
}

// AreaView is the render side state of one display area.
type AreaView struct {
	ID string

	YMin, YMax float64
	HasYBound  bool

	VisibleMin, VisibleMax float64
	HasVisible             bool
}

// Surface is an in-memory render target. It mirrors what the engine pushes
// and is what the chart generators draw from.
type Surface struct {
	areas      map[string]*AreaView
	areaOrder  []string
	series     map[string]*Series
	seriesList []*Series
	redraws    int

	// OnRedraw, if set, is called for every Redraw notification.
	OnRedraw func(s *Surface)
}

var _ trend.RenderTarget = (*Surface)(nil)

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	s := &Surface{}
	s.Clear()
	return s
}

func (s *Surface) area(id string) *AreaView {
	a, ok := s.areas[id]
	if !ok {
		a = &AreaView{ID: id}
		s.areas[id] = a
		s.areaOrder = append(s.areaOrder, id)
	}
	return a
}

// UpsertPoint appends p to the channel, replacing the last point when it has the same X.
func (s *Surface) UpsertPoint(channel, area string, p trend.Point) {
	s.area(area)
	sr, ok := s.series[channel]
	if !ok {
		sr = &Series{Name: channel, Area: area}
		s.series[channel] = sr
		s.seriesList = append(s.seriesList, sr)
	}
	if n := len(sr.Points); n > 0 && sr.Points[n-1].X == p.X {
		sr.Points[n-1] = p
		return
	}
	sr.Points = append(sr.Points, p)
}

func (s *Surface) RemoveOldest(channel string) {
	if sr, ok := s.series[channel]; ok && len(sr.Points) > 0 {
		sr.Points = sr.Points[1:]
	}
}

// SetAreaAxisBound keeps Y bounds only. The X extent comes from the
// visible range or the points themselves.
func (s *Surface) SetAreaAxisBound(areaID string, axis trend.Axis, min, max float64) {
	a := s.area(areaID)
	if axis == trend.AxisY {
		a.YMin, a.YMax, a.HasYBound = min, max, true
	}
}

func (s *Surface) SetAreaVisibleRange(areaID string, min, max float64) {
	a := s.area(areaID)
	a.VisibleMin, a.VisibleMax, a.HasVisible = min, max, true
}

func (s *Surface) Clear() {
	s.areas = make(map[string]*AreaView)
	s.areaOrder = nil
	s.series = make(map[string]*Series)
	s.seriesList = nil
}

func (s *Surface) Redraw() {
	s.redraws++
	if s.OnRedraw != nil {
		s.OnRedraw(s)
	}
}

// Redraws returns how many redraws were requested.
func (s *Surface) Redraws() int {
	return s.redraws
}

// Areas returns the areas in creation order.
func (s *Surface) Areas() []AreaView {
	out := make([]AreaView, 0, len(s.areaOrder))
	for _, id := range s.areaOrder {
		out = append(out, *s.areas[id])
	}
	return out
}

// Area returns one area.
func (s *Surface) Area(id string) (AreaView, bool) {
	a, ok := s.areas[id]
	if !ok {
		return AreaView{}, false
	}
	return *a, true
}

// Series returns one channel's points.
func (s *Surface) Series(name string) (*Series, bool) {
	sr, ok := s.series[name]
	return sr, ok
}

// SeriesIn returns the series drawn in an area, in creation order.
func (s *Surface) SeriesIn(areaID string) (out []*Series) {
	for _, sr := range s.seriesList {
		if sr.Area == areaID {
			out = append(out, sr)
		}
	}
	return
}

// AllSeries returns every series in creation order.
func (s *Surface) AllSeries() []*Series {
	return append([]*Series(nil), s.seriesList...)
}

// XRange is the X extent to draw for an area: the visible range when the
// engine set one, else the extent of the area's points.
func (s *Surface) XRange(areaID string) (min, max float64) {
	if a, ok := s.areas[areaID]; ok && a.HasVisible {
		return a.VisibleMin, a.VisibleMax
	}
	min, max = math.Inf(1), math.Inf(-1)
	for _, sr := range s.SeriesIn(areaID) {
		for _, p := range sr.Points {
			min = math.Min(min, p.X)
			max = math.Max(max, p.X)
		}
	}
	if min > max {
		return 0, 1
	}
	// bands occupy one slot to the right of their ordinal
	return min, max + 1
}

// YRange is the Y extent to draw for an area.
func (s *Surface) YRange(areaID string) (min, max float64) {
	a, ok := s.areas[areaID]
	if ok && a.HasYBound && a.YMax > a.YMin {
		return a.YMin, a.YMax
	}
	min, max = math.Inf(1), math.Inf(-1)
	for _, sr := range s.SeriesIn(areaID) {
		for _, p := range sr.Points {
			if p.Band {
				min, max = math.Min(min, p.Low), math.Max(max, p.High)
			} else {
				min, max = math.Min(min, p.Y), math.Max(max, p.Y)
			}
		}
	}
	if min > max {
		return 0, 1
	}
	if min == max {
		return min - 1, max + 1
	}
	return min, max
}

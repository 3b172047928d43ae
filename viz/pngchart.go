package viz

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/panyam/trendchart/trend"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptySurface is returned by raster renderers when there is nothing to draw.
var ErrEmptySurface = errors.New("surface has no series to draw")

// PNGRenderer rasterizes a Surface with go-chart. Analog series go on the
// primary Y axis as lines, digital lanes on the secondary axis as dots
// colored per sample so that false samples vanish.
type PNGRenderer struct {
	config PlotConfig
}

var _ ChartGenerator = (*PNGRenderer)(nil)

func NewPNGRenderer(config PlotConfig) *PNGRenderer {
	return &PNGRenderer{config: config}
}

func (p *PNGRenderer) ContentType() string {
	return "image/png"
}

func (p *PNGRenderer) Render(w io.Writer, s *Surface) error {
	ch, err := p.Chart(s)
	if err != nil {
		return err
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering png: %w", err)
	}
	return nil
}

// Chart builds the go-chart description of the surface.
func (p *PNGRenderer) Chart(s *Surface) (*chart.Chart, error) {
	all := s.AllSeries()
	if len(all) == 0 {
		return nil, ErrEmptySurface
	}
	cfg := p.config
	ch := &chart.Chart{
		Title:  cfg.Metadata.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: cfg.MarginTop, Left: cfg.MarginLeft, Right: cfg.MarginRight, Bottom: cfg.MarginBottom},
		},
	}

	xmin, xmax := s.XRange(all[0].Area)
	ch.XAxis = chart.XAxis{Name: cfg.Metadata.XLabel, Range: &chart.ContinuousRange{Min: xmin, Max: xmax}}

	analog := newExtent()
	digital := newExtent()
	for _, sr := range all {
		if len(sr.Points) == 0 {
			continue
		}
		ymin, ymax := s.YRange(sr.Area)
		if sr.Digital() {
			digital.add(ymin, ymax)
			ch.Series = append(ch.Series, digitalSeries(sr))
		} else {
			analog.add(ymin, ymax)
			ch.Series = append(ch.Series, analogSeries(sr))
		}
	}
	if len(ch.Series) == 0 {
		return nil, ErrEmptySurface
	}
	if !analog.valid() {
		// the primary axis still needs a finite range
		analog = digital
	}
	if analog.valid() {
		ch.YAxis = chart.YAxis{Range: &chart.ContinuousRange{Min: analog.min, Max: analog.max}}
	}
	if digital.valid() {
		ch.YAxisSecondary = chart.YAxis{Range: &chart.ContinuousRange{Min: digital.min, Max: digital.max}}
	}
	ch.Elements = []chart.Renderable{chart.LegendThin(ch)}
	return ch, nil
}

func analogSeries(sr *Series) chart.ContinuousSeries {
	xs := make([]float64, len(sr.Points))
	ys := make([]float64, len(sr.Points))
	for i, pt := range sr.Points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	return chart.ContinuousSeries{
		Name:    sr.Name,
		Style:   chart.Style{StrokeWidth: 2, StrokeColor: toDrawingColor(trend.Color(seriesColor(sr)))},
		XValues: xs,
		YValues: ys,
	}
}

func digitalSeries(sr *Series) chart.ContinuousSeries {
	points := sr.Points
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, pt := range points {
		xs[i], ys[i] = pt.X, (pt.Low+pt.High)/2
	}
	return chart.ContinuousSeries{
		Name:  sr.Name,
		YAxis: chart.YAxisSecondary,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    3,
			DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
				return toDrawingColor(points[index].Color)
			},
		},
		XValues: xs,
		YValues: ys,
	}
}

func toDrawingColor(c trend.Color) drawing.Color {
	if c == "" || c == trend.Transparent {
		return drawing.ColorTransparent
	}
	return drawing.ColorFromHex(string(c))
}

type extent struct{ min, max float64 }

func newExtent() *extent {
	return &extent{min: math.Inf(1), max: math.Inf(-1)}
}

func (e *extent) add(lo, hi float64) {
	e.min = math.Min(e.min, lo)
	e.max = math.Max(e.max, hi)
}

func (e *extent) valid() bool {
	return e.min < e.max
}

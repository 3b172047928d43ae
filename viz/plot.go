package viz

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"

	"github.com/panyam/trendchart/trend"
)

// PlotMetadata contains chart labels and title.
type PlotMetadata struct {
	XLabel string `json:"xLabel,omitempty"`
	Title  string `json:"title,omitempty"`
}

// PlotConfig holds styling and dimension configuration.
type PlotConfig struct {
	Width        int
	Height       int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	PanelGap     int
	GridColor    string
	TextColor    string
	YAxisMode    YAxisMode // Y-axis scaling mode for analog panels
	Metadata     PlotMetadata
}

// TemplateData contains all data needed for SVG template rendering.
type TemplateData struct {
	Config      PlotConfig
	Metadata    PlotMetadata
	InnerWidth  int
	Panels      []Panel
	LegendItems []LegendItem
}

// Panel is one display area drawn as a horizontal strip.
type Panel struct {
	Index     int
	ID        string
	Top       int
	Height    int
	XTicks    []XTick
	YTicks    []YTick
	GridLines []GridLine
	Paths     []SeriesPath
	Bands     []BandRect
}

// Helper structs for template rendering
type XTick struct {
	X     int
	Label string
}
type YTick struct {
	Y     int
	Label string
}
type GridLine struct{ X1, Y1, X2, Y2 int }
type SeriesPath struct{ ID, Path, Color string }
type BandRect struct {
	Series              string
	X, Y, Width, Height int
	Color               string
}
type LegendItem struct {
	Name, Color string
	Y           int
}

// SVG template with one panel per area and a legend.
const svgTemplate = `<svg width="{{.Config.Width}}" height="{{.Config.Height}}" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <style>
      .axis { font: 12px sans-serif; fill: {{.Config.TextColor}}; }
      .axis path, .axis line { fill: none; stroke: {{.Config.TextColor}}; shape-rendering: crispEdges; }
      .grid-line { stroke: {{.Config.GridColor}}; stroke-width: 0.5px; }
      .title { font: bold 16px sans-serif; text-anchor: middle; fill: {{.Config.TextColor}}; }
      .axis-label { font: 12px sans-serif; text-anchor: middle; fill: {{.Config.TextColor}}; }
      .legend { font: 12px sans-serif; fill: {{.Config.TextColor}}; }
    </style>
    {{range .Panels}}<clipPath id="clip-{{.Index}}"><rect x="0" y="0" width="{{$.InnerWidth}}" height="{{.Height}}"></rect></clipPath>
    {{end}}
  </defs>

  {{if .Metadata.Title}}
  <text class="title" x="{{div .Config.Width 2}}" y="20">{{.Metadata.Title}}</text>
  {{end}}

  {{range .Panels}}
  <g class="panel" id="panel-{{.ID}}" transform="translate({{$.Config.MarginLeft}},{{.Top}})">
    {{range .GridLines}}<line class="grid-line" x1="{{.X1}}" x2="{{.X2}}" y1="{{.Y1}}" y2="{{.Y2}}"></line>{{end}}

    <g class="axis" transform="translate(0,{{.Height}})">
      {{range .XTicks}}<line x1="{{.X}}" x2="{{.X}}" y1="0" y2="6"></line><text x="{{.X}}" y="20" text-anchor="middle">{{.Label}}</text>{{end}}
      <path d="M0,0H{{$.InnerWidth}}"></path>
    </g>

    <g class="axis">
      {{range .YTicks}}<line x1="0" x2="-6" y1="{{.Y}}" y2="{{.Y}}"></line><text x="-10" y="{{add .Y 4}}" text-anchor="end">{{.Label}}</text>{{end}}
      <path d="M0,0V{{.Height}}"></path>
    </g>

    <g clip-path="url(#clip-{{.Index}})">
      {{range .Bands}}<rect class="band" data-series="{{.Series}}" x="{{.X}}" y="{{.Y}}" width="{{.Width}}" height="{{.Height}}" fill="{{.Color}}"></rect>{{end}}
      {{range .Paths}}<path class="series" id="series-{{.ID}}" fill="none" stroke="{{.Color}}" stroke-width="2px" d="{{.Path}}"></path>{{end}}
    </g>
  </g>
  {{end}}

  {{if .Metadata.XLabel}}<text class="axis-label" x="{{add .Config.MarginLeft (div .InnerWidth 2)}}" y="{{add .Config.Height -8}}">{{.Metadata.XLabel}}</text>{{end}}

  <g class="legend" transform="translate({{add (add .Config.MarginLeft .InnerWidth) 10}}, {{.Config.MarginTop}})">
    {{range .LegendItems}}
    <rect x="0" y="{{.Y}}" width="12" height="12" fill="{{.Color}}"></rect>
    <text x="20" y="{{add .Y 10}}">{{.Name}}</text>
    {{end}}
  </g>
</svg>`

// legendFallbackColor is used for series that never had a visible point.
const legendFallbackColor = "#9ca3af"

// SVGPlotter renders a Surface as an SVG document.
type SVGPlotter struct {
	config   PlotConfig
	template *template.Template
}

var _ ChartGenerator = (*SVGPlotter)(nil)

func NewSVGPlotter(config PlotConfig) *SVGPlotter {
	tmpl := template.Must(template.New("svg").Funcs(template.FuncMap{
		"div": func(a, b int) int { return a / b },
		"add": func(a, b int) int { return a + b },
	}).Parse(svgTemplate))
	return &SVGPlotter{config: config, template: tmpl}
}

// DefaultPlotConfig returns sensible defaults.
func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		Width: 960, Height: 540, MarginTop: 40, MarginRight: 140,
		MarginBottom: 40, MarginLeft: 70, PanelGap: 36,
		GridColor: "#e5e7eb", TextColor: "#000000",
		YAxisMode: YAxisAuto,
	}
}

func (p *SVGPlotter) ContentType() string {
	return "image/svg+xml"
}

// Render writes the SVG document for the current surface state.
func (p *SVGPlotter) Render(w io.Writer, s *Surface) error {
	out, err := p.Generate(s)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Generate creates an SVG string from the surface.
func (p *SVGPlotter) Generate(s *Surface) (string, error) {
	cfg := p.config
	innerWidth := cfg.Width - cfg.MarginLeft - cfg.MarginRight
	areas := s.Areas()

	data := TemplateData{Config: cfg, Metadata: cfg.Metadata, InnerWidth: innerWidth}
	if n := len(areas); n > 0 {
		usable := cfg.Height - cfg.MarginTop - cfg.MarginBottom - cfg.PanelGap*(n-1)
		panelHeight := max(usable/n, 20)
		for i, a := range areas {
			top := cfg.MarginTop + i*(panelHeight+cfg.PanelGap)
			data.Panels = append(data.Panels, p.buildPanel(s, a, i, top, innerWidth, panelHeight))
		}
	}
	for i, sr := range s.AllSeries() {
		data.LegendItems = append(data.LegendItems, LegendItem{Name: sr.Name, Color: seriesColor(sr), Y: i * 20})
	}

	var result strings.Builder
	if err := p.template.Execute(&result, data); err != nil {
		return "", fmt.Errorf("rendering svg: %w", err)
	}
	return "<?xml version=\"1.0\" encoding=\"UTF-8\"?>" + result.String(), nil
}

func (p *SVGPlotter) buildPanel(s *Surface, a AreaView, index, top, width, height int) Panel {
	panel := Panel{Index: index, ID: SeriesID(a.ID), Top: top, Height: height}
	series := s.SeriesIn(a.ID)

	xmin, xmax := s.XRange(a.ID)
	ymin, ymax := s.YRange(a.ID)
	digital := len(series) > 0 && series[0].Digital()
	if !digital && p.config.YAxisMode != YAxisTight {
		extent := p.adjustValueExtent([2]float64{ymin, ymax}, p.config.YAxisMode)
		ymin, ymax = extent[0], extent[1]
	}
	xs := linearScale{domain: [2]float64{xmin, xmax}, rangeV: [2]int{0, width}}
	ys := linearScale{domain: [2]float64{ymin, ymax}, rangeV: [2]int{height, 0}}

	panel.XTicks = p.generateXTicks(xs, series)
	if digital {
		panel.YTicks = laneTicks(ys, series)
	} else {
		panel.YTicks = p.generateYTicks(ys)
		panel.GridLines = p.generateGridLines(ys, width)
	}

	for _, sr := range series {
		if sr.Digital() {
			panel.Bands = append(panel.Bands, bandRects(sr, xs, ys, xmin, xmax)...)
			continue
		}
		if path := generateLinePath(sr.Points, xs, ys); path != "" {
			panel.Paths = append(panel.Paths, SeriesPath{ID: SeriesID(sr.Name), Path: path, Color: seriesColor(sr)})
		}
	}
	return panel
}

// seriesColor is the color of the first visible point.
func seriesColor(sr *Series) string {
	for _, pt := range sr.Points {
		if pt.Color != trend.Transparent && pt.Color != "" {
			return string(pt.Color)
		}
	}
	return legendFallbackColor
}

// --- Helper methods for SVG generation ---

type linearScale struct {
	domain [2]float64
	rangeV [2]int
}

func (ls linearScale) scale(v float64) int {
	d := ls.domain[1] - ls.domain[0]
	if d == 0 {
		return ls.rangeV[0]
	}
	r := (v - ls.domain[0]) / d
	return ls.rangeV[0] + int(math.Round(r*float64(ls.rangeV[1]-ls.rangeV[0])))
}

func generateLinePath(data []trend.Point, xs, ys linearScale) string {
	if len(data) < 2 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M")
	for i, pt := range data {
		x, y := xs.scale(pt.X), ys.scale(pt.Y)
		if i == 0 {
			fmt.Fprintf(&b, "%d,%d", x, y)
		} else {
			fmt.Fprintf(&b, " L%d,%d", x, y)
		}
	}
	return b.String()
}

// bandRects draws the visible (colored) bands of a digital series. Each band
// spans from its ordinal to the next one.
func bandRects(sr *Series, xs, ys linearScale, xmin, xmax float64) (out []BandRect) {
	for _, pt := range sr.Points {
		if pt.Color == trend.Transparent || pt.X+1 < xmin || pt.X > xmax {
			continue
		}
		x0, x1 := xs.scale(pt.X), xs.scale(pt.X+1)
		y0, y1 := ys.scale(pt.High), ys.scale(pt.Low)
		out = append(out, BandRect{
			Series: sr.Name,
			X:      x0, Y: y0,
			Width:  max(x1-x0, 1),
			Height: max(y1-y0, 1),
			Color:  string(pt.Color),
		})
	}
	return
}

func (p *SVGPlotter) generateXTicks(xs linearScale, series []*Series) []XTick {
	var ticks []XTick
	for _, tick := range p.generateValueTicks(xs.domain[0], xs.domain[1], 8) {
		ticks = append(ticks, XTick{X: xs.scale(tick), Label: timeLabelAt(series, tick, p)})
	}
	return ticks
}

// timeLabelAt returns the time label of the sample at ordinal x, falling
// back to the ordinal itself.
func timeLabelAt(series []*Series, x float64, p *SVGPlotter) string {
	if x == math.Trunc(x) {
		for _, sr := range series {
			for _, pt := range sr.Points {
				if pt.X == x && pt.Time != "" {
					return pt.Time
				}
			}
		}
	}
	return p.formatValue(x, 0)
}

func (p *SVGPlotter) generateYTicks(ys linearScale) []YTick {
	var ticks []YTick
	valTicks := p.generateValueTicks(ys.domain[0], ys.domain[1], 6)
	prec := p.calculateOptimalPrecision(valTicks)
	for _, tick := range valTicks {
		ticks = append(ticks, YTick{Y: ys.scale(tick), Label: p.formatValue(tick, prec)})
	}
	return ticks
}

// laneTicks labels each digital lane with its channel name.
func laneTicks(ys linearScale, series []*Series) (ticks []YTick) {
	for _, sr := range series {
		if len(sr.Points) == 0 {
			continue
		}
		pt := sr.Points[0]
		ticks = append(ticks, YTick{Y: ys.scale((pt.Low + pt.High) / 2), Label: sr.Name})
	}
	return
}

func (p *SVGPlotter) generateGridLines(ys linearScale, w int) []GridLine {
	var lines []GridLine
	for _, tick := range p.generateValueTicks(ys.domain[0], ys.domain[1], 6) {
		y := ys.scale(tick)
		lines = append(lines, GridLine{0, y, w, y})
	}
	return lines
}

// --- Value formatting and scaling helpers ---

type YAxisMode int

const (
	YAxisAuto YAxisMode = iota
	YAxisZeroBased
	YAxisTight
)

func (p *SVGPlotter) adjustValueExtent(extent [2]float64, mode YAxisMode) [2]float64 {
	min, max := extent[0], extent[1]
	if min == max {
		if min == 0 {
			return [2]float64{-1, 1}
		}
		padding := math.Abs(min) * 0.1
		return [2]float64{min - padding, max + padding}
	}
	if mode == YAxisZeroBased {
		if min > 0 {
			min = 0
		}
		if max < 0 {
			max = 0
		}
	}
	padding := (max - min) * 0.05
	return [2]float64{min - padding, max + padding}
}

func (p *SVGPlotter) generateValueTicks(min, max float64, maxTicks int) []float64 {
	if min >= max {
		return []float64{min}
	}
	rawStep := (max - min) / float64(maxTicks-1)
	magnitude := math.Pow(10, math.Floor(math.Log10(rawStep)))
	var step float64
	switch normalizedStep := rawStep / magnitude; {
	case normalizedStep <= 1:
		step = magnitude
	case normalizedStep <= 2:
		step = 2 * magnitude
	case normalizedStep <= 5:
		step = 5 * magnitude
	default:
		step = 10 * magnitude
	}
	start := math.Floor(min/step) * step
	var ticks []float64
	for tick := start; tick <= max+step/2; tick += step {
		if tick >= min-step/2 {
			ticks = append(ticks, tick)
		}
	}
	return ticks
}

func (p *SVGPlotter) calculateOptimalPrecision(values []float64) int {
	if len(values) <= 1 {
		return 1
	}
	minDiff := math.Inf(1)
	for i := 1; i < len(values); i++ {
		if diff := math.Abs(values[i] - values[i-1]); diff > 0 && diff < minDiff {
			minDiff = diff
		}
	}
	if minDiff > 0 && !math.IsInf(minDiff, 0) {
		precision := int(math.Max(0, -math.Floor(math.Log10(minDiff)))) + 1
		if precision > 8 {
			return 8
		}
		return precision
	}
	return 2
}

func (p *SVGPlotter) formatValue(value float64, precision int) string {
	formatted := fmt.Sprintf("%.*f", precision, value)
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(strings.TrimRight(formatted, "0"), ".")
	}
	if formatted == "" || formatted == "-" || formatted == "-0" {
		return "0"
	}
	return formatted
}

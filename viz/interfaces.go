// Package viz provides render targets and chart generators for trend data.
package viz

import (
	"io"
	"path/filepath"
	"strings"
)

// --- Interfaces for Generators ---

// ChartGenerator draws a snapshot of a Surface.
type ChartGenerator interface {
	Render(w io.Writer, s *Surface) error

	// ContentType is the MIME type of the rendered output.
	ContentType() string
}

// GeneratorForFile picks a generator from an output file extension.
// ".png" selects the PNG renderer, anything else SVG.
func GeneratorForFile(path string, config PlotConfig) ChartGenerator {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return NewPNGRenderer(config)
	}
	return NewSVGPlotter(config)
}

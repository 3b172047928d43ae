package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/panyam/trendchart/feeds"
	"github.com/panyam/trendchart/logging"
	"github.com/panyam/trendchart/trend"
	"github.com/panyam/trendchart/viz"
)

// importFiles loads recorded feeds and imports them. A window of zero means
// the engine's capacity.
func importFiles(ctx context.Context, engine *trend.Engine, paths []string, window int) (*trend.ImportReport, error) {
	sources, err := feeds.LoadFiles(ctx, paths...)
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		window = engine.Config().WindowCapacity
	}
	return engine.Import(ctx, sources, window)
}

// ingest feeds one live sample to the engine.
func ingest(engine *trend.Engine, s feeds.LiveSample, keepAll bool) error {
	var opts []trend.SampleOption
	if keepAll {
		opts = append(opts, trend.WithoutEviction())
	}
	if s.Dedicated {
		opts = append(opts, trend.WithDedicatedArea())
	}
	_, err := engine.AddSample(s.Name, s.Value, s.Time, opts...)
	return err
}

func writeChart(path string, s *viz.Surface) error {
	gen := viz.GeneratorForFile(path, plotConfig())
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gen.Render(f, s); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	logging.Debug("wrote %s", path)
	return f.Close()
}

func printReport(w io.Writer, r *trend.ImportReport) {
	color.New(color.Bold).Fprintf(w, "Imported %d channel(s), window %d\n", len(r.Channels), r.WindowSize)
	for _, ch := range r.Channels {
		fmt.Fprintf(w, "  %-20s %6d samples  stride %-4d kept %s\n",
			color.CyanString(ch.Name), ch.Merged, ch.Stride, color.GreenString("%d", ch.Kept))
	}
}

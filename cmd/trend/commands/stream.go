package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/panyam/trendchart/feeds"
	"github.com/spf13/cobra"
)

func streamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Ingest a live NDJSON feed and render the rolling chart",
		Long: `Reads samples from stdin (or --input) one JSON object per line and feeds them
to the engine as they arrive. The chart is written when the input ends, on
interrupt, and every --every samples when set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			input, _ := cmd.Flags().GetString("input")
			every, _ := cmd.Flags().GetInt("every")
			keepAll, _ := cmd.Flags().GetBool("keep-all")

			r := cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			engine, surface, err := newEngine()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			count := 0
			err = feeds.NewLiveDecoder(r).Stream(ctx, func(s feeds.LiveSample) error {
				if err := ingest(engine, s, keepAll); err != nil {
					return err
				}
				count++
				if every > 0 && count%every == 0 {
					return writeChart(output, surface)
				}
				return nil
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			if err := writeChart(output, surface); err != nil {
				return err
			}
			printStreamSummary(cmd.OutOrStdout(), count, len(engine.Registry().Channels()), output)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "trend.svg", "Output file (.svg or .png)")
	cmd.Flags().StringP("input", "i", "", "NDJSON input file (default: stdin)")
	cmd.Flags().Int("every", 0, "Rewrite the chart every N samples")
	cmd.Flags().Bool("keep-all", false, "Never evict samples (the window grows without bound)")
	return cmd
}

func printStreamSummary(w io.Writer, samples, channels int, output string) {
	fmt.Fprintf(w, "%s %d sample(s) on %d channel(s) -> %s\n", color.GreenString("streamed"), samples, channels, output)
}

func init() {
	AddCommand(streamCmd())
}

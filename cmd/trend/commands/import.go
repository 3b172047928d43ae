package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>...",
		Short: "Import recorded feeds and render them as one chart",
		Long: `Merges the channels of every file in argument order, decimates each channel
to about --window samples and draws the result. The output format follows the
file extension: .png renders a raster image, anything else SVG.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			window, _ := cmd.Flags().GetInt("window")

			engine, surface, err := newEngine()
			if err != nil {
				return err
			}
			report, err := importFiles(cmd.Context(), engine, args, window)
			if err != nil {
				return err
			}
			// history is browsable once it is loaded
			engine.SetMoveEnabled(true)

			printReport(cmd.OutOrStdout(), report)
			if err := writeChart(output, surface); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("wrote"), output)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "trend.svg", "Output file (.svg or .png)")
	cmd.Flags().IntP("window", "w", 0, "Approximate samples kept per channel (default: capacity)")
	return cmd
}

func init() {
	AddCommand(importCmd())
}

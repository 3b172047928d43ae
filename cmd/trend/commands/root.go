package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/panyam/trendchart/logging"
	"github.com/panyam/trendchart/trend"
	"github.com/panyam/trendchart/viz"
	"github.com/spf13/cobra"
)

var (
	envFile  string
	logLevel string
	capacity int

	chartTitle  string
	chartWidth  int
	chartHeight int
)

var rootCmd = &cobra.Command{
	Use:   "trend",
	Short: "Trend renders rolling charts of analog and digital channels",
	Long: `Trend keeps a bounded window of samples per channel and draws them as a
trend chart: numeric channels as lines with an auto-scaling Y axis, boolean
channels as colored lanes in a shared digital area.

Recorded feeds are JSON documents mapping channel names to sample arrays:

  {"temp": [{"Value": 21.5, "Time": "10:00:00"}], "door": [{"Value": true, "Time": "10:00:00"}]}

Live feeds are newline delimited JSON samples:

  {"name": "temp", "value": 21.5, "time": "10:00:00"}`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Environment file to load when present")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "DEBUG, INFO, WARN, ERROR or OFF (default: "+logging.EnvLogLevel+" or INFO)")
	rootCmd.PersistentFlags().IntVarP(&capacity, "capacity", "c", 0, "Samples kept per channel (default: "+trend.EnvWindowCapacity+" or 1000)")

	rootCmd.PersistentFlags().StringVar(&chartTitle, "title", "", "Chart title")
	rootCmd.PersistentFlags().IntVar(&chartWidth, "width", 0, "Chart width in pixels")
	rootCmd.PersistentFlags().IntVar(&chartHeight, "height", 0, "Chart height in pixels")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// setup loads the env file and applies the log level. A missing env file is fine.
func setup() error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}
	level := logLevel
	if level == "" {
		level = os.Getenv(logging.EnvLogLevel)
	}
	if level != "" {
		l, err := logging.ParseLogLevel(level)
		if err != nil {
			return err
		}
		logging.SetLogLevel(l)
	}
	return nil
}

// engineConfig is the environment configuration with flag overrides applied.
func engineConfig() (trend.Config, error) {
	cfg, err := trend.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	if rootCmd.PersistentFlags().Changed("capacity") {
		cfg.WindowCapacity = capacity
	}
	return cfg, cfg.Validate()
}

// newEngine builds an engine drawing on a fresh surface.
func newEngine() (*trend.Engine, *viz.Surface, error) {
	cfg, err := engineConfig()
	if err != nil {
		return nil, nil, err
	}
	surface := viz.NewSurface()
	engine, err := trend.NewEngine(cfg, surface)
	if err != nil {
		return nil, nil, err
	}
	return engine, surface, nil
}

func plotConfig() viz.PlotConfig {
	cfg := viz.DefaultPlotConfig()
	cfg.Metadata.Title = chartTitle
	cfg.Metadata.XLabel = "Time"
	if chartWidth > 0 {
		cfg.Width = chartWidth
	}
	if chartHeight > 0 {
		cfg.Height = chartHeight
	}
	return cfg
}

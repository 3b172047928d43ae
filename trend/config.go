package trend

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables understood by ConfigFromEnv.
const (
	EnvWindowCapacity        = "TREND_WINDOW_CAPACITY"
	EnvDigitalLaneScale      = "TREND_DIGITAL_LANE_SCALE"
	EnvDigitalBandSizeOffset = "TREND_DIGITAL_BAND_OFFSET"
	EnvAnalogAxisMax         = "TREND_ANALOG_AXIS_MAX"
)

// DefaultPalette is assigned to channels round robin in creation order.
var DefaultPalette = []Color{"#3b82f6", "#ef4444", "#10b981", "#f97316", "#8b5cf6", "#ec4899"}

// Config holds the engine settings.
type Config struct {
	// Number of samples kept per channel
	WindowCapacity int

	// Height of the shared digital area, in lanes
	DigitalLaneScale float64

	// How much shorter than a full lane a digital band is
	DigitalBandSizeOffset float64

	// Initial (and reset) Y maximum of analog areas
	AnalogAxisMax float64

	Palette []Color

	// Whether pan/zoom input is honored. Owned by the host.
	MoveEnabled bool
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		WindowCapacity:        1000,
		DigitalLaneScale:      25,
		DigitalBandSizeOffset: 0.3,
		AnalogAxisMax:         0,
		Palette:               append([]Color(nil), DefaultPalette...),
	}
}

// Validate rejects settings that cannot describe a window.
func (c Config) Validate() error {
	if c.WindowCapacity <= 0 {
		return fmt.Errorf("window capacity must be positive, got %d: %w", c.WindowCapacity, ErrCapacityMisconfiguration)
	}
	if c.DigitalLaneScale <= 0 {
		return fmt.Errorf("digital lane scale must be positive, got %g: %w", c.DigitalLaneScale, ErrCapacityMisconfiguration)
	}
	if c.DigitalBandSizeOffset < 0 || c.DigitalBandSizeOffset > 1 {
		return fmt.Errorf("digital band offset must be within [0, 1], got %g: %w", c.DigitalBandSizeOffset, ErrCapacityMisconfiguration)
	}
	return nil
}

// ConfigFromEnv overlays TREND_* environment variables on the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvWindowCapacity); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvWindowCapacity, v, err)
		}
		cfg.WindowCapacity = n
	}
	floats := []struct {
		env string
		dst *float64
	}{
		{EnvDigitalLaneScale, &cfg.DigitalLaneScale},
		{EnvDigitalBandSizeOffset, &cfg.DigitalBandSizeOffset},
		{EnvAnalogAxisMax, &cfg.AnalogAxisMax},
	}
	for _, f := range floats {
		v := os.Getenv(f.env)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", f.env, v, err)
		}
		*f.dst = parsed
	}
	return cfg, cfg.Validate()
}

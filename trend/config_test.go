package trend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1000, cfg.WindowCapacity)
	assert.Equal(t, 25.0, cfg.DigitalLaneScale)
	assert.Equal(t, 0.3, cfg.DigitalBandSizeOffset)
	assert.False(t, cfg.MoveEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero capacity", func(c *Config) { c.WindowCapacity = 0 }},
		{"negative capacity", func(c *Config) { c.WindowCapacity = -5 }},
		{"zero lane scale", func(c *Config) { c.DigitalLaneScale = 0 }},
		{"offset above one", func(c *Config) { c.DigitalBandSizeOffset = 1.5 }},
		{"negative offset", func(c *Config) { c.DigitalBandSizeOffset = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCapacityMisconfiguration))

			_, err = NewEngine(cfg, nil)
			assert.ErrorIs(t, err, ErrCapacityMisconfiguration)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvWindowCapacity, "250")
	t.Setenv(EnvDigitalLaneScale, "10")
	t.Setenv(EnvDigitalBandSizeOffset, "0.5")
	t.Setenv(EnvAnalogAxisMax, "100")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.WindowCapacity)
	assert.Equal(t, 10.0, cfg.DigitalLaneScale)
	assert.Equal(t, 0.5, cfg.DigitalBandSizeOffset)
	assert.Equal(t, 100.0, cfg.AnalogAxisMax)
}

func TestConfigFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv(EnvWindowCapacity, "lots")
	_, err := ConfigFromEnv()
	assert.Error(t, err)

	t.Setenv(EnvWindowCapacity, "0")
	_, err = ConfigFromEnv()
	assert.ErrorIs(t, err, ErrCapacityMisconfiguration)

	t.Setenv(EnvWindowCapacity, "")
	t.Setenv(EnvDigitalBandSizeOffset, "thin")
	_, err = ConfigFromEnv()
	assert.Error(t, err)
}

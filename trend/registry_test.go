package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryClassifiesOnFirstSample(t *testing.T) {
	r := NewRegistry(DefaultConfig())

	d1, err := r.Resolve("D1", Boolean(true), false)
	require.NoError(t, err)
	assert.Equal(t, Digital, d1.Kind)
	assert.Equal(t, 0, d1.Lane)
	assert.Equal(t, DigitalAreaID, d1.Area)

	a1, err := r.Resolve("A1", Number(3), false)
	require.NoError(t, err)
	assert.Equal(t, Analog, a1.Kind)
	assert.Equal(t, AnalogAreaID, a1.Area)

	d2, err := r.Resolve("D2", Boolean(false), false)
	require.NoError(t, err)
	assert.Equal(t, 1, d2.Lane)
	assert.Equal(t, DigitalAreaID, d2.Area)

	assert.Equal(t, []string{"D1", "A1", "D2"}, r.Names())
	assert.Equal(t, 2, r.DigitalCount())
	assert.Len(t, r.Areas(), 2)
}

func TestRegistryKindIsStable(t *testing.T) {
	r := NewRegistry(DefaultConfig())
	first, err := r.Resolve("X", Number(1), false)
	require.NoError(t, err)

	for _, v := range []Value{Boolean(true), Boolean(false), Number(-4), Null} {
		ch, err := r.Resolve("X", v, true)
		require.NoError(t, err)
		assert.Same(t, first, ch)
		assert.Equal(t, Analog, ch.Kind)
		assert.Equal(t, AnalogAreaID, ch.Area, "dedicated area request is ignored for known channels")
	}

	dig, err := r.Resolve("Y", Boolean(true), false)
	require.NoError(t, err)
	again, err := r.Resolve("Y", Number(7), false)
	require.NoError(t, err)
	assert.Equal(t, Digital, again.Kind)
	assert.Same(t, dig, again)
}

func TestRegistryRejectsNullOnFirstSight(t *testing.T) {
	r := NewRegistry(DefaultConfig())
	_, err := r.Resolve("ghost", Null, false)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, ok := r.Channel("ghost")
	assert.False(t, ok)
	assert.Empty(t, r.Areas())
}

func TestRegistryDedicatedAreas(t *testing.T) {
	r := NewRegistry(DefaultConfig())
	var created []string
	r.OnAreaCreated = func(a *Area) { created = append(created, a.ID) }

	p, err := r.Resolve("pressure", Number(1), true)
	require.NoError(t, err)
	assert.Equal(t, DedicatedAreaPrefix+"pressure", p.Area)

	_, err = r.Resolve("temp", Number(1), false)
	require.NoError(t, err)
	_, err = r.Resolve("flow", Number(1), false)
	require.NoError(t, err)
	_, err = r.Resolve("valve", Boolean(true), false)
	require.NoError(t, err)
	_, err = r.Resolve("pump", Boolean(true), false)
	require.NoError(t, err)

	assert.Equal(t, []string{DedicatedAreaPrefix + "pressure", AnalogAreaID, DigitalAreaID}, created)

	area, ok := r.Area(DedicatedAreaPrefix + "pressure")
	require.True(t, ok)
	assert.True(t, area.Dedicated)
	assert.Len(t, r.ChannelsInArea(AnalogAreaID), 2)
	assert.Len(t, r.ChannelsInArea(DigitalAreaID), 2)
}

func TestRegistryAreaDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AnalogAxisMax = 50
	r := NewRegistry(cfg)
	_, _ = r.Resolve("d", Boolean(true), false)
	_, _ = r.Resolve("a", Number(1), false)

	d, _ := r.Area(DigitalAreaID)
	assert.Equal(t, 25.0, d.YMax)
	assert.Equal(t, Digital, d.Kind)
	a, _ := r.Area(AnalogAreaID)
	assert.Equal(t, 50.0, a.YMax)
	assert.Equal(t, 0.0, a.YMin)
}

func TestRegistryPaletteRoundRobin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Palette = []Color{"#111111", "#222222"}
	r := NewRegistry(cfg)

	var colors []Color
	for _, name := range []string{"a", "b", "c"} {
		ch, err := r.Resolve(name, Number(1), false)
		require.NoError(t, err)
		colors = append(colors, ch.Color)
	}
	assert.Equal(t, []Color{"#111111", "#222222", "#111111"}, colors)
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry(DefaultConfig())
	_, _ = r.Resolve("d1", Boolean(true), false)
	_, _ = r.Resolve("d2", Boolean(true), false)
	r.Reset()

	assert.Empty(t, r.Channels())
	assert.Empty(t, r.Areas())
	d, err := r.Resolve("d3", Boolean(true), false)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Lane, "lanes restart after reset")
	assert.Equal(t, DefaultPalette[0], d.Color)
}

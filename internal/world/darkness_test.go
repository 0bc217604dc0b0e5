package world

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightwarden/darkhunt/internal/config"
)

func testField() *Field {
	return NewField(config.DarknessConfig{DefaultRadius: 4, DefaultDecayPerSecond: 0.8}, nil)
}

func TestSampleDarknessScenario(t *testing.T) {
	f := testField()
	f.AddZone(ZoneConfig{ID: "hall", Center: Pt(0, 0, 0), Radius: 4, Darkness: 1})

	assert.InDelta(t, 0.5, f.SampleDarkness(Pt(2, 0, 0)), 1e-9)
	assert.Equal(t, 0.0, f.SampleDarkness(Pt(5, 0, 0)))
	assert.InDelta(t, 1.0, f.SampleDarkness(Pt(0, 0, 0)), 1e-9)
}

func TestSampleDarknessNoZonesIsDark(t *testing.T) {
	assert.Equal(t, 1.0, testField().SampleDarkness(Pt(10, 0, -3)))
}

func TestSampleDarknessMaxOverZones(t *testing.T) {
	f := testField()
	f.AddZone(ZoneConfig{ID: "a", Center: Pt(0, 0, 0), Radius: 4, Darkness: 0.4})
	f.AddZone(ZoneConfig{ID: "b", Center: Pt(1, 0, 0), Radius: 4, Darkness: 1})

	p := Pt(1, 0, 0)
	assert.InDelta(t, 1.0, f.SampleDarkness(p), 1e-9, "zones do not add, the darkest sample wins")
}

func TestSampleDarknessBoundedAndMonotonic(t *testing.T) {
	f := testField()
	f.AddZone(ZoneConfig{ID: "z", Center: Pt(3, 0, 3), Radius: 6, Darkness: 0.9})
	f.InjectLight("z", 0.3, 0.1)
	f.Advance(0)

	prev := 2.0
	for d := 0.0; d <= 8; d += 0.25 {
		v := f.SampleDarkness(Pt(3+d, 0, 3))
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		assert.LessOrEqual(t, v, prev, "darkness must not increase with distance (d=%v)", d)
		prev = v
	}
}

func TestInjectLightTakesEffectNextAdvance(t *testing.T) {
	f := testField()
	f.AddZone(ZoneConfig{ID: "z", Center: Pt(0, 0, 0), Radius: 4, Darkness: 1})
	center := Pt(0, 0, 0)
	before := f.SampleDarkness(center)

	require.True(t, f.InjectLight("z", 1, 0.5))
	assert.LessOrEqual(t, f.SampleDarkness(center), before)
	assert.Equal(t, before, f.SampleDarkness(center), "queued injection must not change this tick's reads")
	assert.Equal(t, 1, f.PendingInjections())

	f.Advance(20 * time.Millisecond)
	assert.InDelta(t, 0.0, f.SampleDarkness(center), 1e-9)
	assert.Zero(t, f.PendingInjections())
}

func TestInjectLightDecaysBackToBase(t *testing.T) {
	f := testField()
	z := f.AddZone(ZoneConfig{ID: "z", Center: Pt(0, 0, 0), Radius: 4, Darkness: 1})
	center := Pt(0, 0, 0)
	before := f.SampleDarkness(center)

	f.InjectLight("z", 1, 0.5)
	f.Advance(0) // commit

	// strength / decay = 2s
	for i := 0; i < 100; i++ {
		f.Advance(20 * time.Millisecond)
	}
	assert.InDelta(t, 0, z.Light(), 1e-9)
	assert.InDelta(t, before, f.SampleDarkness(center), 1e-9)

	// further sampling without injection is stable
	f.Advance(time.Second)
	assert.InDelta(t, before, f.SampleDarkness(center), 1e-9)
}

func TestRepeatedInjectionsDoNotDoubleDecay(t *testing.T) {
	f := testField()
	z := f.AddZone(ZoneConfig{ID: "z", Center: Pt(0, 0, 0), Radius: 4, Darkness: 1})

	f.InjectLight("z", 1, 0.5)
	f.Advance(0)
	f.Advance(time.Second)
	assert.InDelta(t, 0.5, z.Light(), 1e-9)

	// re-raise while decaying, several times in the same tick
	f.InjectLight("z", 0.8, 0.5)
	f.InjectLight("z", 0.8, 0.5)
	f.InjectLight("z", 0.8, 0.5)
	f.Advance(0)
	assert.InDelta(t, 0.8, z.Light(), 1e-9)

	f.Advance(time.Second)
	assert.InDelta(t, 0.3, z.Light(), 1e-9, "decay applies once per unit time regardless of injection count")
}

func TestWeakerInjectionKeepsPeakAndRate(t *testing.T) {
	f := testField()
	z := f.AddZone(ZoneConfig{ID: "z", Center: Pt(0, 0, 0), Radius: 4, Darkness: 1})

	f.InjectLight("z", 0.9, 0.1)
	f.Advance(0)
	f.InjectLight("z", 0.2, 5)
	f.Advance(0)
	assert.InDelta(t, 0.9, z.Light(), 1e-9)

	f.Advance(time.Second)
	assert.InDelta(t, 0.8, z.Light(), 1e-9)
}

func TestInjectLightClampsStrength(t *testing.T) {
	f := testField()
	z := f.AddZone(ZoneConfig{ID: "z", Center: Pt(0, 0, 0), Radius: 4, Darkness: 1})
	f.InjectLight("z", 7, 1)
	f.Advance(0)
	assert.Equal(t, 1.0, z.Light())

	assert.False(t, f.InjectLight("missing", 1, 1))
}

func TestInjectLightAtPaintsZonesInRadius(t *testing.T) {
	f := testField()
	near := f.AddZone(ZoneConfig{ID: "near", Center: Pt(1, 0, 0), Radius: 4, Darkness: 1})
	far := f.AddZone(ZoneConfig{ID: "far", Center: Pt(20, 0, 0), Radius: 4, Darkness: 1})

	assert.Equal(t, 1, f.InjectLightAt(Pt(0, 0, 0), 4, 1, 0.8))
	f.Advance(0)
	assert.Equal(t, 1.0, near.Light())
	assert.Equal(t, 0.0, far.Light())
}

func TestAddZoneClampsInvalidConfiguration(t *testing.T) {
	f := testField()
	z := f.AddZone(ZoneConfig{ID: "bad", Center: Pt(0, 0, 0), Radius: 0, Darkness: 1.7})
	assert.Equal(t, 4.0, z.Radius())
	assert.Equal(t, 1.0, z.Darkness())

	_, err := ValidateZone(ZoneConfig{ID: "neg", Radius: -2, Darkness: -0.5}, config.DarknessConfig{DefaultRadius: 3})
	assert.ErrorIs(t, err, ErrInvalidZoneConfiguration)

	fixed, err := ValidateZone(ZoneConfig{ID: "ok", Radius: 2, Darkness: 0.5}, config.DarknessConfig{DefaultRadius: 3})
	assert.NoError(t, err)
	assert.Equal(t, 2.0, fixed.Radius)
}

func TestNearestZone(t *testing.T) {
	f := testField()
	_, ok := f.NearestZone(Pt(0, 0, 0))
	assert.False(t, ok)

	f.AddZone(ZoneConfig{ID: "a", Center: Pt(10, 0, 0), Radius: 4, Darkness: 1})
	f.AddZone(ZoneConfig{ID: "b", Center: Pt(-2, 0, 0), Radius: 4, Darkness: 1})
	z, ok := f.NearestZone(Pt(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, "b", z.ID())
}

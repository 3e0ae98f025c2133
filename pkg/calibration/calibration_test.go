package calibration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	l := Default()

	assert.Equal(t, "default", l.Name)
	assert.Equal(t, Interval{Min: 0.1, Max: 7.5}, l.Atrial.Amplitude)
	assert.Equal(t, Interval{Min: 0.05, Max: 1.9}, l.Ventricular.Width)
	assert.Equal(t, Interval{Min: 30, Max: 120}, l.LRL)
	assert.Equal(t, Interval{Min: 150, Max: 500}, l.VRP)

	for _, f := range param.Fields() {
		_, ok := l.For(f)
		assert.True(t, ok, f)
	}
	_, ok := l.For("unknown")
	assert.False(t, ok)
}

func TestIntervalContains(t *testing.T) {
	iv := Interval{Min: 0.1, Max: 7.5}

	assert.True(t, iv.Contains(0.1))
	assert.True(t, iv.Contains(7.5))
	assert.False(t, iv.Contains(0.0999))
	assert.False(t, iv.Contains(7.5001))
	assert.Equal(t, "[0.1, 7.5]", iv.String())
}

func TestParseRejectsInvalidLimits(t *testing.T) {
	valid := Default()

	tests := []struct {
		name   string
		mutate func(*Limits)
	}{
		{"min above max", func(l *Limits) { l.Atrial.Width = Interval{Min: 2, Max: 1} }},
		{"negative", func(l *Limits) { l.Ventricular.Amplitude.Min = -1 }},
		{"fractional lrl", func(l *Limits) { l.LRL.Max = 120.5 }},
		{"fractional vrp", func(l *Limits) { l.VRP.Min = 150.5 }},
		{"zero lrl minimum", func(l *Limits) { l.LRL.Min = 0 }},
		{"zero amplitude minimum", func(l *Limits) { l.Atrial.Amplitude.Min = 0 }},
		{"vrp above uint32", func(l *Limits) { l.VRP.Max = 1 << 33 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			tt.mutate(&l)
			assert.ErrorIs(t, l.Validate(), ErrInvalidCalibration)
		})
	}

	_, err := Parse([]byte("atrial: [1, 2"))
	assert.Error(t, err)

	_, err = Parse([]byte(".inf"))
	assert.Error(t, err)
}

const siteManifest = `
name: site
atrial:
  amplitude: {min: 0.1, max: 7.5}
  width: {min: 0.05, max: 1.9}
ventricular:
  amplitude: {min: 0.1, max: 7.5}
  width: {min: 0.05, max: 1.9}
lrl: {min: 30, max: 120}
vrp: {min: 150, max: 500}
`

func TestParseStrict(t *testing.T) {
	l, err := Parse([]byte(siteManifest))
	require.NoError(t, err)
	assert.Equal(t, Default().Atrial, l.Atrial)

	tests := []struct {
		name    string
		data    string
		missing string
	}{
		{
			name:    "misspelled min",
			data:    strings.Replace(siteManifest, "amplitude: {min: 0.1", "amplitude: {mn: 0.1", 1),
			missing: "",
		},
		{
			name:    "unknown section",
			data:    siteManifest + "hysteresis: {min: 1, max: 2}\n",
			missing: "",
		},
		{
			name:    "omitted max",
			data:    strings.Replace(siteManifest, "vrp: {min: 150, max: 500}", "vrp: {min: 150}", 1),
			missing: "vrp.max",
		},
		{
			name:    "omitted chambers",
			data:    "name: site\nlrl: {min: 30, max: 120}\nvrp: {min: 150, max: 500}\n",
			missing: "atrial.amplitude.min, atrial.amplitude.max, atrial.width.min",
		},
		{
			name:    "omitted name",
			data:    strings.Replace(siteManifest, "name: site", "", 1),
			missing: "name",
		},
		{
			name: "empty",
			data: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			if tt.missing != "" {
				assert.ErrorIs(t, err, ErrInvalidCalibration)
				assert.Contains(t, err.Error(), tt.missing)
			}
		})
	}
}

func TestParseMisspelledKeyDoesNotWidenBound(t *testing.T) {
	data := strings.Replace(siteManifest, "amplitude: {min: 0.1", "amplitude: {mn: 0.1", 1)

	l, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mn")
	assert.Equal(t, Limits{}, l)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	data := `
name: site
atrial:
  amplitude: {min: 0.5, max: 5}
  width: {min: 0.1, max: 1.5}
ventricular:
  amplitude: {min: 0.5, max: 5}
  width: {min: 0.1, max: 1.5}
lrl: {min: 40, max: 100}
vrp: {min: 200, max: 400}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "site", l.Name)
	assert.Equal(t, Interval{Min: 40, Max: 100}, l.LRL)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("lrl: {min: 0, max: 10}\n"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidCalibration)
}

package gazeblur

import(
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYaml = `
stage: foveate
boundary: mirror
guarded: true
gaze: {x: 640, y: 360}
projection:
  fovy: 45
  aspect: 1.7778
  near: 100
  far: 10000
optics:
  pupildiameter: 3
  pixelpitch: 0.25
foveation:
  e1: 2
  e2: 8
  visualanglescale: 0.03
`

const testToml = `
stage = "dof"
boundary = "wrap"
workers = 3

[gaze]
x = 10
y = 20

[projection]
a = 1.0
b = -2.0

[optics]
pixelpitch = 0.1
`

func TestConfigDefaults(t *testing.T) {
	c := NewConfig()
	require.NoError(t, c.Finalize())
	assert.Equal(t, "dof", c.Stage)
	assert.Equal(t, BoundaryClamp, c.BoundaryPolicy)
	assert.Equal(t, 4.0, c.Optics.PupilDiameter)
	assert.Equal(t, DefaultEyeFocalLength, c.Optics.EyeFocalLength)
	assert.Equal(t, DefaultMiddleWeights, c.MiddleWeights)
	assert.Equal(t, DefaultOuterWeights, c.OuterWeights)
}

func TestConfigFromYaml(t *testing.T) {
	c, err := newConfigFromYaml([]byte(testYaml))
	require.NoError(t, err)
	require.NoError(t, c.Finalize())

	assert.Equal(t, "foveate", c.Stage)
	assert.Equal(t, BoundaryMirror, c.BoundaryPolicy)
	assert.True(t, c.Guarded)
	assert.Equal(t, GazePoint{640, 360}, c.Gaze)
	assert.Equal(t, 3.0, c.Optics.PupilDiameter)
	assert.Equal(t, Eccentricity{E1: 2, E2: 8, VisualAngleScale: 0.03}, c.Foveation)

	// Things not in the file keep their defaults
	assert.Equal(t, DefaultEyeFocalLength, c.Optics.EyeFocalLength)
	assert.Equal(t, DefaultOuterWeights, c.OuterWeights)

	pp := c.Projection.Params()
	assert.Less(t, pp.A, 0.0)
	assert.Less(t, pp.B, 0.0)
}

func TestConfigFromToml(t *testing.T) {
	c, err := newConfigFromToml([]byte(testToml))
	require.NoError(t, err)
	require.NoError(t, c.Finalize())

	assert.Equal(t, BoundaryWrap, c.BoundaryPolicy)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, GazePoint{10, 20}, c.Gaze)
	assert.Equal(t, ProjectionParameters{A: 1, B: -2}, c.Projection.Params())
	assert.Equal(t, 0.1, c.Optics.PixelPitch)
	assert.Equal(t, 4.0, c.Optics.PupilDiameter)
}

func TestLoadConfigByExtension(t *testing.T) {
	dir := t.TempDir()
	yamlFile := filepath.Join(dir, "a.yaml")
	tomlFile := filepath.Join(dir, "b.toml")
	require.NoError(t, os.WriteFile(yamlFile, []byte(testYaml), 0644))
	require.NoError(t, os.WriteFile(tomlFile, []byte(testToml), 0644))

	c, err := LoadConfig(yamlFile)
	require.NoError(t, err)
	assert.Equal(t, "mirror", c.Boundary)

	c, err = LoadConfig(tomlFile)
	require.NoError(t, err)
	assert.Equal(t, "wrap", c.Boundary)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigAsYamlRoundTrip(t *testing.T) {
	c := NewConfig()
	c.Stage = "regions"
	c.Gaze = GazePoint{1, 2}

	c2, err := newConfigFromYaml([]byte(c.AsYaml()))
	require.NoError(t, err)
	assert.Equal(t, c.Stage, c2.Stage)
	assert.Equal(t, c.Gaze, c2.Gaze)
	assert.Equal(t, c.MiddleWeights, c2.MiddleWeights)
}

func TestConfigFinalizeErrors(t *testing.T) {
	tests := []struct{
		name   string
		modify func(*Config)
		want   error
	}{
		{"stage",      func(c *Config) { c.Stage = "sharpen" },                  ErrUnknownStage},
		{"boundary",   func(c *Config) { c.Boundary = "border" },                ErrUnknownBoundary},
		{"thresholds", func(c *Config) { c.Foveation.E1 = 20 },                  ErrBadThresholds},
		{"middle",     func(c *Config) { c.MiddleWeights = BlurKernel1D{1} },    ErrKernelLength},
		{"outer",      func(c *Config) { c.OuterWeights = DefaultMiddleWeights }, ErrKernelLength},
		{"optics",     func(c *Config) { c.Optics.PupilDiameter = -1 },          ErrBadOptics},
	}
	for _, test := range tests {
		c := NewConfig()
		test.modify(&c)
		assert.ErrorIs(t, c.Finalize(), test.want, test.name)
	}

	c := NewConfig()
	c.Stage = "FOVEATE"
	c.Workers = -2
	require.NoError(t, c.Finalize())
	assert.Equal(t, "foveate", c.Stage)
	assert.Equal(t, 0, c.Workers)
}

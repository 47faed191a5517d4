package gazeblur

import(
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/abworrall/gazeblur/pkg/ecolor"
)

func TestParseGaze(t *testing.T) {
	g, err := ParseGaze("640 360\n")
	require.NoError(t, err)
	assert.Equal(t, GazePoint{640, 360}, g)

	g, err = ParseGaze("12.5,7")
	require.NoError(t, err)
	assert.Equal(t, GazePoint{12.5, 7}, g)

	_, err = ParseGaze("1 2 3")
	assert.Error(t, err)
	_, err = ParseGaze("x 2")
	assert.Error(t, err)
}

func TestRoleFromFilename(t *testing.T) {
	assert.Equal(t, RoleColor, RoleFromFilename("/tmp/frame0001.exr"))
	assert.Equal(t, RoleDepth, RoleFromFilename("/tmp/frame0001-Depth.exr"))
	assert.Equal(t, RoleRight, RoleFromFilename("right_eye.png"))
}

func TestEXRRoundTrip(t *testing.T) {
	dir := t.TempDir()
	color := gradientImage(8, 4) // every value exact in half floats
	depth := NewSyntheticFrame(8, 4, 1, 150, 2000).Depth

	require.NoError(t, WriteColorImage(color, filepath.Join(dir, "scene.exr"), false))
	require.NoError(t, WriteDepthEXR(depth, filepath.Join(dir, "scene-depth.exr")))

	d2, err := LoadDepthEXR(filepath.Join(dir, "scene-depth.exr"))
	require.NoError(t, err)
	assert.Equal(t, depth, d2)

	f := NewFrame()
	require.NoError(t, f.LoadFilesAndDirs(dir))
	require.NotNil(t, f.Color)
	require.NotNil(t, f.Depth)
	assert.Equal(t, color.Pix, f.Color.Pix)
	assert.Equal(t, depth.Pix, f.Depth.Pix)
}

func TestLoadDirWithConfigAndGaze(t *testing.T) {
	dir := t.TempDir()
	src := NewSyntheticFrame(16, 8, 2, 150, 2000)

	require.NoError(t, WriteColorImage(src.Color, filepath.Join(dir, "frame.png"), false))
	require.NoError(t, WriteDepthEXR(src.Depth, filepath.Join(dir, "frame-depth.exr")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(testToml), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	// Sorts after the config, so it wins
	require.NoError(t, os.WriteFile(filepath.Join(dir, "point.gaze"), []byte("3 4"), 0644))

	f := NewFrame()
	require.NoError(t, f.LoadFilesAndDirs(dir))
	assert.Equal(t, "wrap", f.Boundary)
	assert.Equal(t, GazePoint{3, 4}, f.Gaze)
	require.True(t, f.Color.SameSize(16, 8))

	for i := range src.Color.Pix {
		require.InDelta(t, src.Color.Pix[i], f.Color.Pix[i], 2.0/65535.0)
	}

	assert.Error(t, f.LoadFilesAndDirs(filepath.Join(dir, "nope")))
}

func TestLoadTIFFAndHDR(t *testing.T) {
	dir := t.TempDir()
	src := gradientImage(10, 6)

	w, err := os.Create(filepath.Join(dir, "left.tif"))
	require.NoError(t, err)
	require.NoError(t, tiff.Encode(w, src.ToNRGBA64(false), nil))
	require.NoError(t, w.Close())

	require.NoError(t, WriteColorImage(src, filepath.Join(dir, "right.hdr"), false))

	f := NewFrame()
	require.NoError(t, f.LoadFilesAndDirs(filepath.Join(dir, "left.tif"), filepath.Join(dir, "right.hdr")))
	require.NotNil(t, f.Color)
	require.NotNil(t, f.Right)
	assert.True(t, f.Right.SameSize(10, 6))

	for i := range src.Pix {
		assert.InDelta(t, src.Pix[i], f.Color.Pix[i], 2.0/65535.0)
		assert.InDelta(t, src.Pix[i], f.Right.Pix[i], 0.01)
	}

	// Whatever resolution tags the encoder wrote are what got picked up
	if pitch, err := LoadPixelPitch(filepath.Join(dir, "left.tif")); err == nil {
		assert.Equal(t, pitch, f.DetectedPixelPitch)
	} else {
		assert.Equal(t, 0.0, f.DetectedPixelPitch)
	}

	_, err = LoadPixelPitch(filepath.Join(dir, "right.hdr"))
	assert.Error(t, err)
}

func TestPixelPitchFromResolution(t *testing.T) {
	pitch, err := PixelPitchFromResolution(254, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, pitch, 1e-12)

	pitch, err = PixelPitchFromResolution(40, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, pitch, 1e-12)

	_, err = PixelPitchFromResolution(72, 1)
	assert.Error(t, err)
	_, err = PixelPitchFromResolution(0, 2)
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	f := NewSyntheticFrame(64, 32, 4, 150, 2000)
	f.PreviewWidth = 16
	f.Gamma = true

	assert.ErrorIs(t, f.WriteOutput(filepath.Join(dir, "early.png")), ErrMissingInput)

	f = filtered(t, f)
	out := filepath.Join(dir, "out.png")
	require.NoError(t, f.WriteOutput(out))

	r, err := os.Open(filepath.Join(dir, "out-preview.png"))
	require.NoError(t, err)
	defer r.Close()
	cfg, err := png.DecodeConfig(r)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 8, cfg.Height)

	require.NoError(t, f.WriteOutput(filepath.Join(dir, "out.exr")))
	require.NoError(t, f.WriteOutput(filepath.Join(dir, "out.hdr")))
}

func TestWriteHDRValuesToPNG(t *testing.T) {
	dir := t.TempDir()
	ci := uniformImage(4, 4, ecolor.RGBA{0.5, 0.5, 0.5, 1})
	ci.SetRGBA(1, 1, ecolor.RGBA{8, 4, 2, 1})

	require.NoError(t, WriteColorImage(ci, filepath.Join(dir, "bright.png"), false))
	_, err := os.Stat(filepath.Join(dir, "bright.png"))
	assert.NoError(t, err)
}

func TestDumpDebugImages(t *testing.T) {
	dir := t.TempDir()
	f := filtered(t, NewSyntheticFrame(32, 16, 4, 150, 2000))
	require.NoError(t, f.DumpDebugImages(filepath.Join(dir, "dbg-")))

	for _, name := range []string{"dbg-regions.png", "dbg-lineardepth.png", "dbg-confusion.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestImgDiff(t *testing.T) {
	a := uniformImage(4, 4, ecolor.RGBA{0.5, 0.5, 0.5, 1})
	b := uniformImage(4, 4, ecolor.RGBA{0.5, 0.5, 0.5, 1})

	metric, _, err := ImgDiff(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.0, metric)

	b.SetRGBA(0, 0, ecolor.RGBA{1.5, 1.5, 1.5, 1})
	metric, grid, err := ImgDiff(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.9999/16, metric, 1e-5)
	assert.InDelta(t, 0.9999, grid.Get(0, 0), 1e-5)

	_, _, err = ImgDiff(a, uniformImage(3, 4, ecolor.RGBA{}))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestLoadColorImage(t *testing.T) {
	dir := t.TempDir()
	src := gradientImage(8, 4)
	require.NoError(t, WriteColorImage(src, filepath.Join(dir, "ref.exr"), false))

	ci, err := LoadColorImage(filepath.Join(dir, "ref.exr"))
	require.NoError(t, err)
	assert.Equal(t, src.Pix, ci.Pix)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte(testYaml), 0644))
	_, err = LoadColorImage(filepath.Join(dir, "c.yaml"))
	assert.ErrorIs(t, err, ErrMissingInput)

	// Without a Z channel, no depth
	f := NewFrame()
	require.NoError(t, f.LoadFilesAndDirs(filepath.Join(dir, "ref.exr")))
	assert.NotNil(t, f.Color)
	assert.Nil(t, f.Depth)
}

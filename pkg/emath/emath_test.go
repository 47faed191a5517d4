package emath

import(
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec2Dist(t *testing.T) {
	assert.Equal(t, 5.0, Vec2{0, 0}.Dist(Vec2{3, 4}))
	assert.Equal(t, 0.0, Vec2{7, 7}.Dist(Vec2{7, 7}))
	assert.Equal(t, Vec2{0.5, 0.25}, Vec2{50, 25}.Div(Vec2{100, 100}))
	assert.Equal(t, Vec2{2, 3}, Vec2{1, 1}.Add(Vec2{1, 2}))
}

func TestVec3Clip(t *testing.T) {
	v := Vec3{-0.5, 0.5, 1.5}
	v.FloorAt(0)
	v.CeilingAt(1)
	assert.Equal(t, Vec3{0, 0.5, 1}, v)
	assert.InDelta(t, 0.2989, Vec3{1, 0, 0}.Dot(Vec3{0.2989, 0.5870, 0.1140}), 1e-12)
}

func TestGammaExpand(t *testing.T) {
	assert.Equal(t, 0.0, GammaExpand_F64(0))
	assert.InDelta(t, 1.0, GammaExpand_F64(1), 1e-9)
	assert.Less(t, GammaExpand_F64(0.2), GammaExpand_F64(0.3))
	assert.Equal(t, 1.0, Clamp01(3))
	assert.Equal(t, 0.0, Clamp01(-3))
}

func TestFloatGrid(t *testing.T) {
	fg := NewFloatGrid(4, 3)
	require.Equal(t, 4, fg.Dx())
	require.Equal(t, 3, fg.Dy())

	fg.Set(1, 2, 5.0)
	fg.Set(0, 0, -1.0)
	fg.Set(3, 1, math.NaN())
	fg.Set(2, 1, math.Inf(1))
	assert.Equal(t, 5.0, fg.Get(1, 2))

	min, max := fg.Range()
	assert.Equal(t, -1.0, min)
	assert.Equal(t, 5.0, max)
	assert.Equal(t, 2, fg.NumDegenerate())

	cp := fg.Copy()
	cp.Set(1, 2, 0)
	assert.Equal(t, 5.0, fg.Get(1, 2))

	img := fg.ToImg("test")
	assert.Equal(t, 4, img.Bounds().Dx())
	r, _, _, _ := img.At(1, 2).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)

	require.NoError(t, fg.SaveImg("test", filepath.Join(t.TempDir(), "grid.png")))
}

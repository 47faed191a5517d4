package ecolor

import(
	"image/color"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromColor(t *testing.T) {
	c := FromColor(color.NRGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0x80})
	assert.Equal(t, float32(1.0), c.R)
	assert.Equal(t, float32(0.0), c.G)
	assert.Equal(t, float32(1.0), c.B)
	assert.InDelta(t, 0.502, c.A, 0.001)

	// Premultiplied inputs are un-premultiplied
	p := FromColor(color.RGBA{R: 0x40, A: 0x80})
	assert.InDelta(t, 0.5, p.R, 0.01)
}

func TestArithmetic(t *testing.T) {
	a := RGBA{0.1, 0.2, 0.3, 1}
	b := RGBA{0.3, 0.2, 0.1, 1}
	sum := a.Add(b)
	assert.InDelta(t, 0.4, sum.R, 1e-6)
	assert.InDelta(t, 2.0, sum.A, 1e-6)
	assert.InDelta(t, 0.2, sum.Div(2).G, 1e-6)
	assert.InDelta(t, 0.15, a.Scale(0.5).G*1.5, 1e-6)
	assert.Equal(t, float32(0.3), a.MaxChannel())
}

func TestDivByZeroIsDegenerate(t *testing.T) {
	var zero float32
	c := RGBA{}.Div(zero)
	assert.True(t, math32.IsNaN(c.R))
	assert.True(t, c.IsDegenerate())
	assert.True(t, RGBA{1, 0, 0, 1}.Div(zero).IsDegenerate())
	assert.False(t, RGBA{1, 0, 0, 1}.IsDegenerate())
}

func TestGray(t *testing.T) {
	assert.InDelta(t, 0.2989, RGBA{1, 0, 0, 1}.Gray(), 1e-6)
	assert.InDelta(t, 0.5870, RGBA{0, 1, 0, 1}.Gray(), 1e-6)
	assert.InDelta(t, 0.9999, RGBA{1, 1, 1, 0}.Gray(), 1e-6)
}

func TestColorInterfaces(t *testing.T) {
	c := RGBA{2.0, 0.5, -1.0, 1.0}
	n := c.NRGBA64()
	assert.Equal(t, uint16(0xFFFF), n.R)
	assert.Equal(t, uint16(0), n.B)

	r, _, b, a := c.RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xFFFF), a)

	h := c.HDR()
	assert.Equal(t, 2.0, h.R)
	assert.Equal(t, -1.0, h.B)
}

func TestPalette(t *testing.T) {
	p := Palette(3)
	require.Len(t, p, 3)
	assert.NotEqual(t, p[0], p[1])
	assert.NotEqual(t, p[1], p[2])
	for _, c := range p {
		assert.Equal(t, float32(1.0), c.A)
		assert.False(t, c.IsDegenerate())
	}
}

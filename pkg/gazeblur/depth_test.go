package gazeblur

import(
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLinearDepth(t *testing.T) {
	assert.Equal(t, 6.0, LinearDepth(0.5, 1.0, -2.0))

	pp := ProjectionParameters{A: 1.0, B: -2.0}
	assert.Equal(t, 6.0, pp.LinearDepth(0.5, false))
	assert.Equal(t, 6.0, pp.LinearDepth(0.5, true))
}

func TestLinearDepthZeroSample(t *testing.T) {
	pp := ProjectionParameters{A: 1.0, B: -2.0}

	z := pp.LinearDepth(0, false)
	assert.True(t, math.IsInf(z, 0) || math.IsNaN(z), "unguarded got %v", z)

	z = pp.LinearDepth(0, true)
	assert.False(t, math.IsInf(z, 0) || math.IsNaN(z), "guarded got %v", z)
}

func TestEncodeDepth(t *testing.T) {
	pp := ProjectionParameters{A: 1.0, B: -100.0}
	for _, z := range []float64{150, 300, 1000, 5000} {
		d := pp.EncodeDepth(z)
		assert.InDelta(t, z, pp.LinearDepth(d, false), 1e-9*z)
	}
}

func TestProjectionFromMat4(t *testing.T) {
	near, far := 100.0, 10000.0
	pp := PerspectiveProjection(45, 16.0/9.0, near, far)

	assert.InDelta(t, (near+far)/(near-far), pp.A, 1e-5)
	assert.InDelta(t, 2*far*near/(near-far), pp.B, 1e-1)

	m := mgl32.Ident4()
	m.Set(2, 2, 3)
	m.Set(2, 3, -7)
	assert.Equal(t, ProjectionParameters{A: 3, B: -7}, ProjectionFromMat4(m))
}

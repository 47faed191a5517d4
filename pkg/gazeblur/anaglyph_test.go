package gazeblur

import(
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abworrall/gazeblur/pkg/ecolor"
)

func TestAnaglyph(t *testing.T) {
	white := ecolor.RGBA{1, 1, 1, 1}
	black := ecolor.RGBA{0, 0, 0, 0.5}

	out := Anaglyph(white, black)
	assert.InDelta(t, 0.9999, out.R, 1e-5)
	assert.Equal(t, float32(0), out.G)
	assert.Equal(t, float32(0), out.B)
	assert.Equal(t, float32(1), out.A)

	out = Anaglyph(ecolor.RGBA{0, 1, 0, 1}, ecolor.RGBA{0, 0, 1, 1})
	assert.InDelta(t, 0.5870, out.R, 1e-6)
	assert.InDelta(t, 0.1140, out.G, 1e-6)
	assert.Equal(t, out.G, out.B)
}

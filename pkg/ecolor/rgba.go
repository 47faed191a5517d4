package ecolor

import(
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/gazeblur/pkg/emath"
)

// An RGBA is a texel as the filters see it: four normalized float
// channels, not premultiplied. Values above 1.0 are allowed (HDR
// inputs), and so are NaN/Inf (the unguarded filters let degenerate
// values through).
type RGBA struct {
	R, G, B, A float32
}

var(
	// Luma weights used to collapse a color to gray, e.g. for anaglyphs.
	GrayWeights = emath.Vec3{0.2989, 0.5870, 0.1140}
)

// FromColor converts any color.Color into unit floats, undoing any
// alpha premultiplication.
func FromColor(c color.Color) RGBA {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGBA{
		R: float32(n.R) / float32(0xFFFF),
		G: float32(n.G) / float32(0xFFFF),
		B: float32(n.B) / float32(0xFFFF),
		A: float32(n.A) / float32(0xFFFF),
	}
}

func (c RGBA)String() string {
	return fmt.Sprintf("[%10.8f, %10.8f, %10.8f, %10.8f]", c.R, c.G, c.B, c.A)
}

func (c RGBA)Add(d RGBA) RGBA {
	return RGBA{c.R+d.R, c.G+d.G, c.B+d.B, c.A+d.A}
}

func (c RGBA)Scale(s float32) RGBA {
	return RGBA{c.R*s, c.G*s, c.B*s, c.A*s}
}

// Div divides every channel by n. n==0 is not guarded; the result is NaN
// or Inf, same as the float division would give on a GPU.
func (c RGBA)Div(n float32) RGBA {
	return RGBA{c.R/n, c.G/n, c.B/n, c.A/n}
}

// Gray is the luma of the color, ignoring alpha
func (c RGBA)Gray() float32 {
	return float32(emath.Vec3{float64(c.R), float64(c.G), float64(c.B)}.Dot(GrayWeights))
}

// IsDegenerate reports whether any channel is NaN or infinite
func (c RGBA)IsDegenerate() bool {
	for _, v := range []float32{c.R, c.G, c.B, c.A} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// MaxChannel is the largest of R, G, B
func (c RGBA)MaxChannel() float32 {
	return math32.Max(c.R, math32.Max(c.G, c.B))
}

// HDR returns the color as a mdouchement/hdr color, dropping alpha
func (c RGBA)HDR() hdrcolor.RGB {
	return hdrcolor.RGB{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

// RGBA implements color.Color. Channels get clipped to [0,1], and then premultiplied.
func (c RGBA)RGBA() (r, g, b, a uint32) {
	n := c.NRGBA64()
	return color.NRGBA64Model.Convert(n).RGBA()
}

// NRGBA64 clips to [0,1] and quantizes. NaN channels come out as zero.
func (c RGBA)NRGBA64() color.NRGBA64 {
	q := func(f float32) uint16 {
		if math32.IsNaN(f) { return 0 }
		return uint16(emath.Clamp01(float64(f)) * float64(0xFFFF))
	}
	return color.NRGBA64{q(c.R), q(c.G), q(c.B), q(c.A)}
}

// Palette returns n visually distinct, fully opaque colors, spaced out
// around the hue wheel.
func Palette(n int) []RGBA {
	ret := make([]RGBA, n)
	for i:=0; i<n; i++ {
		c := colorful.Hsv(float64(i) * 360.0 / float64(n), 0.7, 0.9).Clamped()
		ret[i] = RGBA{float32(c.R), float32(c.G), float32(c.B), 1.0}
	}
	return ret
}

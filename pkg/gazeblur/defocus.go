package gazeblur

import(
	"image"

	"github.com/chewxy/math32"

	"github.com/abworrall/gazeblur/pkg/ecolor"
)

// The defocus search looks at an 11x11 window: offsets -5..+5 on each axis.
const(
	DefocusSearchRadius = 5
	DefocusSearchWidth  = 2*DefocusSearchRadius + 1
)

// DefocusBlur averages every texel in the search window whose distance
// (in window pixels) from p is no more than radiusPixels. This is a disc
// shaped box filter whose radius changes from pixel to pixel.
//
// With radius 0 only the center texel qualifies, so the pixel comes back
// unchanged. If nothing qualifies (radius NaN or negative) the average is
// 0/0; unguarded that NaN goes into the pixel, guarded we return the
// center texel instead. The second return value is the sample count.
func DefocusBlur(s Sampler, p image.Point, radiusPixels float64, guarded bool) (ecolor.RGBA, int) {
	sum := ecolor.RGBA{}
	n := 0
	radius := float32(radiusPixels)

	for i:=0; i<DefocusSearchWidth; i++ {
		for j:=0; j<DefocusSearchWidth; j++ {
			dx, dy := j - DefocusSearchRadius, i - DefocusSearchRadius
			dist := math32.Sqrt(float32(dx*dx + dy*dy))
			if dist <= radius {
				sum = sum.Add(s.Offset(p, dx, dy))
				n++
			}
		}
	}

	if n == 0 && guarded {
		return s.Offset(p, 0, 0), 0
	}

	return sum.Div(float32(n)), n
}

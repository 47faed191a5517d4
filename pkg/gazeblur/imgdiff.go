package gazeblur

import(
	"fmt"
	"math"

	"github.com/abworrall/gazeblur/pkg/emath"
)

// ImgDiff compares two images, and returns an error metric; the less
// similar, the higher the value. It is the mean absolute difference in
// gray level over all pixels, along with a grid of the per-pixel
// differences (handy to dump with SaveImg).
//
// If a pixel is degenerate in either image it goes into the grid as NaN
// and is left out of the mean, so one bad pixel doesn't hide everything
// else.
func ImgDiff(a, b *ColorImage) (float64, emath.FloatGrid, error) {
	if !a.SameSize(b.Width, b.Height) {
		return 0, emath.FloatGrid{}, fmt.Errorf("%w: %s vs %s", ErrDimensionMismatch, a, b)
	}

	diff := emath.NewFloatGrid(a.Width, a.Height)
	totErr := 0.0
	nErr := 0

	for y:=0; y<a.Height; y++ {
		for x:=0; x<a.Width; x++ {
			c1, c2 := a.RGBAAt(x, y), b.RGBAAt(x, y)
			if c1.IsDegenerate() || c2.IsDegenerate() {
				diff.Set(x, y, math.NaN())
				continue
			}
			pixErr := math.Abs(float64(c1.Gray() - c2.Gray()))
			diff.Set(x, y, pixErr)
			totErr += pixErr
			nErr++
		}
	}

	if nErr == 0 {
		return 0, diff, nil
	}
	return totErr / float64(nErr), diff, nil
}

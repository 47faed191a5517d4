package gazeblur

import(
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/abworrall/gazeblur/pkg/ecolor"
	"github.com/abworrall/gazeblur/pkg/emath"
)

// BoundaryPolicy decides which texel is read when a neighborhood
// reaches past the edge of the image.
type BoundaryPolicy int

const(
	BoundaryClamp  BoundaryPolicy = iota // repeat the edge texel
	BoundaryWrap                         // tile the image
	BoundaryMirror                       // reflect, repeating the edge texel once
)

var boundaryNames = []string{"clamp", "wrap", "mirror"}

func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	for i, name := range boundaryNames {
		if strings.EqualFold(s, name) {
			return BoundaryPolicy(i), nil
		}
	}
	return BoundaryClamp, fmt.Errorf("%w: %q, wanted one of %v", ErrUnknownBoundary, s, boundaryNames)
}

func (b BoundaryPolicy)String() string {
	if int(b) < 0 || int(b) >= len(boundaryNames) {
		return fmt.Sprintf("BoundaryPolicy(%d)", int(b))
	}
	return boundaryNames[b]
}

// Index maps a possibly out of range index into [0,n)
func (b BoundaryPolicy)Index(i, n int) int {
	if i >= 0 && i < n {
		return i
	}
	switch b {
	case BoundaryWrap:
		return ((i % n) + n) % n
	case BoundaryMirror:
		period := 2*n
		m := ((i % period) + period) % period
		if m >= n {
			m = period - 1 - m
		}
		return m
	default:
		if i < 0 { return 0 }
		return n-1
	}
}

// A Sampler reads texels from an immutable source image, applying the
// boundary policy. It is the "texel at offset" primitive that both the
// defocus and the foveation filters are built on.
type Sampler struct {
	Image    *ColorImage
	Boundary BoundaryPolicy
}

// Offset returns the texel at p+(dx,dy), in pixel units.
func (s Sampler)Offset(p image.Point, dx, dy int) ecolor.RGBA {
	x := s.Boundary.Index(p.X+dx, s.Image.Width)
	y := s.Boundary.Index(p.Y+dy, s.Image.Height)
	return s.Image.RGBAAt(x, y)
}

// Sample reads the texel at a normalized coordinate in [0,1]x[0,1], with
// nearest filtering: u maps to pixel floor(u*width).
func (s Sampler)Sample(uv emath.Vec2) ecolor.RGBA {
	return s.Offset(TexelAt(uv, s.Image.WindowSize()), 0, 0)
}

// TexelAt turns a normalized coordinate into the pixel it falls in
func TexelAt(uv, windowSize emath.Vec2) image.Point {
	return image.Point{
		X: int(math.Floor(uv[0] * windowSize[0])),
		Y: int(math.Floor(uv[1] * windowSize[1])),
	}
}

// PixelCenter is the window coordinate of the center of a pixel, which is
// where the fragment for that pixel sits.
func PixelCenter(p image.Point) emath.Vec2 {
	return emath.Vec2{float64(p.X) + 0.5, float64(p.Y) + 0.5}
}

// DepthSampler is the depth image counterpart of Sampler
type DepthSampler struct {
	Image    *DepthImage
	Boundary BoundaryPolicy
}

func (s DepthSampler)Offset(p image.Point, dx, dy int) float32 {
	x := s.Boundary.Index(p.X+dx, s.Image.Width)
	y := s.Boundary.Index(p.Y+dy, s.Image.Height)
	return s.Image.At(x, y)
}

func (s DepthSampler)Sample(uv emath.Vec2) float32 {
	ws := emath.Vec2{float64(s.Image.Width), float64(s.Image.Height)}
	return s.Offset(TexelAt(uv, ws), 0, 0)
}

package gazeblur

import(
	"github.com/abworrall/gazeblur/pkg/ecolor"
)

// SyntheticProjection is the projection used by the synthetic frames;
// it decodes a depth sample d to a distance of 100*(1/d + 1) mm.
var SyntheticProjection = ProjectionConfig{A: 1.0, B: -100.0}

// NewSyntheticFrame makes a frame that needs no input files: a colored
// checkerboard with squares of side `check` pixels, over a depth ramp that
// runs from near (left edge) to far (right edge), in mm. The gaze sits in
// the middle of the window.
func NewSyntheticFrame(w, h, check int, near, far float64) Frame {
	if check < 1 { check = 1 }
	cfg := NewConfig()
	cfg.Projection = SyntheticProjection
	cfg.Optics.PixelPitch = 0.05
	cfg.Gaze = GazePoint{X: float64(w)/2, Y: float64(h)/2}

	pal := ecolor.Palette(4)
	color := NewColorImage(w, h)
	right := NewColorImage(w, h)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			c := pal[((x/check) + 2*(y/check)) % 4]
			color.SetRGBA(x, y, c)
			// The right eye sees the pattern shifted by one pixel
			right.SetRGBA(x, y, pal[(((x+1)/check) + 2*(y/check)) % 4])
		}
	}

	params := cfg.Projection.Params()
	depth := NewDepthImage(w, h)
	for x:=0; x<w; x++ {
		z := near
		if w > 1 {
			z = near + (far-near) * float64(x) / float64(w-1)
		}
		d := float32(params.EncodeDepth(z))
		for y:=0; y<h; y++ {
			depth.Set(x, y, d)
		}
	}

	return NewFrameFromImages(cfg, color, depth, right)
}

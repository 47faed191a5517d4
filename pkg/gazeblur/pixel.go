package gazeblur

import(
	"fmt"
	"image"

	"github.com/abworrall/gazeblur/pkg/ecolor"
	"github.com/abworrall/gazeblur/pkg/emath"
)

// A Pixel holds everything we work out while filtering one output pixel.
// Each one is private to a single invocation; nothing is shared between
// pixels except the read-only Frame.
type Pixel struct {
	Pos             image.Point  // In window pixels
	Coord           emath.Vec2   // Window coords of the fragment, i.e. the pixel center
	Source          ecolor.RGBA  // The unfiltered texel

	DepthSample     float32      // As stored in the depth buffer
	LinearDepth     float64      // Eye-space distance
	ConfusionRadius float64      // Blur disc radius, in pixels
	Samples         int          // How many texels the defocus average used

	Region          Region       // Eccentricity band, or -1 if the stage didn't classify

	Out             ecolor.RGBA  // The filtered result
}

func newPixel(f *Frame, x, y int) Pixel {
	pos := image.Point{x, y}
	return Pixel{
		Pos:    pos,
		Coord:  PixelCenter(pos),
		Source: f.sampler.Offset(pos, 0, 0),
		Region: Region(-1),
	}
}

func (p Pixel)String() string {
	str := fmt.Sprintf("----- Pixel @(%d,%d)-----\n", p.Pos.X, p.Pos.Y)
	str += fmt.Sprintf("Source             : %s\n", p.Source)
	str += fmt.Sprintf("DepthSample        : %12.10f\n", p.DepthSample)
	str += fmt.Sprintf("LinearDepth        : %12.4f\n", p.LinearDepth)
	str += fmt.Sprintf("ConfusionRadius    : %12.4f px (%d samples)\n", p.ConfusionRadius, p.Samples)
	if p.Region >= 0 {
		str += fmt.Sprintf("Region             : %s\n", p.Region)
	}
	str += fmt.Sprintf("Out                : %s\n", p.Out)
	return str
}

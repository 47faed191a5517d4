package gazeblur

import(
	"fmt"
	"sort"

	"github.com/abworrall/gazeblur/pkg/ecolor"
)

// A PixelFunc fills in p.Out for one pixel. It may only read from the
// Frame; everything it works out goes into the Pixel.
type PixelFunc func(*Frame, *Pixel)

var(
	Stages = map[string]PixelFunc{
		"dof":         FilterDepthOfField,
		"foveate":     FilterFoveated,
		"anaglyph":    FilterAnaglyph,
		"passthrough": FilterPassthrough,
		"regions":     FilterRegions,
		"coc":         FilterConfusion,
	}

	stagesNeedingDepth = map[string]bool{"dof": true, "coc": true}
	stagesNeedingRight = map[string]bool{"anaglyph": true}

	regionPalette = ecolor.Palette(NumRegions)
)

func ListStages() string {
	names := []string{}
	for name := range Stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("%v", names)
}

// confusion does the depth half of the DoF pipeline: reconstruct this
// pixel's distance, and turn it into a blur radius.
func confusion(f *Frame, p *Pixel) {
	p.DepthSample = f.depthSampler.Offset(p.Pos, 0, 0)
	p.LinearDepth = f.projection.LinearDepth(float64(p.DepthSample), f.Guarded)
	p.ConfusionRadius = f.Optics.ConfusionRadiusPixels(p.LinearDepth, f.focusDistance, f.Guarded)
}

// FilterDepthOfField is the retinal blur: focus is wherever the gaze
// lands, and each pixel is averaged over its own circle of confusion.
// The output is always opaque.
func FilterDepthOfField(f *Frame, p *Pixel) {
	confusion(f, p)
	p.Out, p.Samples = DefocusBlur(f.sampler, p.Pos, p.ConfusionRadius, f.Guarded)
	p.Out.A = 1.0
}

// FilterFoveated blurs by eccentricity; more blur further from the gaze.
func FilterFoveated(f *Frame, p *Pixel) {
	p.Region = f.Foveation.Classify(p.Coord, f.Gaze.Vec())
	kernel, _ := f.kernels.For(p.Region)
	p.Out = Foveate(f.sampler, p.Pos, p.Region, kernel)
}

// FilterAnaglyph merges the color image (left eye) with the right eye image.
func FilterAnaglyph(f *Frame, p *Pixel) {
	p.Out = Anaglyph(p.Source, f.rightSampler.Offset(p.Pos, 0, 0))
}

func FilterPassthrough(f *Frame, p *Pixel) {
	p.Out = p.Source
}

// FilterRegions is for debugging - it colors the pixel based on which
// eccentricity band it falls in.
func FilterRegions(f *Frame, p *Pixel) {
	p.Region = f.Foveation.Classify(p.Coord, f.Gaze.Vec())
	p.Out = regionPalette[p.Region]
}

// FilterConfusion is for debugging - the pixel's gray level is its blur
// radius, with white at the edge of the search window.
func FilterConfusion(f *Frame, p *Pixel) {
	confusion(f, p)
	g := float32(p.ConfusionRadius / DefocusSearchRadius)
	p.Out = ecolor.RGBA{g, g, g, 1.0}
}

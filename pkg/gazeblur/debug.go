package gazeblur

import(
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

// RegionMap paints every pixel with the color of its eccentricity band,
// and outlines the band edges around the gaze point.
func (f *Frame)RegionMap() image.Image {
	w, h := f.Color.Width, f.Color.Height
	gaze := f.Gaze.Vec()

	img := NewColorImage(w, h)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			r := f.Foveation.Classify(PixelCenter(image.Point{x, y}), gaze)
			img.SetRGBA(x, y, regionPalette[r])
		}
	}

	dc := gg.NewContextForImage(img.ToNRGBA64(false))
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1)
	for _, e := range []float64{f.Foveation.E1, f.Foveation.E2} {
		dc.DrawCircle(gaze.X(), gaze.Y(), e / f.Foveation.VisualAngleScale)
		dc.Stroke()
	}
	dc.DrawLine(gaze.X()-5, gaze.Y(), gaze.X()+5, gaze.Y())
	dc.DrawLine(gaze.X(), gaze.Y()-5, gaze.X(), gaze.Y()+5)
	dc.Stroke()

	dc.DrawString(fmt.Sprintf("e1=%.1f e2=%.1f", f.Foveation.E1, f.Foveation.E2), 10, 20)
	return dc.Image()
}

// DumpDebugImages writes the region map, and the per-pixel grids from the
// last DoF pass, as PNGs named with the given prefix.
func (f *Frame)DumpDebugImages(prefix string) error {
	if f.Color == nil {
		return fmt.Errorf("%w: color image", ErrMissingInput)
	}

	if err := WritePNG(f.RegionMap(), prefix + "regions.png"); err != nil {
		return err
	}

	if f.LinearDepthGrid.Dx() > 0 {
		if err := f.LinearDepthGrid.SaveImg("linear depth", prefix + "lineardepth.png"); err != nil {
			return err
		}
		title := fmt.Sprintf("confusion radius, focus at %.1f", f.focusDistance)
		if err := f.ConfusionGrid.SaveImg(title, prefix + "confusion.png"); err != nil {
			return err
		}
	}

	Logger().Info("dumped debug images", "prefix", prefix)
	return nil
}

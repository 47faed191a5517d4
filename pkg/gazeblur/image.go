package gazeblur

import(
	"fmt"
	"image"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/abworrall/gazeblur/pkg/ecolor"
	"github.com/abworrall/gazeblur/pkg/emath"
)

// ColorImage is a float RGBA image, four float32 per pixel, row major,
// with its origin at (0,0). It implements image.Image, and hdr.Image so
// it can be written out as Radiance RGBE and fed to the hdr tonemappers.
type ColorImage struct {
	Pix    []float32
	Width  int
	Height int
}

func NewColorImage(w, h int) *ColorImage {
	return &ColorImage{
		Pix:    make([]float32, w*h*4),
		Width:  w,
		Height: h,
	}
}

// Implement image.Image
func (ci *ColorImage)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (ci *ColorImage)Bounds() image.Rectangle       { return image.Rect(0, 0, ci.Width, ci.Height) }
func (ci *ColorImage)At(x, y int) color.Color       { return ci.HDRAt(x,y) }

// Implement hdr.Image
func (ci *ColorImage)HDRAt(x, y int) hdrcolor.Color { return ci.RGBAAt(x,y).HDR() }
func (ci *ColorImage)Size() int                     { return ci.Width * ci.Height }

// WindowSize is the size of the image, as a float vector
func (ci *ColorImage)WindowSize() emath.Vec2 { return emath.Vec2{float64(ci.Width), float64(ci.Height)} }

func (ci *ColorImage)String() string { return fmt.Sprintf("ColorImage[%dx%d]", ci.Width, ci.Height) }

func (ci *ColorImage)RGBAAt(x, y int) ecolor.RGBA {
	i := (y*ci.Width + x) * 4
	return ecolor.RGBA{ci.Pix[i], ci.Pix[i+1], ci.Pix[i+2], ci.Pix[i+3]}
}

func (ci *ColorImage)SetRGBA(x, y int, c ecolor.RGBA) {
	i := (y*ci.Width + x) * 4
	ci.Pix[i], ci.Pix[i+1], ci.Pix[i+2], ci.Pix[i+3] = c.R, c.G, c.B, c.A
}

// SameSize reports whether the two images cover the same window
func (ci *ColorImage)SameSize(w, h int) bool { return ci.Width == w && ci.Height == h }

// NewColorImageFrom copies any image.Image. If it is an hdr.Image, the
// HDR values are kept; otherwise the 16 bit channels are normalized.
func NewColorImageFrom(src image.Image) *ColorImage {
	b := src.Bounds()
	ci := NewColorImage(b.Dx(), b.Dy())

	type hdrImage interface { HDRAt(x, y int) hdrcolor.Color }
	hi, isHDR := src.(hdrImage)

	for y:=0; y<b.Dy(); y++ {
		for x:=0; x<b.Dx(); x++ {
			if isHDR {
				r, g, bl, a := hi.HDRAt(x+b.Min.X, y+b.Min.Y).HDRRGBA()
				ci.SetRGBA(x, y, ecolor.RGBA{float32(r), float32(g), float32(bl), float32(a)})
			} else {
				ci.SetRGBA(x, y, ecolor.FromColor(src.At(x+b.Min.X, y+b.Min.Y)))
			}
		}
	}
	return ci
}

// NewColorImageFromEXR takes the float pixels straight from an EXR image
func NewColorImageFromEXR(src *exr.RGBAImage) *ColorImage {
	ci := NewColorImage(src.Rect.Dx(), src.Rect.Dy())
	for y:=0; y<ci.Height; y++ {
		for x:=0; x<ci.Width; x++ {
			r, g, b, a := src.RGBA(x+src.Rect.Min.X, y+src.Rect.Min.Y)
			ci.SetRGBA(x, y, ecolor.RGBA{r, g, b, a})
		}
	}
	return ci
}

func (ci *ColorImage)ToEXR() *exr.RGBAImage {
	img := exr.NewRGBAImage(ci.Bounds())
	for y:=0; y<ci.Height; y++ {
		for x:=0; x<ci.Width; x++ {
			c := ci.RGBAAt(x, y)
			img.SetRGBA(x, y, c.R, c.G, c.B, c.A)
		}
	}
	return img
}

// ToNRGBA64 generates an LDR image, clipping each channel to [0,1]. If
// gamma is set, the sRGB gamma expansion is applied to the color channels.
func (ci *ColorImage)ToNRGBA64(gamma bool) *image.NRGBA64 {
	img := image.NewNRGBA64(ci.Bounds())
	for y:=0; y<ci.Height; y++ {
		for x:=0; x<ci.Width; x++ {
			c := ci.RGBAAt(x, y)
			if gamma {
				v := emath.Vec3{float64(c.R), float64(c.G), float64(c.B)}
				// The gamma curve is only defined on [0,1]
				v.FloorAt(0.0)
				v.CeilingAt(1.0)
				v = emath.GammaExpand_sRGB(v)
				c = ecolor.RGBA{float32(v[0]), float32(v[1]), float32(v[2]), c.A}
			}
			img.SetNRGBA64(x, y, c.NRGBA64())
		}
	}
	return img
}

// MaxValue is the brightest channel in the image, ignoring degenerate pixels
func (ci *ColorImage)MaxValue() float32 {
	max := float32(0.0)
	for y:=0; y<ci.Height; y++ {
		for x:=0; x<ci.Width; x++ {
			c := ci.RGBAAt(x, y)
			if c.IsDegenerate() { continue }
			if m := c.MaxChannel(); m > max { max = m }
		}
	}
	return max
}

// CountDegenerate is the number of pixels with a NaN or Inf channel
func (ci *ColorImage)CountDegenerate() int {
	n := 0
	for y:=0; y<ci.Height; y++ {
		for x:=0; x<ci.Width; x++ {
			if ci.RGBAAt(x, y).IsDegenerate() { n++ }
		}
	}
	return n
}

// DepthImage holds one non-linear depth sample per pixel, as read from a
// depth buffer. Same addressing as ColorImage.
type DepthImage struct {
	Pix    []float32
	Width  int
	Height int
}

func NewDepthImage(w, h int) *DepthImage {
	return &DepthImage{
		Pix:    make([]float32, w*h),
		Width:  w,
		Height: h,
	}
}

func (di *DepthImage)At(x, y int) float32     { return di.Pix[y*di.Width + x] }
func (di *DepthImage)Set(x, y int, d float32) { di.Pix[y*di.Width + x] = d }
func (di *DepthImage)String() string          { return fmt.Sprintf("DepthImage[%dx%d]", di.Width, di.Height) }

// NewDepthImageFrom reads depth from a grayscale image (e.g. a 16 bit TIFF
// or PNG depth dump). Gray values are mapped to [0,1].
func NewDepthImageFrom(src image.Image) *DepthImage {
	b := src.Bounds()
	di := NewDepthImage(b.Dx(), b.Dy())
	for y:=0; y<b.Dy(); y++ {
		for x:=0; x<b.Dx(); x++ {
			g := color.Gray16Model.Convert(src.At(x+b.Min.X, y+b.Min.Y)).(color.Gray16)
			di.Set(x, y, float32(g.Y) / float32(0xFFFF))
		}
	}
	return di
}

// NewDepthImageFromGrid copies a FloatGrid of depth samples
func NewDepthImageFromGrid(fg emath.FloatGrid) *DepthImage {
	di := NewDepthImage(fg.Dx(), fg.Dy())
	for y:=0; y<di.Height; y++ {
		for x:=0; x<di.Width; x++ {
			di.Set(x, y, float32(fg.Get(x, y)))
		}
	}
	return di
}

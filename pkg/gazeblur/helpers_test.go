package gazeblur

import(
	"image"

	"github.com/abworrall/gazeblur/pkg/ecolor"
)

func uniformImage(w, h int, c ecolor.RGBA) *ColorImage {
	ci := NewColorImage(w, h)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			ci.SetRGBA(x, y, c)
		}
	}
	return ci
}

// impulseImage is black, apart from one white texel at p
func impulseImage(w, h int, p image.Point) *ColorImage {
	ci := uniformImage(w, h, ecolor.RGBA{0, 0, 0, 1})
	ci.SetRGBA(p.X, p.Y, ecolor.RGBA{1, 1, 1, 1})
	return ci
}

// gradientImage has a different value at every texel, so any
// misaddressing shows up.
func gradientImage(w, h int) *ColorImage {
	ci := NewColorImage(w, h)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			ci.SetRGBA(x, y, ecolor.RGBA{float32(x)/float32(w), float32(y)/float32(h), 0.5, 1})
		}
	}
	return ci
}

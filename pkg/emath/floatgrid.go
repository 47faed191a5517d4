package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
)

// A FloatGrid is a grid of floats, one per pixel. We use them for the
// per-pixel intermediates (linear depth, confusion radius) so they can
// be dumped and inspected.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Values() []float64       { return fg.values }

func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 { return 0 }
	return len(fg.values) / fg.stride
}

func (g1 *FloatGrid)Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values:make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

// Range returns the min and max of the finite values in the grid. NaN and
// Inf values (degenerate pixels) are skipped.
func (fg *FloatGrid)Range() (float64, float64) {
	min := math.MaxFloat64
	max := -1.0 * min
	for i:=0 ; i<len(fg.values) ; i++ {
		v := fg.values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) { continue }
		if v > max { max = v }
		if v < min { min = v }
	}
	return min, max
}

// NumDegenerate counts the NaN and Inf values in the grid.
func (fg *FloatGrid)NumDegenerate() int {
	n := 0
	for _, v := range fg.values {
		if math.IsNaN(v) || math.IsInf(v, 0) { n++ }
	}
	return n
}

func (fg *FloatGrid)Stats() string {
	min, max := fg.Range()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}, degenerate=%d]", fg.Dx(), fg.Dy(), min, max, fg.NumDegenerate())
}

// ToImg generates a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision. Degenerate values are painted red.
func (fg *FloatGrid)ToImg(title string) image.Image {
	min, max := fg.Range()
	span := max - min
	if span <= 0 { span = 1.0 }

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			v := fg.Get(x,y)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				img.Set(x, y, color.RGBA64{0xFFFF, 0, 0, 0xFFFF})
				continue
			}
			gray := GammaExpand_F64 ((v - min) / span)
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,1,0)
	dc.DrawString(title, 10, 20)
	return dc.Image()
}

// SaveImg writes ToImg out as a PNG
func (fg *FloatGrid)SaveImg(title, filename string) error {
	dc := gg.NewContextForImage(fg.ToImg(title))
	return dc.SavePNG(filename)
}

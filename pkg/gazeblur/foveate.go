package gazeblur

import(
	"fmt"
	"image"

	"github.com/abworrall/gazeblur/pkg/ecolor"
)

// FoveationKernels are the expanded kernels for the two blurred bands.
// They only depend on the config, so they get built once per pass.
type FoveationKernels struct {
	Middle BlurKernel2D
	Outer  BlurKernel2D
}

// NewFoveationKernels checks the 1D kernels have the right lengths (5
// and 9 taps), and expands them.
func NewFoveationKernels(middle, outer BlurKernel1D) (FoveationKernels, error) {
	if err := middle.Validate(MiddleKernelRadius); err != nil {
		return FoveationKernels{}, fmt.Errorf("middle kernel: %w", err)
	}
	if err := outer.Validate(OuterKernelRadius); err != nil {
		return FoveationKernels{}, fmt.Errorf("outer kernel: %w", err)
	}
	return FoveationKernels{Middle: Expand(middle), Outer: Expand(outer)}, nil
}

// For picks the kernel for a band. The foveal band has no kernel.
func (fk FoveationKernels)For(r Region) (BlurKernel2D, bool) {
	switch r {
	case RegionMiddle: return fk.Middle, true
	case RegionOuter:  return fk.Outer, true
	}
	return BlurKernel2D{}, false
}

// Foveate filters the pixel at p for the given band. Foveal pixels are
// passed through untouched. Otherwise it is a plain weighted sum over the
// kernel footprint; there is no renormalization, the weights are assumed
// to sum to 1.
func Foveate(s Sampler, p image.Point, region Region, kernel BlurKernel2D) ecolor.RGBA {
	if region == RegionFoveal {
		return s.Offset(p, 0, 0)
	}

	sum := ecolor.RGBA{}
	r := kernel.Radius()
	for i:=0; i<kernel.Side; i++ {
		for j:=0; j<kernel.Side; j++ {
			w := float32(kernel.At(i, j))
			sum = sum.Add(s.Offset(p, j-r, i-r).Scale(w))
		}
	}
	return sum
}

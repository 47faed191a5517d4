package gazeblur

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Kernel radii, in pixels, for the two blurred bands
const(
	MiddleKernelRadius = 2
	OuterKernelRadius  = 4
)

var(
	// Normalized Gaussians; sigma=1 over 5 taps, and sigma=2 over 9 taps.
	DefaultMiddleWeights = BlurKernel1D{0.054489, 0.244201, 0.402620, 0.244201, 0.054489}
	DefaultOuterWeights  = BlurKernel1D{
		0.027631, 0.066282, 0.123832, 0.180174, 0.204164, 0.180174, 0.123832, 0.066282, 0.027631,
	}
)

// BlurKernel1D is an odd length run of weights, centered on the middle
// tap. The weights should sum to 1, but that is up to whoever supplies
// them.
type BlurKernel1D []float64

func (k BlurKernel1D)Radius() int  { return len(k) / 2 }
func (k BlurKernel1D)Sum() float64 { return floats.Sum(k) }

// Validate checks the kernel has the length for the given radius, and
// that no weight is negative or non-finite.
func (k BlurKernel1D)Validate(radius int) error {
	if len(k) != 2*radius+1 {
		return fmt.Errorf("%w: got %d taps, radius %d needs %d", ErrKernelLength, len(k), radius, 2*radius+1)
	}
	for i, w := range k {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: tap %d is %v", ErrKernelWeight, i, w)
		}
	}
	return nil
}

// BlurKernel2D is a square table of weights, row major; row i is the
// vertical offset i-radius, column j the horizontal offset j-radius.
type BlurKernel2D struct {
	Side    int
	Weights []float64
}

func (k BlurKernel2D)Radius() int           { return k.Side / 2 }
func (k BlurKernel2D)At(i, j int) float64   { return k.Weights[i*k.Side + j] }
func (k BlurKernel2D)Sum() float64          { return floats.Sum(k.Weights) }

func (k BlurKernel2D)String() string {
	return fmt.Sprintf("Kernel2D[%dx%d, sum %.6f]", k.Side, k.Side, k.Sum())
}

// Expand builds the 2D kernel as the outer product of the 1D kernel with
// itself: w2[i][j] = w[i] * w[j]. So sum(w2) == sum(w)^2.
func Expand(w BlurKernel1D) BlurKernel2D {
	n := len(w)
	if n == 0 {
		return BlurKernel2D{}
	}

	v := mat.NewVecDense(n, []float64(w))
	var outer mat.Dense
	outer.Outer(1, v, v)

	k := BlurKernel2D{Side: n, Weights: make([]float64, n*n)}
	for i:=0; i<n; i++ {
		for j:=0; j<n; j++ {
			k.Weights[i*n + j] = outer.At(i, j)
		}
	}
	return k
}

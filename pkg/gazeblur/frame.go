package gazeblur

import(
	"fmt"
	"image"

	"github.com/abworrall/gazeblur/pkg/emath"
)

// Frame holds the inputs for one frame, and the output of filtering it.
// While a pass runs, everything except Output and the grids is read-only.
type Frame struct {
	Config

	Color          *ColorImage  // The rendered image (the left eye, for anaglyphs)
	Depth          *DepthImage  // The depth buffer that goes with Color
	Right          *ColorImage  // The right eye, for anaglyphs

	Output         *ColorImage

	// Per-pixel intermediates, filled in by the DoF stages
	LinearDepthGrid emath.FloatGrid
	ConfusionGrid   emath.FloatGrid
	RegionCounts    [NumRegions]int

	// From the color image's EXIF resolution tags, if it had them. Used
	// when the config leaves the pixel pitch unset.
	DetectedPixelPitch float64

	// Pixels whose workings get logged (at debug level) after a pass
	DebugPixels    []image.Point

	// Derived in Prepare; invariant across all pixels in the pass
	stage          PixelFunc
	projection     ProjectionParameters
	focusDistance  float64
	kernels        FoveationKernels
	sampler        Sampler
	rightSampler   Sampler
	depthSampler   DepthSampler
}

func NewFrame() Frame {
	return Frame{
		Config: NewConfig(),
	}
}

// NewFrameFromImages is for callers that already have the buffers in
// memory. depth and right may be nil if the stage doesn't need them.
func NewFrameFromImages(cfg Config, color *ColorImage, depth *DepthImage, right *ColorImage) Frame {
	return Frame{
		Config: cfg,
		Color:  color,
		Depth:  depth,
		Right:  right,
	}
}

func (f Frame)String() string {
	str := fmt.Sprintf("Frame[stage %s, gaze %s, boundary %s", f.Stage, f.Gaze.Vec(), f.Boundary)
	if f.Color != nil { str += ", " + f.Color.String() }
	if f.Depth != nil { str += ", " + f.Depth.String() }
	if f.Right != nil { str += ", right " + f.Right.String() }
	return str + "]"
}

func (f *Frame)FocusDistance() float64            { return f.focusDistance }
func (f *Frame)ProjectionParams() ProjectionParameters { return f.projection }
func (f *Frame)Kernels() FoveationKernels         { return f.kernels }

// Prepare checks the inputs fit together, and works out everything that
// is the same for every pixel: the stage, the samplers, the expanded
// kernels, and the focus distance (the depth under the gaze point).
func (f *Frame)Prepare() error {
	if err := f.Config.Finalize(); err != nil {
		return err
	}
	stage, _ := f.Config.GetStage()
	f.stage = stage

	if f.Color == nil {
		return fmt.Errorf("%w: color image", ErrMissingInput)
	}
	w, h := f.Color.Width, f.Color.Height
	f.sampler = Sampler{Image: f.Color, Boundary: f.BoundaryPolicy}

	if stagesNeedingRight[f.Stage] {
		if f.Right == nil {
			return fmt.Errorf("%w: right eye image for stage %q", ErrMissingInput, f.Stage)
		}
		if !f.Right.SameSize(w, h) {
			return fmt.Errorf("%w: right %s vs color %s", ErrDimensionMismatch, f.Right, f.Color)
		}
		f.rightSampler = Sampler{Image: f.Right, Boundary: f.BoundaryPolicy}
	}

	kernels, err := NewFoveationKernels(f.MiddleWeights, f.OuterWeights)
	if err != nil {
		return err
	}
	f.kernels = kernels

	if stagesNeedingDepth[f.Stage] {
		if f.Depth == nil {
			return fmt.Errorf("%w: depth image for stage %q", ErrMissingInput, f.Stage)
		}
		if f.Depth.Width != w || f.Depth.Height != h {
			return fmt.Errorf("%w: depth %s vs color %s", ErrDimensionMismatch, f.Depth, f.Color)
		}
		if f.Optics.PixelPitch == 0 && f.DetectedPixelPitch > 0 {
			f.Optics.PixelPitch = f.DetectedPixelPitch
		}
		if f.Optics.PixelPitch <= 0 {
			return ErrNoPixelPitch
		}
		f.depthSampler = DepthSampler{Image: f.Depth, Boundary: f.BoundaryPolicy}
		f.projection = f.Projection.Params()

		// The eye focuses on whatever is under the gaze point
		uvGaze := f.Gaze.Vec().Div(f.Color.WindowSize())
		gazeSample := f.depthSampler.Sample(uvGaze)
		f.focusDistance = f.projection.LinearDepth(float64(gazeSample), f.Guarded)

		f.LinearDepthGrid = emath.NewFloatGrid(w, h)
		f.ConfusionGrid = emath.NewFloatGrid(w, h)

		Logger().Info("depth of field prepared", "projection", f.projection.String(),
			"focus_mm", f.focusDistance, "optics", f.Optics.String())
	} else {
		f.LinearDepthGrid = emath.FloatGrid{}
		f.ConfusionGrid = emath.FloatGrid{}
	}

	return nil
}

package gazeblur

import(
	"fmt"
	"math"
)

// DefaultEyeFocalLength is the distance (mm) from the eye's lens to the
// retina in the reduced eye model.
const DefaultEyeFocalLength = 17.0

// OpticsModel holds the viewer and display parameters for the depth of
// field blur.
type OpticsModel struct {
	PupilDiameter  float64 `yaml:"pupildiameter"  toml:"pupildiameter"`  // mm
	PixelPitch     float64 `yaml:"pixelpitch"     toml:"pixelpitch"`     // mm per pixel
	EyeFocalLength float64 `yaml:"eyefocallength" toml:"eyefocallength"` // mm
}

func (o OpticsModel)String() string {
	return fmt.Sprintf("Optics[pupil %.2fmm, pitch %.4fmm/px, focal %.1fmm]", o.PupilDiameter, o.PixelPitch, o.EyeFocalLength)
}

// ConfusionDiameter is the diameter (mm) of the blur disc that a point at
// fragmentDistance makes, when the eye is focused at focusDistance:
//   m = f / (focus - f)
//   c = m * pupil * |frag - focus| / frag
// It is exactly zero for in-focus fragments. focusDistance == eyeFocalLength
// or fragmentDistance == 0 gives Inf/NaN.
func ConfusionDiameter(fragmentDistance, focusDistance, pupilDiameter, eyeFocalLength float64) float64 {
	magnification := eyeFocalLength / (focusDistance - eyeFocalLength)
	defocus := math.Abs(fragmentDistance - focusDistance) / fragmentDistance
	return magnification * pupilDiameter * defocus
}

// ConfusionRadiusPixels converts the confusion diameter into a disc
// radius in pixels, for the defocus search.
func (o OpticsModel)ConfusionRadiusPixels(fragmentDistance, focusDistance float64, guarded bool) float64 {
	if guarded {
		if d := focusDistance - o.EyeFocalLength; math.Abs(d) < DepthEpsilon {
			focusDistance = o.EyeFocalLength + math.Copysign(DepthEpsilon, d)
		}
		if math.Abs(fragmentDistance) < DepthEpsilon {
			fragmentDistance = math.Copysign(DepthEpsilon, fragmentDistance)
		}
	}
	diameter := ConfusionDiameter(fragmentDistance, focusDistance, o.PupilDiameter, o.EyeFocalLength)
	return diameter / o.PixelPitch / 2.0
}

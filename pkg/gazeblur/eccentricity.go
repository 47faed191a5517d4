package gazeblur

import(
	"fmt"

	"github.com/abworrall/gazeblur/pkg/emath"
)

// A Region is one of the three concentric eccentricity bands
type Region int

const(
	RegionFoveal Region = iota
	RegionMiddle
	RegionOuter

	NumRegions = 3
)

func (r Region)String() string {
	switch r {
	case RegionFoveal: return "foveal"
	case RegionMiddle: return "middle"
	case RegionOuter:  return "outer"
	}
	return fmt.Sprintf("Region(%d)", int(r))
}

// Eccentricity holds the per-frame parameters of the classifier. The
// angles and VisualAngleScale must use the same unit (we use degrees).
type Eccentricity struct {
	E1               float64 `yaml:"e1"               toml:"e1"`               // foveal/middle boundary
	E2               float64 `yaml:"e2"               toml:"e2"`               // middle/outer boundary
	VisualAngleScale float64 `yaml:"visualanglescale" toml:"visualanglescale"` // angle subtended by one pixel
}

func (e Eccentricity)Validate() error {
	if !(e.E1 >= 0 && e.E1 < e.E2) {
		return fmt.Errorf("%w: e1=%v, e2=%v", ErrBadThresholds, e.E1, e.E2)
	}
	if !(e.VisualAngleScale > 0) {
		return fmt.Errorf("%w: visualanglescale=%v", ErrBadThresholds, e.VisualAngleScale)
	}
	return nil
}

// VisualAngle is the eccentricity of pixelCoord, seen from gaze
func (e Eccentricity)VisualAngle(pixelCoord, gaze emath.Vec2) float64 {
	return e.VisualAngleScale * pixelCoord.Dist(gaze)
}

func (e Eccentricity)Classify(pixelCoord, gaze emath.Vec2) Region {
	return Classify(pixelCoord, gaze, e.VisualAngleScale, e.E1, e.E2)
}

// Classify works out the visual angle between a pixel and the gaze point,
// and assigns the band. Angles that land exactly on e1 or e2 go to the
// outer of the two bands.
func Classify(pixelCoord, gaze emath.Vec2, visualAngleScale, e1, e2 float64) Region {
	angle := visualAngleScale * pixelCoord.Dist(gaze)

	switch {
	case angle >= e2: return RegionOuter
	case angle >= e1: return RegionMiddle
	default:          return RegionFoveal
	}
}

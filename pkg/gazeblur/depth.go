package gazeblur

import(
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DepthEpsilon is the smallest magnitude a divisor is allowed to have in
// guarded mode.
const DepthEpsilon = 1e-6

// ProjectionParameters are the two entries of the camera's (column major)
// projection matrix needed to undo the depth buffer's non-linear encoding:
// A is row 3 / column 3, B is row 3 / column 4.
type ProjectionParameters struct {
	A float64 `yaml:"a" toml:"a"`
	B float64 `yaml:"b" toml:"b"`
}

func (pp ProjectionParameters)String() string {
	return fmt.Sprintf("Proj[A=%.6f, B=%.6f]", pp.A, pp.B)
}

// ProjectionFromMat4 picks A and B out of a full projection matrix.
// mgl32 matrices are column major, same as GLSL, and At takes (row, col).
func ProjectionFromMat4(m mgl32.Mat4) ProjectionParameters {
	return ProjectionParameters{
		A: float64(m.At(2, 2)),
		B: float64(m.At(2, 3)),
	}
}

// PerspectiveProjection builds the projection a renderer would have used
// via mgl32.Perspective (vertical field of view in degrees).
func PerspectiveProjection(fovyDeg, aspect, near, far float64) ProjectionParameters {
	m := mgl32.Perspective(mgl32.DegToRad(float32(fovyDeg)), float32(aspect), float32(near), float32(far))
	return ProjectionFromMat4(m)
}

// LinearDepth turns a stored depth sample into eye-space distance:
//   wClip     = projB * (1/depthSample + projA)
//   trueDepth = -wClip
// A depth sample of zero gives Inf (or NaN), which is let through.
func LinearDepth(depthSample, projA, projB float64) float64 {
	return -projB * (1.0/depthSample + projA)
}

// LinearDepth is LinearDepth using these parameters. When guarded, a
// depth sample closer to zero than DepthEpsilon is pushed out to it.
func (pp ProjectionParameters)LinearDepth(depthSample float64, guarded bool) float64 {
	if guarded && math.Abs(depthSample) < DepthEpsilon {
		depthSample = math.Copysign(DepthEpsilon, depthSample)
	}
	return LinearDepth(depthSample, pp.A, pp.B)
}

// EncodeDepth is the inverse of LinearDepth; it gives the depth sample
// that reconstructs to eye-space distance z. Used to synthesize depth
// buffers.
func (pp ProjectionParameters)EncodeDepth(z float64) float64 {
	return 1.0 / (-z/pp.B - pp.A)
}

package emath

import "math"

// The sRGB transfer curve (IEC 61966-2-1): linear near black, then a
// 1/2.4 power with an offset.
const(
	srgbLinearCutoff = 0.0031308
	srgbLinearSlope  = 12.92
	srgbExponent     = 1.0 / 2.4
	srgbOffset       = 0.055
)

// GammaExpand_F64 maps a linear value in [0,1] onto the sRGB curve
func GammaExpand_F64(f float64) float64 {
	if f <= srgbLinearCutoff {
		return srgbLinearSlope * f
	}
	return (1.0+srgbOffset) * math.Pow(f, srgbExponent) - srgbOffset
}

// GammaExpand_sRGB does each channel. They should already be clipped to [0,1].
func GammaExpand_sRGB(v Vec3) Vec3 {
	for i := range v {
		v[i] = GammaExpand_F64(v[i])
	}
	return v
}

// Clamp01 pins f into [0,1]. NaN stays NaN.
func Clamp01(f float64) float64 {
	if f < 0.0 { return 0.0 }
	if f > 1.0 { return 1.0 }
	return f
}

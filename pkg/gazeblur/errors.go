package gazeblur

import "errors"

var(
	ErrKernelLength      = errors.New("blur kernel has wrong length")
	ErrKernelWeight      = errors.New("blur kernel has a negative or non-finite weight")
	ErrDimensionMismatch = errors.New("image dimensions do not match")
	ErrUnknownStage      = errors.New("no stage with that name")
	ErrUnknownBoundary   = errors.New("no boundary policy with that name")
	ErrNoPixelPitch      = errors.New("pixel pitch not configured")
	ErrBadThresholds     = errors.New("eccentricity thresholds must satisfy 0 <= e1 < e2")
	ErrBadOptics         = errors.New("optics parameters out of range")
	ErrMissingInput      = errors.New("required input image not loaded")
)

package flipdisc

import "errors"

var (
	// ErrInvalidSize is returned by New when a logical or grid dimension is not positive.
	ErrInvalidSize = errors.New("flipdisc: dimensions must be positive")

	// ErrInvalidAngles is returned when a rotation angle is NaN or infinite.
	ErrInvalidAngles = errors.New("flipdisc: rotation angles must be finite numbers")

	// ErrRotationNotSet is returned when applying a Rotation that was never set.
	ErrRotationNotSet = errors.New("flipdisc: rotation matrix is not set")

	// ErrInvalidPoints is returned when a textual point list cannot be parsed.
	ErrInvalidPoints = errors.New("flipdisc: invalid point list")

	// ErrInvalidRaster is returned when a raster's pixel buffer does not match its size.
	ErrInvalidRaster = errors.New("flipdisc: invalid raster")

	// ErrEmptyAnimation is returned when an animation has no frame with a non-zero delay.
	ErrEmptyAnimation = errors.New("flipdisc: animation has no displayable frames")
)

package cubestate

import "errors"

// Sentinel errors for the cubestate package.
var (
	// Coordinate errors
	ErrInvalidFace     = errors.New("cubestate: invalid face")
	ErrInvalidIndex    = errors.New("cubestate: sticker index out of range")
	ErrCenterImmutable = errors.New("cubestate: center sticker is immutable")
	ErrInvalidColor    = errors.New("cubestate: invalid color")

	// Parsing errors
	ErrInvalidNotation    = errors.New("cubestate: invalid move notation")
	ErrInvalidStateString = errors.New("cubestate: invalid state string")

	// Validation errors
	ErrIncomplete     = errors.New("cubestate: cube not fully entered")
	ErrColorImbalance = errors.New("cubestate: color count is not 9")
)

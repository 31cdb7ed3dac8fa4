package playback

import "errors"

var (
	ErrOutOfRange   = errors.New("playback: step out of range")
	ErrInvalidSpeed = errors.New("playback: invalid speed")
	ErrFinished     = errors.New("playback: all steps played")
)

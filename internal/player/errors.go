package player

import "errors"

var (
	// ErrNoData is returned when an operation needs loaded audio and
	// none is present.
	ErrNoData = errors.New("no audio data loaded")

	// ErrDevice wraps output device failures. The engine halts playback
	// and returns to Idle when it occurs.
	ErrDevice = errors.New("audio output device failure")

	// ErrShutdownTimeout is returned when a streaming run fails to exit
	// within the configured stop timeout. The device handle is
	// force-released rather than left hanging.
	ErrShutdownTimeout = errors.New("playback shutdown timed out")
)

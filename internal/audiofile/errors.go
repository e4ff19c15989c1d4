package audiofile

import "errors"

var (
	// ErrNoData is returned when a file decodes to zero frames or a
	// buffer is constructed without samples.
	ErrNoData = errors.New("no audio data")

	// ErrUnsupportedFormat is returned for files that are neither WAV,
	// MP3 nor FLAC.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrChannelMismatch is returned when per-channel sample slices have
	// different lengths.
	ErrChannelMismatch = errors.New("channel sample counts differ")

	// ErrInvalidRate is returned for a non-positive sample rate.
	ErrInvalidRate = errors.New("invalid sample rate")
)

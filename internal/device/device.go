// Package device abstracts the audio output device behind a pull-based
// callback: the device asks for blocks of interleaved float32 frames at
// its own cadence and the callback must fill them without blocking.
package device

import "errors"

// Params describes the stream format an output device is opened with.
type Params struct {
	SampleRate int
	Channels   int
	// BlockSize is the preferred frames-per-callback. Backends treat it
	// as a hint; the callback must handle any requested length.
	BlockSize int
}

// Callback fills out with interleaved float32 samples. len(out) is a
// whole number of frames (frames × channels). It runs on the device's
// own thread and must only check flags and copy memory.
type Callback func(out []float32)

// Device is an audio output that pulls samples through a Callback.
type Device interface {
	// Open starts the stream. It fails if the device is already open.
	Open(p Params, cb Callback) error
	// Close stops the stream and releases the device. Closing an
	// already-closed device is a no-op.
	Close() error
}

// ErrAlreadyOpen is returned by Open on an open device.
var ErrAlreadyOpen = errors.New("output device already open")

func validate(p Params) error {
	if p.SampleRate <= 0 {
		return errors.New("sample rate must be positive")
	}
	if p.Channels <= 0 {
		return errors.New("channel count must be positive")
	}
	if p.BlockSize <= 0 {
		return errors.New("block size must be positive")
	}
	return nil
}

// Package audiofile loads audio files into immutable PCM buffers for
// the playback engine. Decoding happens once, up front; the resulting
// Buffer is read-only and safe to share with a real-time audio callback.
package audiofile

// Buffer holds decoded PCM audio as planar per-channel samples in the
// range [-1, 1]. A Buffer is immutable after construction.
type Buffer struct {
	channels [][]float64
	rate     int
}

// NewBuffer builds a Buffer from per-channel sample slices. All channels
// must hold the same number of frames and rate must be positive.
func NewBuffer(channels [][]float64, rate int) (*Buffer, error) {
	if rate <= 0 {
		return nil, ErrInvalidRate
	}
	if len(channels) == 0 || len(channels[0]) == 0 {
		return nil, ErrNoData
	}
	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != frames {
			return nil, ErrChannelMismatch
		}
	}
	return &Buffer{channels: channels, rate: rate}, nil
}

// Channels returns the channel count.
func (b *Buffer) Channels() int { return len(b.channels) }

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int { return b.rate }

// Frames returns the number of frames per channel.
func (b *Buffer) Frames() int {
	if len(b.channels) == 0 {
		return 0
	}
	return len(b.channels[0])
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Frames()) / float64(b.rate)
}

// Sample returns the sample for one channel at one frame.
func (b *Buffer) Sample(ch, frame int) float64 {
	return b.channels[ch][frame]
}

// IsLoaded reports whether the buffer holds any audio.
func (b *Buffer) IsLoaded() bool {
	return b != nil && b.Frames() > 0
}

// CopyInterleaved writes interleaved float32 frames starting at
// fromFrame into dst and returns the number of frames copied. dst must
// hold a whole number of frames; frames past the end of the buffer are
// not written, so callers zero-fill any remainder themselves.
func (b *Buffer) CopyInterleaved(dst []float32, fromFrame int) int {
	nch := len(b.channels)
	if nch == 0 || fromFrame >= b.Frames() || fromFrame < 0 {
		return 0
	}
	frames := len(dst) / nch
	if avail := b.Frames() - fromFrame; frames > avail {
		frames = avail
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < nch; ch++ {
			dst[i*nch+ch] = float32(b.channels[ch][fromFrame+i])
		}
	}
	return frames
}

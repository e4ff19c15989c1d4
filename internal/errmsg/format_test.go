//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpFileOpen,
			err:      nil,
			expected: "",
		},
		{
			name:     "file open operation",
			op:       OpFileOpen,
			err:      errors.New("no such file"),
			expected: "Failed to open audio file: no such file",
		},
		{
			name:     "playback start operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
		{
			name:     "seek operation",
			op:       OpPlaybackSeek,
			err:      errors.New("no audio data loaded"),
			expected: "Failed to seek: no audio data loaded",
		},
		{
			name:     "device open operation",
			op:       OpDeviceOpen,
			err:      errors.New("device busy"),
			expected: "Failed to open output device: device busy",
		},
		{
			name:     "config load operation",
			op:       OpConfigLoad,
			err:      errors.New("parse error"),
			expected: "Failed to load configuration: parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpFileOpen,
			context:  "track.wav",
			err:      nil,
			expected: "",
		},
		{
			name:     "includes context",
			op:       OpFileOpen,
			context:  "track.wav",
			err:      errors.New("permission denied"),
			expected: "Failed to open audio file 'track.wav': permission denied",
		},
		{
			name:     "empty context falls back to plain format",
			op:       OpFileRead,
			context:  "",
			err:      errors.New("truncated"),
			expected: "Failed to read audio data: truncated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

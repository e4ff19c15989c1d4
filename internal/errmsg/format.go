// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// File operations
	OpFileOpen Op = "open audio file"
	OpFileRead Op = "read audio data"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackStop  Op = "stop playback"
	OpPlaybackSeek  Op = "seek"

	// Device operations
	OpDeviceOpen Op = "open output device"

	// Configuration
	OpConfigLoad Op = "load configuration"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

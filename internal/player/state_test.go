package player

import "testing"

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{Idle, "Idle"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{Stopping, "Stopping"},
		{Phase(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.expected {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.expected)
		}
	}
}

func TestPhase_IsActive(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected bool
	}{
		{Idle, false},
		{Playing, true},
		{Paused, true},
		{Stopping, false},
	}

	for _, tt := range tests {
		if got := tt.phase.IsActive(); got != tt.expected {
			t.Errorf("%v.IsActive() = %v, want %v", tt.phase, got, tt.expected)
		}
	}
}

func TestPhase_CanPause(t *testing.T) {
	if !Playing.CanPause() {
		t.Error("Playing.CanPause() should be true")
	}
	for _, phase := range []Phase{Idle, Paused, Stopping} {
		if phase.CanPause() {
			t.Errorf("%v.CanPause() should be false", phase)
		}
	}
}

func TestPhase_CanResume(t *testing.T) {
	if !Paused.CanResume() {
		t.Error("Paused.CanResume() should be true")
	}
	for _, phase := range []Phase{Idle, Playing, Stopping} {
		if phase.CanResume() {
			t.Errorf("%v.CanResume() should be false", phase)
		}
	}
}

func TestSignal_String(t *testing.T) {
	tests := []struct {
		sig      Signal
		expected string
	}{
		{SignalStarted, "Started"},
		{SignalPaused, "Paused"},
		{SignalStopped, "Stopped"},
		{SignalFinished, "Finished"},
		{Signal(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.sig.String(); got != tt.expected {
			t.Errorf("Signal(%d).String() = %q, want %q", tt.sig, got, tt.expected)
		}
	}
}

package player

// Signal is a discrete playback lifecycle notification.
//
// Emitted by:
//   - Play: Started, both on a fresh start and on resume from pause
//   - Seek while playing: Started, once the restarted run is live
//   - Pause: Paused, only on an actual Playing → Paused transition
//   - Stop: Stopped, after the run has fully exited
//   - natural completion: Finished, exactly once per run that reaches
//     the end of the buffer
//
// NOT emitted by:
//   - Seek while paused or idle: observers get a position event only,
//     so a UI can reflect the jump without audio restarting
//   - repeated Pause calls: idempotent, no duplicate Paused
type Signal int

const (
	SignalStarted Signal = iota
	SignalPaused
	SignalStopped
	SignalFinished
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case SignalStarted:
		return "Started"
	case SignalPaused:
		return "Paused"
	case SignalStopped:
		return "Stopped"
	case SignalFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// ErrorEvent is emitted when a background failure halts playback.
type ErrorEvent struct {
	Op  string // e.g. "open output device", "stop"
	Err error
}

// Status is a consistent snapshot of the engine state, taken under the
// state lock.
type Status struct {
	Phase    Phase
	Position float64 // seconds
	Duration float64 // seconds
}

// IsPlaying reports whether audio is actively being produced.
func (s Status) IsPlaying() bool { return s.Phase == Playing }

// IsPaused reports whether playback is suspended mid-track.
func (s Status) IsPaused() bool { return s.Phase == Paused }

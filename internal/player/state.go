package player

// Phase represents the playback state machine.
//
// Valid transitions:
//   - Idle    → Playing  (via Play)
//   - Playing → Paused   (via Pause)
//   - Playing → Stopping (via Stop or a playing Seek)
//   - Playing → Idle     (natural completion)
//   - Paused  → Playing  (via Play)
//   - Paused  → Stopping (via Stop)
//   - Stopping → Idle    (run joined)
//
// Invalid transitions are handled as no-ops: pausing while Idle or
// Paused does nothing, playing while Playing does nothing, stopping is
// always allowed and always lands in Idle.
type Phase int

const (
	Idle Phase = iota
	Playing
	Paused
	Stopping
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Stopping:
		return "Stopping"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a streaming run exists (Playing or Paused).
func (p Phase) IsActive() bool {
	return p == Playing || p == Paused
}

// CanPause returns true if the phase allows pausing.
func (p Phase) CanPause() bool {
	return p == Playing
}

// CanResume returns true if the phase allows resuming in place.
func (p Phase) CanResume() bool {
	return p == Paused
}

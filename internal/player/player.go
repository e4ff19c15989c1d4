// Package player implements the real-time playback engine: a phase
// state machine, a background streaming run feeding an output device
// through a pull callback, and a periodic position publisher.
//
// Three actors touch the shared state: the caller's control thread
// (Load/Play/Pause/Stop/Seek), the device callback on the device's own
// thread, and the publisher goroutine. All of them serialize through
// one mutex, held only for flag checks and position arithmetic so the
// callback never blocks for long.
package player

import (
	"sync"
	"time"

	"github.com/solaaa/wavedisplay/internal/audiofile"
	"github.com/solaaa/wavedisplay/internal/device"
)

const (
	defaultBlockSize        = 1024
	defaultPositionInterval = 20 * time.Millisecond
	defaultStopTimeout      = 3 * time.Second

	// completionPollInterval bounds how late the run loop notices that
	// the callback has played past the end of the buffer.
	completionPollInterval = 10 * time.Millisecond
)

// Settings configures one Player. Zero values take defaults.
type Settings struct {
	// BlockSize is the frames-per-callback requested from the device.
	BlockSize int
	// PositionInterval is the publisher cadence.
	PositionInterval time.Duration
	// StopTimeout bounds how long Stop and a playing Seek wait for the
	// streaming run to exit before force-releasing the device.
	StopTimeout time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.BlockSize <= 0 {
		s.BlockSize = defaultBlockSize
	}
	if s.PositionInterval <= 0 {
		s.PositionInterval = defaultPositionInterval
	}
	if s.StopTimeout <= 0 {
		s.StopTimeout = defaultStopTimeout
	}
	return s
}

// Player owns the playback state machine and the loaded audio buffer.
type Player struct {
	dev      device.Device
	settings Settings

	mu            sync.Mutex
	buf           *audiofile.Buffer
	phase         Phase
	pos           float64 // seconds, clamped to [0, duration]
	startPos      float64 // position the current run began at
	stopRequested bool
	cancelCh      chan struct{} // closed to cancel the current run
	runDone       chan struct{} // closed when the current run has exited

	pubMu     sync.Mutex
	pubCancel chan struct{}
	pubDone   chan struct{}

	subsMu sync.RWMutex
	subs   []*Subscription
	closed bool
}

// New creates an idle Player that plays through dev.
func New(dev device.Device, settings Settings) *Player {
	return &Player{
		dev:      dev,
		settings: settings.withDefaults(),
		phase:    Idle,
	}
}

// Load replaces the audio buffer, stopping any active playback first.
// The buffer is owned by the player afterwards and must not be mutated.
func (p *Player) Load(buf *audiofile.Buffer) error {
	if buf == nil || !buf.IsLoaded() {
		return ErrNoData
	}

	p.mu.Lock()
	active := p.runDone != nil || p.phase != Idle
	p.mu.Unlock()
	if active {
		if err := p.Stop(); err != nil {
			return err
		}
	}

	p.mu.Lock()
	p.buf = buf
	p.pos = 0
	p.startPos = 0
	p.phase = Idle
	p.mu.Unlock()
	return nil
}

// Play starts or resumes playback.
//
// From Paused it resumes in place: the streaming run is still alive and
// emitting silence, so no device reopen happens. From Idle it rewinds
// if the previous run played to the end, then launches a new run.
// Playing and Stopping are no-ops. Emits Started on any actual start.
func (p *Player) Play() error {
	p.mu.Lock()
	if !p.buf.IsLoaded() {
		p.mu.Unlock()
		return ErrNoData
	}

	switch p.phase {
	case Playing, Stopping:
		p.mu.Unlock()
		return nil

	case Paused:
		p.phase = Playing
		p.mu.Unlock()
		p.startPublisher()
		p.emit(SignalStarted)
		return nil

	default: // Idle
		if p.pos >= p.buf.Duration() {
			p.pos = 0
		}
		p.startPos = p.pos
		p.stopRequested = false
		p.phase = Playing
		buf := p.buf
		cancel := make(chan struct{})
		done := make(chan struct{})
		p.cancelCh = cancel
		p.runDone = done
		p.mu.Unlock()

		p.startPublisher()
		go p.run(buf, cancel, done)
		p.emit(SignalStarted)
		return nil
	}
}

// Pause suspends playback without tearing down the stream; the callback
// emits silence until Play resumes. No-op unless currently Playing, so
// repeated calls emit a single Paused.
func (p *Player) Pause() {
	p.mu.Lock()
	if !p.phase.CanPause() {
		p.mu.Unlock()
		return
	}
	p.phase = Paused
	p.mu.Unlock()

	p.stopPublisher()
	p.emit(SignalPaused)
}

// Stop cancels the streaming run, joins it within the stop timeout,
// and resets the engine to Idle at position zero. On timeout the device
// handle is force-released and ErrShutdownTimeout is returned.
func (p *Player) Stop() error {
	err := p.quiesceRun()

	p.mu.Lock()
	p.phase = Idle
	p.pos = 0
	p.startPos = 0
	p.stopRequested = false
	p.cancelCh = nil
	p.runDone = nil
	p.mu.Unlock()

	if err != nil {
		p.publishError(ErrorEvent{Op: "stop playback", Err: err})
		return err
	}
	p.emit(SignalStopped)
	return nil
}

// Seek moves the playback position to target seconds, clamped into
// [0, duration].
//
// While playing this is a stop-and-restart: the current run is
// cancelled and joined, then a fresh run starts at the target and
// Started is emitted. Otherwise only the position fields move and a
// position event is published so observers can reflect the jump.
// Callers wanting pause-while-dragging semantics capture and restore
// the playing state themselves around repeated Seek calls.
func (p *Player) Seek(target float64) error {
	p.mu.Lock()
	if !p.buf.IsLoaded() {
		p.mu.Unlock()
		return ErrNoData
	}
	dur := p.buf.Duration()
	if target < 0 {
		target = 0
	}
	if target > dur {
		target = dur
	}

	if p.phase != Playing {
		p.pos = target
		p.startPos = target
		p.mu.Unlock()
		p.publishPosition(target)
		return nil
	}
	buf := p.buf
	p.mu.Unlock()

	if err := p.quiesceRun(); err != nil {
		p.mu.Lock()
		p.phase = Idle
		p.stopRequested = false
		p.cancelCh = nil
		p.runDone = nil
		p.mu.Unlock()
		p.publishError(ErrorEvent{Op: "seek", Err: err})
		return err
	}

	p.mu.Lock()
	p.pos = target
	p.startPos = target
	p.stopRequested = false
	p.phase = Playing
	cancel := make(chan struct{})
	done := make(chan struct{})
	p.cancelCh = cancel
	p.runDone = done
	p.mu.Unlock()

	p.startPublisher()
	go p.run(buf, cancel, done)
	p.emit(SignalStarted)
	return nil
}

// quiesceRun stops the publisher, signals the current run to exit and
// joins it within the stop timeout. It leaves the phase at Stopping;
// the caller settles the final state. Safe to call with no run active.
func (p *Player) quiesceRun() error {
	p.mu.Lock()
	cancel := p.cancelCh
	done := p.runDone
	p.cancelCh = nil
	if cancel != nil {
		p.phase = Stopping
		p.stopRequested = true
	}
	p.mu.Unlock()

	p.stopPublisher()
	if cancel == nil {
		return nil
	}
	close(cancel)

	select {
	case <-done:
		return nil
	case <-time.After(p.settings.StopTimeout):
		// The run is wedged; release the device rather than hang.
		_ = p.dev.Close()
		return ErrShutdownTimeout
	}
}

// Position returns the current playback position in seconds.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

// Duration returns the loaded buffer duration in seconds, 0 if none.
func (p *Player) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.buf.IsLoaded() {
		return 0
	}
	return p.buf.Duration()
}

// IsLoaded reports whether audio data is loaded.
func (p *Player) IsLoaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.IsLoaded()
}

// Snapshot returns a consistent view of phase, position and duration.
func (p *Player) Snapshot() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := Status{Phase: p.phase, Position: p.pos}
	if p.buf.IsLoaded() {
		st.Duration = p.buf.Duration()
	}
	return st
}

// Subscribe creates a new event subscription. Subscriptions created
// after Close are returned already done.
func (p *Player) Subscribe() *Subscription {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()
	sub := newSubscription()
	if p.closed {
		sub.close()
		return sub
	}
	p.subs = append(p.subs, sub)
	return sub
}

// Close stops playback and tears down all subscriptions.
func (p *Player) Close() error {
	p.subsMu.Lock()
	if p.closed {
		p.subsMu.Unlock()
		return nil
	}
	p.closed = true
	p.subsMu.Unlock()

	err := p.Stop()

	p.subsMu.Lock()
	for _, sub := range p.subs {
		sub.close()
	}
	p.subs = nil
	p.subsMu.Unlock()
	return err
}

func (p *Player) emit(sig Signal) {
	p.subsMu.RLock()
	defer p.subsMu.RUnlock()
	for _, sub := range p.subs {
		sub.sendSignal(sig)
	}
}

func (p *Player) publishPosition(pos float64) {
	p.subsMu.RLock()
	defer p.subsMu.RUnlock()
	for _, sub := range p.subs {
		sub.sendPosition(pos)
	}
}

func (p *Player) publishError(e ErrorEvent) {
	p.subsMu.RLock()
	defer p.subsMu.RUnlock()
	for _, sub := range p.subs {
		sub.sendError(e)
	}
}

package player

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/solaaa/wavedisplay/internal/audiofile"
	"github.com/solaaa/wavedisplay/internal/device"
)

// run is one streaming run: it opens the output device with the
// buffer's format, registers the pull callback, and waits for either
// cancellation or natural completion. The device is always closed on
// exit. Runs on its own goroutine; exactly one run is alive at a time.
func (p *Player) run(buf *audiofile.Buffer, cancel <-chan struct{}, done chan struct{}) {
	defer close(done)

	params := device.Params{
		SampleRate: buf.SampleRate(),
		Channels:   buf.Channels(),
		BlockSize:  p.settings.BlockSize,
	}
	cb := func(out []float32) { p.fillBlock(buf, out) }

	if err := p.dev.Open(params, cb); err != nil {
		p.failRun(fmt.Errorf("%w: %v", ErrDevice, err))
		return
	}

	completed := p.waitEnd(buf, cancel)

	// The device must be fully released before completion becomes
	// observable: a Play reacting to Finished opens it again.
	_ = p.dev.Close()

	if completed {
		p.finish()
	}
}

// waitEnd blocks until the run is cancelled or the callback has played
// past the end of the buffer, and reports whether the end was reached.
// Cancellation is event-driven via the channel; the ticker only watches
// for natural completion.
func (p *Player) waitEnd(buf *audiofile.Buffer, cancel <-chan struct{}) bool {
	ticker := time.NewTicker(completionPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return false
		case <-ticker.C:
			p.mu.Lock()
			finished := p.phase == Playing && p.pos >= buf.Duration()
			p.mu.Unlock()
			if finished {
				return true
			}
		}
	}
}

// fillBlock is the device pull callback. It checks flags and copies
// memory only: silence when cancelled, paused or past the end, else
// min(N, available) frames from the buffer with a zero-filled tail.
// The lock is taken twice, briefly, to avoid priority inversion with
// the device thread; the advance section re-checks the phase so a
// pause landing mid-copy does not move the position.
func (p *Player) fillBlock(buf *audiofile.Buffer, out []float32) {
	rate := float64(buf.SampleRate())
	frames := len(out) / buf.Channels()

	p.mu.Lock()
	if p.stopRequested || p.phase != Playing {
		p.mu.Unlock()
		zeroFill(out)
		return
	}
	startFrame := int(math.Round(p.startPos * rate))
	absFrame := startFrame + int(math.Round((p.pos-p.startPos)*rate))
	p.mu.Unlock()

	if absFrame >= buf.Frames() {
		// End reached; the run loop detects completion separately.
		zeroFill(out)
		return
	}

	copied := buf.CopyInterleaved(out, absFrame)
	if copied < frames {
		zeroFill(out[copied*buf.Channels():])
	}

	p.mu.Lock()
	if p.phase == Playing && !p.stopRequested {
		p.pos += float64(copied) / rate
		if dur := buf.Duration(); p.pos > dur {
			p.pos = dur
		}
	}
	p.mu.Unlock()
}

// finish handles natural completion: exactly one Finished per run that
// reaches the end, with the engine reset to Idle at position zero.
func (p *Player) finish() {
	p.stopPublisher()

	p.mu.Lock()
	p.phase = Idle
	p.pos = 0
	p.startPos = 0
	p.cancelCh = nil
	p.runDone = nil
	p.mu.Unlock()

	p.emit(SignalFinished)
}

// failRun resets state after the run could not start or crashed. The
// engine never stays in Playing past a failure.
func (p *Player) failRun(err error) {
	p.mu.Lock()
	p.phase = Idle
	p.cancelCh = nil
	p.runDone = nil
	p.mu.Unlock()

	p.stopPublisher()
	log.Printf("playback run failed: %v", err)
	p.publishError(ErrorEvent{Op: "open output device", Err: err})
}

func zeroFill(out []float32) {
	for i := range out {
		out[i] = 0
	}
}

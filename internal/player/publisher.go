package player

import "time"

// The position publisher is a dedicated ticker goroutine, distinct from
// the device thread, so observer delivery can never block real-time
// audio production. It snapshots the position under the lock and emits
// outside it, and only while actually playing.

// startPublisher launches the publisher if it is not already running.
// Called on play and resume.
func (p *Player) startPublisher() {
	p.pubMu.Lock()
	defer p.pubMu.Unlock()
	if p.pubCancel != nil {
		return
	}
	cancel := make(chan struct{})
	done := make(chan struct{})
	p.pubCancel = cancel
	p.pubDone = done
	go p.publishLoop(cancel, done)
}

// stopPublisher halts the publisher and joins it. The join guarantees
// no position event can be delivered after whatever notification the
// caller emits next (e.g. Stopped). Idempotent.
func (p *Player) stopPublisher() {
	p.pubMu.Lock()
	cancel := p.pubCancel
	done := p.pubDone
	p.pubCancel = nil
	p.pubDone = nil
	p.pubMu.Unlock()

	if cancel == nil {
		return
	}
	close(cancel)
	<-done
}

func (p *Player) publishLoop(cancel <-chan struct{}, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.settings.PositionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			p.mu.Lock()
			playing := p.phase == Playing && !p.stopRequested
			pos := p.pos
			p.mu.Unlock()
			if playing {
				p.publishPosition(pos)
			}
		}
	}
}

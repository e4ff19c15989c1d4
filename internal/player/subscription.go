package player

const eventBufferSize = 16

// Subscription provides event channels for one observer. Sends are
// non-blocking: a slow observer drops events rather than stalling the
// engine, which matters because signals can originate on the streaming
// goroutine.
type Subscription struct {
	Signals   <-chan Signal
	Positions <-chan float64
	Errors    <-chan ErrorEvent
	Done      <-chan struct{}

	// Internal write channels
	signalCh   chan Signal
	positionCh chan float64
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

// newSubscription creates a subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		signalCh:   make(chan Signal, eventBufferSize),
		positionCh: make(chan float64, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.Signals = s.signalCh
	s.Positions = s.positionCh
	s.Errors = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals the observer to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendSignal sends a lifecycle signal (non-blocking).
func (s *Subscription) sendSignal(sig Signal) {
	select {
	case s.signalCh <- sig:
	default:
		// Drop if buffer full
	}
}

// sendPosition sends a position update in seconds (non-blocking).
func (s *Subscription) sendPosition(pos float64) {
	select {
	case s.positionCh <- pos:
	default:
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}

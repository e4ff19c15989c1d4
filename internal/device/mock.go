package device

import "sync"

// Mock is a test double for Device. Tests drive the pull callback
// manually through Pull, which stands in for the device thread.
type Mock struct {
	mu         sync.Mutex
	params     Params
	cb         Callback
	opened     bool
	openCalls  int
	closeCalls int
	openErr    error
}

var _ Device = (*Mock)(nil)

// NewMock creates a closed mock device.
func NewMock() *Mock {
	return &Mock{}
}

// FailOpenWith makes subsequent Open calls return err.
func (m *Mock) FailOpenWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openErr = err
}

func (m *Mock) Open(p Params, cb Callback) error {
	if err := validate(p); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.openErr != nil {
		return m.openErr
	}
	if m.opened {
		return ErrAlreadyOpen
	}
	m.params = p
	m.cb = cb
	m.opened = true
	m.openCalls++
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.opened {
		m.opened = false
		m.cb = nil
		m.closeCalls++
	}
	return nil
}

// Pull invokes the registered callback for the given frame count and
// returns the produced block. A closed device yields silence, matching
// a real device that has stopped calling back.
func (m *Mock) Pull(frames int) []float32 {
	m.mu.Lock()
	cb := m.cb
	channels := m.params.Channels
	m.mu.Unlock()

	if cb == nil {
		return make([]float32, frames)
	}
	out := make([]float32, frames*channels)
	cb(out)
	return out
}

// Opened reports whether the device is currently open.
func (m *Mock) Opened() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened
}

// OpenParams returns the params from the most recent Open.
func (m *Mock) OpenParams() Params {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params
}

// OpenCalls returns how many times Open succeeded.
func (m *Mock) OpenCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.openCalls
}

// CloseCalls returns how many times Close closed an open device.
func (m *Mock) CloseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}

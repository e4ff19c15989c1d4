package device

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/gen2brain/malgo"
)

// Malgo is a Device backed by miniaudio. The miniaudio data callback is
// translated into the engine Callback: float32 frames are pulled from
// the engine and written little-endian into the device's byte buffer.
type Malgo struct {
	mu      sync.Mutex
	ctx     *malgo.AllocatedContext
	dev     *malgo.Device
	scratch []float32
}

var _ Device = (*Malgo)(nil)

// NewMalgo creates an unopened miniaudio output device.
func NewMalgo() *Malgo {
	return &Malgo{}
}

// Open initializes and starts a playback device with the given format.
func (m *Malgo) Open(p Params, cb Callback) error {
	if err := validate(p); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dev != nil {
		return ErrAlreadyOpen
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatF32
	cfg.Playback.Channels = uint32(p.Channels)
	cfg.SampleRate = uint32(p.SampleRate)
	cfg.PeriodSizeInFrames = uint32(p.BlockSize)
	cfg.Alsa.NoMMap = 1

	m.scratch = make([]float32, p.BlockSize*p.Channels)

	onData := func(out, _ []byte, frameCount uint32) {
		m.fill(out, int(frameCount)*p.Channels, cb)
	}

	dev, err := malgo.InitDevice(ctx.Context, cfg, malgo.DeviceCallbacks{Data: onData})
	if err != nil {
		uninitContext(ctx)
		return fmt.Errorf("init playback device: %w", err)
	}
	if err := dev.Start(); err != nil {
		dev.Uninit()
		uninitContext(ctx)
		return fmt.Errorf("start playback device: %w", err)
	}

	m.ctx = ctx
	m.dev = dev
	return nil
}

// fill pulls samples from the engine callback and encodes them into the
// device byte buffer. The scratch slice only grows when the device asks
// for more frames than the configured block size.
func (m *Malgo) fill(out []byte, samples int, cb Callback) {
	if samples > len(m.scratch) {
		m.scratch = make([]float32, samples)
	}
	block := m.scratch[:samples]
	cb(block)
	for i, s := range block {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
}

// Close stops the device and releases the miniaudio context.
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dev != nil {
		_ = m.dev.Stop()
		m.dev.Uninit()
		m.dev = nil
	}
	if m.ctx != nil {
		uninitContext(m.ctx)
		m.ctx = nil
	}
	return nil
}

func uninitContext(ctx *malgo.AllocatedContext) {
	_ = ctx.Uninit()
	ctx.Free()
}

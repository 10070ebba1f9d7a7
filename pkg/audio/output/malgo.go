// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Uses miniaudio via malgo with a pull-mode data callback
package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
)

// Malgo output implementation using malgo/miniaudio library
type Malgo struct {
	mu       sync.Mutex
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	src      Source
	channels int
	latency  time.Duration

	// Only touched from the device callback
	scratch []float32
	pcm     []int16
}

const (
	malgoPeriodMs = 10
	malgoPeriods  = 3
)

// NewMalgo creates a new Malgo output
func NewMalgo() Output {
	return &Malgo{}
}

// Open initializes the playback device and starts it
func (m *Malgo) Open(sampleRate, channels int, src Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		return fmt.Errorf("malgo output already open")
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	m.src = src
	m.channels = channels

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = uint32(channels)
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.PeriodSizeInMilliseconds = malgoPeriodMs
	deviceConfig.Periods = malgoPeriods
	deviceConfig.Alsa.NoMMap = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, _ []byte, frameCount uint32) {
			m.dataCallback(pOutput, frameCount)
		},
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, callbacks)
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("failed to start device: %w", err)
	}

	m.malgoCtx = ctx
	m.device = device
	m.latency = malgoPeriods * malgoPeriodMs * time.Millisecond
	return nil
}

// Latency is the device buffer: every period may be queued ahead of playback
func (m *Malgo) Latency() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latency
}

// dataCallback is called by malgo to fill the audio output buffer
func (m *Malgo) dataCallback(pOutput []byte, frameCount uint32) {
	n := int(frameCount) * m.channels
	if cap(m.pcm) < n {
		m.pcm = make([]int16, n)
	}
	pcm := m.pcm[:n]
	m.scratch = renderInt16(m.src, m.scratch, pcm)

	for i, s := range pcm {
		pOutput[i*2] = byte(s)
		pOutput[i*2+1] = byte(s >> 8)
	}
}

// Close stops the device and releases the malgo context
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	if m.device != nil {
		if err := m.device.Stop(); err != nil {
			firstErr = fmt.Errorf("failed to stop device: %w", err)
		}
		m.device.Uninit()
		m.device = nil
	}
	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to uninit malgo context: %w", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
	return firstErr
}

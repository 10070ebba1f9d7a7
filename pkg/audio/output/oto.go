// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams rendered float32 frames through a persistent oto player
package output

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// otoBufferSize bounds both the device buffer and the player's read-ahead
const otoBufferSize = 50 * time.Millisecond

// oto only allows one context per process, so it is shared by every Oto output
var (
	otoMu         sync.Mutex
	otoCtx        *oto.Context
	otoSampleRate int
	otoChannels   int
)

// Oto output implementation using oto library
type Oto struct {
	mu      sync.Mutex
	player  *oto.Player
	reader  *sourceReader
	latency time.Duration
}

// NewOto creates a new Oto output
func NewOto() Output {
	return &Oto{}
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int, src Source) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		return fmt.Errorf("oto output already open")
	}

	ctx, err := sharedOtoContext(sampleRate, channels)
	if err != nil {
		return err
	}

	o.reader = &sourceReader{src: src, channels: channels}
	o.player = ctx.NewPlayer(o.reader)
	// Players read ahead half a second by default, which would put the
	// render clock that far in front of the speaker
	o.player.SetBufferSize(bufferBytes(sampleRate, channels, otoBufferSize))
	o.latency = 2 * otoBufferSize
	o.player.Play()

	return nil
}

// Latency is the player read-ahead plus the device buffer
func (o *Oto) Latency() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.latency
}

// Close releases output resources
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	o.reader = nil
	if err != nil {
		return fmt.Errorf("failed to close oto player: %w", err)
	}
	return nil
}

func sharedOtoContext(sampleRate, channels int) (*oto.Context, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx != nil {
		if otoSampleRate != sampleRate || otoChannels != channels {
			return nil, fmt.Errorf("oto context already running at %dHz %dch, cannot open %dHz %dch",
				otoSampleRate, otoChannels, sampleRate, channels)
		}
		return otoCtx, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   otoBufferSize,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	otoCtx = ctx
	otoSampleRate = sampleRate
	otoChannels = channels
	return otoCtx, nil
}

// bufferBytes is the size of d worth of float32 frames
func bufferBytes(sampleRate, channels int, d time.Duration) int {
	frames := int(d.Seconds() * float64(sampleRate))
	return frames * channels * 4
}

// sourceReader adapts a Source to the io.Reader oto pulls from
type sourceReader struct {
	src      Source
	channels int
	scratch  []float32
}

func (r *sourceReader) Read(p []byte) (int, error) {
	frameBytes := 4 * r.channels
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}

	n := frames * r.channels
	if cap(r.scratch) < n {
		r.scratch = make([]float32, n)
	}
	buf := r.scratch[:n]
	r.src.Render(buf)

	for i, s := range buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return frames * frameBytes, nil
}

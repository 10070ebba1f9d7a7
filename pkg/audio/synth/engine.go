// ABOUTME: Software render engine
// ABOUTME: Owns the node graph and renders it on the output's audio thread
package synth

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/Sendspin/beep-go/pkg/audio"
	"github.com/Sendspin/beep-go/pkg/audio/output"
	"github.com/rs/zerolog"
)

// ErrClosed is returned when using an engine after Close
var ErrClosed = errors.New("audio engine closed")

// Engine renders a graph of oscillators and gains
type Engine struct {
	sampleRate int
	channels   int
	frame      atomic.Int64
	dest       *destination
	log        zerolog.Logger

	mu     sync.Mutex
	voices []*Oscillator
	mix    []float64
	closed bool
	out    output.Output

	// Voices that stopped rendering but may still be in the output's buffer
	draining []*Oscillator
	// Output latency in frames
	latency int64
}

// NewEngine creates an engine that is not attached to any output.
// Frames advance only when Render is called.
func NewEngine(sampleRate, channels int, logger zerolog.Logger) *Engine {
	e := &Engine{
		sampleRate: sampleRate,
		channels:   channels,
		log:        logger,
	}
	e.dest = &destination{engine: e}
	return e
}

// SampleRate returns the engine sample rate
func (e *Engine) SampleRate() int { return e.sampleRate }

// Channels returns the number of interleaved output channels
func (e *Engine) Channels() int { return e.channels }

// CurrentTime returns the time of the next frame to render, in seconds
func (e *Engine) CurrentTime() float64 {
	return e.frameTime(e.frame.Load())
}

func (e *Engine) frameTime(frame int64) float64 {
	return float64(frame) / float64(e.sampleRate)
}

// Destination returns the node connected graphs must end in
func (e *Engine) Destination() audio.Node {
	return e.dest
}

// CreateOscillator creates an unstarted oscillator
func (e *Engine) CreateOscillator(w audio.Waveform) (audio.Oscillator, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("unsupported waveform: %v", w)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}

	return &Oscillator{
		engine:    e,
		waveform:  w,
		frequency: newParam(440, e.CurrentTime),
		stopTime:  math.Inf(1),
	}, nil
}

// CreateGain creates a gain node at the given level
func (e *Engine) CreateGain(level float64) (audio.Gain, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}

	return &Gain{
		engine: e,
		level:  newParam(level, e.CurrentTime),
	}, nil
}

// ActiveVoices returns the number of started oscillators that have not ended
func (e *Engine) ActiveVoices() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.voices) + len(e.draining)
}

// Render fills buf with interleaved frames and advances the clock
func (e *Engine) Render(buf []float32) {
	frames := len(buf) / e.channels

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		clear(buf)
		return
	}

	if cap(e.mix) < frames {
		e.mix = make([]float64, frames)
	}
	mix := e.mix[:frames]
	clear(mix)

	first := e.frame.Load()
	live := e.voices[:0]
	for _, v := range e.voices {
		if v.render(e, first, mix) {
			live = append(live, v)
			continue
		}
		// Heard once the frame at its end time has left the output buffer
		v.endFrame = int64(math.Ceil(math.Max(v.startTime, v.stopTime)*float64(e.sampleRate))) + e.latency
		e.draining = append(e.draining, v)
		e.log.Debug().Float64("stop", v.stopTime).Int64("end_frame", v.endFrame).Msg("voice finished rendering")
	}
	clear(e.voices[len(live):])
	e.voices = live
	now := e.frame.Add(int64(frames))
	e.drain(now)
	e.mu.Unlock()

	for i, s := range mix {
		v := audio.Clip(float32(s))
		for c := 0; c < e.channels; c++ {
			buf[i*e.channels+c] = v
		}
	}
	clear(buf[frames*e.channels:])
}

// drain ends voices whose last frame has played out by frame now; caller holds e.mu
func (e *Engine) drain(now int64) {
	pending := e.draining[:0]
	for _, v := range e.draining {
		if v.endFrame > now {
			pending = append(pending, v)
			continue
		}
		e.end(v)
	}
	clear(e.draining[len(pending):])
	e.draining = pending
}

// end marks v ended and runs its callbacks; caller holds e.mu
func (e *Engine) end(v *Oscillator) {
	v.ended = true
	e.dispatch(v.onEnded)
	v.onEnded = nil
}

// dispatch runs callbacks off the render thread
func (e *Engine) dispatch(fns []func()) {
	for _, fn := range fns {
		go fn()
	}
}

// attach opens out with the engine as its source
func (e *Engine) attach(out output.Output) error {
	if err := out.Open(e.sampleRate, e.channels, e); err != nil {
		return err
	}
	latency := int64(output.LatencyOf(out).Seconds() * float64(e.sampleRate))
	e.mu.Lock()
	e.out = out
	e.latency = latency
	e.mu.Unlock()
	if latency > 0 {
		e.log.Debug().Int64("latency_frames", latency).Msg("output latency")
	}
	return nil
}

// Close stops the output and ends every active voice
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	out := e.out
	e.out = nil
	e.mu.Unlock()

	var err error
	if out != nil {
		// Render returns silence from here on, so closing without the lock is safe
		if cerr := out.Close(); cerr != nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}

	e.mu.Lock()
	voices := append(e.voices, e.draining...)
	for _, v := range voices {
		e.end(v)
	}
	e.voices = nil
	e.draining = nil
	e.mu.Unlock()

	e.log.Debug().Int("ended_voices", len(voices)).Msg("audio engine closed")
	return err
}

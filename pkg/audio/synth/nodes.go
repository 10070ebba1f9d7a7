// ABOUTME: Synthesis graph nodes
// ABOUTME: Oscillator, gain and destination nodes owned by an Engine
package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/Sendspin/beep-go/pkg/audio"
)

var (
	// ErrForeignNode is returned when connecting nodes from different engines
	ErrForeignNode = errors.New("node belongs to a different engine")

	// ErrNotInput is returned when connecting into a node that has no input
	ErrNotInput = errors.New("node does not accept input")

	// ErrCycle is returned when a connection would create a loop
	ErrCycle = errors.New("connection would create a cycle")

	errNoOutput = errors.New("destination has no output")
)

// node is a graph vertex that accepts samples
type node interface {
	audio.Node
	owner() *Engine
	// push routes one sample at frame i (time t) toward the destination
	push(s, t float64, i int, mix []float64)
	reaches(n node) bool
}

// connect appends dst to targets after validating it; caller holds e.mu
func connect(e *Engine, src node, targets []node, dst audio.Node) ([]node, error) {
	n, ok := dst.(node)
	if !ok {
		return targets, fmt.Errorf("%w: %T", ErrNotInput, dst)
	}
	if n.owner() != e {
		return targets, ErrForeignNode
	}
	if src != nil && (n == src || n.reaches(src)) {
		return targets, ErrCycle
	}
	for _, t := range targets {
		if t == n {
			return targets, nil
		}
	}
	return append(targets, n), nil
}

// Oscillator generates a waveform at a schedulable frequency
type Oscillator struct {
	engine    *Engine
	waveform  audio.Waveform
	frequency *Param

	// Guarded by engine.mu
	phase     float64
	startTime float64
	stopTime  float64
	started   bool
	ended     bool
	endFrame  int64
	targets   []node
	onEnded   []func()
}

// Frequency returns the frequency parameter in Hz
func (o *Oscillator) Frequency() audio.Param {
	return o.frequency
}

// Waveform returns the oscillator's waveform
func (o *Oscillator) Waveform() audio.Waveform {
	return o.waveform
}

// Connect routes the oscillator output into dst
func (o *Oscillator) Connect(dst audio.Node) error {
	e := o.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	targets, err := connect(e, nil, o.targets, dst)
	if err != nil {
		return err
	}
	o.targets = targets
	return nil
}

// Start schedules output to begin at time t; only the first call has effect
func (o *Oscillator) Start(t float64) {
	e := o.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	if o.started {
		e.log.Warn().Msg("oscillator already started, ignoring Start")
		return
	}
	o.started = true
	o.startTime = t
	if e.closed {
		// Nothing will render again, so end right away
		e.end(o)
		return
	}
	e.voices = append(e.voices, o)
}

// Stop schedules output to end at time t, never before the start time
func (o *Oscillator) Stop(t float64) {
	e := o.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	o.stopTime = t
}

// OnEnded registers fn to run once after the oscillator stops
func (o *Oscillator) OnEnded(fn func()) {
	e := o.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	if o.ended {
		e.dispatch([]func(){fn})
		return
	}
	o.onEnded = append(o.onEnded, fn)
}

// render mixes frames into mix; returns false once the oscillator has ended
func (o *Oscillator) render(e *Engine, firstFrame int64, mix []float64) bool {
	end := math.Max(o.startTime, o.stopTime)
	for i := range mix {
		t := e.frameTime(firstFrame + int64(i))
		if t >= end {
			return false
		}
		if t < o.startTime {
			continue
		}
		s := sample(o.waveform, o.phase)
		o.phase = advance(o.phase, o.frequency.ValueAtTime(t), e.sampleRate)
		for _, n := range o.targets {
			n.push(s, t, i, mix)
		}
	}
	return true
}

// Gain multiplies its input by a level parameter
type Gain struct {
	engine *Engine
	level  *Param

	// Guarded by engine.mu
	targets []node
}

// Level returns the gain level parameter
func (g *Gain) Level() audio.Param {
	return g.level
}

// Connect routes the gain output into dst
func (g *Gain) Connect(dst audio.Node) error {
	e := g.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	targets, err := connect(e, g, g.targets, dst)
	if err != nil {
		return err
	}
	g.targets = targets
	return nil
}

func (g *Gain) owner() *Engine { return g.engine }

func (g *Gain) push(s, t float64, i int, mix []float64) {
	s *= g.level.ValueAtTime(t)
	for _, n := range g.targets {
		n.push(s, t, i, mix)
	}
}

func (g *Gain) reaches(n node) bool {
	for _, t := range g.targets {
		if t == n || t.reaches(n) {
			return true
		}
	}
	return false
}

// destination sums everything connected to it into the output mix
type destination struct {
	engine *Engine
}

func (d *destination) Connect(audio.Node) error {
	return errNoOutput
}

func (d *destination) owner() *Engine { return d.engine }

func (d *destination) push(s, _ float64, i int, mix []float64) {
	mix[i] += s
}

func (d *destination) reaches(node) bool { return false }

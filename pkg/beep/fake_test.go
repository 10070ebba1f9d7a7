// ABOUTME: In-memory audio host for sequencer tests
// ABOUTME: Records every node, connection and scheduled event
package beep

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Sendspin/beep-go/pkg/audio"
)

type fakeHost struct {
	mu        sync.Mutex
	pipelines int
	err       error
	delay     time.Duration
	entered   chan struct{}
	ctx       *fakeContext
}

func newFakeHost() *fakeHost {
	return &fakeHost{}
}

func (h *fakeHost) CreatePipeline(context.Context) (audio.Context, error) {
	if h.entered != nil {
		select {
		case h.entered <- struct{}{}:
		default:
		}
	}
	if h.delay > 0 {
		time.Sleep(h.delay)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.pipelines++
	if h.err != nil {
		return nil, h.err
	}
	h.ctx = &fakeContext{now: 10}
	return h.ctx, nil
}

func (h *fakeHost) created() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pipelines
}

type fakeContext struct {
	mu     sync.Mutex
	now    float64
	oscs   []*fakeOscillator
	gains  []*fakeGain
	dest   fakeDestination
	closed bool
}

func (c *fakeContext) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeContext) Destination() audio.Node { return &c.dest }

func (c *fakeContext) CreateOscillator(w audio.Waveform) (audio.Oscillator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o := &fakeOscillator{waveform: w, frequency: &fakeParam{base: 440, clock: c.CurrentTime}}
	c.oscs = append(c.oscs, o)
	return o, nil
}

func (c *fakeContext) CreateGain(level float64) (audio.Gain, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := &fakeGain{level: &fakeParam{base: level, clock: c.CurrentTime}}
	c.gains = append(c.gains, g)
	return g, nil
}

func (c *fakeContext) Close() error {
	c.mu.Lock()
	oscs := c.oscs
	c.closed = true
	c.mu.Unlock()

	for _, o := range oscs {
		o.end()
	}
	return nil
}

func (c *fakeContext) oscillators() []*fakeOscillator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*fakeOscillator(nil), c.oscs...)
}

func (c *fakeContext) gainNodes() []*fakeGain {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*fakeGain(nil), c.gains...)
}

type fakeEvent struct {
	time, value float64
}

type fakeParam struct {
	mu     sync.Mutex
	clock  func() float64
	base   float64
	events []fakeEvent
}

func (p *fakeParam) Value() float64 { return p.ValueAtTime(p.clock()) }

func (p *fakeParam) SetValue(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = v
}

func (p *fakeParam) SetValueAtTime(v, t float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, fakeEvent{time: t, value: v})
	sort.SliceStable(p.events, func(i, j int) bool { return p.events[i].time < p.events[j].time })
}

func (p *fakeParam) ValueAtTime(t float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := p.base
	for _, e := range p.events {
		if e.time > t {
			break
		}
		v = e.value
	}
	return v
}

type fakeOscillator struct {
	waveform  audio.Waveform
	frequency *fakeParam

	mu      sync.Mutex
	start   float64
	stop    float64
	started bool
	stopped bool
	ended   []func()
	targets []audio.Node
}

func (o *fakeOscillator) Frequency() audio.Param { return o.frequency }

func (o *fakeOscillator) Connect(dst audio.Node) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.targets = append(o.targets, dst)
	return nil
}

func (o *fakeOscillator) Start(t float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.start, o.started = t, true
}

func (o *fakeOscillator) Stop(t float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stop, o.stopped = t, true
}

func (o *fakeOscillator) OnEnded(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ended = append(o.ended, fn)
}

// end plays the host's end-of-playback notification
func (o *fakeOscillator) end() {
	o.mu.Lock()
	fns := o.ended
	o.ended = nil
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

type fakeGain struct {
	level *fakeParam

	mu      sync.Mutex
	targets []audio.Node
}

func (g *fakeGain) Level() audio.Param { return g.level }

func (g *fakeGain) Connect(dst audio.Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.targets = append(g.targets, dst)
	return nil
}

type fakeDestination struct{}

func (d *fakeDestination) Connect(audio.Node) error { return nil }

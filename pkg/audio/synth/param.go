// ABOUTME: Automatable parameter timeline
// ABOUTME: Base value plus time-ordered set events on the engine clock
package synth

import (
	"sort"
	"sync"
)

type paramEvent struct {
	time  float64
	value float64
}

// Param is a value with scheduled changes
type Param struct {
	mu     sync.Mutex
	clock  func() float64
	base   float64
	events []paramEvent
}

func newParam(value float64, clock func() float64) *Param {
	return &Param{base: value, clock: clock}
}

// Value returns the value at the current engine time
func (p *Param) Value() float64 {
	return p.ValueAtTime(p.clock())
}

// SetValue changes the value from now on, dropping events already in the past
func (p *Param) SetValue(v float64) {
	now := p.clock()

	p.mu.Lock()
	defer p.mu.Unlock()

	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time > now })
	p.events = p.events[i:]
	p.base = v
}

// SetValueAtTime schedules v from time t onwards
func (p *Param) SetValueAtTime(v, t float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Insert after any event at the same time so the latest call wins
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time > t })
	p.events = append(p.events, paramEvent{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = paramEvent{time: t, value: v}
}

// ValueAtTime returns the value in effect at time t
func (p *Param) ValueAtTime(t float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.valueAt(t)
}

// valueAt must be called with p.mu held
func (p *Param) valueAt(t float64) float64 {
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time > t })
	if i == 0 {
		return p.base
	}
	return p.events[i-1].value
}

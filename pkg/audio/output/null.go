// ABOUTME: Device-less audio output
// ABOUTME: Renders and discards frames at wall-clock rate for headless playback
package output

import (
	"fmt"
	"sync"
	"time"
)

// DefaultNullInterval is how often the null output renders
const DefaultNullInterval = 5 * time.Millisecond

// Null pulls from its source in real time without a device
type Null struct {
	// Interval between render passes
	Interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewNull creates a new null output
func NewNull() Output {
	return &Null{Interval: DefaultNullInterval}
}

// Open starts the render loop
func (n *Null) Open(sampleRate, channels int, src Source) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stop != nil {
		return fmt.Errorf("null output already open")
	}
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid format: %dHz %dch", sampleRate, channels)
	}

	interval := n.Interval
	if interval <= 0 {
		interval = DefaultNullInterval
	}

	n.stop = make(chan struct{})
	n.done = make(chan struct{})
	go n.run(sampleRate, channels, src, interval, n.stop, n.done)
	return nil
}

// run renders exactly as many frames as wall-clock time has covered
func (n *Null) run(sampleRate, channels int, src Source, interval time.Duration, stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	started := time.Now()
	var rendered int64
	var buf []float32

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		due := int64(time.Since(started).Seconds() * float64(sampleRate))
		frames := due - rendered
		if frames <= 0 {
			continue
		}

		size := int(frames) * channels
		if cap(buf) < size {
			buf = make([]float32, size)
		}
		src.Render(buf[:size])
		rendered = due
	}
}

// Close stops the render loop
func (n *Null) Close() error {
	n.mu.Lock()
	stop, done := n.stop, n.done
	n.stop, n.done = nil, nil
	n.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return nil
}

// ABOUTME: Single-resolution completion signal
// ABOUTME: Resolves exactly once with the outcome of a Play call
package beep

import (
	"context"
	"sync"
)

// Completion tracks one Play call until its audio has finished
type Completion struct {
	id   string
	done chan struct{}
	once sync.Once
	err  error

	// Scheduled window on the pipeline clock, zero when nothing was scheduled
	start, stop float64
}

func newCompletion(id string) *Completion {
	return &Completion{id: id, done: make(chan struct{})}
}

// ID identifies the Play call in logs
func (c *Completion) ID() string {
	return c.id
}

// Done is closed once playback has ended or failed
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Err returns the outcome; nil while pending or on success
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Wait blocks until the completion resolves or ctx is done.
// Giving up on the wait does not stop the audio.
func (c *Completion) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Window returns the scheduled start and stop times in pipeline seconds
func (c *Completion) Window() (start, stop float64) {
	return c.start, c.stop
}

// resolve fulfils the completion; later calls are ignored
func (c *Completion) resolve(err error) bool {
	resolved := false
	c.once.Do(func() {
		c.err = err
		close(c.done)
		resolved = true
	})
	return resolved
}

// ABOUTME: Tone sequencer
// ABOUTME: Lazily owns one audio pipeline and schedules tone sequences on it
package beep

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sendspin/beep-go/pkg/audio"
	"github.com/Sendspin/beep-go/pkg/audio/synth"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Sequencer plays tone sequences through an audio host
type Sequencer struct {
	volume   float64
	waveform audio.Waveform
	host     audio.Host
	log      zerolog.Logger

	creating singleflight.Group

	mu      sync.Mutex
	handle  audio.Context
	closed  bool
	pending map[*Completion]struct{}
}

// New creates a sequencer. The audio pipeline is not created until
// Initialize or the first Play.
func New(opts ...Option) (*Sequencer, error) {
	o := options{
		volume:   DefaultVolume,
		waveform: DefaultWaveform,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.waveform.Valid() {
		return nil, fmt.Errorf("unsupported waveform: %v", o.waveform)
	}

	volume, clamped := clampVolume(o.volume)
	if clamped {
		o.logger.Warn().
			Float64("requested", o.volume).
			Float64("volume", volume).
			Msg("volume out of range, clamped")
	}

	if o.host == nil {
		o.host = synth.NewHost(synth.Config{Logger: &o.logger})
	}

	return &Sequencer{
		volume:   volume,
		waveform: o.waveform,
		host:     o.host,
		log:      o.logger,
		pending:  make(map[*Completion]struct{}),
	}, nil
}

// Volume returns the configured output level
func (s *Sequencer) Volume() float64 {
	return s.volume
}

// Waveform returns the configured oscillator shape
func (s *Sequencer) Waveform() audio.Waveform {
	return s.waveform
}

// Initialize creates the audio pipeline if it does not exist yet.
// It is safe to call repeatedly and from several goroutines. A failure is
// not cached, so the next call tries again. ctx bounds only this caller's
// wait; a creation already under way keeps going for the other callers.
func (s *Sequencer) Initialize(ctx context.Context) error {
	_, err := s.pipeline(ctx)
	return err
}

func (s *Sequencer) pipeline(ctx context.Context) (audio.Context, error) {
	s.mu.Lock()
	closed, handle := s.closed, s.handle
	s.mu.Unlock()
	switch {
	case closed:
		return nil, ErrClosed
	case handle != nil:
		return handle, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Every caller waiting at the same time shares one creation
	ch := s.creating.DoChan("pipeline", func() (any, error) {
		return s.create(context.WithoutCancel(ctx))
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(audio.Context), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// create opens the pipeline without holding s.mu so Close and other callers
// are never stuck behind a slow device
func (s *Sequencer) create(ctx context.Context) (audio.Context, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.handle != nil {
		handle := s.handle
		s.mu.Unlock()
		return handle, nil
	}
	s.mu.Unlock()

	handle, err := s.host.CreatePipeline(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create audio pipeline")
		return nil, fmt.Errorf("%w: %w", ErrHostUnavailable, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		// Close ran while the device was opening
		if cerr := handle.Close(); cerr != nil {
			s.log.Warn().Err(cerr).Msg("failed to close audio pipeline")
		}
		return nil, ErrClosed
	}
	s.handle = handle
	s.mu.Unlock()

	s.log.Debug().Msg("audio pipeline ready")
	return handle, nil
}

// Play schedules tones back-to-back on a new oscillator and returns a
// Completion that resolves when the last tone has finished sounding.
// ctx bounds only the wait for the pipeline; scheduled audio cannot be cancelled.
func (s *Sequencer) Play(ctx context.Context, tones []Tone) *Completion {
	c := newCompletion(uuid.NewString())
	log := s.log.With().Str("play_id", c.id).Logger()

	if err := Validate(tones); err != nil {
		log.Warn().Err(err).Msg("rejected tone sequence")
		c.resolve(err)
		return c
	}

	handle, err := s.pipeline(ctx)
	if err != nil {
		c.resolve(err)
		return c
	}

	if err := s.schedule(handle, tones, c); err != nil {
		log.Error().Err(err).Msg("failed to schedule tone sequence")
		c.resolve(s.closedOr(err))
		return c
	}

	log.Debug().
		Int("tones", len(tones)).
		Dur("duration", TotalDuration(tones)).
		Float64("start", c.start).
		Float64("stop", c.stop).
		Msg("tone sequence scheduled")
	return c
}

// Beep plays tones and waits for them to finish or for ctx to end
func (s *Sequencer) Beep(ctx context.Context, tones ...Tone) error {
	return s.Play(ctx, tones).Wait(ctx)
}

// schedule builds osc -> gain -> destination and sets every frequency change
// before starting, so a failure leaves nothing playing
func (s *Sequencer) schedule(handle audio.Context, tones []Tone, c *Completion) error {
	gain, err := handle.CreateGain(s.volume)
	if err != nil {
		return fmt.Errorf("failed to create gain node: %w", err)
	}
	osc, err := handle.CreateOscillator(s.waveform)
	if err != nil {
		return fmt.Errorf("failed to create oscillator: %w", err)
	}

	start := handle.CurrentTime()
	freq := osc.Frequency()
	freq.SetValue(tones[0].Frequency)
	cursor := start + tones[0].Duration.Seconds()
	for _, t := range tones[1:] {
		freq.SetValueAtTime(t.Frequency, cursor)
		cursor += t.Duration.Seconds()
	}

	if err := osc.Connect(gain); err != nil {
		return fmt.Errorf("failed to connect oscillator: %w", err)
	}
	if err := gain.Connect(handle.Destination()); err != nil {
		return fmt.Errorf("failed to connect gain: %w", err)
	}

	c.start, c.stop = start, cursor

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.pending[c] = struct{}{}
	s.mu.Unlock()

	osc.OnEnded(func() { s.finish(c, nil) })
	osc.Start(start)
	osc.Stop(cursor)
	return nil
}

func (s *Sequencer) finish(c *Completion, err error) {
	s.mu.Lock()
	delete(s.pending, c)
	s.mu.Unlock()

	if c.resolve(err) && err == nil {
		s.log.Debug().Str("play_id", c.id).Msg("tone sequence finished")
	}
}

func (s *Sequencer) closedOr(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return err
}

// Close releases the audio pipeline. Pending completions resolve with
// ErrClosed. A pipeline still being created is closed once it is ready.
func (s *Sequencer) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	handle := s.handle
	s.handle = nil
	pending := s.pending
	s.pending = make(map[*Completion]struct{})
	s.mu.Unlock()

	for c := range pending {
		c.resolve(ErrClosed)
	}

	if handle == nil {
		return nil
	}
	if err := handle.Close(); err != nil {
		return fmt.Errorf("failed to close audio pipeline: %w", err)
	}
	return nil
}

// ABOUTME: Tone sequencer library API
// ABOUTME: Plays back-to-back (frequency, duration) tones on a host audio pipeline
// Package beep plays sequences of tones.
//
// A Sequencer lazily creates one audio pipeline on its host and, for every
// Play call, schedules the whole sequence on a fresh oscillator and gain
// pair. Play returns a Completion that resolves when the host reports the
// oscillator has stopped, not when scheduling finishes.
//
// Example:
//
//	seq, err := beep.New(beep.WithVolume(0.5), beep.WithWaveform(audio.Sine))
//	defer seq.Close()
//
//	done := seq.Play(ctx, []beep.Tone{
//	    {Frequency: 440, Duration: 200 * time.Millisecond},
//	    {Frequency: 880, Duration: 300 * time.Millisecond},
//	})
//	err = done.Wait(ctx)
//
// Overlapping Play calls are not serialized: each gets its own nodes and
// the sequences sound on top of each other.
package beep

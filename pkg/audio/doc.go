// ABOUTME: Audio fundamentals package providing the host capability interface
// ABOUTME: Defines Host, Context, node types, waveforms and sample conversions
// Package audio describes the host audio subsystem that tone playback is
// built on.
//
// A Host creates a Context (the audio pipeline). A Context hands out
// synthesis nodes and exposes a monotonic clock in seconds:
//   - Oscillator: periodic waveform at a schedulable frequency
//   - Gain: scales the signal flowing through it
//   - Destination: the output sink every audible graph ends in
//
// Example:
//
//	ctx, err := host.CreatePipeline(context.Background())
//	osc, _ := ctx.CreateOscillator(audio.Sine)
//	gain, _ := ctx.CreateGain(0.5)
//	osc.Frequency().SetValue(440)
//	osc.Connect(gain)
//	gain.Connect(ctx.Destination())
//	now := ctx.CurrentTime()
//	osc.Start(now)
//	osc.Stop(now + 0.25)
//
// The synth subpackage provides a software implementation of Host that
// renders into one of the backends in the output subpackage.
package audio

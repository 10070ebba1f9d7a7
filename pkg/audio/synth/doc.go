// ABOUTME: Software synthesis host
// ABOUTME: Sample-clock render engine implementing the audio host interface
// Package synth implements audio.Host in software.
//
// CreatePipeline returns an Engine: a small node graph (oscillators, gains
// and a destination) rendered sample by sample into an output backend. The
// engine clock is the number of frames rendered divided by the sample rate,
// so scheduled events land on exact sample boundaries.
//
// Example:
//
//	host := synth.NewHost(synth.Config{Output: output.NewNull()})
//	ctx, err := host.CreatePipeline(context.Background())
package synth

// ABOUTME: Audio output package for playing rendered audio
// ABOUTME: Provides the Output interface and device backends
// Package output provides audio playback backends.
//
// An Output owns a playback device and pulls interleaved float32 frames
// from a Source whenever the device needs more audio. Backends:
//   - oto: ebitengine/oto (default)
//   - malgo: miniaudio via gen2brain/malgo
//   - pulse: native PulseAudio client
//   - portaudio: PortAudio (build with -tags portaudio)
//   - null: no device, renders at wall-clock rate
//
// Example:
//
//	out, err := output.ByName("oto")
//	err = out.Open(44100, 1, engine)
//	defer out.Close()
package output

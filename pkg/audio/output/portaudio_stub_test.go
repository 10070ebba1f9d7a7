//go:build !portaudio

// ABOUTME: Tests for the PortAudio stub
// ABOUTME: Ensures the stub reports that PortAudio is disabled
package output

import (
	"errors"
	"testing"
)

func TestPortAudioStubOpen(t *testing.T) {
	err := NewPortAudio().Open(44100, 1, &countingSource{})
	if !errors.Is(err, errPortAudioDisabled) {
		t.Errorf("expected errPortAudioDisabled, got %v", err)
	}
}

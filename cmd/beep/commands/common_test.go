// ABOUTME: Tests for shared CLI plumbing
// ABOUTME: Tests flag validation when building a sequencer
package commands

import (
	"flag"
	"strings"
	"testing"

	"github.com/Sendspin/beep-go/pkg/audio"
	"github.com/urfave/cli/v2"
)

func newFlagContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range soundFlags() {
		if err := f.Apply(set); err != nil {
			t.Fatalf("failed to apply flag: %v", err)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestNewSequencerFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"null backend", []string{"--backend", "null", "--wave", "sine", "--volume", "0.4"}, ""},
		{"backend name is case-insensitive", []string{"--backend", "NULL"}, ""},
		{"unknown backend", []string{"--backend", "speaker"}, `unknown output backend "speaker"`},
		{"unknown waveform", []string{"--backend", "null", "--wave", "noise"}, `unknown waveform "noise"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := newSequencer(newFlagContext(t, tt.args...))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("newSequencer failed: %v", err)
			}
			defer seq.Close()
		})
	}
}

func TestNewSequencerAppliesSoundFlags(t *testing.T) {
	seq, err := newSequencer(newFlagContext(t, "--backend", "null", "--wave", "triangle", "--volume", "0.25"))
	if err != nil {
		t.Fatalf("newSequencer failed: %v", err)
	}
	defer seq.Close()

	if seq.Waveform() != audio.Triangle {
		t.Errorf("expected triangle, got %v", seq.Waveform())
	}
	if seq.Volume() != 0.25 {
		t.Errorf("expected volume 0.25, got %v", seq.Volume())
	}
}

// ABOUTME: Shared CLI plumbing
// ABOUTME: Logging setup and sequencer construction from flags
package commands

import (
	"fmt"

	"github.com/Sendspin/beep-go/internal/logging"
	"github.com/Sendspin/beep-go/pkg/audio"
	"github.com/Sendspin/beep-go/pkg/audio/output"
	"github.com/Sendspin/beep-go/pkg/audio/synth"
	"github.com/Sendspin/beep-go/pkg/beep"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var (
	logger   = zerolog.Nop()
	closeLog = func() error { return nil }
)

// SetupLogging configures the logger from the global flags
func SetupLogging(c *cli.Context) error {
	l, closer, err := logging.New(logging.Options{
		Path:  c.String("log-file"),
		Debug: c.Bool("debug"),
	})
	if err != nil {
		return err
	}
	logger, closeLog = l, closer
	return nil
}

// CloseLogging closes the log file, if any
func CloseLogging(*cli.Context) error {
	return closeLog()
}

// soundFlags are shared by every command that makes noise
func soundFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:    "volume",
			Aliases: []string{"v"},
			Usage:   "Output level from 0 to 1",
			Value:   beep.DefaultVolume,
		},
		&cli.StringFlag{
			Name:    "wave",
			Aliases: []string{"w"},
			Usage:   "Waveform: square, sine, triangle or sawtooth",
			Value:   beep.DefaultWaveform.String(),
		},
		&cli.StringFlag{
			Name:    "backend",
			Aliases: []string{"b"},
			Usage:   "Audio output backend (see 'beep backends')",
			Value:   output.DefaultBackend,
			EnvVars: []string{"BEEP_BACKEND"},
		},
		&cli.IntFlag{
			Name:  "sample-rate",
			Usage: "Output sample rate in Hz",
			Value: synth.DefaultSampleRate,
		},
	}
}

// newSequencer builds a sequencer from the sound flags
func newSequencer(c *cli.Context) (*beep.Sequencer, error) {
	waveform, err := audio.ParseWaveform(c.String("wave"))
	if err != nil {
		return nil, err
	}

	backend := c.String("backend")
	if !output.Has(backend) {
		return nil, fmt.Errorf("unknown output backend %q (see 'beep backends')", backend)
	}

	host := synth.NewHost(synth.Config{
		SampleRate: c.Int("sample-rate"),
		Backend:    backend,
		Logger:     &logger,
	})

	return beep.New(
		beep.WithVolume(c.Float64("volume")),
		beep.WithWaveform(waveform),
		beep.WithHost(host),
		beep.WithLogger(logger),
	)
}

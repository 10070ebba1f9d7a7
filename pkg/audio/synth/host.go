// ABOUTME: Software audio host
// ABOUTME: Creates render engines attached to an output backend
package synth

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sendspin/beep-go/pkg/audio"
	"github.com/Sendspin/beep-go/pkg/audio/output"
	"github.com/rs/zerolog"
)

const (
	DefaultSampleRate = 44100
	DefaultChannels   = 1
)

// Config holds host configuration
type Config struct {
	// SampleRate in Hz (default: 44100)
	SampleRate int

	// Channels of interleaved output (default: 1)
	Channels int

	// Backend names the output backend used when Output is nil (default: oto)
	Backend string

	// Output is used for the first pipeline instead of a named backend
	Output output.Output

	// Logger receives engine diagnostics (default: disabled)
	Logger *zerolog.Logger
}

// Host implements audio.Host with software rendering
type Host struct {
	mu     sync.Mutex
	config Config
	log    zerolog.Logger
}

// NewHost creates a software host with the given configuration
func NewHost(config Config) *Host {
	if config.SampleRate == 0 {
		config.SampleRate = DefaultSampleRate
	}
	if config.Channels == 0 {
		config.Channels = DefaultChannels
	}
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &Host{
		config: config,
		log:    logger.With().Str("component", "synth").Logger(),
	}
}

// CreatePipeline creates an engine and starts its output
func (h *Host) CreatePipeline(ctx context.Context) (audio.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	out := h.config.Output
	h.config.Output = nil
	h.mu.Unlock()

	supplied := out != nil
	if !supplied {
		var err error
		out, err = output.ByName(h.config.Backend)
		if err != nil {
			return nil, err
		}
	}

	e := NewEngine(h.config.SampleRate, h.config.Channels, h.log)
	if err := e.attach(out); err != nil {
		if supplied {
			h.mu.Lock()
			h.config.Output = out
			h.mu.Unlock()
		}
		return nil, fmt.Errorf("failed to open audio output: %w", err)
	}

	h.log.Debug().
		Int("sample_rate", h.config.SampleRate).
		Int("channels", h.config.Channels).
		Str("output", fmt.Sprintf("%T", out)).
		Msg("audio pipeline created")

	return e, nil
}

// ABOUTME: play command
// ABOUTME: Plays a tone list given on the command line and waits for it
package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sendspin/beep-go/pkg/beep"
	"github.com/urfave/cli/v2"
)

// Play returns the play command
func Play() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Play tones back-to-back",
		ArgsUsage: "FREQ:DURATION [FREQ:DURATION...]",
		Description: "Durations without a unit are milliseconds.\n" +
			"Example: beep play 440:200 880:300",
		Flags:  soundFlags(),
		Action: runPlay,
	}
}

func runPlay(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("no tones given")
	}

	tones, err := beep.ParseTones(strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return err
	}

	seq, err := newSequencer(c)
	if err != nil {
		return err
	}
	defer seq.Close()

	if err := seq.Initialize(c.Context); err != nil {
		return err
	}

	logger.Info().
		Int("tones", len(tones)).
		Dur("duration", beep.TotalDuration(tones)).
		Msg("playing")

	if err := seq.Beep(c.Context, tones...); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

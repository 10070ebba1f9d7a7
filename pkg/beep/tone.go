// ABOUTME: Tone definition, validation and parsing
// ABOUTME: A tone is one (frequency, duration) instruction
package beep

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Tone is a single frequency held for a duration
type Tone struct {
	// Frequency in Hz, must be positive
	Frequency float64

	// Duration must not be negative; zero moves straight to the next tone
	Duration time.Duration
}

func (t Tone) String() string {
	return fmt.Sprintf("%gHz/%v", t.Frequency, t.Duration)
}

// Validate checks that tones is non-empty and every tone is playable
func Validate(tones []Tone) error {
	if len(tones) == 0 {
		return ErrEmptySequence
	}
	for i, t := range tones {
		if t.Frequency <= 0 || math.IsNaN(t.Frequency) || math.IsInf(t.Frequency, 0) {
			return fmt.Errorf("%w: tone %d has frequency %g", ErrInvalidTone, i, t.Frequency)
		}
		if t.Duration < 0 {
			return fmt.Errorf("%w: tone %d has negative duration %v", ErrInvalidTone, i, t.Duration)
		}
	}
	return nil
}

// TotalDuration returns the sum of all tone durations
func TotalDuration(tones []Tone) time.Duration {
	var total time.Duration
	for _, t := range tones {
		total += t.Duration
	}
	return total
}

// ParseTones parses "440:200,880:300" style tone lists.
// Tones are separated by commas or whitespace. A bare duration is in
// milliseconds; anything else uses time.ParseDuration syntax ("1.5s").
func ParseTones(s string) ([]Tone, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	tones := make([]Tone, 0, len(fields))
	for _, field := range fields {
		tone, err := parseTone(field)
		if err != nil {
			return nil, err
		}
		tones = append(tones, tone)
	}

	if err := Validate(tones); err != nil {
		return nil, err
	}
	return tones, nil
}

func parseTone(s string) (Tone, error) {
	freqStr, durStr, ok := strings.Cut(s, ":")
	if !ok {
		return Tone{}, fmt.Errorf("tone %q: expected frequency:duration", s)
	}

	freq, err := strconv.ParseFloat(freqStr, 64)
	if err != nil {
		return Tone{}, fmt.Errorf("tone %q: bad frequency: %w", s, err)
	}

	dur, err := parseDuration(durStr)
	if err != nil {
		return Tone{}, fmt.Errorf("tone %q: bad duration: %w", s, err)
	}

	return Tone{Frequency: freq, Duration: dur}, nil
}

func parseDuration(s string) (time.Duration, error) {
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(ms) || math.IsInf(ms, 0) {
			return 0, fmt.Errorf("%q is not a finite number", s)
		}
		return time.Duration(ms * float64(time.Millisecond)), nil
	}
	return time.ParseDuration(s)
}

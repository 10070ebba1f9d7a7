// ABOUTME: Audio output interface tests
// ABOUTME: Verifies backends implement Output and the null render loop timing
package output

import (
	"encoding/binary"
	"math"
	"sync"
	"testing"
	"time"
)

func TestBackendsImplementOutput(t *testing.T) {
	var _ Output = (*Oto)(nil)
	var _ Output = (*Malgo)(nil)
	var _ Output = (*Pulse)(nil)
	var _ Output = (*PortAudio)(nil)
	var _ Output = (*Null)(nil)
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		out, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q) failed: %v", name, err)
		}
		if out == nil {
			t.Fatalf("ByName(%q) returned nil", name)
		}
	}

	out, err := ByName("")
	if err != nil {
		t.Fatalf("ByName(\"\") failed: %v", err)
	}
	if _, ok := out.(*Oto); !ok {
		t.Errorf("expected default backend to be oto, got %T", out)
	}

	if _, err := ByName("speaker"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != 5 {
		t.Fatalf("expected 5 backends, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

// countingSource counts frames and fills them with a constant
type countingSource struct {
	mu      sync.Mutex
	samples int
	value   float32
}

func (c *countingSource) Render(buf []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range buf {
		buf[i] = c.value
	}
	c.samples += len(buf)
}

func (c *countingSource) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.samples
}

func TestNullRendersAtWallClockRate(t *testing.T) {
	src := &countingSource{}
	out := &Null{Interval: time.Millisecond}

	start := time.Now()
	if err := out.Open(8000, 2, src); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := out.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	elapsed := time.Since(start)

	frames := src.count() / 2
	maxFrames := int(elapsed.Seconds()*8000) + 1
	if frames > maxFrames {
		t.Errorf("rendered ahead of wall clock: %d frames in %v", frames, elapsed)
	}
	if frames < 8000*50/1000 {
		t.Errorf("rendered too little: %d frames in %v", frames, elapsed)
	}
	if src.count()%2 != 0 {
		t.Errorf("rendered a partial frame: %d samples", src.count())
	}

	// Rendering stops after Close
	after := src.count()
	time.Sleep(20 * time.Millisecond)
	if src.count() != after {
		t.Error("null output kept rendering after Close")
	}
}

func TestNullOpenTwice(t *testing.T) {
	out := NewNull()
	if err := out.Open(8000, 1, &countingSource{}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer out.Close()

	if err := out.Open(8000, 1, &countingSource{}); err == nil {
		t.Error("expected error opening twice")
	}
}

func TestNullInvalidFormat(t *testing.T) {
	if err := NewNull().Open(0, 1, &countingSource{}); err == nil {
		t.Error("expected error for zero sample rate")
	}
}

func TestNullCloseWithoutOpen(t *testing.T) {
	if err := NewNull().Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSourceReaderFloat32LE(t *testing.T) {
	r := &sourceReader{src: &countingSource{value: 0.25}, channels: 2}

	// 3 full stereo frames plus 5 stray bytes
	p := make([]byte, 3*8+5)
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if n != 24 {
		t.Fatalf("expected 24 bytes, got %d", n)
	}
	for i := 0; i < 6; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
		if got != 0.25 {
			t.Errorf("sample %d: expected 0.25, got %v", i, got)
		}
	}

	n, err = r.Read(make([]byte, 7))
	if err != nil || n != 0 {
		t.Errorf("expected empty read for short buffer, got n=%d err=%v", n, err)
	}
}

func TestRenderInt16(t *testing.T) {
	src := &countingSource{value: -0.5}
	out := make([]int16, 4)

	scratch := renderInt16(src, nil, out)
	if len(scratch) != 4 {
		t.Fatalf("expected scratch of 4, got %d", len(scratch))
	}
	for i, s := range out {
		if s != -16384 {
			t.Errorf("sample %d: expected -16384, got %d", i, s)
		}
	}
}

func TestHas(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"", true},
		{"oto", true},
		{"NULL", true},
		{"pulse", true},
		{"speaker", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Has(tt.name); got != tt.expected {
				t.Errorf("Has(%q) = %v, expected %v", tt.name, got, tt.expected)
			}
		})
	}
}

type fixedLatency time.Duration

func (f fixedLatency) Open(int, int, Source) error { return nil }
func (f fixedLatency) Close() error                { return nil }
func (f fixedLatency) Latency() time.Duration      { return time.Duration(f) }

func TestLatencyOf(t *testing.T) {
	var _ LatencyReporter = (*Oto)(nil)
	var _ LatencyReporter = (*Malgo)(nil)
	var _ LatencyReporter = (*Pulse)(nil)

	tests := []struct {
		name     string
		out      Output
		expected time.Duration
	}{
		{"null has none", NewNull(), 0},
		{"pulse", NewPulse(), pulseLatency},
		{"reported", fixedLatency(80 * time.Millisecond), 80 * time.Millisecond},
		{"negative clamps", fixedLatency(-time.Second), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LatencyOf(tt.out); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestOtoBufferBytes(t *testing.T) {
	// 50ms of mono float32 at 44.1kHz
	if got := bufferBytes(44100, 1, otoBufferSize); got != 2205*4 {
		t.Errorf("expected %d bytes, got %d", 2205*4, got)
	}
	if got := bufferBytes(48000, 2, otoBufferSize); got != 2400*2*4 {
		t.Errorf("expected %d bytes, got %d", 2400*2*4, got)
	}
}

package game

import (
	"math"
	"strings"
	"testing"
)

func TestClockTick(t *testing.T) {
	tests := []struct {
		name    string
		steps   []float64
		wantNow float64
	}{
		{"normal frames", []float64{0.5, 0.25}, 0.75},
		{"negative ignored", []float64{0.05, -1}, 0.05},
		{"long frame clamped", []float64{3}, MaxFrameStep},
		{"NaN ignored", []float64{0.05, math.NaN(), 0.05}, 0.1},
		{"infinity clamped", []float64{math.Inf(1)}, MaxFrameStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock()
			for _, dt := range tt.steps {
				c.Tick(dt)
			}
			if c.Now() != tt.wantNow {
				t.Errorf("Now() = %v, want %v", c.Now(), tt.wantNow)
			}
			if c.Frames() != uint64(len(tt.steps)) {
				t.Errorf("Frames() = %d, want %d", c.Frames(), len(tt.steps))
			}
		})
	}
}

func TestClockPause(t *testing.T) {
	c := NewClock()
	c.Tick(0.05)
	c.SetPaused(true)
	if got := c.Tick(0.05); got != 0 {
		t.Errorf("paused Tick returned %v, want 0", got)
	}
	if c.Now() != 0.05 {
		t.Errorf("Now() = %v, want 0.05 while paused", c.Now())
	}
	c.SetPaused(false)
	c.Tick(0.05)
	if c.Now() != 0.1 {
		t.Errorf("Now() = %v, want 0.1", c.Now())
	}
}

func TestClockTickNaN(t *testing.T) {
	c := NewClock()
	if got := c.Tick(math.NaN()); got != 0 {
		t.Errorf("Tick(NaN) = %v, want 0", got)
	}
	if c.Now() != 0 {
		t.Errorf("Now() = %v, want 0 after NaN frame", c.Now())
	}
}

func TestStatsLines(t *testing.T) {
	s := Stats{Records: 42, Capacity: 120000, Balls: 3, Mode: "area", PatchWidth: 1, PatchHeight: 1, LineVertical: true, Muted: true, Paused: true}
	text := s.String()

	for _, want := range []string{"Points: 42 / 120000", "Line: vertical", "Balls: 3", "Sound: off", "Mode: area", "PAUSED"} {
		if !strings.Contains(text, want) {
			t.Errorf("HUD text missing %q:\n%s", want, text)
		}
	}
}

func TestStatsVolume(t *testing.T) {
	s := Stats{Volume: 0.7}
	text := s.String()
	if !strings.Contains(text, "Sound: on (70%)") {
		t.Errorf("HUD text missing volume:\n%s", text)
	}
	if strings.Contains(text, "PAUSED") {
		t.Errorf("HUD text should not show pause marker:\n%s", text)
	}
}

package domain

import (
	"testing"
	"time"
)

func TestTemperatureFor(t *testing.T) {
	tests := []struct {
		score int
		want  Temperature
	}{
		{0, TemperatureCold},
		{49, TemperatureCold},
		{50, TemperatureWarm},
		{74, TemperatureWarm},
		{75, TemperatureHot},
		{100, TemperatureHot},
	}

	for _, tt := range tests {
		if got := TemperatureFor(tt.score); got != tt.want {
			t.Errorf("TemperatureFor(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestClamp100(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{49.4, 49},
		{49.5, 50},
		{100, 100},
		{140, 100},
	}

	for _, tt := range tests {
		if got := Clamp100(tt.in); got != tt.want {
			t.Errorf("Clamp100(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	if got := Clamp01(-0.2); got != 0 {
		t.Errorf("Clamp01(-0.2) = %v, want 0", got)
	}
	if got := Clamp01(1.5); got != 1 {
		t.Errorf("Clamp01(1.5) = %v, want 1", got)
	}
	if got := Clamp01(0.42); got != 0.42 {
		t.Errorf("Clamp01(0.42) = %v, want 0.42", got)
	}
}

func TestScoreInputAt(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := ScoreInput{Now: fixed}
	if got := in.At(); !got.Equal(fixed) {
		t.Errorf("At() = %v, want injected clock %v", got, fixed)
	}

	before := time.Now().UTC()
	got := ScoreInput{}.At()
	if got.Before(before.Add(-time.Minute)) {
		t.Errorf("At() with zero clock should be near now, got %v", got)
	}
}

func TestObjectionSignalsAny(t *testing.T) {
	if (ObjectionSignals{}).Any() {
		t.Error("empty signals should report no objection")
	}
	if !(ObjectionSignals{HasTimingObjection: true}).Any() {
		t.Error("timing objection should report true")
	}
}

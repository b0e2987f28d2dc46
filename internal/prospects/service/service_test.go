package service

import (
	"testing"
	"time"
)

func TestNodeKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Maria Santos", "maria santos"},
		{"  Maria   SANTOS ", "maria santos"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := nodeKey(tt.input); got != tt.want {
			t.Errorf("nodeKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEdgeRecency(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		daysAgo int
		want    float64
	}{
		{"captured now", 0, 1.0},
		{"half the window", 30, 0.5},
		{"past the window", 90, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := edgeRecency(now.AddDate(0, 0, -tt.daysAgo), now)
			if got != tt.want {
				t.Errorf("edgeRecency = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("future capture clamps to fresh", func(t *testing.T) {
		if got := edgeRecency(now.Add(time.Hour), now); got != 1.0 {
			t.Errorf("edgeRecency = %v, want 1.0 for a clock-skewed capture", got)
		}
	})
}

func TestNormalizeEmail(t *testing.T) {
	if got := normalizeEmail("  Maria.Santos@Example.COM "); got != "maria.santos@example.com" {
		t.Errorf("normalizeEmail = %q", got)
	}
}

func TestApplyOptional(t *testing.T) {
	if applyOptional(nil, normalizeEmail) != nil {
		t.Error("nil in, nil out")
	}

	s := " A@B.COM "
	got := applyOptional(&s, normalizeEmail)
	if got == nil || *got != "a@b.com" {
		t.Errorf("applyOptional = %v", got)
	}
	if s != " A@B.COM " {
		t.Error("applyOptional must not mutate the original")
	}
}

package engine

import (
	"testing"
	"time"

	"scoutscore_backend/internal/scoring/domain"
)

func TestScoreV3(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		clicks    []ClickEvent
		wantScore int
		wantTemp  domain.Temperature
	}{
		{
			name:      "no clicks is cold",
			clicks:    nil,
			wantScore: 0,
			wantTemp:  domain.TemperatureCold,
		},
		{
			name: "fresh cta click counts fully",
			clicks: []ClickEvent{
				{Type: "cta_click", Timestamp: now},
			},
			wantScore: 20,
			wantTemp:  domain.TemperatureCold,
		},
		{
			name: "clicks outside the window are ignored",
			clicks: []ClickEvent{
				{Type: "cta_click", Timestamp: now.AddDate(0, 0, -20)},
			},
			wantScore: 0,
			wantTemp:  domain.TemperatureCold,
		},
		{
			name: "half-window click is half weight",
			clicks: []ClickEvent{
				{Type: "cta_click", Timestamp: now.AddDate(0, 0, -7)},
			},
			wantScore: 10,
			wantTemp:  domain.TemperatureCold,
		},
		{
			name: "unknown click type gets default points",
			clicks: []ClickEvent{
				{Type: "story_view", Timestamp: now},
			},
			wantScore: 8,
			wantTemp:  domain.TemperatureCold,
		},
		{
			name: "sustained activity runs hot",
			clicks: []ClickEvent{
				{Type: "cta_click", Timestamp: now},
				{Type: "cta_click", Timestamp: now.AddDate(0, 0, -1)},
				{Type: "link_click", Timestamp: now},
				{Type: "reply", Timestamp: now},
			},
			wantScore: 69,
			wantTemp:  domain.TemperatureWarm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEngine(t)
			got := e.ScoreV3(Snapshot{
				Input: domain.ScoreInput{Now: now},
				Stats: Stats{Clicks: tt.clicks},
			})
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.LeadTemperature != tt.wantTemp {
				t.Errorf("temperature = %v, want %v", got.LeadTemperature, tt.wantTemp)
			}
		})
	}
}

func TestScoreV3HotThreshold(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	e := testEngine(t)

	clicks := []ClickEvent{
		{Type: "cta_click", Timestamp: now},
		{Type: "cta_click", Timestamp: now},
		{Type: "link_click", Timestamp: now},
		{Type: "reply", Timestamp: now},
	}
	got := e.ScoreV3(Snapshot{
		Input: domain.ScoreInput{Now: now},
		Stats: Stats{Clicks: clicks},
	})
	if got.Score != 70 {
		t.Fatalf("score = %d, want 70", got.Score)
	}
	if got.LeadTemperature != domain.TemperatureHot {
		t.Errorf("temperature = %v, want hot at 70", got.LeadTemperature)
	}
}

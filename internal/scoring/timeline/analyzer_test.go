package timeline

import (
	"testing"
	"time"

	"scoutscore_backend/internal/scoring/domain"
)

var analyzeNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func event(daysAgo int, opportunity, pain bool) domain.TimelineEvent {
	return domain.TimelineEvent{
		Timestamp:         analyzeNow.AddDate(0, 0, -daysAgo),
		Source:            "messenger",
		Type:              "message",
		OpportunitySignal: opportunity,
		PainPointSignal:   pain,
	}
}

func TestAnalyzeEmptyStream(t *testing.T) {
	a := Analyze(nil, analyzeNow)

	if a.LastInteractionDaysAgo != 999 {
		t.Errorf("lastInteractionDaysAgo = %d, want 999", a.LastInteractionDaysAgo)
	}
	if a.TrendDirection != domain.TrendStable {
		t.Errorf("trend = %v, want stable", a.TrendDirection)
	}
	if a.EngagementMomentum != 0 || a.OpportunityMomentum != 0 || a.PainPointIntensity != 0 {
		t.Error("empty stream must carry zero momentum")
	}
}

func TestAnalyzeMomentumDecaysWithAge(t *testing.T) {
	fresh := Analyze([]domain.TimelineEvent{event(0, true, false)}, analyzeNow)
	old := Analyze([]domain.TimelineEvent{event(27, true, false)}, analyzeNow)

	if fresh.OpportunityMomentum != 10 {
		t.Errorf("fresh event momentum = %v, want full 10 points", fresh.OpportunityMomentum)
	}
	if old.OpportunityMomentum >= fresh.OpportunityMomentum {
		t.Errorf("older event %v should carry less momentum than fresh %v",
			old.OpportunityMomentum, fresh.OpportunityMomentum)
	}
	if old.OpportunityMomentum <= 0 {
		t.Error("event inside the window must still count")
	}
}

func TestAnalyzeMomentumIsCapped(t *testing.T) {
	events := make([]domain.TimelineEvent, 0, 15)
	for i := 0; i < 15; i++ {
		events = append(events, event(0, true, false))
	}
	a := Analyze(events, analyzeNow)
	if a.EngagementMomentum != 100 {
		t.Errorf("engagement momentum = %v, want cap at 100", a.EngagementMomentum)
	}
}

func TestAnalyzeSplitsWindows(t *testing.T) {
	events := []domain.TimelineEvent{
		event(5, false, false),
		event(45, false, false), // prior window
		event(70, false, false), // outside both
	}
	a := Analyze(events, analyzeNow)
	if a.RecentEventCount != 1 {
		t.Errorf("recentEventCount = %d, want 1", a.RecentEventCount)
	}
	if a.LastInteractionDaysAgo != 5 {
		t.Errorf("lastInteractionDaysAgo = %d, want 5", a.LastInteractionDaysAgo)
	}
}

func TestAnalyzeTrend(t *testing.T) {
	t.Run("few recent events read stable", func(t *testing.T) {
		a := Analyze([]domain.TimelineEvent{event(1, true, false), event(2, true, false)}, analyzeNow)
		if a.TrendDirection != domain.TrendStable {
			t.Errorf("trend = %v, want stable below 3 events", a.TrendDirection)
		}
	})

	t.Run("activity burst reads warming up", func(t *testing.T) {
		events := []domain.TimelineEvent{
			event(1, true, false),
			event(2, true, false),
			event(3, false, false),
		}
		a := Analyze(events, analyzeNow)
		if a.TrendDirection != domain.TrendWarmingUp {
			t.Errorf("trend = %v, want warming_up", a.TrendDirection)
		}
	})

	t.Run("gone quiet reads cooling down", func(t *testing.T) {
		events := []domain.TimelineEvent{
			// Prior window was busy, recent window barely moved.
			event(35, true, false), event(36, true, false), event(37, true, false),
			event(38, true, false), event(39, true, false), event(40, true, false),
			event(28, false, false), event(29, false, false), event(29, false, false),
		}
		a := Analyze(events, analyzeNow)
		if a.TrendDirection != domain.TrendCoolingDown {
			t.Errorf("trend = %v, want cooling_down", a.TrendDirection)
		}
	})
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	events := []domain.TimelineEvent{event(1, false, false), event(10, false, false)}
	first := events[0].Timestamp
	Analyze(events, analyzeNow)
	if !events[0].Timestamp.Equal(first) {
		t.Error("Analyze must not reorder the caller's slice")
	}
}

package engine

import (
	"math"
	"testing"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/tables"
)

func TestExtractFeatures(t *testing.T) {
	values := ExtractFeatures(Stats{
		EngagementEvents:     5,
		BusinessInterestHits: 3,
		PainPointHits:        6,
		LifeEventHits:        1,
		LeadershipSignals:    2,
		RelationshipDepth:    40,
		ReplyRate:            1,
		MedianReplyMinutes:   20,
	})

	if values.Engagement != 50 {
		t.Errorf("engagement = %v, want 50", values.Engagement)
	}
	if values.BusinessInterest != 60 {
		t.Errorf("businessInterest = %v, want 60", values.BusinessInterest)
	}
	if values.PainPoint != 100 {
		t.Errorf("painPoint = %v, want cap at 100", values.PainPoint)
	}
	if values.LifeEvent != 25 {
		t.Errorf("lifeEvent = %v, want 25", values.LifeEvent)
	}
	if values.Leadership != 50 {
		t.Errorf("leadership = %v, want 50", values.Leadership)
	}
	if values.Relationship != 40 {
		t.Errorf("relationship = %v, want 40", values.Relationship)
	}
	// Full reply rate plus sub-30-minute latency caps responsiveness.
	if values.Responsiveness != 100 {
		t.Errorf("responsiveness = %v, want 100", values.Responsiveness)
	}
}

func TestResponsiveness(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		latency float64
		want    float64
	}{
		{"unknown latency uses rate alone", 0.5, 0, 50},
		{"fast replies add 30", 0.5, 15, 65},
		{"same-morning replies add 15", 0.5, 90, 50},
		{"same-day replies add 5", 0.5, 600, 40},
		{"slow replies add nothing", 0.5, 3000, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := responsiveness(Stats{ReplyRate: tt.rate, MedianReplyMinutes: tt.latency})
			if got != tt.want {
				t.Errorf("responsiveness = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecayPenalty(t *testing.T) {
	tests := []struct {
		days int
		want float64
	}{
		{0, 0},
		{30, 0},
		{31, 0.05},
		{60, 0.05},
		{61, 0.10},
		{90, 0.10},
		{91, 0.20},
	}

	for _, tt := range tests {
		if got := decayPenalty(tt.days); got != tt.want {
			t.Errorf("decayPenalty(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestScoreV2ObjectionOverridesCTA(t *testing.T) {
	e := testEngine(t)

	snap := Snapshot{
		Input: domain.ScoreInput{TextContent: "mahal naman, too expensive para sa akin"},
		Stats: Stats{EngagementEvents: 10, ReplyRate: 1, MedianReplyMinutes: 10},
	}
	got := e.ScoreV2(snap)

	if !got.ObjectionSignals.HasBudgetObjection {
		t.Fatal("expected budget objection to be detected")
	}
	if got.RecommendedCTA != "address_price_concerns" {
		t.Errorf("cta = %q, want address_price_concerns", got.RecommendedCTA)
	}
}

func TestScoreV2AppliesDecay(t *testing.T) {
	e := testEngine(t)

	fresh := e.ScoreV2(Snapshot{Stats: Stats{EngagementEvents: 10, ReplyRate: 1, LastInteractionDaysAgo: 5}})
	stale := e.ScoreV2(Snapshot{Stats: Stats{EngagementEvents: 10, ReplyRate: 1, LastInteractionDaysAgo: 120}})

	if stale.Score >= fresh.Score {
		t.Errorf("stale score %d should be below fresh score %d", stale.Score, fresh.Score)
	}
}

func TestScoreV2ZeroWeightsFallBackToDefaults(t *testing.T) {
	e := testEngine(t)

	withDefaults := e.ScoreV2(Snapshot{Stats: Stats{EngagementEvents: 5, ReplyRate: 0.5}})
	withZeroVector := e.ScoreV2(Snapshot{
		Stats:   Stats{EngagementEvents: 5, ReplyRate: 0.5},
		Weights: tables.FeatureWeights{},
	})

	if withDefaults.Score != withZeroVector.Score {
		t.Errorf("zero weight vector should score like the defaults: %d vs %d",
			withZeroVector.Score, withDefaults.Score)
	}
}

func TestAdjustWeightsFromOutcome(t *testing.T) {
	start := tables.FeatureWeights{
		Engagement:       0.20,
		BusinessInterest: 0.20,
		PainPoint:        0.15,
		LifeEvent:        0.10,
		Responsiveness:   0.15,
		Leadership:       0.10,
		Relationship:     0.10,
	}
	values := FeatureValues{Engagement: 90, BusinessInterest: 10}

	t.Run("won reinforces strong features", func(t *testing.T) {
		next := AdjustWeightsFromOutcome(start, values, domain.OutcomeWon)
		if next.Engagement <= start.Engagement {
			t.Errorf("engagement weight should rise, got %v", next.Engagement)
		}
		if math.Abs(next.Sum()-1.0) > 0.001 {
			t.Errorf("adjusted weights must renormalize to 1.0, sum = %v", next.Sum())
		}
	})

	t.Run("lost dampens strong features", func(t *testing.T) {
		next := AdjustWeightsFromOutcome(start, values, domain.OutcomeLost)
		if next.Engagement >= start.Engagement {
			t.Errorf("engagement weight should fall, got %v", next.Engagement)
		}
	})

	t.Run("weak features stay untouched before renormalization", func(t *testing.T) {
		next := AdjustWeightsFromOutcome(start, FeatureValues{}, domain.OutcomeWon)
		if next != start {
			t.Errorf("no feature above threshold should leave weights unchanged, got %+v", next)
		}
	})

	t.Run("unknown outcome is a no-op", func(t *testing.T) {
		next := AdjustWeightsFromOutcome(start, values, domain.Outcome("ghosted"))
		if next != start {
			t.Errorf("unknown outcome should return input unchanged, got %+v", next)
		}
	})
}

package predict

import (
	"testing"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/timeline"
)

func TestPredictProbabilityBounds(t *testing.T) {
	high := Predict(Input{
		BaseScore: 100,
		Timeline: timeline.Analysis{
			OpportunityMomentum: 100,
			PainPointIntensity:  100,
			TrendDirection:      domain.TrendWarmingUp,
		},
		GraphCentrality: 1,
		HorizonDays:     14,
	})
	if high.Probability > 1 {
		t.Errorf("probability = %v, want clamp at 1", high.Probability)
	}

	low := Predict(Input{
		BaseScore: 0,
		Timeline: timeline.Analysis{
			LastInteractionDaysAgo: 120,
			TrendDirection:         domain.TrendCoolingDown,
		},
		HorizonDays: 7,
	})
	if low.Probability < 0 {
		t.Errorf("probability = %v, want clamp at 0", low.Probability)
	}
}

func TestPredictFreshnessPenalty(t *testing.T) {
	base := Input{BaseScore: 60, HorizonDays: 7}

	fresh := base
	fresh.Timeline = timeline.Analysis{LastInteractionDaysAgo: 10}
	stale := base
	stale.Timeline = timeline.Analysis{LastInteractionDaysAgo: 40}

	pf := Predict(fresh)
	ps := Predict(stale)
	if ps.Probability >= pf.Probability {
		t.Errorf("stale probability %v should be below fresh %v", ps.Probability, pf.Probability)
	}

	found := false
	for _, r := range ps.NegativeReasons {
		if r == "no interaction for 40 days" {
			found = true
		}
	}
	if !found {
		t.Errorf("stale prediction should explain the silence, got %v", ps.NegativeReasons)
	}
}

func TestPredictTrendMultiplier(t *testing.T) {
	in := Input{BaseScore: 50, HorizonDays: 7}

	warming := in
	warming.Timeline = timeline.Analysis{TrendDirection: domain.TrendWarmingUp}
	cooling := in
	cooling.Timeline = timeline.Analysis{TrendDirection: domain.TrendCoolingDown}

	if Predict(warming).Probability <= Predict(cooling).Probability {
		t.Error("warming trend should beat cooling trend")
	}
}

func TestPredictRatings(t *testing.T) {
	tests := []struct {
		p    float64
		want Rating
	}{
		{0.85, RatingVeryHigh},
		{0.65, RatingHigh},
		{0.45, RatingMedium},
		{0.10, RatingLow},
	}
	for _, tt := range tests {
		if got := ratingFor(tt.p); got != tt.want {
			t.Errorf("ratingFor(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestPredictNextStep(t *testing.T) {
	tests := []struct {
		name       string
		rating     Rating
		daysAgo    int
		wantTiming Timing
	}{
		{"very high moves today", RatingVeryHigh, 10, TimingToday},
		{"high with open thread moves today", RatingHigh, 2, TimingToday},
		{"high after a gap waits for the week", RatingHigh, 10, TimingThisWeek},
		{"medium long silence restarts", RatingMedium, 40, TimingThisWeek},
		{"medium recent nurtures next week", RatingMedium, 5, TimingNextWeek},
		{"low waits", RatingLow, 5, TimingWait},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, timing := nextStep(tt.rating, tt.daysAgo)
			if timing != tt.wantTiming {
				t.Errorf("timing = %v, want %v", timing, tt.wantTiming)
			}
			if step == "" {
				t.Error("next step text must not be empty")
			}
		})
	}
}

func TestPredictHorizonFactor(t *testing.T) {
	short := Predict(Input{BaseScore: 50, HorizonDays: 2})
	long := Predict(Input{BaseScore: 50, HorizonDays: 14})
	if short.Probability >= long.Probability {
		t.Errorf("short horizon %v should predict below long horizon %v",
			short.Probability, long.Probability)
	}
	if short.HorizonDays != 2 || long.HorizonDays != 14 {
		t.Error("prediction must echo the requested horizon")
	}
}

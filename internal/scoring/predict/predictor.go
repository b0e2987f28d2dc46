// Package predict estimates the probability of a positive response
// within a time horizon by fusing the base score with behavioral
// momentum and social-graph centrality.
package predict

import (
	"fmt"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/timeline"
)

// Rating buckets a probability for display.
type Rating string

const (
	RatingVeryHigh Rating = "very_high"
	RatingHigh     Rating = "high"
	RatingMedium   Rating = "medium"
	RatingLow      Rating = "low"
)

// Timing recommends when to reach out next.
type Timing string

const (
	TimingToday    Timing = "today"
	TimingThisWeek Timing = "this_week"
	TimingNextWeek Timing = "next_week"
	TimingWait     Timing = "wait"
)

// Input bundles the predictor's upstream signals.
type Input struct {
	BaseScore       int
	Timeline        timeline.Analysis
	GraphCentrality float64 // 0-1
	HorizonDays     int
}

// Prediction is the predictor's output.
type Prediction struct {
	Probability     float64  `json:"probability"` // 0-1
	Rating          Rating   `json:"rating"`
	HorizonDays     int      `json:"horizonDays"`
	PositiveReasons []string `json:"positiveReasons,omitempty"`
	NegativeReasons []string `json:"negativeReasons,omitempty"`
	NextStep        string   `json:"nextStep"`
	Timing          Timing   `json:"timing"`
}

// Component weights of the probability blend.
const (
	opportunityWeight = 0.2
	painWeight        = 0.15
	centralityWeight  = 0.1

	// Freshness penalty starts after two weeks of silence and grows
	// 2 percentage points per additional day.
	freshnessGraceDays     = 14
	freshnessPenaltyPerDay = 0.02
)

// Predict estimates response probability over the horizon.
func Predict(in Input) Prediction {
	tl := in.Timeline

	penalty := 0.0
	if tl.LastInteractionDaysAgo > freshnessGraceDays {
		penalty = float64(tl.LastInteractionDaysAgo-freshnessGraceDays) * freshnessPenaltyPerDay
	}

	raw := domain.Clamp01(float64(in.BaseScore)/100 +
		opportunityWeight*tl.OpportunityMomentum/100 +
		painWeight*tl.PainPointIntensity/100 +
		centralityWeight*in.GraphCentrality -
		penalty)

	probability := domain.Clamp01(raw * trendMultiplier(tl.TrendDirection) * horizonFactor(in.HorizonDays))
	rating := ratingFor(probability)

	p := Prediction{
		Probability: probability,
		Rating:      rating,
		HorizonDays: in.HorizonDays,
	}
	p.PositiveReasons, p.NegativeReasons = reasons(in, penalty)
	p.NextStep, p.Timing = nextStep(rating, tl.LastInteractionDaysAgo)
	return p
}

func trendMultiplier(trend domain.TrendDirection) float64 {
	switch trend {
	case domain.TrendWarmingUp:
		return 1.1
	case domain.TrendCoolingDown:
		return 0.9
	default:
		return 1.0
	}
}

func horizonFactor(days int) float64 {
	switch {
	case days <= 3:
		return 0.8 // short horizons are harder to land
	case days <= 7:
		return 0.95
	case days >= 14:
		return 1.05
	default:
		return 1.0
	}
}

func ratingFor(p float64) Rating {
	switch {
	case p >= 0.8:
		return RatingVeryHigh
	case p >= 0.6:
		return RatingHigh
	case p >= 0.4:
		return RatingMedium
	default:
		return RatingLow
	}
}

func reasons(in Input, penalty float64) (positive, negative []string) {
	tl := in.Timeline

	if in.BaseScore >= 70 {
		positive = append(positive, fmt.Sprintf("strong base score (%d)", in.BaseScore))
	}
	if tl.OpportunityMomentum >= 40 {
		positive = append(positive, "rising opportunity signals in the last 30 days")
	}
	if tl.PainPointIntensity >= 40 {
		positive = append(positive, "active pain points they want solved")
	}
	if in.GraphCentrality >= 0.5 {
		positive = append(positive, "well connected in their social circle")
	}
	if tl.TrendDirection == domain.TrendWarmingUp {
		positive = append(positive, "engagement trend is warming up")
	}

	if in.BaseScore < 40 {
		negative = append(negative, fmt.Sprintf("weak base score (%d)", in.BaseScore))
	}
	if penalty > 0 {
		negative = append(negative, fmt.Sprintf("no interaction for %d days", tl.LastInteractionDaysAgo))
	}
	if tl.TrendDirection == domain.TrendCoolingDown {
		negative = append(negative, "engagement trend is cooling down")
	}
	if tl.TrendDirection == domain.TrendVolatile {
		negative = append(negative, "engagement is volatile, timing is unpredictable")
	}
	return positive, negative
}

// nextStep maps rating and recency onto a concrete recommendation.
func nextStep(rating Rating, daysSinceLast int) (string, Timing) {
	switch rating {
	case RatingVeryHigh:
		return "reach out now with a direct next step", TimingToday
	case RatingHigh:
		if daysSinceLast <= 3 {
			return "follow up on the open thread", TimingToday
		}
		return "re-engage with a value message this week", TimingThisWeek
	case RatingMedium:
		if daysSinceLast > 30 {
			return "restart with a light check-in", TimingThisWeek
		}
		return "nurture with relevant content", TimingNextWeek
	default:
		return "keep on the nurture list, do not push", TimingWait
	}
}

package engine

import (
	"fmt"

	"scoutscore_backend/internal/scoring/domain"
)

// Freshness is a staircase over days-since-last-interaction rather
// than a smooth decay: outreach cadence works in day buckets, and the
// cliffs match observed reply-rate drops.
func Freshness(daysSinceLast int) float64 {
	switch {
	case daysSinceLast <= 1:
		return 1.0
	case daysSinceLast <= 3:
		return 0.9
	case daysSinceLast <= 7:
		return 0.7
	case daysSinceLast <= 14:
		return 0.5
	case daysSinceLast <= 30:
		return 0.3
	case daysSinceLast <= 60:
		return 0.15
	default:
		return 0.1
	}
}

// BehaviorMomentum blends recent engagement momentum with the
// emotional trend slope of the conversation. Both come from the
// timeline analyzer; the slope maps -1..1 onto 0..1.
func BehaviorMomentum(engagementMomentum, emotionalTrendSlope float64) float64 {
	slopeComponent := (emotionalTrendSlope + 1) / 2
	return domain.Clamp01(0.7*engagementMomentum/100 + 0.3*slopeComponent)
}

// ScoreV4 is the 7-dimension momentum model. Each dimension is a 0-1
// sub-score; the weighted blend is scaled to 0-100. The 4-state lead
// temperature is a separate read: momentum and freshness crossed with
// the raw score, so a high-scoring but stale prospect reads
// warming_up rather than hot.
func (e *Engine) ScoreV4(snap Snapshot) domain.BaseScore {
	s := snap.Stats
	w := e.tables.V4

	dims := map[string]float64{
		"engagement":         s.EngagementMomentum / 100,
		"opportunity":        s.OpportunityMomentum / 100,
		"painPoints":         s.PainIntensity / 100,
		"socialGraph":        domain.Clamp01(s.GraphCentrality),
		"behaviorMomentum":   BehaviorMomentum(s.EngagementMomentum, s.EmotionalTrendSlope),
		"relationshipWarmth": domain.Clamp01(float64(s.RelationshipDepth) / 100),
		"freshness":          Freshness(s.LastInteractionDaysAgo),
	}

	raw := dims["engagement"]*w.Engagement +
		dims["opportunity"]*w.Opportunity +
		dims["painPoints"]*w.PainPoints +
		dims["socialGraph"]*w.SocialGraph +
		dims["behaviorMomentum"]*w.BehaviorMomentum +
		dims["relationshipWarmth"]*w.RelationshipWarmth +
		dims["freshness"]*w.Freshness

	score := domain.Clamp100(raw * 100)
	temp := momentumTemperature(score, dims["behaviorMomentum"], dims["freshness"])

	insights := []string{}
	if dims["freshness"] >= 0.9 {
		insights = append(insights, "interaction is fresh, strike while warm")
	}
	if s.TrendDirection == domain.TrendWarmingUp {
		insights = append(insights, "behavioral trend is warming up")
	}
	if s.TrendDirection == domain.TrendCoolingDown {
		insights = append(insights, "behavioral trend is cooling down")
	}
	if dims["socialGraph"] >= 0.5 {
		insights = append(insights, "central position in their social graph")
	}
	if len(insights) == 0 {
		insights = append(insights, fmt.Sprintf("momentum score %d from %d tracked interaction(s)", score, s.EngagementEvents))
	}

	return domain.BaseScore{
		Version:              int(V4),
		Industry:             snap.Input.Industry,
		Score:                score,
		LeadTemperature:      temp,
		ConversionLikelihood: score,
		RecommendedCTA:       ctaForScore(score),
		Breakdown:            dims,
		Insights:             insights,
	}
}

// momentumTemperature derives the 4-state temperature from the
// momentum(0.6)+freshness(0.4) blend crossed with the raw score.
func momentumTemperature(score int, momentum, freshness float64) domain.Temperature {
	blend := 0.6*momentum + 0.4*freshness
	switch {
	case blend >= 0.65 && score >= 70:
		return domain.TemperatureHot
	case blend >= 0.45 && score >= 50:
		return domain.TemperatureWarm
	case blend >= 0.30 || score >= 40:
		return domain.TemperatureWarmingUp
	default:
		return domain.TemperatureCold
	}
}

package engine

import (
	"fmt"

	"scoutscore_backend/internal/scoring/domain"
)

// ScoreV5 is the industry-aware composite: the v4 momentum score plus
// the timeline, graph, predictor, and pattern signals, blended with
// the industry's 5-dimension weight profile.
//
// Industry isolation: when the caller's active industry disagrees with
// the prospect's industry, the neutral profile is used and the result
// reports IndustryIsolationApplied. The upstream pattern fetch is the
// orchestrator's responsibility; it must also bypass industry-specific
// patterns under isolation.
func (e *Engine) ScoreV5(snap Snapshot) domain.BaseScore {
	base := e.ScoreV4(snap)

	industry, isolated := domain.IsolationCheck(snap.Input.Industry, snap.Input.ActiveIndustry)
	weights := e.tables.V5For(industry)
	if isolated {
		weights = e.tables.V5Neutral
	}

	sig := snap.V5
	raw := float64(base.Score)*weights.BaseScore +
		sig.BehavioralMomentum*weights.BehavioralMomentum +
		sig.SocialInfluence*weights.SocialInfluence +
		sig.OpportunityReadiness*100*weights.OpportunityReadiness +
		float64(sig.PatternMatch)*weights.PatternMatch

	score := domain.Clamp100(raw)

	insights := base.Insights
	if isolated {
		insights = append(insights,
			fmt.Sprintf("active industry %q differs from prospect industry %q, neutral weights applied",
				snap.Input.ActiveIndustry, snap.Input.Industry))
	}
	if sig.OpportunityReadiness >= 0.6 {
		insights = append(insights, "high predicted response probability")
	}
	if sig.PatternMatch >= 60 {
		insights = append(insights, "close match to a winning conversion pattern")
	}

	return domain.BaseScore{
		Version:              int(V5),
		Industry:             snap.Input.Industry,
		Score:                score,
		LeadTemperature:      bucket(score),
		IntentSignal:         base.IntentSignal,
		ConversionLikelihood: score,
		RecommendedCTA:       ctaForScore(score),
		Breakdown: map[string]float64{
			"baseScore":            float64(base.Score),
			"behavioralMomentum":   sig.BehavioralMomentum,
			"socialInfluence":      sig.SocialInfluence,
			"opportunityReadiness": sig.OpportunityReadiness,
			"patternMatch":         float64(sig.PatternMatch),
			"weightBaseScore":      weights.BaseScore,
			"weightMomentum":       weights.BehavioralMomentum,
			"weightInfluence":      weights.SocialInfluence,
			"weightReadiness":      weights.OpportunityReadiness,
			"weightPattern":        weights.PatternMatch,
		},
		Insights:                 insights,
		IndustryIsolationApplied: isolated,
	}
}

package service

import (
	"fmt"

	"scoutscore_backend/internal/scoring/domain"
)

// Fusion weights. Each computed overlay contributes a fixed share and
// takes it from the base; skipped overlays return their share to the
// base so a degraded pass never deflates the score.
const (
	overlayUnitWeight   = 0.10
	riskFlagPenalty     = 3.0
	maxComputedOverlays = 3
)

// fuse blends the base score with whatever overlays completed and
// derives the final temperature, intent, CTA, and insights.
func fuse(base domain.BaseScore, overlays overlayResults, skips []domain.OverlaySkip, debug bool) domain.FinalScore {
	adjustments := make(map[string]float64, maxComputedOverlays)
	computed := 0
	if overlays.persona != nil {
		adjustments["personaFit"] = float64(overlays.persona.PersonaFitScore)
		computed++
	}
	if overlays.cta != nil {
		adjustments["ctaFit"] = float64(overlays.cta.CTAFitScore)
		computed++
	}
	if overlays.emotional != nil {
		adjustments["trust"] = float64(overlays.emotional.TrustScore)
		computed++
	}

	baseWeight := 1.0 - overlayUnitWeight*float64(computed)
	raw := float64(base.Score) * baseWeight
	for _, v := range adjustments {
		raw += overlayUnitWeight * v
	}

	penalty := 0.0
	if overlays.emotional != nil {
		penalty = riskFlagPenalty * float64(len(overlays.emotional.RiskFlags))
	}
	raw -= penalty

	score := domain.Clamp100(raw)

	final := domain.FinalScore{
		Success:                  true,
		Base:                     base,
		PersonaFit:               overlays.persona,
		CTAFit:                   overlays.cta,
		Emotional:                overlays.emotional,
		FinalScore:               score,
		FinalLeadTemperature:     domain.TemperatureFor(score),
		FinalIntentSignal:        base.IntentSignal,
		FinalRecommendedCTA:      finalCTA(base, overlays),
		FinalInsights:            fusedInsights(base, overlays),
		IndustryIsolationApplied: base.IndustryIsolationApplied,
	}

	if debug {
		final.Debug = &domain.DebugBreakdown{
			BaseWeight:         baseWeight,
			OverlayWeight:      overlayUnitWeight,
			OverlayAdjustments: adjustments,
			RiskPenalty:        penalty,
			WeightsUsed:        base.Breakdown,
			Skips:              skips,
		}
	}
	return final
}

// finalCTA prefers the CTA-fit overlay's temperature-matched suggestion
// over the base recommendation.
func finalCTA(base domain.BaseScore, overlays overlayResults) string {
	if overlays.cta != nil && overlays.cta.SuggestedCTAType != "" {
		return overlays.cta.SuggestedCTAType
	}
	return base.RecommendedCTA
}

func fusedInsights(base domain.BaseScore, overlays overlayResults) []string {
	insights := append([]string{}, base.Insights...)
	if overlays.persona != nil {
		insights = append(insights, fmt.Sprintf("persona read: %s (fit %d)", overlays.persona.PersonaProfile, overlays.persona.PersonaFitScore))
		insights = append(insights, overlays.persona.Notes...)
	}
	if overlays.cta != nil {
		insights = append(insights, overlays.cta.Notes...)
	}
	if overlays.emotional != nil {
		e := overlays.emotional
		if e.EmotionalState != domain.EmotionNeutral {
			insights = append(insights, fmt.Sprintf("prospect reads %s", e.EmotionalState))
		}
		if e.ToneAdjustment != domain.ToneNone {
			insights = append(insights, fmt.Sprintf("adjust outreach tone: %s", e.ToneAdjustment))
		}
		for _, flag := range e.RiskFlags {
			insights = append(insights, fmt.Sprintf("risk flag: %s", flag))
		}
	}
	return insights
}

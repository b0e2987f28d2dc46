package overlay

import (
	"fmt"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/tables"
)

// CTA fit scores. Mismatch cases carry distinct values so the fused
// score reflects how wrong the last ask was, not just that it was wrong.
const (
	ctaFitHotExclusive  = 90
	ctaFitWarmMatch     = 80
	ctaFitGeneralMatch  = 70
	ctaFitTooAggressive = 30
	ctaFitTooWeak       = 40
	ctaFitOtherMismatch = 50
	ctaFitUnknown       = 45
	ctaFitNoneYet       = 50
)

// CTAFit scores how well the last call-to-action matched the
// prospect's current temperature, and suggests the next one. The base
// score's temperature drives the read; the industry selects the CTA
// table.
func CTAFit(t *tables.Tables, input domain.ScoreInput, base domain.BaseScore, industry domain.Industry) domain.CTAFit {
	defs, industrySpecific := t.CTAsFor(industry)
	temp := base.LeadTemperature

	notes := []string{}
	if !industrySpecific {
		notes = append(notes, fmt.Sprintf("no CTA table for industry %q, generic set used", industry))
	}

	fit := domain.CTAFit{
		LastCTAType:      input.LastCTAType,
		SuggestedCTAType: suggestCTA(defs, temp),
	}

	if input.LastCTAType == "" {
		fit.CTAFitScore = ctaFitNoneYet
		fit.Notes = append(notes, "no call-to-action sent yet")
		return fit
	}

	def, found := lookupCTA(defs, input.LastCTAType)
	if !found {
		fit.CTAFitScore = ctaFitUnknown
		fit.Notes = append(notes, fmt.Sprintf("unrecognized CTA %q", input.LastCTAType))
		return fit
	}

	switch {
	case def.ValidFor(temp) && temp == domain.TemperatureHot && def.ExclusiveTo(domain.TemperatureHot):
		fit.CTAFitScore = ctaFitHotExclusive
		notes = append(notes, "closing CTA matched a hot prospect")
	case def.ValidFor(temp) && temp == domain.TemperatureWarm:
		fit.CTAFitScore = ctaFitWarmMatch
	case def.ValidFor(temp):
		fit.CTAFitScore = ctaFitGeneralMatch
	case temp == domain.TemperatureCold && def.ValidFor(domain.TemperatureHot):
		fit.CTAFitScore = ctaFitTooAggressive
		notes = append(notes, fmt.Sprintf("CTA %q is too aggressive for a cold prospect", def.ID))
	case temp == domain.TemperatureHot && def.ValidFor(domain.TemperatureCold):
		fit.CTAFitScore = ctaFitTooWeak
		notes = append(notes, fmt.Sprintf("CTA %q undersells a hot prospect", def.ID))
	default:
		fit.CTAFitScore = ctaFitOtherMismatch
		notes = append(notes, fmt.Sprintf("CTA %q does not fit temperature %q", def.ID, temp))
	}

	fit.Notes = notes
	return fit
}

func lookupCTA(defs []tables.CTADefinition, id string) (tables.CTADefinition, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return tables.CTADefinition{}, false
}

// suggestCTA picks the next CTA for the temperature. For hot prospects
// a temperature-exclusive closer beats a general-purpose ask.
func suggestCTA(defs []tables.CTADefinition, temp domain.Temperature) string {
	if temp == domain.TemperatureHot {
		for _, d := range defs {
			if d.ExclusiveTo(domain.TemperatureHot) {
				return d.ID
			}
		}
	}
	for _, d := range defs {
		if d.ValidFor(temp) {
			return d.ID
		}
	}
	if len(defs) > 0 {
		return defs[0].ID
	}
	return ""
}

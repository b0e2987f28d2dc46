package overlay

import (
	"strings"
	"testing"

	"scoutscore_backend/internal/scoring/domain"
)

func TestCTAFitScores(t *testing.T) {
	tbl := overlayTables(t)

	tests := []struct {
		name    string
		lastCTA string
		temp    domain.Temperature
		want    int
	}{
		{"closing CTA on hot prospect", "close_deal", domain.TemperatureHot, 90},
		{"price CTA on warm prospect", "show_price", domain.TemperatureWarm, 80},
		{"soft intro on cold prospect", "soft_intro", domain.TemperatureCold, 70},
		{"closing CTA on cold prospect", "close_deal", domain.TemperatureCold, 30},
		{"soft intro on hot prospect", "soft_intro", domain.TemperatureHot, 40},
		{"closing CTA on warm prospect", "close_deal", domain.TemperatureWarm, 50},
		{"unrecognized CTA", "send_meme", domain.TemperatureWarm, 45},
		{"no CTA sent yet", "", domain.TemperatureWarm, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := domain.ScoreInput{LastCTAType: tt.lastCTA}
			base := domain.BaseScore{LeadTemperature: tt.temp}
			fit := CTAFit(tbl, input, base, domain.IndustryMLM)
			if fit.CTAFitScore != tt.want {
				t.Errorf("fit score = %d, want %d", fit.CTAFitScore, tt.want)
			}
			if fit.LastCTAType != tt.lastCTA {
				t.Errorf("lastCTAType = %q, want %q", fit.LastCTAType, tt.lastCTA)
			}
		})
	}
}

func TestCTAFitSuggestsCloserForHot(t *testing.T) {
	tbl := overlayTables(t)
	base := domain.BaseScore{LeadTemperature: domain.TemperatureHot}

	fit := CTAFit(tbl, domain.ScoreInput{}, base, domain.IndustryMLM)
	if fit.SuggestedCTAType != "close_deal" {
		t.Errorf("suggested = %s, want the hot-exclusive closer", fit.SuggestedCTAType)
	}
}

func TestCTAFitSuggestsFirstValidForCold(t *testing.T) {
	tbl := overlayTables(t)
	base := domain.BaseScore{LeadTemperature: domain.TemperatureCold}

	fit := CTAFit(tbl, domain.ScoreInput{}, base, domain.IndustryMLM)
	if fit.SuggestedCTAType != "soft_intro" {
		t.Errorf("suggested = %s, want soft_intro for a cold prospect", fit.SuggestedCTAType)
	}
}

func TestCTAFitGenericTableFallback(t *testing.T) {
	tbl := overlayTables(t)
	base := domain.BaseScore{LeadTemperature: domain.TemperatureWarm}

	fit := CTAFit(tbl, domain.ScoreInput{LastCTAType: "show_price"}, base, domain.IndustrySaaS)
	if fit.CTAFitScore != 80 {
		t.Errorf("fit score = %d, want 80 from the generic table", fit.CTAFitScore)
	}
	if len(fit.Notes) == 0 || !strings.Contains(fit.Notes[0], "no CTA table") {
		t.Errorf("expected a fallback note first, got %v", fit.Notes)
	}
}

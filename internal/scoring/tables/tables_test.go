package tables

import (
	"math"
	"testing"

	"scoutscore_backend/internal/scoring/domain"
)

func TestDefaultsValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("compiled-in defaults must validate: %v", err)
	}
}

func TestDefaultWeightGroupsSumToOne(t *testing.T) {
	tbl := Default()

	if s := tbl.V5Neutral.Sum(); math.Abs(s-1.0) > 0.001 {
		t.Errorf("neutral v5 weights sum %v, want 1.0", s)
	}
	for ind, w := range tbl.V5ByIndustry {
		if s := w.Sum(); math.Abs(s-1.0) > 0.001 {
			t.Errorf("v5 weights for %s sum %v, want 1.0", ind, s)
		}
	}
	if s := tbl.DefaultFeatures.Sum(); math.Abs(s-1.0) > 0.001 {
		t.Errorf("default feature weights sum %v, want 1.0", s)
	}
	if s := tbl.V4.Sum(); math.Abs(s-1.0) > 0.001 {
		t.Errorf("v4 weights sum %v, want 1.0", s)
	}
}

func TestV5ForFallsBackToNeutral(t *testing.T) {
	tbl := Default()

	if got := tbl.V5For(domain.IndustryMLM); got != tbl.V5ByIndustry[domain.IndustryMLM] {
		t.Error("known industry should return its own profile")
	}
	// The industry enum is closed, but override files may delete entries.
	delete(tbl.V5ByIndustry, domain.IndustryTravel)
	if got := tbl.V5For(domain.IndustryTravel); got != tbl.V5Neutral {
		t.Error("missing profile should fall back to neutral")
	}
}

func TestPersonasForFallback(t *testing.T) {
	tbl := Default()

	if _, specific := tbl.PersonasFor(domain.IndustryMLM); !specific {
		t.Error("mlm has a curated persona library")
	}
	personas, specific := tbl.PersonasFor(domain.IndustryBeauty)
	if specific {
		t.Error("beauty has no curated library, want generic fallback")
	}
	if len(personas) == 0 {
		t.Error("generic persona set must not be empty")
	}
}

func TestCTAsForFallback(t *testing.T) {
	tbl := Default()

	if _, specific := tbl.CTAsFor(domain.IndustryInsurance); !specific {
		t.Error("insurance has a curated CTA table")
	}
	ctas, specific := tbl.CTAsFor(domain.IndustrySaaS)
	if specific {
		t.Error("saas has no curated CTA table, want generic fallback")
	}
	if len(ctas) == 0 {
		t.Error("generic CTA set must not be empty")
	}
}

func TestCTADefinitionChecks(t *testing.T) {
	closer := CTADefinition{ID: "close_deal", Temperatures: []domain.Temperature{domain.TemperatureHot}}
	if !closer.ValidFor(domain.TemperatureHot) || closer.ValidFor(domain.TemperatureCold) {
		t.Error("closer should be valid for hot only")
	}
	if !closer.ExclusiveTo(domain.TemperatureHot) {
		t.Error("single-temperature CTA is exclusive")
	}

	both := CTADefinition{ID: "book_call", Temperatures: []domain.Temperature{domain.TemperatureWarm, domain.TemperatureHot}}
	if both.ExclusiveTo(domain.TemperatureHot) {
		t.Error("multi-temperature CTA is not exclusive")
	}
}

func TestFeatureWeightsNormalize(t *testing.T) {
	w := FeatureWeights{Engagement: 2, PainPoint: 2}
	n := w.Normalize()
	if math.Abs(n.Sum()-1.0) > 1e-9 {
		t.Errorf("normalized sum = %v, want 1.0", n.Sum())
	}
	if n.Engagement != 0.5 || n.PainPoint != 0.5 {
		t.Errorf("normalize should preserve proportions, got %+v", n)
	}

	zero := FeatureWeights{}
	if zero.Normalize() != zero {
		t.Error("zero vector normalizes to itself")
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	tbl := Default()
	tbl.V4.Engagement += 0.5
	if err := tbl.Validate(); err == nil {
		t.Error("v4 weights summing past 1.0 must fail validation")
	}

	tbl = Default()
	patterns := make([]ConversionPattern, len(tbl.CuratedPatterns))
	copy(patterns, tbl.CuratedPatterns)
	patterns[0].SuccessRate = 1.4
	tbl.CuratedPatterns = patterns
	if err := tbl.Validate(); err == nil {
		t.Error("success rate above 1.0 must fail validation")
	}
}

package tables

import (
	"os"
	"path/filepath"
	"testing"

	"scoutscore_backend/internal/scoring/domain"
)

func writeTablesFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, tablesFile), []byte(content), 0o644); err != nil {
		t.Fatalf("write override file: %v", err)
	}
	return dir
}

func TestLoadWithoutDirReturnsDefaults(t *testing.T) {
	tbl, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if tbl.V5Neutral != Default().V5Neutral {
		t.Error("empty dir should return the compiled-in defaults")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	tbl, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load on empty dir failed: %v", err)
	}
	if len(tbl.CuratedPatterns) == 0 {
		t.Error("defaults should carry the curated pattern library")
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := writeTablesFile(t, `
v5Weights:
  saas:
    baseScore: 0.50
    behavioralMomentum: 0.20
    socialInfluence: 0.10
    opportunityReadiness: 0.10
    patternMatch: 0.10
`)
	tbl, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := tbl.V5For(domain.IndustrySaaS).BaseScore; got != 0.50 {
		t.Errorf("saas baseScore = %v, want overridden 0.50", got)
	}
	// Sections absent from the file keep their defaults.
	if got := tbl.V5For(domain.IndustryMLM); got != Default().V5ByIndustry[domain.IndustryMLM] {
		t.Error("industries not in the override file must keep their defaults")
	}
	if tbl.V4 != Default().V4 {
		t.Error("v4 weights must keep their defaults")
	}
}

func TestLoadRejectsInvalidWeights(t *testing.T) {
	dir := writeTablesFile(t, `
v4Weights:
  engagement: 0.9
  opportunity: 0.9
  painPoints: 0.1
  socialGraph: 0.1
  behaviorMomentum: 0.1
  relationshipWarmth: 0.1
  freshness: 0.1
`)
	if _, err := Load(dir); err == nil {
		t.Error("override with weights summing past 1.0 must fail")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := writeTablesFile(t, "v4Weights: [not a map")
	if _, err := Load(dir); err == nil {
		t.Error("malformed yaml must fail")
	}
}

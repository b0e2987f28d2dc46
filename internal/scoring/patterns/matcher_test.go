package patterns

import (
	"context"
	"errors"
	"testing"
	"time"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/tables"

	"github.com/google/uuid"
)

type stubStore struct {
	won []WonProspect
	err error
}

func (s *stubStore) ListClosedWon(ctx context.Context, userID uuid.UUID) ([]WonProspect, error) {
	return s.won, s.err
}

func defaultTables(t *testing.T) *tables.Tables {
	t.Helper()
	tbl, err := tables.Load("")
	if err != nil {
		t.Fatalf("load tables: %v", err)
	}
	return tbl
}

func TestBestMatchPrefersHighestSuccessRate(t *testing.T) {
	m := New(defaultTables(t), nil)

	match, err := m.BestMatch(context.Background(), uuid.New(), "deal_hunter", domain.IndustryEcommerce, true)
	if err != nil {
		t.Fatalf("BestMatch failed: %v", err)
	}
	if match.Pattern.ID != "ecommerce-deal-hunter" {
		t.Errorf("pattern = %s, want the highest-rate ecommerce pattern", match.Pattern.ID)
	}
	if match.UserDerived {
		t.Error("curated pattern must not read as user-derived")
	}
	if len(match.Recommendations) == 0 {
		t.Error("a match should carry recommendations")
	}
}

func TestBestMatchIsolationSkipsIndustryPatterns(t *testing.T) {
	m := New(defaultTables(t), nil)

	match, err := m.BestMatch(context.Background(), uuid.New(), "deal_hunter", domain.IndustryEcommerce, false)
	if err != nil {
		t.Fatalf("BestMatch failed: %v", err)
	}
	if match.Pattern.Industry != "" {
		t.Errorf("isolation must exclude industry patterns, got %s", match.Pattern.ID)
	}
	if match.Pattern.ID != "generic-warm-nurture" {
		t.Errorf("pattern = %s, want the generic fallback", match.Pattern.ID)
	}
}

func TestBestMatchMinesUserPatterns(t *testing.T) {
	closedAt := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC) // a tuesday
	won := make([]WonProspect, 0, 3)
	for i := 0; i < 3; i++ {
		won = append(won, WonProspect{
			Persona:     "side_hustler",
			Industry:    domain.IndustryMLM,
			StepsTaken:  []string{"soft_intro", "show_price", "close_deal"},
			DaysToClose: 6 + i,
			ClosedAt:    closedAt.AddDate(0, 0, i*7),
		})
	}
	m := New(defaultTables(t), &stubStore{won: won})

	match, err := m.BestMatch(context.Background(), uuid.New(), "side_hustler", domain.IndustryMLM, true)
	if err != nil {
		t.Fatalf("BestMatch failed: %v", err)
	}
	// User-derived patterns carry successRate 1.0 and outrank the library.
	if !match.UserDerived {
		t.Fatalf("pattern = %s, want the mined user pattern", match.Pattern.ID)
	}
	if match.Pattern.SuccessRate != 1.0 {
		t.Errorf("mined success rate = %v, want 1.0", match.Pattern.SuccessRate)
	}
	if match.Pattern.AvgTimeToCloseDays != 7 {
		t.Errorf("avg days to close = %d, want 7", match.Pattern.AvgTimeToCloseDays)
	}
	if len(match.Pattern.BestDaysOfWeek) == 0 {
		t.Error("mined pattern should carry best contact days")
	}
}

func TestBestMatchMiningNeedsEvidence(t *testing.T) {
	won := []WonProspect{
		{Persona: "side_hustler", Industry: domain.IndustryMLM, DaysToClose: 5},
		{Persona: "side_hustler", Industry: domain.IndustryMLM, DaysToClose: 7},
	}
	m := New(defaultTables(t), &stubStore{won: won})

	match, err := m.BestMatch(context.Background(), uuid.New(), "side_hustler", domain.IndustryMLM, true)
	if err != nil {
		t.Fatalf("BestMatch failed: %v", err)
	}
	if match.UserDerived {
		t.Error("two wins are below the evidence floor, want a curated pattern")
	}
}

func TestBestMatchStoreFailureDegradesToCurated(t *testing.T) {
	m := New(defaultTables(t), &stubStore{err: errors.New("db down")})

	match, err := m.BestMatch(context.Background(), uuid.New(), "deal_hunter", domain.IndustryEcommerce, true)
	if err != nil {
		t.Fatalf("BestMatch should degrade, not fail: %v", err)
	}
	if match.UserDerived {
		t.Error("mining failure must fall back to the curated library")
	}
}

func TestPatternScoreSpecificity(t *testing.T) {
	exact := tables.ConversionPattern{Persona: "side_hustler", Industry: domain.IndustryMLM, SuccessRate: 0.5}
	industryOnly := tables.ConversionPattern{Industry: domain.IndustryMLM, SuccessRate: 0.5}
	generic := tables.ConversionPattern{SuccessRate: 0.5}

	if got := patternScore(exact, "side_hustler", domain.IndustryMLM); got != 50 {
		t.Errorf("exact match score = %d, want 50", got)
	}
	if got := patternScore(industryOnly, "side_hustler", domain.IndustryMLM); got != 40 {
		t.Errorf("industry match score = %d, want 40", got)
	}
	if got := patternScore(generic, "side_hustler", domain.IndustryMLM); got != 30 {
		t.Errorf("generic score = %d, want 30", got)
	}
}

func TestRecommendationsFormatting(t *testing.T) {
	m := Match{Pattern: tables.ConversionPattern{
		ID:                 "ecom-test",
		Steps:              []string{"intro", "demo", "close"},
		BestDaysOfWeek:     []string{"monday", "friday"},
		AvgTimeToCloseDays: 9,
	}}

	recs := recommendations(m, "deal_hunter")
	want := map[string]bool{
		"follow the ecom-test sequence: intro > demo > close": false,
		"best contact days: monday, friday":                   false,
	}
	for _, r := range recs {
		if _, ok := want[r]; ok {
			want[r] = true
		}
	}
	for text, seen := range want {
		if !seen {
			t.Errorf("recommendations = %v, missing %q", recs, text)
		}
	}
}

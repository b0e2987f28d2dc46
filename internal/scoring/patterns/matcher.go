// Package patterns matches a prospect's inferred persona and industry
// against a library of historical conversion sequences: a curated
// global set plus patterns mined from the calling user's own
// closed-won prospects.
package patterns

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/tables"

	"github.com/google/uuid"
)

// minProspectsPerPersona is the evidence floor before a user's own wins
// become a pattern.
const minProspectsPerPersona = 3

// WonProspect is one closed-won prospect row used for mining.
type WonProspect struct {
	Persona     string
	Industry    domain.Industry
	StepsTaken  []string
	DaysToClose int
	ClosedAt    time.Time
}

// Store is the persistence port the matcher reads from.
type Store interface {
	// ListClosedWon returns the user's closed-won prospects with their
	// inferred personas and conversion metadata.
	ListClosedWon(ctx context.Context, userID uuid.UUID) ([]WonProspect, error)
}

// Match is the matcher's output.
type Match struct {
	Pattern         tables.ConversionPattern `json:"pattern"`
	Score           int                      `json:"score"` // 0-100
	UserDerived     bool                     `json:"userDerived"`
	Recommendations []string                 `json:"recommendations,omitempty"`
}

// Matcher combines the curated library with user-mined patterns.
type Matcher struct {
	tables *tables.Tables
	store  Store
}

// New creates a pattern matcher. store may be nil, in which case only
// the curated library is consulted.
func New(t *tables.Tables, store Store) *Matcher {
	return &Matcher{tables: t, store: store}
}

// BestMatch returns the top pattern by success rate for the persona and
// industry. When includeIndustry is false (industry isolation) the
// industry-specific entries are bypassed entirely and only generic and
// persona-matching patterns compete.
func (m *Matcher) BestMatch(ctx context.Context, userID uuid.UUID, persona string, industry domain.Industry, includeIndustry bool) (Match, error) {
	candidates := make([]Match, 0, len(m.tables.CuratedPatterns))

	for _, p := range m.tables.CuratedPatterns {
		if p.Industry != "" && (!includeIndustry || p.Industry != industry) {
			continue
		}
		candidates = append(candidates, Match{
			Pattern: p,
			Score:   patternScore(p, persona, industry),
		})
	}

	if m.store != nil {
		mined, err := m.mineUserPatterns(ctx, userID, industry, includeIndustry)
		if err != nil {
			// Mining failure degrades to the curated library only.
			mined = nil
		}
		for _, p := range mined {
			candidates = append(candidates, Match{
				Pattern:     p,
				Score:       patternScore(p, persona, industry),
				UserDerived: true,
			})
		}
	}

	if len(candidates) == 0 {
		return Match{}, domain.NewScoringError(domain.FailureDataUnavailable, "patterns", fmt.Errorf("no conversion patterns available"))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Pattern.SuccessRate != candidates[j].Pattern.SuccessRate {
			return candidates[i].Pattern.SuccessRate > candidates[j].Pattern.SuccessRate
		}
		return candidates[i].Score > candidates[j].Score
	})

	best := candidates[0]
	best.Recommendations = recommendations(best, persona)
	return best, nil
}

// patternScore turns specificity and success rate into a 0-100 match
// score: exact persona+industry matches keep the full rate, industry-
// only matches 80%, fully generic patterns 60%.
func patternScore(p tables.ConversionPattern, persona string, industry domain.Industry) int {
	specificity := 0.6
	switch {
	case p.Persona != "" && p.Persona == persona && p.Industry == industry:
		specificity = 1.0
	case p.Industry != "" && p.Industry == industry:
		specificity = 0.8
	case p.Persona != "" && p.Persona == persona:
		specificity = 0.8
	}
	return domain.Clamp100(p.SuccessRate * 100 * specificity)
}

// mineUserPatterns groups the user's closed-won prospects by persona
// and emits a pattern per persona with at least minProspectsPerPersona
// wins. User-derived patterns carry successRate 1.0: they are ground
// truth, not estimates.
func (m *Matcher) mineUserPatterns(ctx context.Context, userID uuid.UUID, industry domain.Industry, includeIndustry bool) ([]tables.ConversionPattern, error) {
	won, err := m.store.ListClosedWon(ctx, userID)
	if err != nil {
		return nil, err
	}

	byPersona := make(map[string][]WonProspect)
	for _, w := range won {
		if w.Persona == "" {
			continue
		}
		if w.Industry != "" && !includeIndustry && w.Industry == industry {
			// Industry isolation: skip wins tied to the isolated industry.
			continue
		}
		byPersona[w.Persona] = append(byPersona[w.Persona], w)
	}

	personas := make([]string, 0, len(byPersona))
	for p := range byPersona {
		personas = append(personas, p)
	}
	sort.Strings(personas)

	var mined []tables.ConversionPattern
	for _, persona := range personas {
		group := byPersona[persona]
		if len(group) < minProspectsPerPersona {
			continue
		}
		mined = append(mined, minePersonaPattern(userID, persona, group))
	}
	return mined, nil
}

func minePersonaPattern(userID uuid.UUID, persona string, group []WonProspect) tables.ConversionPattern {
	totalDays := 0
	dayCounts := make(map[string]int)
	var steps []string
	for _, w := range group {
		totalDays += w.DaysToClose
		dayCounts[weekdayName(w.ClosedAt)]++
		if len(w.StepsTaken) > len(steps) {
			steps = w.StepsTaken
		}
	}

	return tables.ConversionPattern{
		ID:                 fmt.Sprintf("user-%s-%s", userID, persona),
		Persona:            persona,
		Industry:           group[0].Industry,
		Steps:              steps,
		SuccessRate:        1.0,
		AvgTimeToCloseDays: totalDays / len(group),
		BestDaysOfWeek:     topDays(dayCounts, 2),
		BestTimesOfDay:     nil, // close timestamps carry date precision only
	}
}

func weekdayName(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	switch t.Weekday() {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}

func topDays(counts map[string]int, n int) []string {
	type entry struct {
		day   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for day, count := range counts {
		if day == "" {
			continue
		}
		entries = append(entries, entry{day, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].day < entries[j].day
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	days := make([]string, len(entries))
	for i, e := range entries {
		days[i] = e.day
	}
	return days
}

func recommendations(m Match, persona string) []string {
	var recs []string
	p := m.Pattern

	if len(p.Steps) > 0 {
		recs = append(recs, fmt.Sprintf("follow the %s sequence: %s", p.ID, strings.Join(p.Steps, " > ")))
	}
	if len(p.BestDaysOfWeek) > 0 {
		recs = append(recs, fmt.Sprintf("best contact days: %s", strings.Join(p.BestDaysOfWeek, ", ")))
	}
	if len(p.BestTimesOfDay) > 0 {
		recs = append(recs, fmt.Sprintf("best contact windows: %s", strings.Join(p.BestTimesOfDay, ", ")))
	}
	if p.AvgTimeToCloseDays > 0 {
		recs = append(recs, fmt.Sprintf("expect roughly %d days to close", p.AvgTimeToCloseDays))
	}
	if persona == "relationship_first" || persona == "side_hustler" {
		recs = append(recs, "lead with Taglish messaging for warm prospects")
	}
	if m.UserDerived {
		recs = append(recs, "pattern mined from your own closed-won prospects")
	}
	return recs
}

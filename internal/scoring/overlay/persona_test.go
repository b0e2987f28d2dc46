package overlay

import (
	"strings"
	"testing"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/tables"
)

func overlayTables(t *testing.T) *tables.Tables {
	t.Helper()
	tbl, err := tables.Load("")
	if err != nil {
		t.Fatalf("load tables: %v", err)
	}
	return tbl
}

func prospectSays(texts ...string) []domain.Message {
	msgs := make([]domain.Message, 0, len(texts))
	for _, txt := range texts {
		msgs = append(msgs, domain.Message{Sender: "user", Text: txt})
	}
	return msgs
}

func TestPersonaFitMatchesStrongSignal(t *testing.T) {
	tbl := overlayTables(t)
	input := domain.ScoreInput{
		LastMessages: prospectSays("looking for extra income, pwede bang sideline?"),
	}

	fit := PersonaFit(tbl, input, domain.IndustryMLM)
	if fit.PersonaProfile != "side_hustler" {
		t.Errorf("persona = %s, want side_hustler", fit.PersonaProfile)
	}
	// Two phrases plus two keyword hits, no runner-up to blend with.
	if fit.PersonaFitScore != 80 {
		t.Errorf("fit score = %d, want 80", fit.PersonaFitScore)
	}
}

func TestPersonaFitFloorFallsBackToGeneric(t *testing.T) {
	tbl := overlayTables(t)
	input := domain.ScoreInput{LastMessages: prospectSays("hello po")}

	fit := PersonaFit(tbl, input, domain.IndustryMLM)
	if fit.PersonaProfile != "generic" {
		t.Errorf("persona = %s, want generic below the signal floor", fit.PersonaProfile)
	}
	if fit.PersonaFitScore != 50 {
		t.Errorf("fit score = %d, want the neutral 50", fit.PersonaFitScore)
	}
	if len(fit.Notes) == 0 {
		t.Error("a floored read should explain itself")
	}
}

func TestPersonaFitBlendsCloseRunnerUp(t *testing.T) {
	tbl := overlayTables(t)
	// side_hustler and aspiring_builder both land exactly two keywords.
	input := domain.ScoreInput{
		LastMessages: prospectSays("sideline raket business team"),
	}

	fit := PersonaFit(tbl, input, domain.IndustryMLM)
	if fit.PersonaFitScore != 30 {
		t.Errorf("blended score = %d, want the 30/30 average", fit.PersonaFitScore)
	}
	blended := false
	for _, n := range fit.Notes {
		if strings.Contains(n, "blended") {
			blended = true
		}
	}
	if !blended {
		t.Errorf("expected a blend note, got %v", fit.Notes)
	}
}

func TestPersonaFitGenericLibraryFallback(t *testing.T) {
	tbl := overlayTables(t)
	input := domain.ScoreInput{
		LastMessages: prospectSays("magkano? worth it ba, quality ba talaga"),
	}

	fit := PersonaFit(tbl, input, domain.IndustryBeauty)
	if fit.PersonaProfile != "practical_buyer" {
		t.Errorf("persona = %s, want practical_buyer from the generic set", fit.PersonaProfile)
	}
	if len(fit.Notes) == 0 || !strings.Contains(fit.Notes[0], "no persona library") {
		t.Errorf("expected a fallback note first, got %v", fit.Notes)
	}
}

func TestPersonaFitUsesTextContentWithoutMessages(t *testing.T) {
	tbl := overlayTables(t)
	input := domain.ScoreInput{
		TextContent: "looking for extra income, pwede bang sideline?",
		LastMessages: []domain.Message{
			{Sender: "owner", Text: "gusto mo ba ng business?"},
		},
	}

	fit := PersonaFit(tbl, input, domain.IndustryMLM)
	if fit.PersonaProfile != "side_hustler" {
		t.Errorf("persona = %s, want the profile text to carry the read", fit.PersonaProfile)
	}
}

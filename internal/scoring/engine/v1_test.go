package engine

import (
	"testing"
	"time"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/tables"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	tbl, err := tables.Load("")
	if err != nil {
		t.Fatalf("load default tables: %v", err)
	}
	return New(tbl)
}

func TestScoreV1(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name       string
		text       string
		wantScore  int
		wantIntent domain.IntentSignal
		wantCTA    string
	}{
		{
			name:       "no signal stays neutral",
			text:       "hello po",
			wantScore:  50,
			wantIntent: domain.IntentInfoOnly,
			wantCTA:    "soft_intro",
		},
		{
			name:       "price question wins intent",
			text:       "magkano po ito",
			wantScore:  50,
			wantIntent: domain.IntentPriceCheck,
			wantCTA:    "show_price",
		},
		{
			name:       "opportunity language reads interest",
			text:       "interested ako, gusto ko ng extra income",
			wantScore:  80,
			wantIntent: domain.IntentInterest,
			wantCTA:    "value_story",
		},
		{
			name:       "pain adds eight per keyword",
			text:       "pagod na ako, sobrang stress",
			wantScore:  66,
			wantIntent: domain.IntentInfoOnly,
			wantCTA:    "soft_intro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ScoreV1(domain.ScoreInput{TextContent: tt.text})
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.IntentSignal != tt.wantIntent {
				t.Errorf("intent = %v, want %v", got.IntentSignal, tt.wantIntent)
			}
			if got.RecommendedCTA != tt.wantCTA {
				t.Errorf("cta = %q, want %q", got.RecommendedCTA, tt.wantCTA)
			}
			if got.Version != 1 {
				t.Errorf("version = %d, want 1", got.Version)
			}
		})
	}
}

func TestScoreV1FallsBackToMessages(t *testing.T) {
	e := testEngine(t)

	input := domain.ScoreInput{
		LastMessages: []domain.Message{
			{Sender: "owner", Text: "magkano interested invest", Timestamp: time.Now()},
			{Sender: "user", Text: "gusto ko ng extra income", Timestamp: time.Now()},
		},
	}
	got := e.ScoreV1(input)

	// Only the prospect's own messages count; the owner's text must not
	// leak keyword hits into the score.
	if got.IntentSignal != domain.IntentInterest {
		t.Errorf("intent = %v, want interest from the prospect's message", got.IntentSignal)
	}
	if got.Score != 70 {
		t.Errorf("score = %d, want 70 (two opportunity hits)", got.Score)
	}
}

func TestScoreV1ScoreIsClamped(t *testing.T) {
	e := testEngine(t)

	// Every opportunity keyword at once pushes the raw sum past 100.
	text := "interested gusto ko paano sumali sign up how to join try ko open ako extra income sideline raket business invest"
	got := e.ScoreV1(domain.ScoreInput{TextContent: text})
	if got.Score != 100 {
		t.Errorf("score = %d, want clamp at 100", got.Score)
	}
	if got.LeadTemperature != domain.TemperatureHot {
		t.Errorf("temperature = %v, want hot", got.LeadTemperature)
	}
}

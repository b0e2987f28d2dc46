package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/engine"
	"scoutscore_backend/internal/scoring/ports"
	"scoutscore_backend/internal/scoring/socialgraph"
	"scoutscore_backend/internal/scoring/tables"
	"scoutscore_backend/platform/apperr"
	"scoutscore_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	snap         engine.Snapshot
	snapErr      error
	events       []domain.TimelineEvent
	eventsErr    error
	graph        socialgraph.Graph
	graphErr     error
	saved        []ports.ScoreRecord
	saveErr      error
	history      []ports.ScoreRecord
	historyErr   error
	savedWeights []tables.FeatureWeights
}

var _ ports.Store = (*fakeStore)(nil)

func (f *fakeStore) Snapshot(ctx context.Context, prospectID, userID uuid.UUID) (engine.Snapshot, error) {
	if f.snapErr != nil {
		return engine.Snapshot{}, f.snapErr
	}
	return f.snap, nil
}

func (f *fakeStore) TimelineEvents(ctx context.Context, prospectID uuid.UUID) ([]domain.TimelineEvent, error) {
	return f.events, f.eventsErr
}

func (f *fakeStore) Graph(ctx context.Context, userID uuid.UUID) (socialgraph.Graph, error) {
	return f.graph, f.graphErr
}

func (f *fakeStore) SaveScore(ctx context.Context, rec ports.ScoreRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeStore) ScoreHistory(ctx context.Context, prospectID, userID uuid.UUID, limit int) ([]ports.ScoreRecord, error) {
	return f.history, f.historyErr
}

func (f *fakeStore) SaveFeatureWeights(ctx context.Context, userID uuid.UUID, weights tables.FeatureWeights) error {
	f.savedWeights = append(f.savedWeights, weights)
	return nil
}

var scoreNow = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

func newTestOrchestrator(t *testing.T, store ports.Store) *Orchestrator {
	t.Helper()
	tbl, err := tables.Load("")
	if err != nil {
		t.Fatalf("load tables: %v", err)
	}
	return NewOrchestrator(logger.New("test"), store, engine.New(tbl), nil)
}

func TestScoreRejectsUnknownVersion(t *testing.T) {
	o := newTestOrchestrator(t, &fakeStore{})

	_, err := o.Score(context.Background(), ScoreRequest{Version: 9})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("error kind = %v, want validation", err)
	}
}

func TestScoreMissingProspectDegradesToNeutral(t *testing.T) {
	o := newTestOrchestrator(t, &fakeStore{snapErr: apperr.NotFound("prospect not found")})

	final, err := o.Score(context.Background(), ScoreRequest{
		Version: engine.V1,
		Input:   domain.ScoreInput{ProspectID: uuid.New(), UserID: uuid.New(), Now: scoreNow},
	})
	if err != nil {
		t.Fatalf("a missing prospect must not fail the request: %v", err)
	}
	if final.Success {
		t.Error("neutral result must report success=false")
	}
	if final.FinalScore != 50 || final.FinalLeadTemperature != domain.TemperatureWarm {
		t.Errorf("got %d/%v, want the neutral 50/warm", final.FinalScore, final.FinalLeadTemperature)
	}
	if len(final.FinalInsights) == 0 {
		t.Error("neutral result should carry the reason")
	}
}

func TestScoreUsesStoredInputWhenRequestIsBare(t *testing.T) {
	store := &fakeStore{snap: engine.Snapshot{
		Input: domain.ScoreInput{
			Industry:    domain.IndustryMLM,
			TextContent: "interested ako, gusto ko sana, paano sumali?",
		},
	}}
	o := newTestOrchestrator(t, store)

	final, err := o.Score(context.Background(), ScoreRequest{
		Version: engine.V1,
		Input:   domain.ScoreInput{ProspectID: uuid.New(), UserID: uuid.New(), Now: scoreNow},
	})
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	// Three opportunity hits over the stored profile text.
	if final.Base.Score != 80 {
		t.Errorf("base score = %d, want 80 from the stored text", final.Base.Score)
	}
	if final.FinalLeadTemperature != domain.TemperatureHot {
		t.Errorf("temperature = %v, want hot", final.FinalLeadTemperature)
	}
}

func TestScoreRequestFieldsWinOverStored(t *testing.T) {
	store := &fakeStore{snap: engine.Snapshot{
		Input: domain.ScoreInput{TextContent: "interested ako, gusto ko sana, paano sumali?"},
	}}
	o := newTestOrchestrator(t, store)

	final, err := o.Score(context.Background(), ScoreRequest{
		Version: engine.V1,
		Input: domain.ScoreInput{
			ProspectID:  uuid.New(),
			UserID:      uuid.New(),
			TextContent: "magkano po ito?",
			Now:         scoreNow,
		},
	})
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if final.FinalIntentSignal != domain.IntentPriceCheck {
		t.Errorf("intent = %v, want the live price question to win", final.FinalIntentSignal)
	}
}

func TestScoreSkipsIndustryOverlaysWithoutIndustry(t *testing.T) {
	store := &fakeStore{snap: engine.Snapshot{
		Input: domain.ScoreInput{TextContent: "interested ako"},
	}}
	o := newTestOrchestrator(t, store)

	final, err := o.Score(context.Background(), ScoreRequest{
		Version:          engine.V1,
		EnablePersonaFit: true,
		EnableCTAFit:     true,
		EnableEmotional:  true,
		Debug:            true,
		Input:            domain.ScoreInput{ProspectID: uuid.New(), UserID: uuid.New(), Now: scoreNow},
	})
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if final.PersonaFit != nil || final.CTAFit != nil {
		t.Error("industry overlays must skip without an industry")
	}
	if final.Emotional == nil {
		t.Error("the emotional overlay does not need an industry")
	}

	skipped := map[string]bool{}
	for _, s := range final.Debug.Skips {
		skipped[s.Overlay] = true
	}
	if !skipped["v6"] || !skipped["v7"] {
		t.Errorf("skips = %v, want v6 and v7 recorded", final.Debug.Skips)
	}
}

func TestScoreTimelineFailureDegrades(t *testing.T) {
	store := &fakeStore{
		snap: engine.Snapshot{
			Input: domain.ScoreInput{Industry: domain.IndustryMLM},
			Stats: engine.Stats{EngagementEvents: 4, ReplyRate: 0.5},
		},
		eventsErr: errors.New("timeline table unavailable"),
	}
	o := newTestOrchestrator(t, store)

	final, err := o.Score(context.Background(), ScoreRequest{
		Version: engine.V4,
		Debug:   true,
		Input:   domain.ScoreInput{ProspectID: uuid.New(), UserID: uuid.New(), Now: scoreNow},
	})
	if err != nil {
		t.Fatalf("an analyzer failure must not fail the request: %v", err)
	}
	if !final.Success {
		t.Error("score should still compute from the stored aggregates")
	}

	found := false
	for _, s := range final.Debug.Skips {
		if s.Overlay == "timeline" {
			found = true
		}
	}
	if !found {
		t.Errorf("skips = %v, want the timeline failure recorded", final.Debug.Skips)
	}
}

func TestScoreRecordsEveryAnalyzerFailure(t *testing.T) {
	store := &fakeStore{
		snap: engine.Snapshot{
			Input: domain.ScoreInput{Industry: domain.IndustryMLM},
			Stats: engine.Stats{EngagementEvents: 4, ReplyRate: 0.5},
		},
		eventsErr: errors.New("timeline table unavailable"),
		graphErr:  errors.New("graph table unavailable"),
	}
	o := newTestOrchestrator(t, store)

	final, err := o.Score(context.Background(), ScoreRequest{
		Version: engine.V4,
		Debug:   true,
		Input:   domain.ScoreInput{ProspectID: uuid.New(), UserID: uuid.New(), Now: scoreNow},
	})
	if err != nil {
		t.Fatalf("analyzer failures must not fail the request: %v", err)
	}
	if !final.Success {
		t.Error("score should still compute from the stored aggregates")
	}

	skipped := map[string]bool{}
	for _, s := range final.Debug.Skips {
		skipped[s.Overlay] = true
	}
	if !skipped["timeline"] || !skipped["socialgraph"] {
		t.Errorf("skips = %v, want both fetch failures recorded", final.Debug.Skips)
	}
}

func TestScoreReadsGraphSignalsByProspectName(t *testing.T) {
	store := &fakeStore{
		snap: engine.Snapshot{
			ProspectName: "Maria Santos",
			Input:        domain.ScoreInput{Industry: domain.IndustryMLM},
			Stats:        engine.Stats{EngagementEvents: 4, ReplyRate: 0.5},
		},
		graph: socialgraph.Graph{
			Nodes: map[string]*socialgraph.Node{
				"maria santos": {ID: "maria santos", Name: "Maria Santos", InteractionCount: 6},
				"ben reyes":    {ID: "ben reyes", Name: "Ben Reyes", InteractionCount: 2},
				"liza cruz":    {ID: "liza cruz", Name: "Liza Cruz", InteractionCount: 2},
			},
			Edges: []socialgraph.Edge{
				{From: "maria santos", To: "ben reyes", Weight: 3, Type: "message"},
				{From: "maria santos", To: "liza cruz", Weight: 3, Type: "message"},
			},
		},
	}
	o := newTestOrchestrator(t, store)

	final, err := o.Score(context.Background(), ScoreRequest{
		Version: engine.V4,
		Input:   domain.ScoreInput{ProspectID: uuid.New(), UserID: uuid.New(), Now: scoreNow},
	})
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	// Maria holds both edges, so her degree centrality is 1.0 and the
	// momentum model's socialGraph dimension must light up.
	if final.Base.Breakdown["socialGraph"] <= 0 {
		t.Errorf("socialGraph dimension = %v, want the central node's signal", final.Base.Breakdown["socialGraph"])
	}
}

func TestScoreGraphIgnoresUnknownName(t *testing.T) {
	store := &fakeStore{
		snap: engine.Snapshot{
			ProspectName: "Nobody Known",
			Input:        domain.ScoreInput{Industry: domain.IndustryMLM},
			Stats:        engine.Stats{EngagementEvents: 4, ReplyRate: 0.5},
		},
		graph: socialgraph.Graph{
			Nodes: map[string]*socialgraph.Node{
				"maria santos": {ID: "maria santos", Name: "Maria Santos", InteractionCount: 6},
				"ben reyes":    {ID: "ben reyes", Name: "Ben Reyes", InteractionCount: 2},
			},
			Edges: []socialgraph.Edge{
				{From: "maria santos", To: "ben reyes", Weight: 3, Type: "message"},
			},
		},
	}
	o := newTestOrchestrator(t, store)

	final, err := o.Score(context.Background(), ScoreRequest{
		Version: engine.V4,
		Input:   domain.ScoreInput{ProspectID: uuid.New(), UserID: uuid.New(), Now: scoreNow},
	})
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if final.Base.Breakdown["socialGraph"] != 0 {
		t.Errorf("socialGraph dimension = %v, want 0 for a prospect outside the graph", final.Base.Breakdown["socialGraph"])
	}
}

func TestScoreCompositeRunsEndToEnd(t *testing.T) {
	store := &fakeStore{
		snap: engine.Snapshot{
			Input: domain.ScoreInput{Industry: domain.IndustryMLM},
			Stats: engine.Stats{EngagementEvents: 5, ReplyRate: 0.6},
		},
		events: []domain.TimelineEvent{
			{Timestamp: scoreNow.AddDate(0, 0, -1), Type: "message", OpportunitySignal: true},
			{Timestamp: scoreNow.AddDate(0, 0, -2), Type: "message"},
			{Timestamp: scoreNow.AddDate(0, 0, -3), Type: "message"},
		},
	}
	o := newTestOrchestrator(t, store)

	final, err := o.Score(context.Background(), ScoreRequest{
		Version: engine.V5,
		Input:   domain.ScoreInput{ProspectID: uuid.New(), UserID: uuid.New(), Now: scoreNow},
	})
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if !final.Success {
		t.Error("composite pass should succeed")
	}
	if final.Base.Version != 5 {
		t.Errorf("base version = %d, want 5", final.Base.Version)
	}
	if final.FinalScore < 0 || final.FinalScore > 100 {
		t.Errorf("final score = %d out of range", final.FinalScore)
	}
}

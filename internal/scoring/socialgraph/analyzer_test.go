package socialgraph

import (
	"testing"

	"scoutscore_backend/internal/scoring/domain"
)

// starGraph builds hub-and-spoke: maria talks to three connections,
// nobody else talks to anyone.
func starGraph(t *testing.T) Graph {
	t.Helper()
	return Build(Graph{}, []domain.GraphCapture{
		capture("Maria", "Ana", "conn-1", 1, 0),
		capture("Maria", "Ben", "conn-2", 1, 0),
		capture("Maria", "Carla", "conn-3", 1, 0),
	}, buildNow)
}

func TestAnalyzeCentrality(t *testing.T) {
	a := Analyze(starGraph(t))

	hub := a.Graph.Nodes["maria"]
	if hub.CentralityScore != 1.0 {
		t.Errorf("hub centrality = %v, want 1.0", hub.CentralityScore)
	}
	for _, id := range []string{"conn-1", "conn-2", "conn-3"} {
		if got := a.Graph.Nodes[id].CentralityScore; got >= 1.0 {
			t.Errorf("spoke %s centrality = %v, want below the hub", id, got)
		}
	}
	if a.MaxCentrality != 1.0 {
		t.Errorf("maxCentrality = %v, want 1.0", a.MaxCentrality)
	}
}

func TestAnalyzeInfluenceRanksHubFirst(t *testing.T) {
	a := Analyze(starGraph(t))

	if len(a.TopInfluencers) == 0 {
		t.Fatal("expected influencers")
	}
	if a.TopInfluencers[0].ID != "maria" {
		t.Errorf("top influencer = %s, want the hub", a.TopInfluencers[0].ID)
	}
	if a.TopInfluencers[0].InfluenceScore != 1.0 {
		t.Errorf("top influence = %v, want normalized 1.0", a.TopInfluencers[0].InfluenceScore)
	}
}

func TestAnalyzeCommunities(t *testing.T) {
	captures := []domain.GraphCapture{
		capture("Maria", "Ana", "conn-1", 1, 0),
		capture("Pedro", "Luis", "conn-9", 1, 0),
	}
	captures[1].OpportunitySignal = true
	a := Analyze(Build(Graph{}, captures, buildNow))

	if len(a.OpportunityClusters) != 2 {
		t.Fatalf("clusters = %d, want 2 disconnected components", len(a.OpportunityClusters))
	}
	// Clusters rank by opportunity signal count.
	if a.OpportunityClusters[0].OpportunitySignals != 1 {
		t.Errorf("first cluster signals = %d, want the opportunity-bearing one first",
			a.OpportunityClusters[0].OpportunitySignals)
	}
	for _, n := range a.Graph.Nodes {
		if n.ClusterID < 0 {
			t.Errorf("node %s left unassigned", n.ID)
		}
	}
}

func TestAnalyzeWeakConnections(t *testing.T) {
	captures := []domain.GraphCapture{
		capture("Maria", "Ana", "conn-1", 1, 0),   // fresh, single touch
		capture("Maria", "Ben", "conn-2", 5, 0),   // fresh but established
		capture("Maria", "Carla", "conn-3", 1, 50), // single touch but stale
	}
	a := Analyze(Build(Graph{}, captures, buildNow))

	if len(a.WeakConnections) != 1 {
		t.Fatalf("weak connections = %d, want 1", len(a.WeakConnections))
	}
	if a.WeakConnections[0].To != "conn-1" {
		t.Errorf("weak connection = %s, want the fresh single-touch edge", a.WeakConnections[0].To)
	}
}

func TestAnalyzeEmptyGraph(t *testing.T) {
	a := Analyze(Graph{Nodes: map[string]*Node{}})
	if a.MaxCentrality != 0 || len(a.TopInfluencers) != 0 {
		t.Error("empty graph should produce an empty analysis")
	}
}

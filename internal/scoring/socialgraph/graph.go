// Package socialgraph builds an undirected weighted multigraph of
// people from capture data and derives centrality, influence, and
// community structure from it.
//
// Build is a pure function over (existing graph, new captures): callers
// own the graph value and no state survives between calls, so
// concurrent analyses for different users cannot bleed into each other.
package socialgraph

import (
	"sort"
	"strings"
	"time"

	"scoutscore_backend/internal/scoring/domain"
)

// Node is a person in the graph.
type Node struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	InteractionCount   int     `json:"interactionCount"`
	OpportunitySignals int     `json:"opportunitySignals"`
	CentralityScore    float64 `json:"centralityScore"`
	InfluenceScore     float64 `json:"influenceScore"`
	ClusterID          int     `json:"clusterId"`
}

// Edge is one interaction channel between two people. Multiple edges
// between the same pair are allowed (multigraph); weight counts
// interactions on that channel.
type Edge struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	Weight       int     `json:"weight"`
	Type         string  `json:"type"`
	RecencyScore float64 `json:"recencyScore"` // 0-1, 1 = captured today
}

// Graph is a value type; Build returns a new graph rather than
// mutating its input.
type Graph struct {
	Nodes map[string]*Node `json:"nodes"`
	Edges []Edge           `json:"edges"`
}

// edgeRecencyWindowDays controls the linear decay of edge recency.
const edgeRecencyWindowDays = 60.0

// Build merges new captures into a copy of the existing graph.
// Node identity is the supplied connection ID when present, otherwise
// the normalized person name; duplicate named nodes merge with their
// interaction counts summed. Connections are never invented: every
// edge corresponds to a capture the caller supplied.
func Build(existing Graph, captures []domain.GraphCapture, now time.Time) Graph {
	g := Graph{Nodes: make(map[string]*Node, len(existing.Nodes))}
	for id, n := range existing.Nodes {
		clone := *n
		g.Nodes[id] = &clone
	}
	g.Edges = append(g.Edges, existing.Edges...)

	for _, cap := range captures {
		from := g.ensureNode("", cap.PersonName)
		to := g.ensureNode(cap.ConnectionID, cap.ConnectionName)
		if from == nil || to == nil || from.ID == to.ID {
			continue
		}

		count := cap.InteractionCount
		if count < 1 {
			count = 1
		}
		from.InteractionCount += count
		to.InteractionCount += count
		if cap.OpportunitySignal {
			to.OpportunitySignals++
		}

		g.Edges = append(g.Edges, Edge{
			From:         from.ID,
			To:           to.ID,
			Weight:       count,
			Type:         cap.InteractionType,
			RecencyScore: recency(cap.CapturedAt, now),
		})
	}

	return g
}

func (g *Graph) ensureNode(id, name string) *Node {
	key := id
	if key == "" {
		key = NormalizeName(name)
	}
	if key == "" {
		return nil
	}
	if n, ok := g.Nodes[key]; ok {
		return n
	}
	// Merge duplicate names captured without an ID onto the named node.
	norm := NormalizeName(name)
	if norm != "" && norm != key {
		if n, ok := g.Nodes[norm]; ok {
			return n
		}
	}
	n := &Node{ID: key, Name: strings.TrimSpace(name), ClusterID: -1}
	g.Nodes[key] = n
	return n
}

// NormalizeName is the node identity key for people captured without a
// connection ID: lowercased, inner whitespace collapsed. Callers use it
// to look a known person up in a built graph.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func recency(capturedAt, now time.Time) float64 {
	if capturedAt.IsZero() {
		return 0
	}
	ageDays := now.Sub(capturedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	score := 1 - ageDays/edgeRecencyWindowDays
	if score < 0 {
		return 0
	}
	return score
}

// adjacency returns neighbor sets and per-node degree (edge endpoint
// counts, multigraph-aware).
func (g *Graph) adjacency() (map[string][]string, map[string]int) {
	neighbors := make(map[string][]string, len(g.Nodes))
	degree := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.From]; !ok {
			continue
		}
		if _, ok := g.Nodes[e.To]; !ok {
			continue
		}
		neighbors[e.From] = append(neighbors[e.From], e.To)
		neighbors[e.To] = append(neighbors[e.To], e.From)
		degree[e.From]++
		degree[e.To]++
	}
	return neighbors, degree
}

// sortedNodeIDs gives deterministic iteration order.
func (g *Graph) sortedNodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

package socialgraph

import "sort"

const (
	influenceIterations = 10
	dampingFactor       = 0.85
	topInfluencerCount  = 10
	weakEdgeRecencyMin  = 0.7
)

// Cluster is one connected component with its aggregated opportunity
// signal count.
type Cluster struct {
	ID                 int      `json:"id"`
	Members            []string `json:"members"`
	OpportunitySignals int      `json:"opportunitySignals"`
}

// Analysis holds the derived graph properties. Node centrality,
// influence, and cluster assignments are written back onto the graph's
// nodes as a side product.
type Analysis struct {
	Graph               Graph     `json:"graph"`
	TopInfluencers      []*Node   `json:"topInfluencers"`
	WeakConnections     []Edge    `json:"weakConnections"`
	OpportunityClusters []Cluster `json:"opportunityClusters"`
	MaxCentrality       float64   `json:"maxCentrality"`
}

// Analyze computes centrality, influence, and communities on g and
// derives the outreach-facing views. The input graph is annotated in
// place and returned inside the analysis.
func Analyze(g Graph) Analysis {
	neighbors, degree := g.adjacency()

	computeCentrality(g, degree)
	computeInfluence(g, neighbors)
	clusters := detectCommunities(g, neighbors)

	a := Analysis{
		Graph:               g,
		TopInfluencers:      topInfluencers(g),
		WeakConnections:     weakConnections(g),
		OpportunityClusters: clusters,
	}
	for _, n := range g.Nodes {
		if n.CentralityScore > a.MaxCentrality {
			a.MaxCentrality = n.CentralityScore
		}
	}
	return a
}

// computeCentrality assigns normalized degree centrality: node degree
// divided by the maximum degree in the graph.
func computeCentrality(g Graph, degree map[string]int) {
	maxDegree := 0
	for _, d := range degree {
		if d > maxDegree {
			maxDegree = d
		}
	}
	for id, n := range g.Nodes {
		if maxDegree == 0 {
			n.CentralityScore = 0
			continue
		}
		n.CentralityScore = float64(degree[id]) / float64(maxDegree)
	}
}

// computeInfluence runs a PageRank-style propagation: every node starts
// at 1.0, and for a fixed 10 iterations each node receives
// (1-d) + d * sum(score(neighbor)/degree(neighbor)). Scores are then
// normalized to [0,1] by dividing by the maximum.
func computeInfluence(g Graph, neighbors map[string][]string) {
	scores := make(map[string]float64, len(g.Nodes))
	for id := range g.Nodes {
		scores[id] = 1.0
	}

	ids := g.sortedNodeIDs()
	for iter := 0; iter < influenceIterations; iter++ {
		next := make(map[string]float64, len(scores))
		for _, id := range ids {
			sum := 0.0
			for _, nb := range neighbors[id] {
				outDegree := len(neighbors[nb])
				if outDegree == 0 {
					continue
				}
				sum += scores[nb] / float64(outDegree)
			}
			next[id] = (1 - dampingFactor) + dampingFactor*sum
		}
		scores = next
	}

	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	for id, n := range g.Nodes {
		if maxScore == 0 {
			n.InfluenceScore = 0
			continue
		}
		n.InfluenceScore = scores[id] / maxScore
	}
}

// detectCommunities labels connected components via breadth-first
// traversal; each component becomes a cluster.
func detectCommunities(g Graph, neighbors map[string][]string) []Cluster {
	visited := make(map[string]bool, len(g.Nodes))
	var clusters []Cluster

	for _, start := range g.sortedNodeIDs() {
		if visited[start] {
			continue
		}
		id := len(clusters)
		cluster := Cluster{ID: id}

		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			node := g.Nodes[current]
			node.ClusterID = id
			cluster.Members = append(cluster.Members, current)
			cluster.OpportunitySignals += node.OpportunitySignals

			for _, nb := range neighbors[current] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		clusters = append(clusters, cluster)
	}

	// Rank clusters by opportunity signal count for the outreach view.
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].OpportunitySignals > clusters[j].OpportunitySignals
	})
	return clusters
}

func topInfluencers(g Graph) []*Node {
	nodes := make([]*Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].InfluenceScore != nodes[j].InfluenceScore {
			return nodes[i].InfluenceScore > nodes[j].InfluenceScore
		}
		return nodes[i].ID < nodes[j].ID
	})
	if len(nodes) > topInfluencerCount {
		nodes = nodes[:topInfluencerCount]
	}
	return nodes
}

// weakConnections are single-interaction edges with high recency:
// fresh but shallow relationships worth a follow-up.
func weakConnections(g Graph) []Edge {
	var weak []Edge
	for _, e := range g.Edges {
		if e.Weight == 1 && e.RecencyScore >= weakEdgeRecencyMin {
			weak = append(weak, e)
		}
	}
	return weak
}

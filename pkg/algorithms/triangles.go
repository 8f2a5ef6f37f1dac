package algorithms

import "github.com/dd0wney/cluso-graphreport/pkg/graph"

// TriangleCountResult holds triangle counting results including per-node counts,
// global count, clustering coefficients, and top nodes by triangle participation.
type TriangleCountResult struct {
	PerNode                map[uint64]int
	GlobalCount            int
	ClusteringCoefficients map[uint64]float64
	AverageClustering      float64
	TopNodes               []RankedNode
}

// CountTriangles counts triangles in the graph, treating all edges as undirected.
// For each node u, it iterates over pairs (v,w) in u's neighbor set; if v and w
// are also neighbors, that's a triangle. Each triangle is counted once per
// participating node, so GlobalCount = sum(PerNode) / 3.
// Clustering coefficients are computed in the same pass; AverageClustering
// averages over all nodes, counting nodes of degree < 2 as 0.
func CountTriangles(g *graph.Graph, topK int) (*TriangleCountResult, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	nodeIDs := g.NodeIDs()

	// Build undirected neighbor sets for all nodes; Neighbors excludes
	// self-loops and collapses parallel edges
	neighborSets := make(map[uint64]map[uint64]bool, len(nodeIDs))
	neighborLists := make(map[uint64][]uint64, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		neighbors, _ := g.Neighbors(nodeID)
		set := make(map[uint64]bool, len(neighbors))
		for _, v := range neighbors {
			set[v] = true
		}
		neighborSets[nodeID] = set
		neighborLists[nodeID] = neighbors
	}

	perNode := make(map[uint64]int, len(nodeIDs))
	for _, u := range nodeIDs {
		neighbors := neighborLists[u]
		count := 0
		for i := 0; i < len(neighbors); i++ {
			v := neighbors[i]
			for j := i + 1; j < len(neighbors); j++ {
				if neighborSets[v][neighbors[j]] {
					count++
				}
			}
		}
		perNode[u] = count
	}

	// GlobalCount: each triangle counted 3 times (once per vertex)
	total := 0
	for _, c := range perNode {
		total += c
	}

	coefficients := make(map[uint64]float64, len(nodeIDs))
	sum := 0.0
	for _, u := range nodeIDs {
		k := len(neighborLists[u])
		if k < 2 {
			coefficients[u] = 0.0
			continue
		}
		possible := k * (k - 1) / 2
		coefficients[u] = float64(perNode[u]) / float64(possible)
		sum += coefficients[u]
	}

	avg := 0.0
	if len(nodeIDs) > 0 {
		avg = sum / float64(len(nodeIDs))
	}

	floatScores := make(map[uint64]float64, len(perNode))
	for id, c := range perNode {
		floatScores[id] = float64(c)
	}

	return &TriangleCountResult{
		PerNode:                perNode,
		GlobalCount:            total / 3,
		ClusteringCoefficients: coefficients,
		AverageClustering:      avg,
		TopNodes:               TopNodes(g, floatScores, topK),
	}, nil
}

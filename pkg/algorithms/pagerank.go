package algorithms

import (
	"math"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// PageRankOptions configures PageRank algorithm
type PageRankOptions struct {
	DampingFactor float64 // Usually 0.85
	MaxIterations int
	Tolerance     float64 // Convergence threshold
	TopK          int     // Size of TopNodes
}

// DefaultPageRankOptions returns default PageRank configuration
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		DampingFactor: 0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
		TopK:          10,
	}
}

// PageRankResult contains PageRank scores for all nodes
type PageRankResult struct {
	Scores     map[uint64]float64 // Node ID -> PageRank score
	Iterations int                // Number of iterations performed
	Converged  bool               // Whether algorithm converged
	TopNodes   []RankedNode       // Top N nodes by score
}

// PageRank computes PageRank scores for all nodes in the graph. Rank held by
// dangling nodes (no outgoing edges) is spread uniformly so scores keep
// summing to 1. Undirected edges count in both directions.
func PageRank(g *graph.Graph, opts PageRankOptions) (*PageRankResult, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	nodeIDs := g.NodeIDs()
	if len(nodeIDs) == 0 {
		return &PageRankResult{
			Scores:    make(map[uint64]float64),
			Converged: true,
		}, nil
	}

	n := float64(len(nodeIDs))
	size := g.MaxNodeID() + 1
	scores := make([]float64, size)
	newScores := make([]float64, size)
	outDegree := make([]int, size)
	for _, nodeID := range nodeIDs {
		scores[nodeID] = 1.0 / n
		succ, _ := g.Successors(nodeID)
		outDegree[nodeID] = len(succ)
	}

	converged := false
	iterations := 0

	for iterations < opts.MaxIterations {
		iterations++

		dangling := 0.0
		for _, nodeID := range nodeIDs {
			if outDegree[nodeID] == 0 {
				dangling += scores[nodeID]
			}
		}
		base := (1.0-opts.DampingFactor)/n + opts.DampingFactor*dangling/n

		for _, nodeID := range nodeIDs {
			newScore := base
			preds, _ := g.Predecessors(nodeID)
			for _, from := range preds {
				if outCount := outDegree[from]; outCount > 0 {
					newScore += opts.DampingFactor * (scores[from] / float64(outCount))
				}
			}
			newScores[nodeID] = newScore
		}

		maxDiff := 0.0
		for _, nodeID := range nodeIDs {
			maxDiff = math.Max(maxDiff, math.Abs(newScores[nodeID]-scores[nodeID]))
		}

		scores, newScores = newScores, scores
		if maxDiff < opts.Tolerance {
			converged = true
			break
		}
	}

	result := make(map[uint64]float64, len(nodeIDs))
	sum := 0.0
	for _, nodeID := range nodeIDs {
		sum += scores[nodeID]
	}
	for _, nodeID := range nodeIDs {
		result[nodeID] = scores[nodeID] / sum
	}

	return &PageRankResult{
		Scores:     result,
		Iterations: iterations,
		Converged:  converged,
		TopNodes:   TopNodes(g, result, opts.TopK),
	}, nil
}

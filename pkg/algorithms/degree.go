package algorithms

import (
	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// DegreeStats summarises the degree distribution of a graph
type DegreeStats struct {
	Min       int         `json:"min"`
	Max       int         `json:"max"`
	Mean      float64     `json:"mean"`
	Histogram map[int]int `json:"histogram"` // degree -> number of nodes
	Degrees   []int       `json:"-"`         // per node, in enumeration order
}

// DegreeDistribution computes the total degree (in + out) of every node
func DegreeDistribution(g *graph.Graph) (*DegreeStats, error) {
	return distribution(g, g.Degree)
}

// InDegreeDistribution computes the in-degree of every node
func InDegreeDistribution(g *graph.Graph) (*DegreeStats, error) {
	return distribution(g, g.InDegree)
}

// OutDegreeDistribution computes the out-degree of every node
func OutDegreeDistribution(g *graph.Graph) (*DegreeStats, error) {
	return distribution(g, g.OutDegree)
}

func distribution(g *graph.Graph, degreeOf func(uint64) int) (*DegreeStats, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	stats := &DegreeStats{
		Histogram: make(map[int]int),
		Degrees:   make([]int, 0, g.NodeCount()),
	}
	if g.NodeCount() == 0 {
		return stats, nil
	}

	total := 0
	for i, nodeID := range g.NodeIDs() {
		d := degreeOf(nodeID)
		stats.Degrees = append(stats.Degrees, d)
		stats.Histogram[d]++
		total += d
		if i == 0 || d < stats.Min {
			stats.Min = d
		}
		if d > stats.Max {
			stats.Max = d
		}
	}
	stats.Mean = float64(total) / float64(g.NodeCount())
	return stats, nil
}

// AverageInDegree returns the mean in-degree, which for any graph equals
// EdgeCount / NodeCount
func AverageInDegree(g *graph.Graph) (float64, error) {
	stats, err := InDegreeDistribution(g)
	if err != nil {
		return 0, err
	}
	return stats.Mean, nil
}

// AverageOutDegree returns the mean out-degree
func AverageOutDegree(g *graph.Graph) (float64, error) {
	stats, err := OutDegreeDistribution(g)
	if err != nil {
		return 0, err
	}
	return stats.Mean, nil
}

// Density returns m / (n(n-1)) for directed graphs and 2m / (n(n-1)) for
// undirected ones. Graphs with fewer than two nodes have density 0.
func Density(g *graph.Graph) (float64, error) {
	if err := validateGraph(g); err != nil {
		return 0, err
	}

	n := float64(g.NodeCount())
	m := float64(g.EdgeCount())
	if n < 2 {
		return 0, nil
	}
	d := m / (n * (n - 1))
	if !g.Directed() {
		d *= 2
	}
	return d, nil
}

// DegreeCentrality returns each node's total degree divided by n-1
func DegreeCentrality(g *graph.Graph) (map[uint64]float64, error) {
	return centralityFrom(g, g.Degree)
}

// InDegreeCentrality returns each node's in-degree divided by n-1
func InDegreeCentrality(g *graph.Graph) (map[uint64]float64, error) {
	return centralityFrom(g, g.InDegree)
}

// OutDegreeCentrality returns each node's out-degree divided by n-1
func OutDegreeCentrality(g *graph.Graph) (map[uint64]float64, error) {
	return centralityFrom(g, g.OutDegree)
}

func centralityFrom(g *graph.Graph, degreeOf func(uint64) int) (map[uint64]float64, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	nodeIDs := g.NodeIDs()
	scores := make(map[uint64]float64, len(nodeIDs))
	if len(nodeIDs) <= 1 {
		// A lone node is trivially maximally central
		for _, id := range nodeIDs {
			scores[id] = 1.0
		}
		return scores, nil
	}

	scale := 1.0 / float64(len(nodeIDs)-1)
	for _, id := range nodeIDs {
		scores[id] = float64(degreeOf(id)) * scale
	}
	return scores, nil
}

// DegreeScores returns raw degrees as float scores, for use with TopNodes
func DegreeScores(g *graph.Graph, degreeOf func(uint64) int) map[uint64]float64 {
	nodeIDs := g.NodeIDs()
	scores := make(map[uint64]float64, len(nodeIDs))
	for _, id := range nodeIDs {
		scores[id] = float64(degreeOf(id))
	}
	return scores
}

package algorithms

import (
	"errors"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

var (
	// ErrNilGraph is returned when an algorithm is handed a nil graph
	ErrNilGraph = errors.New("graph is nil")
	// ErrNotConnected is returned by path-length measures when some ordered
	// pair of nodes has no path between them
	ErrNotConnected = errors.New("graph is not connected")
	// ErrEmptyGraph is returned by measures that are undefined without nodes
	ErrEmptyGraph = errors.New("graph has no nodes")
	// ErrNotDAG is returned by orderings that need a directed acyclic graph
	ErrNotDAG = errors.New("graph is not a directed acyclic graph")
)

func validateGraph(g *graph.Graph) error {
	if g == nil {
		return ErrNilGraph
	}
	return nil
}

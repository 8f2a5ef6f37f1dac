package visualization

import (
	"github.com/dd0wney/cluso-graphreport/pkg/graph"
	"github.com/dd0wney/cluso-graphreport/pkg/parallel"
)

// SampleSubgraph returns the subgraph induced by the first n nodes in load
// order. Load order follows the dataset file, so for most edge lists the
// sample is a connected-ish region around the first records.
func SampleSubgraph(g *graph.Graph, n int) *graph.Graph {
	ids := g.NodeIDs()
	if n < len(ids) {
		ids = ids[:max(n, 0)]
	}
	return g.Subgraph(ids)
}

// SampleNeighbourhood returns the subgraph induced by up to n nodes nearest to
// the highest-degree node, gathered level by level with a parallel BFS. The
// last level is cut by node ID when it would overflow n.
func SampleNeighbourhood(g *graph.Graph, n, workers int) (*graph.Graph, error) {
	if n <= 0 || g.NodeCount() == 0 {
		return g.Subgraph(nil), nil
	}

	hub := uint64(0)
	best := -1
	for _, id := range g.NodeIDs() {
		if d := g.Degree(id); d > best {
			hub, best = id, d
		}
	}

	traverser, err := parallel.NewParallelTraverser(undirectedView{g}, workers)
	if err != nil {
		return nil, err
	}
	defer traverser.Close()

	ids := []uint64{hub}
	for _, level := range traverser.TraverseBFS([]uint64{hub}, -1) {
		if room := n - len(ids); len(level) > room {
			ids = append(ids, level[:room]...)
			break
		}
		ids = append(ids, level...)
		if len(ids) == n {
			break
		}
	}

	return g.Subgraph(ids), nil
}

// undirectedView walks a graph ignoring edge direction
type undirectedView struct {
	g *graph.Graph
}

func (v undirectedView) Successors(nodeID uint64) ([]uint64, error) {
	return v.g.Neighbors(nodeID)
}

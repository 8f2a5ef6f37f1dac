package algorithms

import (
	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// IsDAG checks if the graph is a Directed Acyclic Graph
// Returns true if the graph contains no cycles
func IsDAG(g *graph.Graph) (bool, error) {
	if err := validateGraph(g); err != nil {
		return false, err
	}
	if !g.Directed() {
		return false, nil
	}
	hasCycle, err := HasCycle(g)
	if err != nil {
		return false, err
	}
	return !hasCycle, nil
}

// TopologicalSort returns nodes in topological order using Kahn's algorithm
// Returns error if graph contains a cycle (not a DAG)
// The ordering ensures that for every directed edge u->v, u comes before v
func TopologicalSort(g *graph.Graph) ([]uint64, error) {
	isDAG, err := IsDAG(g)
	if err != nil {
		return nil, err
	}
	if !isDAG {
		return nil, ErrNotDAG
	}

	nodeIDs := g.NodeIDs()
	inDegree := make([]int, g.MaxNodeID()+1)
	for _, nodeID := range nodeIDs {
		inDegree[nodeID] = g.InDegree(nodeID)
	}

	// Queue of nodes with in-degree 0
	queue := make([]uint64, 0)
	for _, nodeID := range nodeIDs {
		if inDegree[nodeID] == 0 {
			queue = append(queue, nodeID)
		}
	}

	sorted := make([]uint64, 0, len(nodeIDs))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		successors, _ := g.Successors(current)
		for _, next := range successors {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(sorted) != len(nodeIDs) {
		return nil, ErrNotDAG
	}
	return sorted, nil
}

// LongestChain returns the number of edges on the longest directed path of a
// DAG, e.g. the deepest chain of citations. Graphs with a cycle fail with
// ErrNotDAG.
func LongestChain(g *graph.Graph) (int, error) {
	order, err := TopologicalSort(g)
	if err != nil {
		return 0, err
	}

	depth := make([]int, g.MaxNodeID()+1)
	longest := 0
	for _, u := range order {
		next, _ := g.Successors(u)
		for _, v := range next {
			if d := depth[u] + 1; d > depth[v] {
				depth[v] = d
				longest = max(longest, d)
			}
		}
	}
	return longest, nil
}

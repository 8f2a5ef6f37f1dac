package algorithms

import (
	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// Cycle represents a detected cycle as a sequence of node IDs
type Cycle []uint64

const (
	white = iota // Unvisited
	gray         // Currently visiting (on the DFS stack)
	black        // Finished visiting
)

// cycleFrame is one entry of the explicit DFS stack
type cycleFrame struct {
	nodeID  uint64
	viaEdge uint64
	edges   []*graph.Edge
	cursor  int
}

// CycleDetectionOptions configures cycle detection behavior
type CycleDetectionOptions struct {
	MinCycleLength int // Minimum cycle length to report (0 = all)
	MaxCycleLength int // Maximum cycle length to report (0 = unlimited)
	MaxCycles      int // Stop after this many cycles (0 = unlimited)
}

// DetectCycles finds one cycle per back edge using depth-first search with
// three-colour marking:
//   - white: unvisited node
//   - gray: on the current DFS path
//   - black: all descendants explored
//
// Meeting a gray node closes a cycle. For directed graphs edges are followed
// in their direction; for undirected graphs the tree edge back to the parent
// is ignored, so the number of cycles equals E - V + C (the cycle rank).
// This enumerates a cycle basis, not every simple cycle.
func DetectCycles(g *graph.Graph) ([]Cycle, error) {
	return DetectCyclesWithOptions(g, CycleDetectionOptions{})
}

// DetectCyclesWithOptions finds cycles matching the given criteria
func DetectCyclesWithOptions(g *graph.Graph, opts CycleDetectionOptions) ([]Cycle, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	cycles := make([]Cycle, 0)
	walkBackEdges(g, func(from, to uint64, parent []uint64) bool {
		cycle := extractCycle(to, from, parent)
		if opts.MinCycleLength > 0 && len(cycle) < opts.MinCycleLength {
			return true
		}
		if opts.MaxCycleLength > 0 && len(cycle) > opts.MaxCycleLength {
			return true
		}
		cycles = append(cycles, cycle)
		return opts.MaxCycles <= 0 || len(cycles) < opts.MaxCycles
	})
	return cycles, nil
}

// CountCycles returns the number of back edges, i.e. the number of cycles
// DetectCycles would report, without materialising them
func CountCycles(g *graph.Graph) (int, error) {
	if err := validateGraph(g); err != nil {
		return 0, err
	}
	count := 0
	walkBackEdges(g, func(uint64, uint64, []uint64) bool {
		count++
		return true
	})
	return count, nil
}

// HasCycle checks if the graph contains any cycle
func HasCycle(g *graph.Graph) (bool, error) {
	if err := validateGraph(g); err != nil {
		return false, err
	}
	found := false
	walkBackEdges(g, func(uint64, uint64, []uint64) bool {
		found = true
		return false
	})
	return found, nil
}

// walkBackEdges runs an iterative three-colour DFS over the whole graph and
// calls onBackEdge for each edge from -> to that closes a cycle. Returning
// false from the callback stops the walk.
func walkBackEdges(g *graph.Graph, onBackEdge func(from, to uint64, parent []uint64) bool) {
	n := g.MaxNodeID() + 1
	color := make([]uint8, n)
	parent := make([]uint64, n)

	edgesOf := g.IncidentEdges
	if g.Directed() {
		edgesOf = g.GetOutgoingEdges
	}

	for _, root := range g.NodeIDs() {
		if color[root] != white {
			continue
		}

		color[root] = gray
		rootEdges, _ := edgesOf(root)
		stack := []cycleFrame{{nodeID: root, edges: rootEdges}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.cursor >= len(top.edges) {
				color[top.nodeID] = black
				stack = stack[:len(stack)-1]
				continue
			}

			edge := top.edges[top.cursor]
			top.cursor++
			u := top.nodeID
			v := edge.Other(u)

			if !g.Directed() && edge.ID == top.viaEdge {
				continue
			}

			switch color[v] {
			case white:
				parent[v] = u
				color[v] = gray
				vEdges, _ := edgesOf(v)
				stack = append(stack, cycleFrame{nodeID: v, viaEdge: edge.ID, edges: vEdges})
			case gray:
				if !onBackEdge(u, v, parent) {
					return
				}
			}
			// black: forward/cross edge, or an undirected edge already seen
			// from its other end
		}
	}
}

// extractCycle reconstructs the cycle from parent pointers
// Given a back edge from 'end' to 'start', we trace back from 'end' to 'start' using parent pointers
func extractCycle(start, end uint64, parent []uint64) Cycle {
	cycle := make(Cycle, 0)
	cycle = append(cycle, start)

	current := end
	for current != start {
		cycle = append(cycle, current)
		p := parent[current]
		if p == 0 {
			// Safety: shouldn't happen if algorithm is correct
			break
		}
		current = p
	}

	return cycle
}

// CycleStats provides statistics about detected cycles
type CycleStats struct {
	TotalCycles   int     `json:"total_cycles"`
	ShortestCycle int     `json:"shortest_cycle"`
	LongestCycle  int     `json:"longest_cycle"`
	AverageLength float64 `json:"average_length"`
	SelfLoops     int     `json:"self_loops"` // Number of self-referencing nodes
}

// AnalyzeCycles computes statistics about detected cycles
func AnalyzeCycles(cycles []Cycle) CycleStats {
	if len(cycles) == 0 {
		return CycleStats{}
	}

	stats := CycleStats{
		TotalCycles:   len(cycles),
		ShortestCycle: len(cycles[0]),
		LongestCycle:  len(cycles[0]),
	}

	totalLength := 0
	for _, cycle := range cycles {
		length := len(cycle)
		totalLength += length

		if length == 1 {
			stats.SelfLoops++
		}
		if length < stats.ShortestCycle {
			stats.ShortestCycle = length
		}
		if length > stats.LongestCycle {
			stats.LongestCycle = length
		}
	}
	stats.AverageLength = float64(totalLength) / float64(len(cycles))
	return stats
}

package algorithms

import "github.com/dd0wney/cluso-graphreport/pkg/graph"

// Bridge is an edge whose removal increases the number of connected
// components. FromNodeID is the endpoint discovered first (the tree parent).
type Bridge struct {
	EdgeID     uint64 `json:"edge_id"`
	FromNodeID uint64 `json:"from_node_id"`
	ToNodeID   uint64 `json:"to_node_id"`
}

// bridgeFrame is one entry of the explicit DFS stack: the node being
// expanded, the edge it was entered by (0 for a traversal root) and how far
// through its incident edges we have got.
type bridgeFrame struct {
	nodeID  uint64
	viaEdge uint64
	edges   []*graph.Edge
	cursor  int
}

// bridgeState holds the traversal tables for one FindBridges call. Tables
// are indexed by node ID; a discovery time of 0 means "not yet visited".
type bridgeState struct {
	graph   *graph.Graph
	disc    []int
	low     []int
	parent  []uint64
	counter int
	stack   []bridgeFrame
	bridges []Bridge
}

func newBridgeState(g *graph.Graph) *bridgeState {
	n := g.MaxNodeID() + 1
	return &bridgeState{
		graph:   g,
		disc:    make([]int, n),
		low:     make([]int, n),
		parent:  make([]uint64, n),
		bridges: make([]Bridge, 0),
	}
}

// FindBridges returns every bridge of the graph, treating all edges as
// undirected.
//
// Algorithm: Tarjan's bridge-finding DFS with discovery times and low-link
// values, run from every undiscovered node so disconnected graphs are fully
// covered. A tree edge (u, v) is a bridge iff low[v] > disc[u].
//
// The traversal uses an explicit stack instead of recursion, so its depth is
// bounded by memory rather than the goroutine stack. Back edges are detected
// by edge ID rather than by parent node, which makes parallel edges work: a
// second copy of the edge to the parent is a back edge, and neither copy is
// reported. Self-loops are skipped and are never bridges.
//
// Results are in discovery order and deterministic for a given graph.
// Time complexity O(V+E), space O(V).
func FindBridges(g *graph.Graph) ([]Bridge, error) {
	state, err := findBridges(g)
	if err != nil {
		return nil, err
	}
	return state.bridges, nil
}

func findBridges(g *graph.Graph) (*bridgeState, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	state := newBridgeState(g)
	for _, nodeID := range g.NodeIDs() {
		if state.disc[nodeID] == 0 {
			state.traverse(nodeID)
		}
	}
	return state, nil
}

// visit assigns discovery and low-link values and pushes the node's frame
func (s *bridgeState) visit(nodeID, viaEdge uint64) {
	s.counter++
	s.disc[nodeID] = s.counter
	s.low[nodeID] = s.counter

	edges, _ := s.graph.IncidentEdges(nodeID)
	s.stack = append(s.stack, bridgeFrame{
		nodeID:  nodeID,
		viaEdge: viaEdge,
		edges:   edges,
	})
}

func (s *bridgeState) traverse(root uint64) {
	s.visit(root, 0)

	for len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]

		if top.cursor < len(top.edges) {
			edge := top.edges[top.cursor]
			top.cursor++

			u := top.nodeID
			v := edge.Other(u)

			switch {
			case v == u:
				// self-loop
			case edge.ID == top.viaEdge:
				// the tree edge we arrived by
			case s.disc[v] == 0:
				s.parent[v] = u
				s.visit(v, edge.ID)
			default:
				s.low[u] = min(s.low[u], s.disc[v])
			}
			continue
		}

		// All neighbours of the top node are done: pop and fold its
		// low-link into the parent.
		done := *top
		s.stack = s.stack[:len(s.stack)-1]
		if len(s.stack) == 0 {
			return
		}

		u := s.stack[len(s.stack)-1].nodeID
		v := done.nodeID
		s.low[u] = min(s.low[u], s.low[v])
		if s.low[v] > s.disc[u] {
			s.bridges = append(s.bridges, Bridge{
				EdgeID:     done.viaEdge,
				FromNodeID: u,
				ToNodeID:   v,
			})
		}
	}
}

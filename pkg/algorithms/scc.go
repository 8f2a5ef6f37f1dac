package algorithms

import "github.com/dd0wney/cluso-graphreport/pkg/graph"

// SCCResult holds the result of Tarjan's strongly connected components algorithm.
// It embeds ComponentResult so the weak and strong variants share reporting code.
type SCCResult struct {
	*ComponentResult
	SingletonCount int
}

// CondensationEdge represents a directed edge in the condensation DAG, where each
// SCC has been contracted to a single node.
type CondensationEdge struct {
	FromSCCID int
	ToSCCID   int
	EdgeCount int
}

// tarjanFrame is one entry of the explicit DFS stack
type tarjanFrame struct {
	nodeID     uint64
	successors []uint64
	cursor     int
}

// StronglyConnectedComponents finds all SCCs using Tarjan's algorithm in O(V+E) time.
// Only outgoing edges are followed; on an undirected graph the result equals
// ConnectedComponents. The DFS is iterative so long citation chains cannot
// exhaust the stack.
func StronglyConnectedComponents(g *graph.Graph) (*SCCResult, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	n := g.MaxNodeID() + 1
	index := make([]int, n) // 0 = unvisited, otherwise discovery order + 1
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	indexCounter := 0

	var stack []uint64
	var components []*Component
	nodeComponent := make(map[uint64]int, g.NodeCount())

	visit := func(u uint64, frames []tarjanFrame) []tarjanFrame {
		indexCounter++
		index[u] = indexCounter
		lowlink[u] = indexCounter
		stack = append(stack, u)
		onStack[u] = true
		succ, _ := g.Successors(u)
		return append(frames, tarjanFrame{nodeID: u, successors: succ})
	}

	for _, root := range g.NodeIDs() {
		if index[root] != 0 {
			continue
		}

		frames := visit(root, nil)
		for len(frames) > 0 {
			top := &frames[len(frames)-1]
			u := top.nodeID

			if top.cursor < len(top.successors) {
				v := top.successors[top.cursor]
				top.cursor++
				if index[v] == 0 {
					frames = visit(v, frames)
				} else if onStack[v] {
					lowlink[u] = min(lowlink[u], index[v])
				}
				continue
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].nodeID
				lowlink[parent] = min(lowlink[parent], lowlink[u])
			}

			// If u is a root node, pop the stack to form an SCC
			if lowlink[u] == index[u] {
				sccID := len(components)
				var members []uint64
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					members = append(members, w)
					nodeComponent[w] = sccID
					if w == u {
						break
					}
				}
				components = append(components, &Component{
					ID:    sccID,
					Nodes: members,
					Size:  len(members),
				})
			}
		}
	}

	var largest *Component
	singletonCount := 0
	for _, c := range components {
		if c.Size == 1 {
			singletonCount++
		}
		if largest == nil || c.Size > largest.Size {
			largest = c
		}
	}

	return &SCCResult{
		ComponentResult: &ComponentResult{
			Components:    components,
			NodeComponent: nodeComponent,
			Largest:       largest,
		},
		SingletonCount: singletonCount,
	}, nil
}

// Condensation builds the condensation DAG from an SCC result. Each SCC becomes
// a single node; edges between SCCs are aggregated with their count.
// Runs in O(E) time over all original edges.
func Condensation(g *graph.Graph, scc *SCCResult) ([]CondensationEdge, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	type edgeKey struct{ from, to int }
	counts := make(map[edgeKey]int)
	order := make([]edgeKey, 0)

	for _, edge := range g.Edges() {
		fromSCC, okFrom := scc.NodeComponent[edge.FromNodeID]
		toSCC, okTo := scc.NodeComponent[edge.ToNodeID]
		if !okFrom || !okTo || fromSCC == toSCC {
			continue
		}
		key := edgeKey{fromSCC, toSCC}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	result := make([]CondensationEdge, 0, len(counts))
	for _, key := range order {
		result = append(result, CondensationEdge{
			FromSCCID: key.from,
			ToSCCID:   key.to,
			EdgeCount: counts[key],
		})
	}
	return result, nil
}

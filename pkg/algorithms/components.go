package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// Component is a set of nodes pairwise reachable from one another
type Component struct {
	ID    int      `json:"id"`
	Nodes []uint64 `json:"nodes"`
	Size  int      `json:"size"`
}

// ComponentResult contains the components of a graph
type ComponentResult struct {
	Components    []*Component
	NodeComponent map[uint64]int // Node ID -> Component ID
	Largest       *Component
}

// Count returns the number of components
func (r *ComponentResult) Count() int {
	return len(r.Components)
}

// ConnectedComponents finds all connected components, ignoring edge direction
// (weak connectivity for directed graphs). Components are numbered in the
// order their first node appears in the graph.
func ConnectedComponents(g *graph.Graph) (*ComponentResult, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	nodeIDs := g.NodeIDs()
	visited := make([]bool, g.MaxNodeID()+1)
	nodeComponent := make(map[uint64]int, len(nodeIDs))
	components := make([]*Component, 0)
	var largest *Component

	// BFS to find each component
	for _, startNode := range nodeIDs {
		if visited[startNode] {
			continue
		}

		component := &Component{
			ID:    len(components),
			Nodes: make([]uint64, 0),
		}

		queue := list.New()
		queue.PushBack(startNode)
		visited[startNode] = true

		for queue.Len() > 0 {
			nodeID, ok := queue.Remove(queue.Front()).(uint64)
			if !ok {
				continue
			}
			component.Nodes = append(component.Nodes, nodeID)
			nodeComponent[nodeID] = component.ID

			edges, _ := g.IncidentEdges(nodeID)
			for _, edge := range edges {
				other := edge.Other(nodeID)
				if !visited[other] {
					visited[other] = true
					queue.PushBack(other)
				}
			}
		}

		component.Size = len(component.Nodes)
		components = append(components, component)
		if largest == nil || component.Size > largest.Size {
			largest = component
		}
	}

	return &ComponentResult{
		Components:    components,
		NodeComponent: nodeComponent,
		Largest:       largest,
	}, nil
}

// CountComponents returns the number of weakly connected components
func CountComponents(g *graph.Graph) (int, error) {
	result, err := ConnectedComponents(g)
	if err != nil {
		return 0, err
	}
	return result.Count(), nil
}

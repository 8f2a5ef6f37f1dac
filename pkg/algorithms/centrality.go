package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// brandesBetweenness runs a single O(VE) Brandes pass and returns raw,
// unnormalised node betweenness. Edge direction is followed for directed
// graphs; undirected graphs count every pair in both directions.
func brandesBetweenness(g *graph.Graph) map[uint64]float64 {
	nodeIDs := g.NodeIDs()
	n := g.MaxNodeID() + 1

	betweenness := make(map[uint64]float64, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		betweenness[nodeID] = 0.0
	}

	predecessors := make([][]uint64, n)
	sigma := make([]float64, n)
	distance := make([]int, n)
	delta := make([]float64, n)
	stack := make([]uint64, 0, len(nodeIDs))

	for _, source := range nodeIDs {
		stack = stack[:0]
		for _, nodeID := range nodeIDs {
			predecessors[nodeID] = predecessors[nodeID][:0]
			sigma[nodeID] = 0.0
			distance[nodeID] = -1
			delta[nodeID] = 0.0
		}

		sigma[source] = 1.0
		distance[source] = 0

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v, ok := queue.Remove(queue.Front()).(uint64)
			if !ok {
				continue
			}
			stack = append(stack, v)

			successors, _ := g.Successors(v)
			for _, w := range successors {
				if w == v {
					continue
				}
				if distance[w] < 0 {
					queue.PushBack(w)
					distance[w] = distance[v] + 1
				}
				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation of dependencies
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, pred := range predecessors[w] {
				delta[pred] += (sigma[pred] / sigma[w]) * (1.0 + delta[w])
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	return betweenness
}

// BetweennessCentrality computes betweenness centrality for all nodes,
// normalised by (n-1)(n-2). Measures how often a node appears on shortest
// paths between other nodes. O(VE); intended for graphs of modest size.
func BetweennessCentrality(g *graph.Graph) (map[uint64]float64, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	betweenness := brandesBetweenness(g)

	n := g.NodeCount()
	if n > 2 {
		normFactor := 1.0 / float64((n-1)*(n-2))
		for nodeID := range betweenness {
			betweenness[nodeID] *= normFactor
		}
	}
	return betweenness, nil
}

// ClosenessCentrality computes closeness centrality for all nodes from
// outgoing distances. Graphs that are not strongly connected are handled by
// scaling with the fraction of nodes reached (Wasserman-Faust).
func ClosenessCentrality(g *graph.Graph) (map[uint64]float64, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	nodeIDs := g.NodeIDs()
	closeness := make(map[uint64]float64, len(nodeIDs))
	if len(nodeIDs) < 2 {
		for _, id := range nodeIDs {
			closeness[id] = 0.0
		}
		return closeness, nil
	}

	dist := make([]int, g.MaxNodeID()+1)
	for _, source := range nodeIDs {
		dist = bfsDistances(g, source, dist)

		total := 0
		reached := 0
		for _, id := range nodeIDs {
			if id != source && dist[id] > 0 {
				total += dist[id]
				reached++
			}
		}

		if total == 0 {
			closeness[source] = 0.0
			continue
		}
		c := float64(reached) / float64(total)
		c *= float64(reached) / float64(len(nodeIDs)-1)
		closeness[source] = c
	}
	return closeness, nil
}

// CentralityResult contains centrality measures for all nodes
type CentralityResult struct {
	Betweenness      map[uint64]float64
	Closeness        map[uint64]float64
	Degree           map[uint64]float64
	TopByBetweenness []RankedNode
	TopByCloseness   []RankedNode
	TopByDegree      []RankedNode
}

// ComputeAllCentrality computes degree, closeness and betweenness centrality
// and the top k nodes for each
func ComputeAllCentrality(g *graph.Graph, k int) (*CentralityResult, error) {
	betweenness, err := BetweennessCentrality(g)
	if err != nil {
		return nil, err
	}
	closeness, err := ClosenessCentrality(g)
	if err != nil {
		return nil, err
	}
	degree, err := DegreeCentrality(g)
	if err != nil {
		return nil, err
	}

	return &CentralityResult{
		Betweenness:      betweenness,
		Closeness:        closeness,
		Degree:           degree,
		TopByBetweenness: TopNodes(g, betweenness, k),
		TopByCloseness:   TopNodes(g, closeness, k),
		TopByDegree:      TopNodes(g, degree, k),
	}, nil
}

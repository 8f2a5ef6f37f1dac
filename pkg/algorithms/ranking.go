package algorithms

import (
	"container/heap"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// RankedNode represents a node with its score
type RankedNode struct {
	NodeID uint64  `json:"node_id"`
	Key    string  `json:"key"`
	Score  float64 `json:"score"`
}

// rankedNodeHeap implements a min-heap for RankedNode by score. Ties are
// ordered so that the higher node ID sits nearer the root and is evicted
// first, keeping the top-k selection deterministic.
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].NodeID > h[j].NodeID
}
func (h rankedNodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// TopNodes returns the n highest-scoring nodes, best first. Equal scores are
// broken by ascending node ID.
// Time complexity: O(m log n) where m = len(scores).
func TopNodes(g *graph.Graph, scores map[uint64]float64, n int) []RankedNode {
	if n <= 0 || len(scores) == 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)

	for nodeID, score := range scores {
		rn := RankedNode{NodeID: nodeID, Score: score}

		if h.Len() < n {
			heap.Push(&h, rn)
			continue
		}
		if better(rn, h[0]) {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}

	if g != nil {
		for i := range result {
			if node, err := g.GetNode(result[i].NodeID); err == nil {
				result[i].Key = node.Key
			}
		}
	}
	return result
}

// better reports whether a ranks above b
func better(a, b RankedNode) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.NodeID < b.NodeID
}

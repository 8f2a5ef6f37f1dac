package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// ShortestPath finds the shortest path between two nodes using bidirectional BFS.
// The forward search follows edge direction and the backward search follows it
// in reverse, so directed graphs are handled correctly. Returns nil when there
// is no path.
func ShortestPath(g *graph.Graph, startID, endID uint64) ([]uint64, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}
	if _, err := g.GetNode(startID); err != nil {
		return nil, err
	}
	if _, err := g.GetNode(endID); err != nil {
		return nil, err
	}
	if startID == endID {
		return []uint64{startID}, nil
	}

	// Forward search from start
	forwardQueue := list.New()
	forwardVisited := make(map[uint64]uint64) // node -> parent
	forwardQueue.PushBack(startID)
	forwardVisited[startID] = startID

	// Backward search from end
	backwardQueue := list.New()
	backwardVisited := make(map[uint64]uint64) // node -> parent
	backwardQueue.PushBack(endID)
	backwardVisited[endID] = endID

	for forwardQueue.Len() > 0 && backwardQueue.Len() > 0 {
		if meetingNode, ok := expandFrontier(forwardQueue, forwardVisited, backwardVisited, g.Successors); ok {
			return reconstructPath(meetingNode, forwardVisited, backwardVisited), nil
		}
		if meetingNode, ok := expandFrontier(backwardQueue, backwardVisited, forwardVisited, g.Predecessors); ok {
			return reconstructPath(meetingNode, forwardVisited, backwardVisited), nil
		}
	}

	return nil, nil // No path found
}

// expandFrontier expands one level of BFS from the queue and reports the node
// where it met the other search, if any
func expandFrontier(
	queue *list.List,
	visited map[uint64]uint64,
	otherVisited map[uint64]uint64,
	next func(uint64) ([]uint64, error),
) (uint64, bool) {
	levelSize := queue.Len()
	for i := 0; i < levelSize; i++ {
		currentID := queue.Remove(queue.Front()).(uint64)

		neighbors, err := next(currentID)
		if err != nil {
			continue
		}

		for _, neighborID := range neighbors {
			if _, seen := visited[neighborID]; seen {
				continue
			}
			visited[neighborID] = currentID
			if _, found := otherVisited[neighborID]; found {
				return neighborID, true
			}
			queue.PushBack(neighborID)
		}
	}
	return 0, false
}

// reconstructPath builds the full path through the meeting node
func reconstructPath(meetingNode uint64, forwardVisited, backwardVisited map[uint64]uint64) []uint64 {
	// Build forward path (start -> meeting)
	forward := make([]uint64, 0)
	current := meetingNode
	for {
		forward = append(forward, current)
		parent := forwardVisited[current]
		if parent == current {
			break
		}
		current = parent
	}

	// Reverse forward path
	for i, j := 0, len(forward)-1; i < j; i, j = i+1, j-1 {
		forward[i], forward[j] = forward[j], forward[i]
	}

	// Build backward path (meeting -> end)
	current = meetingNode
	for {
		parent := backwardVisited[current]
		if parent == current {
			break
		}
		forward = append(forward, parent)
		current = parent
	}

	return forward
}

// bfsDistances returns the hop distance from source to every reachable node,
// following edge direction. Unreachable nodes keep -1.
func bfsDistances(g *graph.Graph, source uint64, dist []int) []int {
	for i := range dist {
		dist[i] = -1
	}
	dist[source] = 0

	queue := []uint64{source}
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		succ, _ := g.Successors(u)
		for _, v := range succ {
			if dist[v] < 0 {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return dist
}

package visualization

import (
	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// HierarchicalLayout arranges nodes in layers following edge direction. It
// suits citation networks, where sources sit above the papers they cite.
type HierarchicalLayout struct {
	config *LayoutConfig
}

// NewHierarchicalLayout creates a new hierarchical layout
func NewHierarchicalLayout(config *LayoutConfig) *HierarchicalLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &HierarchicalLayout{config: config}
}

// ComputeLayout arranges nodes hierarchically
func (hl *HierarchicalLayout) ComputeLayout(g *graph.Graph, nodeIDs []uint64) (map[uint64]Position, error) {
	positions := make(map[uint64]Position)

	if len(nodeIDs) == 0 {
		return positions, nil
	}

	inSet := make(map[uint64]bool, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		inSet[nodeID] = true
	}

	// Roots have no incoming edges from inside the set
	roots := make([]uint64, 0)
	for _, nodeID := range nodeIDs {
		preds, err := g.Predecessors(nodeID)
		if err != nil {
			return nil, err
		}
		isRoot := true
		for _, p := range preds {
			if inSet[p] && p != nodeID {
				isRoot = false
				break
			}
		}
		if isRoot {
			roots = append(roots, nodeID)
		}
	}

	if len(roots) == 0 {
		// No clear root, use first node
		roots = []uint64{nodeIDs[0]}
	}

	// Build levels using BFS
	levels := make([][]uint64, 0)
	visited := make(map[uint64]bool)
	for _, r := range roots {
		visited[r] = true
	}
	currentLevel := roots

	for len(currentLevel) > 0 {
		levels = append(levels, currentLevel)
		nextLevel := make([]uint64, 0)

		for _, nodeID := range currentLevel {
			succ, err := g.Successors(nodeID)
			if err != nil {
				return nil, err
			}
			for _, next := range succ {
				if inSet[next] && !visited[next] {
					nextLevel = append(nextLevel, next)
					visited[next] = true
				}
			}
		}

		currentLevel = nextLevel
	}

	// Nodes only reachable through cycles go on the last level
	for _, nodeID := range nodeIDs {
		if !visited[nodeID] {
			levels[len(levels)-1] = append(levels[len(levels)-1], nodeID)
		}
	}

	levelHeight := (hl.config.Height - 2*hl.config.Padding) / float64(len(levels))

	for levelIdx, level := range levels {
		y := hl.config.Padding + float64(levelIdx)*levelHeight + levelHeight/2
		levelWidth := hl.config.Width - 2*hl.config.Padding
		spacing := levelWidth / float64(len(level)+1)

		for nodeIdx, nodeID := range level {
			x := hl.config.Padding + spacing*float64(nodeIdx+1)
			positions[nodeID] = Position{X: x, Y: y}
		}
	}

	return positions, nil
}

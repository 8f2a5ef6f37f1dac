package visualization

import (
	"math"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// CircularLayout places nodes evenly on a circle, clockwise from the top in
// the order they are passed
type CircularLayout struct {
	config *LayoutConfig
}

// NewCircularLayout creates a circular layout
func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

// ComputeLayout implements Layout
func (cl *CircularLayout) ComputeLayout(_ *graph.Graph, nodeIDs []uint64) (map[uint64]Position, error) {
	positions := make(map[uint64]Position, len(nodeIDs))
	cx, cy := cl.config.Width/2, cl.config.Height/2

	switch len(nodeIDs) {
	case 0:
		return positions, nil
	case 1:
		positions[nodeIDs[0]] = Position{X: cx, Y: cy}
		return positions, nil
	}

	r := math.Max(math.Min(cx, cy)-cl.config.Padding, 0)
	step := 2 * math.Pi / float64(len(nodeIDs))
	for i, id := range nodeIDs {
		theta := float64(i)*step - math.Pi/2
		positions[id] = Position{X: cx + r*math.Cos(theta), Y: cy + r*math.Sin(theta)}
	}
	return positions, nil
}

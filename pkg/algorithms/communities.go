package algorithms

import (
	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// Community represents a detected community
type Community struct {
	ID    int      `json:"id"`
	Nodes []uint64 `json:"nodes"`
	Size  int      `json:"size"`
}

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult struct {
	Communities   []*Community   `json:"communities"`
	Modularity    float64        `json:"modularity"` // Quality measure of the partitioning
	NodeCommunity map[uint64]int `json:"-"`          // Node ID -> Community ID
	Iterations    int            `json:"iterations"`
}

// LabelPropagation performs label propagation for community detection,
// treating edges as undirected. Nodes are updated in enumeration order and
// ties between equally frequent labels go to the smallest label, so the
// result is deterministic. Fast and scalable for large graphs.
func LabelPropagation(g *graph.Graph, maxIterations int) (*CommunityDetectionResult, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	nodeIDs := g.NodeIDs()

	// Initialize: each node in its own community
	labels := make([]int, g.MaxNodeID()+1)
	for i, nodeID := range nodeIDs {
		labels[nodeID] = i
	}

	iterations := 0
	labelCount := make(map[int]int)
	for iterations < maxIterations {
		iterations++
		changed := false

		for _, nodeID := range nodeIDs {
			clear(labelCount)
			edges, _ := g.IncidentEdges(nodeID)
			for _, edge := range edges {
				if edge.IsSelfLoop() {
					continue
				}
				labelCount[labels[edge.Other(nodeID)]]++
			}
			if len(labelCount) == 0 {
				continue
			}

			// Most frequent label, smallest on ties
			maxCount := 0
			maxLabel := labels[nodeID]
			for label, count := range labelCount {
				if count > maxCount || (count == maxCount && label < maxLabel) {
					maxCount = count
					maxLabel = label
				}
			}

			if maxLabel != labels[nodeID] && labelCount[maxLabel] > labelCount[labels[nodeID]] {
				labels[nodeID] = maxLabel
				changed = true
			}
		}

		if !changed {
			break // Converged
		}
	}

	// Number communities in order of first appearance
	communities := make([]*Community, 0)
	nodeCommunity := make(map[uint64]int, len(nodeIDs))
	byLabel := make(map[int]*Community)
	for _, nodeID := range nodeIDs {
		community, ok := byLabel[labels[nodeID]]
		if !ok {
			community = &Community{ID: len(communities)}
			byLabel[labels[nodeID]] = community
			communities = append(communities, community)
		}
		community.Nodes = append(community.Nodes, nodeID)
		community.Size++
		nodeCommunity[nodeID] = community.ID
	}

	return &CommunityDetectionResult{
		Communities:   communities,
		NodeCommunity: nodeCommunity,
		Modularity:    Modularity(g, nodeCommunity),
		Iterations:    iterations,
	}, nil
}

// Modularity scores a partition of the undirected view of g:
// Q = sum over communities of L_c/m - (d_c/2m)^2, where L_c counts edges
// inside the community and d_c sums its degrees. Returns 0 for an edgeless
// graph.
func Modularity(g *graph.Graph, nodeCommunity map[uint64]int) float64 {
	m := float64(g.EdgeCount())
	if m == 0 {
		return 0
	}

	internal := make(map[int]float64)
	degrees := make(map[int]float64)
	for _, edge := range g.Edges() {
		from, okFrom := nodeCommunity[edge.FromNodeID]
		to, okTo := nodeCommunity[edge.ToNodeID]
		if okFrom {
			degrees[from]++
		}
		if okTo {
			degrees[to]++
		}
		if okFrom && okTo && from == to {
			internal[from]++
		}
	}

	q := 0.0
	for c, d := range degrees {
		share := d / (2 * m)
		q += internal[c]/m - share*share
	}
	return q
}

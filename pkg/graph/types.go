package graph

// Node represents a vertex in the graph. Key is the identifier the node had in
// the source dataset; ID is the dense identifier assigned on insertion.
type Node struct {
	ID  uint64 `json:"id"`
	Key string `json:"key"`
}

// Edge represents a relationship between nodes. For undirected graphs the
// FromNodeID/ToNodeID orientation is the order the edge was read in and
// carries no meaning.
type Edge struct {
	ID         uint64  `json:"id"`
	FromNodeID uint64  `json:"from_node_id"`
	ToNodeID   uint64  `json:"to_node_id"`
	Weight     float64 `json:"weight"`
}

// Other returns the endpoint of e opposite nodeID. For a self-loop it returns
// nodeID itself.
func (e *Edge) Other(nodeID uint64) uint64 {
	if e.FromNodeID == nodeID {
		return e.ToNodeID
	}
	return e.FromNodeID
}

// IsSelfLoop reports whether both endpoints are the same node
func (e *Edge) IsSelfLoop() bool {
	return e.FromNodeID == e.ToNodeID
}

// Statistics holds graph counters
type Statistics struct {
	NodeCount uint64 `json:"node_count"`
	EdgeCount uint64 `json:"edge_count"`
	SelfLoops uint64 `json:"self_loops"`
	Directed  bool   `json:"directed"`
}

// pairKey identifies an endpoint pair for duplicate detection in simple graphs
type pairKey struct {
	from, to uint64
}

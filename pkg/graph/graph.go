package graph

// Graph is an in-memory adjacency-list graph. Node and edge IDs are dense and
// start at 1, assigned in insertion order; NodeIDs always enumerates nodes in
// that order, which keeps every traversal over the graph deterministic.
//
// A Graph is not safe for concurrent mutation. Once loading has finished it is
// read-only and any number of goroutines may traverse it.
type Graph struct {
	directed bool
	simple   bool

	nodes []*Node
	keys  map[string]uint64
	edges []*Edge

	// Per-node edge ID lists, indexed by node ID - 1.
	outgoing  [][]uint64
	incoming  [][]uint64
	incident  [][]uint64
	pairs     map[pairKey]struct{}
	selfLoops uint64
}

// New creates an empty multigraph. Parallel edges and self-loops are kept.
func New(directed bool) *Graph {
	return &Graph{
		directed: directed,
		keys:     make(map[string]uint64),
	}
}

// NewSimple creates an empty graph that rejects parallel edges with
// ErrDuplicateEdge. For undirected graphs (a,b) and (b,a) are the same edge.
func NewSimple(directed bool) *Graph {
	g := New(directed)
	g.simple = true
	g.pairs = make(map[pairKey]struct{})
	return g
}

// Directed reports whether edges are directed
func (g *Graph) Directed() bool {
	return g.directed
}

// Simple reports whether parallel edges are rejected
func (g *Graph) Simple() bool {
	return g.simple
}

// AddNode inserts a node with the given key, or returns the existing one.
// The boolean is true when a new node was created.
func (g *Graph) AddNode(key string) (*Node, bool, error) {
	if key == "" {
		return nil, false, NewError("AddNode").NodeKey(key).Cause(ErrEmptyKey).Err()
	}
	if id, ok := g.keys[key]; ok {
		return g.nodes[id-1], false, nil
	}

	node := &Node{ID: uint64(len(g.nodes)) + 1, Key: key}
	g.nodes = append(g.nodes, node)
	g.keys[key] = node.ID
	g.outgoing = append(g.outgoing, nil)
	g.incoming = append(g.incoming, nil)
	g.incident = append(g.incident, nil)
	return node, true, nil
}

// RenameNode changes the dataset key of an existing node. Renaming a node to
// its current key is a no-op.
func (g *Graph) RenameNode(id uint64, key string) error {
	if !g.hasNode(id) {
		return NodeNotFoundError(id)
	}
	if key == "" {
		return NewError("RenameNode").Node(id).Cause(ErrEmptyKey).Err()
	}
	if other, ok := g.keys[key]; ok {
		if other == id {
			return nil
		}
		return NewError("RenameNode").Node(id).NodeKey(key).Cause(ErrDuplicateKey).Err()
	}

	node := g.nodes[id-1]
	delete(g.keys, node.Key)
	node.Key = key
	g.keys[key] = id
	return nil
}

// AddEdge connects the nodes with the given keys, creating them if needed.
func (g *Graph) AddEdge(fromKey, toKey string) (*Edge, error) {
	from, _, err := g.AddNode(fromKey)
	if err != nil {
		return nil, err
	}
	to, _, err := g.AddNode(toKey)
	if err != nil {
		return nil, err
	}
	return g.AddEdgeByID(from.ID, to.ID)
}

// AddEdgeByID connects two existing nodes
func (g *Graph) AddEdgeByID(fromID, toID uint64) (*Edge, error) {
	if !g.hasNode(fromID) {
		return nil, NewError("AddEdge").Node(fromID).Cause(ErrNodeNotFound).Err()
	}
	if !g.hasNode(toID) {
		return nil, NewError("AddEdge").Node(toID).Cause(ErrNodeNotFound).Err()
	}

	if g.simple {
		key := g.pair(fromID, toID)
		if _, dup := g.pairs[key]; dup {
			return nil, ErrDuplicateEdge
		}
		g.pairs[key] = struct{}{}
	}

	edge := &Edge{
		ID:         uint64(len(g.edges)) + 1,
		FromNodeID: fromID,
		ToNodeID:   toID,
		Weight:     1.0,
	}
	g.edges = append(g.edges, edge)

	g.outgoing[fromID-1] = append(g.outgoing[fromID-1], edge.ID)
	g.incoming[toID-1] = append(g.incoming[toID-1], edge.ID)
	g.incident[fromID-1] = append(g.incident[fromID-1], edge.ID)
	if fromID == toID {
		g.selfLoops++
	} else {
		g.incident[toID-1] = append(g.incident[toID-1], edge.ID)
	}
	return edge, nil
}

func (g *Graph) pair(fromID, toID uint64) pairKey {
	if !g.directed && fromID > toID {
		fromID, toID = toID, fromID
	}
	return pairKey{from: fromID, to: toID}
}

func (g *Graph) hasNode(id uint64) bool {
	return id >= 1 && id <= uint64(len(g.nodes))
}

// GetNode retrieves a node by ID
func (g *Graph) GetNode(id uint64) (*Node, error) {
	if !g.hasNode(id) {
		return nil, NodeNotFoundError(id)
	}
	return g.nodes[id-1], nil
}

// GetNodeByKey retrieves a node by its dataset key
func (g *Graph) GetNodeByKey(key string) (*Node, error) {
	id, ok := g.keys[key]
	if !ok {
		return nil, NewError("get").NodeKey(key).Cause(ErrNodeNotFound).Err()
	}
	return g.nodes[id-1], nil
}

// GetEdge retrieves an edge by ID
func (g *Graph) GetEdge(id uint64) (*Edge, error) {
	if id < 1 || id > uint64(len(g.edges)) {
		return nil, EdgeNotFoundError(id)
	}
	return g.edges[id-1], nil
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// MaxNodeID returns the largest assigned node ID (0 for an empty graph).
// Algorithms use it to size per-node tables.
func (g *Graph) MaxNodeID() uint64 {
	return uint64(len(g.nodes))
}

// NodeIDs returns all node IDs in insertion order
func (g *Graph) NodeIDs() []uint64 {
	ids := make([]uint64, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// GetOutgoingEdges returns edges leaving the node. For undirected graphs this
// is only the edges inserted with the node as their first endpoint; use
// IncidentEdges for the undirected view.
func (g *Graph) GetOutgoingEdges(nodeID uint64) ([]*Edge, error) {
	if !g.hasNode(nodeID) {
		return nil, NodeNotFoundError(nodeID)
	}
	return g.resolve(g.outgoing[nodeID-1]), nil
}

// GetIncomingEdges returns edges arriving at the node
func (g *Graph) GetIncomingEdges(nodeID uint64) ([]*Edge, error) {
	if !g.hasNode(nodeID) {
		return nil, NodeNotFoundError(nodeID)
	}
	return g.resolve(g.incoming[nodeID-1]), nil
}

// IncidentEdges returns every edge touching the node regardless of direction,
// in insertion order. A self-loop appears once.
func (g *Graph) IncidentEdges(nodeID uint64) ([]*Edge, error) {
	if !g.hasNode(nodeID) {
		return nil, NodeNotFoundError(nodeID)
	}
	return g.resolve(g.incident[nodeID-1]), nil
}

// Successors returns the nodes reachable over one edge. For directed graphs
// these are the targets of outgoing edges; for undirected graphs every
// neighbour. Parallel edges yield repeated entries.
func (g *Graph) Successors(nodeID uint64) ([]uint64, error) {
	if !g.hasNode(nodeID) {
		return nil, NodeNotFoundError(nodeID)
	}
	if g.directed {
		return g.endpoints(g.outgoing[nodeID-1], nodeID), nil
	}
	return g.endpoints(g.incident[nodeID-1], nodeID), nil
}

// Predecessors returns the nodes with an edge into nodeID. For undirected
// graphs it is the same as Successors.
func (g *Graph) Predecessors(nodeID uint64) ([]uint64, error) {
	if !g.hasNode(nodeID) {
		return nil, NodeNotFoundError(nodeID)
	}
	if g.directed {
		return g.endpoints(g.incoming[nodeID-1], nodeID), nil
	}
	return g.endpoints(g.incident[nodeID-1], nodeID), nil
}

// Neighbors returns the distinct nodes adjacent to nodeID ignoring direction,
// excluding nodeID itself.
func (g *Graph) Neighbors(nodeID uint64) ([]uint64, error) {
	if !g.hasNode(nodeID) {
		return nil, NodeNotFoundError(nodeID)
	}
	ids := g.incident[nodeID-1]
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, edgeID := range ids {
		other := g.edges[edgeID-1].Other(nodeID)
		if other == nodeID {
			continue
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		out = append(out, other)
	}
	return out, nil
}

// Degree returns the number of edge endpoints at the node. A self-loop
// contributes two, matching the usual undirected convention.
func (g *Graph) Degree(nodeID uint64) int {
	if !g.hasNode(nodeID) {
		return 0
	}
	return len(g.outgoing[nodeID-1]) + len(g.incoming[nodeID-1])
}

// InDegree returns the number of edges arriving at the node
func (g *Graph) InDegree(nodeID uint64) int {
	if !g.hasNode(nodeID) {
		return 0
	}
	return len(g.incoming[nodeID-1])
}

// OutDegree returns the number of edges leaving the node
func (g *Graph) OutDegree(nodeID uint64) int {
	if !g.hasNode(nodeID) {
		return 0
	}
	return len(g.outgoing[nodeID-1])
}

// GetStatistics returns current graph statistics
func (g *Graph) GetStatistics() Statistics {
	return Statistics{
		NodeCount: uint64(len(g.nodes)),
		EdgeCount: uint64(len(g.edges)),
		SelfLoops: g.selfLoops,
		Directed:  g.directed,
	}
}

// Subgraph returns the graph induced by the given node IDs. Node keys are
// preserved; IDs are reassigned in the order the nodes appear in this graph.
// Unknown IDs are ignored.
func (g *Graph) Subgraph(nodeIDs []uint64) *Graph {
	keep := make(map[uint64]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		if g.hasNode(id) {
			keep[id] = true
		}
	}

	sub := New(g.directed)
	if g.simple {
		sub = NewSimple(g.directed)
	}
	mapping := make(map[uint64]uint64, len(keep))
	for _, n := range g.nodes {
		if !keep[n.ID] {
			continue
		}
		node, _, _ := sub.AddNode(n.Key)
		mapping[n.ID] = node.ID
	}
	for _, e := range g.edges {
		from, okFrom := mapping[e.FromNodeID]
		to, okTo := mapping[e.ToNodeID]
		if !okFrom || !okTo {
			continue
		}
		if edge, err := sub.AddEdgeByID(from, to); err == nil {
			edge.Weight = e.Weight
		}
	}
	return sub
}

func (g *Graph) resolve(ids []uint64) []*Edge {
	out := make([]*Edge, len(ids))
	for i, id := range ids {
		out[i] = g.edges[id-1]
	}
	return out
}

func (g *Graph) endpoints(ids []uint64, nodeID uint64) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = g.edges[id-1].Other(nodeID)
	}
	return out
}

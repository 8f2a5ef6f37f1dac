package algorithms

import (
	"fmt"
	"sort"
	"testing"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// buildGraph creates a multigraph from key pairs
func buildGraph(t *testing.T, directed bool, edges ...[2]string) *graph.Graph {
	t.Helper()
	g := graph.New(directed)
	for _, e := range edges {
		if _, err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%s, %s) failed: %v", e[0], e[1], err)
		}
	}
	return g
}

// addNodes adds isolated nodes
func addNodes(t *testing.T, g *graph.Graph, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if _, _, err := g.AddNode(k); err != nil {
			t.Fatalf("AddNode(%s) failed: %v", k, err)
		}
	}
}

// nodeID looks a node up by key
func nodeID(t *testing.T, g *graph.Graph, key string) uint64 {
	t.Helper()
	n, err := g.GetNodeByKey(key)
	if err != nil {
		t.Fatalf("node %q not found: %v", key, err)
	}
	return n.ID
}

// keyOf returns the dataset key of a node
func keyOf(t *testing.T, g *graph.Graph, id uint64) string {
	t.Helper()
	n, err := g.GetNode(id)
	if err != nil {
		t.Fatalf("node %d not found: %v", id, err)
	}
	return n.Key
}

// pathEdges returns the edges of a path 1-2-...-n
func pathEdges(n int) [][2]string {
	edges := make([][2]string, 0, n-1)
	for i := 1; i < n; i++ {
		edges = append(edges, [2]string{fmt.Sprint(i), fmt.Sprint(i + 1)})
	}
	return edges
}

// cycleEdges returns the edges of a cycle 1-2-...-n-1
func cycleEdges(n int) [][2]string {
	edges := pathEdges(n)
	return append(edges, [2]string{fmt.Sprint(n), "1"})
}

// bridgeKeys renders bridges as sorted "a-b" strings with a < b
func bridgeKeys(t *testing.T, g *graph.Graph, bridges []Bridge) []string {
	t.Helper()
	out := make([]string, 0, len(bridges))
	for _, b := range bridges {
		a, c := keyOf(t, g, b.FromNodeID), keyOf(t, g, b.ToNodeID)
		if a > c {
			a, c = c, a
		}
		out = append(out, a+"-"+c)
	}
	sort.Strings(out)
	return out
}

// sortedKeys renders node IDs as sorted keys
func sortedKeys(t *testing.T, g *graph.Graph, ids []uint64) []string {
	t.Helper()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, keyOf(t, g, id))
	}
	sort.Strings(out)
	return out
}

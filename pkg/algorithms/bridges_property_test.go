package algorithms

import (
	"fmt"
	"reflect"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

const propertyNodes = 10

// graphFromCodes decodes each code in [0, 99] as an edge (code/10, code%10)
// over a fixed set of ten nodes. Self-loops and parallel edges occur
// naturally.
func graphFromCodes(codes []int) *graph.Graph {
	g := graph.New(false)
	for i := 0; i < propertyNodes; i++ {
		g.AddNode(fmt.Sprint(i))
	}
	for _, code := range codes {
		g.AddEdge(fmt.Sprint(code/10), fmt.Sprint(code%10))
	}
	return g
}

// componentsWithout counts connected components while ignoring one edge
func componentsWithout(g *graph.Graph, skipEdge uint64) int {
	visited := make(map[uint64]bool)
	count := 0
	for _, start := range g.NodeIDs() {
		if visited[start] {
			continue
		}
		count++
		visited[start] = true
		queue := []uint64{start}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			edges, _ := g.IncidentEdges(u)
			for _, e := range edges {
				if e.ID == skipEdge {
					continue
				}
				if v := e.Other(u); !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}
	}
	return count
}

// bruteForceBridges removes each edge in turn and checks whether the
// component count goes up
func bruteForceBridges(g *graph.Graph) []uint64 {
	base := componentsWithout(g, 0)
	out := make([]uint64, 0)
	for _, e := range g.Edges() {
		if componentsWithout(g, e.ID) > base {
			out = append(out, e.ID)
		}
	}
	return out
}

func bridgeEdgeIDs(bridges []Bridge) []uint64 {
	out := make([]uint64, 0, len(bridges))
	for _, b := range bridges {
		out = append(out, b.EdgeID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TestFindBridges_Properties checks FindBridges against a brute-force oracle
// on random multigraphs
func TestFindBridges_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("matches remove-and-count oracle", prop.ForAll(
		func(codes []int) bool {
			g := graphFromCodes(codes)
			bridges, err := FindBridges(g)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(bridgeEdgeIDs(bridges), bruteForceBridges(g))
		},
		gen.SliceOf(gen.IntRange(0, 99)),
	))

	properties.Property("each bridge reported once", prop.ForAll(
		func(codes []int) bool {
			bridges, err := FindBridges(graphFromCodes(codes))
			if err != nil {
				return false
			}
			seen := make(map[uint64]bool)
			for _, b := range bridges {
				if seen[b.EdgeID] {
					return false
				}
				seen[b.EdgeID] = true
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 99)),
	))

	properties.Property("a forest has every edge as a bridge", prop.ForAll(
		func(parents []int) bool {
			// node i+1 attaches to a node with a smaller index
			g := graph.New(false)
			g.AddNode("0")
			for i, p := range parents {
				child := i + 1
				g.AddEdge(fmt.Sprint(p%child), fmt.Sprint(child))
			}
			bridges, err := FindBridges(g)
			if err != nil {
				return false
			}
			return len(bridges) == g.EdgeCount()
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.Property("bridge count never exceeds V - C", prop.ForAll(
		func(codes []int) bool {
			g := graphFromCodes(codes)
			bridges, err := FindBridges(g)
			if err != nil {
				return false
			}
			components, err := CountComponents(g)
			if err != nil {
				return false
			}
			return len(bridges) <= g.NodeCount()-components
		},
		gen.SliceOf(gen.IntRange(0, 99)),
	))

	properties.TestingRun(t)
}

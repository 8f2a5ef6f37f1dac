package algorithms

import (
	"math"
	"testing"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

func TestLabelPropagation_DisjointTriangles(t *testing.T) {
	g := buildGraph(t, false,
		[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"},
		[2]string{"d", "e"}, [2]string{"e", "f"}, [2]string{"f", "d"},
	)

	result, err := LabelPropagation(g, 10)
	if err != nil {
		t.Fatalf("LabelPropagation failed: %v", err)
	}

	if len(result.Communities) != 2 {
		t.Fatalf("Expected 2 communities, got %d", len(result.Communities))
	}
	for _, c := range result.Communities {
		if c.Size != 3 {
			t.Errorf("community %d has size %d, want 3", c.ID, c.Size)
		}
	}
	if result.NodeCommunity[nodeID(t, g, "a")] == result.NodeCommunity[nodeID(t, g, "d")] {
		t.Error("a and d should be in different communities")
	}

	// 2 * (3/6 - (6/12)^2)
	if math.Abs(result.Modularity-0.5) > 1e-9 {
		t.Errorf("modularity = %f, want 0.5", result.Modularity)
	}
}

func TestLabelPropagation_Deterministic(t *testing.T) {
	g := buildGraph(t, false, cycleEdges(12)...)

	first, err := LabelPropagation(g, 20)
	if err != nil {
		t.Fatal(err)
	}
	second, err := LabelPropagation(g, 20)
	if err != nil {
		t.Fatal(err)
	}

	for id, c := range first.NodeCommunity {
		if second.NodeCommunity[id] != c {
			t.Fatalf("node %d changed community between runs", id)
		}
	}
}

func TestLabelPropagation_IsolatedNodes(t *testing.T) {
	g := graph.New(false)
	addNodes(t, g, "x", "y")

	result, err := LabelPropagation(g, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Communities) != 2 {
		t.Errorf("Expected each isolated node alone, got %d communities", len(result.Communities))
	}
	if result.Modularity != 0 {
		t.Errorf("Expected modularity 0 without edges, got %f", result.Modularity)
	}
}

func TestModularity_SingleCommunity(t *testing.T) {
	g := buildGraph(t, false, cycleEdges(4)...)

	all := make(map[uint64]int)
	for _, id := range g.NodeIDs() {
		all[id] = 0
	}
	if q := Modularity(g, all); math.Abs(q) > 1e-9 {
		t.Errorf("single community modularity = %f, want 0", q)
	}
}

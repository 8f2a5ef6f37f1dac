package algorithms

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

func TestFindBridges_NilGraph(t *testing.T) {
	_, err := FindBridges(nil)
	if !errors.Is(err, ErrNilGraph) {
		t.Fatalf("expected ErrNilGraph, got %v", err)
	}
}

func TestFindBridges_EmptyGraph(t *testing.T) {
	bridges, err := FindBridges(graph.New(false))
	if err != nil {
		t.Fatalf("FindBridges failed: %v", err)
	}
	if len(bridges) != 0 {
		t.Errorf("expected no bridges, got %d", len(bridges))
	}
}

func TestFindBridges_SingleIsolatedNode(t *testing.T) {
	g := graph.New(false)
	addNodes(t, g, "solo")

	bridges, err := FindBridges(g)
	if err != nil {
		t.Fatalf("FindBridges failed: %v", err)
	}
	if bridges == nil || len(bridges) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", bridges)
	}
}

func TestFindBridges_TreeReturnsEveryEdge(t *testing.T) {
	//        1
	//      / | \
	//     2  3  4
	//    / \     \
	//   5   6     7
	g := buildGraph(t, false,
		[2]string{"1", "2"}, [2]string{"1", "3"}, [2]string{"1", "4"},
		[2]string{"2", "5"}, [2]string{"2", "6"}, [2]string{"4", "7"},
	)

	bridges, err := FindBridges(g)
	if err != nil {
		t.Fatalf("FindBridges failed: %v", err)
	}

	got := bridgeKeys(t, g, bridges)
	want := []string{"1-2", "1-3", "1-4", "2-5", "2-6", "4-7"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bridges = %v, want %v", got, want)
	}
}

func TestFindBridges_SimpleCycleHasNone(t *testing.T) {
	for _, n := range []int{3, 4, 10} {
		t.Run(fmt.Sprintf("C%d", n), func(t *testing.T) {
			g := buildGraph(t, false, cycleEdges(n)...)
			bridges, err := FindBridges(g)
			if err != nil {
				t.Fatalf("FindBridges failed: %v", err)
			}
			if len(bridges) != 0 {
				t.Errorf("expected no bridges in a cycle, got %v", bridgeKeys(t, g, bridges))
			}
		})
	}
}

func TestFindBridges_TwoTrianglesJoinedByOneEdge(t *testing.T) {
	g := buildGraph(t, false,
		[2]string{"1", "2"}, [2]string{"2", "3"}, [2]string{"3", "1"},
		[2]string{"4", "5"}, [2]string{"5", "6"}, [2]string{"6", "4"},
		[2]string{"3", "4"},
	)

	bridges, err := FindBridges(g)
	if err != nil {
		t.Fatalf("FindBridges failed: %v", err)
	}

	got := bridgeKeys(t, g, bridges)
	if !reflect.DeepEqual(got, []string{"3-4"}) {
		t.Fatalf("bridges = %v, want [3-4]", got)
	}

	edge, err := g.GetEdge(bridges[0].EdgeID)
	if err != nil {
		t.Fatalf("bridge edge ID does not resolve: %v", err)
	}
	if keyOf(t, g, edge.FromNodeID) != "3" || keyOf(t, g, edge.ToNodeID) != "4" {
		t.Errorf("bridge edge ID points at the wrong edge: %+v", edge)
	}
}

func TestFindBridges_DisconnectedIsUnionOfComponents(t *testing.T) {
	// Component A: path a1-a2-a3 (two bridges)
	// Component B: square b1..b4 with a pendant b5 (one bridge)
	// Component C: isolated node
	g := buildGraph(t, false,
		[2]string{"a1", "a2"}, [2]string{"a2", "a3"},
		[2]string{"b1", "b2"}, [2]string{"b2", "b3"}, [2]string{"b3", "b4"}, [2]string{"b4", "b1"},
		[2]string{"b4", "b5"},
	)
	addNodes(t, g, "c1")

	bridges, err := FindBridges(g)
	if err != nil {
		t.Fatalf("FindBridges failed: %v", err)
	}

	got := bridgeKeys(t, g, bridges)
	want := []string{"a1-a2", "a2-a3", "b4-b5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bridges = %v, want %v", got, want)
	}

	components, err := ConnectedComponents(g)
	if err != nil {
		t.Fatalf("ConnectedComponents failed: %v", err)
	}
	for _, b := range bridges {
		if components.NodeComponent[b.FromNodeID] != components.NodeComponent[b.ToNodeID] {
			t.Errorf("bridge %+v spans two components", b)
		}
	}
}

func TestFindBridges_Idempotent(t *testing.T) {
	g := buildGraph(t, false,
		[2]string{"1", "2"}, [2]string{"2", "3"}, [2]string{"3", "1"},
		[2]string{"3", "4"}, [2]string{"4", "5"}, [2]string{"5", "6"}, [2]string{"6", "4"},
		[2]string{"6", "7"},
	)

	first, err := FindBridges(g)
	if err != nil {
		t.Fatalf("FindBridges failed: %v", err)
	}
	second, err := FindBridges(g)
	if err != nil {
		t.Fatalf("FindBridges failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ between calls:\n%v\n%v", first, second)
	}
}

func TestFindBridges_SelfLoopNeverBridge(t *testing.T) {
	g := buildGraph(t, false,
		[2]string{"1", "1"},
		[2]string{"1", "2"},
		[2]string{"2", "2"},
	)

	bridges, err := FindBridges(g)
	if err != nil {
		t.Fatalf("FindBridges failed: %v", err)
	}

	got := bridgeKeys(t, g, bridges)
	if !reflect.DeepEqual(got, []string{"1-2"}) {
		t.Errorf("bridges = %v, want [1-2]", got)
	}
}

func TestFindBridges_ParallelEdgesAreNotBridges(t *testing.T) {
	// 1 = 2 - 3 : the doubled edge is 2-edge-connected, 2-3 is a bridge
	g := buildGraph(t, false,
		[2]string{"1", "2"},
		[2]string{"2", "1"},
		[2]string{"2", "3"},
	)

	bridges, err := FindBridges(g)
	if err != nil {
		t.Fatalf("FindBridges failed: %v", err)
	}

	got := bridgeKeys(t, g, bridges)
	if !reflect.DeepEqual(got, []string{"2-3"}) {
		t.Errorf("bridges = %v, want [2-3]", got)
	}
}

func TestFindBridges_SimpleGraphCollapsesDuplicates(t *testing.T) {
	// Loaded as a simple graph the duplicate is dropped, so 1-2 becomes a bridge
	g := graph.NewSimple(false)
	g.AddEdge("1", "2")
	g.AddEdge("2", "1")
	g.AddEdge("2", "3")

	bridges, err := FindBridges(g)
	if err != nil {
		t.Fatalf("FindBridges failed: %v", err)
	}
	if len(bridges) != 2 {
		t.Errorf("expected 2 bridges, got %v", bridgeKeys(t, g, bridges))
	}
}

func TestFindBridges_DirectedGraphUsesUndirectedView(t *testing.T) {
	// a -> b -> c -> a forms a cycle once direction is ignored; c -> d does not
	g := buildGraph(t, true,
		[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"}, [2]string{"c", "d"},
	)

	bridges, err := FindBridges(g)
	if err != nil {
		t.Fatalf("FindBridges failed: %v", err)
	}
	got := bridgeKeys(t, g, bridges)
	if !reflect.DeepEqual(got, []string{"c-d"}) {
		t.Errorf("bridges = %v, want [c-d]", got)
	}
}

func TestFindBridges_LongPathDoesNotOverflowStack(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping long path test in short mode")
	}

	const n = 200000
	g := graph.New(false)
	prev, _, _ := g.AddNode("0")
	for i := 1; i < n; i++ {
		next, _, _ := g.AddNode(fmt.Sprint(i))
		if _, err := g.AddEdgeByID(prev.ID, next.ID); err != nil {
			t.Fatalf("AddEdgeByID failed: %v", err)
		}
		prev = next
	}

	bridges, err := FindBridges(g)
	if err != nil {
		t.Fatalf("FindBridges failed: %v", err)
	}
	if len(bridges) != n-1 {
		t.Errorf("expected %d bridges on a path, got %d", n-1, len(bridges))
	}
}

func TestFindBridges_TraversalInvariants(t *testing.T) {
	g := buildGraph(t, false,
		[2]string{"1", "2"}, [2]string{"2", "3"}, [2]string{"3", "1"},
		[2]string{"3", "4"}, [2]string{"4", "5"},
		[2]string{"6", "7"}, [2]string{"7", "8"}, [2]string{"8", "6"}, [2]string{"8", "8"},
		[2]string{"7", "9"}, [2]string{"9", "7"},
	)
	addNodes(t, g, "10")

	state, err := findBridges(g)
	if err != nil {
		t.Fatalf("findBridges failed: %v", err)
	}

	seenDisc := make(map[int]bool)
	treeBridges := 0
	for _, id := range g.NodeIDs() {
		disc, low := state.disc[id], state.low[id]
		if disc == 0 {
			t.Errorf("node %s never discovered", keyOf(t, g, id))
			continue
		}
		if seenDisc[disc] {
			t.Errorf("discovery time %d assigned twice", disc)
		}
		seenDisc[disc] = true
		if low > disc {
			t.Errorf("node %s: low %d > disc %d", keyOf(t, g, id), low, disc)
		}

		if p := state.parent[id]; p != 0 && low > state.disc[p] {
			treeBridges++
		}
	}

	if treeBridges != len(state.bridges) {
		t.Errorf("tree edges satisfying low[v] > disc[u]: %d, reported bridges: %d", treeBridges, len(state.bridges))
	}
	if got := bridgeKeys(t, g, state.bridges); !reflect.DeepEqual(got, []string{"3-4", "4-5"}) {
		t.Errorf("bridges = %v, want [3-4 4-5]", got)
	}
}

func BenchmarkFindBridges_Grid(b *testing.B) {
	const side = 200
	g := graph.New(false)
	key := func(r, c int) string { return fmt.Sprintf("%d:%d", r, c) }
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			if c+1 < side {
				g.AddEdge(key(r, c), key(r, c+1))
			}
			if r+1 < side {
				g.AddEdge(key(r, c), key(r+1, c))
			}
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := FindBridges(g); err != nil {
			b.Fatal(err)
		}
	}
}

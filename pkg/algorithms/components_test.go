package algorithms

import (
	"errors"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

func TestConnectedComponents_Empty(t *testing.T) {
	result, err := ConnectedComponents(graph.New(false))
	if err != nil {
		t.Fatalf("ConnectedComponents failed: %v", err)
	}
	if result.Count() != 0 || result.Largest != nil {
		t.Errorf("expected no components, got %d (largest %v)", result.Count(), result.Largest)
	}
}

func TestConnectedComponents_NilGraph(t *testing.T) {
	if _, err := ConnectedComponents(nil); !errors.Is(err, ErrNilGraph) {
		t.Errorf("expected ErrNilGraph, got %v", err)
	}
}

func TestConnectedComponents_Mixed(t *testing.T) {
	g := buildGraph(t, false,
		[2]string{"a", "b"}, [2]string{"b", "c"},
		[2]string{"x", "y"},
	)
	addNodes(t, g, "lonely")

	result, err := ConnectedComponents(g)
	if err != nil {
		t.Fatalf("ConnectedComponents failed: %v", err)
	}

	if result.Count() != 3 {
		t.Fatalf("expected 3 components, got %d", result.Count())
	}
	if got := sortedKeys(t, g, result.Largest.Nodes); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("largest component = %v", got)
	}
	if result.NodeComponent[nodeID(t, g, "x")] != result.NodeComponent[nodeID(t, g, "y")] {
		t.Error("x and y should share a component")
	}
	if result.Components[2].Size != 1 {
		t.Errorf("isolated node component size = %d", result.Components[2].Size)
	}
}

func TestConnectedComponents_DirectedIsWeak(t *testing.T) {
	// a -> b <- c is weakly connected
	g := buildGraph(t, true, [2]string{"a", "b"}, [2]string{"c", "b"})

	count, err := CountComponents(g)
	if err != nil {
		t.Fatalf("CountComponents failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected one weak component, got %d", count)
	}
}

func TestComponentProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("components partition the nodes", prop.ForAll(
		func(codes []int) bool {
			g := graphFromCodes(codes)
			result, err := ConnectedComponents(g)
			if err != nil {
				return false
			}
			total := 0
			for _, c := range result.Components {
				total += c.Size
			}
			return total == g.NodeCount() && len(result.NodeComponent) == g.NodeCount()
		},
		gen.SliceOf(gen.IntRange(0, 99)),
	))

	properties.Property("edges never cross components", prop.ForAll(
		func(codes []int) bool {
			g := graphFromCodes(codes)
			result, err := ConnectedComponents(g)
			if err != nil {
				return false
			}
			for _, e := range g.Edges() {
				if result.NodeComponent[e.FromNodeID] != result.NodeComponent[e.ToNodeID] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 99)),
	))

	properties.TestingRun(t)
}

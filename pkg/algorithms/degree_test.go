package algorithms

import (
	"math"
	"reflect"
	"testing"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDegreeDistribution_Star(t *testing.T) {
	g := buildGraph(t, false,
		[2]string{"hub", "a"}, [2]string{"hub", "b"}, [2]string{"hub", "c"}, [2]string{"hub", "d"},
	)

	stats, err := DegreeDistribution(g)
	if err != nil {
		t.Fatalf("DegreeDistribution failed: %v", err)
	}

	if stats.Min != 1 || stats.Max != 4 {
		t.Errorf("min/max = %d/%d, want 1/4", stats.Min, stats.Max)
	}
	if !almostEqual(stats.Mean, 8.0/5.0) {
		t.Errorf("mean = %f, want 1.6", stats.Mean)
	}
	if !reflect.DeepEqual(stats.Histogram, map[int]int{1: 4, 4: 1}) {
		t.Errorf("histogram = %v", stats.Histogram)
	}
	if !reflect.DeepEqual(stats.Degrees, []int{4, 1, 1, 1, 1}) {
		t.Errorf("per-node degrees = %v", stats.Degrees)
	}
}

func TestDegreeDistribution_Empty(t *testing.T) {
	stats, err := DegreeDistribution(graph.New(false))
	if err != nil {
		t.Fatalf("DegreeDistribution failed: %v", err)
	}
	if stats.Mean != 0 || len(stats.Histogram) != 0 {
		t.Errorf("unexpected stats for empty graph: %+v", stats)
	}
}

func TestAverageInOutDegree(t *testing.T) {
	g := buildGraph(t, true,
		[2]string{"a", "b"}, [2]string{"a", "c"}, [2]string{"b", "c"},
	)

	in, err := AverageInDegree(g)
	if err != nil {
		t.Fatal(err)
	}
	out, err := AverageOutDegree(g)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(in, 1.0) || !almostEqual(out, 1.0) {
		t.Errorf("avg in/out = %f/%f, want 1/1", in, out)
	}
}

func TestDensity(t *testing.T) {
	tests := []struct {
		name string
		g    *graph.Graph
		want float64
	}{
		{"undirected triangle", buildGraph(t, false, cycleEdges(3)...), 1.0},
		{"directed triangle", buildGraph(t, true, cycleEdges(3)...), 0.5},
		{"undirected path of 4", buildGraph(t, false, pathEdges(4)...), 0.5},
		{"empty", graph.New(true), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Density(tt.g)
			if err != nil {
				t.Fatalf("Density failed: %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("Density = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDegreeCentrality(t *testing.T) {
	g := buildGraph(t, true,
		[2]string{"a", "b"}, [2]string{"c", "b"}, [2]string{"d", "b"}, [2]string{"b", "a"},
	)

	in, err := InDegreeCentrality(g)
	if err != nil {
		t.Fatal(err)
	}
	b := nodeID(t, g, "b")
	if !almostEqual(in[b], 1.0) {
		t.Errorf("in-degree centrality of b = %f, want 1", in[b])
	}

	out, _ := OutDegreeCentrality(g)
	if !almostEqual(out[b], 1.0/3.0) {
		t.Errorf("out-degree centrality of b = %f, want 1/3", out[b])
	}

	top := TopNodes(g, in, 2)
	if len(top) != 2 || top[0].Key != "b" || top[1].Key != "a" {
		t.Errorf("top in-degree = %+v", top)
	}
}

func TestDegreeCentrality_SingleNode(t *testing.T) {
	g := graph.New(false)
	addNodes(t, g, "only")

	scores, err := DegreeCentrality(g)
	if err != nil {
		t.Fatal(err)
	}
	if scores[1] != 1.0 {
		t.Errorf("single node centrality = %f, want 1", scores[1])
	}
}

func TestDegreeScores(t *testing.T) {
	g := buildGraph(t, true, [2]string{"a", "b"}, [2]string{"a", "c"})
	scores := DegreeScores(g, g.OutDegree)
	if scores[nodeID(t, g, "a")] != 2 || scores[nodeID(t, g, "b")] != 0 {
		t.Errorf("unexpected scores %v", scores)
	}
}

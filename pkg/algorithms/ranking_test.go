package algorithms

import (
	"testing"
)

func TestTopNodes_OrderAndTies(t *testing.T) {
	scores := map[uint64]float64{
		1: 0.5,
		2: 0.9,
		3: 0.5,
		4: 0.1,
		5: 0.9,
	}

	top := TopNodes(nil, scores, 3)
	want := []uint64{2, 5, 1}
	if len(top) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(top))
	}
	for i, id := range want {
		if top[i].NodeID != id {
			t.Errorf("position %d: got node %d, want %d (%+v)", i, top[i].NodeID, id, top)
		}
	}
}

func TestTopNodes_Bounds(t *testing.T) {
	scores := map[uint64]float64{1: 1, 2: 2}

	if got := TopNodes(nil, scores, 0); got != nil {
		t.Errorf("k=0 should return nil, got %v", got)
	}
	if got := TopNodes(nil, nil, 5); got != nil {
		t.Errorf("empty scores should return nil, got %v", got)
	}
	if got := TopNodes(nil, scores, 10); len(got) != 2 {
		t.Errorf("k larger than input should return all, got %d", len(got))
	}
}

func TestTopNodes_FillsKeys(t *testing.T) {
	g := buildGraph(t, false, [2]string{"alpha", "beta"})
	top := TopNodes(g, map[uint64]float64{1: 3, 2: 4}, 2)
	if top[0].Key != "beta" || top[1].Key != "alpha" {
		t.Errorf("keys not filled: %+v", top)
	}
}

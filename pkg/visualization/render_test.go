package visualization

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

func TestSampleSubgraph(t *testing.T) {
	g := buildGraph(t, false,
		[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "d"}, [2]string{"a", "d"})

	sample := SampleSubgraph(g, 3)
	assert.Equal(t, 3, sample.NodeCount())
	assert.Equal(t, 2, sample.EdgeCount(), "only edges inside the first three nodes")

	keys := []string{}
	for _, n := range sample.Nodes() {
		keys = append(keys, n.Key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	assert.Equal(t, 4, SampleSubgraph(g, 100).NodeCount())
	assert.Equal(t, 0, SampleSubgraph(g, 0).NodeCount())
}

func TestSampleNeighbourhood(t *testing.T) {
	// Star around "hub" plus a tail hanging off leaf l1
	g := buildGraph(t, false,
		[2]string{"x", "y"},
		[2]string{"hub", "l1"}, [2]string{"hub", "l2"}, [2]string{"hub", "l3"},
		[2]string{"l1", "t1"}, [2]string{"t1", "t2"})

	sample, err := SampleNeighbourhood(g, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, sample.NodeCount())

	for _, key := range []string{"hub", "l1", "l2", "l3", "t1"} {
		_, err := sample.GetNodeByKey(key)
		assert.NoError(t, err, "expected %s in sample", key)
	}
	_, err = sample.GetNodeByKey("x")
	assert.True(t, graph.IsNotFound(err), "other components are not sampled")

	// The level is cut by node ID when it overflows
	small, err := SampleNeighbourhood(g, 2, 2)
	require.NoError(t, err)
	_, err = small.GetNodeByKey("l1")
	assert.NoError(t, err)

	empty, err := SampleNeighbourhood(g, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.NodeCount())
}

func TestBin(t *testing.T) {
	bins := Bin([]int{1, 1, 2, 3, 4, 5}, 4)
	require.Len(t, bins, 4)

	assert.Equal(t, 1.0, bins[0].Lo)
	assert.Equal(t, 5.0, bins[3].Hi)

	counts := []int{}
	total := 0
	for _, b := range bins {
		counts = append(counts, b.Count)
		total += b.Count
	}
	// width 1: [1,2) [2,3) [3,4) [4,5]
	assert.Equal(t, []int{2, 1, 1, 2}, counts)
	assert.Equal(t, 6, total)
}

func TestBin_Degenerate(t *testing.T) {
	assert.Nil(t, Bin(nil, 30))
	assert.Nil(t, Bin([]int{1}, 0))

	bins := Bin([]int{3, 3, 3}, 30)
	require.Len(t, bins, 30)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 2.5, bins[0].Lo)
	assert.Equal(t, 3.5, bins[29].Hi)
}

func TestRenderNetworkSVG(t *testing.T) {
	g := buildGraph(t, true, [2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "c"})
	positions := map[uint64]Position{
		1: {X: 10, Y: 10},
		2: {X: 50.5, Y: 20},
		3: {X: 90, Y: 90},
	}

	opts := DefaultNetworkOptions("Sample <1000>")
	opts.ArrowHeads = true
	svg := RenderNetworkSVG(g, positions, opts)

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, 3, strings.Count(svg, "<circle"))
	assert.Equal(t, 2, strings.Count(svg, "<line"), "self-loops are not drawn")
	assert.Contains(t, svg, `x1="10" y1="10" x2="50.5" y2="20"`)
	assert.Contains(t, svg, "Sample &lt;1000&gt;")
	assert.Contains(t, svg, `marker-end="url(#arrow)"`)

	// Missing positions drop the node and its edges
	delete(positions, 3)
	svg = RenderNetworkSVG(g, positions, DefaultNetworkOptions(""))
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	assert.Equal(t, 1, strings.Count(svg, "<line"))
	assert.NotContains(t, svg, "marker-end")
}

func TestRenderHistogramSVG(t *testing.T) {
	bins := Bin([]int{1, 2, 2, 3, 3, 3}, 3)
	svg := RenderHistogramSVG(bins, DefaultHistogramOptions("Degree distribution - lastfm"))

	assert.Equal(t, 3, strings.Count(svg, "<rect"))
	assert.Contains(t, svg, "Degree distribution - lastfm")
	assert.Contains(t, svg, ">Degree</text>")
	assert.Contains(t, svg, ">Frequency</text>")
	assert.Contains(t, svg, `fill="skyblue"`)

	empty := RenderHistogramSVG(nil, DefaultHistogramOptions(""))
	assert.Equal(t, 0, strings.Count(empty, "<rect"))
	assert.True(t, strings.HasSuffix(empty, "</svg>"))
}

func TestNum(t *testing.T) {
	cases := map[float64]string{
		0:      "0",
		10:     "10",
		50.5:   "50.5",
		1.234:  "1.23",
		100.10: "100.1",
	}
	for in, want := range cases {
		assert.Equal(t, want, num(in))
	}
}

func TestNewLayout(t *testing.T) {
	for name, want := range map[string]any{
		"":                 &ForceDirectedLayout{},
		LayoutForce:        &ForceDirectedLayout{},
		LayoutCircular:     &CircularLayout{},
		LayoutHierarchical: &HierarchicalLayout{},
	} {
		layout, err := NewLayout(name, &LayoutConfig{Width: 100, Height: 100})
		require.NoError(t, err)
		assert.IsType(t, want, layout, "layout %q", name)
	}

	_, err := NewLayout("spiral", &LayoutConfig{})
	assert.Error(t, err)
}

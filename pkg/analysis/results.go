package analysis

import (
	"time"

	"github.com/dd0wney/cluso-graphreport/pkg/algorithms"
	"github.com/dd0wney/cluso-graphreport/pkg/loader"
	"github.com/dd0wney/cluso-graphreport/pkg/visualization"
)

// Results is everything one run produced. Datasets appear in configuration
// order regardless of which finished first.
type Results struct {
	RunID      string            `json:"run_id"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	TopK       int               `json:"top_k"`
	Social     []*SocialResult   `json:"social"`
	Citation   []*CitationResult `json:"citation"`
	Failures   []Failure         `json:"failures,omitempty"`
}

// Duration returns the wall time of the run
func (r *Results) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Failure records a dataset that could not be analysed
type Failure struct {
	Dataset string `json:"dataset"`
	Error   string `json:"error"`
}

// EdgeRef names an edge by the dataset keys of its endpoints
type EdgeRef struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SocialResult holds the measures computed for an undirected social network
type SocialResult struct {
	Name      string       `json:"name"`
	Path      string       `json:"path"`
	Load      loader.Stats `json:"load"`
	Nodes     int          `json:"nodes"`
	Edges     int          `json:"edges"`
	SelfLoops int          `json:"self_loops"`

	AverageDegree float64                      `json:"average_degree"`
	Degree        *algorithms.DegreeStats      `json:"degree"`
	Histogram     []visualization.HistogramBin `json:"histogram"`
	TopDegree     []algorithms.RankedNode      `json:"top_degree"`

	Components       int `json:"components"`
	LargestComponent int `json:"largest_component"`

	// Average distance inside the largest component
	PathLength      *algorithms.PathLengthResult `json:"path_length,omitempty"`
	PathLengthError string                       `json:"path_length_error,omitempty"`

	BridgeCount int       `json:"bridge_count"`
	Bridges     []EdgeRef `json:"bridges"` // first few, in discovery order

	Triangles         int     `json:"triangles"`
	AverageClustering float64 `json:"average_clustering"`

	Communities int     `json:"communities"`
	Modularity  float64 `json:"modularity"`

	TopPageRank    []algorithms.RankedNode `json:"top_pagerank"`
	TopBetweenness []algorithms.RankedNode `json:"top_betweenness,omitempty"`
	TopCloseness   []algorithms.RankedNode `json:"top_closeness,omitempty"`

	// HubPath is a shortest path between the two highest-degree nodes
	HubPath []string `json:"hub_path,omitempty"`

	SampleNodes  int    `json:"sample_nodes"`
	NetworkSVG   string `json:"network_svg,omitempty"`
	HistogramSVG string `json:"histogram_svg,omitempty"`

	Elapsed time.Duration `json:"elapsed"`
}

// CitationResult holds the measures computed for a directed citation network
type CitationResult struct {
	Name  string       `json:"name"`
	Path  string       `json:"path"`
	Load  loader.Stats `json:"load"`
	Nodes int          `json:"nodes"`
	Edges int          `json:"edges"`

	Density          float64 `json:"density"`
	AverageInDegree  float64 `json:"average_in_degree"`
	AverageOutDegree float64 `json:"average_out_degree"`

	StrongComponents       int `json:"strong_components"`
	WeakComponents         int `json:"weak_components"`
	LargestStrongComponent int `json:"largest_strong_component"`
	CondensationEdges      int `json:"condensation_edges"`

	// Cycles is the number of independent cycles found by DFS (one per back edge)
	Cycles     int                    `json:"cycles"`
	CycleStats *algorithms.CycleStats `json:"cycle_stats,omitempty"`
	IsDAG      bool                   `json:"is_dag"`

	// LongestChain is the longest citation path in edges, set only for DAGs
	LongestChain int `json:"longest_chain,omitempty"`

	PathLength      *algorithms.PathLengthResult `json:"path_length,omitempty"`
	PathLengthError string                       `json:"path_length_error,omitempty"`

	TopInCentrality  []algorithms.RankedNode `json:"top_in_centrality"`
	TopOutCentrality []algorithms.RankedNode `json:"top_out_centrality"`
	TopInDegree      []algorithms.RankedNode `json:"top_in_degree"`
	TopOutDegree     []algorithms.RankedNode `json:"top_out_degree"`
	TopPageRank      []algorithms.RankedNode `json:"top_pagerank"`

	SampleNodes int    `json:"sample_nodes"`
	NetworkSVG  string `json:"network_svg,omitempty"`

	Elapsed time.Duration `json:"elapsed"`
}

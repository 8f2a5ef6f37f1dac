// Package report turns analysis results into artefacts: the HTML report, a
// results snapshot, a terminal summary and uploads of all of these.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dd0wney/cluso-graphreport/pkg/algorithms"
	"github.com/dd0wney/cluso-graphreport/pkg/analysis"
)

// DefaultTitle heads the HTML report
const DefaultTitle = "Graph Analysis Results"

//go:embed templates/report.html.tmpl
var reportTemplate string

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

// socialColumns are the overview table columns, one per socialCells entry
var socialColumns = []string{"Nodes", "Edges", "Avg degree", "Components", "Avg path length", "Bridges"}

// Metric is one labelled, formatted value
type Metric struct {
	Label string
	Value string
}

type rankedItem struct {
	Key   string
	Score string
}

type ranking struct {
	Title string
	Items []rankedItem
}

type socialView struct {
	Name         string
	Cells        []string
	Rows         []Metric
	Bridges      []analysis.EdgeRef
	BridgeCount  int
	Rankings     []ranking
	NetworkSVG   template.HTML
	HistogramSVG template.HTML
}

type citationView struct {
	Name       string
	Density    string
	AverageIn  string
	AverageOut string
	Strong     int
	Weak       int
	Cycles     int
	PathLength string
	Rows       []Metric
	Rankings   []ranking
	NetworkSVG template.HTML
}

type reportView struct {
	Title         string
	RunID         string
	Generated     string
	Duration      string
	Year          int
	SocialColumns []string
	Social        []socialView
	Citation      []citationView
	Failures      []analysis.Failure
}

// RenderHTML writes the HTML report for res to w
func RenderHTML(w io.Writer, res *analysis.Results) error {
	return reportTmpl.Execute(w, newReportView(res))
}

// RenderHTMLBytes renders the report into memory
func RenderHTMLBytes(res *analysis.Results) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, res); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func newReportView(res *analysis.Results) reportView {
	generated := res.FinishedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	view := reportView{
		Title:         DefaultTitle,
		RunID:         res.RunID,
		Generated:     generated.UTC().Format(time.RFC1123),
		Duration:      res.Duration().Round(time.Millisecond).String(),
		Year:          generated.Year(),
		SocialColumns: socialColumns,
		Failures:      res.Failures,
	}
	for _, s := range res.Social {
		view.Social = append(view.Social, newSocialView(s, res.TopK))
	}
	for _, c := range res.Citation {
		view.Citation = append(view.Citation, newCitationView(c, res.TopK))
	}
	return view
}

func newSocialView(s *analysis.SocialResult, k int) socialView {
	v := socialView{
		Name:        s.Name,
		Bridges:     s.Bridges,
		BridgeCount: s.BridgeCount,
		Cells: []string{
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Edges),
			fixed(s.AverageDegree, 2),
			strconv.Itoa(s.Components),
			socialPathLength(s),
			strconv.Itoa(s.BridgeCount),
		},
		// SVGs are produced by pkg/visualization with every label escaped
		NetworkSVG:   template.HTML(s.NetworkSVG),
		HistogramSVG: template.HTML(s.HistogramSVG),
	}

	v.Rows = SocialMetrics(s)

	v.Rankings = appendRanking(v.Rankings, fmt.Sprintf("Top %d nodes by degree", k), s.TopDegree, 0)
	v.Rankings = appendRanking(v.Rankings, fmt.Sprintf("Top %d nodes by PageRank", k), s.TopPageRank, 6)
	v.Rankings = appendRanking(v.Rankings, fmt.Sprintf("Top %d nodes by betweenness", k), s.TopBetweenness, 4)
	v.Rankings = appendRanking(v.Rankings, fmt.Sprintf("Top %d nodes by closeness", k), s.TopCloseness, 4)
	return v
}

// SocialMetrics lists the scalar measures of a social network in report order
func SocialMetrics(s *analysis.SocialResult) []Metric {
	rows := []Metric{
		{"Number of nodes", strconv.Itoa(s.Nodes)},
		{"Number of edges", strconv.Itoa(s.Edges)},
		{"Average degree", fixed(s.AverageDegree, 2)},
	}
	if s.Degree != nil {
		rows = append(rows,
			Metric{"Minimum degree", strconv.Itoa(s.Degree.Min)},
			Metric{"Maximum degree", strconv.Itoa(s.Degree.Max)},
		)
	}
	if s.SelfLoops > 0 {
		rows = append(rows, Metric{"Self-loops", strconv.Itoa(s.SelfLoops)})
	}
	rows = append(rows,
		Metric{"Connected components", strconv.Itoa(s.Components)},
		Metric{"Largest component size", strconv.Itoa(s.LargestComponent)},
		Metric{"Average shortest path length (largest component)", socialPathLength(s)},
	)
	if s.PathLength != nil {
		rows = append(rows, Metric{"Diameter (largest component)", strconv.Itoa(s.PathLength.Diameter)})
	}
	rows = append(rows,
		Metric{"Number of bridges", strconv.Itoa(s.BridgeCount)},
		Metric{"Triangles", strconv.Itoa(s.Triangles)},
		Metric{"Average clustering coefficient", fixed(s.AverageClustering, 4)},
		Metric{"Communities (label propagation)", strconv.Itoa(s.Communities)},
		Metric{"Modularity", fixed(s.Modularity, 4)},
	)
	if len(s.HubPath) > 0 {
		rows = append(rows, Metric{"Shortest path between top hubs", strings.Join(s.HubPath, " → ")})
	}
	if s.Load.Skipped > 0 {
		rows = append(rows, Metric{"Records skipped while loading", strconv.Itoa(s.Load.Skipped)})
	}
	return rows
}

// CitationMetrics lists the scalar measures of a citation network in report
// order
func CitationMetrics(c *analysis.CitationResult) []Metric {
	rows := []Metric{
		{"Number of nodes", strconv.Itoa(c.Nodes)},
		{"Number of edges", strconv.Itoa(c.Edges)},
		{"Density", fixed(c.Density, 4)},
		{"Average in-degree", fixed(c.AverageInDegree, 2)},
		{"Average out-degree", fixed(c.AverageOutDegree, 2)},
		{"Strongly connected components", strconv.Itoa(c.StrongComponents)},
		{"Largest strongly connected component", strconv.Itoa(c.LargestStrongComponent)},
		{"Weakly connected components", strconv.Itoa(c.WeakComponents)},
		{"Condensation edges", strconv.Itoa(c.CondensationEdges)},
		{"Cycles found", strconv.Itoa(c.Cycles)},
		{"Acyclic", strconv.FormatBool(c.IsDAG)},
	}
	if c.IsDAG {
		rows = append(rows, Metric{"Longest citation chain", strconv.Itoa(c.LongestChain)})
	}
	if c.CycleStats != nil {
		rows = append(rows,
			Metric{"Shortest enumerated cycle", strconv.Itoa(c.CycleStats.ShortestCycle)},
			Metric{"Longest enumerated cycle", strconv.Itoa(c.CycleStats.LongestCycle)},
		)
	}
	rows = append(rows, Metric{"Average shortest path length", pathLength(c.PathLength, c.PathLengthError)})
	if c.Load.Skipped > 0 {
		rows = append(rows, Metric{"Records skipped while loading", strconv.Itoa(c.Load.Skipped)})
	}
	return rows
}

func newCitationView(c *analysis.CitationResult, k int) citationView {
	v := citationView{
		Name:       c.Name,
		Density:    fixed(c.Density, 4),
		AverageIn:  fixed(c.AverageInDegree, 2),
		AverageOut: fixed(c.AverageOutDegree, 2),
		Strong:     c.StrongComponents,
		Weak:       c.WeakComponents,
		Cycles:     c.Cycles,
		PathLength: pathLength(c.PathLength, c.PathLengthError),
		Rows:       CitationMetrics(c),
		NetworkSVG: template.HTML(c.NetworkSVG),
	}
	v.Rankings = appendRanking(v.Rankings, fmt.Sprintf("Top %d nodes by in-degree centrality (normalised)", k), c.TopInCentrality, 4)
	v.Rankings = appendRanking(v.Rankings, fmt.Sprintf("Top %d nodes by out-degree centrality (normalised)", k), c.TopOutCentrality, 4)
	v.Rankings = appendRanking(v.Rankings, fmt.Sprintf("Top %d nodes by in-degree (absolute)", k), c.TopInDegree, 0)
	v.Rankings = appendRanking(v.Rankings, fmt.Sprintf("Top %d nodes by out-degree (absolute)", k), c.TopOutDegree, 0)
	v.Rankings = appendRanking(v.Rankings, fmt.Sprintf("Top %d nodes by PageRank", k), c.TopPageRank, 6)
	return v
}

// appendRanking adds a ranked list unless it is empty. Scores are printed
// with the given number of decimals.
func appendRanking(out []ranking, title string, nodes []algorithms.RankedNode, decimals int) []ranking {
	if len(nodes) == 0 {
		return out
	}
	r := ranking{Title: title, Items: make([]rankedItem, len(nodes))}
	for i, n := range nodes {
		r.Items[i] = rankedItem{Key: n.Key, Score: fixed(n.Score, decimals)}
	}
	return append(out, r)
}

func socialPathLength(s *analysis.SocialResult) string {
	return pathLength(s.PathLength, s.PathLengthError)
}

func pathLength(pl *algorithms.PathLengthResult, msg string) string {
	switch {
	case pl == nil && msg != "":
		return msg
	case pl == nil:
		return "n/a"
	case pl.Estimated:
		return fmt.Sprintf("%s (estimated from %d sources)", fixed(pl.Average, 2), pl.Sources)
	default:
		return fixed(pl.Average, 2)
	}
}

func fixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

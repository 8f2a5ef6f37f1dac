package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-graphreport/pkg/algorithms"
	"github.com/dd0wney/cluso-graphreport/pkg/analysis"
	"github.com/dd0wney/cluso-graphreport/pkg/loader"
	"github.com/dd0wney/cluso-graphreport/pkg/visualization"
)

func fixtureResults() *analysis.Results {
	started := time.Date(2024, 11, 5, 9, 30, 0, 0, time.UTC)
	return &analysis.Results{
		RunID:      "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
		TopK:       2,
		Social: []*analysis.SocialResult{{
			Name:          "lastfm",
			Path:          "data/lastfm_asia_edges.csv",
			Load:          loader.Stats{Records: 7, Skipped: 1, Duplicates: 1},
			Nodes:         6,
			Edges:         7,
			AverageDegree: 2.3333,
			Degree:        &algorithms.DegreeStats{Min: 2, Max: 3, Mean: 2.3333, Histogram: map[int]int{2: 4, 3: 2}},
			Histogram:     []visualization.HistogramBin{{Lo: 2, Hi: 2.5, Count: 4}, {Lo: 2.5, Hi: 3, Count: 2}},
			TopDegree: []algorithms.RankedNode{
				{NodeID: 3, Key: "c", Score: 3},
				{NodeID: 4, Key: "d", Score: 3},
			},
			Components:       1,
			LargestComponent: 6,
			PathLength:       &algorithms.PathLengthResult{Average: 1.8, Sources: 6, Pairs: 30, Diameter: 3},
			BridgeCount:      1,
			Bridges:          []analysis.EdgeRef{{From: "c", To: "d"}},
			Triangles:        2,
			HubPath:          []string{"c", "d"},
			SampleNodes:      6,
			NetworkSVG:       `<svg id="net"></svg>`,
			HistogramSVG:     `<svg id="hist"></svg>`,
			Elapsed:          20 * time.Millisecond,
		}},
		Citation: []*analysis.CitationResult{{
			Name:             "scientometrics",
			Nodes:            4,
			Edges:            4,
			Density:          1.0 / 3.0,
			AverageInDegree:  1,
			AverageOutDegree: 1,
			StrongComponents: 2,
			WeakComponents:   1,
			Cycles:           1,
			PathLengthError:  "graph is not strongly connected; the average shortest path length is undefined",
			TopInCentrality:  []algorithms.RankedNode{{NodeID: 1, Key: "Smith <1990>", Score: 1.0 / 3.0}},
			TopOutDegree:     []algorithms.RankedNode{{NodeID: 3, Key: "c", Score: 2}},
		}},
		Failures: []analysis.Failure{{Dataset: "deezer", Error: "open deezer.csv: no such file or directory"}},
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, fixtureResults()))
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"background-color: #5c2d91",
		`class="results-table"`,
		"<h3>Network: lastfm</h3>",
		"<td>Average shortest path length (largest component)</td><td>1.80</td>",
		"<td>Number of bridges</td><td>1</td>",
		"<td>Records skipped while loading</td><td>1</td>",
		"<li>c &ndash; d</li>",
		"Top 2 nodes by degree",
		"<li>Node c: 3</li>",
		`<svg id="net"></svg>`,
		`<svg id="hist"></svg>`,
		"<h2>Citation network: scientometrics</h2>",
		"<strong>Density:</strong> 0.3333",
		"graph is not strongly connected",
		"Top 2 nodes by in-degree centrality (normalised)",
		"Node Smith &lt;1990&gt;: 0.3333",
		"<li>Node c: 2</li>",
		"All measures",
		"Datasets not analysed",
		"<strong>deezer</strong>",
		"Run run-1",
		"&copy; 2024",
	} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "Top 2 nodes by betweenness", "empty rankings are omitted")
}

func TestRenderHTMLEmptyResults(t *testing.T) {
	out, err := RenderHTMLBytes(&analysis.Results{RunID: "empty"})
	require.NoError(t, err)
	html := string(out)
	assert.NotContains(t, html, "Social networks")
	assert.NotContains(t, html, "Datasets not analysed")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(html), "</html>"))
}

func TestPathLengthText(t *testing.T) {
	assert.Equal(t, "n/a", pathLength(nil, ""))
	assert.Equal(t, "not connected", pathLength(nil, "not connected"))
	assert.Equal(t, "2.50", pathLength(&algorithms.PathLengthResult{Average: 2.5}, ""))
	assert.Equal(t, "2.50 (estimated from 100 sources)",
		pathLength(&algorithms.PathLengthResult{Average: 2.5, Sources: 100, Estimated: true}, ""))
}

func TestSummary(t *testing.T) {
	out := Summary(fixtureResults())

	for _, want := range []string{"run-1", "lastfm", "scientometrics", "1.80", "0.3333", "deezer"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "2 analysed, 1 failed")
}

func TestCitationMetrics(t *testing.T) {
	c := fixtureResults().Citation[0]
	c.CycleStats = &algorithms.CycleStats{TotalCycles: 1, ShortestCycle: 3, LongestCycle: 3}

	got := map[string]string{}
	for _, m := range CitationMetrics(c) {
		got[m.Label] = m.Value
	}
	assert.Equal(t, "0.3333", got["Density"])
	assert.Equal(t, "2", got["Strongly connected components"])
	assert.Equal(t, "false", got["Acyclic"])
	assert.NotContains(t, got, "Longest citation chain")
	assert.Equal(t, "3", got["Longest enumerated cycle"])
	assert.Contains(t, got["Average shortest path length"], "not strongly connected")
	assert.NotContains(t, got, "Records skipped while loading")
}

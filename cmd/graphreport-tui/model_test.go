package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-graphreport/pkg/algorithms"
	"github.com/dd0wney/cluso-graphreport/pkg/analysis"
)

func sampleResults() *analysis.Results {
	return &analysis.Results{
		RunID: "run-7",
		Social: []*analysis.SocialResult{{
			Name:        "facebook",
			Nodes:       4039,
			Edges:       88234,
			BridgeCount: 75,
			TopDegree:   []algorithms.RankedNode{{NodeID: 108, Key: "107", Score: 1045}},
		}},
		Citation: []*analysis.CitationResult{{
			Name:             "scientometrics",
			Nodes:            3084,
			StrongComponents: 2678,
		}},
		Failures: []analysis.Failure{{Dataset: "deezer", Error: "file not found"}},
	}
}

func press(m tea.Model, k tea.KeyType) tea.Model {
	next, _ := m.Update(tea.KeyMsg{Type: k})
	return next
}

func TestBuildPages(t *testing.T) {
	pages := buildPages(sampleResults())
	require.Len(t, pages, 3)
	assert.Equal(t, "facebook", pages[0].title)
	assert.Equal(t, "scientometrics", pages[1].title)
	assert.Equal(t, "file not found", pages[2].failure)
	assert.Equal(t, "Number of nodes", pages[0].metrics[0].Label)
	assert.Equal(t, "4039", pages[0].metrics[0].Value)
}

func TestTabNavigation(t *testing.T) {
	var m tea.Model = initialModel(sampleResults())
	assert.Equal(t, 0, m.(model).current)
	assert.Contains(t, m.View(), "Number of bridges")
	assert.Contains(t, m.View(), "1045")

	m = press(m, tea.KeyTab)
	assert.Equal(t, 1, m.(model).current)
	assert.Contains(t, m.View(), "Strongly connected components")

	m = press(m, tea.KeyTab)
	assert.Contains(t, m.View(), "file not found")

	m = press(m, tea.KeyTab)
	assert.Equal(t, 0, m.(model).current, "tabs wrap around")

	m = press(m, tea.KeyShiftTab)
	assert.Equal(t, 2, m.(model).current)
}

func TestQuit(t *testing.T) {
	m := initialModel(sampleResults())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestEmptySnapshot(t *testing.T) {
	m := initialModel(&analysis.Results{RunID: "empty"})
	assert.Contains(t, m.View(), "no datasets")

	next := press(m, tea.KeyTab)
	assert.Equal(t, 0, next.(model).current)
}

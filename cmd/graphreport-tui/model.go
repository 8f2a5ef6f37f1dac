package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-graphreport/pkg/algorithms"
	"github.com/dd0wney/cluso-graphreport/pkg/analysis"
	"github.com/dd0wney/cluso-graphreport/pkg/report"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5C2D91")).
			Padding(0, 1).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#B48EE0")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#B48EE0")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5C2D91")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	rankBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00AA88")).
			Padding(0, 1).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab", "next dataset"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab", "prev dataset"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.ShiftTab, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab},
		{k.Up, k.Down},
		{k.Quit},
	}
}

// page is one tab: a dataset or the failure list
type page struct {
	title    string
	metrics  []report.Metric
	rankings []rankedList
	failure  string
}

type rankedList struct {
	title    string
	nodes    []algorithms.RankedNode
	decimals int
}

type model struct {
	res     *analysis.Results
	pages   []page
	current int
	metrics table.Model
	help    help.Model
	keys    keyMap
	width   int
	height  int
}

func buildPages(res *analysis.Results) []page {
	var pages []page
	for _, s := range res.Social {
		pages = append(pages, page{
			title:   s.Name,
			metrics: report.SocialMetrics(s),
			rankings: []rankedList{
				{"Degree", s.TopDegree, 0},
				{"PageRank", s.TopPageRank, 6},
				{"Betweenness", s.TopBetweenness, 4},
			},
		})
	}
	for _, c := range res.Citation {
		pages = append(pages, page{
			title:   c.Name,
			metrics: report.CitationMetrics(c),
			rankings: []rankedList{
				{"In-degree", c.TopInDegree, 0},
				{"Out-degree", c.TopOutDegree, 0},
				{"PageRank", c.TopPageRank, 6},
			},
		})
	}
	for _, f := range res.Failures {
		pages = append(pages, page{title: f.Dataset + " ✗", failure: f.Error})
	}
	return pages
}

func initialModel(res *analysis.Results) model {
	columns := []table.Column{
		{Title: "Metric", Width: 48},
		{Title: "Value", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#B48EE0")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#5C2D91")).
		Bold(false)
	t.SetStyles(s)

	m := model{
		res:     res,
		pages:   buildPages(res),
		metrics: t,
		help:    help.New(),
		keys:    keys,
	}
	m.loadPage()
	return m
}

// loadPage fills the metrics table from the current page
func (m *model) loadPage() {
	if len(m.pages) == 0 {
		m.metrics.SetRows(nil)
		return
	}
	p := m.pages[m.current]
	rows := make([]table.Row, 0, len(p.metrics))
	for _, metric := range p.metrics {
		rows = append(rows, table.Row{metric.Label, metric.Value})
	}
	m.metrics.SetRows(rows)
	m.metrics.GotoTop()
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			if len(m.pages) > 0 {
				m.current = (m.current + 1) % len(m.pages)
				m.loadPage()
			}
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			if len(m.pages) > 0 {
				m.current = (m.current - 1 + len(m.pages)) % len(m.pages)
				m.loadPage()
			}
			return m, nil
		}
	}

	m.metrics, cmd = m.metrics.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("graphreport · run " + m.res.RunID))
	s.WriteString("\n\n")

	if len(m.pages) == 0 {
		s.WriteString(contentStyle.Render("The snapshot contains no datasets"))
	} else {
		s.WriteString(m.renderTabs())
		s.WriteString("\n")
		s.WriteString(m.renderPage())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderTabs() string {
	tabs := make([]string, 0, len(m.pages))
	for i, p := range m.pages {
		if i == m.current {
			tabs = append(tabs, activeTabStyle.Render(p.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(p.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) renderPage() string {
	p := m.pages[m.current]
	if p.failure != "" {
		return contentStyle.Render(errorStyle.Render("✗ " + p.failure))
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(p.title))
	s.WriteString("\n\n")
	s.WriteString(m.metrics.View())
	s.WriteString("\n\n")

	boxes := make([]string, 0, len(p.rankings))
	for _, r := range p.rankings {
		if len(r.nodes) == 0 {
			continue
		}
		boxes = append(boxes, rankBoxStyle.Render(renderRanking(r)))
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))

	return contentStyle.Render(s.String())
}

func renderRanking(r rankedList) string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Bold(true).Render(r.title))
	for i, n := range r.nodes {
		fmt.Fprintf(&s, "\n%d. %-14s %s", i+1, n.Key, strconv.FormatFloat(n.Score, 'f', r.decimals, 64))
	}
	return s.String()
}

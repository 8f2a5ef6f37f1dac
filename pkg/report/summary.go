package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-graphreport/pkg/analysis"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#5C2D91")).
				Padding(0, 1)

	summaryHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#5C2D91")).
				Padding(0, 1)

	summaryCellStyle = lipgloss.NewStyle().Padding(0, 1)

	summaryErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF5555"))

	summaryMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888"))
)

// Summary renders a short terminal overview of res
func Summary(res *analysis.Results) string {
	var b strings.Builder

	b.WriteString(summaryTitleStyle.Render("graphreport " + res.RunID))
	b.WriteString("\n")
	b.WriteString(summaryMutedStyle.Render(fmt.Sprintf("%d analysed, %d failed in %s",
		len(res.Social)+len(res.Citation), len(res.Failures), res.Duration().Round(time.Millisecond))))
	b.WriteString("\n\n")

	if len(res.Social) > 0 {
		rows := make([][]string, 0, len(res.Social))
		for _, s := range res.Social {
			rows = append(rows, []string{
				s.Name,
				strconv.Itoa(s.Nodes),
				strconv.Itoa(s.Edges),
				fixed(s.AverageDegree, 2),
				strconv.Itoa(s.Components),
				shortPathLength(s),
				strconv.Itoa(s.BridgeCount),
			})
		}
		b.WriteString(summaryTable(
			[]string{"social", "nodes", "edges", "avg deg", "comps", "avg path", "bridges"}, rows))
		b.WriteString("\n")
	}

	if len(res.Citation) > 0 {
		rows := make([][]string, 0, len(res.Citation))
		for _, c := range res.Citation {
			rows = append(rows, []string{
				c.Name,
				strconv.Itoa(c.Nodes),
				strconv.Itoa(c.Edges),
				fixed(c.Density, 4),
				strconv.Itoa(c.StrongComponents),
				strconv.Itoa(c.WeakComponents),
				strconv.Itoa(c.Cycles),
			})
		}
		b.WriteString(summaryTable(
			[]string{"citation", "nodes", "edges", "density", "scc", "wcc", "cycles"}, rows))
		b.WriteString("\n")
	}

	for _, f := range res.Failures {
		b.WriteString(summaryErrorStyle.Render(fmt.Sprintf("✗ %s: %s", f.Dataset, f.Error)))
		b.WriteString("\n")
	}
	return b.String()
}

func summaryTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(summaryMutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return summaryHeaderStyle
			}
			return summaryCellStyle
		}).
		Render()
}

func shortPathLength(s *analysis.SocialResult) string {
	if s.PathLength == nil {
		return "-"
	}
	return fixed(s.PathLength.Average, 2)
}

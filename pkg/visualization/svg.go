package visualization

import (
	"fmt"
	"html"
	"strings"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// SVGOptions controls chart rendering
type SVGOptions struct {
	Width  float64
	Height float64
	Title  string

	// Network plots
	NodeRadius float64
	NodeColor  string
	EdgeColor  string
	Opacity    float64
	ArrowHeads bool // draw a marker on directed edges

	// Histograms
	BarColor  string
	BarStroke string
	XLabel    string
	YLabel    string
}

// DefaultNetworkOptions mirrors a small-marker, translucent scatter of nodes
func DefaultNetworkOptions(title string) SVGOptions {
	return SVGOptions{
		Width:      800,
		Height:     600,
		Title:      title,
		NodeRadius: 2,
		NodeColor:  "blue",
		EdgeColor:  "#555555",
		Opacity:    0.3,
	}
}

// DefaultHistogramOptions styles a degree distribution chart
func DefaultHistogramOptions(title string) SVGOptions {
	return SVGOptions{
		Width:     640,
		Height:    400,
		Title:     title,
		BarColor:  "skyblue",
		BarStroke: "black",
		XLabel:    "Degree",
		YLabel:    "Frequency",
	}
}

const titleHeight = 24

// RenderNetworkSVG draws g with the given node positions as an inline SVG
// document. Nodes without a position are not drawn, nor are their edges.
func RenderNetworkSVG(g *graph.Graph, positions map[uint64]Position, opts SVGOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`,
		num(opts.Width), num(opts.Height+titleHeight), num(opts.Width), num(opts.Height+titleHeight))
	b.WriteByte('\n')
	writeTitle(&b, opts)

	if opts.ArrowHeads && g.Directed() {
		fmt.Fprintf(&b, `<defs><marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="4" markerHeight="4" orient="auto"><path d="M0,0 L10,5 L0,10 z" fill="%s"/></marker></defs>`,
			html.EscapeString(opts.EdgeColor))
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, `<g transform="translate(0,%d)" stroke="%s" stroke-opacity="%s" stroke-width="0.5">`,
		titleHeight, html.EscapeString(opts.EdgeColor), num(opts.Opacity))
	b.WriteByte('\n')
	marker := ""
	if opts.ArrowHeads && g.Directed() {
		marker = ` marker-end="url(#arrow)"`
	}
	for _, e := range g.Edges() {
		from, okFrom := positions[e.FromNodeID]
		to, okTo := positions[e.ToNodeID]
		if !okFrom || !okTo || e.IsSelfLoop() {
			continue
		}
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`,
			num(from.X), num(from.Y), num(to.X), num(to.Y), marker)
		b.WriteByte('\n')
	}
	b.WriteString("</g>\n")

	fmt.Fprintf(&b, `<g transform="translate(0,%d)" fill="%s" fill-opacity="%s">`,
		titleHeight, html.EscapeString(opts.NodeColor), num(opts.Opacity))
	b.WriteByte('\n')
	for _, id := range g.NodeIDs() {
		pos, ok := positions[id]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s"/>`, num(pos.X), num(pos.Y), num(opts.NodeRadius))
		b.WriteByte('\n')
	}
	b.WriteString("</g>\n</svg>")

	return b.String()
}

// RenderHistogramSVG draws bins as a bar chart with labelled axes
func RenderHistogramSVG(bins []HistogramBin, opts SVGOptions) string {
	const (
		marginLeft   = 56.0
		marginRight  = 16.0
		marginBottom = 44.0
	)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" font-family="sans-serif" font-size="11">`,
		num(opts.Width), num(opts.Height+titleHeight), num(opts.Width), num(opts.Height+titleHeight))
	b.WriteByte('\n')
	writeTitle(&b, opts)

	plotW := opts.Width - marginLeft - marginRight
	plotH := opts.Height - marginBottom
	top := float64(titleHeight)
	baseline := top + plotH

	maxCount := 0
	for _, bin := range bins {
		maxCount = max(maxCount, bin.Count)
	}

	if len(bins) > 0 && maxCount > 0 {
		barW := plotW / float64(len(bins))
		for i, bin := range bins {
			h := plotH * float64(bin.Count) / float64(maxCount)
			fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s"><title>%s-%s: %d</title></rect>`,
				num(marginLeft+float64(i)*barW), num(baseline-h), num(barW), num(h),
				html.EscapeString(opts.BarColor), html.EscapeString(opts.BarStroke),
				num(bin.Lo), num(bin.Hi), bin.Count)
			b.WriteByte('\n')
		}

		// Axis ticks at the range ends and the tallest bar
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="start">%s</text>`,
			num(marginLeft), num(baseline+14), num(bins[0].Lo))
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="end">%s</text>`,
			num(marginLeft+plotW), num(baseline+14), num(bins[len(bins)-1].Hi))
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="end">%d</text>`,
			num(marginLeft-4), num(top+10), maxCount)
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="black"/>`,
		num(marginLeft), num(baseline), num(marginLeft+plotW), num(baseline))
	fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="black"/>`,
		num(marginLeft), num(top), num(marginLeft), num(baseline))
	b.WriteByte('\n')

	fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle">%s</text>`,
		num(marginLeft+plotW/2), num(baseline+34), html.EscapeString(opts.XLabel))
	fmt.Fprintf(&b, `<text transform="translate(14,%s) rotate(-90)" text-anchor="middle">%s</text>`,
		num(top+plotH/2), html.EscapeString(opts.YLabel))
	b.WriteString("\n</svg>")

	return b.String()
}

func writeTitle(b *strings.Builder, opts SVGOptions) {
	if opts.Title == "" {
		return
	}
	fmt.Fprintf(b, `<text x="%s" y="17" text-anchor="middle" font-family="sans-serif" font-size="14">%s</text>`,
		num(opts.Width/2), html.EscapeString(opts.Title))
	b.WriteByte('\n')
}

// num formats coordinates compactly
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// LoadEdgeList reads whitespace separated node pairs, one edge per line.
// Text after '#' is a comment, as are lines starting with '%'. Columns after
// the first two (weights, timestamps) are ignored.
func LoadEdgeList(r io.Reader, opts Options) (*graph.Graph, Stats, error) {
	b := newBuilder(opts)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" || text[0] == '%' {
			continue
		}

		b.stats.Records++
		fields := strings.Fields(text)
		if len(fields) < 2 {
			b.malformed(line, "expected two endpoints")
			continue
		}
		if err := b.edge(line, fields[0], fields[1]); err != nil {
			return nil, b.stats, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, b.stats, fmt.Errorf("read edge list: %w", err)
	}

	return b.g, b.stats, nil
}

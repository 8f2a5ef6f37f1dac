package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

// LoadCSV reads a CSV edge list whose first row is a header. The endpoint
// columns are located by name; any other columns are ignored.
func LoadCSV(r io.Reader, opts Options) (*graph.Graph, Stats, error) {
	b := newBuilder(opts)

	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, b.stats, ErrEmptyInput
	}
	if err != nil {
		return nil, b.stats, fmt.Errorf("read header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		// Strip a UTF-8 byte order mark from the first column
		col = strings.TrimPrefix(strings.TrimSpace(col), "\ufeff")
		colIndex[col] = i
	}

	src, ok := colIndex[opts.SourceColumn]
	if !ok {
		return nil, b.stats, fmt.Errorf("%w: %q", ErrMissingColumn, opts.SourceColumn)
	}
	dst, ok := colIndex[opts.TargetColumn]
	if !ok {
		return nil, b.stats, fmt.Errorf("%w: %q", ErrMissingColumn, opts.TargetColumn)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				b.stats.Records++
				b.malformed(parseErr.Line, parseErr.Err.Error())
				continue
			}
			return nil, b.stats, fmt.Errorf("read csv: %w", err)
		}

		b.stats.Records++
		line, _ := reader.FieldPos(0)
		if src >= len(record) || dst >= len(record) {
			b.malformed(line, "missing column")
			continue
		}
		if err := b.edge(line, record[src], record[dst]); err != nil {
			return nil, b.stats, err
		}
	}

	return b.g, b.stats, nil
}

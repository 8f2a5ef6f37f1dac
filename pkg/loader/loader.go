// Package loader reads edge-list datasets into in-memory graphs.
//
// Three formats are understood: header-driven CSV edge lists, whitespace
// separated edge lists and Pajek .net files. Social networks are loaded as
// simple undirected graphs and citation networks as simple directed graphs;
// repeated edges are counted and skipped. Self-loops are kept.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
	"github.com/dd0wney/cluso-graphreport/pkg/logging"
)

// Supported formats
const (
	FormatCSV      = "csv"
	FormatEdgeList = "edgelist"
	FormatPajek    = "pajek"
)

var (
	// ErrUnknownFormat is returned by LoadFile for a format it cannot parse
	ErrUnknownFormat = errors.New("unknown dataset format")

	// ErrMissingColumn is returned when a CSV header lacks a configured column
	ErrMissingColumn = errors.New("column not found in header")

	// ErrEmptyInput is returned when a CSV file has no header row
	ErrEmptyInput = errors.New("empty input")
)

// Options controls how records become a graph
type Options struct {
	Directed bool

	// CSV column names holding the edge endpoints
	SourceColumn string
	TargetColumn string

	// Logger receives per-record diagnostics at debug level
	Logger logging.Logger
}

func (o Options) logger() logging.Logger {
	if o.Logger == nil {
		return logging.NewNopLogger()
	}
	return o.Logger
}

// Stats summarises a load
type Stats struct {
	// Records is the number of data records read, excluding headers,
	// comments and blank lines
	Records int `json:"records"`

	// Skipped counts records that did not produce an edge
	Skipped int `json:"skipped"`

	Malformed  int `json:"malformed"`
	Duplicates int `json:"duplicates"`
}

// builder accumulates edges into a simple graph and keeps the counters
type builder struct {
	g     *graph.Graph
	stats Stats
	log   logging.Logger
}

func newBuilder(opts Options) *builder {
	return &builder{
		g:   graph.NewSimple(opts.Directed),
		log: opts.logger(),
	}
}

func (b *builder) malformed(line int, reason string) {
	b.stats.Skipped++
	b.stats.Malformed++
	b.log.Debug("skipping malformed record", logging.Int("line", line), logging.String("reason", reason))
}

func (b *builder) edge(line int, from, to string) error {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		b.malformed(line, "empty endpoint")
		return nil
	}

	_, err := b.g.AddEdge(from, to)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, graph.ErrDuplicateEdge):
		b.stats.Skipped++
		b.stats.Duplicates++
		return nil
	default:
		return fmt.Errorf("line %d: %w", line, err)
	}
}

func (b *builder) edgeByID(line int, from, to uint64) error {
	_, err := b.g.AddEdgeByID(from, to)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, graph.ErrDuplicateEdge):
		b.stats.Skipped++
		b.stats.Duplicates++
		return nil
	case graph.IsNotFound(err):
		b.malformed(line, "unknown vertex")
		return nil
	default:
		return fmt.Errorf("line %d: %w", line, err)
	}
}

// Load parses r in the given format
func Load(r io.Reader, format string, opts Options) (*graph.Graph, Stats, error) {
	switch format {
	case FormatCSV:
		return LoadCSV(r, opts)
	case FormatEdgeList:
		return LoadEdgeList(r, opts)
	case FormatPajek:
		return LoadPajek(r, opts)
	default:
		return nil, Stats{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// LoadFile memory-maps path and parses it in the given format
func LoadFile(path, format string, opts Options) (*graph.Graph, Stats, error) {
	switch format {
	case FormatCSV, FormatEdgeList, FormatPajek:
	default:
		return nil, Stats{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	reader, err := mmap.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open dataset: %w", err)
	}
	defer reader.Close()

	src := bufio.NewReaderSize(io.NewSectionReader(reader, 0, int64(reader.Len())), 1<<20)
	g, stats, err := Load(src, format, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}
	return g, stats, nil
}

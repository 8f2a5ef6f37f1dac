package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
)

type pajekSection int

const (
	sectionNone pajekSection = iota
	sectionVertices
	sectionPairs // *Arcs, *Edges
	sectionLists // *Arcslist, *Edgeslist
	sectionOther // *Network, *Matrix, *Partition and anything else
)

// LoadPajek reads a Pajek .net file. Vertices declared in *Vertices are
// created up front in id order, keyed by their label when one is given and by
// the number otherwise. Keys are assigned once the whole section has been
// read, so numeric labels may freely reuse other vertices' numbers. *Arcs and *Edges lines hold one pair each, *Arcslist
// and *Edgeslist lines a source followed by its targets. Whether the result
// is directed is decided by opts, not by the section name. Matrix sections are
// not supported and their lines are skipped.
func LoadPajek(r io.Reader, opts Options) (*graph.Graph, Stats, error) {
	b := newBuilder(opts)

	// Pajek vertex number -> graph node ID
	vertices := make(map[int]uint64)
	declared := 0
	labels := make(map[int]pajekLabel)

	resolve := func(field string) (uint64, bool, error) {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 {
			return 0, false, nil
		}
		if id, ok := vertices[n]; ok {
			return id, true, nil
		}
		if declared > 0 {
			// Out of the declared range
			return 0, false, nil
		}
		node, _, err := b.g.AddNode(field)
		if err != nil {
			return 0, false, err
		}
		vertices[n] = node.ID
		return node.ID, true, nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	section := sectionNone
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '%' {
			continue
		}

		if text[0] == '*' {
			if section == sectionVertices {
				if err := b.keyVertices(vertices, labels, declared); err != nil {
					return nil, b.stats, err
				}
				clear(labels)
			}
			fields := strings.Fields(text)
			switch strings.ToLower(fields[0]) {
			case "*vertices":
				section = sectionVertices
				if len(fields) < 2 {
					return nil, b.stats, fmt.Errorf("line %d: *Vertices without a count", line)
				}
				n, err := strconv.Atoi(fields[1])
				if err != nil || n < 0 {
					return nil, b.stats, fmt.Errorf("line %d: invalid vertex count %q", line, fields[1])
				}
				if err := declareVertices(b.g, vertices, n); err != nil {
					return nil, b.stats, err
				}
				declared = n
			case "*arcs", "*edges":
				section = sectionPairs
			case "*arcslist", "*edgeslist":
				section = sectionLists
			default:
				section = sectionOther
			}
			continue
		}

		b.stats.Records++
		switch section {
		case sectionVertices:
			if err := readVertexLabel(vertices, labels, line, text); err != nil {
				b.malformed(line, err.Error())
			}

		case sectionPairs, sectionLists:
			fields := strings.Fields(text)
			if len(fields) < 2 {
				b.malformed(line, "expected two endpoints")
				continue
			}
			targets := fields[1:]
			if section == sectionPairs {
				// Anything after the pair is a weight or drawing attribute
				targets = fields[1:2]
			}

			from, ok, err := resolve(fields[0])
			if err != nil {
				return nil, b.stats, fmt.Errorf("line %d: %w", line, err)
			}
			if !ok {
				b.malformed(line, "unknown vertex "+fields[0])
				continue
			}
			for _, field := range targets {
				to, ok, err := resolve(field)
				if err != nil {
					return nil, b.stats, fmt.Errorf("line %d: %w", line, err)
				}
				if !ok {
					b.malformed(line, "unknown vertex "+field)
					continue
				}
				if err := b.edgeByID(line, from, to); err != nil {
					return nil, b.stats, err
				}
			}

		default:
			b.stats.Skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, b.stats, fmt.Errorf("read pajek: %w", err)
	}
	if section == sectionVertices {
		if err := b.keyVertices(vertices, labels, declared); err != nil {
			return nil, b.stats, err
		}
	}

	return b.g, b.stats, nil
}

// pajekLabel is a vertex label and the line it came from
type pajekLabel struct {
	text string
	line int
}

// pajekVertexKey is the placeholder key of a declared vertex until the
// *Vertices section ends. The NUL prefix keeps it clear of any dataset key.
func pajekVertexKey(n int) string {
	return "\x00" + strconv.Itoa(n)
}

func declareVertices(g *graph.Graph, vertices map[int]uint64, n int) error {
	for i := 1; i <= n; i++ {
		if _, ok := vertices[i]; ok {
			continue
		}
		node, _, err := g.AddNode(pajekVertexKey(i))
		if err != nil {
			return err
		}
		vertices[i] = node.ID
	}
	return nil
}

// readVertexLabel parses `id "label" ...` and records the label for keyVertices
func readVertexLabel(vertices map[int]uint64, labels map[int]pajekLabel, line int, text string) error {
	idField, rest := text, ""
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		idField, rest = text[:i], text[i+1:]
	}
	n, err := strconv.Atoi(idField)
	if err != nil {
		return fmt.Errorf("invalid vertex number %q", idField)
	}
	if _, ok := vertices[n]; !ok {
		return fmt.Errorf("vertex %d outside the declared range", n)
	}

	if label := parseLabel(strings.TrimSpace(rest)); label != "" {
		labels[n] = pajekLabel{text: label, line: line}
	}
	return nil
}

// keyVertices gives every declared vertex its final key: the label if it
// has one, else its number. A label already taken by an earlier vertex is
// malformed and the vertex falls back to its number.
func (b *builder) keyVertices(vertices map[int]uint64, labels map[int]pajekLabel, declared int) error {
	for n := 1; n <= declared; n++ {
		id := vertices[n]
		number := strconv.Itoa(n)

		candidates := []string{number, "vertex " + number}
		if label, ok := labels[n]; ok {
			candidates = append([]string{label.text}, candidates...)
		}

		var err error
		for i, key := range candidates {
			if err = b.g.RenameNode(id, key); err == nil {
				if i > 0 && len(candidates) == 3 {
					b.malformed(labels[n].line, fmt.Sprintf("duplicate vertex label %q", labels[n].text))
				}
				break
			}
			if !errors.Is(err, graph.ErrDuplicateKey) {
				return err
			}
		}
		if err != nil {
			return fmt.Errorf("vertex %d: %w", n, err)
		}
	}
	return nil
}

// parseLabel returns the leading label of a vertex line: a double-quoted
// string, or the first whitespace separated token
func parseLabel(s string) string {
	if s == "" {
		return ""
	}
	if s[0] == '"' {
		if end := strings.IndexByte(s[1:], '"'); end >= 0 {
			return s[1 : end+1]
		}
		return s[1:]
	}
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

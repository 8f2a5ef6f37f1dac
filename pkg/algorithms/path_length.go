package algorithms

import (
	"context"
	"fmt"
	"sync"

	"github.com/dd0wney/cluso-graphreport/pkg/graph"
	"github.com/dd0wney/cluso-graphreport/pkg/parallel"
)

// PathLengthOptions configures AverageShortestPathLength
type PathLengthOptions struct {
	// Workers is the number of concurrent BFS sources; 0 means NumCPU.
	Workers int
	// Sources limits the number of BFS sources. 0 uses every node (exact);
	// otherwise evenly spaced nodes in enumeration order are used and the
	// result is an estimate.
	Sources int
}

// PathLengthResult is the outcome of an average shortest path computation
type PathLengthResult struct {
	Average   float64 `json:"average"`
	Sources   int     `json:"sources"`
	Pairs     int64   `json:"pairs"`
	Diameter  int     `json:"diameter"` // longest shortest path seen
	Estimated bool    `json:"estimated"`
}

// AverageShortestPathLength returns the mean hop distance over all ordered
// pairs of distinct nodes, following edge direction. It returns
// ErrNotConnected if any pair is unreachable (for directed graphs that means
// the graph must be strongly connected) and ErrEmptyGraph for a graph with no
// nodes. A single node has average 0.
//
// One BFS is run per source on a worker pool; each BFS is O(V+E).
func AverageShortestPathLength(ctx context.Context, g *graph.Graph, opts PathLengthOptions) (*PathLengthResult, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}

	n := g.NodeCount()
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	if n == 1 {
		return &PathLengthResult{Sources: 1}, nil
	}

	sources := sampleSources(g.NodeIDs(), opts.Sources)

	pool, err := parallel.NewWorkerPool(opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("average shortest path: %w", err)
	}
	defer pool.Close()

	var (
		mu          sync.Mutex
		total       int64
		pairs       int64
		diameter    int
		unreachable bool
	)

	maxID := g.MaxNodeID()
	// One distance buffer per worker avoids allocating per source
	buffers := make(chan []int, pool.Workers())
	for i := 0; i < pool.Workers(); i++ {
		buffers <- make([]int, maxID+1)
	}

	for _, source := range sources {
		err := pool.SubmitContext(ctx, func(ctx context.Context) {
			if ctx.Err() != nil {
				return
			}
			dist := <-buffers
			defer func() { buffers <- dist }()

			dist = bfsDistances(g, source, dist)

			var sum, count int64
			longest := 0
			missing := false
			for id := uint64(1); id <= maxID; id++ {
				if id == source {
					continue
				}
				d := dist[id]
				if d < 0 {
					missing = true
					continue
				}
				sum += int64(d)
				count++
				if d > longest {
					longest = d
				}
			}

			mu.Lock()
			total += sum
			pairs += count
			if longest > diameter {
				diameter = longest
			}
			if missing {
				unreachable = true
			}
			mu.Unlock()
		})
		if err != nil {
			return nil, err
		}
	}
	pool.Drain()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if unreachable {
		return nil, ErrNotConnected
	}

	return &PathLengthResult{
		Average:   float64(total) / float64(pairs),
		Sources:   len(sources),
		Pairs:     pairs,
		Diameter:  diameter,
		Estimated: len(sources) < n,
	}, nil
}

// sampleSources picks k evenly spaced IDs, or all of them when k is 0 or
// at least len(ids)
func sampleSources(ids []uint64, k int) []uint64 {
	if k <= 0 || k >= len(ids) {
		return ids
	}
	out := make([]uint64, 0, k)
	step := float64(len(ids)) / float64(k)
	for i := 0; i < k; i++ {
		out = append(out, ids[int(float64(i)*step)])
	}
	return out
}

package parallel

import (
	"slices"
	"sync"
)

// Graph is the adjacency view a ParallelTraverser walks
type Graph interface {
	Successors(nodeID uint64) ([]uint64, error)
}

// ParallelTraverser performs level-synchronous parallel graph traversals
type ParallelTraverser struct {
	graph      Graph
	workerPool *WorkerPool
	numWorkers int
}

// NewParallelTraverser creates a new parallel traverser. Zero or negative
// worker counts default to runtime.NumCPU().
func NewParallelTraverser(graph Graph, numWorkers int) (*ParallelTraverser, error) {
	pool, err := NewWorkerPool(numWorkers)
	if err != nil {
		return nil, err
	}

	return &ParallelTraverser{
		graph:      graph,
		workerPool: pool,
		numWorkers: pool.Workers(),
	}, nil
}

// TraverseBFS performs parallel breadth-first traversal from startNodes and
// returns the nodes discovered at each depth, start nodes excluded. Each level
// is sorted by node ID so the result does not depend on scheduling.
// A negative maxDepth means unlimited.
func (pt *ParallelTraverser) TraverseBFS(startNodes []uint64, maxDepth int) [][]uint64 {
	if len(startNodes) == 0 {
		return nil
	}

	visited := &sync.Map{} // Thread-safe visited set
	levels := make([][]uint64, 0)

	// Mark start nodes as visited
	for _, nodeID := range startNodes {
		visited.Store(nodeID, true)
	}

	currentLevel := startNodes
	for depth := 0; (maxDepth < 0 || depth < maxDepth) && len(currentLevel) > 0; depth++ {
		nextLevel := &sync.Map{} // Thread-safe next level set
		levelWg := sync.WaitGroup{}

		// Divide current level among workers (overflow-safe)
		chunkSize := int((int64(len(currentLevel)) + int64(pt.numWorkers) - 1) / int64(pt.numWorkers))
		if chunkSize < 1 {
			chunkSize = 1
		}

		for i := 0; i < len(currentLevel); i += chunkSize {
			end := min(i+chunkSize, len(currentLevel))
			chunk := currentLevel[i:end]

			levelWg.Add(1)
			if !pt.workerPool.Submit(func() {
				defer levelWg.Done()
				pt.processChunk(chunk, visited, nextLevel)
			}) {
				levelWg.Done()
			}
		}

		// Wait for level to complete
		levelWg.Wait()

		currentLevel = make([]uint64, 0)
		nextLevel.Range(func(key, value any) bool {
			if nodeID, ok := key.(uint64); ok {
				currentLevel = append(currentLevel, nodeID)
			}
			return true
		})
		if len(currentLevel) == 0 {
			break
		}
		slices.Sort(currentLevel)
		levels = append(levels, currentLevel)
	}

	return levels
}

// processChunk expands a chunk of the current level
func (pt *ParallelTraverser) processChunk(nodes []uint64, visited, nextLevel *sync.Map) {
	for _, nodeID := range nodes {
		successors, err := pt.graph.Successors(nodeID)
		if err != nil {
			continue
		}

		for _, next := range successors {
			if _, alreadyVisited := visited.LoadOrStore(next, true); !alreadyVisited {
				nextLevel.Store(next, true)
			}
		}
	}
}

// Close closes the worker pool
func (pt *ParallelTraverser) Close() {
	pt.workerPool.Close()
}

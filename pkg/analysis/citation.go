package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-graphreport/pkg/algorithms"
	"github.com/dd0wney/cluso-graphreport/pkg/config"
	"github.com/dd0wney/cluso-graphreport/pkg/graph"
	"github.com/dd0wney/cluso-graphreport/pkg/loader"
	"github.com/dd0wney/cluso-graphreport/pkg/logging"
	"github.com/dd0wney/cluso-graphreport/pkg/visualization"
)

// analyseCitation computes the citation network measures. Path length runs
// on the whole directed graph, so anything short of strong connectivity is
// reported as a message rather than a failure.
func (r *Runner) analyseCitation(ctx context.Context, cfg *config.Config, ds config.Dataset, g *graph.Graph, stats loader.Stats, log logging.Logger) (*CitationResult, error) {
	start := time.Now()
	res := &CitationResult{
		Name:  ds.Name,
		Path:  ds.Path,
		Load:  stats,
		Nodes: g.NodeCount(),
		Edges: g.EdgeCount(),
	}
	k := cfg.TopK

	err := r.step(ctx, log, "network_plot", func() error {
		sample, err := drawSample(cfg, g)
		if err != nil {
			return err
		}
		svg, err := renderNetwork(sample, visualization.LayoutHierarchical, cfg.LayoutSeed,
			fmt.Sprintf("%s citations (%d node sample)", ds.Name, sample.NodeCount()))
		if err != nil {
			return err
		}
		res.SampleNodes = sample.NodeCount()
		res.NetworkSVG = svg
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.step(ctx, log, "degree", func() error {
		var err error
		if res.Density, err = algorithms.Density(g); err != nil {
			return err
		}
		if res.AverageInDegree, err = algorithms.AverageInDegree(g); err != nil {
			return err
		}
		res.AverageOutDegree, err = algorithms.AverageOutDegree(g)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = r.step(ctx, log, "components", func() error {
		scc, err := algorithms.StronglyConnectedComponents(g)
		if err != nil {
			return err
		}
		res.StrongComponents = scc.Count()
		if scc.Largest != nil {
			res.LargestStrongComponent = scc.Largest.Size
		}
		dag, err := algorithms.Condensation(g, scc)
		if err != nil {
			return err
		}
		res.CondensationEdges = len(dag)

		weak, err := algorithms.CountComponents(g)
		res.WeakComponents = weak
		return err
	})
	if err != nil {
		return nil, err
	}
	r.metrics.RecordStructure(ds.Name, 0, res.WeakComponents)

	err = r.step(ctx, log, "cycles", func() error {
		count, err := algorithms.CountCycles(g)
		if err != nil {
			return err
		}
		res.Cycles = count
		if res.IsDAG, err = algorithms.IsDAG(g); err != nil {
			return err
		}
		if res.IsDAG {
			if res.LongestChain, err = algorithms.LongestChain(g); err != nil {
				return err
			}
		}

		if cfg.MaxCycles > 0 && count > 0 {
			cycles, err := algorithms.DetectCyclesWithOptions(g, algorithms.CycleDetectionOptions{
				MaxCycles: cfg.MaxCycles,
			})
			if err != nil {
				return err
			}
			cs := algorithms.AnalyzeCycles(cycles)
			res.CycleStats = &cs
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pathErr := r.step(ctx, log, "average_path_length", func() error {
		pl, err := algorithms.AverageShortestPathLength(ctx, g, algorithms.PathLengthOptions{
			Workers: cfg.Workers,
			Sources: cfg.PathLengthSources,
		})
		res.PathLength = pl
		return err
	})
	if pathErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		res.PathLength = nil
		res.PathLengthError = describePathError(pathErr, true)
		log.Info("average path length undefined", logging.Error(pathErr))
	}

	err = r.step(ctx, log, "degree_centrality", func() error {
		in, err := algorithms.InDegreeCentrality(g)
		if err != nil {
			return err
		}
		out, err := algorithms.OutDegreeCentrality(g)
		if err != nil {
			return err
		}
		res.TopInCentrality = algorithms.TopNodes(g, in, k)
		res.TopOutCentrality = algorithms.TopNodes(g, out, k)
		res.TopInDegree = algorithms.TopNodes(g, algorithms.DegreeScores(g, g.InDegree), k)
		res.TopOutDegree = algorithms.TopNodes(g, algorithms.DegreeScores(g, g.OutDegree), k)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.step(ctx, log, "pagerank", func() error {
		opts := algorithms.DefaultPageRankOptions()
		opts.TopK = k
		pr, err := algorithms.PageRank(g, opts)
		if err != nil {
			return err
		}
		res.TopPageRank = pr.TopNodes
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Elapsed = time.Since(start)
	log.Info("citation network analysed",
		logging.Int("nodes", res.Nodes),
		logging.Int("edges", res.Edges),
		logging.Int("strong_components", res.StrongComponents),
		logging.Int("cycles", res.Cycles),
		logging.Bool("dag", res.IsDAG),
		logging.Latency(res.Elapsed),
	)
	return res, nil
}

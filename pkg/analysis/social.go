package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-graphreport/pkg/algorithms"
	"github.com/dd0wney/cluso-graphreport/pkg/config"
	"github.com/dd0wney/cluso-graphreport/pkg/graph"
	"github.com/dd0wney/cluso-graphreport/pkg/loader"
	"github.com/dd0wney/cluso-graphreport/pkg/logging"
	"github.com/dd0wney/cluso-graphreport/pkg/visualization"
)

// bridgeSampleSize is how many bridges are listed by name in the results
const bridgeSampleSize = 10

// labelPropagationRounds bounds community detection
const labelPropagationRounds = 100

// analyseSocial computes the social network measures: degree distribution,
// components, average distance in the largest component, bridges, plus
// clustering, communities and rankings
func (r *Runner) analyseSocial(ctx context.Context, cfg *config.Config, ds config.Dataset, g *graph.Graph, stats loader.Stats, log logging.Logger) (*SocialResult, error) {
	start := time.Now()
	res := &SocialResult{
		Name:      ds.Name,
		Path:      ds.Path,
		Load:      stats,
		Nodes:     g.NodeCount(),
		Edges:     g.EdgeCount(),
		SelfLoops: int(g.GetStatistics().SelfLoops),
	}
	k := cfg.TopK

	err := r.step(ctx, log, "network_plot", func() error {
		sample, err := drawSample(cfg, g)
		if err != nil {
			return err
		}
		svg, err := renderNetwork(sample, cfg.Layout, cfg.LayoutSeed,
			fmt.Sprintf("%s network (%d node sample)", ds.Name, sample.NodeCount()))
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
		degree, err := algorithms.DegreeDistribution(g)
		if err != nil {
			return err
		}
		res.Degree = degree
		res.AverageDegree = degree.Mean
		res.Histogram = visualization.Bin(degree.Degrees, cfg.HistogramBins)
		res.HistogramSVG = visualization.RenderHistogramSVG(res.Histogram,
			visualization.DefaultHistogramOptions("Degree distribution - "+ds.Name))
		res.TopDegree = algorithms.TopNodes(g, algorithms.DegreeScores(g, g.Degree), k)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var largest *graph.Graph
	err = r.step(ctx, log, "components", func() error {
		cc, err := algorithms.ConnectedComponents(g)
		if err != nil {
			return err
		}
		res.Components = cc.Count()
		if cc.Largest != nil {
			res.LargestComponent = cc.Largest.Size
			largest = g.Subgraph(cc.Largest.Nodes)
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
		pl, err := algorithms.AverageShortestPathLength(ctx, largest, algorithms.PathLengthOptions{
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
		res.PathLengthError = describePathError(pathErr, false)
		log.Warn("average path length unavailable", logging.Error(pathErr))
	}

	err = r.step(ctx, log, "bridges", func() error {
		bridges, err := algorithms.FindBridges(g)
		if err != nil {
			return err
		}
		res.BridgeCount = len(bridges)
		res.Bridges = edgeRefs(g, bridges, bridgeSampleSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.metrics.RecordStructure(ds.Name, res.BridgeCount, res.Components)

	err = r.step(ctx, log, "triangles", func() error {
		tri, err := algorithms.CountTriangles(g, k)
		if err != nil {
			return err
		}
		res.Triangles = tri.GlobalCount
		res.AverageClustering = tri.AverageClustering
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.step(ctx, log, "communities", func() error {
		comm, err := algorithms.LabelPropagation(g, labelPropagationRounds)
		if err != nil {
			return err
		}
		res.Communities = len(comm.Communities)
		res.Modularity = comm.Modularity
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

	if cfg.Betweenness {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err = r.step(ctx, log, "centrality", func() error {
			central, err := algorithms.ComputeAllCentrality(g, k)
			if err != nil {
				return err
			}
			res.TopBetweenness = central.TopByBetweenness
			res.TopCloseness = central.TopByCloseness
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(res.TopDegree) >= 2 {
		res.HubPath = hubPath(g, res.TopDegree[0].NodeID, res.TopDegree[1].NodeID)
	}

	res.Elapsed = time.Since(start)
	log.Info("social network analysed",
		logging.Int("nodes", res.Nodes),
		logging.Int("edges", res.Edges),
		logging.Int("components", res.Components),
		logging.Int("bridges", res.BridgeCount),
		logging.Float64("modularity", res.Modularity),
		logging.Latency(res.Elapsed),
	)
	return res, nil
}

// drawSample picks the plotted nodes
func drawSample(cfg *config.Config, g *graph.Graph) (*graph.Graph, error) {
	if cfg.SampleMode == "neighbourhood" {
		return visualization.SampleNeighbourhood(g, cfg.SampleSize, cfg.Workers)
	}
	return visualization.SampleSubgraph(g, cfg.SampleSize), nil
}

// renderNetwork lays out g and draws it
func renderNetwork(g *graph.Graph, layoutName string, seed int64, title string) (string, error) {
	opts := visualization.DefaultNetworkOptions(title)
	opts.ArrowHeads = g.Directed()

	layout, err := visualization.NewLayout(layoutName, &visualization.LayoutConfig{
		Width:  opts.Width,
		Height: opts.Height,
		Seed:   seed,
	})
	if err != nil {
		return "", err
	}
	positions, err := layout.ComputeLayout(g, g.NodeIDs())
	if err != nil {
		return "", err
	}
	return visualization.RenderNetworkSVG(g, positions, opts), nil
}

// edgeRefs names up to n bridges by their endpoint keys
func edgeRefs(g *graph.Graph, bridges []algorithms.Bridge, n int) []EdgeRef {
	out := make([]EdgeRef, 0, min(n, len(bridges)))
	for _, b := range bridges[:min(n, len(bridges))] {
		out = append(out, EdgeRef{From: nodeKey(g, b.FromNodeID), To: nodeKey(g, b.ToNodeID)})
	}
	return out
}

// hubPath returns the keys along a shortest path between two nodes, or nil
// when they are not connected
func hubPath(g *graph.Graph, from, to uint64) []string {
	path, err := algorithms.ShortestPath(g, from, to)
	if err != nil || path == nil {
		return nil
	}
	keys := make([]string, len(path))
	for i, id := range path {
		keys[i] = nodeKey(g, id)
	}
	return keys
}

func nodeKey(g *graph.Graph, id uint64) string {
	n, err := g.GetNode(id)
	if err != nil {
		return ""
	}
	return n.Key
}

// describePathError turns a path length failure into report text
func describePathError(err error, directed bool) string {
	switch {
	case errors.Is(err, algorithms.ErrNotConnected) && directed:
		return "graph is not strongly connected; the average shortest path length is undefined"
	case errors.Is(err, algorithms.ErrNotConnected):
		return "graph is not connected; the average shortest path length is undefined"
	default:
		return err.Error()
	}
}

// Package analysis runs the configured measures over every dataset and
// collects the results for reporting.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dd0wney/cluso-graphreport/pkg/config"
	"github.com/dd0wney/cluso-graphreport/pkg/graph"
	"github.com/dd0wney/cluso-graphreport/pkg/loader"
	"github.com/dd0wney/cluso-graphreport/pkg/logging"
	"github.com/dd0wney/cluso-graphreport/pkg/metrics"
	"github.com/dd0wney/cluso-graphreport/pkg/parallel"
	"github.com/dd0wney/cluso-graphreport/pkg/tracing"
)

var (
	// ErrEmptyDataset is reported for a dataset that loaded no nodes
	ErrEmptyDataset = errors.New("dataset has no nodes")

	// ErrAllDatasetsFailed is returned by Run when nothing could be analysed
	ErrAllDatasetsFailed = errors.New("every dataset failed")
)

// LoadFunc reads a dataset into a graph
type LoadFunc func(path, format string, opts loader.Options) (*graph.Graph, loader.Stats, error)

// Runner executes analysis runs
type Runner struct {
	logger  logging.Logger
	metrics *metrics.Registry
	tracer  trace.Tracer
	load    LoadFunc
}

// NewRunner creates a runner. A nil logger discards output and a nil
// registry gets a fresh one.
func NewRunner(logger logging.Logger, reg *metrics.Registry) *Runner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Runner{
		logger:  logger,
		metrics: reg,
		tracer:  otel.Tracer(tracing.TracerName),
		load:    loader.LoadFile,
	}
}

// WithLoader replaces the dataset loader, mainly for tests
func (r *Runner) WithLoader(load LoadFunc) *Runner {
	r.load = load
	return r
}

// WithTracer replaces the tracer taken from the global provider
func (r *Runner) WithTracer(t trace.Tracer) *Runner {
	r.tracer = t
	return r
}

// Metrics returns the registry the runner records into
func (r *Runner) Metrics() *metrics.Registry {
	return r.metrics
}

// outcome is the result slot of one dataset
type outcome struct {
	done     bool
	social   *SocialResult
	citation *CitationResult
	err      error
}

// Run loads and analyses every dataset in cfg. Datasets are processed
// concurrently; a failing dataset is recorded in Results.Failures and does
// not stop the others. Run returns an error only when cfg is invalid, ctx is
// cancelled, or every dataset failed.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Results, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	res := &Results{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		TopK:      cfg.TopK,
	}
	log := r.logger.With(logging.RunID(res.RunID))

	ctx, span := tracing.StartRunSpan(ctx, r.tracer, res.RunID, len(cfg.Datasets))
	defer span.End()
	log.Info("analysis started", logging.Count(len(cfg.Datasets)), logging.Int("workers", cfg.Workers))

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool, err := parallel.NewWorkerPoolWithLogger(min(workers, len(cfg.Datasets)), log)
	if err != nil {
		return nil, err
	}

	outcomes := make([]outcome, len(cfg.Datasets))
	for i, ds := range cfg.Datasets {
		err := pool.SubmitContext(ctx, func(ctx context.Context) {
			outcomes[i] = r.analyse(ctx, cfg, ds, log)
		})
		if err != nil {
			break
		}
	}
	pool.Close()

	if err := ctx.Err(); err != nil {
		log.Warn("analysis cancelled", logging.Error(err))
		tracing.RecordError(span, err)
		return nil, err
	}

	for i, ds := range cfg.Datasets {
		out := outcomes[i]
		if !out.done && out.err == nil {
			out.err = errors.New("analysis aborted")
		}
		switch {
		case out.err != nil:
			res.Failures = append(res.Failures, Failure{Dataset: ds.Name, Error: out.err.Error()})
		case out.social != nil:
			res.Social = append(res.Social, out.social)
		case out.citation != nil:
			res.Citation = append(res.Citation, out.citation)
		}
	}

	res.FinishedAt = time.Now()
	r.metrics.UpdateSystemMetrics()
	log.Info("analysis finished",
		logging.Int("succeeded", len(res.Social)+len(res.Citation)),
		logging.Int("failed", len(res.Failures)),
		logging.Latency(res.Duration()),
	)

	if len(res.Failures) == len(cfg.Datasets) {
		tracing.RecordError(span, ErrAllDatasetsFailed)
		return res, ErrAllDatasetsFailed
	}
	return res, nil
}

// analyse loads one dataset and runs the measures for its kind
func (r *Runner) analyse(ctx context.Context, cfg *config.Config, ds config.Dataset, log logging.Logger) outcome {
	log = log.With(logging.Dataset(ds.Name), logging.Kind(ds.Kind))

	ctx, span := tracing.StartDatasetSpan(ctx, r.tracer, ds.Name, ds.Kind, ds.Format)
	defer span.End()

	timer := logging.StartTimer(log, "dataset loaded", logging.Path(ds.Path), logging.Format(ds.Format), logging.Bool("directed", ds.Directed()))
	g, stats, err := r.load(ds.Path, ds.Format, loader.Options{
		Directed:     ds.Directed(),
		SourceColumn: ds.SourceColumn,
		TargetColumn: ds.TargetColumn,
		Logger:       log,
	})
	if err == nil && g.NodeCount() == 0 {
		err = ErrEmptyDataset
	}
	if err != nil {
		timer.EndError(err)
		tracing.RecordError(span, err)
		r.metrics.RecordDataset(ds.Kind, err)
		return outcome{done: true, err: err}
	}
	elapsed := timer.End()
	tracing.RecordGraphSize(span, g.NodeCount(), g.EdgeCount(), stats.Skipped)
	r.metrics.RecordDatasetLoad(ds.Name, ds.Format, g.NodeCount(), g.EdgeCount(), stats.Skipped, elapsed)
	if stats.Skipped > 0 {
		log.Warn("records skipped while loading",
			logging.Int("malformed", stats.Malformed),
			logging.Int("duplicates", stats.Duplicates))
	}

	out := outcome{done: true}
	switch ds.Kind {
	case config.KindCitation:
		out.citation, out.err = r.analyseCitation(ctx, cfg, ds, g, stats, log)
	default:
		out.social, out.err = r.analyseSocial(ctx, cfg, ds, g, stats, log)
	}
	r.metrics.RecordDataset(ds.Kind, out.err)
	if out.err != nil {
		tracing.RecordError(span, out.err)
		log.Error("dataset analysis failed", logging.Error(out.err))
	}
	return out
}

// step runs one named algorithm inside its own span, timing it into the
// metrics registry
func (r *Runner) step(ctx context.Context, log logging.Logger, name string, fn func() error) error {
	_, span := tracing.StartAlgorithmSpan(ctx, r.tracer, name)
	defer span.End()

	timer := logging.StartTimer(log, "algorithm finished", logging.Algorithm(name))
	err := fn()
	elapsed := timer.Elapsed()
	r.metrics.RecordAlgorithm(name, elapsed, err)
	tracing.RecordError(span, err)
	if err != nil {
		log.Debug("algorithm failed", logging.Algorithm(name), logging.Latency(elapsed), logging.Error(err))
	} else {
		timer.EndWithLevel(logging.DebugLevel, "algorithm finished")
	}
	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-graphreport/pkg/analysis"
	"github.com/dd0wney/cluso-graphreport/pkg/config"
	"github.com/dd0wney/cluso-graphreport/pkg/logging"
	"github.com/dd0wney/cluso-graphreport/pkg/metrics"
	"github.com/dd0wney/cluso-graphreport/pkg/report"
	"github.com/dd0wney/cluso-graphreport/pkg/tracing"
)

// ReportFile is the name of the HTML report inside the output directory
const ReportFile = "report.html"

// traceFlushTimeout bounds the wait for pending spans on exit
const traceFlushTimeout = 5 * time.Second

type runOptions struct {
	configPath string
	outputDir  string
	publish    bool
}

func newRunCmd(global *globalOptions) *cobra.Command {
	var opts runOptions

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Analyse every configured dataset and write the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := global.logger(cmd.ErrOrStderr())
			defer func() { _ = logger.Sync() }()
			logging.SetDefaultLogger(logger)
			return runAnalysis(cmd, opts, logger)
		},
	}

	runCmd.Flags().StringVar(&opts.configPath, "config", "graphreport.yaml", "Path to the YAML configuration")
	runCmd.Flags().StringVar(&opts.outputDir, "output", "", "Output directory (overrides output_dir)")
	runCmd.Flags().BoolVar(&opts.publish, "publish", false, "Upload artefacts to the configured S3 bucket")
	return runCmd
}

func runAnalysis(cmd *cobra.Command, opts runOptions, logger logging.Logger) error {
	ctx := cmd.Context()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		logger.Error("failed to load configuration", logging.Path(opts.configPath), logging.Error(err))
		return err
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		logger.Error("failed to create output directory", logging.Path(cfg.OutputDir), logging.Error(err))
		return err
	}

	tp, err := tracing.Init(ctx, tracing.Config{
		ServiceName:  cfg.Tracing.ServiceName,
		Version:      version,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	})
	if err != nil {
		logger.Error("failed to initialise tracing", logging.Error(err))
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), traceFlushTimeout)
		defer cancel()
		if err := tp.Shutdown(flushCtx); err != nil {
			logger.Warn("failed to flush traces", logging.Error(err))
		}
	}()

	reg := metrics.NewRegistry()
	runner := analysis.NewRunner(logger, reg).WithTracer(tp.Tracer())
	res, runErr := runner.Run(ctx, cfg)
	if res == nil {
		logger.Error("analysis failed", logging.Error(runErr))
		return runErr
	}

	artefacts, err := writeArtefacts(cfg, res, reg, logger)
	if err != nil {
		logger.Error("failed to write artefacts", logging.Error(err))
		return err
	}

	if opts.publish {
		if err := publish(ctx, cfg, res.RunID, artefacts, reg, logger); err != nil {
			logger.Error("publish failed", logging.Error(err))
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, report.Summary(res))
	fmt.Fprintf(out, "report: %s\n", artefacts[0])

	if runErr != nil {
		logger.Error("analysis failed", logging.Error(runErr))
		return runErr
	}
	return nil
}

// writeArtefacts writes the report, then the snapshot and metrics textfile
// when configured, returning their paths with the report first
func writeArtefacts(cfg *config.Config, res *analysis.Results, reg *metrics.Registry, logger logging.Logger) ([]string, error) {
	start := time.Now()
	html, err := report.RenderHTMLBytes(res)
	if err != nil {
		return nil, err
	}
	reportPath := filepath.Join(cfg.OutputDir, ReportFile)
	if err := os.WriteFile(reportPath, html, 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	reg.RecordReport(len(html), time.Since(start))
	logger.Info("report written", logging.Path(reportPath), logging.Int("bytes", len(html)))
	artefacts := []string{reportPath}

	if cfg.ResultsFile != "" {
		path := outputPath(cfg, cfg.ResultsFile)
		n, err := report.WriteSnapshot(path, res)
		if err != nil {
			return nil, err
		}
		logger.Info("snapshot written", logging.Path(path), logging.Int("bytes", n))
		artefacts = append(artefacts, path)
	}

	if cfg.MetricsFile != "" {
		path := outputPath(cfg, cfg.MetricsFile)
		reg.UpdateSystemMetrics()
		if err := reg.WriteTextfile(path); err != nil {
			return nil, err
		}
		logger.Info("metrics written", logging.Path(path))
		artefacts = append(artefacts, path)
	}
	return artefacts, nil
}

func publish(ctx context.Context, cfg *config.Config, runID string, files []string, reg *metrics.Registry, logger logging.Logger) error {
	if !cfg.Publish.Enabled() {
		return errors.New("--publish needs publish.bucket in the configuration")
	}
	pub, err := report.NewS3Publisher(ctx, cfg.Publish, logger, reg)
	if err != nil {
		return err
	}
	keys, err := pub.Publish(ctx, runID, files...)
	if err != nil {
		return err
	}
	logger.Info("artefacts published", logging.String("bucket", cfg.Publish.Bucket), logging.Count(len(keys)))
	return nil
}

// outputPath anchors relative artefact names in the output directory
func outputPath(cfg *config.Config, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.OutputDir, name)
}

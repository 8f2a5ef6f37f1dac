package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-graphreport/pkg/config"
	"github.com/dd0wney/cluso-graphreport/pkg/logging"
	"github.com/dd0wney/cluso-graphreport/pkg/report"
)

func newValidateCmd() *cobra.Command {
	var configPath string

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration and print it with defaults applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	validateCmd.Flags().StringVar(&configPath, "config", "graphreport.yaml", "Path to the YAML configuration")
	return validateCmd
}

func newRenderCmd(global *globalOptions) *cobra.Command {
	var outputPath string

	renderCmd := &cobra.Command{
		Use:   "render SNAPSHOT",
		Short: "Render the HTML report from a results snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := global.logger(cmd.ErrOrStderr())
			defer func() { _ = logger.Sync() }()

			res, err := report.ReadSnapshot(args[0])
			if err != nil {
				return err
			}
			html, err := report.RenderHTMLBytes(res)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, html, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			logger.Info("report written",
				logging.Path(outputPath),
				logging.RunID(res.RunID),
				logging.Int("bytes", len(html)))
			return nil
		},
	}
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", ReportFile, "Report file to write")
	return renderCmd
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary SNAPSHOT",
		Short: "Print the terminal summary of a results snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := report.ReadSnapshot(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Summary(res))
			return nil
		},
	}
}

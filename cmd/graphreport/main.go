// Command graphreport analyses the datasets listed in a YAML configuration
// and writes an HTML report with optional snapshot, metrics and S3 upload.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-graphreport/pkg/config"
	"github.com/dd0wney/cluso-graphreport/pkg/logging"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// globalOptions are shared by every subcommand
type globalOptions struct {
	logLevel string
	jsonLogs bool
}

func (g *globalOptions) logger(w io.Writer) *logging.ZapLogger {
	level := logging.ParseLevel(g.logLevel)
	if g.jsonLogs {
		return logging.NewZapLogger(w, level)
	}
	return logging.NewConsoleLogger(w, level)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:          "graphreport",
		Short:        "Analyse social and citation graphs and write an HTML report",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", os.Getenv(config.EnvLogLevel), "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "Log as JSON instead of console text")

	rootCmd.AddCommand(
		newRunCmd(&opts),
		newValidateCmd(),
		newRenderCmd(&opts),
		newSummaryCmd(),
	)
	return rootCmd
}

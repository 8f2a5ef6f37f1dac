package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-graphreport/pkg/config"
	"github.com/dd0wney/cluso-graphreport/pkg/report"
)

const testConfig = `
output_dir: out
workers: 2
top_k: 3
results_file: results.json.sz
metrics_file: graphreport.prom
datasets:
  - name: barbell
    path: barbell.csv
    format: csv
    kind: social
    source_column: node_1
    target_column: node_2
  - name: cites
    path: cites.txt
    format: edgelist
    kind: citation
`

func setup(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	t.Setenv("GRAPHREPORT_OUTPUT_DIR", "")
	dir = t.TempDir()
	files := map[string]string{
		"barbell.csv":      "node_1,node_2\na,b\nb,c\nc,a\nc,d\nd,e\ne,f\nf,d\n",
		"cites.txt":        "# paper cites paper\n1 2\n2 3\n3 1\n3 4\n",
		"graphreport.yaml": testConfig,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir, filepath.Join(dir, "graphreport.yaml")
}

// execute runs the command line args against a fresh root command
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRun(t *testing.T) {
	dir, cfgPath := setup(t)
	outDir := filepath.Join(dir, "report")

	stdout, stderr, err := execute(t, "run", "--config", cfgPath, "--output", outDir, "--json-logs")
	require.NoError(t, err, stderr)

	html, err := os.ReadFile(filepath.Join(outDir, ReportFile))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Network: barbell")
	assert.Contains(t, string(html), "Citation network: cites")

	res, err := report.ReadSnapshot(filepath.Join(outDir, "results.json.sz"))
	require.NoError(t, err)
	require.Len(t, res.Social, 1)
	assert.Equal(t, 1, res.Social[0].BridgeCount)
	require.Len(t, res.Citation, 1)
	assert.Equal(t, 2, res.Citation[0].StrongComponents)

	prom, err := os.ReadFile(filepath.Join(outDir, "graphreport.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `graphreport_bridges{dataset="barbell"} 1`)

	assert.Contains(t, stdout, "barbell")
	assert.Contains(t, stdout, "report: "+filepath.Join(outDir, ReportFile))
	assert.Contains(t, stderr, `"msg":"report written"`)
}

func TestRunMissingConfig(t *testing.T) {
	stdout, stderr, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, stderr, "failed to load configuration")
	assert.Empty(t, stdout)
}

func TestRunAllDatasetsFailed(t *testing.T) {
	dir, cfgPath := setup(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "barbell.csv")))
	require.NoError(t, os.Remove(filepath.Join(dir, "cites.txt")))

	outDir := filepath.Join(dir, "out")
	_, _, err := execute(t, "run", "--config", cfgPath, "--output", outDir)
	require.Error(t, err)

	html, err := os.ReadFile(filepath.Join(outDir, ReportFile))
	require.NoError(t, err, "the report still lists the failures")
	assert.Contains(t, string(html), "Datasets not analysed")
}

func TestRunPublishWithoutBucket(t *testing.T) {
	dir, cfgPath := setup(t)

	_, stderr, err := execute(t, "run", "--config", cfgPath, "--output", filepath.Join(dir, "out"), "--publish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish.bucket")
	assert.Contains(t, stderr, "publish failed")
}

func TestRunRejectsArguments(t *testing.T) {
	_, _, err := execute(t, "run", "extra")
	assert.Error(t, err)

	_, _, err = execute(t, "run", "--nope")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	_, cfgPath := setup(t)

	stdout, _, err := execute(t, "validate", "--config", cfgPath)
	require.NoError(t, err)

	cfg, err := config.Parse([]byte(stdout))
	require.NoError(t, err, "printed configuration parses again")
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, config.DefaultHistogramBins, cfg.HistogramBins)
	require.Len(t, cfg.Datasets, 2)
	assert.True(t, filepath.IsAbs(cfg.Datasets[0].Path))
}

func TestValidateInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_k: 0\ndatasets: []\n"), 0o600))

	_, _, err := execute(t, "validate", "--config", path)
	assert.ErrorIs(t, err, config.ErrNoDatasets)
}

func TestRenderAndSummaryFromSnapshot(t *testing.T) {
	dir, cfgPath := setup(t)
	outDir := filepath.Join(dir, "report")
	_, stderr, err := execute(t, "run", "--config", cfgPath, "--output", outDir)
	require.NoError(t, err, stderr)
	snapshot := filepath.Join(outDir, "results.json.sz")

	rendered := filepath.Join(dir, "again.html")
	_, _, err = execute(t, "render", snapshot, "-o", rendered)
	require.NoError(t, err)

	res, err := report.ReadSnapshot(snapshot)
	require.NoError(t, err)
	html, err := os.ReadFile(rendered)
	require.NoError(t, err)
	assert.Contains(t, string(html), res.RunID)
	assert.Contains(t, string(html), "Network: barbell")
	assert.Contains(t, string(html), "<svg")

	stdout, _, err := execute(t, "summary", snapshot)
	require.NoError(t, err)
	assert.Contains(t, stdout, "barbell")
	assert.Contains(t, stdout, "cites")

	_, _, err = execute(t, "summary")
	assert.Error(t, err)
	_, _, err = execute(t, "render", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

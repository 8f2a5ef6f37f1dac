package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-graphreport/pkg/validation"
)

// Dataset formats
const (
	FormatCSV      = "csv"
	FormatEdgeList = "edgelist"
	FormatPajek    = "pajek"
)

// Dataset kinds. Social networks are analysed as undirected graphs, citation
// networks as directed ones.
const (
	KindSocial   = "social"
	KindCitation = "citation"
)

// Default configuration values
const (
	DefaultOutputDir     = "report"
	DefaultSampleSize    = 1000
	DefaultTopK          = 5
	DefaultHistogramBins = 30
	DefaultLayoutSeed    = 42
)

// Environment variables that override the file
const (
	EnvOutputDir    = "GRAPHREPORT_OUTPUT_DIR"
	EnvLogLevel     = "LOG_LEVEL"
	EnvOTLPEndpoint = "GRAPHREPORT_OTLP_ENDPOINT"

	// Static S3 credentials, used instead of the default AWS chain when both
	// are set
	EnvS3AccessKeyID     = "GRAPHREPORT_S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "GRAPHREPORT_S3_SECRET_ACCESS_KEY"
)

// DefaultServiceName identifies exported traces
const DefaultServiceName = "graphreport"

// ErrNoDatasets is returned when a configuration lists nothing to analyse
var ErrNoDatasets = errors.New("no datasets configured")

// Dataset describes one input file
type Dataset struct {
	Name         string `yaml:"name" json:"name" validate:"required,datasetname"`
	Path         string `yaml:"path" json:"path" validate:"required"`
	Format       string `yaml:"format" json:"format" validate:"required,oneof=csv edgelist pajek"`
	Kind         string `yaml:"kind" json:"kind" validate:"required,oneof=social citation"`
	SourceColumn string `yaml:"source_column,omitempty" json:"source_column,omitempty"`
	TargetColumn string `yaml:"target_column,omitempty" json:"target_column,omitempty"`
}

// Directed reports whether the dataset is loaded as a directed graph
func (d Dataset) Directed() bool {
	return d.Kind == KindCitation
}

// Publish configures uploading of report artefacts to S3. An empty bucket
// disables publishing.
type Publish struct {
	Bucket string `yaml:"bucket" json:"bucket"`
	Prefix string `yaml:"prefix" json:"prefix"`
	Region string `yaml:"region" json:"region"`

	// Endpoint points at an S3-compatible store (MinIO, R2) and switches
	// to path-style addressing
	Endpoint string `yaml:"endpoint,omitempty" json:"endpoint,omitempty" validate:"omitempty,url"`
}

// StaticCredentials returns the access key pair from the environment, if set
func (p Publish) StaticCredentials() (id, secret string, ok bool) {
	id, secret = os.Getenv(EnvS3AccessKeyID), os.Getenv(EnvS3SecretAccessKey)
	return id, secret, id != "" && secret != ""
}

// Tracing configures OpenTelemetry export. An empty endpoint disables it.
type Tracing struct {
	OTLPEndpoint string  `yaml:"otlp_endpoint" json:"otlp_endpoint"`
	ServiceName  string  `yaml:"service_name" json:"service_name"`
	SampleRate   float64 `yaml:"sample_rate" json:"sample_rate" validate:"gt=0,lte=1"` // unset means 1
}

// Enabled reports whether a bucket is configured
func (p Publish) Enabled() bool {
	return p.Bucket != ""
}

// Config holds the whole analysis run configuration
type Config struct {
	// OutputDir receives report.html and any other artefacts
	OutputDir string `yaml:"output_dir" json:"output_dir" validate:"required"`

	// SampleSize is the number of nodes drawn in the network plot
	SampleSize int `yaml:"sample_size" json:"sample_size" validate:"gte=1"`

	// SampleMode picks the plotted nodes: the first nodes in load order,
	// or the BFS neighbourhood of the highest-degree node
	SampleMode string `yaml:"sample_mode" json:"sample_mode" validate:"oneof=first neighbourhood"`

	// Layout draws social networks: force, circular or hierarchical.
	// Citation networks are always drawn hierarchically.
	Layout string `yaml:"layout" json:"layout" validate:"oneof=force circular hierarchical"`

	// TopK is the length of every top-N list
	TopK int `yaml:"top_k" json:"top_k" validate:"gte=1,lte=1000"`

	// HistogramBins is the bin count of the degree histogram
	HistogramBins int `yaml:"histogram_bins" json:"histogram_bins" validate:"gte=1"`

	// LayoutSeed makes the force-directed layout reproducible. Like the other
	// numeric settings, 0 selects the default (42).
	LayoutSeed int64 `yaml:"layout_seed" json:"layout_seed"`

	// Workers bounds concurrency; 0 means runtime.NumCPU()
	Workers int `yaml:"workers" json:"workers" validate:"gte=0"`

	// Betweenness enables O(VE) betweenness centrality on social networks
	Betweenness bool `yaml:"betweenness" json:"betweenness"`

	// PathLengthSources samples BFS sources for the average path length;
	// 0 runs the exact all-pairs computation
	PathLengthSources int `yaml:"path_length_sources" json:"path_length_sources" validate:"gte=0"`

	// MaxCycles caps cycle enumeration on citation networks; 0 only counts
	MaxCycles int `yaml:"max_cycles" json:"max_cycles" validate:"gte=0"`

	// MetricsFile receives a Prometheus textfile export when set
	MetricsFile string `yaml:"metrics_file" json:"metrics_file"`

	// ResultsFile receives a results snapshot (.json or .json.sz) when set
	ResultsFile string `yaml:"results_file" json:"results_file"`

	Publish  Publish   `yaml:"publish" json:"publish"`
	Tracing  Tracing   `yaml:"tracing" json:"tracing"`
	Datasets []Dataset `yaml:"datasets" json:"datasets" validate:"dive"`
}

// Default returns a configuration with every default applied and no datasets
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults
func (c *Config) ApplyDefaults() {
	c.OutputDir = validation.DefaultOr(c.OutputDir, DefaultOutputDir)
	c.SampleSize = validation.DefaultOrInt(c.SampleSize, DefaultSampleSize)
	c.SampleMode = validation.DefaultOr(c.SampleMode, "first")
	c.Layout = validation.DefaultOr(c.Layout, "force")
	c.TopK = validation.DefaultOrInt(c.TopK, DefaultTopK)
	c.HistogramBins = validation.DefaultOrInt(c.HistogramBins, DefaultHistogramBins)
	c.LayoutSeed = validation.DefaultOr(c.LayoutSeed, DefaultLayoutSeed)
	c.Tracing.ServiceName = validation.DefaultOr(c.Tracing.ServiceName, DefaultServiceName)
	c.Tracing.SampleRate = validation.DefaultOr(c.Tracing.SampleRate, 1.0)
}

// ApplyEnv overrides fields from the environment
func (c *Config) ApplyEnv() {
	if dir := os.Getenv(EnvOutputDir); dir != "" {
		c.OutputDir = dir
	}
	if endpoint := os.Getenv(EnvOTLPEndpoint); endpoint != "" {
		c.Tracing.OTLPEndpoint = endpoint
	}
}

// Validate checks struct tags and cross-field rules, returning every problem
// found joined into one error
func (c *Config) Validate() error {
	if len(c.Datasets) == 0 {
		return ErrNoDatasets
	}

	cv := validation.NewConfigValidator("Config").Struct(c)

	names := make([]string, 0, len(c.Datasets))
	for i, ds := range c.Datasets {
		names = append(names, ds.Name)
		field := fmt.Sprintf("Datasets[%d]", i)
		cv.When(ds.Format == FormatCSV, func(v *validation.ConfigValidator) {
			v.Required(field+".SourceColumn", ds.SourceColumn).
				Required(field+".TargetColumn", ds.TargetColumn).
				Custom(field, func() error {
					if ds.SourceColumn != "" && ds.SourceColumn == ds.TargetColumn {
						return fmt.Errorf("source and target column are both %q", ds.SourceColumn)
					}
					return nil
				})
		})
	}
	cv.Unique("Datasets.Name", names)

	cv.When(c.Publish.Enabled(), func(v *validation.ConfigValidator) {
		v.Required("Publish.Region", c.Publish.Region)
	})

	return cv.Validate()
}

// Parse decodes YAML, applies defaults and validates. Dataset paths stay as
// written; use ResolvePaths to anchor them.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyDefaults()
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a YAML configuration file. Relative dataset paths are resolved
// against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.ResolvePaths(filepath.Dir(path))
	return cfg, nil
}

// ResolvePaths makes relative dataset paths relative to base
func (c *Config) ResolvePaths(base string) {
	for i := range c.Datasets {
		if p := c.Datasets[i].Path; p != "" && !filepath.IsAbs(p) {
			c.Datasets[i].Path = filepath.Join(base, p)
		}
	}
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

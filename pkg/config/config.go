// Package config loads the run configuration for the annotation pipeline.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"slices"

	"github.com/dd0wney/cluso-goannotate/pkg/validation"
	"gopkg.in/yaml.v3"
)

// EvidenceMode selects which annotation records feed one variant run
type EvidenceMode string

const (
	// EvidenceAll uses every record for the organism
	EvidenceAll EvidenceMode = "all"
	// EvidenceExperimental keeps only records with an experimental evidence code
	EvidenceExperimental EvidenceMode = "experimental"
)

// Tag is the short label used in output file names
func (m EvidenceMode) Tag() string {
	switch m {
	case EvidenceExperimental:
		return "expev"
	default:
		return "allev"
	}
}

// Compression names an output framing
const (
	CompressNone   = "none"
	CompressSnappy = "snappy"
)

// Config is the complete, immutable-after-load run configuration
type Config struct {
	Organism          int            `yaml:"organism"`
	ExcludedSubsets   []string       `yaml:"excluded_subsets" validate:"dive,required"`
	Relations         []string       `yaml:"relations" validate:"required,min=1,unique,dive,required"`
	ExperimentalCodes []string       `yaml:"experimental_codes" validate:"required,min=1,unique,dive,required"`
	EvidenceModes     []EvidenceMode `yaml:"evidence_modes" validate:"required,min=1,unique,dive,oneof=all experimental"`

	Inputs   InputConfig    `yaml:"inputs"`
	Output   OutputConfig   `yaml:"output"`
	S3       S3Config       `yaml:"s3"`
	Postgres PostgresConfig `yaml:"postgres"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
}

// InputConfig locates the three upstream sources
type InputConfig struct {
	Ontology string `yaml:"ontology" validate:"required"`
	Gene2Go  string `yaml:"gene2go" validate:"required"`
	GeneInfo string `yaml:"gene_info" validate:"required"`
}

// OutputConfig controls what is written and where
type OutputConfig struct {
	Dir      string `yaml:"dir" validate:"required"`
	Compress string `yaml:"compress"`
	// Graph enables the per-domain node and edge files
	Graph bool `yaml:"graph"`
	// Wide enables the one-row-per-term summary
	Wide bool `yaml:"wide"`
}

// S3Config enables uploading every output file to a bucket
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	// Static credentials; the default AWS credential chain applies when empty
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// Enabled reports whether an upload target is configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// PostgresConfig enables loading summary rows into PostgreSQL
type PostgresConfig struct {
	URL string `yaml:"url"`
}

// MetricsConfig points at a node-exporter textfile to write after the run
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// LogConfig sets the minimum log level
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
}

// Default returns the configuration used for the human GO pipeline
func Default() *Config {
	return &Config{
		Organism: 9606,
		ExcludedSubsets: []string{
			"goantislim_grouping",
			"gocheck_do_not_annotate",
			"gocheck_do_not_manually_annotate",
		},
		Relations:         []string{"is_a", "part_of"},
		ExperimentalCodes: []string{"EXP", "IDA", "IPI", "IMP", "IGI", "IEP"},
		EvidenceModes:     []EvidenceMode{EvidenceAll, EvidenceExperimental},
		Inputs: InputConfig{
			Ontology: "data/input/go-basic.obo",
			Gene2Go:  "data/input/gene2go.gz",
			GeneInfo: "data/input/gene_info.gz",
		},
		Output: OutputConfig{
			Dir:      "data/output",
			Compress: CompressNone,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values; lists present in the file replace the default list.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.Output.Compress = validation.DefaultOr(cfg.Output.Compress, CompressNone)
	return cfg, nil
}

// Validate checks struct tags first, then cross-field rules
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	err := validation.NewConfigValidator("config").
		Positive("organism", c.Organism).
		Unique("excluded_subsets", c.ExcludedSubsets).
		When(c.Output.Compress != "", func(v *validation.ConfigValidator) {
			v.OneOf("output.compress", c.Output.Compress, []string{CompressNone, CompressSnappy})
		}).
		When(c.S3.Prefix != "" || c.S3.Endpoint != "", func(v *validation.ConfigValidator) {
			v.Required("s3.bucket", c.S3.Bucket)
		}).
		When(c.S3.Enabled(), func(v *validation.ConfigValidator) {
			v.Required("s3.region", c.S3.Region)
		}).
		When(c.S3.AccessKey != "" || c.S3.SecretKey != "", func(v *validation.ConfigValidator) {
			v.Required("s3.access_key", c.S3.AccessKey)
			v.Required("s3.secret_key", c.S3.SecretKey)
		}).
		Custom("output.dir", func() error {
			if info, err := os.Stat(c.Output.Dir); err == nil && !info.IsDir() {
				return fmt.Errorf("%s exists and is not a directory", c.Output.Dir)
			}
			return nil
		}).
		Validate()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// HasMode reports whether the given evidence mode is configured
func (c *Config) HasMode(m EvidenceMode) bool {
	return slices.Contains(c.EvidenceModes, m)
}

// Fingerprint is a stable digest of the settings that affect results,
// recorded in the run manifest so two outputs can be compared.
func (c *Config) Fingerprint() string {
	view := struct {
		Organism          int
		ExcludedSubsets   []string
		Relations         []string
		ExperimentalCodes []string
		EvidenceModes     []EvidenceMode
	}{
		c.Organism,
		sortedCopy(c.ExcludedSubsets),
		sortedCopy(c.Relations),
		sortedCopy(c.ExperimentalCodes),
		c.EvidenceModes,
	}
	// a struct of ints and string slices always marshals
	data, _ := yaml.Marshal(view)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

func sortedCopy(in []string) []string {
	out := slices.Clone(in)
	slices.Sort(out)
	return out
}

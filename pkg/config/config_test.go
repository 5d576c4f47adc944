package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goannotate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	cfg.Output.Dir = t.TempDir()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 9606, cfg.Organism)
	assert.ElementsMatch(t, []string{"is_a", "part_of"}, cfg.Relations)
	assert.True(t, cfg.HasMode(EvidenceAll))
	assert.True(t, cfg.HasMode(EvidenceExperimental))
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "goannotate.yaml"))
	require.NoError(t, err)

	example := *cfg
	example.Output.Dir = t.TempDir()
	require.NoError(t, example.Validate())

	def := Default()
	assert.Equal(t, def.Organism, cfg.Organism)
	assert.Equal(t, def.ExcludedSubsets, cfg.ExcludedSubsets)
	assert.Equal(t, def.ExperimentalCodes, cfg.ExperimentalCodes)
	assert.Equal(t, def.EvidenceModes, cfg.EvidenceModes)
	assert.Equal(t, def.Fingerprint(), cfg.Fingerprint())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeFile(t, `
organism: 10090
relations: [is_a]
evidence_modes: [experimental]
output:
  dir: out
  compress: snappy
  graph: true
s3:
  bucket: go-annotations
  region: eu-west-1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10090, cfg.Organism)
	assert.Equal(t, []string{"is_a"}, cfg.Relations)
	assert.Equal(t, []EvidenceMode{EvidenceExperimental}, cfg.EvidenceModes)
	assert.Equal(t, CompressSnappy, cfg.Output.Compress)
	assert.True(t, cfg.Output.Graph)
	assert.True(t, cfg.S3.Enabled())
	// untouched keys keep defaults
	assert.Len(t, cfg.ExperimentalCodes, 6)
	assert.Equal(t, "data/input/gene2go.gz", cfg.Inputs.Gene2Go)
}

func TestLoad_BlankCompressionMeansNone(t *testing.T) {
	cfg, err := Load(writeFile(t, "output:\n  compress: \"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, CompressNone, cfg.Output.Compress)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "organism: [not, a, number]"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero organism", func(c *Config) { c.Organism = 0 }, "config.organism: value 0 must be positive"},
		{"negative organism", func(c *Config) { c.Organism = -9606 }, "config.organism"},
		{"no relations", func(c *Config) { c.Relations = []string{} }, "Relations"},
		{"blank relation", func(c *Config) { c.Relations = []string{"is_a", ""} }, "Relations[1]"},
		{"unknown mode", func(c *Config) { c.EvidenceModes = []EvidenceMode{"curated"} }, "must be one of"},
		{"duplicate mode", func(c *Config) { c.EvidenceModes = []EvidenceMode{EvidenceAll, EvidenceAll} }, "unique"},
		{"bad compression", func(c *Config) { c.Output.Compress = "zstd" }, "output.compress"},
		{"repeated subset", func(c *Config) { c.ExcludedSubsets = []string{"a", "a"} }, "duplicate entry"},
		{"missing ontology", func(c *Config) { c.Inputs.Ontology = "" }, "Ontology"},
		{"prefix without bucket", func(c *Config) { c.S3.Prefix = "runs/" }, "s3.bucket"},
		{"bucket without region", func(c *Config) { c.S3.Bucket = "b" }, "s3.region"},
		{"access key without secret", func(c *Config) { c.S3.AccessKey = "AKIA" }, "s3.secret_key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Output.Dir = t.TempDir()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_OutputDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	cfg := Default()
	cfg.Output.Dir = file
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not a directory"))
}

func TestEvidenceModeTag(t *testing.T) {
	assert.Equal(t, "allev", EvidenceAll.Tag())
	assert.Equal(t, "expev", EvidenceExperimental.Tag())
}

func TestFingerprint(t *testing.T) {
	a, b := Default(), Default()
	b.Relations = []string{"part_of", "is_a"}
	b.Output.Dir = "elsewhere"
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "ordering and output location must not matter")

	b.Organism = 10090
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-goannotate/pkg/config"
	"github.com/dd0wney/cluso-goannotate/pkg/logging"
	"github.com/dd0wney/cluso-goannotate/pkg/metrics"
	"github.com/dd0wney/cluso-goannotate/pkg/pipeline"
)

// overrides holds flag values that take precedence over the config file
type overrides struct {
	configPath string
	organism   int
	ontology   string
	gene2go    string
	geneInfo   string
	outputDir  string
	compress   string
	graph      bool
	wide       bool
	modes      []string
	postgres   string
	textfile   string
	logLevel   string
}

func rootCmd() *cobra.Command {
	o := &overrides{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Propagate GO annotations along the ontology",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "Config file path (YAML)")
	flags.IntVar(&o.organism, "organism", 0, "NCBI taxonomy id to annotate")
	flags.StringVar(&o.ontology, "ontology", "", "OBO ontology file")
	flags.StringVar(&o.gene2go, "gene2go", "", "NCBI gene2go file (.gz accepted)")
	flags.StringVar(&o.geneInfo, "gene-info", "", "NCBI gene_info file (.gz accepted)")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	run := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline and write outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := o.load(cmd)
			if err != nil {
				return err
			}
			manifest, err := pipeline.NewRunner(cfg,
				pipeline.WithLogger(logger),
				pipeline.WithMetrics(metrics.DefaultRegistry()),
			).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s wrote %d files to %s\n",
				manifest.RunID, len(manifest.Files), cfg.Output.Dir)
			return nil
		},
	}
	run.Flags().StringVar(&o.outputDir, "output-dir", "", "Directory for output files")
	run.Flags().StringVar(&o.compress, "compress", "", "Output framing (none, snappy)")
	run.Flags().BoolVar(&o.graph, "graph", false, "Also write per-domain node and edge files")
	run.Flags().BoolVar(&o.wide, "wide", false, "Also write the one-row-per-term summary")
	run.Flags().StringSliceVar(&o.modes, "mode", nil, "Evidence modes to run (all, experimental)")
	run.Flags().StringVar(&o.postgres, "postgres-url", "", "Load summary rows into this PostgreSQL database")
	run.Flags().StringVar(&o.textfile, "metrics-textfile", "", "Write Prometheus metrics to this file")

	check := &cobra.Command{
		Use:   "check",
		Short: "Validate inputs and report what a run would process",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := o.load(cmd)
			if err != nil {
				return err
			}
			report, err := pipeline.NewRunner(cfg,
				pipeline.WithLogger(logger),
				pipeline.WithMetrics(metrics.NewRegistry()),
			).Check(cmd.Context())
			if report != nil {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(report); encErr != nil {
					return encErr
				}
			}
			return err
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	}

	cmd.AddCommand(run, check, version)
	return cmd
}

// load reads the config file, applies changed flags and validates the result
func (o *overrides) load(cmd *cobra.Command) (*config.Config, logging.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, &configError{err}
	}
	o.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, &configError{err}
	}

	logger := logging.NewStderrLogger(cfg.Log.Level)
	return cfg, logger, nil
}

func (o *overrides) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("organism") {
		cfg.Organism = o.organism
	}
	if changed("ontology") {
		cfg.Inputs.Ontology = o.ontology
	}
	if changed("gene2go") {
		cfg.Inputs.Gene2Go = o.gene2go
	}
	if changed("gene-info") {
		cfg.Inputs.GeneInfo = o.geneInfo
	}
	if changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if changed("output-dir") {
		cfg.Output.Dir = o.outputDir
	}
	if changed("compress") {
		cfg.Output.Compress = o.compress
	}
	if changed("graph") {
		cfg.Output.Graph = o.graph
	}
	if changed("wide") {
		cfg.Output.Wide = o.wide
	}
	if changed("mode") {
		cfg.EvidenceModes = nil
		for _, m := range o.modes {
			cfg.EvidenceModes = append(cfg.EvidenceModes, config.EvidenceMode(m))
		}
	}
	if changed("postgres-url") {
		cfg.Postgres.URL = o.postgres
	}
	if changed("metrics-textfile") {
		cfg.Metrics.Textfile = o.textfile
	}
}

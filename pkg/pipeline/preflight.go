package pipeline

import (
	"context"
	"errors"

	"github.com/dd0wney/cluso-goannotate/pkg/export"
	"github.com/dd0wney/cluso-goannotate/pkg/health"
	"github.com/dd0wney/cluso-goannotate/pkg/logging"
)

// ErrPreflight is returned by Check when an output dependency is unhealthy
var ErrPreflight = errors.New("preflight failed")

// Preflight probes the inputs, the output directory and any configured
// services without reading or writing data.
func (r *Runner) Preflight(ctx context.Context) health.Response {
	checker := health.NewChecker()
	checker.Register("ontology", health.FileCheck(r.cfg.Inputs.Ontology))
	checker.Register("gene2go", health.FileCheck(r.cfg.Inputs.Gene2Go))
	checker.Register("gene_info", health.FileCheck(r.cfg.Inputs.GeneInfo))
	checker.Register("output_dir", health.WritableDirCheck(r.cfg.Output.Dir))

	if url := r.cfg.Postgres.URL; url != "" {
		checker.Register("postgres", health.PingCheck(func(ctx context.Context) error {
			return export.PingPostgres(ctx, url)
		}))
	}
	if r.cfg.S3.Enabled() {
		checker.Register("s3", health.PingCheck(func(ctx context.Context) error {
			client, err := export.NewS3Client(ctx, export.S3Options{
				Region:    r.cfg.S3.Region,
				Endpoint:  r.cfg.S3.Endpoint,
				AccessKey: r.cfg.S3.AccessKey,
				SecretKey: r.cfg.S3.SecretKey,
			})
			if err != nil {
				return err
			}
			return export.CheckBucket(ctx, client, r.cfg.S3.Bucket)
		}))
	}

	resp := checker.Run(ctx)
	for _, name := range checker.Names() {
		c := resp.Checks[name]
		fields := []logging.Field{logging.String("check", name), logging.String("status", string(c.Status)), logging.Latency(c.Duration)}
		if c.Status == health.StatusHealthy {
			r.logger.Debug(c.Message, fields...)
		} else {
			r.logger.Warn(c.Message, fields...)
		}
	}
	return resp
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kacperjurak/goramancore"
	"github.com/kacperjurak/goramancore/internal/log"
	"github.com/kacperjurak/goramancore/internal/processing"
	"github.com/kacperjurak/goramancore/internal/utils"
	"github.com/kacperjurak/goramancore/pkg/config"
	"github.com/kacperjurak/goramancore/pkg/loader"
	"github.com/kacperjurak/goramancore/pkg/models"
	"github.com/kacperjurak/goramancore/pkg/profiling"
	"github.com/kacperjurak/goramancore/pkg/report"
	"github.com/kacperjurak/goramancore/pkg/worker"
)

func newBatchCmd() *cobra.Command {
	var (
		configPath    string
		referencePath string
		outDir        string
		flagged       config.Config
	)

	cmd := &cobra.Command{
		Use:   "batch MEASUREMENT...",
		Short: "Classify several measurement files against one reference",
		Long: `Classifies every measurement file on a pool of workers and writes one
report per file into the output directory, named after the measurement.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, configPath, &flagged)
			if err != nil {
				return err
			}
			if err := log.Init(cfg.Debug, cfg.Quiet); err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runBatch(ctx, args, referencePath, outDir, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file; flags override it")
	f.StringVarP(&referencePath, "reference", "r", "", "Reference (media) file")
	f.StringVarP(&outDir, "out-dir", "d", ".", "Directory for the reports")
	bindConfigFlags(cmd, &flagged)
	return cmd
}

func runBatch(ctx context.Context, paths []string, referencePath, outDir string, cfg *config.Config) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	sep := cfg.SeparatorRune()
	var reference *goramancore.Dataset
	if referencePath != "" {
		if reference, err = loader.LoadFile(referencePath, sep); err != nil {
			return fmt.Errorf("load reference: %w", err)
		}
	}

	var metrics *profiling.Metrics
	if cfg.MetricsOut != "" {
		metrics = profiling.NewMetrics()
	}
	processor := processing.NewRamanProcessor(metrics)

	jobs := make([]worker.Job, len(paths))
	for i, p := range paths {
		jobs[i] = worker.Job{ID: utils.GenerateID(), Path: p}
	}

	results := worker.Run(ctx, worker.Options{
		Workers: cfg.Workers,
		Processor: func(_ context.Context, job worker.Job) (models.Report, error) {
			measurement, err := loader.LoadFile(job.Path, sep)
			if err != nil {
				return models.Report{}, err
			}
			return processor.Process(measurement, reference, cfg)
		},
	}, jobs)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Errorw("Measurement failed", "path", r.Job.Path, "error", r.Err)
			continue
		}
		out := reportPath(outDir, r.Job.Path, format)
		if err := report.WriteFile(out, r.Report, format); err != nil {
			return err
		}
		log.Infow("Report written", "path", r.Job.Path, "out", out,
			"duration_ms", float64(r.ProcessingTime.Nanoseconds())/1e6)
	}

	if metrics != nil {
		if err := metrics.WriteFile(cfg.MetricsOut); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d measurements failed", failed, len(paths))
	}
	return nil
}

// reportPath names the report after the measurement file.
func reportPath(dir, measurement string, format report.Format) string {
	base := filepath.Base(measurement)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"."+string(format))
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kacperjurak/goramancore"
	"github.com/kacperjurak/goramancore/internal/log"
	"github.com/kacperjurak/goramancore/internal/processing"
	"github.com/kacperjurak/goramancore/pkg/config"
	"github.com/kacperjurak/goramancore/pkg/loader"
	"github.com/kacperjurak/goramancore/pkg/profiling"
	"github.com/kacperjurak/goramancore/pkg/report"
)

func newClassifyCmd() *cobra.Command {
	var (
		configPath string
		flagged    config.Config
	)

	cmd := &cobra.Command{
		Use:   "classify MEASUREMENT [REFERENCE]",
		Short: "Classify measurement spectra and report the weak set over time",
		Long: `Runs the threshold, outlier and (given a reference file) reference-match
classifiers over the measurement file. Every classifier gets its own
partition and weak-set timeline in the report; they are never merged.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, configPath, &flagged)
			if err != nil {
				return err
			}
			if err := log.Init(cfg.Debug, cfg.Quiet); err != nil {
				return err
			}
			defer log.Sync()

			return runClassify(cmd, args, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file; flags override it")
	cmd.Flags().StringVarP(&flagged.Output, "out", "o", "", "Report file (stdout when empty)")
	bindConfigFlags(cmd, &flagged)
	return cmd
}

func runClassify(cmd *cobra.Command, args []string, cfg *config.Config) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	sep := cfg.SeparatorRune()
	measurement, err := loader.LoadFile(args[0], sep)
	if err != nil {
		return fmt.Errorf("load measurement: %w", err)
	}

	var reference *goramancore.Dataset
	if len(args) > 1 {
		if reference, err = loader.LoadFile(args[1], sep); err != nil {
			return fmt.Errorf("load reference: %w", err)
		}
	}

	var metrics *profiling.Metrics
	if cfg.MetricsOut != "" {
		metrics = profiling.NewMetrics()
	}

	r, err := processing.NewRamanProcessor(metrics).Process(measurement, reference, cfg)
	if err != nil {
		return err
	}

	if cfg.Output == "" || cfg.Output == "-" {
		err = report.Encode(cmd.OutOrStdout(), r, format)
	} else {
		err = report.WriteFile(cfg.Output, r, format)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if metrics != nil {
		if err := metrics.WriteFile(cfg.MetricsOut); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	for _, c := range r.Classifiers {
		if c.Error != "" {
			log.Warnw("Classifier reported an error", "method", c.Method, "error", c.Error)
		}
	}
	profiling.LogMemoryStats()
	log.Infow("Report written", "id", r.ID, "format", format, "out", cfg.Output)
	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/kacperjurak/goramancore/pkg/config"
)

// overlays copy one explicitly set flag from the flag-bound config onto
// the effective one, so flags win over the config file.
var overlays = map[string]func(dst, src *config.Config){
	"sep":          func(dst, src *config.Config) { dst.Separator = src.Separator },
	"relax":        func(dst, src *config.Config) { dst.RelaxFactor = src.RelaxFactor },
	"bins":         func(dst, src *config.Config) { dst.HistogramBins = src.HistogramBins },
	"lower-fence":  func(dst, src *config.Config) { dst.LowerFence = src.LowerFence },
	"upper-fence":  func(dst, src *config.Config) { dst.UpperFence = src.UpperFence },
	"bucket":       func(dst, src *config.Config) { dst.BucketWidth = src.BucketWidth },
	"time-column":  func(dst, src *config.Config) { dst.TimeColumn = src.TimeColumn },
	"workers":      func(dst, src *config.Config) { dst.Workers = src.Workers },
	"format":       func(dst, src *config.Config) { dst.Format = src.Format },
	"out":          func(dst, src *config.Config) { dst.Output = src.Output },
	"metrics-out":  func(dst, src *config.Config) { dst.MetricsOut = src.MetricsOut },
	"with-spectra": func(dst, src *config.Config) { dst.WithSpectra = src.WithSpectra },
	"debug":        func(dst, src *config.Config) { dst.Debug = src.Debug },
	"quiet":        func(dst, src *config.Config) { dst.Quiet = src.Quiet },
}

// bindConfigFlags registers the classification flags on cmd, bound to
// fields of flagged.
func bindConfigFlags(cmd *cobra.Command, flagged *config.Config) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&flagged.Separator, "sep", d.Separator, "Column separator: ; , : or .")
	f.Float64Var(&flagged.RelaxFactor, "relax", d.RelaxFactor, "Relax factor applied to the threshold")
	f.IntVar(&flagged.HistogramBins, "bins", d.HistogramBins, "Histogram bins of the threshold search")
	f.Float64Var(&flagged.LowerFence, "lower-fence", d.LowerFence, "IQR multiplier of the lower outlier fence")
	f.Float64Var(&flagged.UpperFence, "upper-fence", d.UpperFence, "IQR multiplier of the upper outlier fence")
	f.DurationVar(&flagged.BucketWidth, "bucket", d.BucketWidth, "Width of the time buckets")
	f.StringVar(&flagged.TimeColumn, "time-column", d.TimeColumn, "Metadata column holding timestamps")
	f.IntVar(&flagged.Workers, "workers", d.Workers, "Classifiers run in parallel")
	f.StringVar(&flagged.Format, "format", d.Format, "Report format: json, yaml or msgpack")
	f.StringVar(&flagged.MetricsOut, "metrics-out", d.MetricsOut, "Write Prometheus metrics to this textfile")
	f.BoolVar(&flagged.WithSpectra, "with-spectra", d.WithSpectra, "Embed strong and weak spectra in the report")
}

// resolveConfig layers defaults, the optional config file and the flags
// the user actually set.
func resolveConfig(cmd *cobra.Command, path string, flagged *config.Config) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flagged.Debug, flagged.Quiet = debugFlag, quietFlag
	for name, apply := range overlays {
		if cmd.Flags().Changed(name) {
			apply(cfg, flagged)
		}
	}
	return cfg, cfg.Validate()
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kacperjurak/goramancore"
	"github.com/kacperjurak/goramancore/internal/log"
	"github.com/kacperjurak/goramancore/pkg/loader"
)

type simulateOptions struct {
	observations int
	wavenumbers  int
	strong       float64
	seed         int64
	separator    string
}

func newSimulateCmd() *cobra.Command {
	opts := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate DIR",
		Short: "Write a synthetic measurement.csv and media.csv pair into DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := log.Init(debugFlag, quietFlag); err != nil {
				return err
			}
			defer log.Sync()
			return runSimulate(args[0], opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.observations, "observations", 60, "Spectra in the measurement file")
	f.IntVar(&opts.wavenumbers, "wavenumbers", 200, "Points on the wavenumber axis")
	f.Float64Var(&opts.strong, "strong", 0.2, "Share of measurement spectra carrying the signal")
	f.Int64Var(&opts.seed, "seed", 1, "Random seed")
	f.StringVar(&opts.separator, "sep", ";", "Column separator: ; , : or .")
	return cmd
}

func runSimulate(dir string, opts simulateOptions) error {
	sep := []rune(opts.separator)
	if len(sep) != 1 || !loader.ValidSeparator(sep[0]) {
		return &goramancore.UnrecognizedSeparatorError{Separator: opts.separator}
	}
	if opts.wavenumbers < 1 {
		return fmt.Errorf("need at least one wavenumber, got %d", opts.wavenumbers)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	sim := goramancore.DefaultSimOptions()
	sim.Name = "measurement"
	sim.Axis = goramancore.LinearAxis(400, 1800, opts.wavenumbers)
	sim.Observations = opts.observations
	sim.StrongShare = opts.strong
	sim.Seed = opts.seed
	measurement, truth, err := goramancore.Simulate(sim)
	if err != nil {
		return err
	}

	media := sim
	media.Name = "media"
	media.StrongShare = 0
	media.Observations = max(opts.observations/2, 1)
	media.Seed = opts.seed + 1
	reference, _, err := goramancore.Simulate(media)
	if err != nil {
		return err
	}

	for name, ds := range map[string]*goramancore.Dataset{"measurement.csv": measurement, "media.csv": reference} {
		path := filepath.Join(dir, name)
		if err := loader.WriteFile(path, ds, sep[0]); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	strong := 0
	for _, s := range truth {
		if s {
			strong++
		}
	}
	log.Infow("Simulated spectra written",
		"dir", dir,
		"observations", measurement.Len(),
		"wavenumbers", measurement.Features(),
		"strong", strong)
	return nil
}

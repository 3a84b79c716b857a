package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kacperjurak/goramancore/internal/log"
)

var (
	debugFlag bool
	quietFlag bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "goramanclass",
		Short:         "Split Raman spectra into strong and weak signals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Development logging at debug level")
	root.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Log warnings and errors only")

	root.AddCommand(newClassifyCmd(), newBatchCmd(), newSimulateCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Errorw("Command failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

// Package commands implements the pnetlab CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pnetlab/go-pnetlab/format"
	"github.com/pnetlab/go-pnetlab/petri"
)

var (
	verbose    bool
	formatFlag string

	logger *zap.Logger
)

// Execute runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "pnetlab",
		Short:         "Petri net workbench: model conversion, replay, and conformance checking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger = zap.NewNop()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic logging")
	root.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "model format: json, pnml, dot, mermaid (default: by file extension)")

	root.AddCommand(
		validateCmd(),
		convertCmd(),
		replayCmd(),
		alignCmd(),
		conformCmd(),
		analyzeCmd(),
	)

	err := root.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// loadNet reads and parses a model file, using the --format flag or the
// file extension to pick the format.
func loadNet(path string) (*petri.PetriNet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f := format.Format(formatFlag)
	if f == "" {
		f, err = format.Detect(path)
		if err != nil {
			return nil, err
		}
	}
	logger.Debug("parsing model", zap.String("path", path), zap.String("format", string(f)))
	return format.Parse(string(data), f)
}

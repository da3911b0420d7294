package commands

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pnetlab/go-pnetlab/align"
)

func alignCmd() *cobra.Command {
	var maxExpansions int

	cmd := &cobra.Command{
		Use:   "align <model-file> <activity>...",
		Short: "Compute a cost-optimal alignment between a trace and a model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := loadNet(args[0])
			if err != nil {
				return err
			}
			trace := args[1:]

			result := align.Align(net, trace, align.WithMaxExpansions(maxExpansions))
			logger.Debug("alignment search finished",
				zap.Int("expansions", result.Expansions),
				zap.Bool("capped", result.Capped),
				zap.Float64("cost", result.Cost))

			if math.IsInf(result.Cost, 1) {
				return fmt.Errorf("no alignment found: search exhausted without reaching a goal")
			}

			for _, move := range result.Alignment {
				fmt.Printf("  %-5s %s\n", move.Type, move.Activity)
			}
			fmt.Println(result)
			if result.Capped {
				fmt.Println("Warning: expansion cap hit; alignment is best-effort, not proven optimal.")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxExpansions, "max-expansions", align.DefaultMaxExpansions, "search expansion cap")
	return cmd
}

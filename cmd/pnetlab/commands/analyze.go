package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pnetlab/go-pnetlab/reachability"
)

func analyzeCmd() *cobra.Command {
	var maxStates, maxTokens int

	cmd := &cobra.Command{
		Use:   "analyze <model-file>",
		Short: "Explore the reachable state space of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := loadNet(args[0])
			if err != nil {
				return err
			}

			result := reachability.NewAnalyzer(net).
				WithMaxStates(maxStates).
				WithMaxTokens(maxTokens).
				Analyze()

			fmt.Printf("States: %d, edges: %d\n", result.StateCount, result.EdgeCount)
			fmt.Printf("Bounded: %v\n", result.Bounded)
			if result.Truncated {
				fmt.Printf("Truncated: %s\n", result.TruncateMsg)
			}
			if result.HasDeadlock {
				fmt.Printf("Deadlocks: %d\n", len(result.Deadlocks))
				for _, m := range result.Deadlocks {
					fmt.Printf("  %s\n", m)
				}
			}
			if len(result.DeadTransitions) > 0 {
				qualifier := "Dead"
				if !result.IsComplete {
					qualifier = "Potentially dead"
				}
				fmt.Printf("%s transitions: %s\n", qualifier, strings.Join(result.DeadTransitions, ", "))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxStates, "max-states", 10000, "state exploration limit")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 1000, "per-place token cutoff for unboundedness")
	return cmd
}

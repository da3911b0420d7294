package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pnetlab/go-pnetlab/engine"
)

func replayCmd() *cobra.Command {
	var strict bool
	var resolve bool

	cmd := &cobra.Command{
		Use:   "replay <model-file> <transition>...",
		Short: "Replay a firing sequence against a model",
		Long: `Replay applies an ordered list of transition references to the model's
initial marking. With --resolve, references may be transition labels as
well as ids; ambiguous labels are dropped with a warning. In strict mode
the first failing step aborts the replay.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := loadNet(args[0])
			if err != nil {
				return err
			}

			sequence := args[1:]
			var warnings []string
			if resolve {
				sequence, warnings = engine.ResolveSequence(net, sequence)
				logger.Debug("resolved references",
					zap.Int("resolved", len(sequence)),
					zap.Int("dropped", len(warnings)))
			}

			final, replayWarnings, err := engine.ReplayMarking(net, sequence, strict)
			if err != nil {
				return err
			}
			warnings = append(warnings, replayWarnings...)

			fmt.Printf("Final marking: %s\n", final)
			for _, w := range warnings {
				fmt.Printf("  warning: %s\n", w)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "abort on the first failing step")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "resolve labels to transition ids before replay")
	return cmd
}

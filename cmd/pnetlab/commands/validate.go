package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pnetlab/go-pnetlab/validation"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <model-file>",
		Short: "Check a model's structural invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := loadNet(args[0])
			if err != nil {
				return err
			}

			result := validation.Validate(net)
			fmt.Printf("%s\n", net)
			for _, issue := range result.Errors {
				fmt.Printf("  error [%s]: %s\n", issue.Category, issue.Message)
			}
			for _, issue := range result.Warnings {
				fmt.Printf("  warning [%s]: %s\n", issue.Category, issue.Message)
			}
			if result.Valid {
				fmt.Println("Model is valid.")
				return nil
			}
			return fmt.Errorf("model has %d validation error(s)", len(result.Errors))
		},
	}
}

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pnetlab/go-pnetlab/format"
)

func convertCmd() *cobra.Command {
	var to string
	var out string

	cmd := &cobra.Command{
		Use:   "convert <model-file>",
		Short: "Convert a model between JSON, PNML, DOT, and Mermaid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := loadNet(args[0])
			if err != nil {
				return err
			}

			text, err := format.Convert(net, format.Format(to))
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Print(text)
				return nil
			}
			return os.WriteFile(out, []byte(text), 0644)
		},
	}
	cmd.Flags().StringVarP(&to, "to", "t", "json", "target format: json, pnml, dot, mermaid")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}

package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pnetlab/go-pnetlab/align"
	"github.com/pnetlab/go-pnetlab/eventlog"
)

func conformCmd() *cobra.Command {
	var maxExpansions int
	var caseColumn, activityColumn, timestampColumn string

	cmd := &cobra.Command{
		Use:   "conform <model-file> <log-file>",
		Short: "Align every trace of an event log against a model",
		Long: `Conform parses a CSV or JSONL event log (chosen by file extension),
computes the cost-optimal alignment for each trace, and reports
aggregate fitness.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := loadNet(args[0])
			if err != nil {
				return err
			}

			log, err := loadLog(args[1], caseColumn, activityColumn, timestampColumn)
			if err != nil {
				return err
			}
			logger.Debug("parsed event log",
				zap.Int("cases", log.NumCases()),
				zap.Int("events", log.NumEvents()))

			result := align.CheckLog(net, log, align.WithMaxExpansions(maxExpansions))
			fmt.Print(result)
			for _, tr := range result.NonFittingTraces() {
				fmt.Printf("  case %s: %s\n", tr.CaseID, tr.Result)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxExpansions, "max-expansions", align.DefaultMaxExpansions, "per-trace search expansion cap")
	cmd.Flags().StringVar(&caseColumn, "case-column", "case_id", "case id column/field name")
	cmd.Flags().StringVar(&activityColumn, "activity-column", "activity", "activity column/field name")
	cmd.Flags().StringVar(&timestampColumn, "timestamp-column", "timestamp", "timestamp column/field name")
	return cmd
}

func loadLog(path, caseColumn, activityColumn, timestampColumn string) (*eventlog.EventLog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		config := eventlog.DefaultCSVConfig()
		config.CaseIDColumn = caseColumn
		config.ActivityColumn = activityColumn
		config.TimestampColumn = timestampColumn
		return eventlog.ParseCSV(path, config)
	case ".jsonl", ".ndjson":
		config := eventlog.DefaultJSONLConfig()
		config.CaseIDField = caseColumn
		config.ActivityField = activityColumn
		config.TimestampField = timestampColumn
		return eventlog.ParseJSONL(path, config)
	default:
		return nil, fmt.Errorf("unsupported log format for %q (want .csv or .jsonl)", path)
	}
}

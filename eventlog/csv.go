package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CSVConfig configures CSV parsing behavior.
type CSVConfig struct {
	CaseIDColumn     string   // column name for case id; empty means no case column
	ActivityColumn   string   // column name for activity (required)
	TimestampColumn  string   // column name for timestamp; empty means unordered events
	ResourceColumn   string   // column name for resource (optional)
	TimestampFormats []string // date/time formats to try
	Delimiter        rune     // CSV delimiter (default: comma)
}

// DefaultCSVConfig returns a configuration with common defaults.
func DefaultCSVConfig() CSVConfig {
	return CSVConfig{
		CaseIDColumn:    "case_id",
		ActivityColumn:  "activity",
		TimestampColumn: "timestamp",
		ResourceColumn:  "resource",
		TimestampFormats: []string{
			time.RFC3339,
			time.RFC3339Nano,
			"2006-01-02 15:04:05",
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05.000",
			"2006-01-02",
		},
		Delimiter: ',',
	}
}

// ParseCSV parses an event log from a CSV file.
func ParseCSV(filename string, config CSVConfig) (*EventLog, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ParseCSVReader(f, config)
}

// ParseCSVReader parses an event log from a CSV reader. The first row
// must be a header naming the configured columns. When the case-id
// column is absent (or unconfigured) all rows are grouped into one
// synthetic case with a generated id.
func ParseCSVReader(r io.Reader, config CSVConfig) (*EventLog, error) {
	if config.ActivityColumn == "" {
		return nil, fmt.Errorf("ActivityColumn is required")
	}

	reader := csv.NewReader(r)
	if config.Delimiter != 0 {
		reader.Comma = config.Delimiter
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	activityCol, ok := columns[config.ActivityColumn]
	if !ok {
		return nil, fmt.Errorf("activity column %q not found in header", config.ActivityColumn)
	}
	caseCol, hasCase := columns[config.CaseIDColumn]
	timeCol, hasTime := columns[config.TimestampColumn]
	resourceCol, hasResource := columns[config.ResourceColumn]

	// Logs without case ids become one anonymous case.
	syntheticCase := ""
	if !hasCase {
		syntheticCase = uuid.NewString()
	}

	log := NewEventLog()
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}
		row++

		event := Event{Activity: strings.TrimSpace(record[activityCol])}
		if hasCase {
			event.CaseID = strings.TrimSpace(record[caseCol])
		} else {
			event.CaseID = syntheticCase
		}
		if hasTime && timeCol < len(record) {
			ts, err := parseTimestamp(record[timeCol], config.TimestampFormats)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			event.Timestamp = ts
		}
		if hasResource && resourceCol < len(record) {
			event.Resource = strings.TrimSpace(record[resourceCol])
		}
		log.AddEvent(event)
	}

	if hasTime {
		log.SortTraces()
	}
	return log, nil
}

func parseTimestamp(value string, formats []string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, format := range formats {
		if ts, err := time.Parse(format, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}

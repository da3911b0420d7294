package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JSONLConfig configures JSONL parsing behavior.
type JSONLConfig struct {
	CaseIDField      string   // JSON field for case id; empty means no case field
	ActivityField    string   // JSON field for activity (required)
	TimestampField   string   // JSON field for timestamp; empty means unordered events
	ResourceField    string   // JSON field for resource (optional)
	TimestampFormats []string // date/time formats to try
}

// DefaultJSONLConfig returns a configuration with common defaults.
func DefaultJSONLConfig() JSONLConfig {
	return JSONLConfig{
		CaseIDField:    "case_id",
		ActivityField:  "activity",
		TimestampField: "timestamp",
		ResourceField:  "resource",
		TimestampFormats: []string{
			time.RFC3339,
			time.RFC3339Nano,
			"2006-01-02 15:04:05",
			"2006-01-02T15:04:05",
			"2006-01-02",
		},
	}
}

// ParseJSONL parses an event log from a JSONL (JSON Lines) file.
func ParseJSONL(filename string, config JSONLConfig) (*EventLog, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ParseJSONLReader(f, config)
}

// ParseJSONLReader parses an event log from a JSONL reader. Each line is
// one JSON object describing an event. Events lacking the case-id field
// are grouped into one synthetic case with a generated id.
func ParseJSONLReader(r io.Reader, config JSONLConfig) (*EventLog, error) {
	if config.ActivityField == "" {
		return nil, fmt.Errorf("ActivityField is required")
	}

	syntheticCase := uuid.NewString()
	log := NewEventLog()
	scanner := bufio.NewScanner(r)
	line := 0
	sawTimestamp := false

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var record map[string]interface{}
		if err := json.Unmarshal([]byte(text), &record); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", line, err)
		}

		activity, ok := record[config.ActivityField].(string)
		if !ok || activity == "" {
			return nil, fmt.Errorf("line %d: missing activity field %q", line, config.ActivityField)
		}

		event := Event{Activity: activity, CaseID: syntheticCase}
		if config.CaseIDField != "" {
			if caseID, ok := record[config.CaseIDField].(string); ok && caseID != "" {
				event.CaseID = caseID
			}
		}
		if config.TimestampField != "" {
			if raw, ok := record[config.TimestampField].(string); ok {
				ts, err := parseTimestamp(raw, config.TimestampFormats)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				event.Timestamp = ts
				sawTimestamp = true
			}
		}
		if config.ResourceField != "" {
			if resource, ok := record[config.ResourceField].(string); ok {
				event.Resource = resource
			}
		}
		log.AddEvent(event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	if sawTimestamp {
		log.SortTraces()
	}
	return log, nil
}

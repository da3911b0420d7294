// Package eventlog provides parsing of process event logs for
// conformance checking. It supports CSV and JSONL inputs and groups
// events into per-case traces whose activity sequences feed replay and
// alignment.
package eventlog

import (
	"fmt"
	"sort"
	"time"
)

// Event is a single observed activity execution.
type Event struct {
	CaseID    string    // process instance the event belongs to
	Activity  string    // activity name, matched against transition ids/labels
	Timestamp time.Time // when the event occurred
	Resource  string    // who or what performed it (optional)
}

// Trace is the ordered sequence of events for one case.
type Trace struct {
	CaseID string
	Events []Event
}

// EventLog contains all traces of a process log.
type EventLog struct {
	Cases map[string]*Trace
}

// NewEventLog creates an empty event log.
func NewEventLog() *EventLog {
	return &EventLog{Cases: make(map[string]*Trace)}
}

// AddEvent adds an event to the log, creating a new trace if needed.
func (log *EventLog) AddEvent(event Event) {
	trace, exists := log.Cases[event.CaseID]
	if !exists {
		trace = &Trace{CaseID: event.CaseID}
		log.Cases[event.CaseID] = trace
	}
	trace.Events = append(trace.Events, event)
}

// SortTraces sorts events within each trace by timestamp.
func (log *EventLog) SortTraces() {
	for _, trace := range log.Cases {
		sort.SliceStable(trace.Events, func(i, j int) bool {
			return trace.Events[i].Timestamp.Before(trace.Events[j].Timestamp)
		})
	}
}

// GetTraces returns all traces sorted by case id for deterministic
// iteration.
func (log *EventLog) GetTraces() []*Trace {
	traces := make([]*Trace, 0, len(log.Cases))
	for _, trace := range log.Cases {
		traces = append(traces, trace)
	}
	sort.Slice(traces, func(i, j int) bool {
		return traces[i].CaseID < traces[j].CaseID
	})
	return traces
}

// NumCases returns the number of cases in the log.
func (log *EventLog) NumCases() int {
	return len(log.Cases)
}

// NumEvents returns the total number of events across all cases.
func (log *EventLog) NumEvents() int {
	total := 0
	for _, trace := range log.Cases {
		total += len(trace.Events)
	}
	return total
}

// Activities returns a sorted list of unique activity names in the log.
func (log *EventLog) Activities() []string {
	seen := make(map[string]bool)
	for _, trace := range log.Cases {
		for _, event := range trace.Events {
			seen[event.Activity] = true
		}
	}
	result := make([]string, 0, len(seen))
	for activity := range seen {
		result = append(result, activity)
	}
	sort.Strings(result)
	return result
}

// ActivityVariant returns the trace's activity sequence: the raw token
// list consumed by replay and alignment.
func (trace *Trace) ActivityVariant() []string {
	variant := make([]string, len(trace.Events))
	for i, event := range trace.Events {
		variant[i] = event.Activity
	}
	return variant
}

// Duration returns the time from first to last event in the trace.
func (trace *Trace) Duration() time.Duration {
	if len(trace.Events) < 2 {
		return 0
	}
	return trace.Events[len(trace.Events)-1].Timestamp.Sub(trace.Events[0].Timestamp)
}

// String returns a compact representation of the trace.
func (trace *Trace) String() string {
	return fmt.Sprintf("Case %s: %v", trace.CaseID, trace.ActivityVariant())
}

// Summary provides basic statistics about the event log.
type Summary struct {
	NumCases      int
	NumEvents     int
	NumActivities int
	NumVariants   int
	AvgCaseLength float64
}

// Summarize computes summary statistics for the event log.
func (log *EventLog) Summarize() Summary {
	summary := Summary{
		NumCases:      log.NumCases(),
		NumEvents:     log.NumEvents(),
		NumActivities: len(log.Activities()),
	}
	if summary.NumCases == 0 {
		return summary
	}

	variants := make(map[string]int)
	for _, trace := range log.Cases {
		variants[fmt.Sprintf("%v", trace.ActivityVariant())]++
	}
	summary.NumVariants = len(variants)
	summary.AvgCaseLength = float64(summary.NumEvents) / float64(summary.NumCases)
	return summary
}

// String returns a human-readable log summary.
func (s Summary) String() string {
	return fmt.Sprintf(
		"Event Log Summary:\n"+
			"  Cases: %d\n"+
			"  Events: %d\n"+
			"  Activities: %d\n"+
			"  Variants: %d\n"+
			"  Avg events per case: %.1f\n",
		s.NumCases, s.NumEvents, s.NumActivities, s.NumVariants, s.AvgCaseLength,
	)
}

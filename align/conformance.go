package align

import (
	"fmt"
	"math"
	"sort"

	"github.com/pnetlab/go-pnetlab/eventlog"
	"github.com/pnetlab/go-pnetlab/petri"
)

// LogResult aggregates alignment-based conformance over an event log.
type LogResult struct {
	TraceResults []TraceResult

	TotalTraces    int
	FittingTraces  int     // traces with a proven zero-cost alignment
	CappedTraces   int     // traces whose search hit the expansion cap
	FittingPercent float64 // percentage of fitting traces
	AvgFitness     float64 // average fitness across all traces
}

// TraceResult is the alignment outcome for one case.
type TraceResult struct {
	CaseID     string
	Activities []string
	Result     Result
	Fitting    bool // true only for a proven optimal cost-0 alignment
}

// CheckLog aligns every trace in the log against the model and
// aggregates fitness. Capped searches are counted separately and never
// reported as fitting, whatever their cost.
func CheckLog(net *petri.PetriNet, log *eventlog.EventLog, opts ...Option) *LogResult {
	result := &LogResult{
		TraceResults: make([]TraceResult, 0, log.NumCases()),
		TotalTraces:  log.NumCases(),
	}

	totalFitness := 0.0
	for _, trace := range log.GetTraces() {
		activities := trace.ActivityVariant()
		aligned := Align(net, activities, opts...)

		tr := TraceResult{
			CaseID:     trace.CaseID,
			Activities: activities,
			Result:     aligned,
			Fitting:    aligned.Cost == 0 && !aligned.Capped,
		}
		result.TraceResults = append(result.TraceResults, tr)

		if tr.Fitting {
			result.FittingTraces++
		}
		if aligned.Capped {
			result.CappedTraces++
		}
		totalFitness += aligned.Fitness
	}

	if result.TotalTraces > 0 {
		result.FittingPercent = float64(result.FittingTraces) / float64(result.TotalTraces) * 100
		result.AvgFitness = totalFitness / float64(result.TotalTraces)
	}
	return result
}

// NonFittingTraces returns the traces without a proven cost-0 alignment.
func (r *LogResult) NonFittingTraces() []TraceResult {
	result := make([]TraceResult, 0)
	for _, tr := range r.TraceResults {
		if !tr.Fitting {
			result = append(result, tr)
		}
	}
	return result
}

// TracesByFitness returns traces sorted by fitness, lowest first.
func (r *LogResult) TracesByFitness() []TraceResult {
	result := make([]TraceResult, len(r.TraceResults))
	copy(result, r.TraceResults)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Result.Fitness < result[j].Result.Fitness
	})
	return result
}

// String returns a human-readable summary.
func (r *LogResult) String() string {
	return fmt.Sprintf(
		"Conformance Results:\n"+
			"  Fitting traces: %d/%d (%.1f%%)\n"+
			"  Avg fitness: %.2f%%\n"+
			"  Capped searches: %d\n",
		r.FittingTraces, r.TotalTraces, r.FittingPercent,
		r.AvgFitness*100,
		r.CappedTraces,
	)
}

// String returns a one-line summary of a single alignment.
func (r Result) String() string {
	if math.IsInf(r.Cost, 1) {
		return "no alignment found (search exhausted)"
	}
	status := "optimal"
	if r.Capped {
		status = "capped, best-effort"
	}
	return fmt.Sprintf("alignment of %d moves, cost %.0f, fitness %.3f (%s)",
		len(r.Alignment), r.Cost, r.Fitness, status)
}

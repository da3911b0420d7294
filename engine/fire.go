package engine

import (
	"fmt"

	"github.com/pnetlab/go-pnetlab/petri"
)

// ReplayError reports a failed step during strict replay: an unknown
// transition id or a transition that was not enabled.
type ReplayError struct {
	Step       int    // zero-based position in the sequence
	Transition string // the offending reference
	Reason     string // "unknown transition" or "not enabled"
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("replay step %d (%s): %s", e.Step, e.Transition, e.Reason)
}

// IsEnabled reports whether the transition may fire under the marking:
// every input place must hold at least the arc's weight in tokens.
// Unknown transitions are never enabled.
func IsEnabled(net *petri.PetriNet, m Marking, transitionID string) bool {
	if net.Transition(transitionID) == nil {
		return false
	}
	for _, arc := range net.InputArcs(transitionID) {
		if m.Get(arc.From) < arc.Weight {
			return false
		}
	}
	return true
}

// Fire fires the transition and returns the resulting marking. The input
// marking is never mutated. Firing a disabled or unknown transition is an
// error, which guarantees token counts never go negative.
func Fire(net *petri.PetriNet, m Marking, transitionID string) (Marking, error) {
	if net.Transition(transitionID) == nil {
		return nil, fmt.Errorf("unknown transition %q", transitionID)
	}
	if !IsEnabled(net, m, transitionID) {
		return nil, fmt.Errorf("transition %q is not enabled", transitionID)
	}

	next := m.Copy()
	for _, arc := range net.InputArcs(transitionID) {
		next[arc.From] -= arc.Weight
	}
	for _, arc := range net.OutputArcs(transitionID) {
		next[arc.To] += arc.Weight
	}
	return next, nil
}

// ReplayMarking applies an ordered sequence of transition ids to the
// net's initial marking. Transitions fire in exactly the order given.
//
// In strict mode the first failing step (unknown id or not-enabled
// transition) aborts with a ReplayError and no partial marking.
// In lenient mode each failing step is recorded as a warning and
// skipped, leaving the marking unchanged; replay always completes.
func ReplayMarking(net *petri.PetriNet, sequence []string, strict bool) (Marking, []string, error) {
	m := InitialMarking(net)
	var warnings []string

	for i, id := range sequence {
		reason := ""
		if net.Transition(id) == nil {
			reason = "unknown transition"
		} else if !IsEnabled(net, m, id) {
			reason = "not enabled"
		}

		if reason != "" {
			if strict {
				return nil, nil, &ReplayError{Step: i, Transition: id, Reason: reason}
			}
			warnings = append(warnings, fmt.Sprintf("step %d (%s): %s, skipped", i, id, reason))
			continue
		}

		next, err := Fire(net, m, id)
		if err != nil {
			// Unreachable after the checks above, but never swallow it.
			return nil, nil, err
		}
		m = next
	}
	return m, warnings, nil
}

// Replay runs ReplayMarking and returns a copy of the net with its token
// counts updated to the final marking, plus any accumulated warnings.
// The input net is untouched.
func Replay(net *petri.PetriNet, sequence []string, strict bool) (*petri.PetriNet, []string, error) {
	m, warnings, err := ReplayMarking(net, sequence, strict)
	if err != nil {
		return nil, nil, err
	}
	return ApplyMarking(net, m), warnings, nil
}

// ApplyMarking returns a copy of the net whose place token counts are
// taken from the marking.
func ApplyMarking(net *petri.PetriNet, m Marking) *petri.PetriNet {
	result := net.Clone()
	for i := range result.Places {
		result.Places[i].Tokens = m.Get(result.Places[i].ID)
	}
	return result
}

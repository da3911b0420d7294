// Package reachability provides state-space analysis for Petri nets:
// reachable state counts, boundedness, deadlock detection, and dead
// transitions. It explores breadth-first over the firing engine's pure
// marking semantics.
package reachability

import (
	"sort"

	"github.com/pnetlab/go-pnetlab/engine"
	"github.com/pnetlab/go-pnetlab/petri"
)

// Analyzer performs reachability analysis on one net.
type Analyzer struct {
	net       *petri.PetriNet
	initial   engine.Marking
	maxStates int
	maxTokens int
}

// NewAnalyzer creates an analyzer starting from the net's declared
// initial marking.
func NewAnalyzer(net *petri.PetriNet) *Analyzer {
	return &Analyzer{
		net:       net,
		initial:   engine.InitialMarking(net),
		maxStates: 10000,
		maxTokens: 1000,
	}
}

// WithInitialMarking sets a custom initial marking.
func (a *Analyzer) WithInitialMarking(m engine.Marking) *Analyzer {
	a.initial = m.Copy()
	return a
}

// WithMaxStates sets the maximum number of states to explore.
func (a *Analyzer) WithMaxStates(max int) *Analyzer {
	a.maxStates = max
	return a
}

// WithMaxTokens sets the per-place token cutoff used to flag unbounded
// growth.
func (a *Analyzer) WithMaxTokens(max int) *Analyzer {
	a.maxTokens = max
	return a
}

// Result contains the results of reachability analysis.
type Result struct {
	StateCount int
	EdgeCount  int

	Bounded     bool
	Truncated   bool
	TruncateMsg string

	HasDeadlock bool
	Deadlocks   []engine.Marking // terminal states that still hold tokens

	DeadTransitions  []string // never fired in the explored space
	FiredTransitions []string
	MaxTokens        map[string]int // highest count observed per place

	// IsComplete is true when the full state space was explored, which
	// is what makes DeadTransitions a proof rather than a suspicion.
	IsComplete bool
}

// Analyze explores the state space breadth-first.
func (a *Analyzer) Analyze() *Result {
	result := &Result{
		Bounded:   true,
		MaxTokens: make(map[string]int),
	}

	transitionIDs := make([]string, 0, len(a.net.Transitions))
	for _, t := range a.net.Transitions {
		transitionIDs = append(transitionIDs, t.ID)
	}
	sort.Strings(transitionIDs)

	visited := map[string]engine.Marking{a.initial.Key(): a.initial}
	queue := []engine.Marking{a.initial}
	fired := make(map[string]bool)

	for len(queue) > 0 && len(visited) < a.maxStates {
		current := queue[0]
		queue = queue[1:]

		for place, tokens := range current {
			if tokens > result.MaxTokens[place] {
				result.MaxTokens[place] = tokens
			}
		}

		enabledCount := 0
		for _, id := range transitionIDs {
			if !engine.IsEnabled(a.net, current, id) {
				continue
			}
			enabledCount++
			next, err := engine.Fire(a.net, current, id)
			if err != nil {
				continue
			}
			fired[id] = true
			result.EdgeCount++

			if next.Max() > a.maxTokens {
				result.Bounded = false
				result.Truncated = true
				result.TruncateMsg = "unbounded: token count exceeded limit"
				continue
			}
			if _, seen := visited[next.Key()]; !seen {
				visited[next.Key()] = next
				queue = append(queue, next)
			}
		}

		// A terminal state that still holds tokens is a deadlock.
		if enabledCount == 0 && current.Total() > 0 {
			result.HasDeadlock = true
			result.Deadlocks = append(result.Deadlocks, current)
		}

		if result.Truncated && !result.Bounded {
			break
		}
	}

	if len(visited) >= a.maxStates && !result.Truncated {
		result.Truncated = true
		result.TruncateMsg = "state limit reached"
	}
	result.IsComplete = !result.Truncated
	result.StateCount = len(visited)

	for _, id := range transitionIDs {
		if fired[id] {
			result.FiredTransitions = append(result.FiredTransitions, id)
		} else {
			result.DeadTransitions = append(result.DeadTransitions, id)
		}
	}
	return result
}

// IsReachable checks whether a target marking is reachable from the
// initial marking within the analyzer's state limit.
func (a *Analyzer) IsReachable(target engine.Marking) bool {
	targetKey := target.Key()
	if a.initial.Key() == targetKey {
		return true
	}

	visited := map[string]bool{a.initial.Key(): true}
	queue := []engine.Marking{a.initial}
	for len(queue) > 0 && len(visited) < a.maxStates {
		current := queue[0]
		queue = queue[1:]
		for _, t := range a.net.Transitions {
			if !engine.IsEnabled(a.net, current, t.ID) {
				continue
			}
			next, err := engine.Fire(a.net, current, t.ID)
			if err != nil || next.Max() > a.maxTokens {
				continue
			}
			key := next.Key()
			if key == targetKey {
				return true
			}
			if !visited[key] {
				visited[key] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

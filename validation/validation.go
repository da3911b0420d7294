// Package validation provides structural validation for Petri nets.
// It enforces the invariants the algorithmic core relies on: unique ids,
// resolvable arc endpoints, positive weights, and non-negative tokens.
package validation

import (
	"fmt"

	"github.com/pnetlab/go-pnetlab/petri"
)

// Result contains the outcome of validation.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
	Summary  Summary `json:"summary"`
}

// Issue represents a single validation finding.
type Issue struct {
	Severity string   `json:"severity"` // "error" or "warning"
	Category string   `json:"category"` // "id", "arc", "tokens", "structure"
	Message  string   `json:"message"`
	Location []string `json:"location,omitempty"` // affected node ids
}

// Summary provides an overview of the validated net.
type Summary struct {
	Places      int `json:"places"`
	Transitions int `json:"transitions"`
	Arcs        int `json:"arcs"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
}

// Validator performs validation checks against one net.
type Validator struct {
	net    *petri.PetriNet
	result *Result
}

// NewValidator creates a validator for a Petri net.
func NewValidator(net *petri.PetriNet) *Validator {
	return &Validator{
		net: net,
		result: &Result{
			Valid: true,
			Summary: Summary{
				Places:      len(net.Places),
				Transitions: len(net.Transitions),
				Arcs:        len(net.Arcs),
			},
		},
	}
}

// Validate runs all checks and returns the accumulated result.
func (v *Validator) Validate() *Result {
	v.checkIDs()
	v.checkTokens()
	v.checkArcs()

	v.result.Valid = len(v.result.Errors) == 0
	v.result.Summary.Errors = len(v.result.Errors)
	v.result.Summary.Warnings = len(v.result.Warnings)
	return v.result
}

// Validate is a convenience wrapper running all checks on a net.
func Validate(net *petri.PetriNet) *Result {
	return NewValidator(net).Validate()
}

// FirstError returns the first error issue, or nil when the net is valid.
func (r *Result) FirstError() *Issue {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// checkIDs enforces id uniqueness. Ids must be unique within each
// collection and also across places and transitions: a shared id would
// make arc endpoint resolution ambiguous, so it is rejected outright.
func (v *Validator) checkIDs() {
	places := make(map[string]bool, len(v.net.Places))
	for _, p := range v.net.Places {
		if p.ID == "" {
			v.addError("id", "place with empty id", nil)
			continue
		}
		if places[p.ID] {
			v.addError("id", fmt.Sprintf("duplicate place id %q", p.ID), []string{p.ID})
		}
		places[p.ID] = true
	}

	transitions := make(map[string]bool, len(v.net.Transitions))
	for _, t := range v.net.Transitions {
		if t.ID == "" {
			v.addError("id", "transition with empty id", nil)
			continue
		}
		if transitions[t.ID] {
			v.addError("id", fmt.Sprintf("duplicate transition id %q", t.ID), []string{t.ID})
		}
		if places[t.ID] {
			v.addError("id", fmt.Sprintf("id %q used by both a place and a transition", t.ID), []string{t.ID})
		}
		transitions[t.ID] = true
	}
}

// checkTokens rejects negative initial markings.
func (v *Validator) checkTokens() {
	for _, p := range v.net.Places {
		if p.Tokens < 0 {
			v.addError("tokens", fmt.Sprintf("place %q has negative initial tokens (%d)", p.ID, p.Tokens), []string{p.ID})
		}
	}
}

// checkArcs verifies every endpoint resolves to a declared node and that
// weights are positive. Strict place/transition bipartite typing is not
// enforced: text importers default endpoints of unknown shape to places,
// so a same-kind arc is only a warning. Same-kind arcs never participate
// in firing.
func (v *Validator) checkArcs() {
	for i, arc := range v.net.Arcs {
		fromPlace := v.net.Place(arc.From) != nil
		fromTrans := v.net.Transition(arc.From) != nil
		toPlace := v.net.Place(arc.To) != nil
		toTrans := v.net.Transition(arc.To) != nil

		if !fromPlace && !fromTrans {
			v.addError("arc", fmt.Sprintf("arc %d source %q does not resolve to any place or transition", i, arc.From), []string{arc.From})
		}
		if !toPlace && !toTrans {
			v.addError("arc", fmt.Sprintf("arc %d target %q does not resolve to any place or transition", i, arc.To), []string{arc.To})
		}
		if arc.Weight < 1 {
			v.addError("arc", fmt.Sprintf("arc %d (%s -> %s) has non-positive weight %d", i, arc.From, arc.To, arc.Weight), []string{arc.From, arc.To})
		}

		if (fromPlace && toPlace) || (fromTrans && toTrans) {
			v.addWarning("arc", fmt.Sprintf("arc %d (%s -> %s) connects two nodes of the same kind and will never fire", i, arc.From, arc.To), []string{arc.From, arc.To})
		}
	}
}

func (v *Validator) addError(category, message string, location []string) {
	v.result.Errors = append(v.result.Errors, Issue{
		Severity: "error",
		Category: category,
		Message:  message,
		Location: location,
	})
}

func (v *Validator) addWarning(category, message string, location []string) {
	v.result.Warnings = append(v.result.Warnings, Issue{
		Severity: "warning",
		Category: category,
		Message:  message,
		Location: location,
	})
}

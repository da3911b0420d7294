package engine

import (
	"fmt"

	"github.com/pnetlab/go-pnetlab/petri"
)

// ResolveSequence resolves user-facing transition references (ids or
// labels) to transition ids, for use ahead of Replay.
//
// An exact id match wins outright. Otherwise an exact label match
// resolves only when the label is unique among transitions; a reference
// to an ambiguous label (shared by two or more transitions) is dropped
// with a warning rather than guessed, and a reference matching nothing
// is reported as unknown.
//
// Alignment search does not use this layer: it matches raw tokens
// directly and deliberately explores all transitions sharing an
// ambiguous label as independent candidates, letting cost minimization
// pick among them.
func ResolveSequence(net *petri.PetriNet, refs []string) ([]string, []string) {
	byLabel := make(map[string][]string)
	for _, t := range net.Transitions {
		if t.Label != "" {
			byLabel[t.Label] = append(byLabel[t.Label], t.ID)
		}
	}

	var ids []string
	var warnings []string
	for i, ref := range refs {
		if net.Transition(ref) != nil {
			ids = append(ids, ref)
			continue
		}
		switch matches := byLabel[ref]; len(matches) {
		case 0:
			warnings = append(warnings, fmt.Sprintf("reference %d (%s): unknown transition", i, ref))
		case 1:
			ids = append(ids, matches[0])
		default:
			warnings = append(warnings, fmt.Sprintf("reference %d (%s): ambiguous label matches %d transitions, dropped", i, ref, len(matches)))
		}
	}
	return ids, warnings
}

// Package petri implements the canonical Petri net model.
// A Petri net consists of Places (token holders), Transitions (events),
// and Arcs (weighted connections between the two). The model is a passive
// value: all firing and analysis logic lives in separate packages that
// take a *PetriNet as read-only input.
package petri

import (
	"fmt"
	"strconv"
)

// Place holds a non-negative number of tokens.
type Place struct {
	ID     string
	Label  string
	Tokens int
}

// Transition represents an event that may fire.
// A transition with an empty Label is invisible (silent): a routing-only
// step that carries no observable activity name.
type Transition struct {
	ID    string
	Label string
}

// Invisible reports whether the transition is silent (has no label).
func (t Transition) Invisible() bool {
	return t.Label == ""
}

// Arc is a weighted connection between a place and a transition.
// Direction is inferred from which endpoint is a place: place->transition
// arcs are inputs, transition->place arcs are outputs.
type Arc struct {
	From   string
	To     string
	Weight int
}

// PetriNet is the canonical net model. Collections keep declaration
// order so that format conversion stays deterministic.
type PetriNet struct {
	Places      []Place
	Transitions []Transition
	Arcs        []Arc
}

// NewPetriNet creates an empty net.
func NewPetriNet() *PetriNet {
	return &PetriNet{}
}

// AddPlace appends a place and returns the net for chaining.
func (n *PetriNet) AddPlace(id, label string, tokens int) *PetriNet {
	n.Places = append(n.Places, Place{ID: id, Label: label, Tokens: tokens})
	return n
}

// AddTransition appends a transition and returns the net for chaining.
func (n *PetriNet) AddTransition(id, label string) *PetriNet {
	n.Transitions = append(n.Transitions, Transition{ID: id, Label: label})
	return n
}

// AddArc appends an arc with the given weight (1 is the conventional default).
func (n *PetriNet) AddArc(from, to string, weight int) *PetriNet {
	if weight == 0 {
		weight = 1
	}
	n.Arcs = append(n.Arcs, Arc{From: from, To: to, Weight: weight})
	return n
}

// Place returns the place with the given id, or nil.
func (n *PetriNet) Place(id string) *Place {
	for i := range n.Places {
		if n.Places[i].ID == id {
			return &n.Places[i]
		}
	}
	return nil
}

// Transition returns the transition with the given id, or nil.
func (n *PetriNet) Transition(id string) *Transition {
	for i := range n.Transitions {
		if n.Transitions[i].ID == id {
			return &n.Transitions[i]
		}
	}
	return nil
}

// InputArcs returns the arcs leading from a place into the given transition.
func (n *PetriNet) InputArcs(transitionID string) []Arc {
	var result []Arc
	for _, arc := range n.Arcs {
		if arc.To == transitionID && n.Place(arc.From) != nil {
			result = append(result, arc)
		}
	}
	return result
}

// OutputArcs returns the arcs leading out of the given transition into a place.
func (n *PetriNet) OutputArcs(transitionID string) []Arc {
	var result []Arc
	for _, arc := range n.Arcs {
		if arc.From == transitionID && n.Place(arc.To) != nil {
			result = append(result, arc)
		}
	}
	return result
}

// SinkPlaces returns the set of places with no outgoing arc to a
// transition. Sink places are where completed work accumulates; they are
// exempt from the "all tokens consumed" acceptance requirement used by
// alignment search.
func (n *PetriNet) SinkPlaces() map[string]bool {
	hasOutgoing := make(map[string]bool)
	for _, arc := range n.Arcs {
		if n.Place(arc.From) != nil && n.Transition(arc.To) != nil {
			hasOutgoing[arc.From] = true
		}
	}
	sinks := make(map[string]bool)
	for _, p := range n.Places {
		if !hasOutgoing[p.ID] {
			sinks[p.ID] = true
		}
	}
	return sinks
}

// Clone returns a deep copy of the net.
func (n *PetriNet) Clone() *PetriNet {
	c := &PetriNet{
		Places:      make([]Place, len(n.Places)),
		Transitions: make([]Transition, len(n.Transitions)),
		Arcs:        make([]Arc, len(n.Arcs)),
	}
	copy(c.Places, n.Places)
	copy(c.Transitions, n.Transitions)
	copy(c.Arcs, n.Arcs)
	return c
}

// FreshID returns the first id of the form prefix+n (n = 0, 1, 2, ...)
// that is unused by any place or transition in the net. It scans the
// current snapshot instead of keeping a counter, so it needs no state.
func FreshID(n *PetriNet, prefix string) string {
	used := make(map[string]bool, len(n.Places)+len(n.Transitions))
	for _, p := range n.Places {
		used[p.ID] = true
	}
	for _, t := range n.Transitions {
		used[t.ID] = true
	}
	for i := 0; ; i++ {
		id := prefix + strconv.Itoa(i)
		if !used[id] {
			return id
		}
	}
}

// String returns a short structural summary, useful in logs and tests.
func (n *PetriNet) String() string {
	return fmt.Sprintf("PetriNet(places=%d, transitions=%d, arcs=%d)",
		len(n.Places), len(n.Transitions), len(n.Arcs))
}

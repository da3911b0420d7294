// Package engine implements token-firing semantics for Petri nets:
// enabled checks, single-transition firing, and sequence replay.
// All operations are pure; a Marking is never mutated in place, every
// firing yields a fresh one. This keeps markings safe to share across
// search branches without synchronization.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pnetlab/go-pnetlab/petri"
)

// Marking represents a state of the Petri net: a mapping from place id
// to a non-negative token count.
type Marking map[string]int

// InitialMarking builds the marking declared by the net's token counts.
// Every place appears in the result, including empty ones.
func InitialMarking(net *petri.PetriNet) Marking {
	m := make(Marking, len(net.Places))
	for _, p := range net.Places {
		m[p.ID] = p.Tokens
	}
	return m
}

// Copy creates a deep copy of the marking.
func (m Marking) Copy() Marking {
	result := make(Marking, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// Equals checks if two markings are identical.
func (m Marking) Equals(other Marking) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		if other[k] != v {
			return false
		}
	}
	return true
}

// Key returns a deterministic string key for the marking: the sorted
// place:count pairs. Equal markings produce equal keys, so the key can
// index best-cost and visited maps.
func (m Marking) Key() string {
	keys := m.SortedKeys()
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s:%d", k, m[k])
	}
	return b.String()
}

// String returns a human-readable representation listing non-empty places.
func (m Marking) String() string {
	var parts []string
	for _, k := range m.SortedKeys() {
		if m[k] > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", k, m[k]))
		}
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, ", ")
}

// SortedKeys returns place ids in sorted order.
func (m Marking) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total returns the sum of all tokens.
func (m Marking) Total() int {
	sum := 0
	for _, v := range m {
		sum += v
	}
	return sum
}

// Get returns the token count for a place (0 if not present).
func (m Marking) Get(place string) int {
	return m[place]
}

// Max returns the maximum token count in any place.
func (m Marking) Max() int {
	max := 0
	for _, v := range m {
		if v > max {
			max = v
		}
	}
	return max
}

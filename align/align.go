// Package align computes cost-optimal alignments between observed traces
// and a Petri net model. An alignment is a minimum-cost sequence of
// moves (synchronous, model-only, log-only) that consumes the whole
// trace while driving the net from its initial marking to an accepting
// one. The search is uniform-cost (Dijkstra with a zero heuristic) over
// the implicit graph of (marking, trace position) states.
package align

import (
	"math"
	"sort"
	"strconv"

	"github.com/pnetlab/go-pnetlab/engine"
	"github.com/pnetlab/go-pnetlab/minheap"
	"github.com/pnetlab/go-pnetlab/petri"
)

// MoveType classifies an alignment step.
type MoveType string

const (
	// MoveSync fires a transition matching the pending trace token;
	// costs nothing.
	MoveSync MoveType = "sync"
	// MoveModel fires an enabled transition without consuming a trace
	// token; costs 1, or 0 for invisible transitions.
	MoveModel MoveType = "model"
	// MoveLog consumes a trace token without firing anything; costs 1.
	MoveLog MoveType = "log"
)

// Move is one step of an alignment.
type Move struct {
	Type     MoveType `json:"moveType"`
	Activity string   `json:"activity"`
}

// Result is the outcome of an alignment search.
//
// Cost is +Inf with an empty alignment only when the search frontier was
// exhausted without reaching any goal, which cannot happen for a live,
// connected net. Capped results are best-effort: the expansion limit was
// hit and the returned alignment is not guaranteed optimal, or even
// goal-reaching. Callers must never treat a capped result as a proven
// optimum.
type Result struct {
	Alignment  []Move  `json:"alignment"`
	Cost       float64 `json:"cost"`
	Fitness    float64 `json:"fitness"`
	Capped     bool    `json:"capped"`
	Expansions int     `json:"expansions"`
}

// DefaultMaxExpansions bounds the search on degenerate models, e.g.
// chains of free invisible-transition model moves over an unbounded
// state space.
const DefaultMaxExpansions = 10000

type options struct {
	maxExpansions int
}

// Option customizes an alignment search.
type Option func(*options)

// WithMaxExpansions overrides the expansion cap.
func WithMaxExpansions(n int) Option {
	return func(o *options) { o.maxExpansions = n }
}

// ctrans is a transition compiled for the search hot loop: input/output
// arcs resolved once, model-move cost precomputed.
type ctrans struct {
	id    string
	label string
	cost  float64 // model-move cost: 0 for invisible transitions
	in    []petri.Arc
	out   []petri.Arc
}

// node is an immutable entry in the search arena. parent/move form a
// back-pointer chain used only for path reconstruction.
type node struct {
	marking engine.Marking
	idx     int // trace position: tokens consumed so far
	cost    float64
	parent  int // arena index, -1 for the root
	move    Move
}

// Align computes a minimum-cost alignment between the trace and the
// model, starting from the net's declared initial marking. Trace tokens
// match transitions by id or label.
func Align(net *petri.PetriNet, trace []string, opts ...Option) Result {
	o := options{maxExpansions: DefaultMaxExpansions}
	for _, opt := range opts {
		opt(&o)
	}

	transitions := compile(net)
	sinks := net.SinkPlaces()

	arena := []node{{
		marking: engine.InitialMarking(net),
		idx:     0,
		cost:    0,
		parent:  -1,
	}}

	// Ordered by cumulative cost; ties broken by arena handle so the
	// search is fully deterministic.
	frontier := minheap.New[int](func(a, b int) int {
		if arena[a].cost < arena[b].cost {
			return -1
		}
		if arena[a].cost > arena[b].cost {
			return 1
		}
		return a - b
	})

	best := map[string]float64{stateKey(0, arena[0].marking): 0}
	frontier.Push(0)

	relax := func(parent int, marking engine.Marking, idx int, cost float64, move Move) {
		key := stateKey(idx, marking)
		if known, seen := best[key]; seen && cost >= known {
			return
		}
		best[key] = cost
		arena = append(arena, node{marking: marking, idx: idx, cost: cost, parent: parent, move: move})
		frontier.Push(len(arena) - 1)
	}

	expansions := 0
	for {
		h, ok := frontier.Pop()
		if !ok {
			// Frontier exhausted without reaching a goal: a property of
			// the model/trace pair, reported as a sentinel, not an error.
			return Result{Alignment: []Move{}, Cost: math.Inf(1), Expansions: expansions}
		}
		cur := arena[h]

		// Lazy deletion: a stale entry whose cost was beaten since it
		// was pushed.
		if cur.cost > best[stateKey(cur.idx, cur.marking)] {
			continue
		}

		// First goal popped is optimal: costs are non-negative, so the
		// frontier pops in non-decreasing cost order.
		if cur.idx == len(trace) && accepting(cur.marking, sinks) {
			return reconstruct(arena, h, false, expansions)
		}

		if expansions >= o.maxExpansions {
			// Best effort: reconstruct from the node at hand even
			// though it is not a goal.
			return reconstruct(arena, h, true, expansions)
		}
		expansions++

		// (a) Synchronous moves: transitions matching the pending trace
		// token by id or label. All candidates sharing an ambiguous
		// label are explored; cost minimization picks among them.
		if cur.idx < len(trace) {
			token := trace[cur.idx]
			for _, t := range transitions {
				if (t.id == token || t.label == token) && enabled(cur.marking, t) {
					relax(h, fire(cur.marking, t), cur.idx+1, cur.cost, Move{Type: MoveSync, Activity: token})
				}
			}
		}

		// (b) Model moves: every enabled transition, match or not.
		for _, t := range transitions {
			if enabled(cur.marking, t) {
				relax(h, fire(cur.marking, t), cur.idx, cur.cost+t.cost, Move{Type: MoveModel, Activity: activityName(t)})
			}
		}

		// (c) Log move: skip the pending trace token.
		if cur.idx < len(trace) {
			relax(h, cur.marking, cur.idx+1, cur.cost+1, Move{Type: MoveLog, Activity: trace[cur.idx]})
		}
	}
}

// Fitness normalizes an alignment cost into [0, 1]. A zero-length
// alignment is perfectly fitting only at zero cost.
func Fitness(cost float64, alignmentLength int) float64 {
	if alignmentLength == 0 {
		if cost == 0 {
			return 1
		}
		return 0
	}
	f := 1 - cost/float64(alignmentLength)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// compile resolves each transition's arcs once and fixes the successor
// generation order (sorted by id) for determinism.
func compile(net *petri.PetriNet) []ctrans {
	result := make([]ctrans, 0, len(net.Transitions))
	for _, t := range net.Transitions {
		cost := 1.0
		if t.Invisible() {
			cost = 0
		}
		result = append(result, ctrans{
			id:    t.ID,
			label: t.Label,
			cost:  cost,
			in:    net.InputArcs(t.ID),
			out:   net.OutputArcs(t.ID),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].id < result[j].id })
	return result
}

func enabled(m engine.Marking, t ctrans) bool {
	for _, arc := range t.in {
		if m.Get(arc.From) < arc.Weight {
			return false
		}
	}
	return true
}

// fire assumes enabled; the input marking is left untouched.
func fire(m engine.Marking, t ctrans) engine.Marking {
	next := m.Copy()
	for _, arc := range t.in {
		next[arc.From] -= arc.Weight
	}
	for _, arc := range t.out {
		next[arc.To] += arc.Weight
	}
	return next
}

// accepting holds when every non-sink place is empty; sink places may
// hold any count.
func accepting(m engine.Marking, sinks map[string]bool) bool {
	for place, tokens := range m {
		if tokens > 0 && !sinks[place] {
			return false
		}
	}
	return true
}

// stateKey builds the deterministic identity of a search state from the
// trace position and the canonical marking key.
func stateKey(idx int, m engine.Marking) string {
	return strconv.Itoa(idx) + "|" + m.Key()
}

func activityName(t ctrans) string {
	if t.label != "" {
		return t.label
	}
	return t.id
}

// reconstruct follows parent back-pointers from the given node to the
// root and reverses the collected moves.
func reconstruct(arena []node, h int, capped bool, expansions int) Result {
	var moves []Move
	for i := h; arena[i].parent != -1; i = arena[i].parent {
		moves = append(moves, arena[i].move)
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	if moves == nil {
		moves = []Move{}
	}

	cost := arena[h].cost
	return Result{
		Alignment:  moves,
		Cost:       cost,
		Fitness:    Fitness(cost, len(moves)),
		Capped:     capped,
		Expansions: expansions,
	}
}

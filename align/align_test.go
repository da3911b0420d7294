package align

import (
	"math"
	"testing"

	"github.com/pnetlab/go-pnetlab/petri"
)

// orderNet is a three-step sequential process:
// P0(1) -Enqueue-> P1 -Begin-> P2 -Finish-> P3.
func orderNet() *petri.PetriNet {
	return petri.Build().Chain("P", "T", "Enqueue", "Begin", "Finish").Done()
}

func moveTypes(alignment []Move) []MoveType {
	types := make([]MoveType, len(alignment))
	for i, m := range alignment {
		types[i] = m.Type
	}
	return types
}

func TestAlignPerfectTrace(t *testing.T) {
	res := Align(orderNet(), []string{"Enqueue", "Begin", "Finish"})

	if res.Cost != 0 {
		t.Errorf("Cost = %v, want 0", res.Cost)
	}
	if res.Fitness != 1 {
		t.Errorf("Fitness = %v, want 1", res.Fitness)
	}
	if res.Capped {
		t.Error("Capped = true for a trivially reachable goal")
	}
	if len(res.Alignment) != 3 {
		t.Fatalf("alignment length = %d, want 3", len(res.Alignment))
	}
	for i, m := range res.Alignment {
		if m.Type != MoveSync {
			t.Errorf("move %d = %s, want sync", i, m.Type)
		}
	}
	want := []string{"Enqueue", "Begin", "Finish"}
	for i, m := range res.Alignment {
		if m.Activity != want[i] {
			t.Errorf("move %d activity = %q, want %q", i, m.Activity, want[i])
		}
	}
}

func TestAlignMissingEvent(t *testing.T) {
	// The trace skips Enqueue, so the optimal alignment inserts one
	// model move before the two synchronous ones.
	res := Align(orderNet(), []string{"Begin", "Finish"})

	if res.Cost != 1 {
		t.Errorf("Cost = %v, want 1", res.Cost)
	}
	types := moveTypes(res.Alignment)
	if len(types) != 3 || types[0] != MoveModel || types[1] != MoveSync || types[2] != MoveSync {
		t.Errorf("moves = %v", types)
	}
	if res.Alignment[0].Activity != "Enqueue" {
		t.Errorf("model move activity = %q, want Enqueue", res.Alignment[0].Activity)
	}
	if got, want := res.Fitness, 1-1.0/3.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("Fitness = %v, want %v", got, want)
	}
}

func TestAlignEmptyTrace(t *testing.T) {
	// Nothing observed at all: the model must walk to acceptance on its
	// own, three model moves at cost 1 each.
	res := Align(orderNet(), nil)

	if res.Cost != 3 {
		t.Errorf("Cost = %v, want 3", res.Cost)
	}
	if len(res.Alignment) != 3 {
		t.Fatalf("alignment length = %d", len(res.Alignment))
	}
	for i, m := range res.Alignment {
		if m.Type != MoveModel {
			t.Errorf("move %d = %s, want model", i, m.Type)
		}
	}
	if res.Fitness != 0 {
		t.Errorf("Fitness = %v, want 0", res.Fitness)
	}
}

func TestAlignSpuriousEvent(t *testing.T) {
	// An event the model cannot produce costs exactly one log move.
	res := Align(orderNet(), []string{"Enqueue", "Bogus", "Begin", "Finish"})

	if res.Cost != 1 {
		t.Errorf("Cost = %v, want 1", res.Cost)
	}
	if len(res.Alignment) != 4 {
		t.Fatalf("alignment length = %d, want 4", len(res.Alignment))
	}
	logMoves := 0
	for _, m := range res.Alignment {
		if m.Type == MoveLog {
			logMoves++
			if m.Activity != "Bogus" {
				t.Errorf("log move activity = %q", m.Activity)
			}
		}
	}
	if logMoves != 1 {
		t.Errorf("log moves = %d, want 1", logMoves)
	}
	if got, want := res.Fitness, 0.75; math.Abs(got-want) > 1e-9 {
		t.Errorf("Fitness = %v, want %v", got, want)
	}
}

func TestAlignTokenMatchesByIDOrLabel(t *testing.T) {
	// Trace tokens sync by transition id as well as by label, and the
	// two may be mixed within one trace.
	for _, trace := range [][]string{
		{"T0", "T1", "T2"},
		{"Enqueue", "Begin", "Finish"},
		{"T0", "Begin", "T2"},
	} {
		res := Align(orderNet(), trace)
		if res.Cost != 0 {
			t.Errorf("trace %v: Cost = %v, want 0", trace, res.Cost)
		}
		for i, m := range res.Alignment {
			if m.Type != MoveSync {
				t.Errorf("trace %v move %d = %s, want sync", trace, i, m.Type)
			}
		}
	}
}

func TestAlignInvisibleTransitionFree(t *testing.T) {
	// An unlabeled transition costs nothing as a model move, so an empty
	// trace aligns at cost 0 even though the model has to fire once.
	net := petri.Build().
		Place("P0", 1).
		Place("P1", 0).
		Transition("T0").
		Flow("P0", "T0", "P1", 1).
		Done()

	res := Align(net, nil)
	if res.Cost != 0 {
		t.Errorf("Cost = %v, want 0", res.Cost)
	}
	if len(res.Alignment) != 1 || res.Alignment[0].Type != MoveModel {
		t.Errorf("alignment = %v", res.Alignment)
	}
	if res.Alignment[0].Activity != "T0" {
		t.Errorf("invisible move named %q, want its id", res.Alignment[0].Activity)
	}
	if res.Fitness != 1 {
		t.Errorf("Fitness = %v, want 1", res.Fitness)
	}
}

func TestAlignAlreadyAccepting(t *testing.T) {
	// A net whose only place is a sink is accepting from the start, so
	// the empty trace aligns with zero moves.
	net := petri.Build().Place("P0", 1).Done()

	res := Align(net, nil)
	if res.Cost != 0 {
		t.Errorf("Cost = %v, want 0", res.Cost)
	}
	if len(res.Alignment) != 0 {
		t.Errorf("alignment = %v", res.Alignment)
	}
	if res.Fitness != 1 {
		t.Errorf("Fitness = %v, want 1", res.Fitness)
	}
}

func TestAlignExhaustedFrontier(t *testing.T) {
	// T0 needs two tokens from P0 but only one exists and is not in a
	// sink place, so no goal state is reachable: the search drains the
	// frontier and reports the +Inf sentinel.
	net := petri.Build().
		Place("P0", 1).
		Place("P1", 0).
		Transition("T0").
		Arc("P0", "T0", 2).
		Arc("T0", "P1", 1).
		Done()

	res := Align(net, nil)
	if !math.IsInf(res.Cost, 1) {
		t.Errorf("Cost = %v, want +Inf", res.Cost)
	}
	if len(res.Alignment) != 0 {
		t.Errorf("alignment = %v", res.Alignment)
	}
	if res.Capped {
		t.Error("exhaustion must not be reported as capped")
	}
	if res.Fitness != 0 {
		t.Errorf("Fitness = %v, want 0", res.Fitness)
	}
}

func TestAlignExpansionCap(t *testing.T) {
	res := Align(orderNet(), []string{"Enqueue", "Begin", "Finish"}, WithMaxExpansions(1))

	if !res.Capped {
		t.Fatal("Capped = false with a one-expansion limit")
	}
	if res.Expansions != 1 {
		t.Errorf("Expansions = %d, want 1", res.Expansions)
	}
	if math.IsInf(res.Cost, 1) {
		t.Error("capped result must carry the best-effort cost, not the sentinel")
	}
}

func TestAlignDeterministic(t *testing.T) {
	net := orderNet()
	trace := []string{"Begin", "Bogus", "Finish"}
	first := Align(net, trace)
	for i := 0; i < 5; i++ {
		again := Align(net, trace)
		if again.Cost != first.Cost || len(again.Alignment) != len(first.Alignment) {
			t.Fatalf("run %d diverged: %v vs %v", i, again, first)
		}
		for j := range again.Alignment {
			if again.Alignment[j] != first.Alignment[j] {
				t.Fatalf("run %d move %d = %v, want %v", i, j, again.Alignment[j], first.Alignment[j])
			}
		}
	}
}

func TestFitnessClamp(t *testing.T) {
	cases := []struct {
		cost   float64
		length int
		want   float64
	}{
		{0, 0, 1},
		{1, 0, 0},
		{0, 4, 1},
		{2, 4, 0.5},
		{6, 4, 0},
		{math.Inf(1), 3, 0},
	}
	for _, c := range cases {
		if got := Fitness(c.cost, c.length); got != c.want {
			t.Errorf("Fitness(%v, %d) = %v, want %v", c.cost, c.length, got, c.want)
		}
	}
}

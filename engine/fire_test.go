package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/pnetlab/go-pnetlab/petri"
)

// chainNet is P0(1) -T0-> P1 -T1-> P2 with labels Enqueue, Begin.
func chainNet() *petri.PetriNet {
	return petri.Build().Chain("P", "T", "Enqueue", "Begin").Done()
}

func TestIsEnabled(t *testing.T) {
	net := chainNet()
	m := InitialMarking(net)

	if !IsEnabled(net, m, "T0") {
		t.Error("T0 should be enabled at the initial marking")
	}
	if IsEnabled(net, m, "T1") {
		t.Error("T1 needs a token in P1 and should be disabled")
	}
	if IsEnabled(net, m, "nope") {
		t.Error("unknown transitions are never enabled")
	}
}

func TestIsEnabledRespectsWeights(t *testing.T) {
	net := petri.Build().
		Place("P0", 1).
		Transition("T0").
		Arc("P0", "T0", 2).
		Done()

	if IsEnabled(net, InitialMarking(net), "T0") {
		t.Error("one token cannot satisfy a weight-2 arc")
	}
}

func TestFireConservation(t *testing.T) {
	// Firing changes only the places connected to the transition, by
	// exactly the arc weights.
	net := petri.Build().
		Place("in", 3).
		Place("out", 0).
		Place("bystander", 5).
		Transition("T0").
		Arc("in", "T0", 2).
		Arc("T0", "out", 1).
		Done()

	before := InitialMarking(net)
	after, err := Fire(net, before, "T0")
	if err != nil {
		t.Fatalf("Fire: %v", err)
	}

	if after.Get("in") != 1 {
		t.Errorf("in = %d, want 1", after.Get("in"))
	}
	if after.Get("out") != 1 {
		t.Errorf("out = %d, want 1", after.Get("out"))
	}
	if after.Get("bystander") != 5 {
		t.Errorf("bystander = %d, want 5 (untouched)", after.Get("bystander"))
	}
	// The input marking is never mutated.
	if before.Get("in") != 3 || before.Get("out") != 0 {
		t.Errorf("Fire mutated its input: %v", before)
	}
}

func TestFireNeverGoesNegative(t *testing.T) {
	net := petri.Build().
		Place("P0", 1).
		Transition("T0").
		Arc("P0", "T0", 2).
		Done()

	if _, err := Fire(net, InitialMarking(net), "T0"); err == nil {
		t.Fatal("firing a disabled transition must fail")
	}
}

func TestFireUnknownTransition(t *testing.T) {
	net := chainNet()
	if _, err := Fire(net, InitialMarking(net), "nope"); err == nil {
		t.Fatal("firing an unknown transition must fail")
	}
}

func TestReplayHappyPath(t *testing.T) {
	net := chainNet()
	final, warnings, err := ReplayMarking(net, []string{"T0", "T1"}, true)
	if err != nil {
		t.Fatalf("ReplayMarking: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if final.Get("P2") != 1 || final.Get("P0") != 0 || final.Get("P1") != 0 {
		t.Errorf("final marking = %v", final)
	}
}

func TestReplayStrictAbortsOnUnknown(t *testing.T) {
	net := chainNet()
	_, _, err := ReplayMarking(net, []string{"T0", "ghost"}, true)
	if err == nil {
		t.Fatal("strict replay must fail on an unknown transition")
	}
	var replayErr *ReplayError
	if !errors.As(err, &replayErr) {
		t.Fatalf("expected *ReplayError, got %T", err)
	}
	if replayErr.Step != 1 || replayErr.Reason != "unknown transition" {
		t.Errorf("error = %+v", replayErr)
	}
}

func TestReplayStrictAbortsOnDisabled(t *testing.T) {
	net := chainNet()
	_, _, err := ReplayMarking(net, []string{"T1"}, true)

	var replayErr *ReplayError
	if !errors.As(err, &replayErr) {
		t.Fatalf("expected *ReplayError, got %v", err)
	}
	if replayErr.Reason != "not enabled" {
		t.Errorf("reason = %q", replayErr.Reason)
	}
}

func TestReplayLenientSkipsAndCompletes(t *testing.T) {
	net := chainNet()
	// "ghost" is unknown, the second "T0" is no longer enabled; both are
	// skipped and replay still completes.
	final, warnings, err := ReplayMarking(net, []string{"T0", "ghost", "T0", "T1"}, false)
	if err != nil {
		t.Fatalf("lenient replay must not fail: %v", err)
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", warnings)
	}
	if !strings.Contains(warnings[0], "unknown transition") {
		t.Errorf("first warning = %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "not enabled") {
		t.Errorf("second warning = %q", warnings[1])
	}
	if final.Get("P2") != 1 {
		t.Errorf("final marking = %v", final)
	}
}

func TestReplayReturnsUpdatedModel(t *testing.T) {
	net := chainNet()
	updated, _, err := Replay(net, []string{"T0"}, true)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if updated.Place("P0").Tokens != 0 || updated.Place("P1").Tokens != 1 {
		t.Errorf("updated model tokens = %v", updated.Places)
	}
	// The input model is untouched.
	if net.Place("P0").Tokens != 1 {
		t.Error("Replay mutated the input model")
	}
}

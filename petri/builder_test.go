package petri

import "testing"

func TestBuilderBasics(t *testing.T) {
	net := Build().
		Place("P0", 1).
		LabeledPlace("P1", "Done", 0).
		LabeledTransition("T0", "Finish").
		Transition("T1").
		Arc("P0", "T0", 1).
		Arc("T0", "P1", 1).
		Done()

	if len(net.Places) != 2 || len(net.Transitions) != 2 || len(net.Arcs) != 2 {
		t.Fatalf("unexpected shape: %s", net)
	}
	if net.Place("P1").Label != "Done" {
		t.Errorf("P1 label = %q", net.Place("P1").Label)
	}
	if !net.Transition("T1").Invisible() {
		t.Error("T1 should be invisible")
	}
}

func TestBuilderFlow(t *testing.T) {
	net := Build().
		Place("in", 1).
		Place("out", 0).
		LabeledTransition("work", "Work").
		Flow("in", "work", "out", 2).
		Done()

	if len(net.Arcs) != 2 {
		t.Fatalf("Flow should add 2 arcs, got %d", len(net.Arcs))
	}
	if net.Arcs[0].From != "in" || net.Arcs[0].To != "work" || net.Arcs[0].Weight != 2 {
		t.Errorf("first arc = %+v", net.Arcs[0])
	}
	if net.Arcs[1].From != "work" || net.Arcs[1].To != "out" || net.Arcs[1].Weight != 2 {
		t.Errorf("second arc = %+v", net.Arcs[1])
	}
}

func TestBuilderChain(t *testing.T) {
	net := Build().Chain("P", "T", "Enqueue", "Begin", "Finish").Done()

	if len(net.Places) != 4 || len(net.Transitions) != 3 || len(net.Arcs) != 6 {
		t.Fatalf("unexpected shape: %s", net)
	}
	if net.Place("P0").Tokens != 1 {
		t.Error("first chain place should hold one token")
	}
	for _, id := range []string{"P1", "P2", "P3"} {
		if net.Place(id).Tokens != 0 {
			t.Errorf("place %s should start empty", id)
		}
	}
	if net.Transition("T1").Label != "Begin" {
		t.Errorf("T1 label = %q", net.Transition("T1").Label)
	}
	// The last place is the chain's sink.
	if !net.SinkPlaces()["P3"] {
		t.Error("P3 should be a sink")
	}
}

package engine

import (
	"testing"

	"github.com/pnetlab/go-pnetlab/petri"
)

func TestInitialMarking(t *testing.T) {
	net := petri.Build().
		Place("P0", 2).
		Place("P1", 0).
		Done()

	m := InitialMarking(net)
	if len(m) != 2 {
		t.Fatalf("marking should cover every place, got %d entries", len(m))
	}
	if m.Get("P0") != 2 || m.Get("P1") != 0 {
		t.Errorf("marking = %v", m)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	m := Marking{"P0": 1}
	c := m.Copy()
	c["P0"] = 99

	if m["P0"] != 1 {
		t.Error("mutating the copy changed the original")
	}
}

func TestEquals(t *testing.T) {
	a := Marking{"P0": 1, "P1": 0}
	b := Marking{"P1": 0, "P0": 1}
	c := Marking{"P0": 2, "P1": 0}

	if !a.Equals(b) {
		t.Error("a and b should be equal")
	}
	if a.Equals(c) {
		t.Error("a and c differ")
	}
	if a.Equals(Marking{"P0": 1}) {
		t.Error("markings over different place sets differ")
	}
}

func TestKeyIsDeterministic(t *testing.T) {
	a := Marking{"P0": 1, "P1": 0, "P2": 3}
	b := Marking{"P2": 3, "P0": 1, "P1": 0}

	if a.Key() != b.Key() {
		t.Errorf("equal markings should share a key: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() != "P0:1,P1:0,P2:3" {
		t.Errorf("Key() = %q", a.Key())
	}

	c := Marking{"P0": 1, "P1": 1, "P2": 2}
	if a.Key() == c.Key() {
		t.Error("different markings should have different keys")
	}
}

func TestTotalAndMax(t *testing.T) {
	m := Marking{"P0": 2, "P1": 0, "P2": 5}
	if m.Total() != 7 {
		t.Errorf("Total() = %d", m.Total())
	}
	if m.Max() != 5 {
		t.Errorf("Max() = %d", m.Max())
	}
}

func TestString(t *testing.T) {
	if got := (Marking{"P0": 0}).String(); got != "(empty)" {
		t.Errorf("empty marking String() = %q", got)
	}
	if got := (Marking{"P1": 2, "P0": 1}).String(); got != "P0:1, P1:2" {
		t.Errorf("String() = %q", got)
	}
}

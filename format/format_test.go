package format

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pnetlab/go-pnetlab/petri"
)

// workbenchNet is the shared round-trip fixture: labeled and unlabeled
// nodes, a non-default weight and token count, and a sink place.
func workbenchNet() *petri.PetriNet {
	return petri.Build().
		LabeledPlace("P0", "Ready", 2).
		Place("P1", 0).
		LabeledTransition("T0", "Enqueue").
		Transition("T1").
		Arc("P0", "T0", 3).
		Arc("T0", "P1", 1).
		Arc("P1", "T1", 1).
		Done()
}

func roundTrip(t *testing.T, f Format) {
	t.Helper()
	original := workbenchNet()

	text, err := Convert(original, f)
	if err != nil {
		t.Fatalf("Convert(%s): %v", f, err)
	}
	parsed, err := Parse(text, f)
	if err != nil {
		t.Fatalf("Parse(%s): %v\ninput:\n%s", f, err, text)
	}
	if !reflect.DeepEqual(original, parsed) {
		t.Errorf("%s round trip mismatch:\noriginal: %+v\nparsed:   %+v\ntext:\n%s",
			f, original, parsed, text)
	}
}

func TestRoundTripAllFormats(t *testing.T) {
	for _, f := range []Format{JSON, PNML, DOT, Mermaid} {
		t.Run(string(f), func(t *testing.T) { roundTrip(t, f) })
	}
}

func TestConversionDeterminism(t *testing.T) {
	net := workbenchNet()
	for _, f := range []Format{JSON, PNML, DOT, Mermaid} {
		first, err := Convert(net, f)
		if err != nil {
			t.Fatalf("Convert(%s): %v", f, err)
		}
		second, _ := Convert(net, f)
		if first != second {
			t.Errorf("%s conversion is not deterministic", f)
		}
	}
}

func TestParseRejectsInvalidModel(t *testing.T) {
	// Well-formed JSON, structurally invalid net: duplicate place id.
	text := `{"places": [{"id": "P0"}, {"id": "P0"}], "transitions": [], "arcs": []}`

	_, err := Parse(text, JSON)
	if err == nil {
		t.Fatal("expected a ParseError for duplicate ids")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func TestParseUnknownFormat(t *testing.T) {
	if _, err := Parse("{}", Format("yaml")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{"model.json", JSON, false},
		{"model.pnml", PNML, false},
		{"model.xml", PNML, false},
		{"model.dot", DOT, false},
		{"model.gv", DOT, false},
		{"model.mmd", Mermaid, false},
		{"model.txt", "", true},
	}
	for _, tt := range tests {
		got, err := Detect(tt.filename)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Detect(%s): expected error", tt.filename)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Detect(%s) = %v, %v; want %v", tt.filename, got, err, tt.want)
		}
	}
}

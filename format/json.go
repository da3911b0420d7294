package format

import (
	"encoding/json"

	"github.com/pnetlab/go-pnetlab/petri"
)

// Canonical JSON wire structure:
//
//	{
//	  "places": [{"id": "P0", "label": "Ready", "tokens": 1}],
//	  "transitions": [{"id": "T0", "label": "Enqueue"}],
//	  "arcs": [{"from": "P0", "to": "T0", "weight": 2}]
//	}
//
// Defaults are omitted on output: tokens=0, weight=1, empty labels.
type jsonNet struct {
	Places      []jsonPlace      `json:"places"`
	Transitions []jsonTransition `json:"transitions"`
	Arcs        []jsonArc        `json:"arcs"`
}

type jsonPlace struct {
	ID     string `json:"id"`
	Label  string `json:"label,omitempty"`
	Tokens int    `json:"tokens,omitempty"`
}

type jsonTransition struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

type jsonArc struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight,omitempty"`
}

func parseJSON(text string) (*petri.PetriNet, error) {
	var raw jsonNet
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, parseErrorf(JSON, "invalid JSON: %v", err)
	}

	net := petri.NewPetriNet()
	for _, p := range raw.Places {
		net.AddPlace(p.ID, p.Label, p.Tokens)
	}
	for _, t := range raw.Transitions {
		net.AddTransition(t.ID, t.Label)
	}
	for _, a := range raw.Arcs {
		weight := a.Weight
		if weight == 0 {
			weight = 1
		}
		net.AddArc(a.From, a.To, weight)
	}
	return net, nil
}

// ToJSON serializes a net to canonical JSON.
func ToJSON(net *petri.PetriNet) (string, error) {
	out := jsonNet{
		Places:      make([]jsonPlace, 0, len(net.Places)),
		Transitions: make([]jsonTransition, 0, len(net.Transitions)),
		Arcs:        make([]jsonArc, 0, len(net.Arcs)),
	}
	for _, p := range net.Places {
		out.Places = append(out.Places, jsonPlace{ID: p.ID, Label: p.Label, Tokens: p.Tokens})
	}
	for _, t := range net.Transitions {
		out.Transitions = append(out.Transitions, jsonTransition{ID: t.ID, Label: t.Label})
	}
	for _, a := range net.Arcs {
		weight := a.Weight
		if weight == 1 {
			weight = 0 // omitted on the wire
		}
		out.Arcs = append(out.Arcs, jsonArc{From: a.From, To: a.To, Weight: weight})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

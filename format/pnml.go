package format

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/pnetlab/go-pnetlab/petri"
)

// PNML wire structures. Labels live in <name><text>, initial tokens in
// <initialMarking><text>, arc weights in <inscription><text>. Both the
// flat layout (nodes directly under <net>) and the paged layout are
// accepted on input; output always emits a single page.
type pnmlDoc struct {
	XMLName xml.Name `xml:"pnml"`
	Net     pnmlNet  `xml:"net"`
}

type pnmlNet struct {
	ID          string           `xml:"id,attr,omitempty"`
	Pages       []pnmlPage       `xml:"page"`
	Places      []pnmlPlace      `xml:"place"`
	Transitions []pnmlTransition `xml:"transition"`
	Arcs        []pnmlArc        `xml:"arc"`
}

type pnmlPage struct {
	ID          string           `xml:"id,attr,omitempty"`
	Places      []pnmlPlace      `xml:"place"`
	Transitions []pnmlTransition `xml:"transition"`
	Arcs        []pnmlArc        `xml:"arc"`
}

type pnmlPlace struct {
	ID      string    `xml:"id,attr"`
	Name    *pnmlText `xml:"name"`
	Marking *pnmlText `xml:"initialMarking"`
}

type pnmlTransition struct {
	ID   string    `xml:"id,attr"`
	Name *pnmlText `xml:"name"`
}

type pnmlArc struct {
	ID          string    `xml:"id,attr,omitempty"`
	Source      string    `xml:"source,attr"`
	Target      string    `xml:"target,attr"`
	Inscription *pnmlText `xml:"inscription"`
}

type pnmlText struct {
	Text string `xml:"text"`
}

func parsePNML(text string) (*petri.PetriNet, error) {
	var doc pnmlDoc
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, parseErrorf(PNML, "invalid XML: %v", err)
	}

	places := doc.Net.Places
	transitions := doc.Net.Transitions
	arcs := doc.Net.Arcs
	for _, page := range doc.Net.Pages {
		places = append(places, page.Places...)
		transitions = append(transitions, page.Transitions...)
		arcs = append(arcs, page.Arcs...)
	}

	net := petri.NewPetriNet()
	for _, p := range places {
		tokens := 0
		if p.Marking != nil {
			n, err := strconv.Atoi(strings.TrimSpace(p.Marking.Text))
			if err != nil {
				return nil, parseErrorf(PNML, "place %q: bad initialMarking %q", p.ID, p.Marking.Text)
			}
			tokens = n
		}
		net.AddPlace(p.ID, textOf(p.Name), tokens)
	}
	for _, t := range transitions {
		net.AddTransition(t.ID, textOf(t.Name))
	}
	for _, a := range arcs {
		weight := 1
		if a.Inscription != nil {
			n, err := strconv.Atoi(strings.TrimSpace(a.Inscription.Text))
			if err != nil {
				return nil, parseErrorf(PNML, "arc %s->%s: bad inscription %q", a.Source, a.Target, a.Inscription.Text)
			}
			weight = n
		}
		net.AddArc(a.Source, a.Target, weight)
	}
	return net, nil
}

func textOf(t *pnmlText) string {
	if t == nil {
		return ""
	}
	return strings.TrimSpace(t.Text)
}

// ToPNML serializes a net to PNML. Default values (tokens=0, weight=1)
// and empty names are omitted.
func ToPNML(net *petri.PetriNet) string {
	page := pnmlPage{ID: "page1"}
	for _, p := range net.Places {
		wire := pnmlPlace{ID: p.ID}
		if p.Label != "" {
			wire.Name = &pnmlText{Text: p.Label}
		}
		if p.Tokens != 0 {
			wire.Marking = &pnmlText{Text: strconv.Itoa(p.Tokens)}
		}
		page.Places = append(page.Places, wire)
	}
	for _, t := range net.Transitions {
		wire := pnmlTransition{ID: t.ID}
		if t.Label != "" {
			wire.Name = &pnmlText{Text: t.Label}
		}
		page.Transitions = append(page.Transitions, wire)
	}
	for i, a := range net.Arcs {
		wire := pnmlArc{
			ID:     fmt.Sprintf("a%d", i),
			Source: a.From,
			Target: a.To,
		}
		if a.Weight != 1 {
			wire.Inscription = &pnmlText{Text: strconv.Itoa(a.Weight)}
		}
		page.Arcs = append(page.Arcs, wire)
	}

	doc := pnmlDoc{Net: pnmlNet{ID: "net1", Pages: []pnmlPage{page}}}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		// Marshalling a plain struct tree cannot fail at runtime.
		panic(err)
	}
	return xml.Header + string(data) + "\n"
}

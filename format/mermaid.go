package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pnetlab/go-pnetlab/petri"
)

// Mermaid subset. Places are double-circle nodes, transitions rectangles;
// token counts use the same trailing "xN" convention as the DOT subset
// and arc weights ride on the edge label. Example:
//
//	graph TD
//	  P0(("Ready x2"))
//	  T0["Enqueue"]
//	  P0 -->|3| T0
//
// A node whose display text equals its id is treated as unlabeled, so
// unlabeled nodes survive a round trip. Nodes referenced only by edges
// default to places.

func parseMermaid(text string) (*petri.PetriNet, error) {
	net := petri.NewPetriNet()
	declared := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") ||
			strings.HasPrefix(line, "graph") || strings.HasPrefix(line, "flowchart") {
			continue
		}

		if strings.Contains(line, "-->") {
			from, to, weight, err := parseMermaidEdge(line)
			if err != nil {
				return nil, err
			}
			net.AddArc(from, to, weight)
			continue
		}

		id, body, isPlace, err := parseMermaidNode(line)
		if err != nil {
			return nil, err
		}
		label, tokens := splitTokenSuffix(body)
		if label == id {
			label = ""
		}
		declared[id] = true
		if isPlace {
			net.AddPlace(id, label, tokens)
		} else {
			net.AddTransition(id, label)
		}
	}

	addUndeclaredEndpoints(net, declared)
	return net, nil
}

// parseMermaidNode handles `id((text))`, `id(text)`, and `id[text]`.
// Round shapes are places, rectangles are transitions, anything else
// defaults to a place.
func parseMermaidNode(line string) (id, body string, isPlace bool, err error) {
	for _, shape := range []struct {
		open, close string
		place       bool
	}{
		{"((", "))", true},
		{"[", "]", false},
		{"(", ")", true},
	} {
		open := strings.Index(line, shape.open)
		if open <= 0 || !strings.HasSuffix(line, shape.close) {
			continue
		}
		id = strings.TrimSpace(line[:open])
		body = line[open+len(shape.open) : len(line)-len(shape.close)]
		body = strings.Trim(strings.TrimSpace(body), `"`)
		return id, body, shape.place, nil
	}
	// Bare identifier: an unlabeled place.
	if strings.ContainsAny(line, "()[]{}") {
		return "", "", false, parseErrorf(Mermaid, "bad node %q", line)
	}
	return line, "", true, nil
}

// parseMermaidEdge handles `A -->|w| B` and `A --> B`.
func parseMermaidEdge(line string) (from, to string, weight int, err error) {
	parts := strings.SplitN(line, "-->", 2)
	from = strings.TrimSpace(parts[0])
	rest := strings.TrimSpace(parts[1])
	weight = 1
	if strings.HasPrefix(rest, "|") {
		end := strings.Index(rest[1:], "|")
		if end < 0 {
			return "", "", 0, parseErrorf(Mermaid, "unterminated edge label in %q", line)
		}
		label := strings.TrimSpace(rest[1 : 1+end])
		weight, err = strconv.Atoi(label)
		if err != nil {
			return "", "", 0, parseErrorf(Mermaid, "edge %q: bad weight %q", line, label)
		}
		rest = strings.TrimSpace(rest[end+2:])
	}
	return from, rest, weight, nil
}

// ToMermaid serializes a net to the Mermaid subset. Deterministic: nodes
// and edges appear in declaration order.
func ToMermaid(net *petri.PetriNet) string {
	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, p := range net.Places {
		text := joinTokenSuffix(p.Label, p.Tokens)
		if text == "" {
			text = p.ID
		} else if p.Label == "" {
			text = p.ID + " " + text
		}
		fmt.Fprintf(&b, "  %s((%q))\n", p.ID, text)
	}
	for _, t := range net.Transitions {
		text := t.Label
		if text == "" {
			text = t.ID
		}
		fmt.Fprintf(&b, "  %s[%q]\n", t.ID, text)
	}
	for _, a := range net.Arcs {
		if a.Weight != 1 {
			fmt.Fprintf(&b, "  %s -->|%d| %s\n", a.From, a.Weight, a.To)
		} else {
			fmt.Fprintf(&b, "  %s --> %s\n", a.From, a.To)
		}
	}
	return b.String()
}

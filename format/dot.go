package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pnetlab/go-pnetlab/petri"
)

// DOT subset. Places are circle-shaped nodes, transitions box-shaped;
// token counts ride on the node label as a trailing "xN" field and arc
// weights on the edge label. Example:
//
//	digraph PetriNet {
//	  "P0" [shape=circle, label="Ready x2"];
//	  "T0" [shape=box, label="Enqueue"];
//	  "P0" -> "T0" [label="3"];
//	}
//
// Nodes referenced only by edges default to places.

func parseDOT(text string) (*petri.PetriNet, error) {
	net := petri.NewPetriNet()
	declared := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSuffix(line, ";")
		if line == "" || line == "}" || strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "digraph") || strings.HasPrefix(line, "graph") {
			continue
		}

		if strings.Contains(line, "->") {
			parts := strings.SplitN(line, "->", 2)
			from := unquote(strings.TrimSpace(parts[0]))
			rest := strings.TrimSpace(parts[1])
			to, attrs, err := splitNodeAttrs(rest)
			if err != nil {
				return nil, parseErrorf(DOT, "bad edge %q: %v", line, err)
			}
			weight := 1
			if label, ok := attrs["label"]; ok {
				n, err := strconv.Atoi(label)
				if err != nil {
					return nil, parseErrorf(DOT, "edge %s -> %s: bad weight %q", from, to, label)
				}
				weight = n
			}
			net.AddArc(from, to, weight)
			continue
		}

		id, attrs, err := splitNodeAttrs(line)
		if err != nil {
			return nil, parseErrorf(DOT, "bad node %q: %v", line, err)
		}
		label, tokens := splitTokenSuffix(attrs["label"])
		declared[id] = true
		switch attrs["shape"] {
		case "box", "rect", "rectangle", "square":
			net.AddTransition(id, label)
		default:
			// circle, ellipse, missing, or anything else: a place.
			net.AddPlace(id, label, tokens)
		}
	}

	addUndeclaredEndpoints(net, declared)
	return net, nil
}

// ToDOT serializes a net to the DOT subset. Deterministic: nodes and
// edges appear in declaration order.
func ToDOT(net *petri.PetriNet) string {
	var b strings.Builder
	b.WriteString("digraph PetriNet {\n")
	for _, p := range net.Places {
		if text := joinTokenSuffix(p.Label, p.Tokens); text != "" {
			fmt.Fprintf(&b, "  %q [shape=circle, label=%q];\n", p.ID, text)
		} else {
			fmt.Fprintf(&b, "  %q [shape=circle];\n", p.ID)
		}
	}
	for _, t := range net.Transitions {
		if t.Label != "" {
			fmt.Fprintf(&b, "  %q [shape=box, label=%q];\n", t.ID, t.Label)
		} else {
			fmt.Fprintf(&b, "  %q [shape=box];\n", t.ID)
		}
	}
	for _, a := range net.Arcs {
		if a.Weight != 1 {
			fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", a.From, a.To, strconv.Itoa(a.Weight))
		} else {
			fmt.Fprintf(&b, "  %q -> %q;\n", a.From, a.To)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// splitNodeAttrs splits `"id" [k=v, ...]` into the id and its attributes.
// The attribute block is optional.
func splitNodeAttrs(s string) (string, map[string]string, error) {
	attrs := make(map[string]string)
	open := strings.Index(s, "[")
	if open < 0 {
		return unquote(strings.TrimSpace(s)), attrs, nil
	}
	close := strings.LastIndex(s, "]")
	if close < open {
		return "", nil, fmt.Errorf("unterminated attribute block")
	}
	id := unquote(strings.TrimSpace(s[:open]))
	for _, field := range splitAttrFields(s[open+1 : close]) {
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			continue
		}
		attrs[strings.TrimSpace(kv[0])] = unquote(strings.TrimSpace(kv[1]))
	}
	return id, attrs, nil
}

// splitAttrFields splits an attribute list on commas and spaces that are
// outside quoted values.
func splitAttrFields(s string) []string {
	var fields []string
	var cur strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case (r == ',' || r == ' ') && !inQuote:
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s
}

// splitTokenSuffix strips a trailing "xN" token-count field from a node
// label, returning the remaining label and N.
func splitTokenSuffix(label string) (string, int) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return "", 0
	}
	last := fields[len(fields)-1]
	if strings.HasPrefix(last, "x") {
		if n, err := strconv.Atoi(last[1:]); err == nil && n >= 0 {
			return strings.Join(fields[:len(fields)-1], " "), n
		}
	}
	return label, 0
}

// joinTokenSuffix is the inverse of splitTokenSuffix; zero tokens are
// omitted.
func joinTokenSuffix(label string, tokens int) string {
	if tokens == 0 {
		return label
	}
	suffix := "x" + strconv.Itoa(tokens)
	if label == "" {
		return suffix
	}
	return label + " " + suffix
}

// addUndeclaredEndpoints defaults arc endpoints that never appeared as a
// node statement to places with zero tokens.
func addUndeclaredEndpoints(net *petri.PetriNet, declared map[string]bool) {
	for _, arc := range net.Arcs {
		for _, id := range []string{arc.From, arc.To} {
			if !declared[id] && net.Place(id) == nil && net.Transition(id) == nil {
				net.AddPlace(id, "", 0)
				declared[id] = true
			}
		}
	}
}

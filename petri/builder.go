package petri

// Builder provides a fluent API for constructing Petri nets.
// It simplifies net creation by chaining method calls and using sensible
// defaults (weight 1 arcs, unlabeled nodes).
//
// Example:
//
//	net := petri.Build().
//	    Place("P0", 1).
//	    Place("P1", 0).
//	    LabeledTransition("T0", "Enqueue").
//	    Arc("P0", "T0", 1).
//	    Arc("T0", "P1", 1).
//	    Done()
type Builder struct {
	net *PetriNet
}

// Build creates a new Builder for constructing a Petri net.
func Build() *Builder {
	return &Builder{net: NewPetriNet()}
}

// Place adds an unlabeled place with the given id and initial token count.
func (b *Builder) Place(id string, tokens int) *Builder {
	b.net.AddPlace(id, "", tokens)
	return b
}

// LabeledPlace adds a place with a display label.
func (b *Builder) LabeledPlace(id, label string, tokens int) *Builder {
	b.net.AddPlace(id, label, tokens)
	return b
}

// Transition adds an invisible (unlabeled) transition.
func (b *Builder) Transition(id string) *Builder {
	b.net.AddTransition(id, "")
	return b
}

// LabeledTransition adds a transition with an observable activity label.
func (b *Builder) LabeledTransition(id, label string) *Builder {
	b.net.AddTransition(id, label)
	return b
}

// Arc adds an arc from source to target with the given weight.
func (b *Builder) Arc(from, to string, weight int) *Builder {
	b.net.AddArc(from, to, weight)
	return b
}

// Flow adds the common place -> transition -> place pattern.
//
// Example:
//
//	builder.Flow("input", "process", "output", 1)
//	// Equivalent to:
//	// builder.Arc("input", "process", 1).Arc("process", "output", 1)
func (b *Builder) Flow(fromPlace, transition, toPlace string, weight int) *Builder {
	b.net.AddArc(fromPlace, transition, weight)
	b.net.AddArc(transition, toPlace, weight)
	return b
}

// Chain creates a sequential pipeline of places connected by labeled
// transitions: P0 -T0-> P1 -T1-> ... The first place receives one token,
// labels name the transitions in order.
func (b *Builder) Chain(placePrefix, transPrefix string, labels ...string) *Builder {
	start := len(b.net.Places)
	for i := 0; i <= len(labels); i++ {
		tokens := 0
		if i == 0 {
			tokens = 1
		}
		b.Place(FreshID(b.net, placePrefix), tokens)
	}
	for i, label := range labels {
		tid := FreshID(b.net, transPrefix)
		b.LabeledTransition(tid, label)
		b.Arc(b.net.Places[start+i].ID, tid, 1)
		b.Arc(tid, b.net.Places[start+i+1].ID, 1)
	}
	return b
}

// Done returns the constructed net.
func (b *Builder) Done() *PetriNet {
	return b.net
}

package diagramlens

import (
	"math"
	"slices"
	"strings"
)

// Context is the spatial neighborhood of a focal element.
type Context struct {
	// Summary is a one-line description of the focal element and the
	// nearest neighbors, suitable for display.
	Summary string `json:"summary"`

	// Neighbors holds every element within the proximity radius,
	// nearest first. Ties keep input order.
	Neighbors []NeighborContext `json:"neighbors"`
}

// Neighborhood computes the proximity-ranked context around focal.
//
// Every element in all except the focal one (matched by ID) is measured
// center to center; those strictly inside the radius are kept. A nil
// or blank focal yields an empty Context. Inputs are never modified.
func Neighborhood(focal *Element, all []Element, opts ...Option) Context {
	if focal == nil || focal.isBlank() {
		return Context{Summary: "", Neighbors: []NeighborContext{}}
	}
	o := buildOptions(opts)

	type candidate struct {
		el   *Element
		dist float64
	}
	candidates := make([]candidate, 0, len(all))
	for i := range all {
		el := &all[i]
		if el.ID == focal.ID {
			continue
		}
		d := Distance(*focal, *el)
		if d < o.radius {
			candidates = append(candidates, candidate{el: el, dist: d})
		}
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		}
		return 0
	})

	neighbors := make([]NeighborContext, len(candidates))
	for i, c := range candidates {
		neighbors[i] = NeighborContext{
			ID:       c.el.ID,
			Text:     c.el.Label(),
			Type:     c.el.Type,
			Distance: int(math.Round(c.dist)),
		}
	}

	return Context{
		Summary:   summarize(focal, neighbors, o.summaryLimit),
		Neighbors: neighbors,
	}
}

// summarize renders "<main> (<label>) — connected/near: a, b, ...".
func summarize(focal *Element, neighbors []NeighborContext, limit int) string {
	main := focal.Label()
	if main == "" {
		main = string(focal.Type)
	}
	if main == "" {
		main = focal.ID
	}

	var b strings.Builder
	b.WriteString(main)
	if label := TypeLabel(focal.Type); label != "" {
		b.WriteString(" (")
		b.WriteString(label)
		b.WriteString(")")
	}

	if len(neighbors) == 0 {
		return b.String()
	}
	b.WriteString(" — connected/near: ")
	b.WriteString(joinDescriptors(neighbors, limit))
	return b.String()
}

// joinDescriptors lists at most limit neighbor descriptors, comma separated.
func joinDescriptors(neighbors []NeighborContext, limit int) string {
	if limit < len(neighbors) {
		neighbors = neighbors[:limit]
	}
	parts := make([]string, len(neighbors))
	for i, n := range neighbors {
		parts[i] = n.descriptor()
	}
	return strings.Join(parts, ", ")
}

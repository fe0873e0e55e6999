package diagramlens

import (
	"slices"
)

// Strategy records which tier produced the edges of a traversal.
type Strategy string

const (
	// StrategyBindings means edges came from connector bindings.
	StrategyBindings Strategy = "bindings"

	// StrategyPositional means no binding resolved and nodes were
	// chained left to right, then top to bottom.
	StrategyPositional Strategy = "positional"

	// StrategyEmpty means there were no graph nodes at all.
	StrategyEmpty Strategy = "empty"
)

// Edge is a directed link between two graph nodes.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Traversal is a best-effort reading order over the graph nodes of a
// diagram.
type Traversal struct {
	// Order lists every graph node id exactly once.
	Order []string `json:"order"`

	// Strategy is the tier that produced Edges.
	Strategy Strategy `json:"strategy"`

	// Edges is the deduplicated edge set the walk ran over.
	Edges []Edge `json:"edges"`
}

// Order returns the implied reading order of the graph nodes in elements.
func Order(elements []Element) []string {
	return Traverse(elements).Order
}

// Traverse reconstructs the flow order of a diagram.
//
// Connectors (arrows and lines) are edge candidates; every other element
// is a graph node. Edges come from connectors whose two bindings both
// resolve to graph nodes. When none do, graph nodes are chained by
// position instead. A Kahn walk then orders the nodes, and anything the
// walk cannot reach (cycles, nodes fed only by cycles) is appended in
// input order. Traverse never fails and never modifies elements.
func Traverse(elements []Element) Traversal {
	nodes := graphNodes(elements)
	if len(nodes) == 0 {
		return Traversal{Order: []string{}, Strategy: StrategyEmpty, Edges: []Edge{}}
	}

	strategy := StrategyBindings
	edges := bindingEdges(elements, nodes)
	if len(edges) == 0 {
		strategy = StrategyPositional
		edges = positionalEdges(nodes)
	}

	return Traversal{
		Order:    kahnOrder(nodes, edges),
		Strategy: strategy,
		Edges:    edges,
	}
}

// graphNodes returns the non-connector elements in input order.
// Repeated ids keep only their first occurrence so the output order
// cannot contain duplicates.
func graphNodes(elements []Element) []*Element {
	seen := make(map[string]bool, len(elements))
	nodes := make([]*Element, 0, len(elements))
	for i := range elements {
		el := &elements[i]
		if el.IsConnector() || seen[el.ID] {
			continue
		}
		seen[el.ID] = true
		nodes = append(nodes, el)
	}
	return nodes
}

// bindingEdges derives edges from connectors whose start and end both
// resolve to graph nodes. Duplicate edges are dropped; unresolvable or
// partial bindings are ignored.
func bindingEdges(elements []Element, nodes []*Element) []Edge {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	seen := make(map[Edge]bool)
	edges := []Edge{}
	for i := range elements {
		el := &elements[i]
		if !el.IsConnector() {
			continue
		}
		from, to := el.StartBinding.Target(), el.EndBinding.Target()
		if !known[from] || !known[to] {
			continue
		}
		e := Edge{From: from, To: to}
		if seen[e] {
			continue
		}
		seen[e] = true
		edges = append(edges, e)
	}
	return edges
}

// positionalEdges chains nodes sorted by x, then y. The sort is stable
// so nodes sharing a position keep input order.
func positionalEdges(nodes []*Element) []Edge {
	sorted := slices.Clone(nodes)
	slices.SortStableFunc(sorted, func(a, b *Element) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		case a.Y < b.Y:
			return -1
		case a.Y > b.Y:
			return 1
		}
		return 0
	})

	edges := make([]Edge, 0, len(sorted))
	for i := 0; i+1 < len(sorted); i++ {
		edges = append(edges, Edge{From: sorted[i].ID, To: sorted[i+1].ID})
	}
	return edges
}

// kahnOrder runs a Kahn topological walk. Zero in-degree nodes seed the
// queue in input order; nodes never reached are appended in input order.
func kahnOrder(nodes []*Element, edges []Edge) []string {
	successors := make(map[string][]string, len(nodes))
	inDegree := make(map[string]int, len(nodes))
	for _, e := range edges {
		successors[e.From] = append(successors[e.From], e.To)
		inDegree[e.To]++
	}

	queue := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	visited := make(map[string]bool, len(nodes))
	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		order = append(order, current)

		for _, next := range successors[current] {
			inDegree[next]--
			if inDegree[next] == 0 && !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	for _, n := range nodes {
		if !visited[n.ID] {
			visited[n.ID] = true
			order = append(order, n.ID)
		}
	}
	return order
}

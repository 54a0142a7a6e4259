// Package dag provides a directed graph over skill IDs for modeling the
// requirement relation. Unlike a strict DAG it accepts cyclic edges so that a
// validator can report every cycle at once; TopologicalSort and Cycles tell
// callers whether the graph is actually acyclic.
package dag

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCycle is returned when the graph contains a dependency cycle.
var ErrCycle = errors.New("cycle detected")

// ErrNodeNotFound is returned when an operation references a non-existent node.
var ErrNodeNotFound = errors.New("node not found")

// ErrDuplicateNode is returned when adding a node that already exists.
var ErrDuplicateNode = errors.New("duplicate node")

// Graph is a directed graph. Edges point from a node to its dependencies:
// if A requires B, there is an edge from A to B.
type Graph struct {
	// order records insertion order so traversals are deterministic.
	order []string
	nodes map[string]bool
	// adjacency maps nodeID → dependency IDs in insertion order.
	adjacency map[string][]string
	// reverse maps nodeID → set of dependent IDs (backward edges).
	reverse map[string]map[string]bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:     make(map[string]bool),
		adjacency: make(map[string][]string),
		reverse:   make(map[string]map[string]bool),
	}
}

// AddNode adds a node with the given ID. Returns ErrDuplicateNode if a node
// with that ID already exists.
func (g *Graph) AddNode(id string) error {
	if g.nodes[id] {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}
	g.nodes[id] = true
	g.order = append(g.order, id)
	g.reverse[id] = make(map[string]bool)
	return nil
}

// AddEdge adds a dependency edge: from depends on to. Both nodes must already
// exist. Self-edges and cycle-closing edges are accepted; duplicate edges are
// ignored.
func (g *Graph) AddEdge(from, to string) error {
	if !g.nodes[from] {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, from)
	}
	if !g.nodes[to] {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, to)
	}
	if g.reverse[to][from] {
		return nil
	}
	g.adjacency[from] = append(g.adjacency[from], to)
	g.reverse[to][from] = true
	return nil
}

// Has reports whether the node exists.
func (g *Graph) Has(id string) bool {
	return g.nodes[id]
}

// Cycles returns every elementary cycle reachable through a back edge of a
// depth-first traversal. Each cycle is returned as a path that starts and ends
// with the same node, e.g. [a b c a]. Cycles are deduplicated by rotation, so
// a → b → a and b → a → b are reported once. Traversal order follows node
// insertion order, which keeps the output stable across runs.
func (g *Graph) Cycles() [][]string {
	const (
		unvisited = iota
		onStack
		finished
	)
	state := make(map[string]int, len(g.nodes))
	var stack []string
	var cycles [][]string
	seen := make(map[string]bool)

	var visit func(id string)
	visit = func(id string) {
		state[id] = onStack
		stack = append(stack, id)
		for _, dep := range g.adjacency[id] {
			switch state[dep] {
			case unvisited:
				visit(dep)
			case onStack:
				cycle := closeCycle(stack, dep)
				key := canonicalCycleKey(cycle)
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = finished
	}

	for _, id := range g.order {
		if state[id] == unvisited {
			visit(id)
		}
	}
	return cycles
}

// closeCycle extracts the cycle path from the recursion stack, starting at
// the node the back edge points to.
func closeCycle(stack []string, start string) []string {
	i := len(stack) - 1
	for i >= 0 && stack[i] != start {
		i--
	}
	cycle := make([]string, 0, len(stack)-i+1)
	cycle = append(cycle, stack[i:]...)
	return append(cycle, start)
}

// canonicalCycleKey rotates the open cycle so its smallest ID comes first.
func canonicalCycleKey(cycle []string) string {
	open := cycle[:len(cycle)-1]
	first := 0
	for i, id := range open {
		if id < open[first] {
			first = i
		}
	}
	rotated := append(append([]string{}, open[first:]...), open[:first]...)
	return strings.Join(rotated, "\x00")
}

// FormatCycle renders a cycle path as "a → b → a".
func FormatCycle(cycle []string) string {
	return strings.Join(cycle, " → ")
}

// TopologicalSort returns node IDs with every node after its dependencies.
// Among nodes that are ready together the one added first wins, so an
// insertion order that already satisfies every edge comes back unchanged.
// Returns ErrCycle if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	pending := make(map[string]int, len(g.nodes))
	for _, id := range g.order {
		pending[id] = len(g.adjacency[id])
	}

	placed := make(map[string]bool, len(g.nodes))
	sorted := make([]string, 0, len(g.nodes))
	for len(sorted) < len(g.order) {
		next := ""
		for _, id := range g.order {
			if !placed[id] && pending[id] == 0 {
				next = id
				break
			}
		}
		if next == "" {
			return nil, fmt.Errorf("%w: not all nodes could be ordered (%d of %d)",
				ErrCycle, len(sorted), len(g.nodes))
		}
		placed[next] = true
		sorted = append(sorted, next)
		for dependent := range g.reverse[next] {
			pending[dependent]--
		}
	}
	return sorted, nil
}

// Ancestors returns all transitive dependencies of the given node, sorted
// alphabetically. Safe on cyclic graphs. Returns nil if the node does not
// exist or has no dependencies.
func (g *Graph) Ancestors(id string) []string {
	if !g.nodes[id] {
		return nil
	}
	visited := make(map[string]bool)
	g.collect(id, visited, func(n string) []string { return g.adjacency[n] })
	delete(visited, id)
	return sortedKeys(visited)
}

// Descendants returns all transitive dependents of the given node, sorted
// alphabetically. Returns nil if the node does not exist or has none.
func (g *Graph) Descendants(id string) []string {
	if !g.nodes[id] {
		return nil
	}
	visited := make(map[string]bool)
	g.collect(id, visited, func(n string) []string { return sortedKeys(g.reverse[n]) })
	delete(visited, id)
	return sortedKeys(visited)
}

func (g *Graph) collect(id string, visited map[string]bool, next func(string) []string) {
	for _, n := range next(id) {
		if !visited[n] {
			visited[n] = true
			g.collect(n, visited, next)
		}
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

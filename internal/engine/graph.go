package engine

import (
	"github.com/papapumpkin/skillmesh/internal/dag"
	"github.com/papapumpkin/skillmesh/internal/index"
)

// requirementGraph links each skill to every skill its requirement rules
// name. An any_of rule contributes an edge to each of its options.
func requirementGraph(idx *index.Index) *dag.Graph {
	g := dag.New()
	ids := idx.SkillIDs()
	for _, id := range ids {
		_ = g.AddNode(id)
	}
	for _, id := range ids {
		s, _ := idx.Skill(id)
		for _, r := range s.Requires {
			for _, dep := range r.Skills {
				_ = g.AddEdge(id, dep)
			}
		}
	}
	return g
}

// TransitiveRequirements returns every skill ref may need through a chain of
// requirement rules, sorted by ID. Options of an any_of rule are all included.
// An unknown ref yields nil.
func (e *Engine) TransitiveRequirements(ref string) []string {
	id, ok := e.idx.Resolve(ref)
	if !ok {
		return nil
	}
	return e.reqs.Ancestors(id)
}

// TransitiveDependents returns every skill that needs ref directly or through
// a chain of requirement rules, sorted by ID.
func (e *Engine) TransitiveDependents(ref string) []string {
	id, ok := e.idx.Resolve(ref)
	if !ok {
		return nil
	}
	return e.reqs.Descendants(id)
}

// CategoryOrder returns every category ID, moving a category ahead of the
// categories whose members need its skills. Unconstrained categories keep
// authored order, as do all of them when categories need each other.
func (e *Engine) CategoryOrder() []string {
	authored := e.idx.CategoryIDs()
	g := dag.New()
	for _, id := range authored {
		_ = g.AddNode(id)
	}
	for _, cid := range authored {
		cat, _ := e.idx.Category(cid)
		for _, member := range cat.Members {
			for _, dep := range e.reqs.Ancestors(member) {
				s, _ := e.idx.Skill(dep)
				if s.Category != "" && s.Category != cid && g.Has(s.Category) {
					_ = g.AddEdge(cid, s.Category)
				}
			}
		}
	}
	order, err := g.TopologicalSort()
	if err != nil {
		return authored
	}
	return order
}

// Package engine answers compatibility questions against a compiled index and
// a caller-owned selection. Every method is a pure function of its inputs:
// the same index, selection, and skill always produce the same answer, so a
// UI can re-query after each change without caching.
package engine

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/skillmesh/internal/dag"
	"github.com/papapumpkin/skillmesh/internal/index"
	"github.com/papapumpkin/skillmesh/internal/model"
)

// Engine queries a compiled index. It holds no mutable state and is safe to
// share across goroutines.
type Engine struct {
	idx  *index.Index
	reqs *dag.Graph
}

// Reason explains why a skill is recommended.
type Reason struct {
	From     string         // Selected skill that triggered the recommendation
	Strength model.Strength // weak or strong
	Text     string         // Authored rule text, may be empty
}

// String renders the reason for display.
func (r Reason) String() string {
	if r.Text == "" {
		return fmt.Sprintf("recommended by %s (%s)", r.From, r.Strength)
	}
	return fmt.Sprintf("recommended by %s (%s): %s", r.From, r.Strength, r.Text)
}

// New returns an Engine over idx.
func New(idx *index.Index) *Engine {
	return &Engine{idx: idx, reqs: requirementGraph(idx)}
}

// Index returns the underlying compiled index.
func (e *Engine) Index() *index.Index {
	return e.idx
}

// Resolve returns the canonical skill ID for an ID, alias, or path.
func (e *Engine) Resolve(ref string) (string, bool) {
	return e.idx.Resolve(ref)
}

// Categories returns every category ID in authored order.
func (e *Engine) Categories() []string {
	return e.idx.CategoryIDs()
}

// NewSelection builds a Set from refs, resolving aliases and paths. Refs that
// name no skill are returned separately and left out of the Set.
func (e *Engine) NewSelection(refs ...string) (*Set, []string) {
	sel := NewSet()
	var unknown []string
	for _, ref := range refs {
		id, ok := e.idx.Resolve(ref)
		if !ok {
			unknown = append(unknown, ref)
			continue
		}
		sel.Add(id)
	}
	return sel, unknown
}

// IsDisabled reports whether ref cannot currently be selected. A conflict
// with a selected skill takes priority over an unmet requirement; the first
// matching conflict supplies the reason.
func (e *Engine) IsDisabled(sel Selection, ref string) (bool, string) {
	s, ok := e.idx.Skill(ref)
	if !ok {
		return true, fmt.Sprintf("unknown skill %q", ref)
	}
	for _, c := range s.ConflictsWith {
		if sel.Has(c.Skill) {
			return true, c.Reason
		}
	}
	for _, req := range s.Requires {
		if reason, unmet := e.unmet(sel, req); unmet {
			return true, reason
		}
	}
	return false, ""
}

// unmet reports whether req is unsatisfied by sel and, if so, explains it.
func (e *Engine) unmet(sel Selection, req index.Requirement) (string, bool) {
	var missing []string
	for _, id := range req.Skills {
		if sel.Has(id) {
			if req.Mode == model.RequireAnyOf {
				return "", false
			}
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return "", false
	}
	if req.Reason != "" {
		return req.Reason, true
	}
	if req.Mode == model.RequireAnyOf {
		return "requires one of " + e.names(req.Skills, " or "), true
	}
	return "requires " + e.names(missing, " and "), true
}

func (e *Engine) names(ids []string, sep string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = e.idx.Name(id)
	}
	return strings.Join(out, sep)
}

// IsRecommended reports whether any selected skill recommends ref, returning
// every contributing reason in the order the recommenders were declared.
func (e *Engine) IsRecommended(sel Selection, ref string) (bool, []Reason) {
	s, ok := e.idx.Skill(ref)
	if !ok {
		return false, nil
	}
	var reasons []Reason
	for _, rec := range s.RecommendedBy {
		if sel.Has(rec.Skill) {
			reasons = append(reasons, Reason{From: rec.Skill, Strength: rec.Strength, Text: rec.Reason})
		}
	}
	return len(reasons) > 0, reasons
}

// DescribeSkill returns everything known about ref.
func (e *Engine) DescribeSkill(ref string) (index.ResolvedSkill, bool) {
	return e.idx.Skill(ref)
}

package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/papapumpkin/skillmesh/internal/dag"
)

// Validate checks a model for internal consistency: every reference resolves,
// the requirement graph is acyclic, conflict rules have at least two members,
// and no skill requires something it conflicts with. Every problem is
// collected; validation never stops at the first issue.
func Validate(m *Model) []Issue {
	v := &validator{m: m, r: NewResolver(m)}
	v.skills()
	v.categories()
	v.aliases()
	v.conflicts()
	v.requires()
	v.recommends()
	v.alternatives()
	v.cycles()
	v.contradictions()
	return v.issues
}

type validator struct {
	m      *Model
	r      *Resolver
	issues []Issue
}

func (v *validator) add(sev Severity, cat IssueCategory, subject, field string, err error) {
	v.issues = append(v.issues, Issue{
		Severity: sev,
		Category: cat,
		Subject:  subject,
		Field:    field,
		Err:      err,
	})
}

// ref resolves a skill reference, recording an unknown_ref error if it fails.
func (v *validator) ref(subject, field, ref string) (string, bool) {
	if ref == "" {
		v.add(SeverityError, IssueMissingField, subject, field, fmt.Errorf("%w: %s", ErrMissingField, field))
		return "", false
	}
	id, ok := v.r.Resolve(ref)
	if !ok {
		v.add(SeverityError, IssueUnknownRef, subject, field, fmt.Errorf("%w: %q", ErrUnknownSkill, ref))
	}
	return id, ok
}

func (v *validator) skills() {
	seen := make(map[string]bool, len(v.m.Skills))
	paths := make(map[string]string)
	categories := make(map[string]bool, len(v.m.Categories))
	for _, c := range v.m.Categories {
		categories[c.ID] = true
	}

	for i, s := range v.m.Skills {
		if s.ID == "" {
			v.add(SeverityError, IssueMissingField, fmt.Sprintf("skills[%d]", i), "id", fmt.Errorf("%w: id", ErrMissingField))
			continue
		}
		subject := "skill " + s.ID
		if seen[s.ID] {
			v.add(SeverityError, IssueDuplicateID, subject, "id", fmt.Errorf("%w: skill %q defined more than once", ErrDuplicateID, s.ID))
		}
		seen[s.ID] = true

		if s.Name == "" {
			v.add(SeverityWarning, IssueMissingField, subject, "name", fmt.Errorf("%w: name", ErrMissingField))
		}
		if s.Category != "" && !categories[s.Category] {
			v.add(SeverityError, IssueUnknownRef, subject, "category", fmt.Errorf("%w: %q", ErrUnknownCategory, s.Category))
		}
		if s.Path != "" {
			if prev, ok := paths[s.Path]; ok {
				v.add(SeverityError, IssueDuplicateID, subject, "path", fmt.Errorf("%w: path %q already used by skill %q", ErrDuplicateID, s.Path, prev))
			}
			paths[s.Path] = s.ID
		}
	}
}

func (v *validator) categories() {
	seen := make(map[string]bool, len(v.m.Categories))
	declared := make(map[string]string, len(v.m.Skills)) // skill ID → category it declares
	for _, s := range v.m.Skills {
		if s.Category != "" {
			declared[s.ID] = s.Category
		}
	}
	owner := make(map[string]string) // skill ID → first category listing it

	for i, c := range v.m.Categories {
		if c.ID == "" {
			v.add(SeverityError, IssueMissingField, fmt.Sprintf("categories[%d]", i), "id", fmt.Errorf("%w: id", ErrMissingField))
			continue
		}
		subject := "category " + c.ID
		if seen[c.ID] {
			v.add(SeverityError, IssueDuplicateID, subject, "id", fmt.Errorf("%w: category %q defined more than once", ErrDuplicateID, c.ID))
		}
		seen[c.ID] = true

		for _, member := range c.Members {
			id, ok := v.ref(subject, "members", member)
			if !ok {
				continue
			}
			if d, ok := declared[id]; ok && d != c.ID {
				v.add(SeverityError, IssueInvalidValue, subject, "members",
					fmt.Errorf("%w: skill %q declares category %q but is listed in %q", ErrInvalidValue, id, d, c.ID))
				continue
			}
			if prev, ok := owner[id]; ok && prev != c.ID {
				v.add(SeverityError, IssueInvalidValue, subject, "members",
					fmt.Errorf("%w: skill %q is already a member of category %q", ErrInvalidValue, id, prev))
				continue
			}
			owner[id] = c.ID
		}
	}
}

func (v *validator) aliases() {
	names := make([]string, 0, len(v.m.Aliases))
	for alias := range v.m.Aliases {
		names = append(names, alias)
	}
	sort.Strings(names)

	for _, alias := range names {
		subject := "alias " + alias
		if v.r.ids[alias] {
			v.add(SeverityError, IssueAlias, subject, "aliases",
				fmt.Errorf("%w: %q shadows an existing skill ID", ErrAlias, alias))
			continue
		}
		if _, err := v.r.resolve(alias, 0); err != nil {
			cat := IssueUnknownRef
			if errors.Is(err, ErrAlias) {
				cat = IssueAlias
			}
			v.add(SeverityError, cat, subject, "aliases", err)
		}
	}
}

func (v *validator) conflicts() {
	for i, c := range v.m.Conflicts {
		subject := fmt.Sprintf("conflicts[%d]", i)
		distinct := make(map[string]bool, len(c.Skills))
		for _, ref := range c.Skills {
			if id, ok := v.ref(subject, "skills", ref); ok {
				distinct[id] = true
			} else if ref != "" {
				distinct[ref] = true
			}
		}
		if len(distinct) < 2 {
			v.add(SeverityError, IssueConflictSize, subject, "skills",
				fmt.Errorf("%w: got %d", ErrConflictTooSmall, len(distinct)))
		}
		if c.Reason == "" {
			v.add(SeverityWarning, IssueMissingField, subject, "reason", fmt.Errorf("%w: reason", ErrMissingField))
		}
	}
}

func (v *validator) requires() {
	for i, r := range v.m.Requires {
		subject := fmt.Sprintf("requires[%d]", i)
		if r.Skill != "" {
			subject += " (" + r.Skill + ")"
		}
		v.ref(subject, "skill", r.Skill)
		if !ValidRequireModes[r.EffectiveMode()] {
			v.add(SeverityError, IssueInvalidValue, subject, "mode",
				fmt.Errorf("%w: mode %q (must be all or any_of)", ErrInvalidValue, r.Mode))
		}
		if len(r.Needs) == 0 {
			v.add(SeverityError, IssueMissingField, subject, "needs", fmt.Errorf("%w: needs", ErrMissingField))
		}
		for _, need := range r.Needs {
			v.ref(subject, "needs", need)
		}
	}
}

func (v *validator) recommends() {
	for i, r := range v.m.Recommends {
		subject := fmt.Sprintf("recommends[%d]", i)
		if r.When != "" {
			subject += " (" + r.When + ")"
		}
		when, whenOK := v.ref(subject, "when", r.When)
		if len(r.Suggest) == 0 {
			v.add(SeverityError, IssueMissingField, subject, "suggest", fmt.Errorf("%w: suggest", ErrMissingField))
		}
		for _, s := range r.Suggest {
			id, ok := v.ref(subject, "suggest.skill", s.Skill)
			if !ValidStrengths[s.EffectiveStrength()] {
				v.add(SeverityError, IssueInvalidValue, subject, "suggest.strength",
					fmt.Errorf("%w: strength %q (must be weak or strong)", ErrInvalidValue, s.Strength))
			}
			if ok && whenOK && id == when {
				v.add(SeverityWarning, IssueInvalidValue, subject, "suggest.skill",
					fmt.Errorf("%w: %q recommends itself", ErrInvalidValue, id))
			}
		}
	}
}

func (v *validator) alternatives() {
	for i, a := range v.m.Alternatives {
		subject := fmt.Sprintf("alternatives[%d]", i)
		if a.Purpose != "" {
			subject += " (" + a.Purpose + ")"
		}
		distinct := make(map[string]bool, len(a.Skills))
		for _, ref := range a.Skills {
			if id, ok := v.ref(subject, "skills", ref); ok {
				distinct[id] = true
			}
		}
		if len(distinct) < 2 {
			v.add(SeverityWarning, IssueInvalidValue, subject, "skills",
				fmt.Errorf("%w: alternative group has fewer than two skills", ErrInvalidValue))
		}
	}
}

// RequirementGraph builds the skill → required-skill graph from every
// resolvable requirement edge, regardless of mode.
func RequirementGraph(m *Model) *dag.Graph {
	r := NewResolver(m)
	g := dag.New()
	for _, s := range m.Skills {
		if s.ID != "" && !g.Has(s.ID) {
			_ = g.AddNode(s.ID)
		}
	}
	for _, rule := range m.Requires {
		from, ok := r.Resolve(rule.Skill)
		if !ok {
			continue
		}
		for _, need := range rule.Needs {
			if to, ok := r.Resolve(need); ok {
				_ = g.AddEdge(from, to)
			}
		}
	}
	return g
}

func (v *validator) cycles() {
	for _, cycle := range RequirementGraph(v.m).Cycles() {
		v.add(SeverityError, IssueCycle, "skill "+cycle[0], "requires",
			fmt.Errorf("%w: %s", ErrRequirementCycle, dag.FormatCycle(cycle)))
	}
}

// contradictions flags requirements on skills the subject explicitly
// conflicts with. An any_of rule whose every option conflicts can never be
// satisfied and is an error; otherwise the pairing is a warning.
func (v *validator) contradictions() {
	conflicts := ExplicitConflictPairs(v.m, v.r)
	for i, rule := range v.m.Requires {
		subject, ok := v.r.Resolve(rule.Skill)
		if !ok || len(rule.Needs) == 0 {
			continue
		}
		label := fmt.Sprintf("requires[%d] (%s)", i, rule.Skill)
		var clashing []string
		resolvable := 0
		for _, need := range rule.Needs {
			id, ok := v.r.Resolve(need)
			if !ok {
				continue
			}
			resolvable++
			if conflicts[NewPair(subject, id)] {
				clashing = append(clashing, id)
			}
		}
		if len(clashing) == 0 {
			continue
		}
		if rule.EffectiveMode() == RequireAnyOf && len(clashing) == resolvable {
			v.add(SeverityError, IssueContradiction, label, "needs",
				fmt.Errorf("%w: %q conflicts with every option (%s); the rule can never be satisfied",
					ErrContradiction, subject, strings.Join(clashing, ", ")))
			continue
		}
		for _, id := range clashing {
			v.add(SeverityWarning, IssueContradiction, label, "needs",
				fmt.Errorf("%w: %q requires %q but they conflict", ErrContradiction, subject, id))
		}
	}
}

// Pair is an unordered pair of skill IDs.
type Pair struct {
	A, B string
}

// NewPair returns the pair with its members in lexical order.
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// ExplicitConflictPairs returns every unordered pair declared by an authored
// conflict rule, resolved to canonical skill IDs.
func ExplicitConflictPairs(m *Model, r *Resolver) map[Pair]bool {
	pairs := make(map[Pair]bool)
	for _, c := range m.Conflicts {
		ids := r.ResolveAll(c.Skills)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				pairs[NewPair(ids[i], ids[j])] = true
			}
		}
	}
	return pairs
}

// ResolveAll canonicalizes refs, dropping unknown references and duplicates
// while keeping first-seen order.
func (r *Resolver) ResolveAll(refs []string) []string {
	seen := make(map[string]bool, len(refs))
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		id, ok := r.Resolve(ref)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

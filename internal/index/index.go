// Package index holds the compiled, skill-centric view of a relationship
// model. An Index is built once by Compile and is read-only afterwards, so it
// may be shared across goroutines without locking.
package index

import (
	"sort"

	"github.com/papapumpkin/skillmesh/internal/model"
)

// Origin records where a conflict entry came from.
type Origin string

const (
	// OriginRule marks a conflict declared by an authored conflict rule.
	OriginRule Origin = "rule"
	// OriginCategory marks a conflict synthesized from category exclusivity.
	OriginCategory Origin = "category"
)

// Conflict is one entry of a skill's conflictsWith list.
type Conflict struct {
	Skill  string `toml:"skill"`
	Reason string `toml:"reason"`
	Origin Origin `toml:"origin"`
}

// Requirement is one requirement rule on a skill.
type Requirement struct {
	Mode   model.RequireMode `toml:"mode"`
	Skills []string          `toml:"skills"`
	Reason string            `toml:"reason,omitempty"` // Authored reason; empty means synthesize
}

// Recommendation is an edge in either direction: in Recommends, Skill is the
// suggested skill; in RecommendedBy, Skill is the trigger.
type Recommendation struct {
	Skill    string         `toml:"skill"`
	Strength model.Strength `toml:"strength"`
	Reason   string         `toml:"reason"`
}

// ResolvedSkill is everything known about one skill after compilation.
type ResolvedSkill struct {
	ID            string           `toml:"id"`
	Name          string           `toml:"name"`
	Category      string           `toml:"category,omitempty"`
	Path          string           `toml:"path,omitempty"`
	ConflictsWith []Conflict       `toml:"conflicts_with"`
	Requires      []Requirement    `toml:"requires"`
	RequiredBy    []string         `toml:"required_by"`
	Recommends    []Recommendation `toml:"recommends"`
	RecommendedBy []Recommendation `toml:"recommended_by"`
	Alternatives  []string         `toml:"alternatives"`
}

// DisplayName returns the skill's name, falling back to its ID.
func (s ResolvedSkill) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

func (s *ResolvedSkill) clone() ResolvedSkill {
	out := *s
	out.ConflictsWith = append([]Conflict(nil), s.ConflictsWith...)
	out.Requires = make([]Requirement, len(s.Requires))
	for i, r := range s.Requires {
		r.Skills = append([]string(nil), r.Skills...)
		out.Requires[i] = r
	}
	out.RequiredBy = append([]string(nil), s.RequiredBy...)
	out.Recommends = append([]Recommendation(nil), s.Recommends...)
	out.RecommendedBy = append([]Recommendation(nil), s.RecommendedBy...)
	out.Alternatives = append([]string(nil), s.Alternatives...)
	return out
}

// Category is a compiled category with its full member list.
type Category struct {
	ID        string   `toml:"id"`
	Name      string   `toml:"name"`
	Exclusive bool     `toml:"exclusive"`
	Members   []string `toml:"members"`
}

// DisplayName returns the category's name, falling back to its ID.
func (c Category) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// Index is the compiled, frozen relationship index.
type Index struct {
	skills        map[string]*ResolvedSkill
	order         []string
	categories    map[string]*Category
	categoryOrder []string
	aliases       map[string]string // alias or path → skill ID
	fingerprint   string
	warnings      []model.Issue
}

func newIndex() *Index {
	return &Index{
		skills:     make(map[string]*ResolvedSkill),
		categories: make(map[string]*Category),
		aliases:    make(map[string]string),
	}
}

// Warnings returns the non-fatal issues found when the index was compiled.
// They survive a round trip through the cache.
func (x *Index) Warnings() []model.Issue {
	return append([]model.Issue(nil), x.warnings...)
}

// Resolve returns the canonical skill ID for a skill ID, alias, or path.
func (x *Index) Resolve(ref string) (string, bool) {
	if _, ok := x.skills[ref]; ok {
		return ref, true
	}
	id, ok := x.aliases[ref]
	return id, ok
}

// Skill returns a copy of the resolved entry for ref. O(1) plus the size of
// the entry.
func (x *Index) Skill(ref string) (ResolvedSkill, bool) {
	id, ok := x.Resolve(ref)
	if !ok {
		return ResolvedSkill{}, false
	}
	return x.skills[id].clone(), true
}

// Has reports whether ref names a skill.
func (x *Index) Has(ref string) bool {
	_, ok := x.Resolve(ref)
	return ok
}

// Name returns the display name of a skill, or ref itself if unknown.
func (x *Index) Name(ref string) string {
	id, ok := x.Resolve(ref)
	if !ok {
		return ref
	}
	return x.skills[id].DisplayName()
}

// SkillIDs returns every skill ID in authored order.
func (x *Index) SkillIDs() []string {
	return append([]string(nil), x.order...)
}

// Len returns the number of skills.
func (x *Index) Len() int {
	return len(x.order)
}

// Category returns a copy of the compiled category.
func (x *Index) Category(id string) (Category, bool) {
	c, ok := x.categories[id]
	if !ok {
		return Category{}, false
	}
	out := *c
	out.Members = append([]string(nil), c.Members...)
	return out, true
}

// CategoryIDs returns every category ID in authored order.
func (x *Index) CategoryIDs() []string {
	return append([]string(nil), x.categoryOrder...)
}

// Aliases returns a copy of the alias table (alias or path → skill ID).
func (x *Index) Aliases() map[string]string {
	out := make(map[string]string, len(x.aliases))
	for k, v := range x.aliases {
		out[k] = v
	}
	return out
}

// AliasesOf returns the aliases and paths that resolve to id, sorted.
func (x *Index) AliasesOf(id string) []string {
	var out []string
	for alias, target := range x.aliases {
		if target == id {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// Fingerprint identifies the source the index was compiled from.
func (x *Index) Fingerprint() string {
	return x.fingerprint
}

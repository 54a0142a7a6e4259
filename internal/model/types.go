// Package model defines the authored relationship model: skills, categories,
// conflict rules, requirement rules, recommendation rules, alternative groups,
// and the alias table. It loads the model from a TOML or YAML document and
// validates it for internal consistency before compilation.
package model

// Model is the fully parsed representation of one relationship document.
type Model struct {
	Skills       []Skill              `toml:"skills" yaml:"skills"`
	Categories   []Category           `toml:"categories" yaml:"categories"`
	Conflicts    []ConflictRule       `toml:"conflicts" yaml:"conflicts"`
	Requires     []RequirementRule    `toml:"requires" yaml:"requires"`
	Recommends   []RecommendationRule `toml:"recommends" yaml:"recommends"`
	Alternatives []AlternativeGroup   `toml:"alternatives" yaml:"alternatives"`
	// Aliases maps a short ID to a skill ID or a fully-qualified skill path.
	Aliases map[string]string `toml:"aliases" yaml:"aliases"`

	// SourceFile is the path the model was loaded from, for error context.
	SourceFile string `toml:"-" yaml:"-"`
}

// Skill is one selectable capability.
type Skill struct {
	ID       string `toml:"id" yaml:"id"`
	Name     string `toml:"name" yaml:"name"`
	Category string `toml:"category" yaml:"category"`
	Path     string `toml:"path" yaml:"path"` // Fully-qualified authoring path, optional
}

// DisplayName returns the skill's name, falling back to its ID.
func (s Skill) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// Category groups skills. Members of an exclusive category are pairwise
// mutually exclusive unless a requirement rule links them.
type Category struct {
	ID        string   `toml:"id" yaml:"id"`
	Name      string   `toml:"name" yaml:"name"`
	Exclusive bool     `toml:"exclusive" yaml:"exclusive"`
	Members   []string `toml:"members" yaml:"members"`
	Reason    string   `toml:"reason" yaml:"reason"` // Overrides the synthesized exclusivity reason
}

// DisplayName returns the category's name, falling back to its ID.
func (c Category) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// ExclusiveReason is the conflict reason used for pairs synthesized from
// this category's exclusivity.
func (c Category) ExclusiveReason() string {
	if c.Reason != "" {
		return c.Reason
	}
	return c.DisplayName() + " — choose one"
}

// ConflictRule declares that at most one of Skills may be selected.
type ConflictRule struct {
	Skills []string `toml:"skills" yaml:"skills"`
	Reason string   `toml:"reason" yaml:"reason"`
}

// RequireMode controls how a requirement's Needs list is satisfied.
type RequireMode string

const (
	// RequireAll is satisfied when every needed skill is selected.
	RequireAll RequireMode = "all"
	// RequireAnyOf is satisfied when at least one needed skill is selected.
	RequireAnyOf RequireMode = "any_of"
)

// ValidRequireModes is the set of recognized requirement modes.
var ValidRequireModes = map[RequireMode]bool{
	RequireAll:   true,
	RequireAnyOf: true,
}

// RequirementRule gates selection of Skill on the presence of Needs.
type RequirementRule struct {
	Skill  string      `toml:"skill" yaml:"skill"`
	Mode   RequireMode `toml:"mode" yaml:"mode"` // "" = all
	Needs  []string    `toml:"needs" yaml:"needs"`
	Reason string      `toml:"reason" yaml:"reason"`
}

// EffectiveMode returns the rule's mode with the default applied.
func (r RequirementRule) EffectiveMode() RequireMode {
	if r.Mode == "" {
		return RequireAll
	}
	return r.Mode
}

// Strength grades how firmly a recommendation is made.
type Strength string

const (
	// StrengthWeak marks a recommendation shown as a hint. It is the default.
	StrengthWeak Strength = "weak"
	// StrengthStrong marks a recommendation offered ahead of weak ones.
	StrengthStrong Strength = "strong"
)

// ValidStrengths is the set of recognized recommendation strengths.
var ValidStrengths = map[Strength]bool{
	StrengthWeak:   true,
	StrengthStrong: true,
}

// Suggestion is one recommended skill within a RecommendationRule.
type Suggestion struct {
	Skill    string   `toml:"skill" yaml:"skill"`
	Strength Strength `toml:"strength" yaml:"strength"` // "" = weak
}

// EffectiveStrength returns the suggestion's strength with the default applied.
func (s Suggestion) EffectiveStrength() Strength {
	if s.Strength == "" {
		return StrengthWeak
	}
	return s.Strength
}

// RecommendationRule suggests skills when When is selected. Advisory only.
type RecommendationRule struct {
	When    string       `toml:"when" yaml:"when"`
	Suggest []Suggestion `toml:"suggest" yaml:"suggest"`
	Reason  string       `toml:"reason" yaml:"reason"`
}

// AlternativeGroup lists skills that are interchangeable for one purpose.
type AlternativeGroup struct {
	Purpose string   `toml:"purpose" yaml:"purpose"`
	Skills  []string `toml:"skills" yaml:"skills"`
}

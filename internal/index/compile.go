package index

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/skillmesh/internal/model"
)

// ErrInvalidModel is returned when validation reports error-severity issues.
var ErrInvalidModel = errors.New("invalid relationship model")

// Option configures compilation.
type Option func(*compiler)

// WithLogger sets the logger used for compile diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *compiler) {
		if l != nil {
			c.log = l
		}
	}
}

// WithStrict treats warnings as fatal.
func WithStrict(strict bool) Option {
	return func(c *compiler) { c.strict = strict }
}

// withFingerprint overrides the fingerprint derived from the model.
func withFingerprint(fp string) Option {
	return func(c *compiler) { c.fingerprint = fp }
}

type compiler struct {
	m           *model.Model
	r           *model.Resolver
	log         *slog.Logger
	strict      bool
	fingerprint string
	idx         *Index
}

// Fingerprint returns the hex SHA-256 of a model document's bytes.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CompileFile loads, validates, and compiles the model document at path.
// Load and parse failures are returned as the error with no issues. On
// validation failure every issue is returned along with ErrInvalidModel.
func CompileFile(path string, opts ...Option) (*Index, []model.Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading model: %w", err)
	}
	format, err := model.FormatFor(path)
	if err != nil {
		return nil, nil, err
	}
	m, err := model.Parse(data, format, path)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]Option{withFingerprint(Fingerprint(data))}, opts...)
	return Compile(m, opts...)
}

// Compile validates m and, if it has no errors, merges the group-centric
// rules into a per-skill index. Issues are returned even on success when
// warnings exist.
func Compile(m *model.Model, opts ...Option) (*Index, []model.Issue, error) {
	c := &compiler{
		m:   m,
		r:   model.NewResolver(m),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	issues := model.Validate(m)
	for _, i := range issues {
		c.log.Debug("validation issue", "severity", i.Severity, "category", i.Category, "subject", i.Subject, "err", i.Err)
	}
	if n := model.CountErrors(issues); n > 0 {
		return nil, issues, fmt.Errorf("%w: %d error(s)", ErrInvalidModel, n)
	}
	if c.strict && len(issues) > 0 {
		return nil, issues, fmt.Errorf("%w: %d warning(s) in strict mode", ErrInvalidModel, len(issues))
	}

	if c.fingerprint == "" {
		data, err := toml.Marshal(m)
		if err != nil {
			return nil, issues, fmt.Errorf("fingerprinting model: %w", err)
		}
		c.fingerprint = Fingerprint(data)
	}

	idx := c.build()
	idx.warnings = append([]model.Issue(nil), issues...)
	c.log.Debug("compiled index",
		"skills", idx.Len(),
		"categories", len(idx.categoryOrder),
		"fingerprint", idx.fingerprint[:12])
	return idx, issues, nil
}

func (c *compiler) build() *Index {
	c.idx = newIndex()
	c.idx.fingerprint = c.fingerprint
	c.addSkills()
	c.addCategories()
	c.addConflicts()
	c.addRequirements()
	c.addRecommendations()
	c.addAlternatives()
	return c.idx
}

func (c *compiler) addSkills() {
	for _, s := range c.m.Skills {
		c.idx.skills[s.ID] = &ResolvedSkill{
			ID:       s.ID,
			Name:     s.DisplayName(),
			Category: s.Category,
			Path:     s.Path,
		}
		c.idx.order = append(c.idx.order, s.ID)
	}
	for alias, id := range c.r.Aliases() {
		c.idx.aliases[alias] = id
	}
}

// addCategories computes each category's membership as its explicit member
// list followed by every skill that declares the category.
func (c *compiler) addCategories() {
	for _, cat := range c.m.Categories {
		members := c.r.ResolveAll(cat.Members)
		seen := make(map[string]bool, len(members))
		for _, id := range members {
			seen[id] = true
		}
		for _, s := range c.m.Skills {
			if s.Category == cat.ID && !seen[s.ID] {
				seen[s.ID] = true
				members = append(members, s.ID)
			}
		}
		for _, id := range members {
			if c.idx.skills[id].Category == "" {
				c.idx.skills[id].Category = cat.ID
			}
		}
		c.idx.categories[cat.ID] = &Category{
			ID:        cat.ID,
			Name:      cat.DisplayName(),
			Exclusive: cat.Exclusive,
			Members:   members,
		}
		c.idx.categoryOrder = append(c.idx.categoryOrder, cat.ID)
	}
}

// pairEntry is one deduplicated conflict pair awaiting expansion.
type pairEntry struct {
	pair   model.Pair
	reason string
	origin Origin
}

// addConflicts merges authored conflict rules with pairs synthesized from
// exclusive categories. Authored rules are folded in first, so when both
// sources name the same pair the authored reason wins, and within one skill's
// list authored entries precede category-derived ones.
func (c *compiler) addConflicts() {
	var entries []pairEntry
	seen := make(map[model.Pair]bool)

	for _, rule := range c.m.Conflicts {
		ids := c.r.ResolveAll(rule.Skills)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				p := model.NewPair(ids[i], ids[j])
				if seen[p] {
					continue
				}
				seen[p] = true
				reason := rule.Reason
				if reason == "" {
					reason = fmt.Sprintf("%s and %s cannot be combined", c.idx.Name(ids[i]), c.idx.Name(ids[j]))
				}
				entries = append(entries, pairEntry{pair: p, reason: reason, origin: OriginRule})
			}
		}
	}

	linked := c.requirementLinks()
	for _, catID := range c.idx.categoryOrder {
		cat := c.idx.categories[catID]
		if !cat.Exclusive {
			continue
		}
		reason := c.categoryReason(catID)
		for i := 0; i < len(cat.Members); i++ {
			for j := i + 1; j < len(cat.Members); j++ {
				p := model.NewPair(cat.Members[i], cat.Members[j])
				if seen[p] || linked[p] {
					continue
				}
				seen[p] = true
				entries = append(entries, pairEntry{pair: p, reason: reason, origin: OriginCategory})
			}
		}
	}

	for _, e := range entries {
		a, b := c.idx.skills[e.pair.A], c.idx.skills[e.pair.B]
		a.ConflictsWith = append(a.ConflictsWith, Conflict{Skill: b.ID, Reason: e.reason, Origin: e.origin})
		b.ConflictsWith = append(b.ConflictsWith, Conflict{Skill: a.ID, Reason: e.reason, Origin: e.origin})
	}
	c.log.Debug("merged conflicts", "pairs", len(entries))
}

// categoryReason returns the exclusivity reason authored on the category.
func (c *compiler) categoryReason(id string) string {
	for _, cat := range c.m.Categories {
		if cat.ID == id {
			return cat.ExclusiveReason()
		}
	}
	return id + " — choose one"
}

// requirementLinks returns every pair joined by a requirement rule. Such
// pairs are exempt from category exclusivity.
func (c *compiler) requirementLinks() map[model.Pair]bool {
	links := make(map[model.Pair]bool)
	for _, rule := range c.m.Requires {
		subject, ok := c.r.Resolve(rule.Skill)
		if !ok {
			continue
		}
		for _, need := range c.r.ResolveAll(rule.Needs) {
			links[model.NewPair(subject, need)] = true
		}
	}
	return links
}

func (c *compiler) addRequirements() {
	for _, rule := range c.m.Requires {
		subjectID, _ := c.r.Resolve(rule.Skill)
		subject := c.idx.skills[subjectID]
		needs := c.r.ResolveAll(rule.Needs)
		subject.Requires = append(subject.Requires, Requirement{
			Mode:   rule.EffectiveMode(),
			Skills: needs,
			Reason: rule.Reason,
		})
		for _, id := range needs {
			target := c.idx.skills[id]
			if !contains(target.RequiredBy, subjectID) {
				target.RequiredBy = append(target.RequiredBy, subjectID)
			}
		}
	}
}

// addRecommendations records each suggestion on the trigger and the inverse
// edge on the suggested skill. Several rules may link the same pair; each
// contributes its own entry so every reason survives. Only exact repeats are
// dropped.
func (c *compiler) addRecommendations() {
	type recKey struct {
		from, to string
		strength model.Strength
		reason   string
	}
	seen := make(map[recKey]bool)
	for _, rule := range c.m.Recommends {
		fromID, _ := c.r.Resolve(rule.When)
		from := c.idx.skills[fromID]
		for _, s := range rule.Suggest {
			toID, _ := c.r.Resolve(s.Skill)
			strength := s.EffectiveStrength()
			key := recKey{from: fromID, to: toID, strength: strength, reason: rule.Reason}
			if toID == fromID || seen[key] {
				continue
			}
			seen[key] = true
			from.Recommends = append(from.Recommends, Recommendation{Skill: toID, Strength: strength, Reason: rule.Reason})
			to := c.idx.skills[toID]
			to.RecommendedBy = append(to.RecommendedBy, Recommendation{Skill: fromID, Strength: strength, Reason: rule.Reason})
		}
	}
}

func (c *compiler) addAlternatives() {
	for _, group := range c.m.Alternatives {
		ids := c.r.ResolveAll(group.Skills)
		for _, id := range ids {
			s := c.idx.skills[id]
			for _, other := range ids {
				if other != id && !contains(s.Alternatives, other) {
					s.Alternatives = append(s.Alternatives, other)
				}
			}
		}
	}
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

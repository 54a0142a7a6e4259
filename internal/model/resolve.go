package model

import "fmt"

// maxAliasDepth bounds alias-to-alias chains so a cyclic alias table cannot
// loop forever.
const maxAliasDepth = 8

// Resolver canonicalizes skill references. A reference may be a skill ID, a
// fully-qualified skill path, or an alias for either.
type Resolver struct {
	ids     map[string]bool
	paths   map[string]string // path → skill ID
	aliases map[string]string // alias → target reference
}

// NewResolver indexes the skills, paths, and aliases of m.
func NewResolver(m *Model) *Resolver {
	r := &Resolver{
		ids:     make(map[string]bool, len(m.Skills)),
		paths:   make(map[string]string),
		aliases: make(map[string]string, len(m.Aliases)),
	}
	for _, s := range m.Skills {
		if s.ID == "" {
			continue
		}
		r.ids[s.ID] = true
		if s.Path != "" {
			r.paths[s.Path] = s.ID
		}
	}
	for alias, target := range m.Aliases {
		r.aliases[alias] = target
	}
	return r
}

// Resolve returns the canonical skill ID for ref, or false if ref does not
// name a skill. Skill IDs take precedence over paths, and paths over aliases.
func (r *Resolver) Resolve(ref string) (string, bool) {
	id, err := r.resolve(ref, 0)
	return id, err == nil
}

func (r *Resolver) resolve(ref string, depth int) (string, error) {
	if r.ids[ref] {
		return ref, nil
	}
	if id, ok := r.paths[ref]; ok {
		return id, nil
	}
	target, ok := r.aliases[ref]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSkill, ref)
	}
	if depth >= maxAliasDepth {
		return "", fmt.Errorf("%w: alias chain from %q is too deep or cyclic", ErrAlias, ref)
	}
	return r.resolve(target, depth+1)
}

// Aliases returns a copy of the table mapping every alias and path to the
// skill ID it resolves to. Entries that do not resolve are omitted.
func (r *Resolver) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases)+len(r.paths))
	for path, id := range r.paths {
		out[path] = id
	}
	for alias := range r.aliases {
		if id, err := r.resolve(alias, 0); err == nil {
			out[alias] = id
		}
	}
	return out
}

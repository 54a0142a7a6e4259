package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/skillmesh/internal/model"
)

// cacheVersion is bumped whenever the on-disk layout changes.
const cacheVersion = 2

// ErrStaleCache is returned by LoadCache when the cache was compiled from a
// different source or by an incompatible version.
var ErrStaleCache = errors.New("index cache is stale")

// cacheFile is the TOML layout of a cached index.
type cacheFile struct {
	Version     int               `toml:"version"`
	Fingerprint string            `toml:"fingerprint"`
	Aliases     map[string]string `toml:"aliases"`
	Categories  []Category        `toml:"categories"`
	Skills      []ResolvedSkill   `toml:"skills"`
	Warnings    []cachedIssue     `toml:"warnings,omitempty"`
}

// cachedIssue is a warning flattened for TOML. The wrapped error is kept as
// its message only.
type cachedIssue struct {
	Category model.IssueCategory `toml:"category"`
	Subject  string              `toml:"subject,omitempty"`
	Field    string              `toml:"field,omitempty"`
	Message  string              `toml:"message"`
}

// SaveCache writes idx to path as TOML, creating parent directories.
func SaveCache(path string, idx *Index) error {
	cf := cacheFile{
		Version:     cacheVersion,
		Fingerprint: idx.fingerprint,
		Aliases:     idx.aliases,
	}
	for _, id := range idx.categoryOrder {
		cf.Categories = append(cf.Categories, *idx.categories[id])
	}
	for _, id := range idx.order {
		cf.Skills = append(cf.Skills, *idx.skills[id])
	}
	for _, w := range idx.warnings {
		cf.Warnings = append(cf.Warnings, cachedIssue{Category: w.Category, Subject: w.Subject, Field: w.Field, Message: w.Err.Error()})
	}

	data, err := toml.Marshal(cf)
	if err != nil {
		return fmt.Errorf("marshaling index cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing index cache: %w", err)
	}
	return nil
}

// LoadCache reads a cached index from path. If fingerprint is non-empty and
// does not match the cached one, ErrStaleCache is returned.
func LoadCache(path, fingerprint string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index cache: %w", err)
	}
	var cf cacheFile
	if err := toml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing index cache %s: %w", path, err)
	}
	if cf.Version != cacheVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrStaleCache, cf.Version, cacheVersion)
	}
	if fingerprint != "" && cf.Fingerprint != fingerprint {
		return nil, fmt.Errorf("%w: source fingerprint changed", ErrStaleCache)
	}

	idx := newIndex()
	idx.fingerprint = cf.Fingerprint
	for alias, id := range cf.Aliases {
		idx.aliases[alias] = id
	}
	for i := range cf.Categories {
		c := cf.Categories[i]
		idx.categories[c.ID] = &c
		idx.categoryOrder = append(idx.categoryOrder, c.ID)
	}
	for i := range cf.Skills {
		s := cf.Skills[i]
		if s.ID == "" {
			return nil, fmt.Errorf("parsing index cache %s: skill %d has no id", path, i)
		}
		idx.skills[s.ID] = &s
		idx.order = append(idx.order, s.ID)
	}
	for _, w := range cf.Warnings {
		idx.warnings = append(idx.warnings, model.Issue{
			Severity: model.SeverityWarning,
			Category: w.Category,
			Subject:  w.Subject,
			Field:    w.Field,
			Err:      errors.New(w.Message),
		})
	}
	return idx, nil
}

// CachePath returns the cache file for a model fingerprint inside dir.
func CachePath(dir, fingerprint string) string {
	name := fingerprint
	if len(name) > 16 {
		name = name[:16]
	}
	return filepath.Join(dir, "index-"+name+".toml")
}

package engine

import (
	"fmt"
	"sort"

	"github.com/papapumpkin/skillmesh/internal/model"
)

// Suggestion is an unselected skill recommended by the current selection.
type Suggestion struct {
	SkillID        string
	Name           string
	Strength       model.Strength // Strongest contributing strength
	Reasons        []Reason
	Disabled       bool
	DisabledReason string
}

// Suggestions returns every skill recommended by a selected skill that is not
// itself selected. Strong suggestions come first; within a strength the order
// follows the selection and then each skill's declared recommendations.
func (e *Engine) Suggestions(sel Selection) []Suggestion {
	var out []Suggestion
	pos := make(map[string]int)
	for _, from := range sel.IDs() {
		s, ok := e.idx.Skill(from)
		if !ok {
			continue
		}
		for _, rec := range s.Recommends {
			if sel.Has(rec.Skill) {
				continue
			}
			reason := Reason{From: from, Strength: rec.Strength, Text: rec.Reason}
			if i, ok := pos[rec.Skill]; ok {
				out[i].Reasons = append(out[i].Reasons, reason)
				if rec.Strength == model.StrengthStrong {
					out[i].Strength = model.StrengthStrong
				}
				continue
			}
			pos[rec.Skill] = len(out)
			out = append(out, Suggestion{
				SkillID:  rec.Skill,
				Name:     e.idx.Name(rec.Skill),
				Strength: rec.Strength,
				Reasons:  []Reason{reason},
			})
		}
	}
	for i := range out {
		out[i].Disabled, out[i].DisabledReason = e.IsDisabled(sel, out[i].SkillID)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Strength == model.StrengthStrong && out[j].Strength != model.StrengthStrong
	})
	return out
}

// ViolationKind classifies a problem with a complete selection.
type ViolationKind string

const (
	// ViolationUnknown marks a selected ID that names no skill.
	ViolationUnknown ViolationKind = "unknown"
	// ViolationConflict marks two selected skills that conflict.
	ViolationConflict ViolationKind = "conflict"
	// ViolationRequirement marks a selected skill with an unmet requirement.
	ViolationRequirement ViolationKind = "requirement"
)

// Violation is one reason a selection is not a valid final configuration.
type Violation struct {
	Kind   ViolationKind
	Skill  string
	Other  string // Conflicting skill; empty for other kinds
	Reason string
}

// Error implements the error interface so violations can be reported
// alongside other failures.
func (v Violation) Error() string {
	if v.Other != "" {
		return fmt.Sprintf("%s: %s conflicts with %s: %s", v.Kind, v.Skill, v.Other, v.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", v.Kind, v.Skill, v.Reason)
}

// Check verifies a complete selection. Each conflicting pair is reported
// once, attributed to the skill selected first.
func (e *Engine) Check(sel Selection) []Violation {
	var out []Violation
	ids := sel.IDs()
	order := make(map[string]int, len(ids))
	for i, id := range ids {
		order[id] = i
	}

	for i, id := range ids {
		s, ok := e.idx.Skill(id)
		if !ok {
			out = append(out, Violation{Kind: ViolationUnknown, Skill: id, Reason: fmt.Sprintf("unknown skill %q", id)})
			continue
		}
		for _, c := range s.ConflictsWith {
			if j, ok := order[c.Skill]; ok && j > i {
				out = append(out, Violation{Kind: ViolationConflict, Skill: id, Other: c.Skill, Reason: c.Reason})
			}
		}
		for _, req := range s.Requires {
			if reason, unmet := e.unmet(sel, req); unmet {
				out = append(out, Violation{Kind: ViolationRequirement, Skill: id, Reason: reason})
			}
		}
	}
	return out
}

// Package wizard walks a user through choosing skills one category at a time.
// After every choice the engine is re-queried, so options blocked by earlier
// picks are withheld and recommendations follow the current selection. The
// wizard persists nothing; the caller receives the final selection.
package wizard

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/papapumpkin/skillmesh/internal/engine"
	"github.com/papapumpkin/skillmesh/internal/index"
	"github.com/papapumpkin/skillmesh/internal/logging"
	"github.com/papapumpkin/skillmesh/internal/telemetry"
)

// ErrAborted is returned when the user declines the final confirmation.
var ErrAborted = errors.New("wizard aborted")

// otherCategory labels the step offering skills that belong to no category.
const otherCategory = "other"

// Step is one prompt: a category's members annotated for the current
// selection.
type Step struct {
	Category index.Category
	Entries  []engine.CategoryEntry
}

// Selectable returns the entries that may still be chosen.
func (s Step) Selectable() []engine.CategoryEntry {
	var out []engine.CategoryEntry
	for _, e := range s.Entries {
		if !e.Disabled && !e.Selected {
			out = append(out, e)
		}
	}
	return out
}

// Blocked returns the entries withheld because of earlier choices.
func (s Step) Blocked() []engine.CategoryEntry {
	var out []engine.CategoryEntry
	for _, e := range s.Entries {
		if e.Disabled && !e.Selected {
			out = append(out, e)
		}
	}
	return out
}

// Prompter asks the user to pick from a step and to confirm the result.
type Prompter interface {
	// Choose returns the skill IDs picked from step. An exclusive category
	// yields at most one ID.
	Choose(step Step) ([]string, error)
	// Confirm shows a summary and asks whether to accept it.
	Confirm(title, summary string) (bool, error)
}

// Wizard drives one interactive session.
type Wizard struct {
	eng    *engine.Engine
	prompt Prompter
	events *telemetry.Emitter
	log    *slog.Logger
	sel    *engine.Set
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithEmitter records each choice to the telemetry stream.
func WithEmitter(e *telemetry.Emitter) Option {
	return func(w *Wizard) { w.events = e }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Wizard) { w.log = l }
}

// WithInitial seeds the selection, for example from --select.
func WithInitial(ids ...string) Option {
	return func(w *Wizard) {
		for _, id := range ids {
			w.sel.Add(id)
		}
	}
}

// New returns a Wizard over eng that prompts through p.
func New(eng *engine.Engine, p Prompter, opts ...Option) *Wizard {
	w := &Wizard{
		eng:    eng,
		prompt: p,
		log:    logging.Discard(),
		sel:    engine.NewSet(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Selection returns the current selection.
func (w *Wizard) Selection() *engine.Set {
	return w.sel
}

// Run prompts for every category, then for skills outside any category, then
// for outstanding suggestions, and finally asks for confirmation. Categories
// holding required skills are asked before the categories that need them;
// otherwise authored order holds. It returns the accepted selection.
func (w *Wizard) Run() (*engine.Set, error) {
	_ = w.events.Record(telemetry.KindSessionStart, "", map[string]int{"skills": w.eng.Index().Len()})

	for _, id := range w.eng.CategoryOrder() {
		cat, _ := w.eng.Index().Category(id)
		if err := w.ask(Step{Category: cat, Entries: w.eng.SkillsInCategory(w.sel, id)}); err != nil {
			return nil, err
		}
	}
	if step, ok := w.uncategorized(); ok {
		if err := w.ask(step); err != nil {
			return nil, err
		}
	}
	if step, ok := w.suggested(); ok {
		if err := w.ask(step); err != nil {
			return nil, err
		}
	}

	ok, err := w.prompt.Confirm("Use this selection?", w.Summary())
	if err != nil {
		return nil, fmt.Errorf("prompt cancelled: %w", err)
	}
	_ = w.events.Record(telemetry.KindSessionDone, "", map[string]any{"accepted": ok, "selected": w.sel.IDs()})
	if !ok {
		return nil, ErrAborted
	}
	return w.sel, nil
}

// ask prompts for one step and applies the answer. Each pick is re-checked
// against the selection as it grows, since a multi-select can return two
// skills that conflict with each other.
func (w *Wizard) ask(step Step) error {
	if len(step.Selectable()) == 0 {
		w.log.Debug("skipping step", "category", step.Category.ID)
		return nil
	}
	picked, err := w.prompt.Choose(step)
	if err != nil {
		return fmt.Errorf("prompt cancelled: %w", err)
	}
	for _, ref := range picked {
		w.Pick(ref)
	}
	return nil
}

// Pick adds ref to the selection if the engine allows it and reports the
// reason when it does not.
func (w *Wizard) Pick(ref string) (bool, string) {
	id, ok := w.eng.Resolve(ref)
	if !ok {
		return false, fmt.Sprintf("unknown skill %q", ref)
	}
	if w.sel.Has(id) {
		return true, ""
	}
	if off, why := w.eng.IsDisabled(w.sel, id); off {
		w.log.Debug("pick blocked", "skill", id, "reason", why)
		_ = w.events.Record(telemetry.KindSkillBlocked, id, map[string]string{"reason": why})
		return false, why
	}
	w.sel.Add(id)
	_ = w.events.Record(telemetry.KindSkillSelected, id, nil)
	return true, ""
}

// Unpick removes ref from the selection.
func (w *Wizard) Unpick(ref string) bool {
	id, ok := w.eng.Resolve(ref)
	if !ok || !w.sel.Remove(id) {
		return false
	}
	_ = w.events.Record(telemetry.KindSkillRemoved, id, nil)
	return true
}

// uncategorized builds a step for skills that no category lists.
func (w *Wizard) uncategorized() (Step, bool) {
	idx := w.eng.Index()
	inCategory := make(map[string]bool)
	for _, cid := range idx.CategoryIDs() {
		cat, _ := idx.Category(cid)
		for _, id := range cat.Members {
			inCategory[id] = true
		}
	}
	step := Step{Category: index.Category{ID: otherCategory, Name: "other skills"}}
	for _, id := range idx.SkillIDs() {
		if !inCategory[id] {
			step.Entries = append(step.Entries, w.entry(id))
		}
	}
	return step, len(step.Entries) > 0
}

// suggested builds a step from outstanding recommendations.
func (w *Wizard) suggested() (Step, bool) {
	step := Step{Category: index.Category{ID: "suggested", Name: "recommended for your selection"}}
	for _, s := range w.eng.Suggestions(w.sel) {
		step.Entries = append(step.Entries, w.entry(s.SkillID))
	}
	return step, len(step.Entries) > 0
}

func (w *Wizard) entry(id string) engine.CategoryEntry {
	off, why := w.eng.IsDisabled(w.sel, id)
	rec, reasons := w.eng.IsRecommended(w.sel, id)
	return engine.CategoryEntry{
		SkillID:        id,
		Name:           w.eng.Index().Name(id),
		Selected:       w.sel.Has(id),
		Disabled:       off,
		DisabledReason: why,
		Recommended:    rec,
		Reasons:        reasons,
	}
}

// Summary describes the current selection and any problems with it.
func (w *Wizard) Summary() string {
	idx := w.eng.Index()
	if w.sel.Len() == 0 {
		return "Nothing selected."
	}
	var b strings.Builder
	for _, id := range w.sel.IDs() {
		fmt.Fprintf(&b, "%s %s\n", styleSelected.Render(iconSelected), idx.Name(id))
	}
	for _, v := range w.eng.Check(w.sel) {
		fmt.Fprintf(&b, "%s %s\n", styleBlocked.Render(iconBlocked), v.Reason)
	}
	return b.String()
}

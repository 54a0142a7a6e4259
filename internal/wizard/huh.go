package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/papapumpkin/skillmesh/internal/engine"
)

// HuhPrompter renders steps as huh forms on the terminal.
type HuhPrompter struct {
	Accessible bool // Plain prompts for screen readers and dumb terminals
}

// Choose shows a select for exclusive categories and a multi-select
// otherwise. Blocked members are listed in a note with their reasons.
func (h HuhPrompter) Choose(step Step) ([]string, error) {
	title := styleTitle.Render(step.Category.DisplayName())
	options := make([]huh.Option[string], 0, len(step.Entries))
	for _, e := range step.Selectable() {
		options = append(options, huh.NewOption(OptionLabel(e), e.SkillID))
	}

	var fields []huh.Field
	if note := BlockedNote(step); note != "" {
		fields = append(fields, huh.NewNote().Title("Unavailable").Description(note))
	}

	var picked []string
	var single string
	if step.Category.Exclusive {
		options = append(options, huh.NewOption(styleReason.Render("none"), ""))
		fields = append(fields, huh.NewSelect[string]().
			Title(title).
			Description("choose one").
			Options(options...).
			Value(&single))
	} else {
		fields = append(fields, huh.NewMultiSelect[string]().
			Title(title).
			Options(options...).
			Value(&picked))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithAccessible(h.Accessible)
	if err := form.Run(); err != nil {
		return nil, err
	}
	if step.Category.Exclusive {
		if single == "" {
			return nil, nil
		}
		return []string{single}, nil
	}
	return picked, nil
}

// Confirm asks the user to accept the summary.
func (h HuhPrompter) Confirm(title, summary string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Selection").
				Description(summary),

			huh.NewConfirm().
				Title(title).
				Value(&confirmed),
		),
	).WithAccessible(h.Accessible)

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// OptionLabel formats an entry for a select list, marking recommendations.
func OptionLabel(e engine.CategoryEntry) string {
	if !e.Recommended {
		return e.Name
	}
	from := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		from[i] = r.From
	}
	return fmt.Sprintf("%s %s", e.Name,
		styleRecommended.Render(iconRecommended+" "+strings.Join(from, ", ")))
}

// BlockedNote lists blocked entries with their reasons, or "" if none.
func BlockedNote(step Step) string {
	blocked := step.Blocked()
	if len(blocked) == 0 {
		return ""
	}
	lines := make([]string, len(blocked))
	for i, e := range blocked {
		lines[i] = fmt.Sprintf("%s %s %s", styleBlocked.Render(iconBlocked), e.Name, styleReason.Render(e.DisabledReason))
	}
	return strings.Join(lines, "\n")
}

var _ Prompter = HuhPrompter{}

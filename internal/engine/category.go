package engine

// CategoryEntry is one member of a category annotated for the current
// selection.
type CategoryEntry struct {
	SkillID        string
	Name           string
	Selected       bool
	Disabled       bool
	DisabledReason string
	Recommended    bool
	Reasons        []Reason
}

// SkillsInCategory annotates each member of the category in member order. It
// touches only that category's members. An unknown category yields nil.
func (e *Engine) SkillsInCategory(sel Selection, categoryID string) []CategoryEntry {
	cat, ok := e.idx.Category(categoryID)
	if !ok {
		return nil
	}
	entries := make([]CategoryEntry, 0, len(cat.Members))
	for _, id := range cat.Members {
		disabled, why := e.IsDisabled(sel, id)
		recommended, reasons := e.IsRecommended(sel, id)
		entries = append(entries, CategoryEntry{
			SkillID:        id,
			Name:           e.idx.Name(id),
			Selected:       sel.Has(id),
			Disabled:       disabled,
			DisabledReason: why,
			Recommended:    recommended,
			Reasons:        reasons,
		})
	}
	return entries
}

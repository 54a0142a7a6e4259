// Package ui renders skillmesh results for humans. All output goes to stderr
// so stdout stays free for machine-readable output.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/papapumpkin/skillmesh/internal/ansi"
	"github.com/papapumpkin/skillmesh/internal/engine"
	"github.com/papapumpkin/skillmesh/internal/index"
	"github.com/papapumpkin/skillmesh/internal/model"
)

// Printer writes styled output.
type Printer struct {
	w     io.Writer
	color bool
}

// Option configures a Printer.
type Option func(*Printer)

// WithWriter directs output to w instead of os.Stderr.
func WithWriter(w io.Writer) Option {
	return func(p *Printer) { p.w = w }
}

// WithColor enables or disables ANSI styling.
func WithColor(enabled bool) Option {
	return func(p *Printer) { p.color = enabled }
}

// New returns a Printer writing colored output to os.Stderr.
func New(opts ...Option) *Printer {
	p := &Printer{color: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Printer) out() io.Writer {
	if p.w != nil {
		return p.w
	}
	return os.Stderr
}

func (p *Printer) paint(s string, codes ...string) string {
	return ansi.Paint(p.color, s, codes...)
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.out(), format, args...)
}

func (p *Printer) Error(msg string) {
	p.printf("%s%s\n", p.paint("error: ", ansi.Red, ansi.Bold), msg)
}

func (p *Printer) Warn(msg string) {
	p.printf("%s%s\n", p.paint("warning: ", ansi.Yellow, ansi.Bold), msg)
}

func (p *Printer) Info(msg string) {
	p.printf("%s\n", p.paint(msg, ansi.Dim))
}

func (p *Printer) Success(msg string) {
	p.printf("%s\n", p.paint("✓ "+msg, ansi.Green, ansi.Bold))
}

// --- Model validation ---

// ValidateResult summarizes a validation run: a single success line, or every
// issue grouped errors first.
func (p *Printer) ValidateResult(file string, skills int, issues []model.Issue) {
	nErr := model.CountErrors(issues)
	nWarn := len(issues) - nErr
	switch {
	case len(issues) == 0:
		p.printf("%s — %d skill(s), no issues\n", p.paint(fmt.Sprintf("✓ %s", file), ansi.Green, ansi.Bold), skills)
		return
	case nErr == 0:
		p.printf("%s — %d skill(s), %d warning(s)\n", p.paint(fmt.Sprintf("✓ %s", file), ansi.Green, ansi.Bold), skills, nWarn)
	default:
		p.printf("%s — %d error(s), %d warning(s)\n", p.paint(fmt.Sprintf("✗ %s", file), ansi.Red, ansi.Bold), nErr, nWarn)
	}
	p.Issues(issues)
}

// Issues lists every issue, errors before warnings, keeping input order
// within each severity.
func (p *Printer) Issues(issues []model.Issue) {
	for _, sev := range []model.Severity{model.SeverityError, model.SeverityWarning} {
		for _, i := range issues {
			if i.Severity != sev {
				continue
			}
			bullet := p.paint("• ", ansi.Red)
			if sev == model.SeverityWarning {
				bullet = p.paint("• ", ansi.Yellow)
			}
			p.printf("  %s%s %s\n", bullet, i.Error(), p.paint("["+string(i.Category)+"]", ansi.Dim))
		}
	}
}

// ModelReloaded reports a watch-triggered revalidation.
func (p *Printer) ModelReloaded(file string) {
	p.printf("\n%s\n", p.paint("↻ "+file+" changed", ansi.Magenta, ansi.Bold))
}

// Compiled reports a successful compile and, if non-empty, the cache path.
func (p *Printer) Compiled(file string, idx *index.Index, cachePath string) {
	p.printf("%s — %d skill(s), %d category(ies) %s\n",
		p.paint("✓ compiled "+file, ansi.Green, ansi.Bold),
		idx.Len(), len(idx.CategoryIDs()),
		p.paint("("+shortFingerprint(idx.Fingerprint())+")", ansi.Dim))
	if cachePath != "" {
		p.printf("  %s %s\n", p.paint("cache:", ansi.Dim), cachePath)
	}
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}

// --- Queries ---

// Describe prints everything known about one skill. needs and neededBy are
// its transitive requirements and dependents.
func (p *Printer) Describe(s index.ResolvedSkill, idx *index.Index, needs, neededBy []string) {
	p.printf("\n%s %s\n", p.paint(s.DisplayName(), ansi.Bold, ansi.Cyan), p.paint("("+s.ID+")", ansi.Dim))
	if s.Category != "" {
		label := s.Category
		if c, ok := idx.Category(s.Category); ok {
			label = c.DisplayName()
			if c.Exclusive {
				label += " " + p.paint("[exclusive]", ansi.Yellow)
			}
		}
		p.printf("  %-16s %s\n", "category:", label)
	}
	if s.Path != "" {
		p.printf("  %-16s %s\n", "path:", s.Path)
	}
	if aliases := idx.AliasesOf(s.ID); len(aliases) > 0 {
		p.printf("  %-16s %s\n", "aliases:", strings.Join(aliases, ", "))
	}

	p.section("conflicts with")
	for _, c := range s.ConflictsWith {
		p.printf("    %s %-20s %s %s\n", p.paint("×", ansi.Red), idx.Name(c.Skill), c.Reason, p.paint("["+string(c.Origin)+"]", ansi.Dim))
	}
	p.section("requires")
	for _, r := range s.Requires {
		sep := " and "
		if r.Mode == model.RequireAnyOf {
			sep = " or "
		}
		line := names(idx, r.Skills, sep)
		if r.Reason != "" {
			line += " " + p.paint("— "+r.Reason, ansi.Dim)
		}
		p.printf("    %s %s %s\n", p.paint("→", ansi.Blue), p.paint(string(r.Mode), ansi.Dim), line)
	}
	p.section("required by")
	for _, id := range s.RequiredBy {
		p.printf("    %s %s\n", p.paint("←", ansi.Blue), idx.Name(id))
	}
	p.section("all requirements")
	if len(needs) > 0 {
		p.printf("    %s\n", names(idx, needs, ", "))
	}
	p.section("all dependents")
	if len(neededBy) > 0 {
		p.printf("    %s\n", names(idx, neededBy, ", "))
	}
	p.section("recommends")
	for _, r := range s.Recommends {
		p.printf("    %s %-20s %s %s\n", p.paint("★", ansi.Green), idx.Name(r.Skill), p.paint(string(r.Strength), ansi.Dim), r.Reason)
	}
	p.section("recommended by")
	for _, r := range s.RecommendedBy {
		p.printf("    %s %-20s %s %s\n", p.paint("★", ansi.Green), idx.Name(r.Skill), p.paint(string(r.Strength), ansi.Dim), r.Reason)
	}
	p.section("alternatives")
	if len(s.Alternatives) > 0 {
		p.printf("    %s\n", names(idx, s.Alternatives, ", "))
	}
	p.printf("\n")
}

func (p *Printer) section(title string) {
	p.printf("  %s\n", p.paint(title+":", ansi.Dim))
}

func names(idx *index.Index, ids []string, sep string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.Name(id)
	}
	return strings.Join(out, sep)
}

// SkillStatus prints the IsDisabled and IsRecommended answers for one skill.
func (p *Printer) SkillStatus(name string, disabled bool, why string, recommended bool, reasons []engine.Reason) {
	if disabled {
		p.printf("%s %s\n", p.paint("✗ "+name+" is disabled", ansi.Red, ansi.Bold), p.paint("— "+why, ansi.Dim))
	} else {
		p.printf("%s\n", p.paint("✓ "+name+" is selectable", ansi.Green, ansi.Bold))
	}
	if recommended {
		p.printf("%s\n", p.paint("★ recommended", ansi.Green))
		for _, r := range reasons {
			p.printf("    %s\n", r.String())
		}
	}
}

// CategoryTable prints one row per category member.
func (p *Printer) CategoryTable(cat index.Category, entries []engine.CategoryEntry) {
	title := cat.DisplayName()
	if cat.Exclusive {
		title += " " + p.paint("[choose one]", ansi.Yellow)
	}
	p.printf("\n%s\n", p.paint(title, ansi.Bold, ansi.Cyan))
	if len(entries) == 0 {
		p.printf("  %s\n", p.paint("(no members)", ansi.Dim))
		return
	}
	for _, e := range entries {
		p.printf("  %s\n", p.CategoryRow(e))
	}
}

// CategoryRow formats one category entry as a single line.
func (p *Printer) CategoryRow(e engine.CategoryEntry) string {
	var mark string
	switch {
	case e.Selected:
		mark = p.paint("●", ansi.Green)
	case e.Disabled:
		mark = p.paint("✗", ansi.Red)
	default:
		mark = p.paint("○", ansi.Dim)
	}
	row := fmt.Sprintf("%s %-20s", mark, e.Name)
	if e.Recommended {
		row += " " + p.paint("★", ansi.Green)
	}
	if e.Disabled {
		row += " " + p.paint(e.DisabledReason, ansi.Dim)
	}
	return row
}

// Suggestions lists recommended skills, strongest first.
func (p *Printer) Suggestions(list []engine.Suggestion) {
	if len(list) == 0 {
		p.Info("no suggestions")
		return
	}
	p.printf("%s\n", p.paint("suggestions:", ansi.Bold))
	for _, s := range list {
		from := make([]string, len(s.Reasons))
		for i, r := range s.Reasons {
			from[i] = r.From
		}
		line := fmt.Sprintf("  %s %-20s %s %s", p.paint("★", ansi.Green), s.Name,
			p.paint(string(s.Strength), ansi.Dim), "because of "+strings.Join(from, ", "))
		if s.Disabled {
			line += " " + p.paint("(blocked: "+s.DisabledReason+")", ansi.Red)
		}
		p.printf("%s\n", line)
	}
}

// Violations reports the result of checking a full selection.
func (p *Printer) Violations(list []engine.Violation) {
	if len(list) == 0 {
		p.Success("selection is consistent")
		return
	}
	p.printf("%s\n", p.paint(fmt.Sprintf("✗ %d problem(s) with the selection", len(list)), ansi.Red, ansi.Bold))
	for _, v := range list {
		p.printf("  %s%s\n", p.paint("• ", ansi.Red), v.Error())
	}
}

// Selection prints the final chosen skills.
func (p *Printer) Selection(idx *index.Index, ids []string) {
	if len(ids) == 0 {
		p.Info("nothing selected")
		return
	}
	p.printf("%s\n", p.paint("selected:", ansi.Bold))
	for _, id := range ids {
		p.printf("  %s %s %s\n", p.paint("●", ansi.Green), idx.Name(id), p.paint("("+id+")", ansi.Dim))
	}
}

package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for model loading and validation.
var (
	// ErrUnknownSkill indicates a reference to a skill ID that does not exist.
	ErrUnknownSkill = errors.New("unknown skill")
	// ErrUnknownCategory indicates a reference to a category ID that does not exist.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrRequirementCycle indicates a circular chain of requirement rules.
	ErrRequirementCycle = errors.New("requirement cycle")
	// ErrConflictTooSmall indicates a conflict rule with fewer than two distinct members.
	ErrConflictTooSmall = errors.New("conflict rule needs at least two skills")
	// ErrContradiction indicates a skill requires a skill it conflicts with.
	ErrContradiction = errors.New("contradictory rules")
	// ErrDuplicateID indicates two skills or categories share an ID.
	ErrDuplicateID = errors.New("duplicate ID")
	// ErrMissingField indicates a required field is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrInvalidValue indicates an unrecognized enum value such as a mode or strength.
	ErrInvalidValue = errors.New("invalid value")
	// ErrAlias indicates an alias that shadows a skill or does not resolve.
	ErrAlias = errors.New("invalid alias")
	// ErrUnsupportedFormat indicates a model file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported model format")
)

// Severity distinguishes issues that block compilation from advisory ones.
type Severity string

const (
	// SeverityError blocks compilation.
	SeverityError Severity = "error"
	// SeverityWarning is reported but blocks compilation only in strict mode.
	SeverityWarning Severity = "warning"
)

// IssueCategory classifies a validation issue for programmatic handling.
type IssueCategory string

const (
	// IssueUnknownRef indicates a reference to a skill or category that does not exist.
	IssueUnknownRef IssueCategory = "unknown_ref"
	// IssueCycle indicates a cycle in the requirement graph.
	IssueCycle IssueCategory = "cycle"
	// IssueConflictSize indicates a conflict rule with fewer than two members.
	IssueConflictSize IssueCategory = "conflict_size"
	// IssueContradiction indicates a requirement on a conflicting skill.
	IssueContradiction IssueCategory = "contradiction"
	// IssueDuplicateID indicates a repeated skill or category ID.
	IssueDuplicateID IssueCategory = "duplicate_id"
	// IssueMissingField indicates a required field is empty.
	IssueMissingField IssueCategory = "missing_field"
	// IssueInvalidValue indicates an unrecognized enum value.
	IssueInvalidValue IssueCategory = "invalid_value"
	// IssueAlias indicates a problem with the alias table.
	IssueAlias IssueCategory = "alias"
)

// Issue records a validation problem with its location in the model.
type Issue struct {
	Severity Severity
	Category IssueCategory
	// Subject names the rule or entity the issue is about, e.g. "skill redux"
	// or "conflicts[2]".
	Subject string
	Field   string
	Err     error
}

// Error returns a human-readable string including severity and subject.
func (i Issue) Error() string {
	msg := string(i.Severity) + ": "
	if i.Subject != "" {
		msg += i.Subject + ": "
	}
	return msg + i.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (i Issue) Unwrap() error {
	return i.Err
}

// IsError reports whether the issue blocks compilation.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.IsError() {
			return true
		}
	}
	return false
}

// CountErrors returns the number of error-severity issues.
func CountErrors(issues []Issue) int {
	n := 0
	for _, i := range issues {
		if i.IsError() {
			n++
		}
	}
	return n
}

// LoadError reports a malformed model document with file and line context.
// Line and Column are 1-based; zero means the decoder gave no position.
type LoadError struct {
	File   string
	Line   int
	Column int
	// Detail is the decoder's human-readable rendering, which may include the
	// offending source lines.
	Detail string
	Err    error
}

// Error returns "file:line:col: message".
func (e *LoadError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column)
	}
	return loc + ": " + e.Err.Error()
}

// Unwrap returns the decoder error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

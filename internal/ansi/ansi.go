// Package ansi provides ANSI escape code constants and helpers for terminal output.
// All colored/styled terminal output should reference these constants to avoid duplication.
package ansi

import "regexp"

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Blue    = "\033[34m"
	Yellow  = "\033[33m"
	Green   = "\033[32m"
	Red     = "\033[31m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
)

var sgr = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Paint wraps s in the given codes followed by Reset. When enabled is false s
// is returned unchanged.
func Paint(enabled bool, s string, codes ...string) string {
	if !enabled || len(codes) == 0 {
		return s
	}
	var prefix string
	for _, c := range codes {
		prefix += c
	}
	return prefix + s + Reset
}

// Strip removes SGR sequences from s.
func Strip(s string) string {
	return sgr.ReplaceAllString(s, "")
}

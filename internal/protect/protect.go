// Package protect classifies file paths against the fixed list of sensitive
// and generated files that automated edits must not touch.
package protect

import (
	"fmt"
	"path"
	"strings"
)

// BlockReason is the second line printed when an edit is blocked.
const BlockReason = "This file is protected to prevent accidental exposure of secrets or corruption of lock files."

// PatternSet is an ordered, immutable list of protected patterns.
// Patterns are exact substrings, directory segments (trailing "/") or suffixes.
type PatternSet struct {
	patterns []string
}

// DefaultPatterns returns a copy of the built-in protected patterns in match order.
func DefaultPatterns() []string {
	return []string{
		".env",
		".env.local",
		".env.production",
		".env.development",
		"package-lock.json",
		"yarn.lock",
		"pnpm-lock.yaml",
		".git/",
		"node_modules/",
		"credentials",
		"secrets",
	}
}

// Default is the PatternSet every hook uses.
var Default = NewPatternSet(DefaultPatterns()...)

// NewPatternSet lower-cases and stores patterns in the given order.
func NewPatternSet(patterns ...string) *PatternSet {
	ps := &PatternSet{patterns: make([]string, 0, len(patterns))}
	for _, p := range patterns {
		ps.patterns = append(ps.patterns, strings.ToLower(p))
	}
	return ps
}

// Patterns returns a copy of the lower-cased patterns.
func (ps *PatternSet) Patterns() []string {
	out := make([]string, len(ps.patterns))
	copy(out, ps.patterns)
	return out
}

// dottedCapitalI lower-cases to "i" under strings.ToLower. Its full lower-case
// form keeps the combining dot, so it can never spell an ASCII pattern.
var dottedCapitalI = strings.NewReplacer("\u0130", "i\u0307")

// Normalize lexically cleans a path and lower-cases it.
func Normalize(filePath string) string {
	return strings.ToLower(dottedCapitalI.Replace(path.Clean(filePath)))
}

// Match reports the first pattern that protects filePath.
// An empty path never matches.
func (ps *PatternSet) Match(filePath string) (string, bool) {
	if filePath == "" {
		return "", false
	}
	normalized := Normalize(filePath)
	parts := strings.Split(strings.ReplaceAll(normalized, `\`, "/"), "/")

	for _, pattern := range ps.patterns {
		if strings.Contains(normalized, pattern) {
			return pattern, true
		}
		// Always implied by the substring check, kept so each rule stands alone.
		if strings.HasSuffix(normalized, pattern) {
			return pattern, true
		}
		segment := strings.TrimRight(pattern, "/")
		for _, part := range parts {
			if part == segment {
				return pattern, true
			}
		}
	}
	return "", false
}

// IsProtected reports whether filePath matches any pattern.
func (ps *PatternSet) IsProtected(filePath string) bool {
	_, ok := ps.Match(filePath)
	return ok
}

// IsProtected checks filePath against the default pattern set.
func IsProtected(filePath string) bool {
	return Default.IsProtected(filePath)
}

// BlockMessage returns the two lines printed when filePath is blocked.
func BlockMessage(filePath string) []string {
	return []string{
		fmt.Sprintf("BLOCKED: Cannot edit protected file: %s", filePath),
		BlockReason,
	}
}

package filedupes

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// PatternSet holds compiled regex patterns matched against paths relative
// to the scan root. A match excludes the path (and, for directories, the
// whole subtree) from the scan.
type PatternSet struct {
	patterns []*regexp.Regexp
}

// NewPatternSet compiles the given expressions. An invalid pattern is a
// startup error; nothing is scanned with a half-built set.
func NewPatternSet(exprs []string) (*PatternSet, error) {
	ps := &PatternSet{}
	for _, expr := range exprs {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}
		ps.patterns = append(ps.patterns, pattern)
	}
	return ps, nil
}

// Match reports whether the relative path matches any pattern. Separators
// are normalised to forward slashes so patterns behave the same on every
// platform.
func (ps *PatternSet) Match(relativePath string) bool {
	if ps == nil || len(ps.patterns) == 0 {
		return false
	}
	normalised := filepath.ToSlash(relativePath)
	for _, pattern := range ps.patterns {
		if pattern.MatchString(normalised) {
			return true
		}
	}
	return false
}

// Empty reports whether the set has no patterns
func (ps *PatternSet) Empty() bool {
	return ps == nil || len(ps.patterns) == 0
}

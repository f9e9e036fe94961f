// Package filter decides which relative paths appear in the generated document.
package filter

import (
	"strings"

	"github.com/temirov/mdtree/internal/utils"
)

// DefaultStructuralExclusions lists the segments excluded unless configured otherwise.
var DefaultStructuralExclusions = []string{utils.GitDirectoryName}

// Options configures a PathFilter.
type Options struct {
	// IgnoreTokens exclude every path that contains one of them as a substring.
	IgnoreTokens []string
	// StructuralExclusions exclude every path having one of them as an exact segment.
	StructuralExclusions []string
	// RequireDirectory excludes root-level files, which cannot be grouped under a heading.
	RequireDirectory bool
}

// PathFilter evaluates inclusion rules against forward-slash relative paths.
// It holds no mutable state after construction.
type PathFilter struct {
	ignoreTokens         []string
	structuralExclusions map[string]struct{}
	requireDirectory     bool
}

// New constructs a PathFilter. Blank ignore tokens are discarded because they would match every path;
// every other token is kept verbatim, surrounding whitespace included.
func New(options Options) *PathFilter {
	structuralExclusions := make(map[string]struct{}, len(options.StructuralExclusions))
	for _, exclusion := range utils.TrimPatterns(options.StructuralExclusions) {
		structuralExclusions[strings.Trim(exclusion, utils.PathSegmentSeparator)] = struct{}{}
	}
	return &PathFilter{
		ignoreTokens:         utils.DeduplicatePatterns(utils.DropBlankPatterns(options.IgnoreTokens)),
		structuralExclusions: structuralExclusions,
		requireDirectory:     options.RequireDirectory,
	}
}

// Included reports whether the relative path passes every rule.
func (pathFilter *PathFilter) Included(relativePath string) bool {
	normalizedPath := utils.NormalizeSeparators(relativePath)
	if normalizedPath == utils.EmptyString {
		return false
	}
	for _, ignoreToken := range pathFilter.ignoreTokens {
		if strings.Contains(normalizedPath, ignoreToken) {
			return false
		}
	}
	if pathFilter.requireDirectory && !utils.HasDirectorySeparator(normalizedPath) {
		return false
	}
	if len(pathFilter.structuralExclusions) > 0 {
		for _, segment := range utils.PathSegments(normalizedPath) {
			if _, excluded := pathFilter.structuralExclusions[segment]; excluded {
				return false
			}
		}
	}
	return true
}

// IgnoreTokens returns a copy of the effective ignore tokens.
func (pathFilter *PathFilter) IgnoreTokens() []string {
	return append([]string(nil), pathFilter.ignoreTokens...)
}

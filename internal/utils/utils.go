// Package utils contains general helper functions used across the mdtree tool.
package utils

import (
	"path/filepath"
	"strings"
)

const (
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// PathSegmentSeparator separates segments of every relative path handled by the tool.
	PathSegmentSeparator = "/"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// TrimPatterns trims surrounding whitespace from every pattern and drops the empty ones.
func TrimPatterns(patterns []string) []string {
	trimmedPatterns := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == EmptyString {
			continue
		}
		trimmedPatterns = append(trimmedPatterns, trimmedPattern)
	}
	return trimmedPatterns
}

// DropBlankPatterns removes patterns made only of whitespace and keeps every other pattern exactly as written.
func DropBlankPatterns(patterns []string) []string {
	retainedPatterns := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == EmptyString {
			continue
		}
		retainedPatterns = append(retainedPatterns, pattern)
	}
	return retainedPatterns
}

// NormalizeSeparators converts every backslash to a forward slash.
func NormalizeSeparators(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "\\", PathSegmentSeparator)
}

// RelativePathOrSelf calculates the forward-slash relative path from root to fullPath.
// Returns the normalized fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	cleanRoot := filepath.Clean(root)

	if cleanPath == cleanRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanRoot, cleanPath)
	if relErr != nil {
		return NormalizeSeparators(cleanPath)
	}
	return NormalizeSeparators(relativePath)
}

// TopLevelSegment returns the text before the first separator of a relative path.
// A path without a separator is its own top-level segment.
func TopLevelSegment(relativePath string) string {
	normalizedPath := strings.TrimPrefix(NormalizeSeparators(relativePath), "./")
	segment, _, _ := strings.Cut(normalizedPath, PathSegmentSeparator)
	return segment
}

// HasDirectorySeparator reports whether the relative path lives below a directory.
func HasDirectorySeparator(relativePath string) bool {
	return strings.Contains(NormalizeSeparators(relativePath), PathSegmentSeparator)
}

// PathSegments splits a relative path into its forward-slash separated segments.
func PathSegments(relativePath string) []string {
	return strings.Split(NormalizeSeparators(relativePath), PathSegmentSeparator)
}

package filter_test

import (
	"testing"

	"github.com/temirov/mdtree/internal/filter"
)

// TestIncluded verifies ignore, root-level, and structural rules.
func TestIncluded(testingHandle *testing.T) {
	testCases := []struct {
		name         string
		options      filter.Options
		relativePath string
		expected     bool
	}{
		{
			name:         "nested file with empty ignore list",
			options:      filter.Options{RequireDirectory: true},
			relativePath: "a/x.md",
			expected:     true,
		},
		{
			name:         "ignore token in nested segment",
			options:      filter.Options{IgnoreTokens: []string{"tmp"}, RequireDirectory: true},
			relativePath: "a/tmp/x.md",
			expected:     false,
		},
		{
			name:         "similar text without token",
			options:      filter.Options{IgnoreTokens: []string{"tmp"}, RequireDirectory: true},
			relativePath: "a/attempt.md",
			expected:     true,
		},
		{
			name:         "ignore token inside segment text",
			options:      filter.Options{IgnoreTokens: []string{"draft"}, RequireDirectory: true},
			relativePath: "notes/old-drafts/x.md",
			expected:     false,
		},
		{
			name:         "leading space token does not match joined text",
			options:      filter.Options{IgnoreTokens: []string{" copy"}, RequireDirectory: true},
			relativePath: "copyright/x.md",
			expected:     true,
		},
		{
			name:         "leading space token matches spaced name",
			options:      filter.Options{IgnoreTokens: []string{" copy"}, RequireDirectory: true},
			relativePath: "notes/x copy.md",
			expected:     false,
		},
		{
			name:         "root level file excluded when grouping",
			options:      filter.Options{RequireDirectory: true},
			relativePath: "README.md",
			expected:     false,
		},
		{
			name:         "root level file kept when flat",
			options:      filter.Options{RequireDirectory: false},
			relativePath: "README.md",
			expected:     true,
		},
		{
			name:         "git metadata excluded",
			options:      filter.Options{StructuralExclusions: filter.DefaultStructuralExclusions, RequireDirectory: true},
			relativePath: ".git/objects/ab/cdef",
			expected:     false,
		},
		{
			name:         "structural exclusion matches whole segments only",
			options:      filter.Options{StructuralExclusions: []string{"out/"}, RequireDirectory: true},
			relativePath: "outline/x.md",
			expected:     true,
		},
		{
			name:         "structural exclusion nested",
			options:      filter.Options{StructuralExclusions: []string{"out"}, RequireDirectory: true},
			relativePath: "pkg/out/x.md",
			expected:     false,
		},
		{
			name:         "blank ignore token does not exclude everything",
			options:      filter.Options{IgnoreTokens: []string{"", "  "}, RequireDirectory: true},
			relativePath: "a/x.md",
			expected:     true,
		},
		{
			name:         "backslash path normalized",
			options:      filter.Options{IgnoreTokens: []string{"a/tmp"}, RequireDirectory: true},
			relativePath: `a\tmp\x.md`,
			expected:     false,
		},
		{
			name:         "empty path",
			options:      filter.Options{},
			relativePath: "",
			expected:     false,
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			pathFilter := filter.New(testCase.options)
			if actual := pathFilter.Included(testCase.relativePath); actual != testCase.expected {
				subTest.Fatalf("Included(%q) = %t, expected %t", testCase.relativePath, actual, testCase.expected)
			}
		})
	}
}

// TestIncludedIsIndependentOfOrder verifies that evaluation order does not affect results.
func TestIncludedIsIndependentOfOrder(testingHandle *testing.T) {
	pathFilter := filter.New(filter.Options{IgnoreTokens: []string{"tmp"}, RequireDirectory: true})
	paths := []string{"a/x.md", "a/tmp/y.md", "README.md", "b/z.md"}

	forward := make([]bool, len(paths))
	for index, path := range paths {
		forward[index] = pathFilter.Included(path)
	}
	for index := len(paths) - 1; index >= 0; index-- {
		if pathFilter.Included(paths[index]) != forward[index] {
			testingHandle.Fatalf("result for %s changed with evaluation order", paths[index])
		}
	}
}

// TestIgnoreTokensDeduplicated verifies the effective ignore list keeps tokens verbatim.
func TestIgnoreTokensDeduplicated(testingHandle *testing.T) {
	pathFilter := filter.New(filter.Options{IgnoreTokens: []string{"tmp", " tmp ", "", "   ", "tmp", "node_modules"}})
	tokens := pathFilter.IgnoreTokens()
	if len(tokens) != 3 || tokens[0] != "tmp" || tokens[1] != " tmp " || tokens[2] != "node_modules" {
		testingHandle.Fatalf("unexpected ignore tokens %q", tokens)
	}
}

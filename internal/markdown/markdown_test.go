package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/mdtree/internal/markdown"
)

func TestRenderLink(testingHandle *testing.T) {
	assert.Equal(testingHandle, "- [a/x.md](a/x.md)", markdown.RenderLink("a/x.md"))
	assert.Equal(testingHandle, "- [docs/guide/intro.md](docs/guide/intro.md)", markdown.RenderLink("docs/guide/intro.md"))
}

func TestGroupLines(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		paths    []string
		options  markdown.FormatOptions
		expected []string
	}{
		{
			name:     "empty input",
			paths:    nil,
			options:  markdown.DefaultFormatOptions(),
			expected: nil,
		},
		{
			name:    "two groups with separator",
			paths:   []string{"a/x.md", "a/y.md", "b/z.md"},
			options: markdown.DefaultFormatOptions(),
			expected: []string{
				"# a",
				"- [a/x.md](a/x.md)",
				"- [a/y.md](a/y.md)",
				"",
				"# b",
				"- [b/z.md](b/z.md)",
			},
		},
		{
			name:    "two groups without separator",
			paths:   []string{"a/x.md", "b/z.md"},
			options: markdown.FormatOptions{Grouping: true},
			expected: []string{
				"# a",
				"- [a/x.md](a/x.md)",
				"# b",
				"- [b/z.md](b/z.md)",
			},
		},
		{
			name:    "shared text prefix across groups",
			paths:   []string{"docs/a.md", "docs-old/b.md", "docs-old/c.md"},
			options: markdown.DefaultFormatOptions(),
			expected: []string{
				"# docs",
				"- [docs/a.md](docs/a.md)",
				"",
				"# docs-old",
				"- [docs-old/b.md](docs-old/b.md)",
				"- [docs-old/c.md](docs-old/c.md)",
			},
		},
		{
			name:    "nested directories stay in their top-level group",
			paths:   []string{"src/a/b/c.go", "src/d.go"},
			options: markdown.DefaultFormatOptions(),
			expected: []string{
				"# src",
				"- [src/a/b/c.go](src/a/b/c.go)",
				"- [src/d.go](src/d.go)",
			},
		},
		{
			name:    "flat output has no headings",
			paths:   []string{"README.md", "a/x.md"},
			options: markdown.FormatOptions{Grouping: false, GroupSeparator: true},
			expected: []string{
				"- [README.md](README.md)",
				"- [a/x.md](a/x.md)",
			},
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			actual := markdown.GroupLines(markdown.RenderLines(testCase.paths), testCase.options)
			assert.Equal(subTest, testCase.expected, actual)
		})
	}
}

func TestGroupLinesHeadingCountMatchesDistinctSegments(testingHandle *testing.T) {
	paths := []string{"a/1.md", "a/2.md", "b/1.md", "c/d/1.md", "c/2.md", "e/1.md"}
	documentLines := markdown.GroupLines(markdown.RenderLines(paths), markdown.DefaultFormatOptions())

	summary, inspectError := markdown.NewInspector().Inspect(markdown.JoinLines(documentLines))
	require.NoError(testingHandle, inspectError)
	assert.Equal(testingHandle, 4, summary.Headings)
	assert.Equal(testingHandle, []string{"a", "b", "c", "e"}, summary.Segments)
	assert.Equal(testingHandle, len(paths), summary.Links)
}

func TestJoinLinesHasNoTrailingNewline(testingHandle *testing.T) {
	assert.Equal(testingHandle, "# a\n- [a/x.md](a/x.md)", markdown.JoinLines([]string{"# a", "- [a/x.md](a/x.md)"}))
	assert.Equal(testingHandle, "", markdown.JoinLines(nil))
}

func TestInspectEmptyDocument(testingHandle *testing.T) {
	summary, inspectError := markdown.NewInspector().Inspect("")
	require.NoError(testingHandle, inspectError)
	assert.Zero(testingHandle, summary.Headings)
	assert.Zero(testingHandle, summary.Links)
}

func TestRenderHTML(testingHandle *testing.T) {
	document := markdown.JoinLines([]string{"# a", "- [a/x.md](a/x.md)"})
	html, renderError := markdown.NewInspector().RenderHTML(document)
	require.NoError(testingHandle, renderError)
	assert.Contains(testingHandle, html, "<h1>a</h1>")
	assert.Contains(testingHandle, html, `<a href="a/x.md">a/x.md</a>`)
}

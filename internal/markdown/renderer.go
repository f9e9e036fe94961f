// Package markdown renders relative paths as a grouped Markdown link list.
package markdown

import "fmt"

const (
	linkLineFormat    = "- [%s](%s)"
	headingLineFormat = "# %s"
)

// RenderedLine pairs a relative path with its bullet text.
type RenderedLine struct {
	RelativePath string
	Text         string
}

// RenderLink produces the bullet line linking to relativePath, using the path as link text.
func RenderLink(relativePath string) string {
	return fmt.Sprintf(linkLineFormat, relativePath, relativePath)
}

// RenderHeading produces the heading line introducing a group.
func RenderHeading(segment string) string {
	return fmt.Sprintf(headingLineFormat, segment)
}

// RenderLines renders every relative path in order.
func RenderLines(relativePaths []string) []RenderedLine {
	renderedLines := make([]RenderedLine, 0, len(relativePaths))
	for _, relativePath := range relativePaths {
		renderedLines = append(renderedLines, RenderedLine{
			RelativePath: relativePath,
			Text:         RenderLink(relativePath),
		})
	}
	return renderedLines
}

package markdown

import (
	"strings"

	"github.com/temirov/mdtree/internal/utils"
)

const lineSeparator = "\n"

// FormatOptions controls how rendered lines are arranged into a document.
type FormatOptions struct {
	// Grouping inserts a heading before each run of lines sharing a top-level segment.
	Grouping bool
	// GroupSeparator inserts a blank line between the last bullet of a group and the next heading.
	GroupSeparator bool
}

// DefaultFormatOptions returns grouped output with blank lines between groups.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{Grouping: true, GroupSeparator: true}
}

// GroupLines arranges rendered lines into document lines.
// A heading is emitted whenever the top-level segment differs from the previous line's,
// so each run of lines gets exactly one heading and headings never repeat back to back.
func GroupLines(renderedLines []RenderedLine, options FormatOptions) []string {
	if len(renderedLines) == 0 {
		return nil
	}
	if !options.Grouping {
		documentLines := make([]string, 0, len(renderedLines))
		for _, renderedLine := range renderedLines {
			documentLines = append(documentLines, renderedLine.Text)
		}
		return documentLines
	}

	documentLines := make([]string, 0, len(renderedLines)*2)
	previousSegment := utils.EmptyString
	for lineIndex, renderedLine := range renderedLines {
		currentSegment := utils.TopLevelSegment(renderedLine.RelativePath)
		if lineIndex == 0 || currentSegment != previousSegment {
			if lineIndex > 0 && options.GroupSeparator {
				documentLines = append(documentLines, utils.EmptyString)
			}
			documentLines = append(documentLines, RenderHeading(currentSegment))
		}
		documentLines = append(documentLines, renderedLine.Text)
		previousSegment = currentSegment
	}
	return documentLines
}

// JoinLines joins document lines with newlines and no trailing newline.
func JoinLines(documentLines []string) string {
	return strings.Join(documentLines, lineSeparator)
}

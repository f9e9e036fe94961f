package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Summary describes the structure of a generated document.
type Summary struct {
	Headings int
	Links    int
	Segments []string
}

// Inspector parses generated documents as CommonMark.
type Inspector struct {
	markdown goldmark.Markdown
}

// NewInspector constructs an Inspector using the default goldmark parser.
func NewInspector() *Inspector {
	return &Inspector{markdown: goldmark.New()}
}

// Inspect counts top-level headings and links in the document.
func (inspector *Inspector) Inspect(document string) (Summary, error) {
	source := []byte(document)
	documentNode := inspector.markdown.Parser().Parse(text.NewReader(source))

	var summary Summary
	walkError := ast.Walk(documentNode, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typedNode := node.(type) {
		case *ast.Heading:
			if typedNode.Level == 1 {
				summary.Headings++
				summary.Segments = append(summary.Segments, nodeText(typedNode, source))
			}
		case *ast.Link:
			summary.Links++
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if walkError != nil {
		return Summary{}, walkError
	}
	return summary, nil
}

// RenderHTML converts the document to HTML.
func (inspector *Inspector) RenderHTML(document string) (string, error) {
	var htmlBuffer bytes.Buffer
	if convertError := inspector.markdown.Convert([]byte(document), &htmlBuffer); convertError != nil {
		return "", convertError
	}
	return htmlBuffer.String(), nil
}

func nodeText(node ast.Node, source []byte) string {
	var textBuilder strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, isText := child.(*ast.Text); isText {
			textBuilder.Write(textNode.Segment.Value(source))
			continue
		}
		textBuilder.WriteString(nodeText(child, source))
	}
	return textBuilder.String()
}

// Package docs renders the markdown documentation pages served by the web UI.
package docs

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ErrRender indicates a markdown page could not be rendered.
var ErrRender = errors.New("failed to render documentation")

// DefaultStyle is the chroma style used for code blocks.
const DefaultStyle = "monokai"

// Page is a rendered documentation page.
type Page struct {
	Title string        // text of the first level-1 heading
	Body  template.HTML // rendered markdown fragment
	CSS   template.CSS  // highlighting classes for Body
}

// Renderer converts markdown to HTML with GFM tables and highlighted code.
type Renderer struct {
	md    goldmark.Markdown
	style string
}

// NewRenderer creates a Renderer using the named chroma style. Unknown names
// fall back to chroma's default style.
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = DefaultStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// WithUnsafe is not set: raw HTML in the markdown source is dropped.
	)
	return &Renderer{md: md, style: style}
}

// Render converts source to a Page.
func (r *Renderer) Render(source string) (*Page, error) {
	src := []byte(source)
	doc := r.md.Parser().Parse(text.NewReader(src))

	var body bytes.Buffer
	if err := r.md.Renderer().Render(&body, src, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	var css bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&css, styles.Get(r.style)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &Page{
		Title: firstHeading(doc, src),
		Body:  template.HTML(body.String()), // #nosec G203 -- goldmark output without unsafe HTML
		CSS:   template.CSS(css.String()),   // #nosec G203 -- generated by chroma
	}, nil
}

// firstHeading returns the text of the first level-1 heading in doc.
func firstHeading(doc ast.Node, src []byte) string {
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = strings.TrimSpace(nodeText(h, src))
		return ast.WalkStop, nil
	})
	return title
}

// nodeText concatenates the text segments below n.
func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(nodeText(c, src))
		}
	}
	return sb.String()
}

package server

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/docs"
)

// pages holds the parsed UI templates and pre-rendered content. It is built
// once in New and only read afterwards.
type pages struct {
	index    *template.Template
	docs     *template.Template
	style    []byte
	filename *docs.Page
}

// pageData is the data passed to every page template.
type pageData struct {
	Title   string
	Page    string // "index" or "docs", used to highlight the nav link
	Version string
	Body    template.HTML
	CSS     template.CSS
}

func loadPages(l assets.Loader) (*pages, error) {
	set, err := assets.LoadPageSet(l)
	if err != nil {
		return nil, err
	}

	layout, err := template.New(assets.LayoutTemplate).Parse(set.Layout)
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	index, err := withContent(layout, assets.IndexTemplate, set.Index)
	if err != nil {
		return nil, err
	}
	docsTmpl, err := withContent(layout, assets.DocsTemplate, set.Docs)
	if err != nil {
		return nil, err
	}

	source, err := l.Load(assets.Doc, assets.FilenameDoc)
	if err != nil {
		return nil, err
	}
	filename, err := docs.NewRenderer(docs.DefaultStyle).Render(source)
	if err != nil {
		return nil, err
	}

	return &pages{
		index:    index,
		docs:     docsTmpl,
		style:    []byte(set.Style),
		filename: filename,
	}, nil
}

// withContent clones layout and parses a page's "content" block into it.
func withContent(layout *template.Template, name, source string) (*template.Template, error) {
	t, err := layout.Clone()
	if err != nil {
		return nil, fmt.Errorf("cloning layout for %s: %w", name, err)
	}
	if _, err := t.New(name).Parse(source); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return t, nil
}

// render executes the layout of t into a buffer so a template error never
// produces a half-written page.
func render(t *template.Template, data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, assets.LayoutTemplate, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

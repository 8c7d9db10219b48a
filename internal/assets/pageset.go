package assets

import "fmt"

// PageSet holds the sources the web UI is built from.
// Layout wraps both pages; Index and Docs each define a "content" block.
type PageSet struct {
	Layout string // Shared page shell with header and navigation
	Index  string // Upload form
	Docs   string // Shell for rendered markdown documentation
	Style  string // Site stylesheet
}

// LoadPageSet loads every UI asset through l.
func LoadPageSet(l Loader) (*PageSet, error) {
	var ps PageSet
	for _, a := range []struct {
		kind Kind
		name string
		dst  *string
	}{
		{Template, LayoutTemplate, &ps.Layout},
		{Template, IndexTemplate, &ps.Index},
		{Template, DocsTemplate, &ps.Docs},
		{Style, SiteStyle, &ps.Style},
	} {
		content, err := l.Load(a.kind, a.name)
		if err != nil {
			return nil, fmt.Errorf("loading %s %q: %w", a.kind.Dir, a.name, err)
		}
		*a.dst = content
	}
	return &ps, nil
}

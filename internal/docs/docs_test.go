package docs

import (
	"strings"
	"testing"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := NewRenderer("")

	tests := []struct {
		name      string
		source    string
		wantTitle string
		contains  []string
		excludes  []string
	}{
		{
			name:      "title from first heading",
			source:    "## Intro\n\n# Batch *Renaming*\n\n# Second\n",
			wantTitle: "Batch Renaming",
			contains:  []string{`<h1 id="`},
		},
		{
			name:      "no heading",
			source:    "plain paragraph",
			wantTitle: "",
			contains:  []string{"<p>plain paragraph</p>"},
		},
		{
			name:     "highlighted code block",
			source:   "```powershell\nGet-ChildItem *.pdf\n```\n",
			contains: []string{`class="chroma"`, "ChildItem"},
		},
		{
			name:     "table",
			source:   "| Before | After |\n|---|---|\n| a | b |\n",
			contains: []string{"<table>", "<td>a</td>"},
		},
		{
			name:     "raw html dropped",
			source:   "<script>alert(1)</script>\n\ntext",
			excludes: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, err := r.Render(tt.source)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if tt.wantTitle != "" || tt.name == "no heading" {
				if page.Title != tt.wantTitle {
					t.Errorf("Title = %q, want %q", page.Title, tt.wantTitle)
				}
			}
			for _, s := range tt.contains {
				if !strings.Contains(string(page.Body), s) {
					t.Errorf("Body missing %q:\n%s", s, page.Body)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(string(page.Body), s) {
					t.Errorf("Body contains %q:\n%s", s, page.Body)
				}
			}
		})
	}
}

func TestRenderer_Render_CSS(t *testing.T) {
	t.Parallel()

	page, err := NewRenderer("monokai").Render("# Docs")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(page.CSS), ".chroma") {
		t.Errorf("CSS missing .chroma rules: %s", page.CSS)
	}
}

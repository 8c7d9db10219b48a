// Package htmlref points relative references in local HTML files at the
// files themselves. Pages are rendered from a string with no base URL, so a
// relative image or stylesheet would otherwise resolve against about:blank.
package htmlref

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Resolve rewrites relative img[src], link[href] and a[href] values in doc to
// file:// URLs under baseDir. References that escape baseDir, URLs, anchors
// and absolute paths are left alone. When nothing is rewritten, doc is
// returned byte for byte.
func Resolve(doc, baseDir string) (string, error) {
	if baseDir == "" {
		return doc, nil
	}
	root, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	tree, fragment, err := parse(doc)
	if err != nil {
		return "", err
	}

	if !rewrite(tree, root) {
		return doc, nil
	}
	return render(tree, fragment)
}

// parse reads a full document or, when doc has no <html> or doctype, a body
// fragment wrapped in a bare document node.
func parse(doc string) (*html.Node, bool, error) {
	head := strings.ToLower(strings.TrimSpace(doc))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		n, err := html.Parse(strings.NewReader(doc))
		return n, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(doc), body)
	if err != nil {
		return nil, true, err
	}
	wrapper := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		wrapper.AppendChild(n)
	}
	return wrapper, true, nil
}

// render serializes tree; fragments are written without the wrapper.
func render(tree *html.Node, fragment bool) (string, error) {
	var b strings.Builder
	if !fragment {
		if err := html.Render(&b, tree); err != nil {
			return "", err
		}
		return b.String(), nil
	}
	for c := tree.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// rewrite walks n and reports whether any attribute changed.
func rewrite(n *html.Node, root string) bool {
	changed := false
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			changed = rewriteAttr(n, "src", root)
		case atom.Link, atom.A:
			changed = rewriteAttr(n, "href", root)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rewrite(c, root) {
			changed = true
		}
	}
	return changed
}

func rewriteAttr(n *html.Node, key, root string) bool {
	for i, a := range n.Attr {
		if a.Key != key || !isRelative(a.Val) {
			continue
		}
		target := filepath.Join(root, filepath.FromSlash(a.Val))
		if !within(target, root) {
			return false
		}
		n.Attr[i].Val = fileURL(target)
		return true
	}
	return false
}

// isRelative reports whether ref is a relative filesystem path.
func isRelative(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		// Windows drive letters parse as one-letter schemes.
		if len(u.Scheme) > 1 {
			return false
		}
	}
	return !filepath.IsAbs(ref) && !strings.HasPrefix(ref, "/")
}

// within reports whether path is root or below it.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// fileURL converts an absolute path to a file:// URL.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

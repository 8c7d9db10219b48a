// Package assets holds the web UI: page templates, the site stylesheet and
// the markdown help pages.
//
// Assets are looked up by Kind and name. The embedded copy always exists;
// an operator may point the server at a directory with the same layout
//
//	styles/site.css
//	templates/{layout,index,docs}.html
//	docs/filename.md
//
// and any file found there replaces its embedded counterpart. Names are
// restricted to letters, digits, '-' and '_', and files reached through
// symlinks must stay inside the directory.
package assets

package substitute

import (
	"path/filepath"
	"strings"
)

// PDFName derives an output name from an HTML file path: the directory and a
// trailing .html or .htm (any case) are dropped and ".pdf" is appended.
func PDFName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if strings.EqualFold(ext, ".html") || strings.EqualFold(ext, ".htm") {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".pdf"
}

package assets

import "errors"

var (
	ErrNotFound         = errors.New("asset not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid assets directory")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("asset path escapes assets directory")
)

// Kind is a category of asset. Each kind lives in its own directory with a
// fixed extension.
type Kind struct {
	Dir string
	Ext string
}

// Asset kinds.
var (
	Style    = Kind{Dir: "styles", Ext: ".css"}
	Template = Kind{Dir: "templates", Ext: ".html"}
	Doc      = Kind{Dir: "docs", Ext: ".md"}
)

// Built-in asset names.
const (
	SiteStyle      = "site"
	LayoutTemplate = "layout"
	IndexTemplate  = "index"
	DocsTemplate   = "docs"
	FilenameDoc    = "filename"
)

// Loader loads assets by kind and name (without extension).
// Implementations return ErrNotFound for missing assets and
// ErrInvalidAssetName for unsafe names.
type Loader interface {
	Load(kind Kind, name string) (string, error)
}

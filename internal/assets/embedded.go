package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed styles templates docs
var embedded embed.FS

// EmbeddedLoader serves the UI assets compiled into the binary.
type EmbeddedLoader struct{}

func NewEmbeddedLoader() *EmbeddedLoader { return &EmbeddedLoader{} }

func (EmbeddedLoader) Load(kind Kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	b, err := embedded.ReadFile(path.Join(kind.Dir, name+kind.Ext))
	if err != nil {
		return "", fmt.Errorf("%w: %s %q", ErrNotFound, kind.Dir, name)
	}
	return string(b), nil
}

var _ Loader = EmbeddedLoader{}

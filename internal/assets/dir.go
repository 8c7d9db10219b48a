package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirLoader serves assets from an operator-provided directory laid out like
// the embedded tree (styles/, templates/, docs/).
type DirLoader struct {
	root string // absolute, symlinks resolved
}

// NewDirLoader checks that dir is a readable directory and returns a loader
// rooted at its real path.
func NewDirLoader(dir string) (*DirLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	root, err := realPath(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidBasePath, root)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidBasePath, root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	return &DirLoader{root: root}, nil
}

// Load reads the asset file, refusing names or links that leave the root.
func (d *DirLoader) Load(kind Kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	p, err := d.resolve(filepath.Join(kind.Dir, name+kind.Ext))
	if err != nil {
		return "", err
	}

	b, err := os.ReadFile(p) // #nosec G304 -- p is inside d.root
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %s %q", ErrNotFound, kind.Dir, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(b), nil
}

// resolve joins rel onto the root and follows symlinks. A path that does
// not exist yet is returned as joined; ReadFile reports it.
func (d *DirLoader) resolve(rel string) (string, error) {
	p := filepath.Join(d.root, rel)
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}

	r, err := filepath.Rel(d.root, p)
	if err != nil || r == "." || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, rel)
	}
	return p, nil
}

func realPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

var _ Loader = (*DirLoader)(nil)

package assets

import "errors"

// Resolver looks an asset up in the operator directory first and in the
// embedded tree second.
type Resolver struct {
	dir *DirLoader // nil when no directory is configured
}

// NewResolver returns a Resolver over dir. An empty dir serves embedded
// assets only.
func NewResolver(dir string) (*Resolver, error) {
	if dir == "" {
		return &Resolver{}, nil
	}
	d, err := NewDirLoader(dir)
	if err != nil {
		return nil, err
	}
	return &Resolver{dir: d}, nil
}

// Load falls back to the embedded asset only when the directory lacks it;
// invalid names and read failures are returned as is.
func (r *Resolver) Load(kind Kind, name string) (string, error) {
	if r.dir != nil {
		content, err := r.dir.Load(kind, name)
		if !errors.Is(err, ErrNotFound) {
			return content, err
		}
	}
	return EmbeddedLoader{}.Load(kind, name)
}

// HasCustomLoader reports whether an operator directory is configured.
func (r *Resolver) HasCustomLoader() bool { return r.dir != nil }

var _ Loader = (*Resolver)(nil)

package catalog

import (
	"context"
	"errors"
)

// Catalog is the union of a local and an optional remote provider.
type Catalog struct {
	local  Provider
	remote Provider
}

// New combines local and remote. Either may be nil.
func New(local, remote Provider) *Catalog {
	return &Catalog{local: local, remote: remote}
}

// FindByID checks the local provider first, then the remote one.
func (c *Catalog) FindByID(ctx context.Context, id string) (Template, error) {
	if id == "" {
		return Template{}, ErrTemplateNotFound
	}

	for _, p := range []Provider{c.local, c.remote} {
		if p == nil {
			continue
		}
		t, err := p.Find(ctx, id)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, ErrTemplateNotFound) {
			return Template{}, err
		}
	}

	return Template{}, ErrTemplateNotFound
}

// List returns local templates followed by remote ones whose id is not
// already taken locally.
func (c *Catalog) List(ctx context.Context) ([]Template, error) {
	var out []Template
	seen := make(map[string]struct{})

	for _, p := range []Provider{c.local, c.remote} {
		if p == nil {
			continue
		}
		list, err := p.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, t := range list {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			out = append(out, t)
		}
	}

	return out, nil
}

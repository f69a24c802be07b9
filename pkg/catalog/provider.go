package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Provider is a read-only template source.
type Provider interface {
	// Find returns the template with id or ErrTemplateNotFound.
	Find(ctx context.Context, id string) (Template, error)

	// List returns every template the provider knows.
	List(ctx context.Context) ([]Template, error)
}

// StaticProvider serves a fixed, ordered set of templates.
type StaticProvider struct {
	order []string
	byID  map[string]Template
}

// NewStaticProvider builds a provider from templates. Ids must be unique and non-empty.
func NewStaticProvider(templates ...Template) (*StaticProvider, error) {
	p := &StaticProvider{byID: make(map[string]Template, len(templates))}
	for _, t := range templates {
		if t.ID == "" {
			return nil, ErrMissingID
		}
		if _, ok := p.byID[t.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		p.byID[t.ID] = t.withDefaults()
		p.order = append(p.order, t.ID)
	}
	return p, nil
}

func (p *StaticProvider) Find(_ context.Context, id string) (Template, error) {
	t, ok := p.byID[id]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	return t, nil
}

func (p *StaticProvider) List(_ context.Context) ([]Template, error) {
	out := make([]Template, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.byID[id])
	}
	return out, nil
}

// Has reports whether id belongs to this provider.
func (p *StaticProvider) Has(id string) bool {
	_, ok := p.byID[id]
	return ok
}

type templatesFile struct {
	Templates []Template `yaml:"templates"`
}

// LoadFile reads a YAML catalog:
//
//	templates:
//	  - id: exam-week
//	    name: Semana de provas
//	    subject: Semana de provas começa segunda
//	    message: ...
//	    category: academic
func LoadFile(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrLoadFile, err)
	}

	var doc templatesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrLoadFile, err)
	}

	for i, t := range doc.Templates {
		t = t.withDefaults()
		if err := t.Validate(); err != nil {
			return nil, errors.Join(ErrLoadFile, fmt.Errorf("template[%d] %q: %w", i, t.ID, err))
		}
	}

	p, err := NewStaticProvider(doc.Templates...)
	if err != nil {
		return nil, errors.Join(ErrLoadFile, err)
	}
	return p, nil
}

// Merge combines several static providers into one. Earlier providers win on
// id collisions.
func Merge(providers ...*StaticProvider) *StaticProvider {
	merged := &StaticProvider{byID: make(map[string]Template)}
	for _, p := range providers {
		if p == nil {
			continue
		}
		for _, id := range p.order {
			if _, ok := merged.byID[id]; ok {
				continue
			}
			merged.byID[id] = p.byID[id]
			merged.order = append(merged.order, id)
		}
	}
	return merged
}

// IDs returns template ids in catalog order.
func (p *StaticProvider) IDs() []string {
	return slices.Clone(p.order)
}

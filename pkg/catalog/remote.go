package catalog

import (
	"context"
	"fmt"
	"sync"
)

// TemplateStore is the external custom-template store.
type TemplateStore interface {
	ListTemplates(ctx context.Context) ([]Template, error)
	CreateTemplate(ctx context.Context, t Template) (Template, error)
	UpdateTemplate(ctx context.Context, t Template) (Template, error)
	DeleteTemplate(ctx context.Context, id string) error
}

// RemoteProvider serves custom templates from a snapshot of the store. The
// snapshot is refreshed by List, after Invalidate, and once on a Find miss.
type RemoteProvider struct {
	store TemplateStore

	mu       sync.RWMutex
	snapshot []Template
	loaded   bool
}

// NewRemoteProvider wraps store.
func NewRemoteProvider(store TemplateStore) *RemoteProvider {
	return &RemoteProvider{store: store}
}

func (r *RemoteProvider) List(ctx context.Context) ([]Template, error) {
	if err := r.refresh(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Template(nil), r.snapshot...), nil
}

func (r *RemoteProvider) Find(ctx context.Context, id string) (Template, error) {
	if t, ok := r.lookup(id); ok {
		return t, nil
	}
	if err := r.refresh(ctx); err != nil {
		return Template{}, err
	}
	if t, ok := r.lookup(id); ok {
		return t, nil
	}
	return Template{}, ErrTemplateNotFound
}

// Invalidate drops the snapshot so the next read goes to the store.
func (r *RemoteProvider) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = nil
	r.loaded = false
}

func (r *RemoteProvider) lookup(id string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.loaded {
		return Template{}, false
	}
	for _, t := range r.snapshot {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

func (r *RemoteProvider) refresh(ctx context.Context) error {
	list, err := r.store.ListTemplates(ctx)
	if err != nil {
		return fmt.Errorf("catalog: list custom templates: %w", err)
	}
	for i := range list {
		list[i] = list[i].withDefaults()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = list
	r.loaded = true
	return nil
}

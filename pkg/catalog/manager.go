package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Manager performs custom-template CRUD against the remote store.
type Manager struct {
	store    TemplateStore
	readOnly interface{ Has(id string) bool }
	remote   *RemoteProvider
	logger   *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithReadOnly protects ids owned by p (typically Builtin()) from changes.
func WithReadOnly(p *StaticProvider) ManagerOption {
	return func(m *Manager) {
		if p != nil {
			m.readOnly = p
		}
	}
}

// WithRemoteProvider invalidates r after every successful write.
func WithRemoteProvider(r *RemoteProvider) ManagerOption {
	return func(m *Manager) {
		m.remote = r
	}
}

// WithManagerLogger sets the logger for the Manager.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a Manager. Built-in ids are read-only by default.
func NewManager(store TemplateStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:    store,
		readOnly: Builtin(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create validates t and stores it. The returned template carries the id
// assigned by the store.
func (m *Manager) Create(ctx context.Context, t Template) (Template, error) {
	t = normalizeTemplate(t)
	if t.ID != "" && m.readOnly.Has(t.ID) {
		return Template{}, fmt.Errorf("%w: %s", ErrReadOnlyTemplate, t.ID)
	}
	if err := t.Validate(); err != nil {
		return Template{}, err
	}

	created, err := m.store.CreateTemplate(ctx, t)
	if err != nil {
		return Template{}, fmt.Errorf("catalog: create template: %w", err)
	}
	m.invalidate()

	m.logger.LogAttrs(ctx, slog.LevelInfo, "custom template created",
		logger.Component("catalog"),
		logger.TemplateID(created.ID),
	)
	return created, nil
}

// Update replaces every field of an existing custom template.
func (m *Manager) Update(ctx context.Context, t Template) (Template, error) {
	t = normalizeTemplate(t)
	if t.ID == "" {
		return Template{}, ErrMissingID
	}
	if m.readOnly.Has(t.ID) {
		return Template{}, fmt.Errorf("%w: %s", ErrReadOnlyTemplate, t.ID)
	}
	if err := t.Validate(); err != nil {
		return Template{}, err
	}

	updated, err := m.store.UpdateTemplate(ctx, t)
	if err != nil {
		return Template{}, fmt.Errorf("catalog: update template: %w", err)
	}
	m.invalidate()

	m.logger.LogAttrs(ctx, slog.LevelInfo, "custom template updated",
		logger.Component("catalog"),
		logger.TemplateID(updated.ID),
	)
	return updated, nil
}

// Delete removes a custom template.
func (m *Manager) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingID
	}
	if m.readOnly.Has(id) {
		return fmt.Errorf("%w: %s", ErrReadOnlyTemplate, id)
	}

	if err := m.store.DeleteTemplate(ctx, id); err != nil {
		return fmt.Errorf("catalog: delete template: %w", err)
	}
	m.invalidate()

	m.logger.LogAttrs(ctx, slog.LevelInfo, "custom template deleted",
		logger.Component("catalog"),
		logger.TemplateID(id),
	)
	return nil
}

func (m *Manager) invalidate() {
	if m.remote != nil {
		m.remote.Invalidate()
	}
}

func normalizeTemplate(t Template) Template {
	t.ID = strings.TrimSpace(t.ID)
	t.Name = strings.TrimSpace(t.Name)
	t.Subject = strings.TrimSpace(t.Subject)
	t.Category = strings.TrimSpace(t.Category)
	return t.withDefaults()
}

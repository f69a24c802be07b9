package catalog_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/notifykit/pkg/catalog"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListTemplates(ctx context.Context) ([]catalog.Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Template), args.Error(1)
}

func (m *MockStore) CreateTemplate(ctx context.Context, t catalog.Template) (catalog.Template, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(catalog.Template), args.Error(1)
}

func (m *MockStore) UpdateTemplate(ctx context.Context, t catalog.Template) (catalog.Template, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(catalog.Template), args.Error(1)
}

func (m *MockStore) DeleteTemplate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

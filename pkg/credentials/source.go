package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/notifykit/pkg/kvstore"
)

// DefaultKeys are the storage keys checked by Lookup, highest priority first.
var DefaultKeys = []string{"accessToken", "access_token", "authToken", "token", "jwt"}

// placeholders are values older clients wrote instead of deleting the key.
var placeholders = map[string]struct{}{
	"null":      {},
	"undefined": {},
}

// Source reads and writes the bearer credential.
type Source struct {
	store kvstore.Store
	keys  []string
}

// Option configures a Source.
type Option func(*Source)

// WithKeys overrides the lookup keys. The first key is the one Save writes.
func WithKeys(keys ...string) Option {
	return func(s *Source) {
		if len(keys) > 0 {
			s.keys = keys
		}
	}
}

// New creates a Source backed by store.
func New(store kvstore.Store, opts ...Option) *Source {
	s := &Source{
		store: store,
		keys:  DefaultKeys,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup returns the first usable credential. Presence is all that is
// checked; expiry is left to the server.
func (s *Source) Lookup(ctx context.Context) (string, error) {
	for _, key := range s.keys {
		v, err := s.store.Get(ctx, key)
		if errors.Is(err, kvstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("credentials: read %q: %w", key, err)
		}
		if usable(v) {
			return strings.TrimSpace(v), nil
		}
	}
	return "", ErrNoCredential
}

// Save stores token under the primary key.
func (s *Source) Save(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if !usable(token) {
		return ErrEmptyToken
	}
	if err := s.store.Set(ctx, s.keys[0], token); err != nil {
		return fmt.Errorf("credentials: save: %w", err)
	}
	return nil
}

// Clear removes the credential from every known key.
func (s *Source) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range s.keys {
		if err := s.store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("credentials: delete %q: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// TokenSource exposes the stored credential as an oauth2.TokenSource. Each
// Token call performs a fresh lookup so a logout is seen immediately.
func (s *Source) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, src: s}
}

type tokenSource struct {
	ctx context.Context
	src *Source
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	v, err := ts.src.Lookup(ts.ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: v, TokenType: "Bearer"}, nil
}

func usable(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	_, placeholder := placeholders[strings.ToLower(v)]
	return !placeholder
}

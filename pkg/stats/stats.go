// Package stats keeps the running total of sent notifications.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/kvstore"
)

// Key is the storage key holding the serialized Stats.
const Key = "notificationStats"

var ErrCorruptStats = errors.New("stats: stored value is not valid")

// Stats is the persisted send counter.
type Stats struct {
	TotalSent  int        `json:"totalSent"`
	LastSentAt *time.Time `json:"lastSentAt"`
}

// Tracker reads and updates Stats in a kvstore.Store.
type Tracker struct {
	store kvstore.Store
	mu    sync.Mutex
}

// NewTracker creates a Tracker.
func NewTracker(store kvstore.Store) *Tracker {
	return &Tracker{store: store}
}

// Load returns the stored stats. A missing key yields zero Stats.
func (t *Tracker) Load(ctx context.Context) (Stats, error) {
	raw, err := t.store.Get(ctx, Key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("stats: load: %w", err)
	}

	var s Stats
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Stats{}, errors.Join(ErrCorruptStats, err)
	}
	if s.TotalSent < 0 {
		s.TotalSent = 0
	}
	return s, nil
}

// Record adds n to the total and stamps at as the last send time. n <= 0 is a
// no-op. A corrupt stored value is overwritten.
func (t *Tracker) Record(ctx context.Context, n int, at time.Time) (Stats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.Load(ctx)
	if err != nil && !errors.Is(err, ErrCorruptStats) {
		return Stats{}, err
	}
	if n <= 0 {
		return s, nil
	}

	s.TotalSent += n
	at = at.UTC()
	s.LastSentAt = &at

	raw, err := json.Marshal(s)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: encode: %w", err)
	}
	if err := t.store.Set(ctx, Key, string(raw)); err != nil {
		return Stats{}, fmt.Errorf("stats: save: %w", err)
	}
	return s, nil
}

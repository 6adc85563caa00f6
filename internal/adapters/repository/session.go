package repository

import (
	"context"
	"sync"

	"github.com/okian/tribute/internal/domain/model"
	"github.com/okian/tribute/internal/domain/tier"
)

// SessionStore implements Store with mutex-guarded in-memory state.
// A single RWMutex is enough: batches are strictly sequential, so writers
// never contend with each other, only with UI readers.
type SessionStore struct {
	mu sync.RWMutex

	coins    []model.ContributionRecord
	activity []model.ContributionRecord
	statuses map[string]model.ImageStatus
	table    tier.Table
	members  []model.MemberRecord
}

// Option applies a configuration option to the SessionStore.
type Option func(*SessionStore)

// WithTierTable seeds the initial tier table.
func WithTierTable(table tier.Table) Option {
	return func(s *SessionStore) {
		if len(table) > 0 {
			s.table = table.Clone()
		}
	}
}

// NewSessionStore creates an empty session store with the default tier table.
func NewSessionStore(opts ...Option) *SessionStore {
	s := &SessionStore{
		statuses: make(map[string]model.ImageStatus),
		table:    tier.DefaultTable(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) ReplaceCategoryResults(_ context.Context, category model.Category, records []model.ContributionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.ContributionRecord, len(records))
	copy(copied, records)
	if category == model.CategoryActivity {
		s.activity = copied
		return
	}
	s.coins = copied
}

func (s *SessionStore) CategoryResults(_ context.Context, category model.Category) []model.ContributionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.coins
	if category == model.CategoryActivity {
		src = s.activity
	}
	out := make([]model.ContributionRecord, len(src))
	copy(out, src)
	return out
}

func (s *SessionStore) SetImageStatus(_ context.Context, imageID string, status model.ImageStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[imageID] = status
}

func (s *SessionStore) ImageStatuses(_ context.Context) map[string]model.ImageStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.ImageStatus, len(s.statuses))
	for id, status := range s.statuses {
		out[id] = status
	}
	return out
}

func (s *SessionStore) ReplaceTierTable(_ context.Context, table tier.Table) error {
	if len(table) == 0 {
		return ErrEmptyTable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table.Clone()
	return nil
}

func (s *SessionStore) TierTable(_ context.Context) tier.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

func (s *SessionStore) ReplaceMembers(_ context.Context, members []model.MemberRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.MemberRecord, len(members))
	copy(copied, members)
	s.members = copied
}

func (s *SessionStore) Members(_ context.Context) []model.MemberRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.MemberRecord, len(s.members))
	copy(out, s.members)
	return out
}

func (s *SessionStore) Counts(_ context.Context) (coins, activity, images int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.coins), len(s.activity), len(s.statuses)
}

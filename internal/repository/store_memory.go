package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/models"
	"github.com/google/uuid"
)

// InMemoryCandidateStore enforces the same email uniqueness as the
// candidates table. Used by tests and local runs without a database.
type InMemoryCandidateStore struct {
	mu         sync.RWMutex
	candidates map[string]models.Candidate
	now        func() time.Time
}

func NewInMemoryCandidateStore() *InMemoryCandidateStore {
	return &InMemoryCandidateStore{
		candidates: make(map[string]models.Candidate),
		now:        time.Now,
	}
}

// WithClock overrides the timestamp source used for created_at.
func (s *InMemoryCandidateStore) WithClock(now func() time.Time) *InMemoryCandidateStore {
	s.now = now
	return s
}

func (s *InMemoryCandidateStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.candidates[email]
	return ok, nil
}

func (s *InMemoryCandidateStore) Create(_ context.Context, c *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[c.Email]; ok {
		return &Error{
			Fact: ErrUniqueViolation,
			Code: CodeUniqueViolation,
			Err:  fmt.Errorf("duplicate key value violates unique constraint \"candidates_email_key\""),
		}
	}
	c.ID = uuid.New()
	c.CreatedAt = s.now()
	s.candidates[c.Email] = *c
	return nil
}

func (s *InMemoryCandidateStore) List(_ context.Context, limit, offset int) ([]models.Candidate, int64, error) {
	s.mu.RLock()
	all := make([]models.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		all = append(all, c)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []models.Candidate{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// UnconfiguredCandidateStore stands in when no store credentials are set.
// Every call fails with ErrNotConfigured without touching the network.
type UnconfiguredCandidateStore struct{}

func (UnconfiguredCandidateStore) ExistsByEmail(context.Context, string) (bool, error) {
	return false, ErrNotConfigured
}

func (UnconfiguredCandidateStore) Create(context.Context, *models.Candidate) error {
	return ErrNotConfigured
}

func (UnconfiguredCandidateStore) List(context.Context, int, int) ([]models.Candidate, int64, error) {
	return nil, 0, ErrNotConfigured
}

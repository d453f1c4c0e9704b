package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/repository"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// CandidateStore is the persistence the registration workflow needs.
// Implementations must enforce email uniqueness at insert time.
type CandidateStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, c *models.Candidate) error
	List(ctx context.Context, limit, offset int) ([]models.Candidate, int64, error)
}

// RegistrationService is shared by the registration form and the JSON API.
type RegistrationService struct {
	store   CandidateStore
	metrics *metrics.Metrics
}

func NewRegistrationService(store CandidateStore, m *metrics.Metrics) *RegistrationService {
	return &RegistrationService{store: store, metrics: m}
}

// Submit validates in and registers the result.
func (s *RegistrationService) Submit(ctx context.Context, in RegistrationInput) (*models.Candidate, error) {
	draft, err := Validate(in)
	if err != nil {
		s.metrics.RecordRegistration(KindName(err))
		return nil, err
	}
	return s.Register(ctx, draft)
}

// Register runs the duplicate check and then the insert. The check is best
// effort; the unique index on email decides when two requests race.
func (s *RegistrationService) Register(ctx context.Context, draft Draft) (*models.Candidate, error) {
	candidate, err := s.register(ctx, draft)
	s.metrics.RecordRegistration(KindName(err))
	if err != nil {
		s.logFailure(ctx, "candidate.register", err)
		return nil, err
	}

	slog.InfoContext(ctx, "candidate registered",
		"action", "candidate.register",
		"candidate_id", candidate.ID.String(),
		"created_at", candidate.CreatedAt,
	)
	return candidate, nil
}

func (s *RegistrationService) register(ctx context.Context, draft Draft) (*models.Candidate, error) {
	start := time.Now()
	exists, err := s.store.ExistsByEmail(ctx, draft.Email)
	s.metrics.ObserveStore(OpCheck, start)
	if err != nil {
		return nil, translate(OpCheck, err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	candidate := &models.Candidate{
		Name:         draft.Name,
		Email:        draft.Email,
		Mobile:       draft.Mobile,
		MobileDigits: draft.MobileDigits,
	}

	start = time.Now()
	err = s.store.Create(ctx, candidate)
	s.metrics.ObserveStore(OpInsert, start)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateEmail
		}
		return nil, translate(OpInsert, err)
	}
	return candidate, nil
}

// List returns candidates newest first plus the total row count. limit and
// offset are clamped to sane bounds.
func (s *RegistrationService) List(ctx context.Context, limit, offset int) ([]models.Candidate, int64, error) {
	if limit < 1 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	start := time.Now()
	candidates, total, err := s.store.List(ctx, limit, offset)
	s.metrics.ObserveStore(OpList, start)
	if err != nil {
		err = translate(OpList, err)
		s.logFailure(ctx, "candidate.list", err)
		return nil, 0, err
	}
	return candidates, total, nil
}

// translate maps store facts onto the registration error kinds. A failed
// check is either a configuration error or transient.
func translate(op string, err error) error {
	kind := ErrTransientStore
	switch {
	case errors.Is(err, repository.ErrNotConfigured), errors.Is(err, repository.ErrUndefinedTable):
		kind = ErrConfiguration
	case errors.Is(err, repository.ErrPermissionDenied) && op == OpInsert:
		kind = ErrPermission
	case errors.Is(err, repository.ErrUniqueViolation):
		kind = ErrDuplicateEmail
	}
	return &StoreError{Kind: kind, Op: op, Code: repository.Code(err), Err: err}
}

func (s *RegistrationService) logFailure(ctx context.Context, action string, err error) {
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		// Duplicates and validation failures are expected outcomes.
		slog.InfoContext(ctx, "registration rejected", "action", action, "kind", KindName(err))
		return
	}
	slog.ErrorContext(ctx, "candidate store failure",
		"action", action,
		"kind", KindName(err),
		"op", storeErr.Op,
		"code", storeErr.Code,
		"error", storeErr.Err.Error(),
	)
}

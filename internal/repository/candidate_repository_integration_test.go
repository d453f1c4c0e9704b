//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/repository"
)

type CandidateRepositorySuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *repository.CandidateRepository
}

func TestCandidateRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CandidateRepositorySuite))
}

func (s *CandidateRepositorySuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("assessment"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = database.Open(dsn)
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(ctx, s.db))

	s.repo = repository.NewCandidateRepository(s.db)
}

func (s *CandidateRepositorySuite) TearDownSuite() {
	if s.db != nil {
		_ = database.Close(s.db)
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *CandidateRepositorySuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE candidates").Error)
}

func newCandidate(email string) *models.Candidate {
	return &models.Candidate{
		Name:         "Jane Doe",
		Email:        email,
		Mobile:       "+91 98765 43210",
		MobileDigits: "919876543210",
	}
}

func (s *CandidateRepositorySuite) TestCreateAssignsIDAndTimestamp() {
	ctx := context.Background()
	c := newCandidate("jane@acme.com")

	s.Require().NoError(s.repo.Create(ctx, c))
	s.NotEqual(c.ID.String(), "00000000-0000-0000-0000-000000000000")
	s.False(c.CreatedAt.IsZero())

	exists, err := s.repo.ExistsByEmail(ctx, "jane@acme.com")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.repo.ExistsByEmail(ctx, "other@acme.com")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *CandidateRepositorySuite) TestDuplicateEmailViolatesConstraint() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Create(ctx, newCandidate("dup@acme.com")))

	err := s.repo.Create(ctx, newCandidate("dup@acme.com"))
	s.Require().ErrorIs(err, repository.ErrUniqueViolation)
	s.Equal(repository.CodeUniqueViolation, repository.Code(err))
}

func (s *CandidateRepositorySuite) TestCreateAcceptsLongValues() {
	ctx := context.Background()
	c := newCandidate("a.very.long.local.part.for.testing.column.widths." + strings.Repeat("x", 250) + "@acme.com")
	c.Mobile = "+1 (234) 567-8901 " + strings.Repeat("2345 ", 20)
	c.MobileDigits = "12345678901" + strings.Repeat("2345", 20)

	s.Require().NoError(s.repo.Create(ctx, c))

	exists, err := s.repo.ExistsByEmail(ctx, c.Email)
	s.Require().NoError(err)
	s.True(exists)
}

// TestConcurrentInsertsSameEmail verifies the unique index admits exactly one
// row no matter how many inserts race.
func (s *CandidateRepositorySuite) TestConcurrentInsertsSameEmail() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var created, conflicts atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.repo.Create(ctx, newCandidate("race@acme.com"))
			switch {
			case err == nil:
				created.Add(1)
			case repository.Code(err) == repository.CodeUniqueViolation:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.EqualValues(1, created.Load())
	s.EqualValues(goroutines-1, conflicts.Load())
}

func (s *CandidateRepositorySuite) TestListNewestFirst() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.repo.Create(ctx, newCandidate(fmt.Sprintf("c%d@acme.com", i))))
	}

	page, total, err := s.repo.List(ctx, 2, 0)
	s.Require().NoError(err)
	s.EqualValues(5, total)
	s.Require().Len(page, 2)
	s.Equal("c4@acme.com", page[0].Email)
	s.False(page[0].CreatedAt.Before(page[1].CreatedAt))
}

func (s *CandidateRepositorySuite) TestMissingTableIsClassified() {
	ctx := context.Background()
	s.Require().NoError(s.db.Exec("ALTER TABLE candidates RENAME TO candidates_moved").Error)
	defer s.db.Exec("ALTER TABLE candidates_moved RENAME TO candidates")

	_, err := s.repo.ExistsByEmail(ctx, "x@acme.com")
	s.Require().ErrorIs(err, repository.ErrUndefinedTable)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantFact error
		wantCode string
	}{
		{
			name:     "unique violation",
			err:      &pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "candidates_email_key"`},
			wantFact: ErrUniqueViolation,
			wantCode: CodeUniqueViolation,
		},
		{
			name:     "insufficient privilege",
			err:      fmt.Errorf("insert: %w", &pgconn.PgError{Code: "42501", Message: "permission denied for table candidates"}),
			wantFact: ErrPermissionDenied,
			wantCode: CodeInsufficientPrivilege,
		},
		{
			name:     "undefined table",
			err:      &pgconn.PgError{Code: "42P01", Message: `relation "candidates" does not exist`},
			wantFact: ErrUndefinedTable,
			wantCode: CodeUndefinedTable,
		},
		{
			name:     "invalid schema",
			err:      &pgconn.PgError{Code: "3F000", Message: `schema "public" does not exist`},
			wantFact: ErrUndefinedTable,
			wantCode: CodeInvalidSchemaName,
		},
		{
			name:     "gorm duplicated key",
			err:      gorm.ErrDuplicatedKey,
			wantFact: ErrUniqueViolation,
		},
		{
			name:     "message fallback for row-level security",
			err:      errors.New(`new row violates row-level security policy for table "candidates"`),
			wantFact: ErrPermissionDenied,
		},
		{
			name:     "message fallback for missing relation",
			err:      errors.New(`relation "public.candidates" does not exist`),
			wantFact: ErrUndefinedTable,
		},
		{
			name: "unclassified",
			err:  &pgconn.PgError{Code: "08006", Message: "connection failure"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			require.Error(t, got)
			assert.ErrorIs(t, got, tt.err)
			for _, fact := range []error{ErrUniqueViolation, ErrPermissionDenied, ErrUndefinedTable} {
				assert.Equal(t, fact == tt.wantFact, errors.Is(got, fact), "fact %v", fact)
			}
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, Code(got))
			}
		})
	}

	assert.NoError(t, classify(nil))
}

func TestInMemoryCandidateStore(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store := NewInMemoryCandidateStore().WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	for i := 0; i < 5; i++ {
		c := &models.Candidate{Name: "C", Email: fmt.Sprintf("c%d@example.com", i), MobileDigits: "1234567890"}
		require.NoError(t, store.Create(ctx, c))
		assert.NotEmpty(t, c.ID)
	}

	exists, err := store.ExistsByEmail(ctx, "c3@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	err = store.Create(ctx, &models.Candidate{Email: "c3@example.com"})
	assert.ErrorIs(t, err, ErrUniqueViolation)
	assert.Equal(t, CodeUniqueViolation, Code(err))

	page, total, err := store.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "c4@example.com", page[0].Email)
	assert.Equal(t, "c3@example.com", page[1].Email)

	page, _, err = store.List(ctx, 10, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c0@example.com", page[0].Email)

	page, _, err = store.List(ctx, 10, 50)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestUnconfiguredCandidateStore(t *testing.T) {
	var store UnconfiguredCandidateStore
	ctx := context.Background()

	_, err := store.ExistsByEmail(ctx, "a@b.co")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, store.Create(ctx, &models.Candidate{}), ErrNotConfigured)
	_, _, err = store.List(ctx, 10, 0)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

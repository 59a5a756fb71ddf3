package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
	repo "github.com/AnthoniusHendriyanto/course-service/internal/auth/repository/postgres"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountColumns = []string{"id", "first_name", "last_name", "email", "password_hash", "created_at", "updated_at"}

// TestGetByEmail covers the GetByEmail repository method.
func TestGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock, domain.PrincipalUser)
	email := "test@example.com"
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT id, first_name, last_name, email, password_hash, created_at, updated_at\\s+FROM users").
			WithArgs(email).
			WillReturnRows(pgxmock.NewRows(accountColumns).
				AddRow("user-123", "Grace", "Hopper", email, "hash", now, now))

		account, err := r.GetByEmail(ctx, email)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, "user-123", account.ID)
		assert.Equal(t, "Grace", account.FirstName)
		assert.Equal(t, "hash", account.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("FROM users").
			WithArgs(email).
			WillReturnError(pgx.ErrNoRows)

		account, err := r.GetByEmail(ctx, email)
		require.NoError(t, err) // Should return nil account, nil error
		assert.Nil(t, account)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("FROM users").
			WithArgs(email).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByEmail(ctx, email)
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock, domain.PrincipalAdmin)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("FROM admins").
			WithArgs("admin-1").
			WillReturnRows(pgxmock.NewRows(accountColumns).
				AddRow("admin-1", "Ada", "Lovelace", "ada@example.com", "hash", now, now))

		account, err := r.GetByID(ctx, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", account.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("FROM admins").
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		account, err := r.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

// TestCreate covers the Create repository method.
func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresRepository(mock, domain.PrincipalAdmin)
	now := time.Now()
	account := &domain.Account{
		ID:           "admin-123",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "new@example.com",
		PasswordHash: "new-hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	args := []interface{}{account.ID, account.FirstName, account.LastName, account.Email, account.PasswordHash, account.CreatedAt, account.UpdatedAt}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO admins").
			WithArgs(args...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Create(ctx, account)
		assert.NoError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO admins").
			WithArgs(args...).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "admins_email_lower_unique"})

		err := r.Create(ctx, account)
		assert.ErrorIs(t, err, autherror.ErrEmailAlreadyInUse)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO admins").
			WithArgs(args...).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Create(ctx, account)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, autherror.ErrEmailAlreadyInUse)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresRepository_UnknownClass(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.Panics(t, func() {
		repo.NewPostgresRepository(mock, domain.PrincipalClass("guest"))
	})
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnthoniusHendriyanto/course-service/db"
	"github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/jackc/pgx/v5"
)

// tables maps each principal class to its credential table.
var tables = map[domain.PrincipalClass]string{
	domain.PrincipalAdmin: "admins",
	domain.PrincipalUser:  "users",
}

type PostgresRepository struct {
	db    db.DBTX
	table string
}

// NewPostgresRepository returns the credential store for class. It panics on
// an unknown class since that is a wiring mistake.
func NewPostgresRepository(db db.DBTX, class domain.PrincipalClass) *PostgresRepository {
	table, ok := tables[class]
	if !ok {
		panic(fmt.Sprintf("no account table for principal class %q", class))
	}
	return &PostgresRepository{db: db, table: table}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, email, password_hash, created_at, updated_at
		FROM %s
		WHERE LOWER(email) = LOWER($1)
		LIMIT 1;
	`, r.table)

	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, email, password_hash, created_at, updated_at
		FROM %s
		WHERE id = $1;
	`, r.table)

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *domain.Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, first_name, last_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.table)

	_, err := r.db.Exec(ctx, query, a.ID, a.FirstName, a.LastName, a.Email, a.PasswordHash, a.CreatedAt, a.UpdatedAt)
	if _, ok := db.UniqueViolation(err); ok {
		return autherror.ErrEmailAlreadyInUse
	}
	return err
}

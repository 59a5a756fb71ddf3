package domain

//go:generate mockgen -destination=../../mocks/mock_account_repository.go -package=mocks github.com/AnthoniusHendriyanto/course-service/internal/auth/domain AccountRepository

import "context"

// AccountRepository is the credential store for one principal class.
// GetByEmail and GetByID return (nil, nil) when nothing matches. Create
// returns errors.ErrEmailAlreadyInUse on a unique email violation.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, account *Account) error
}

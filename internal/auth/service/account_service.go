package service

import (
	"context"
	"time"

	"github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/course-service/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/AnthoniusHendriyanto/course-service/internal/validation"
	"github.com/AnthoniusHendriyanto/course-service/pkg/constant"
	"github.com/google/uuid"
)

// AccountService handles signup and login for one principal class. The
// service is instantiated once for admins and once for users.
type AccountService struct {
	class        domain.PrincipalClass
	repo         domain.AccountRepository
	tokenService TokenGenerator
	hasher       *PasswordHasher
}

func NewAccountService(class domain.PrincipalClass, repo domain.AccountRepository, tokenService TokenGenerator, hasher *PasswordHasher) *AccountService {
	return &AccountService{
		class:        class,
		repo:         repo,
		tokenService: tokenService,
		hasher:       hasher,
	}
}

func (s *AccountService) Class() domain.PrincipalClass {
	return s.class
}

func (s *AccountService) Signup(ctx context.Context, input dto.SignupInput) (*domain.Account, error) {
	input.Normalize()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// A concurrent signup with the same email is caught by the store's
	// unique index and surfaces as ErrEmailAlreadyInUse here.
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

func (s *AccountService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginOutput, error) {
	email := dto.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, autherror.ErrInvalidCredentials
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if account == nil {
		s.hasher.CompareDummy(ctx, input.Password)
		return nil, autherror.ErrInvalidCredentials
	}

	ok, err := s.hasher.Compare(ctx, account.PasswordHash, input.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, autherror.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenService.Issue(account.ID, s.class)
	if err != nil {
		return nil, err
	}

	return &dto.LoginOutput{
		Account:   dto.NewAccountOutput(account),
		Token:     token,
		TokenType: constant.DefaultTokenType,
		ExpiresAt: expiresAt,
	}, nil
}

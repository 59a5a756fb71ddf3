package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/AnthoniusHendriyanto/course-service/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenGenerator interface {
	Issue(principalID string, class domain.PrincipalClass) (string, time.Time, error)
	Verify(tokenString string, class domain.PrincipalClass) (domain.Principal, error)
	GetTokenExpiry() time.Duration
}

// TokenService signs HS256 tokens with one secret per principal class, so a
// token minted for one class never verifies as the other.
type TokenService struct {
	AdminTokenSecret string
	UserTokenSecret  string
	TokenExpiry      time.Duration
	now              func() time.Time
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	PrincipalID string `json:"id"`
	Class       string `json:"class"`
}

func NewTokenService(adminSecret, userSecret string, expiryMinutes int) *TokenService {
	return &TokenService{
		AdminTokenSecret: adminSecret,
		UserTokenSecret:  userSecret,
		TokenExpiry:      time.Duration(expiryMinutes) * time.Minute,
		now:              time.Now,
	}
}

func (ts *TokenService) GetTokenExpiry() time.Duration {
	return ts.TokenExpiry
}

func (ts *TokenService) clock() time.Time {
	if ts.now == nil {
		return time.Now()
	}
	return ts.now()
}

func (ts *TokenService) secretFor(class domain.PrincipalClass) ([]byte, error) {
	switch class {
	case domain.PrincipalAdmin:
		return []byte(ts.AdminTokenSecret), nil
	case domain.PrincipalUser:
		return []byte(ts.UserTokenSecret), nil
	default:
		return nil, fmt.Errorf("unknown principal class %q", class)
	}
}

// Issue returns a signed token for the principal and its expiry time.
func (ts *TokenService) Issue(principalID string, class domain.PrincipalClass) (string, time.Time, error) {
	secret, err := ts.secretFor(class)
	if err != nil {
		return "", time.Time{}, err
	}

	now := ts.clock()
	expiresAt := now.Add(ts.TokenExpiry)

	claims := JWTCustomClaims{
		PrincipalID: principalID,
		Class:       class.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify checks the token against the secret of class and returns the
// principal it names. Failures wrap ErrTokenMalformed, ErrTokenBadSignature
// or ErrTokenExpired.
func (ts *TokenService) Verify(tokenString string, class domain.PrincipalClass) (domain.Principal, error) {
	secret, err := ts.secretFor(class)
	if err != nil {
		return domain.Principal{}, err
	}

	claims := &JWTCustomClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.clock),
	)
	if err != nil {
		return domain.Principal{}, classifyTokenError(err)
	}

	// Only reachable if both classes were configured with the same secret.
	if claims.Class != class.String() {
		return domain.Principal{}, fmt.Errorf("%w: token class %q, want %q", autherror.ErrTokenBadSignature, claims.Class, class)
	}
	if claims.PrincipalID == "" {
		return domain.Principal{}, fmt.Errorf("%w: missing principal id", autherror.ErrTokenMalformed)
	}

	return domain.Principal{ID: claims.PrincipalID, Class: class}, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", autherror.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", autherror.ErrTokenBadSignature, err)
	default:
		return fmt.Errorf("%w: %w", autherror.ErrTokenMalformed, err)
	}
}

// TokenFailureReason names a verification failure for logs.
func TokenFailureReason(err error) string {
	switch {
	case errors.Is(err, autherror.ErrTokenExpired):
		return "expired"
	case errors.Is(err, autherror.ErrTokenBadSignature):
		return "bad_signature"
	case errors.Is(err, autherror.ErrTokenMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}

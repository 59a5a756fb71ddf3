package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/course-service/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/AnthoniusHendriyanto/course-service/internal/response"
	"github.com/AnthoniusHendriyanto/course-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

type principalKey struct{}

// TokenVerifier is the part of the token service the middleware needs.
type TokenVerifier interface {
	Verify(tokenString string, class domain.PrincipalClass) (domain.Principal, error)
}

// TokenLocator pulls the raw session token out of a request. It returns
// errors.ErrUnauthenticated when the request carries none.
type TokenLocator func(c *fiber.Ctx) (string, error)

// BearerHeader reads "Authorization: Bearer <token>". A missing header or any
// other scheme is rejected before the token is looked at.
func BearerHeader() TokenLocator {
	return func(c *fiber.Ctx) (string, error) {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return "", autherror.ErrUnauthenticated
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != constant.DefaultTokenType {
			return "", autherror.ErrUnauthenticated
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			return "", autherror.ErrUnauthenticated
		}
		return token, nil
	}
}

// Cookie reads the token from the named cookie.
func Cookie(name string) TokenLocator {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Cookies(name)
		if token == "" {
			return "", autherror.ErrUnauthenticated
		}
		return token, nil
	}
}

type SessionConfig struct {
	Class    domain.PrincipalClass
	Locator  TokenLocator
	Verifier TokenVerifier
	Logger   *slog.Logger
}

// NewSession authenticates requests for one principal class. On success the
// verified principal is attached to the request; on failure the request ends
// with 401 and the next handler never runs.
func NewSession(cfg SessionConfig) fiber.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("principal_class", cfg.Class.String()))

	return func(c *fiber.Ctx) error {
		token, err := cfg.Locator(c)
		if err != nil {
			log.DebugContext(c.UserContext(), "session rejected", slog.String("reason", "missing"))
			return response.Error(c, log, err)
		}

		principal, err := cfg.Verifier.Verify(token, cfg.Class)
		if err != nil {
			log.DebugContext(c.UserContext(), "session rejected",
				slog.String("reason", service.TokenFailureReason(err)),
				slog.Any("error", err),
			)
			return response.Error(c, log, unauthenticated(err))
		}

		c.Locals(principalKey{}, principal)
		c.SetUserContext(WithPrincipal(c.UserContext(), principal))
		return c.Next()
	}
}

// unauthenticated keeps token failures as they are and turns anything else
// the verifier returns into a plain 401.
func unauthenticated(err error) error {
	if autherror.StatusCode(err) == fiber.StatusUnauthorized {
		return err
	}
	return autherror.ErrUnauthenticated
}

// PrincipalFrom returns the principal attached by NewSession.
func PrincipalFrom(c *fiber.Ctx) (domain.Principal, bool) {
	p, ok := c.Locals(principalKey{}).(domain.Principal)
	return p, ok
}

func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

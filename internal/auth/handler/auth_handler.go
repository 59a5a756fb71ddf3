package handler

import (
	"log/slog"
	"strings"
	"time"

	"github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/course-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/course-service/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/AnthoniusHendriyanto/course-service/internal/response"
	"github.com/AnthoniusHendriyanto/course-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

type Options struct {
	// CookieName is the session cookie set on login and cleared on logout.
	CookieName string
	// AcceptBearer lets logout treat an Authorization header as a session.
	AcceptBearer  bool
	SecureCookies bool
	Logger        *slog.Logger
}

// AccountHandler serves signup, login and logout for one principal class.
type AccountHandler struct {
	accounts *service.AccountService
	opts     Options
	log      *slog.Logger
}

func NewAccountHandler(accounts *service.AccountService, opts Options) *AccountHandler {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &AccountHandler{
		accounts: accounts,
		opts:     opts,
		log:      log.With(slog.String("principal_class", accounts.Class().String())),
	}
}

func (h *AccountHandler) class() domain.PrincipalClass {
	return h.accounts.Class()
}

func (h *AccountHandler) Signup(c *fiber.Ctx) error {
	var input dto.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid input",
		})
	}

	account, err := h.accounts.Signup(c.UserContext(), input)
	if err != nil {
		return response.Error(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":          true,
		"message":          "Account created successfully",
		h.class().String(): dto.NewAccountOutput(account),
	})
}

func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid input",
		})
	}

	out, err := h.accounts.Login(c.UserContext(), input)
	if err != nil {
		return response.Error(c, h.log, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.opts.CookieName,
		Value:    out.Token,
		Expires:  out.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":          true,
		"message":          "Logged in successfully",
		h.class().String(): out.Account,
		"token":            out.Token,
		"token_type":       out.TokenType,
		"expires_at":       out.ExpiresAt,
	})
}

// Logout clears the session cookie. Tokens are not tracked server side, so
// there is nothing else to revoke.
func (h *AccountHandler) Logout(c *fiber.Ctx) error {
	if !h.hasSession(c) {
		return response.Error(c, h.log, autherror.ErrNotLoggedIn)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.opts.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *AccountHandler) hasSession(c *fiber.Ctx) bool {
	if c.Cookies(h.opts.CookieName) != "" {
		return true
	}
	return h.opts.AcceptBearer && strings.HasPrefix(c.Get(fiber.HeaderAuthorization), constant.DefaultTokenType+" ")
}

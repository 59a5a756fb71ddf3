package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the account endpoints under /<class>, e.g.
// /api/v1/admin/login when router is the /api/v1 group.
func RegisterRoutes(router fiber.Router, h *AccountHandler) {
	accounts := router.Group("/" + h.class().String())
	accounts.Post("/signup", h.Signup)
	accounts.Post("/login", h.Login)
	accounts.Post("/logout", h.Logout)
}

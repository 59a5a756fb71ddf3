package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the course catalog and purchase endpoints on router
// (the /api/v1 group). adminSession and userSession guard the protected ones.
func RegisterRoutes(router fiber.Router, h *CourseHandler, adminSession, userSession fiber.Handler) {
	course := router.Group("/course")
	course.Post("/create", adminSession, h.Create)
	course.Put("/update/:id", adminSession, h.Update)
	course.Delete("/delete/:id", adminSession, h.Delete)
	course.Get("/courses", h.List)
	course.Post("/buy/:id", userSession, h.Buy)
	// Registered last so it does not shadow /courses.
	course.Get("/:id", h.Get)

	router.Get("/user/purchases", userSession, h.Purchases)
}

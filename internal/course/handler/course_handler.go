package handler

import (
	"log/slog"

	"github.com/AnthoniusHendriyanto/course-service/internal/auth/middleware"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/domain"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/dto"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/service"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/AnthoniusHendriyanto/course-service/internal/response"
	"github.com/AnthoniusHendriyanto/course-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

type CourseHandler struct {
	courses *service.CourseService
	ledger  *service.PurchaseLedger
	log     *slog.Logger
}

func NewCourseHandler(courses *service.CourseService, ledger *service.PurchaseLedger, log *slog.Logger) *CourseHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CourseHandler{courses: courses, ledger: ledger, log: log}
}

func (h *CourseHandler) Create(c *fiber.Ctx) error {
	admin, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Error(c, h.log, autherror.ErrUnauthenticated)
	}

	var input dto.CreateCourseInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}

	image, closeImage, err := imageFromRequest(c)
	if err != nil {
		return response.Error(c, h.log, err)
	}
	defer closeImage()

	course, err := h.courses.Create(c.UserContext(), admin, input, image)
	if err != nil {
		return response.Error(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Course created successfully",
		"course":  dto.NewCourseOutput(course),
	})
}

func (h *CourseHandler) Update(c *fiber.Ctx) error {
	admin, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Error(c, h.log, autherror.ErrUnauthenticated)
	}

	var input dto.UpdateCourseInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return invalidInput(c)
		}
	}

	image, closeImage, err := imageFromRequest(c)
	if err != nil {
		return response.Error(c, h.log, err)
	}
	defer closeImage()

	course, err := h.courses.Update(c.UserContext(), admin, c.Params("id"), input, image)
	if err != nil {
		return response.Error(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Course updated successfully",
		"course":  dto.NewCourseOutput(course),
	})
}

func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	admin, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Error(c, h.log, autherror.ErrUnauthenticated)
	}

	if err := h.courses.Delete(c.UserContext(), admin, c.Params("id")); err != nil {
		return response.Error(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Course deleted successfully",
	})
}

func (h *CourseHandler) List(c *fiber.Ctx) error {
	courses, err := h.courses.List(c.UserContext())
	if err != nil {
		return response.Error(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"courses": dto.NewCourseOutputs(courses),
	})
}

func (h *CourseHandler) Get(c *fiber.Ctx) error {
	course, err := h.courses.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.Error(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"course": dto.NewCourseOutput(course),
	})
}

func (h *CourseHandler) Buy(c *fiber.Ctx) error {
	user, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Error(c, h.log, autherror.ErrUnauthenticated)
	}

	purchase, err := h.ledger.Purchase(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return response.Error(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"message":  "Course purchased successfully",
		"purchase": dto.NewPurchaseOutput(purchase),
	})
}

func (h *CourseHandler) Purchases(c *fiber.Ctx) error {
	user, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Error(c, h.log, autherror.ErrUnauthenticated)
	}

	items, err := h.ledger.ListPurchases(c.UserContext(), user)
	if err != nil {
		return response.Error(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewPurchasesOutput(items))
}

func invalidInput(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "invalid input",
	})
}

// imageFromRequest opens the optional image part of a multipart request.
// It returns a nil upload when the request carries no image.
func imageFromRequest(c *fiber.Ctx) (*domain.ImageUpload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(constant.ImageFormField)
	if err != nil {
		return nil, noop, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}

	return &domain.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

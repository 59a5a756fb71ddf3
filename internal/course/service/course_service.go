package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	authdomain "github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/domain"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/dto"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/AnthoniusHendriyanto/course-service/internal/validation"
	"github.com/google/uuid"
)

type CourseService struct {
	courses      domain.CourseRepository
	images       domain.ImageStore
	guard        *OwnershipGuard
	maxImageSize int64
	log          *slog.Logger
	now          func() time.Time
}

func NewCourseService(courses domain.CourseRepository, images domain.ImageStore, maxImageSize int64, log *slog.Logger) *CourseService {
	if log == nil {
		log = slog.Default()
	}
	return &CourseService{
		courses:      courses,
		images:       images,
		guard:        NewOwnershipGuard(courses),
		maxImageSize: maxImageSize,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create stores the image and then the course owned by admin. image is
// required.
func (s *CourseService) Create(ctx context.Context, admin authdomain.Principal, input dto.CreateCourseInput, image *domain.ImageUpload) (*domain.Course, error) {
	if !admin.IsAdmin() {
		return nil, autherror.ErrUnauthenticated
	}

	input.Normalize()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, autherror.ErrMissingImage
	}

	stored, err := s.storeImage(ctx, *image)
	if err != nil {
		return nil, err
	}

	now := s.now()
	course := &domain.Course{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Image:       *stored,
		CreatorID:   admin.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		s.log.WarnContext(ctx, "course insert failed after image upload",
			slog.String("image_public_id", stored.PublicID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return course, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	if !validID(id) {
		return nil, autherror.ErrCourseNotFound
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, autherror.ErrCourseNotFound
	}
	return course, nil
}

func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	return s.courses.List(ctx)
}

// Update applies a partial update to a course the admin owns. The current
// image is kept unless a new one is given. Ownership is settled before any
// upload happens.
func (s *CourseService) Update(ctx context.Context, admin authdomain.Principal, id string, input dto.UpdateCourseInput, image *domain.ImageUpload) (*domain.Course, error) {
	course, err := s.guard.Authorize(ctx, admin, id)
	if err != nil {
		return nil, err
	}

	input.Normalize()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	input.Apply(course)

	if image != nil {
		stored, err := s.storeImage(ctx, *image)
		if err != nil {
			return nil, err
		}
		course.Image = *stored
	}

	course.UpdatedAt = s.now()
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course the admin owns. Courses with purchases stay.
func (s *CourseService) Delete(ctx context.Context, admin authdomain.Principal, id string) error {
	if _, err := s.guard.Authorize(ctx, admin, id); err != nil {
		return err
	}
	return s.courses.Delete(ctx, id, admin.ID)
}

func (s *CourseService) storeImage(ctx context.Context, upload domain.ImageUpload) (*domain.Image, error) {
	prepared, err := readImage(upload, s.maxImageSize)
	if err != nil {
		return nil, err
	}

	stored, err := s.images.Upload(ctx, prepared)
	if err != nil {
		if errors.Is(err, autherror.ErrUpstream) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", autherror.ErrUpstream, err)
	}
	return stored, nil
}

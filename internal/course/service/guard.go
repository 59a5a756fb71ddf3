package service

import (
	"context"

	authdomain "github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/domain"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/google/uuid"
)

// OwnershipGuard lets an admin act on a course only if they created it. A
// course owned by someone else is reported exactly like a missing one.
type OwnershipGuard struct {
	courses domain.CourseRepository
}

func NewOwnershipGuard(courses domain.CourseRepository) *OwnershipGuard {
	return &OwnershipGuard{courses: courses}
}

// Authorize returns the course when principal owns it and
// errors.ErrNotFoundOrForbidden otherwise.
func (g *OwnershipGuard) Authorize(ctx context.Context, principal authdomain.Principal, courseID string) (*domain.Course, error) {
	if !principal.IsAdmin() || !validID(courseID) {
		return nil, autherror.ErrNotFoundOrForbidden
	}

	course, err := g.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil || !course.OwnedBy(principal.ID) {
		return nil, autherror.ErrNotFoundOrForbidden
	}
	return course, nil
}

// validID filters path ids that cannot name a row before they reach the
// uuid columns.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

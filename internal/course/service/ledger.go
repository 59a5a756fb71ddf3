package service

import (
	"context"
	"time"

	authdomain "github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/domain"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/google/uuid"
)

// PurchaseLedger records which users own which courses. A (user, course)
// pair is granted at most once; the store's unique constraint decides races.
type PurchaseLedger struct {
	courses   domain.CourseRepository
	purchases domain.PurchaseRepository
	now       func() time.Time
}

func NewPurchaseLedger(courses domain.CourseRepository, purchases domain.PurchaseRepository) *PurchaseLedger {
	return &PurchaseLedger{
		courses:   courses,
		purchases: purchases,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Purchase grants courseID to user. It fails with ErrCourseNotFound when the
// course does not exist and ErrAlreadyPurchased when the grant already
// exists, leaving the ledger unchanged in both cases.
func (l *PurchaseLedger) Purchase(ctx context.Context, user authdomain.Principal, courseID string) (*domain.Purchase, error) {
	if !user.IsUser() || user.ID == "" {
		return nil, autherror.ErrUnauthenticated
	}
	if !validID(courseID) {
		return nil, autherror.ErrCourseNotFound
	}

	course, err := l.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, autherror.ErrCourseNotFound
	}

	// Fast path only. Two requests can both get past this check; the insert
	// below is what settles it.
	exists, err := l.purchases.Exists(ctx, user.ID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, autherror.ErrAlreadyPurchased
	}

	purchase := &domain.Purchase{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CourseID:  courseID,
		CreatedAt: l.now(),
	}
	if err := l.purchases.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// ListPurchases returns every grant the user holds with its course, oldest
// first. It has no side effects.
func (l *PurchaseLedger) ListPurchases(ctx context.Context, user authdomain.Principal) ([]domain.PurchasedCourse, error) {
	if !user.IsUser() || user.ID == "" {
		return nil, autherror.ErrUnauthenticated
	}
	return l.purchases.ListByUser(ctx, user.ID)
}

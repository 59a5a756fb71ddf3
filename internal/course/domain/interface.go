package domain

//go:generate mockgen -destination=../../mocks/mock_course_repository.go -package=mocks github.com/AnthoniusHendriyanto/course-service/internal/course/domain CourseRepository,PurchaseRepository,ImageStore

import "context"

// CourseRepository is the course catalog. GetByID returns (nil, nil) when
// the course does not exist. Update and Delete only touch rows created by
// the given admin and return errors.ErrNotFoundOrForbidden otherwise.
type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id string) (*Course, error)
	List(ctx context.Context) ([]Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id, creatorID string) error
}

// PurchaseRepository is the purchase ledger's store. Create relies on the
// store's (user_id, course_id) unique constraint and returns
// errors.ErrAlreadyPurchased when it is violated.
type PurchaseRepository interface {
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	Create(ctx context.Context, purchase *Purchase) error
	ListByUser(ctx context.Context, userID string) ([]PurchasedCourse, error)
}

// ImageStore persists course images outside the database.
type ImageStore interface {
	Upload(ctx context.Context, upload ImageUpload) (*Image, error)
}

package postgres

import (
	"context"

	"github.com/AnthoniusHendriyanto/course-service/db"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/domain"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
)

const (
	purchaseUserFKey   = "purchases_user_id_fkey"
	purchaseCourseFKey = "purchases_course_id_fkey"
)

type PurchaseRepository struct {
	db db.DBTX
}

func NewPurchaseRepository(db db.DBTX) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM purchases WHERE user_id = $1 AND course_id = $2
		)
	`, userID, courseID).Scan(&exists)
	return exists, err
}

// Create inserts the grant in a single statement. The unique constraint on
// (user_id, course_id) decides concurrent purchases of the same course.
func (r *PurchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO purchases (id, user_id, course_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, p.ID, p.UserID, p.CourseID, p.CreatedAt)
	if err == nil {
		return nil
	}

	// Ids are random, so the only unique index an insert can hit is
	// purchases_user_course_key.
	if _, ok := db.UniqueViolation(err); ok {
		return autherror.ErrAlreadyPurchased
	}
	if constraint, ok := db.ForeignKeyViolation(err); ok {
		switch constraint {
		case purchaseUserFKey:
			return autherror.ErrPrincipalNotFound
		case purchaseCourseFKey:
			return autherror.ErrCourseNotFound
		}
	}
	return err
}

// ListByUser returns the user's grants with their courses in the order they
// were inserted.
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID string) ([]domain.PurchasedCourse, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.user_id, p.course_id, p.created_at,
			c.id, c.title, c.description, c.price, c.image_public_id, c.image_url, c.creator_id, c.created_at, c.updated_at
		FROM purchases p
		JOIN courses c ON c.id = p.course_id
		WHERE p.user_id = $1
		ORDER BY p.seq;
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.PurchasedCourse{}
	for rows.Next() {
		var item domain.PurchasedCourse
		p, c := &item.Purchase, &item.Course
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.CourseID, &p.CreatedAt,
			&c.ID, &c.Title, &c.Description, &c.Price, &c.Image.PublicID, &c.Image.URL, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

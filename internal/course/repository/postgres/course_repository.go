package postgres

import (
	"context"
	"errors"

	"github.com/AnthoniusHendriyanto/course-service/db"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/domain"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/jackc/pgx/v5"
)

const courseColumns = `id, title, description, price, image_public_id, image_url, creator_id, created_at, updated_at`

type CourseRepository struct {
	db db.DBTX
}

func NewCourseRepository(db db.DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO courses (`+courseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.ID, c.Title, c.Description, c.Price, c.Image.PublicID, c.Image.URL, c.CreatorID, c.CreatedAt, c.UpdatedAt)
	if _, ok := db.ForeignKeyViolation(err); ok {
		// The admin in the token no longer exists.
		return autherror.ErrPrincipalNotFound
	}
	return err
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		WHERE id = $1;
	`, id)

	c, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		ORDER BY created_at, id;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []domain.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// Update writes every mutable field. The creator_id predicate makes the
// ownership check part of the write.
func (r *CourseRepository) Update(ctx context.Context, c *domain.Course) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET title = $3, description = $4, price = $5, image_public_id = $6, image_url = $7, updated_at = $8
		WHERE id = $1 AND creator_id = $2
	`, c.ID, c.CreatorID, c.Title, c.Description, c.Price, c.Image.PublicID, c.Image.URL, c.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrNotFoundOrForbidden
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id, creatorID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM courses
		WHERE id = $1 AND creator_id = $2
	`, id, creatorID)
	if err != nil {
		if _, ok := db.ForeignKeyViolation(err); ok {
			return autherror.ErrCourseHasPurchases
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrNotFoundOrForbidden
	}
	return nil
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var c domain.Course
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.Image.PublicID, &c.Image.URL, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

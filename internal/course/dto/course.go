package dto

import (
	"strings"
	"time"

	"github.com/AnthoniusHendriyanto/course-service/internal/course/domain"
)

// CreateCourseInput arrives as multipart form fields next to the image file.
type CreateCourseInput struct {
	Title       string  `form:"title" json:"title" validate:"required"`
	Description string  `form:"description" json:"description" validate:"required"`
	Price       float64 `form:"price" json:"price" validate:"required,gt=0"`
}

func (in *CreateCourseInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
}

// UpdateCourseInput is a partial update. Nil fields keep their current value.
type UpdateCourseInput struct {
	Title       *string  `form:"title" json:"title" validate:"omitnil,min=1"`
	Description *string  `form:"description" json:"description" validate:"omitnil,min=1"`
	Price       *float64 `form:"price" json:"price" validate:"omitnil,gt=0"`
}

func (in *UpdateCourseInput) Normalize() {
	if in.Title != nil {
		v := strings.TrimSpace(*in.Title)
		in.Title = &v
	}
	if in.Description != nil {
		v := strings.TrimSpace(*in.Description)
		in.Description = &v
	}
}

// Apply copies the set fields onto c.
func (in UpdateCourseInput) Apply(c *domain.Course) {
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
}

type ImageOutput struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type CourseOutput struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Image       ImageOutput `json:"image"`
	CreatorID   string      `json:"creatorId"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func NewCourseOutput(c *domain.Course) CourseOutput {
	return CourseOutput{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		Image:       ImageOutput{PublicID: c.Image.PublicID, URL: c.Image.URL},
		CreatorID:   c.CreatorID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCourseOutputs(courses []domain.Course) []CourseOutput {
	out := make([]CourseOutput, 0, len(courses))
	for i := range courses {
		out = append(out, NewCourseOutput(&courses[i]))
	}
	return out
}

package dto

import (
	"time"

	"github.com/AnthoniusHendriyanto/course-service/internal/course/domain"
)

type PurchaseOutput struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CourseID  string    `json:"courseId"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewPurchaseOutput(p *domain.Purchase) PurchaseOutput {
	return PurchaseOutput{
		ID:        p.ID,
		UserID:    p.UserID,
		CourseID:  p.CourseID,
		CreatedAt: p.CreatedAt,
	}
}

// PurchasesOutput lists a user's grants and the matching courses, both in
// purchase order.
type PurchasesOutput struct {
	Purchased []PurchaseOutput `json:"purchased"`
	Courses   []CourseOutput   `json:"courses"`
}

func NewPurchasesOutput(items []domain.PurchasedCourse) PurchasesOutput {
	out := PurchasesOutput{
		Purchased: make([]PurchaseOutput, 0, len(items)),
		Courses:   make([]CourseOutput, 0, len(items)),
	}
	for i := range items {
		out.Purchased = append(out.Purchased, NewPurchaseOutput(&items[i].Purchase))
		out.Courses = append(out.Courses, NewCourseOutput(&items[i].Course))
	}
	return out
}

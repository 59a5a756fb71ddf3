package dto

import (
	"time"

	"github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
)

// AccountOutput is an account without its password hash.
type AccountOutput struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewAccountOutput(a *domain.Account) AccountOutput {
	return AccountOutput{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

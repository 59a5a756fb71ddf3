package domain

import (
	"io"
	"time"
)

// Image is a stored course image: a stable id in the image store and the URL
// clients load it from.
type Image struct {
	PublicID string
	URL      string
}

type Course struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Image       Image
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether adminID created the course.
func (c *Course) OwnedBy(adminID string) bool {
	return c != nil && adminID != "" && c.CreatorID == adminID
}

// Purchase is a grant linking one user to one course. At most one exists per
// (UserID, CourseID).
type Purchase struct {
	ID        string
	UserID    string
	CourseID  string
	CreatedAt time.Time
}

// PurchasedCourse is a grant joined with its course.
type PurchasedCourse struct {
	Purchase Purchase
	Course   Course
}

// ImageUpload is an image payload on its way to the image store.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

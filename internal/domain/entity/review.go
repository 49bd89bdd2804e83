package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating plus text a customer leaves for a business user.
// At most one review exists per (business user, reviewer) pair; the
// database carries the authoritative unique constraint.
type Review struct {
	ID             uuid.UUID
	BusinessUserID uuid.UUID
	ReviewerID     uuid.UUID
	Rating         int
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidRating reports whether the rating lies within [MinRating, MaxRating].
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// CanMutate reports whether the caller may update or delete this review.
// Only the original reviewer may.
func (r *Review) CanMutate(callerID uuid.UUID) bool {
	return r.ReviewerID == callerID
}

package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for review persistence.
var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("review already exists for this business user and reviewer")
)

// ReviewOrdering enumerates the supported list orderings.
type ReviewOrdering string

const (
	ReviewOrderUpdatedAtDesc ReviewOrdering = "-updated_at"
	ReviewOrderUpdatedAtAsc  ReviewOrdering = "updated_at"
	ReviewOrderRatingDesc    ReviewOrdering = "-rating"
	ReviewOrderRatingAsc     ReviewOrdering = "rating"
)

// ReviewFilter captures the query parameters of the review listing.
type ReviewFilter struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
	Ordering       ReviewOrdering
}

// ReviewRepository defines persistence operations for reviews. The reviews
// table carries a unique (business_user_id, reviewer_id) constraint; Create
// surfaces a violation as ErrDuplicateReview.
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// ExistsForPair reports whether the reviewer already reviewed the business user.
	ExistsForPair(ctx context.Context, businessUserID, reviewerID uuid.UUID) (bool, error)

	Create(ctx context.Context, review *entity.Review) error

	Update(ctx context.Context, review *entity.Review) error

	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, filter ReviewFilter) ([]*entity.Review, error)

	// Count counts all reviews on the platform.
	Count(ctx context.Context) (int64, error)

	// AverageRating returns the mean rating across all reviews, 0 when none exist.
	AverageRating(ctx context.Context) (float64, error)
}

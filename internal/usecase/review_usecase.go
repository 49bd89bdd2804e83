package usecase

import (
	"context"
	"time"

	"coderr/internal/domain/repository"

	"github.com/google/uuid"
)

// ReviewUsecase defines review creation, mutation, and listing operations.
type ReviewUsecase interface {
	// CreateReview creates a review of a business user. Only customer-type
	// callers may review, never themselves, and at most once per target.
	CreateReview(ctx context.Context, callerID uuid.UUID, input *CreateReviewInput) (*ReviewOutput, error)

	ListReviews(ctx context.Context, input *ListReviewsInput) ([]*ReviewOutput, error)

	GetReview(ctx context.Context, id uuid.UUID) (*ReviewOutput, error)

	// UpdateReview edits rating and/or description. Reviewer only; the
	// payload must contain no other keys and at least one of the two.
	UpdateReview(ctx context.Context, callerID, reviewID uuid.UUID, input *UpdateReviewInput) (*ReviewOutput, error)

	// DeleteReview removes a review. Reviewer only.
	DeleteReview(ctx context.Context, callerID, reviewID uuid.UUID) error
}

// --- Input DTOs ---

// CreateReviewInput defines the payload for creating a review.
type CreateReviewInput struct {
	BusinessUser uuid.UUID `json:"business_user" validate:"required"`
	Rating       int       `json:"rating" validate:"required,min=1,max=5"`
	Description  string    `json:"description"`
}

// UpdateReviewInput carries the editable fields plus any unexpected keys
// found in the raw payload.
type UpdateReviewInput struct {
	Rating      Field[int]    `json:"rating"`
	Description Field[string] `json:"description"`
	ExtraFields []string      `json:"-"`
}

// ListReviewsInput mirrors the listing query parameters.
type ListReviewsInput struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
	Ordering       string
}

// --- Output DTOs ---

// ReviewOutput is the full review representation.
type ReviewOutput struct {
	ID           uuid.UUID `json:"id"`
	BusinessUser uuid.UUID `json:"business_user"`
	Reviewer     uuid.UUID `json:"reviewer"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReviewOrderingFromString maps a query value onto a repository ordering,
// defaulting to newest-updated first.
func ReviewOrderingFromString(s string) repository.ReviewOrdering {
	switch repository.ReviewOrdering(s) {
	case repository.ReviewOrderUpdatedAtAsc,
		repository.ReviewOrderUpdatedAtDesc,
		repository.ReviewOrderRatingAsc,
		repository.ReviewOrderRatingDesc:
		return repository.ReviewOrdering(s)
	}

	return repository.ReviewOrderUpdatedAtDesc
}

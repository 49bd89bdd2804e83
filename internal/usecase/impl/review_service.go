package impl

import (
	"context"
	"log/slog"
	"strings"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager  repository.TransactionManager
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ReviewRepo repository.ReviewRepository
	UserRepo   repository.UserRepository
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		reviewRepo: params.ReviewRepo,
		userRepo:   params.UserRepo,
		logger:     params.Logger,
	}
}

// CreateReview records a customer's rating of a business user. One review
// per (business user, reviewer) pair; the database constraint backs the
// application-level check against races.
func (srv *reviewService) CreateReview(ctx context.Context, callerID uuid.UUID, input *usecase.CreateReviewInput) (*usecase.ReviewOutput, error) {
	srv.logger.Info("Creating review", "userID", callerID, "businessUser", input.BusinessUser)

	if !entity.ValidRating(input.Rating) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5"), "review creation rejected")
	}
	if input.BusinessUser == callerID {
		return nil, errors.Wrap(domainerrors.ErrSelfReview, "review creation rejected")
	}

	var created *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		reviewRepo := repoFactory.ReviewRepo()

		caller, err := userRepo.FindByID(ctx, callerID)
		if err != nil {
			return errors.Wrap(err, "failed to find caller")
		}
		if !caller.IsCustomer() {
			return errors.Wrap(domainerrors.ErrForbidden, "only customer users may create reviews")
		}

		target, err := userRepo.FindByID(ctx, input.BusinessUser)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotBusinessProfile, "reviewed user does not exist")
			}

			return errors.Wrap(err, "failed to find reviewed user")
		}
		if !target.IsBusiness() {
			return errors.Wrap(domainerrors.ErrNotBusinessProfile, "review creation rejected")
		}

		reviewed, err := reviewRepo.ExistsForPair(ctx, input.BusinessUser, callerID)
		if err != nil {
			return errors.Wrap(err, "failed to check for existing review")
		}
		if reviewed {
			return errors.Wrap(domainerrors.ErrAlreadyReviewed, "review creation rejected")
		}

		review := &entity.Review{
			BusinessUserID: input.BusinessUser,
			ReviewerID:     callerID,
			Rating:         input.Rating,
			Description:    input.Description,
		}

		if err := reviewRepo.Create(ctx, review); err != nil {
			if errors.Is(err, repository.ErrDuplicateReview) {
				return errors.Wrap(domainerrors.ErrAlreadyReviewed, "review creation rejected")
			}

			return errors.Wrap(err, "failed to create review")
		}
		created = review

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to create review", "userID", callerID, "error", err)

		return nil, errors.Wrap(err, "failed to execute review creation transaction")
	}

	srv.logger.Debug("Review created", "reviewID", created.ID)

	return toReviewOutput(created), nil
}

// ListReviews returns reviews matching the filter, with the requested ordering.
func (srv *reviewService) ListReviews(ctx context.Context, input *usecase.ListReviewsInput) ([]*usecase.ReviewOutput, error) {
	reviews, err := srv.reviewRepo.List(ctx, repository.ReviewFilter{
		BusinessUserID: input.BusinessUserID,
		ReviewerID:     input.ReviewerID,
		Ordering:       usecase.ReviewOrderingFromString(input.Ordering),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	outputs := make([]*usecase.ReviewOutput, 0, len(reviews))
	for _, review := range reviews {
		outputs = append(outputs, toReviewOutput(review))
	}

	return outputs, nil
}

// GetReview retrieves a single review.
func (srv *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*usecase.ReviewOutput, error) {
	review, err := srv.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, errors.Wrap(domainerrors.ErrReviewNotFound, "failed to get review")
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return toReviewOutput(review), nil
}

// UpdateReview edits a review's rating and/or description. Any other key in
// the payload rejects the whole request.
func (srv *reviewService) UpdateReview(ctx context.Context, callerID, reviewID uuid.UUID, input *usecase.UpdateReviewInput) (*usecase.ReviewOutput, error) {
	srv.logger.Info("Updating review", "reviewID", reviewID, "userID", callerID)

	if len(input.ExtraFields) > 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("only 'rating' and 'description' may be updated; unexpected fields: "+strings.Join(input.ExtraFields, ", ")), "review update rejected")
	}
	if !input.Rating.Present && !input.Description.Present {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("nothing to update"), "review update rejected")
	}
	if input.Rating.Set() && !entity.ValidRating(input.Rating.Value) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5"), "review update rejected")
	}

	var updated *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		review, err := reviewRepo.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return errors.Wrap(domainerrors.ErrReviewNotFound, "failed to update review")
			}

			return errors.Wrap(err, "failed to find review")
		}

		if !review.CanMutate(callerID) {
			return errors.Wrap(domainerrors.ErrForbidden, "review belongs to another user")
		}

		if input.Rating.Set() {
			review.Rating = input.Rating.Value
		}
		if input.Description.Present {
			review.Description = stringValue(input.Description)
		}

		if err := reviewRepo.Update(ctx, review); err != nil {
			return errors.Wrap(err, "failed to update review")
		}
		updated = review

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to update review", "reviewID", reviewID, "error", err)

		return nil, errors.Wrap(err, "failed to execute review update transaction")
	}

	return toReviewOutput(updated), nil
}

// DeleteReview removes a review. Only the reviewer may.
func (srv *reviewService) DeleteReview(ctx context.Context, callerID, reviewID uuid.UUID) error {
	srv.logger.Info("Deleting review", "reviewID", reviewID, "userID", callerID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		review, err := reviewRepo.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return errors.Wrap(domainerrors.ErrReviewNotFound, "failed to delete review")
			}

			return errors.Wrap(err, "failed to find review")
		}

		if !review.CanMutate(callerID) {
			return errors.Wrap(domainerrors.ErrForbidden, "review belongs to another user")
		}

		if err := reviewRepo.Delete(ctx, reviewID); err != nil {
			return errors.Wrap(err, "failed to delete review")
		}

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to delete review", "reviewID", reviewID, "error", err)

		return errors.Wrap(err, "failed to execute review deletion transaction")
	}

	return nil
}

func toReviewOutput(review *entity.Review) *usecase.ReviewOutput {
	return &usecase.ReviewOutput{
		ID:           review.ID,
		BusinessUser: review.BusinessUserID,
		Reviewer:     review.ReviewerID,
		Rating:       review.Rating,
		Description:  review.Description,
		CreatedAt:    review.CreatedAt,
		UpdatedAt:    review.UpdatedAt,
	}
}

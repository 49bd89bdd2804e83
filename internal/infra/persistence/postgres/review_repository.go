package postgres

import (
	"context"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reviewRepository implements the domain.ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// FindByID retrieves a single review.
func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&reviewM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by id")
	}

	return reviewM.ToEntity(), nil
}

// ExistsForPair reports whether the reviewer already reviewed the business user.
func (repo *reviewRepository) ExistsForPair(ctx context.Context, businessUserID, reviewerID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("business_user_id = ? AND reviewer_id = ?", businessUserID, reviewerID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to count reviews for pair")
	}

	return count > 0, nil
}

// Create persists a new review. The unique (business_user_id, reviewer_id)
// index surfaces as ErrDuplicateReview.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := model.ReviewModelFromEntity(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateReview
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid review party reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// Update persists rating and description changes.
func (repo *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	reviewM := model.ReviewModelFromEntity(review)

	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{ID: reviewM.ID}).
		Select("Rating", "Description").
		Updates(reviewM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update review")
	}

	return nil
}

// Delete removes a review.
func (repo *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ReviewModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// List returns reviews matching the filter with the requested ordering.
func (repo *reviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]*entity.Review, error) {
	query := repo.db.WithContext(ctx).Model(&model.ReviewModel{})

	if filter.BusinessUserID != nil {
		query = query.Where("business_user_id = ?", *filter.BusinessUserID)
	}
	if filter.ReviewerID != nil {
		query = query.Where("reviewer_id = ?", *filter.ReviewerID)
	}

	switch filter.Ordering {
	case repository.ReviewOrderUpdatedAtAsc:
		query = query.Order("updated_at ASC")
	case repository.ReviewOrderRatingAsc:
		query = query.Order("rating ASC")
	case repository.ReviewOrderRatingDesc:
		query = query.Order("rating DESC")
	default:
		query = query.Order("updated_at DESC")
	}

	var reviewMs []*model.ReviewModel
	if err := query.Find(&reviewMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(reviewMs))
	for _, reviewM := range reviewMs {
		reviews = append(reviews, reviewM.ToEntity())
	}

	return reviews, nil
}

// Count counts all reviews on the platform.
func (repo *reviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ReviewModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count reviews")
	}

	return count, nil
}

// AverageRating returns the mean rating across all reviews, 0 when none exist.
func (repo *reviewRepository) AverageRating(ctx context.Context) (float64, error) {
	var average *float64
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Select("AVG(rating)").
		Scan(&average).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to compute average rating")
	}
	if average == nil {
		return 0, nil
	}

	return *average, nil
}

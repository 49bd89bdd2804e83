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

// offerRepository implements the domain.OfferRepository interface using GORM.
type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository is the constructor for offerRepository.
func NewOfferRepository(db *gorm.DB) repository.OfferRepository {
	return &offerRepository{db: db}
}

// FindByID retrieves an offer with all detail rows preloaded.
func (repo *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offerM model.OfferModel
	err := repo.db.WithContext(ctx).
		Preload("Details").
		Where("id = ?", id).
		First(&offerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer by id")
	}

	return offerM.ToEntity(), nil
}

// FindDetailByID retrieves a single detail row.
func (repo *offerRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error) {
	var detailM model.OfferDetailModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&detailM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferDetailNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer detail by id")
	}

	return detailM.ToEntity(), nil
}

// Create persists the offer header and bulk-inserts its details.
func (repo *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	offerM := model.OfferModelFromEntity(offer)

	if err := repo.db.WithContext(ctx).Create(offerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateTiers.WrapMessage("duplicate offer type within offer")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid offer owner reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create offer")
	}

	offer.ID = offerM.ID
	offer.CreatedAt = offerM.CreatedAt
	offer.UpdatedAt = offerM.UpdatedAt
	for i, detailM := range offerM.Details {
		offer.Details[i].ID = detailM.ID
		offer.Details[i].OfferID = detailM.OfferID
	}

	return nil
}

// UpdateHeader persists the offer's own scalar fields.
func (repo *offerRepository) UpdateHeader(ctx context.Context, offer *entity.Offer) error {
	offerM := model.OfferModelFromEntity(offer)

	err := repo.db.WithContext(ctx).
		Model(&model.OfferModel{ID: offerM.ID}).
		Select("Title", "Image", "Description").
		Updates(offerM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update offer")
	}

	return nil
}

// UpdateDetail persists a single detail row in place.
func (repo *offerRepository) UpdateDetail(ctx context.Context, detail *entity.OfferDetail) error {
	detailM := model.OfferDetailModelFromEntity(detail)

	err := repo.db.WithContext(ctx).
		Model(&model.OfferDetailModel{ID: detailM.ID}).
		Select("Title", "Revisions", "Price", "DeliveryTime", "Features", "Tier").
		Updates(detailM).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateTiers.WrapMessage("duplicate offer type within offer")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update offer detail")
	}

	return nil
}

// Delete removes the offer; the details follow by cascade.
func (repo *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.OfferModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete offer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	return nil
}

// List returns one page of offers matching the filter plus the total count.
// Min-price and min-delivery filters and orderings go through a grouped
// subquery over the detail rows.
func (repo *offerRepository) List(ctx context.Context, filter repository.OfferFilter) ([]*entity.Offer, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OfferModel{})

	if filter.CreatorID != nil {
		query = query.Where("offers.user_id = ?", *filter.CreatorID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("offers.title ILIKE ? OR offers.description ILIKE ?", pattern, pattern)
	}

	needsAggregates := filter.MinPrice != nil || filter.MaxDeliveryTime != nil ||
		filter.Ordering == repository.OfferOrderMinPriceAsc || filter.Ordering == repository.OfferOrderMinPriceDesc
	if needsAggregates {
		query = query.Joins(
			"JOIN (SELECT offer_id, MIN(price) AS min_price, MIN(delivery_time) AS min_delivery_time FROM offer_details GROUP BY offer_id) agg ON agg.offer_id = offers.id",
		)
		if filter.MinPrice != nil {
			query = query.Where("agg.min_price >= ?", *filter.MinPrice)
		}
		if filter.MaxDeliveryTime != nil {
			query = query.Where("agg.min_delivery_time <= ?", *filter.MaxDeliveryTime)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count offers")
	}

	switch filter.Ordering {
	case repository.OfferOrderUpdatedAtAsc:
		query = query.Order("offers.updated_at ASC")
	case repository.OfferOrderMinPriceAsc:
		query = query.Order("agg.min_price ASC")
	case repository.OfferOrderMinPriceDesc:
		query = query.Order("agg.min_price DESC")
	default:
		query = query.Order("offers.updated_at DESC")
	}

	var offerMs []*model.OfferModel
	err := query.
		Preload("Details").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&offerMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list offers")
	}

	offers := make([]*entity.Offer, 0, len(offerMs))
	for _, offerM := range offerMs {
		offers = append(offers, offerM.ToEntity())
	}

	return offers, total, nil
}

// Count counts all offers on the platform.
func (repo *offerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.OfferModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count offers")
	}

	return count, nil
}

package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain-specific errors for offer lookups.
var (
	ErrOfferNotFound       = errors.New("offer not found")
	ErrOfferDetailNotFound = errors.New("offer detail not found")
)

// OfferOrdering enumerates the supported list orderings.
type OfferOrdering string

const (
	OfferOrderUpdatedAtDesc OfferOrdering = "-updated_at"
	OfferOrderUpdatedAtAsc  OfferOrdering = "updated_at"
	OfferOrderMinPriceAsc   OfferOrdering = "min_price"
	OfferOrderMinPriceDesc  OfferOrdering = "-min_price"
)

// OfferFilter captures the query parameters of the offer listing.
type OfferFilter struct {
	CreatorID       *uuid.UUID
	MinPrice        *decimal.Decimal // Offers whose min detail price >= this.
	MaxDeliveryTime *int             // Offers whose min delivery time <= this.
	Search          string           // Substring match over title and description.
	Ordering        OfferOrdering
	Page            int
	PageSize        int
}

// OfferRepository defines persistence operations for the offer aggregate.
// Details are always loaded and stored together with their offer.
type OfferRepository interface {
	// FindByID retrieves an offer with all detail rows preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)

	// FindDetailByID retrieves a single detail row.
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error)

	// Create persists the offer header and bulk-inserts its details.
	Create(ctx context.Context, offer *entity.Offer) error

	// UpdateHeader persists the offer's own scalar fields.
	UpdateHeader(ctx context.Context, offer *entity.Offer) error

	// UpdateDetail persists a single detail row in place.
	UpdateDetail(ctx context.Context, detail *entity.OfferDetail) error

	// Delete removes the offer and, by cascade, its details.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of offers matching the filter plus the total count.
	List(ctx context.Context, filter OfferFilter) ([]*entity.Offer, int64, error)

	// Count counts all offers on the platform.
	Count(ctx context.Context) (int64, error)
}

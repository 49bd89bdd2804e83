package usecase

import (
	"context"
	"time"

	"coderr/internal/domain/repository"

	"github.com/google/uuid"
)

// OfferUsecase defines the offer aggregate operations.
type OfferUsecase interface {
	// CreateOffer creates an offer with its nested details in one
	// transaction. Only business-type callers may create offers.
	CreateOffer(ctx context.Context, callerID uuid.UUID, input *CreateOfferInput) (*OfferNestedOutput, error)

	// ListOffers returns one annotated, paginated page of offers.
	ListOffers(ctx context.Context, input *ListOffersInput) (*OfferPageOutput, error)

	GetOffer(ctx context.Context, id uuid.UUID) (*OfferRetrieveOutput, error)

	GetOfferDetail(ctx context.Context, id uuid.UUID) (*OfferDetailOutput, error)

	// UpdateOffer applies a partial update to the offer header and any
	// addressed details, atomically. Only the owner may update.
	UpdateOffer(ctx context.Context, callerID, offerID uuid.UUID, input *UpdateOfferInput) (*OfferNestedOutput, error)

	// DeleteOffer removes the offer and its details. Only the owner may delete.
	DeleteOffer(ctx context.Context, callerID, offerID uuid.UUID) error
}

// --- Input DTOs ---

// OfferDetailInput is one tier row of an offer creation payload.
type OfferDetailInput struct {
	Title              string   `json:"title" validate:"required"`
	Revisions          int      `json:"revisions" validate:"min=0"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days" validate:"min=0"`
	Price              float64  `json:"price" validate:"min=0"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type" validate:"required,oneof=basic standard premium"`
}

// CreateOfferInput defines the payload for creating an offer.
// Image carries a base64 payload; absent, "" and "null" all mean no image.
type CreateOfferInput struct {
	Title       string             `json:"title" validate:"required"`
	Image       Field[string]      `json:"image"`
	Description string             `json:"description"`
	Details     []OfferDetailInput `json:"details" validate:"required"`
}

// UpdateOfferDetailInput addresses one existing detail, by id or by tier,
// and patches only the fields present in the entry.
type UpdateOfferDetailInput struct {
	ID                 *uuid.UUID      `json:"id"`
	OfferType          *string         `json:"offer_type"`
	Title              Field[string]   `json:"title"`
	Revisions          Field[int]      `json:"revisions"`
	DeliveryTimeInDays Field[int]      `json:"delivery_time_in_days"`
	Price              Field[float64]  `json:"price"`
	Features           Field[[]string] `json:"features"`
}

// UpdateOfferInput defines a partial update of an offer and its details.
type UpdateOfferInput struct {
	Title       Field[string]            `json:"title"`
	Description Field[string]            `json:"description"`
	Image       Field[string]            `json:"image"`
	Details     []UpdateOfferDetailInput `json:"details"`
}

// ListOffersInput mirrors the listing query parameters.
type ListOffersInput struct {
	CreatorID       *uuid.UUID
	MinPrice        *float64
	MaxDeliveryTime *int
	Search          string
	Ordering        string
	Page            int
	PageSize        int
}

// --- Output DTOs ---

// OfferDetailOutput is the full representation of one detail row.
type OfferDetailOutput struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              float64   `json:"price"`
	Features           []string  `json:"features"`
	OfferType          string    `json:"offer_type"`
}

// OfferNestedOutput is returned by create and update: the offer with every
// detail fully expanded.
type OfferNestedOutput struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Image       *string              `json:"image"`
	Description string               `json:"description"`
	Details     []*OfferDetailOutput `json:"details"`
}

// OfferDetailRef is the link-only representation used in listings.
type OfferDetailRef struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

// OfferUserDetails is the embedded creator summary in listings.
type OfferUserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// OfferListOutput is one row of the paginated offer listing.
type OfferListOutput struct {
	ID              uuid.UUID         `json:"id"`
	User            uuid.UUID         `json:"user"`
	Title           string            `json:"title"`
	Image           *string           `json:"image"`
	Description     string            `json:"description"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Details         []OfferDetailRef  `json:"details"`
	MinPrice        float64           `json:"min_price"`
	MinDeliveryTime int               `json:"min_delivery_time"`
	UserDetails     *OfferUserDetails `json:"user_details"`
}

// OfferRetrieveOutput is the single-offer representation.
type OfferRetrieveOutput struct {
	ID              uuid.UUID        `json:"id"`
	User            uuid.UUID        `json:"user"`
	Title           string           `json:"title"`
	Image           *string          `json:"image"`
	Description     string           `json:"description"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Details         []OfferDetailRef `json:"details"`
	MinPrice        float64          `json:"min_price"`
	MinDeliveryTime int              `json:"min_delivery_time"`
}

// OfferPageOutput is one page of the offer listing.
type OfferPageOutput struct {
	Count    int64              `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []*OfferListOutput `json:"results"`
}

// OfferOrderingFromString maps a query value onto a repository ordering,
// defaulting to newest-updated first.
func OfferOrderingFromString(s string) repository.OfferOrdering {
	switch repository.OfferOrdering(s) {
	case repository.OfferOrderUpdatedAtAsc,
		repository.OfferOrderUpdatedAtDesc,
		repository.OfferOrderMinPriceAsc,
		repository.OfferOrderMinPriceDesc:
		return repository.OfferOrdering(s)
	}

	return repository.OfferOrderUpdatedAtDesc
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tier is one of the pricing variants an offer is sold under. The wire name
// is "offer_type" for compatibility with existing clients.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Valid reports whether the tier is one of the known values.
func (t Tier) Valid() bool {
	switch t {
	case TierBasic, TierStandard, TierPremium:
		return true
	}

	return false
}

// MinOfferDetails is the minimum number of detail rows an offer must carry.
const MinOfferDetails = 3

// Offer is the aggregate root a business user publishes. It owns its detail
// rows; details are created with the offer and never deleted independently.
type Offer struct {
	ID          uuid.UUID
	UserID      uuid.UUID // Owning business user.
	Title       string
	Image       string // Stored image reference, empty when none.
	Description string
	Details     []*OfferDetail
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OfferDetail is one tier row of an offer.
type OfferDetail struct {
	ID           uuid.UUID
	OfferID      uuid.UUID
	Title        string
	Revisions    int
	Price        decimal.Decimal
	DeliveryTime int // Delivery time in days.
	Features     []string
	Tier         Tier
}

// CanMutate reports whether the caller may update or delete this offer.
func (o *Offer) CanMutate(callerID uuid.UUID) bool {
	return o.UserID == callerID
}

// MinPrice returns the lowest price across the offer's details.
// Recomputed on read, never stored.
func (o *Offer) MinPrice() decimal.Decimal {
	var minPrice decimal.Decimal
	for i, d := range o.Details {
		if i == 0 || d.Price.LessThan(minPrice) {
			minPrice = d.Price
		}
	}

	return minPrice
}

// MinDeliveryTime returns the shortest delivery time in days across the
// offer's details, or 0 when the offer has no details.
func (o *Offer) MinDeliveryTime() int {
	minDays := 0
	for i, d := range o.Details {
		if i == 0 || d.DeliveryTime < minDays {
			minDays = d.DeliveryTime
		}
	}

	return minDays
}

// DetailByID returns the detail with the given id, or nil.
func (o *Offer) DetailByID(id uuid.UUID) *OfferDetail {
	for _, d := range o.Details {
		if d.ID == id {
			return d
		}
	}

	return nil
}

// DetailsByTier returns all details carrying the given tier.
func (o *Offer) DetailsByTier(tier Tier) []*OfferDetail {
	var matches []*OfferDetail
	for _, d := range o.Details {
		if d.Tier == tier {
			matches = append(matches, d)
		}
	}

	return matches
}

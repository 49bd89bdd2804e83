package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOffer() *Offer {
	offerID := uuid.New()

	return &Offer{
		ID:     offerID,
		UserID: uuid.New(),
		Details: []*OfferDetail{
			{ID: uuid.New(), OfferID: offerID, Price: decimal.NewFromInt(30), DeliveryTime: 10, Tier: TierPremium},
			{ID: uuid.New(), OfferID: offerID, Price: decimal.NewFromInt(10), DeliveryTime: 5, Tier: TierBasic},
			{ID: uuid.New(), OfferID: offerID, Price: decimal.NewFromInt(20), DeliveryTime: 7, Tier: TierStandard},
		},
	}
}

func TestOffer_MinPrice(t *testing.T) {
	offer := testOffer()

	assert.True(t, offer.MinPrice().Equal(decimal.NewFromInt(10)))
}

func TestOffer_MinDeliveryTime(t *testing.T) {
	offer := testOffer()

	assert.Equal(t, 5, offer.MinDeliveryTime())

	empty := &Offer{}
	assert.Equal(t, 0, empty.MinDeliveryTime())
}

func TestOffer_DetailByID(t *testing.T) {
	offer := testOffer()

	require.NotNil(t, offer.DetailByID(offer.Details[1].ID))
	assert.Nil(t, offer.DetailByID(uuid.New()))
}

func TestOffer_DetailsByTier(t *testing.T) {
	offer := testOffer()

	matches := offer.DetailsByTier(TierBasic)
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Price.Equal(decimal.NewFromInt(10)))

	offer.Details = append(offer.Details, &OfferDetail{Tier: TierBasic})
	assert.Len(t, offer.DetailsByTier(TierBasic), 2)
}

func TestOffer_CanMutate(t *testing.T) {
	offer := testOffer()

	assert.True(t, offer.CanMutate(offer.UserID))
	assert.False(t, offer.CanMutate(uuid.New()))
}

func TestTier_Valid(t *testing.T) {
	assert.True(t, TierBasic.Valid())
	assert.True(t, TierStandard.Valid())
	assert.True(t, TierPremium.Valid())
	assert.False(t, Tier("gold").Valid())
}

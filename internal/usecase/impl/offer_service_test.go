package impl

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	mockRepo "coderr/internal/mocks/repository"
	mockService "coderr/internal/mocks/service"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type offerServiceFixtures struct {
	txManager    *mockRepo.MockTransactionManager
	offerRepo    *mockRepo.MockOfferRepository
	userRepo     *mockRepo.MockUserRepository
	imageStorage *mockService.MockImageStorage
}

func createTestOfferService(t *testing.T) (usecase.OfferUsecase, offerServiceFixtures) {
	t.Helper()

	fixtures := offerServiceFixtures{
		txManager:    mockRepo.NewMockTransactionManager(t),
		offerRepo:    mockRepo.NewMockOfferRepository(t),
		userRepo:     mockRepo.NewMockUserRepository(t),
		imageStorage: mockService.NewMockImageStorage(t),
	}

	svc := NewOfferService(OfferServiceParams{
		TxManager:    fixtures.txManager,
		OfferRepo:    fixtures.offerRepo,
		UserRepo:     fixtures.userRepo,
		ImageStorage: fixtures.imageStorage,
		Logger:       newDiscardLogger(),
	})

	return svc, fixtures
}

func threeTierInput() []usecase.OfferDetailInput {
	return []usecase.OfferDetailInput{
		{Title: "Basic Design", Revisions: 1, DeliveryTimeInDays: 5, Price: 100, Features: []string{"Logo"}, OfferType: "basic"},
		{Title: "Standard Design", Revisions: 3, DeliveryTimeInDays: 7, Price: 200, Features: []string{"Logo", "Flyer"}, OfferType: "standard"},
		{Title: "Premium Design", Revisions: 5, DeliveryTimeInDays: 10, Price: 500, Features: []string{"Logo", "Flyer", "Website"}, OfferType: "premium"},
	}
}

func storedOffer(ownerID uuid.UUID) *entity.Offer {
	offerID := uuid.New()

	return &entity.Offer{
		ID:     offerID,
		UserID: ownerID,
		Title:  "Graphic Design",
		Details: []*entity.OfferDetail{
			{ID: uuid.New(), OfferID: offerID, Title: "Basic Design", Revisions: 1, Price: decimal.NewFromInt(100), DeliveryTime: 5, Tier: entity.TierBasic},
			{ID: uuid.New(), OfferID: offerID, Title: "Standard Design", Revisions: 3, Price: decimal.NewFromInt(200), DeliveryTime: 7, Tier: entity.TierStandard},
			{ID: uuid.New(), OfferID: offerID, Title: "Premium Design", Revisions: 5, Price: decimal.NewFromInt(500), DeliveryTime: 10, Tier: entity.TierPremium},
		},
	}
}

func TestOfferService_CreateOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("creates offer with three distinct tiers", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		owner := businessUser()

		fixtures.userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)

		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("OfferRepo").Return(txOfferRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txOfferRepo.On("Create", ctx, mock.AnythingOfType("*entity.Offer")).
			Run(func(args mock.Arguments) {
				offer := args.Get(1).(*entity.Offer)
				require.Len(t, offer.Details, 3)
				assert.Equal(t, owner.ID, offer.UserID)
				offer.ID = uuid.New()
			}).
			Return(nil)

		output, err := svc.CreateOffer(ctx, owner.ID, &usecase.CreateOfferInput{
			Title:       "Graphic Design",
			Description: "Professional design package",
			Details:     threeTierInput(),
		})

		require.NoError(t, err)
		require.Len(t, output.Details, 3)
		assert.Equal(t, "Graphic Design", output.Title)
		assert.Nil(t, output.Image)
		assert.Equal(t, "basic", output.Details[0].OfferType)
		assert.InDelta(t, 100.0, output.Details[0].Price, 0.001)
	})

	t.Run("rejects callers without a business profile", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		customerID := uuid.New()
		customer := &entity.User{ID: customerID, Profile: &entity.Profile{UserID: customerID, Type: entity.ProfileTypeCustomer}}

		fixtures.userRepo.On("FindByID", ctx, customerID).Return(customer, nil)

		output, err := svc.CreateOffer(ctx, customerID, &usecase.CreateOfferInput{Title: "X", Details: threeTierInput()})

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})

	t.Run("rejects fewer than three details", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		owner := businessUser()

		fixtures.userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)

		output, err := svc.CreateOffer(ctx, owner.ID, &usecase.CreateOfferInput{
			Title:   "Too small",
			Details: threeTierInput()[:2],
		})

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrTooFewDetails))
	})

	t.Run("rejects duplicate tiers", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		owner := businessUser()

		fixtures.userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)

		details := threeTierInput()
		details[2].OfferType = "basic"

		output, err := svc.CreateOffer(ctx, owner.ID, &usecase.CreateOfferInput{Title: "Dup", Details: details})

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrDuplicateTiers))
	})
}

func TestOfferService_ListOffers(t *testing.T) {
	ctx := context.Background()

	t.Run("annotates rows and paginates", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		owner := businessUser()
		offer := storedOffer(owner.ID)

		fixtures.offerRepo.On("List", ctx, mock.MatchedBy(func(filter repository.OfferFilter) bool {
			return filter.Page == 1 && filter.PageSize == 6 && filter.Ordering == repository.OfferOrderUpdatedAtDesc
		})).Return([]*entity.Offer{offer}, int64(13), nil)
		fixtures.userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)

		output, err := svc.ListOffers(ctx, &usecase.ListOffersInput{})

		require.NoError(t, err)
		assert.Equal(t, int64(13), output.Count)
		require.NotNil(t, output.Next)
		assert.Equal(t, "/api/offers/?page=2&page_size=6", *output.Next)
		assert.Nil(t, output.Previous)
		require.Len(t, output.Results, 1)

		row := output.Results[0]
		assert.InDelta(t, 100.0, row.MinPrice, 0.001)
		assert.Equal(t, 5, row.MinDeliveryTime)
		require.Len(t, row.Details, 3)
		assert.Equal(t, "/api/offerdetails/"+offer.Details[0].ID.String()+"/", row.Details[0].URL)
		require.NotNil(t, row.UserDetails)
		assert.Equal(t, owner.Username, row.UserDetails.Username)
	})

	t.Run("caps the page size", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)

		fixtures.offerRepo.On("List", ctx, mock.MatchedBy(func(filter repository.OfferFilter) bool {
			return filter.PageSize == 100
		})).Return([]*entity.Offer{}, int64(0), nil)

		output, err := svc.ListOffers(ctx, &usecase.ListOffersInput{PageSize: 5000})

		require.NoError(t, err)
		assert.Empty(t, output.Results)
		assert.Nil(t, output.Next)
	})
}

func TestOfferService_GetOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("maps a missing offer to not found", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		unknownID := uuid.New()

		fixtures.offerRepo.On("FindByID", ctx, unknownID).Return(nil, repository.ErrOfferNotFound)

		output, err := svc.GetOffer(ctx, unknownID)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrOfferNotFound))
	})

	t.Run("computes min annotations from the detail rows", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		offer := storedOffer(uuid.New())

		fixtures.offerRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)

		output, err := svc.GetOffer(ctx, offer.ID)

		require.NoError(t, err)
		assert.InDelta(t, 100.0, output.MinPrice, 0.001)
		assert.Equal(t, 5, output.MinDeliveryTime)
	})
}

func TestOfferService_UpdateOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("patches header and detail addressed by offer type", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		owner := businessUser()
		offer := storedOffer(owner.ID)

		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("OfferRepo").Return(txOfferRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)
		txOfferRepo.On("UpdateDetail", ctx, offer.Details[0]).Return(nil)
		txOfferRepo.On("UpdateHeader", ctx, offer).Return(nil)

		offerType := "basic"
		input := &usecase.UpdateOfferInput{
			Title: usecase.Field[string]{Present: true, Value: "Renamed Design"},
			Details: []usecase.UpdateOfferDetailInput{
				{
					OfferType: &offerType,
					Price:     usecase.Field[float64]{Present: true, Value: 150},
					Revisions: usecase.Field[int]{Present: true, Value: 2},
				},
			},
		}

		output, err := svc.UpdateOffer(ctx, owner.ID, offer.ID, input)

		require.NoError(t, err)
		assert.Equal(t, "Renamed Design", output.Title)
		assert.InDelta(t, 150.0, output.Details[0].Price, 0.001)
		assert.Equal(t, 2, output.Details[0].Revisions)
	})

	t.Run("rejects a detail id belonging to another offer", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		owner := businessUser()
		offer := storedOffer(owner.ID)

		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("OfferRepo").Return(txOfferRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)

		foreignID := uuid.New()
		input := &usecase.UpdateOfferInput{
			Details: []usecase.UpdateOfferDetailInput{{ID: &foreignID}},
		}

		output, err := svc.UpdateOffer(ctx, owner.ID, offer.ID, input)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrDetailNotInOffer))
	})

	t.Run("rejects a tier not present on the offer", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		owner := businessUser()
		offer := storedOffer(owner.ID)
		offer.Details = offer.Details[:2] // basic and standard only

		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("OfferRepo").Return(txOfferRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)

		offerType := "premium"
		input := &usecase.UpdateOfferInput{
			Details: []usecase.UpdateOfferDetailInput{{OfferType: &offerType}},
		}

		output, err := svc.UpdateOffer(ctx, owner.ID, offer.ID, input)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrNoDetailWithTier))
	})

	t.Run("rejects edits by non-owners", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		offer := storedOffer(uuid.New())
		strangerID := uuid.New()

		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("OfferRepo").Return(txOfferRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)

		input := &usecase.UpdateOfferInput{
			Title: usecase.Field[string]{Present: true, Value: "Hijacked"},
		}

		output, err := svc.UpdateOffer(ctx, strangerID, offer.ID, input)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})

	t.Run("rejects a tier change that collides with another detail", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		owner := businessUser()
		offer := storedOffer(owner.ID)

		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("OfferRepo").Return(txOfferRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)

		basicID := offer.Details[0].ID
		offerType := "standard"
		input := &usecase.UpdateOfferInput{
			Details: []usecase.UpdateOfferDetailInput{{ID: &basicID, OfferType: &offerType}},
		}

		output, err := svc.UpdateOffer(ctx, owner.ID, offer.ID, input)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrDuplicateTiers))
	})

	t.Run("rejects an invalid tier on a detail addressed by id", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		owner := businessUser()
		offer := storedOffer(owner.ID)

		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("OfferRepo").Return(txOfferRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)

		basicID := offer.Details[0].ID
		offerType := "gold"
		input := &usecase.UpdateOfferInput{
			Details: []usecase.UpdateOfferDetailInput{
				{
					ID:        &basicID,
					OfferType: &offerType,
					Price:     usecase.Field[float64]{Present: true, Value: 150},
				},
			},
		}

		output, err := svc.UpdateOffer(ctx, owner.ID, offer.ID, input)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		assert.Equal(t, entity.TierBasic, offer.Details[0].Tier)
	})

	t.Run("rejects a tier address matching more than one detail", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		owner := businessUser()
		offer := storedOffer(owner.ID)
		offer.Details = append(offer.Details, &entity.OfferDetail{
			ID: uuid.New(), OfferID: offer.ID, Title: "Legacy Basic", Revisions: 1,
			Price: decimal.NewFromInt(80), DeliveryTime: 4, Tier: entity.TierBasic,
		})

		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("OfferRepo").Return(txOfferRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)

		offerType := "basic"
		input := &usecase.UpdateOfferInput{
			Details: []usecase.UpdateOfferDetailInput{
				{
					OfferType: &offerType,
					Price:     usecase.Field[float64]{Present: true, Value: 150},
				},
			},
		}

		output, err := svc.UpdateOffer(ctx, owner.ID, offer.ID, input)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrAmbiguousTier))
	})

	t.Run("untangles duplicated tiers when addressed by id", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		owner := businessUser()
		offer := storedOffer(owner.ID)
		offer.Details = offer.Details[:2] // basic and standard only
		legacy := &entity.OfferDetail{
			ID: uuid.New(), OfferID: offer.ID, Title: "Legacy Standard", Revisions: 2,
			Price: decimal.NewFromInt(180), DeliveryTime: 6, Tier: entity.TierStandard,
		}
		offer.Details = append(offer.Details, legacy)

		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("OfferRepo").Return(txOfferRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)
		txOfferRepo.On("UpdateDetail", ctx, legacy).Return(nil)
		txOfferRepo.On("UpdateHeader", ctx, offer).Return(nil)

		legacyID := legacy.ID
		offerType := "premium"
		input := &usecase.UpdateOfferInput{
			Details: []usecase.UpdateOfferDetailInput{
				{ID: &legacyID, OfferType: &offerType, Price: usecase.Field[float64]{Present: true, Value: 220}},
			},
		}

		output, err := svc.UpdateOffer(ctx, owner.ID, offer.ID, input)

		require.NoError(t, err)
		require.NotNil(t, output)
		assert.Equal(t, entity.TierPremium, legacy.Tier)
	})
}

func TestOfferService_DeleteOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the caller's own offer", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		owner := businessUser()
		offer := storedOffer(owner.ID)

		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("OfferRepo").Return(txOfferRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)
		txOfferRepo.On("Delete", ctx, offer.ID).Return(nil)

		err := svc.DeleteOffer(ctx, owner.ID, offer.ID)

		require.NoError(t, err)
	})

	t.Run("rejects deletion by non-owners", func(t *testing.T) {
		svc, fixtures := createTestOfferService(t)
		offer := storedOffer(uuid.New())
		strangerID := uuid.New()

		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("OfferRepo").Return(txOfferRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)

		err := svc.DeleteOffer(ctx, strangerID, offer.ID)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})
}

package impl

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	mockRepo "coderr/internal/mocks/repository"
	"coderr/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInfoService(t *testing.T) (usecase.InfoUsecase, *mockRepo.MockUserRepository, *mockRepo.MockOfferRepository, *mockRepo.MockReviewRepository) {
	t.Helper()

	userRepo := mockRepo.NewMockUserRepository(t)
	offerRepo := mockRepo.NewMockOfferRepository(t)
	reviewRepo := mockRepo.NewMockReviewRepository(t)

	svc := NewInfoService(InfoServiceParams{
		UserRepo:   userRepo,
		OfferRepo:  offerRepo,
		ReviewRepo: reviewRepo,
		Logger:     newDiscardLogger(),
	})

	return svc, userRepo, offerRepo, reviewRepo
}

func TestInfoService_BaseInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates counts and rounds the average to one decimal", func(t *testing.T) {
		svc, userRepo, offerRepo, reviewRepo := createTestInfoService(t)

		reviewRepo.On("Count", ctx).Return(int64(12), nil)
		reviewRepo.On("AverageRating", ctx).Return(4.25, nil)
		userRepo.On("CountProfilesByType", ctx, entity.ProfileTypeBusiness).Return(int64(5), nil)
		offerRepo.On("Count", ctx).Return(int64(20), nil)

		output, err := svc.BaseInfo(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(12), output.ReviewCount)
		assert.InDelta(t, 4.3, output.AverageRating, 0.001)
		assert.Equal(t, int64(5), output.BusinessProfileCount)
		assert.Equal(t, int64(20), output.OfferCount)
	})

	t.Run("reports zeros on an empty platform", func(t *testing.T) {
		svc, userRepo, offerRepo, reviewRepo := createTestInfoService(t)

		reviewRepo.On("Count", ctx).Return(int64(0), nil)
		reviewRepo.On("AverageRating", ctx).Return(0.0, nil)
		userRepo.On("CountProfilesByType", ctx, entity.ProfileTypeBusiness).Return(int64(0), nil)
		offerRepo.On("Count", ctx).Return(int64(0), nil)

		output, err := svc.BaseInfo(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(0), output.ReviewCount)
		assert.Zero(t, output.AverageRating)
	})
}

package impl

import (
	"context"
	"testing"
	"time"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	mockRepo "coderr/internal/mocks/repository"
	mockService "coderr/internal/mocks/service"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileServiceFixtures struct {
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	imageStorage *mockService.MockImageStorage
}

func createTestProfileService(t *testing.T) (usecase.ProfileUsecase, profileServiceFixtures) {
	t.Helper()

	fixtures := profileServiceFixtures{
		txManager:    mockRepo.NewMockTransactionManager(t),
		userRepo:     mockRepo.NewMockUserRepository(t),
		imageStorage: mockService.NewMockImageStorage(t),
	}

	svc := NewProfileService(fixtures.txManager, fixtures.userRepo, fixtures.imageStorage, newDiscardLogger())

	return svc, fixtures
}

func businessUser() *entity.User {
	userID := uuid.New()

	return &entity.User{
		ID:        userID,
		Username:  "exampleBusiness",
		Email:     "business@mail.de",
		FirstName: "Max",
		LastName:  "Mustermann",
		Profile: &entity.Profile{
			UserID:       userID,
			Type:         entity.ProfileTypeBusiness,
			Location:     "Berlin",
			Tel:          "123456789",
			Description:  "Business description",
			WorkingHours: "9-17",
		},
	}
}

func TestProfileService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns merged user and profile fields", func(t *testing.T) {
		svc, fixtures := createTestProfileService(t)
		user := businessUser()

		fixtures.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		fixtures.imageStorage.On("URL", "").Return("")

		output, err := svc.GetProfile(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, user.ID, output.User)
		assert.Equal(t, user.Username, output.Username)
		assert.Equal(t, "business", output.Type)
		assert.Equal(t, "Berlin", output.Location)
		assert.Equal(t, "", output.File)
	})

	t.Run("maps missing user to not found", func(t *testing.T) {
		svc, fixtures := createTestProfileService(t)
		unknownID := uuid.New()

		fixtures.userRepo.On("FindByID", ctx, unknownID).Return(nil, repository.ErrUserNotFound)

		output, err := svc.GetProfile(ctx, unknownID)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("patches present fields and clears explicit nulls", func(t *testing.T) {
		svc, fixtures := createTestProfileService(t)
		user := businessUser()

		txUserRepo := mockRepo.NewMockUserRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		txUserRepo.On("Update", ctx, user).Return(nil)
		fixtures.imageStorage.On("URL", "").Return("")

		input := &usecase.UpdateProfileInput{
			FirstName:   usecase.Field[string]{Present: true, Value: "Maxi"},
			Location:    usecase.Field[string]{Present: true, Value: "Hamburg"},
			Description: usecase.Field[string]{Present: true, Null: true},
		}

		output, err := svc.UpdateProfile(ctx, user.ID, user.ID, input)

		require.NoError(t, err)
		assert.Equal(t, "Maxi", output.FirstName)
		assert.Equal(t, "Mustermann", output.LastName)
		assert.Equal(t, "Hamburg", output.Location)
		assert.Equal(t, "", output.Description)
	})

	t.Run("stores a new image when file is present", func(t *testing.T) {
		svc, fixtures := createTestProfileService(t)
		user := businessUser()

		txUserRepo := mockRepo.NewMockUserRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		fixtures.imageStorage.On("Store", ctx, "base64-payload", "profile").Return("profile/abc.jpg", nil)
		txUserRepo.On("Update", ctx, user).Return(nil)
		fixtures.imageStorage.On("URL", "profile/abc.jpg").Return("/media/profile/abc.jpg")

		input := &usecase.UpdateProfileInput{
			File: usecase.Field[string]{Present: true, Value: "base64-payload"},
		}

		output, err := svc.UpdateProfile(ctx, user.ID, user.ID, input)

		require.NoError(t, err)
		assert.Equal(t, "/media/profile/abc.jpg", output.File)
	})

	t.Run("rejects edits to another user's profile", func(t *testing.T) {
		svc, fixtures := createTestProfileService(t)
		user := businessUser()
		strangerID := uuid.New()

		txUserRepo := mockRepo.NewMockUserRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		input := &usecase.UpdateProfileInput{
			FirstName: usecase.Field[string]{Present: true, Value: "Maxi"},
		}

		output, err := svc.UpdateProfile(ctx, strangerID, user.ID, input)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})

	t.Run("rejects an email already registered to someone else", func(t *testing.T) {
		svc, fixtures := createTestProfileService(t)
		user := businessUser()

		txUserRepo := mockRepo.NewMockUserRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		txUserRepo.On("ExistsByEmail", ctx, "taken@mail.de", user.ID).Return(true, nil)

		input := &usecase.UpdateProfileInput{
			Email: usecase.Field[string]{Present: true, Value: "taken@mail.de"},
		}

		output, err := svc.UpdateProfile(ctx, user.ID, user.ID, input)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
	})
}

func TestProfileService_ListProfiles(t *testing.T) {
	ctx := context.Background()

	t.Run("lists business profiles with their public shape", func(t *testing.T) {
		svc, fixtures := createTestProfileService(t)
		user := businessUser()

		fixtures.userRepo.On("ListProfilesByType", ctx, entity.ProfileTypeBusiness).Return([]*entity.User{user}, nil)
		fixtures.imageStorage.On("URL", "").Return("")

		outputs, err := svc.ListBusinessProfiles(ctx)

		require.NoError(t, err)
		require.Len(t, outputs, 1)
		assert.Equal(t, user.ID, outputs[0].User)
		assert.Equal(t, "business", outputs[0].Type)
		assert.Equal(t, "9-17", outputs[0].WorkingHours)
	})

	t.Run("lists customer profiles with upload timestamp", func(t *testing.T) {
		svc, fixtures := createTestProfileService(t)
		uploadedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		userID := uuid.New()
		user := &entity.User{
			ID:       userID,
			Username: "exampleCustomer",
			Profile: &entity.Profile{
				UserID:    userID,
				Type:      entity.ProfileTypeCustomer,
				File:      "profile/c.jpg",
				UpdatedAt: uploadedAt,
			},
		}

		fixtures.userRepo.On("ListProfilesByType", ctx, entity.ProfileTypeCustomer).Return([]*entity.User{user}, nil)
		fixtures.imageStorage.On("URL", "profile/c.jpg").Return("/media/profile/c.jpg")

		outputs, err := svc.ListCustomerProfiles(ctx)

		require.NoError(t, err)
		require.Len(t, outputs, 1)
		assert.Equal(t, "customer", outputs[0].Type)
		assert.Equal(t, "/media/profile/c.jpg", outputs[0].File)
		assert.Equal(t, uploadedAt, outputs[0].UploadedAt)
	})
}

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceFixtures struct {
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func createTestUserService(t *testing.T) (usecase.UserUsecase, userServiceFixtures) {
	t.Helper()

	fixtures := userServiceFixtures{
		txManager:    mockRepo.NewMockTransactionManager(t),
		userRepo:     mockRepo.NewMockUserRepository(t),
		hasher:       mockService.NewMockPasswordHasher(t),
		tokenService: mockService.NewMockTokenService(t),
	}

	svc := NewUserService(UserServiceParams{
		TxManager:    fixtures.txManager,
		UserRepo:     fixtures.userRepo,
		Hasher:       fixtures.hasher,
		TokenService: fixtures.tokenService,
		Logger:       newDiscardLogger(),
	})

	return svc, fixtures
}

func registerInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username:         "exampleUsername",
		Email:            "example@mail.de",
		Password:         "examplePassword",
		RepeatedPassword: "examplePassword",
		Type:             "customer",
	}
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with profile and returns token", func(t *testing.T) {
		svc, fixtures := createTestUserService(t)
		input := registerInput()
		userID := uuid.New()

		txUserRepo := mockRepo.NewMockUserRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("ExistsByUsername", ctx, input.Username).Return(false, nil)
		txUserRepo.On("ExistsByEmail", ctx, input.Email, uuid.Nil).Return(false, nil)
		fixtures.hasher.On("Hash", input.Password).Return("hashed-password", nil)
		txUserRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*entity.User)
				require.NotNil(t, user.Profile)
				assert.Equal(t, entity.ProfileTypeCustomer, user.Profile.Type)
				assert.Equal(t, "hashed-password", user.PasswordHash)
				user.ID = userID
			}).
			Return(nil)
		fixtures.tokenService.On("GenerateToken", userID, []string{"customer"}, false).Return("access-token", nil)

		output, err := svc.Register(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "access-token", output.Token)
		assert.Equal(t, input.Username, output.Username)
		assert.Equal(t, input.Email, output.Email)
		assert.Equal(t, userID, output.UserID)
	})

	t.Run("rejects mismatched passwords before touching the database", func(t *testing.T) {
		svc, _ := createTestUserService(t)
		input := registerInput()
		input.RepeatedPassword = "somethingElse"

		output, err := svc.Register(ctx, input)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("rejects taken username", func(t *testing.T) {
		svc, fixtures := createTestUserService(t)
		input := registerInput()

		txUserRepo := mockRepo.NewMockUserRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("ExistsByUsername", ctx, input.Username).Return(true, nil)

		output, err := svc.Register(ctx, input)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
	})

	t.Run("rejects registered email", func(t *testing.T) {
		svc, fixtures := createTestUserService(t)
		input := registerInput()

		txUserRepo := mockRepo.NewMockUserRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("ExistsByUsername", ctx, input.Username).Return(false, nil)
		txUserRepo.On("ExistsByEmail", ctx, input.Email, uuid.Nil).Return(true, nil)

		output, err := svc.Register(ctx, input)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	storedUser := func() *entity.User {
		return &entity.User{
			ID:           uuid.New(),
			Username:     "exampleUsername",
			Email:        "example@mail.de",
			PasswordHash: "hashed-password",
			Profile:      &entity.Profile{Type: entity.ProfileTypeBusiness},
		}
	}

	t.Run("returns token for valid credentials", func(t *testing.T) {
		svc, fixtures := createTestUserService(t)
		user := storedUser()

		fixtures.userRepo.On("FindByUsername", ctx, user.Username).Return(user, nil)
		fixtures.hasher.On("Check", "examplePassword", user.PasswordHash).Return(true)
		fixtures.tokenService.On("GenerateToken", user.ID, []string{"business"}, false).Return("access-token", nil)

		output, err := svc.Login(ctx, &usecase.LoginInput{Username: user.Username, Password: "examplePassword"})

		require.NoError(t, err)
		assert.Equal(t, "access-token", output.Token)
		assert.Equal(t, user.ID, output.UserID)
	})

	t.Run("masks unknown username as invalid credentials", func(t *testing.T) {
		svc, fixtures := createTestUserService(t)

		fixtures.userRepo.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound)

		output, err := svc.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "examplePassword"})

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("masks wrong password as invalid credentials", func(t *testing.T) {
		svc, fixtures := createTestUserService(t)
		user := storedUser()

		fixtures.userRepo.On("FindByUsername", ctx, user.Username).Return(user, nil)
		fixtures.hasher.On("Check", "wrongPassword", user.PasswordHash).Return(false)

		output, err := svc.Login(ctx, &usecase.LoginInput{Username: user.Username, Password: "wrongPassword"})

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})
}

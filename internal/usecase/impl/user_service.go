// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account together with its profile and issues an
// access token. The profile type is fixed here and never changes afterwards.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username), slog.String("type", input.Type))

	if input.Password != input.RepeatedPassword {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("passwords do not match"), "registration failed")
	}

	profileType := entity.ProfileType(input.Type)
	if !profileType.Valid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("type must be 'customer' or 'business'"), "registration failed")
	}

	var registeredUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		taken, err := userRepo.ExistsByUsername(ctx, input.Username)
		if err != nil {
			return errors.Wrap(err, "failed to check username availability")
		}
		if taken {
			return domainerrors.ErrUsernameTaken.WrapMessage("registration failed")
		}

		registered, err := userRepo.ExistsByEmail(ctx, input.Email, uuid.Nil)
		if err != nil {
			return errors.Wrap(err, "failed to check email availability")
		}
		if registered {
			return domainerrors.ErrEmailTaken.WrapMessage("registration failed")
		}

		hashedPassword, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password during registration")
		}

		newUser := &entity.User{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: hashedPassword,
			Profile:      &entity.Profile{Type: profileType},
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}
		registeredUser = newUser

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	token, err := srv.tokenService.GenerateToken(registeredUser.ID, registeredUser.Roles().ToStrings(), registeredUser.IsStaff)
	if err != nil {
		srv.log(ctx).Error("Failed to generate token after registration", slog.Any("userID", registeredUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID), slog.String("type", input.Type))

	return &usecase.AuthOutput{
		Token:    token,
		Username: registeredUser.Username,
		Email:    registeredUser.Email,
		UserID:   registeredUser.ID,
	}, nil
}

// Login verifies the credentials and issues an access token.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("username", input.Username))

	// Single lookup, no transaction needed.
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	// bcrypt comparison is CPU-bound; kept outside any transaction.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Roles().ToStrings(), user.IsStaff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	}, nil
}

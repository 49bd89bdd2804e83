package impl

import (
	"context"
	"log/slog"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	imageStorage service.ImageStorage
	logger       *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	imageStorage service.ImageStorage,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager:    txManager,
		userRepo:     userRepo,
		imageStorage: imageStorage,
		logger:       logger,
	}
}

// GetProfile retrieves the merged user and profile view for one account.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.ProfileOutput, error) {
	srv.logger.Debug("Getting profile", "userID", userID)

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "failed to get profile")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return srv.toProfileOutput(user), nil
}

// UpdateProfile applies a partial update to the caller's own profile.
// Omitted keys never touch stored data; explicit nulls clear text fields.
func (srv *profileService) UpdateProfile(ctx context.Context, callerID, userID uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.ProfileOutput, error) {
	srv.logger.Info("Updating profile", "userID", userID)

	var updatedUser *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "failed to update profile")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if user.Profile == nil || !user.Profile.CanMutate(callerID) {
			return errors.Wrap(domainerrors.ErrForbidden, "profile belongs to another user")
		}

		if err := srv.applyUserFields(ctx, userRepo, user, input); err != nil {
			return err
		}
		srv.applyProfileFields(user.Profile, input)

		if input.File.Present {
			payload := ""
			if !input.File.Null {
				payload = input.File.Value
			}

			ref, err := srv.imageStorage.Store(ctx, payload, "profile")
			if err != nil {
				return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("invalid image payload"), "failed to store profile image")
			}
			user.Profile.File = ref
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}
		updatedUser = user

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to update profile", "userID", userID, "error", err)

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	return srv.toProfileOutput(updatedUser), nil
}

// applyUserFields patches the account-level fields, enforcing email uniqueness.
func (srv *profileService) applyUserFields(ctx context.Context, userRepo repository.UserRepository, user *entity.User, input *usecase.UpdateProfileInput) error {
	if input.FirstName.Present {
		user.FirstName = stringValue(input.FirstName)
	}
	if input.LastName.Present {
		user.LastName = stringValue(input.LastName)
	}

	if input.Email.Set() && input.Email.Value != user.Email {
		registered, err := userRepo.ExistsByEmail(ctx, input.Email.Value, user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to check email availability")
		}
		if registered {
			return domainerrors.ErrEmailTaken.WrapMessage("failed to update profile")
		}
		user.Email = input.Email.Value
	}

	return nil
}

func (srv *profileService) applyProfileFields(profile *entity.Profile, input *usecase.UpdateProfileInput) {
	if input.Location.Present {
		profile.Location = stringValue(input.Location)
	}
	if input.Tel.Present {
		profile.Tel = stringValue(input.Tel)
	}
	if input.Description.Present {
		profile.Description = stringValue(input.Description)
	}
	if input.WorkingHours.Present {
		profile.WorkingHours = stringValue(input.WorkingHours)
	}
}

// ListBusinessProfiles returns every business profile, ordered by username.
func (srv *profileService) ListBusinessProfiles(ctx context.Context) ([]*usecase.BusinessProfileOutput, error) {
	users, err := srv.userRepo.ListProfilesByType(ctx, entity.ProfileTypeBusiness)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list business profiles")
	}

	outputs := make([]*usecase.BusinessProfileOutput, 0, len(users))
	for _, user := range users {
		outputs = append(outputs, &usecase.BusinessProfileOutput{
			User:         user.ID,
			Username:     user.Username,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			File:         srv.imageStorage.URL(user.Profile.File),
			Location:     user.Profile.Location,
			Tel:          user.Profile.Tel,
			Description:  user.Profile.Description,
			WorkingHours: user.Profile.WorkingHours,
			Type:         string(user.Profile.Type),
		})
	}

	return outputs, nil
}

// ListCustomerProfiles returns every customer profile, ordered by username.
func (srv *profileService) ListCustomerProfiles(ctx context.Context) ([]*usecase.CustomerProfileOutput, error) {
	users, err := srv.userRepo.ListProfilesByType(ctx, entity.ProfileTypeCustomer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer profiles")
	}

	outputs := make([]*usecase.CustomerProfileOutput, 0, len(users))
	for _, user := range users {
		outputs = append(outputs, &usecase.CustomerProfileOutput{
			User:       user.ID,
			Username:   user.Username,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			File:       srv.imageStorage.URL(user.Profile.File),
			UploadedAt: user.Profile.UpdatedAt,
			Type:       string(user.Profile.Type),
		})
	}

	return outputs, nil
}

func (srv *profileService) toProfileOutput(user *entity.User) *usecase.ProfileOutput {
	return &usecase.ProfileOutput{
		User:         user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		File:         srv.imageStorage.URL(user.Profile.File),
		Location:     user.Profile.Location,
		Tel:          user.Profile.Tel,
		Description:  user.Profile.Description,
		WorkingHours: user.Profile.WorkingHours,
		Type:         string(user.Profile.Type),
		Email:        user.Email,
		CreatedAt:    user.CreatedAt,
	}
}

// stringValue resolves a tri-state string field to its stored form:
// explicit null clears to the empty string.
func stringValue(f usecase.Field[string]) string {
	if f.Null {
		return ""
	}

	return f.Value
}

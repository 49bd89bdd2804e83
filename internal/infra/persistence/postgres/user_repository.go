// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID with the profile preloaded.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return userM.ToEntity(), nil
}

// FindByUsername retrieves a single user by their login name with the profile preloaded.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Profile").
		Where("username = ?", username).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return userM.ToEntity(), nil
}

// ExistsByUsername reports whether the username is already taken.
func (repo *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to count users by username")
	}

	return count > 0, nil
}

// ExistsByEmail reports whether the email is registered, excluding the given
// user id. uuid.Nil excludes nothing.
func (repo *userRepository) ExistsByEmail(ctx context.Context, email string, excludeUserID uuid.UUID) (bool, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ?", email)
	if excludeUserID != uuid.Nil {
		query = query.Where("id <> ?", excludeUserID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to count users by email")
	}

	return count > 0, nil
}

// Create persists a new user entity together with its profile. GORM's
// association handling inserts the users and profiles rows in one statement batch.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := model.UserModelFromEntity(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUsernameTaken.WrapMessage("username or email already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Carry the generated ID and timestamps back onto the entity.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt
	if user.Profile != nil && userM.Profile != nil {
		user.Profile.UserID = userM.Profile.UserID
		user.Profile.CreatedAt = userM.Profile.CreatedAt
		user.Profile.UpdatedAt = userM.Profile.UpdatedAt
	}

	return nil
}

// Update modifies an existing user entity and its profile.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := model.UserModelFromEntity(user)

	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{ID: userM.ID}).
		Select("Username", "Email", "FirstName", "LastName").
		Updates(userM).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	if userM.Profile == nil {
		return nil
	}

	err = repo.db.WithContext(ctx).
		Model(&model.ProfileModel{UserID: userM.ID}).
		Select("File", "Location", "Tel", "Description", "WorkingHours").
		Updates(userM.Profile).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update profile")
	}

	return nil
}

// ListProfilesByType returns all users holding a profile of the given type,
// ordered by username.
func (repo *userRepository) ListProfilesByType(ctx context.Context, profileType entity.ProfileType) ([]*entity.User, error) {
	var userMs []*model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Profile").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.type = ?", string(profileType)).
		Order("users.username").
		Find(&userMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list profiles by type")
	}

	users := make([]*entity.User, 0, len(userMs))
	for _, userM := range userMs {
		users = append(users, userM.ToEntity())
	}

	return users, nil
}

// CountProfilesByType counts profiles of the given type.
func (repo *userRepository) CountProfilesByType(ctx context.Context, profileType entity.ProfileType) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("type = ?", string(profileType)).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count profiles by type")
	}

	return count, nil
}

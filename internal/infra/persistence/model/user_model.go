// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username     string    `gorm:"type:varchar(150);unique;not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	FirstName    string    `gorm:"type:varchar(150)"`
	LastName     string    `gorm:"type:varchar(150)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	IsStaff      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Profile *ProfileModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ProfileModel mirrors the 'profiles' table. Exactly one row per user; the
// type column never changes after creation.
type ProfileModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type         string    `gorm:"type:varchar(20);not null;index"`
	File         string    `gorm:"type:varchar(255)"`
	Location     string    `gorm:"type:varchar(255)"`
	Tel          string    `gorm:"type:varchar(50)"`
	Description  string    `gorm:"type:text"`
	WorkingHours string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToEntity maps the persistence model back to a pure domain entity.
func (m *UserModel) ToEntity() *entity.User {
	user := &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PasswordHash: m.PasswordHash,
		IsStaff:      m.IsStaff,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Profile != nil {
		user.Profile = &entity.Profile{
			UserID:       m.Profile.UserID,
			Type:         entity.ProfileType(m.Profile.Type),
			File:         m.Profile.File,
			Location:     m.Profile.Location,
			Tel:          m.Profile.Tel,
			Description:  m.Profile.Description,
			WorkingHours: m.Profile.WorkingHours,
			CreatedAt:    m.Profile.CreatedAt,
			UpdatedAt:    m.Profile.UpdatedAt,
		}
	}

	return user
}

// UserModelFromEntity maps a domain entity onto the persistence model.
func UserModelFromEntity(user *entity.User) *UserModel {
	m := &UserModel{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PasswordHash: user.PasswordHash,
		IsStaff:      user.IsStaff,
	}
	if user.Profile != nil {
		m.Profile = &ProfileModel{
			UserID:       user.Profile.UserID,
			Type:         string(user.Profile.Type),
			File:         user.Profile.File,
			Location:     user.Profile.Location,
			Tel:          user.Profile.Tel,
			Description:  user.Profile.Description,
			WorkingHours: user.Profile.WorkingHours,
		}
	}

	return m
}

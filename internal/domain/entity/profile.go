package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProfileType distinguishes the two mutually exclusive account roles.
type ProfileType string

const (
	ProfileTypeCustomer ProfileType = "customer"
	ProfileTypeBusiness ProfileType = "business"
)

// Valid reports whether the profile type is one of the known values.
func (t ProfileType) Valid() bool {
	return t == ProfileTypeCustomer || t == ProfileTypeBusiness
}

// Profile extends a User with marketplace-facing data. The type is fixed at
// registration and never changes afterwards.
type Profile struct {
	UserID       uuid.UUID
	Type         ProfileType
	File         string // Stored image reference, empty when no image was uploaded.
	Location     string
	Tel          string
	Description  string
	WorkingHours string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanMutate reports whether the caller may modify this profile.
// Only the owning user edits their own profile.
func (p *Profile) CanMutate(callerID uuid.UUID) bool {
	return p.UserID == callerID
}

// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. It carries the login identity shared by
// both profile types; marketplace behaviour hangs off the attached Profile.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsStaff      bool
	Profile      *Profile // Exactly one profile per user, created at registration.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsBusiness reports whether the user holds a business profile.
func (u *User) IsBusiness() bool {
	return u.Profile != nil && u.Profile.Type == ProfileTypeBusiness
}

// IsCustomer reports whether the user holds a customer profile.
func (u *User) IsCustomer() bool {
	return u.Profile != nil && u.Profile.Type == ProfileTypeCustomer
}

// Roles returns the role claims derived from the user's profile and staff flag.
func (u *User) Roles() Roles {
	var roles Roles
	if u.IsCustomer() {
		roles = append(roles, RoleCustomer)
	}
	if u.IsBusiness() {
		roles = append(roles, RoleBusiness)
	}
	if u.IsStaff {
		roles = append(roles, RoleStaff)
	}

	return roles
}

package usecase

import (
	"context"

	"github.com/google/uuid"
)

// UserUsecase defines the interface for registration and login operations.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
}

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Type selects the profile created alongside the user and is immutable
// afterwards.
type RegisterInput struct {
	Username         string `json:"username" validate:"required,max=150"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	RepeatedPassword string `json:"repeated_password" validate:"required,min=8"`
	Type             string `json:"type" validate:"required,oneof=customer business"`
}

// LoginInput defines the credentials for a login attempt.
type LoginInput struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,min=8"`
}

// --- Output DTOs ---

// AuthOutput is returned by both registration and login.
type AuthOutput struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	UserID   uuid.UUID `json:"user_id"`
}

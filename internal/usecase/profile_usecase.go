package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProfileUsecase defines profile retrieval and mutation operations.
// CallerID is always threaded in explicitly; there is no ambient user.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileOutput, error)
	UpdateProfile(ctx context.Context, callerID, userID uuid.UUID, input *UpdateProfileInput) (*ProfileOutput, error)
	ListBusinessProfiles(ctx context.Context) ([]*BusinessProfileOutput, error)
	ListCustomerProfiles(ctx context.Context) ([]*CustomerProfileOutput, error)
}

// --- Input DTOs ---

// UpdateProfileInput carries a partial profile update. Every field is a
// tri-state wrapper so an omitted key never clobbers stored data.
// File carries a base64 image payload; "" or "null" clears the image.
type UpdateProfileInput struct {
	FirstName    Field[string] `json:"first_name"`
	LastName     Field[string] `json:"last_name"`
	Email        Field[string] `json:"email"`
	File         Field[string] `json:"file"`
	Location     Field[string] `json:"location"`
	Tel          Field[string] `json:"tel"`
	Description  Field[string] `json:"description"`
	WorkingHours Field[string] `json:"working_hours"`
}

// --- Output DTOs ---

// ProfileOutput merges user and profile fields the way clients consume them.
// Optional text fields are rendered as empty strings, never null.
type ProfileOutput struct {
	User         uuid.UUID `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         string    `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	Type         string    `json:"type"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// BusinessProfileOutput is the public listing shape for business accounts.
type BusinessProfileOutput struct {
	User         uuid.UUID `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         string    `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	Type         string    `json:"type"`
}

// CustomerProfileOutput is the public listing shape for customer accounts.
type CustomerProfileOutput struct {
	User       uuid.UUID `json:"user"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	File       string    `json:"file"`
	UploadedAt time.Time `json:"uploaded_at"`
	Type       string    `json:"type"`
}

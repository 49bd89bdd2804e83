package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order lookup yields no row.
var ErrOrderNotFound = errors.New("order not found")

// OrderFilter captures the optional query parameters of the order listing.
// Visibility restrictions are applied by the caller, not the repository.
type OrderFilter struct {
	BusinessUserID *uuid.UUID
	CustomerUserID *uuid.UUID
	Status         *entity.OrderStatus
	// PartyID restricts results to orders where the user is either party.
	PartyID *uuid.UUID
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	Create(ctx context.Context, order *entity.Order) error

	// UpdateStatus persists a status change for the given order.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	Delete(ctx context.Context, id uuid.UUID) error

	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)

	// CountByBusinessAndStatus counts a business user's orders in one status.
	CountByBusinessAndStatus(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error)
}

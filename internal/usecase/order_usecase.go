package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderUsecase defines order creation, visibility, and status operations.
type OrderUsecase interface {
	// CreateOrder snapshots the referenced offer detail into a new order.
	// Only customer-type callers may create orders.
	CreateOrder(ctx context.Context, callerID uuid.UUID, input *CreateOrderInput) (*OrderOutput, error)

	// ListOrders returns the orders visible to the caller, newest first.
	ListOrders(ctx context.Context, callerID uuid.UUID, input *ListOrdersInput) ([]*OrderOutput, error)

	GetOrder(ctx context.Context, callerID, orderID uuid.UUID) (*OrderOutput, error)

	// UpdateOrderStatus changes the order status. Only the linked business
	// user may, and the payload must contain exactly the status field.
	UpdateOrderStatus(ctx context.Context, callerID, orderID uuid.UUID, input *UpdateOrderStatusInput) (*OrderOutput, error)

	// DeleteOrder removes an order. Staff only.
	DeleteOrder(ctx context.Context, callerID, orderID uuid.UUID) error

	// OrderCount counts a business user's in_progress orders.
	OrderCount(ctx context.Context, businessUserID uuid.UUID) (int64, error)

	// CompletedOrderCount counts a business user's completed orders.
	CompletedOrderCount(ctx context.Context, businessUserID uuid.UUID) (int64, error)
}

// --- Input DTOs ---

// CreateOrderInput references the offer detail to snapshot.
type CreateOrderInput struct {
	OfferDetailID uuid.UUID `json:"offer_detail_id" validate:"required"`
}

// ListOrdersInput mirrors the optional listing query parameters.
type ListOrdersInput struct {
	BusinessUserID *uuid.UUID
	CustomerUserID *uuid.UUID
	Status         string
}

// UpdateOrderStatusInput carries the new status plus any unexpected keys
// found in the raw payload; the operation rejects the whole request when
// ExtraFields is non-empty.
type UpdateOrderStatusInput struct {
	Status      Field[string] `json:"status"`
	ExtraFields []string      `json:"-"`
}

// --- Output DTOs ---

// OrderOutput is the full order representation.
type OrderOutput struct {
	ID                 uuid.UUID `json:"id"`
	CustomerUser       uuid.UUID `json:"customer_user"`
	BusinessUser       uuid.UUID `json:"business_user"`
	Title              string    `json:"title"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              float64   `json:"price"`
	Features           []string  `json:"features"`
	OfferType          string    `json:"offer_type"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// OrderCountOutput wraps the in_progress counter endpoint response.
type OrderCountOutput struct {
	OrderCount int64 `json:"order_count"`
}

// CompletedOrderCountOutput wraps the completed counter endpoint response.
type CompletedOrderCountOutput struct {
	CompletedOrderCount int64 `json:"completed_order_count"`
}

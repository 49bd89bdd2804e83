package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the mutable state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every legal status value, in taxonomy order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// Valid reports whether the status is one of the enumerated values.
func (s OrderStatus) Valid() bool {
	return slices.Contains(OrderStatuses, s)
}

// Order is an immutable snapshot of one OfferDetail taken at creation time,
// linking a customer to the business user who owns the source offer. The
// snapshot fields are never re-synced to the source detail.
type Order struct {
	ID             uuid.UUID
	CustomerUserID uuid.UUID
	BusinessUserID uuid.UUID
	Title          string
	Revisions      int
	DeliveryTime   int
	Price          decimal.Decimal
	Features       []string
	Tier           Tier
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewOrderFromDetail snapshots the detail's fields into a fresh order.
// New orders start in_progress, matching the stored default of the platform.
func NewOrderFromDetail(customerID, businessID uuid.UUID, detail *OfferDetail) *Order {
	return &Order{
		CustomerUserID: customerID,
		BusinessUserID: businessID,
		Title:          detail.Title,
		Revisions:      detail.Revisions,
		DeliveryTime:   detail.DeliveryTime,
		Price:          detail.Price,
		Features:       slices.Clone(detail.Features),
		Tier:           detail.Tier,
		Status:         OrderStatusInProgress,
	}
}

// VisibleTo reports whether the user may read this order.
// Staff see everything, otherwise only the two linked parties.
func (o *Order) VisibleTo(user *User) bool {
	if user.IsStaff {
		return true
	}

	return o.CustomerUserID == user.ID || o.BusinessUserID == user.ID
}

// CanUpdateStatus reports whether the caller may change the order status.
// Only the linked business user may, and only with a business profile.
func (o *Order) CanUpdateStatus(caller *User) bool {
	return caller.IsBusiness() && o.BusinessUserID == caller.ID
}

// CanDelete reports whether the caller may delete the order.
func (o *Order) CanDelete(caller *User) bool {
	return caller.IsStaff
}

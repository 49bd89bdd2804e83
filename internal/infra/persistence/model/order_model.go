package model

import (
	"time"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. The snapshot columns copy the
// source offer detail at creation time and are never re-synced.
type OrderModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerUserID uuid.UUID       `gorm:"type:uuid;not null;index"`
	BusinessUserID uuid.UUID       `gorm:"type:uuid;not null;index:idx_orders_business_status"`
	Title          string          `gorm:"type:varchar(255);not null"`
	Revisions      int             `gorm:"not null"`
	DeliveryTime   int             `gorm:"not null"`
	Price          decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Features       StringList      `gorm:"type:jsonb;not null;default:'[]'"`
	Tier           string          `gorm:"type:varchar(20);not null"`
	Status         string          `gorm:"type:varchar(20);not null;default:'in_progress';index:idx_orders_business_status"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// ToEntity maps the persistence model back to a pure domain entity.
func (m *OrderModel) ToEntity() *entity.Order {
	return &entity.Order{
		ID:             m.ID,
		CustomerUserID: m.CustomerUserID,
		BusinessUserID: m.BusinessUserID,
		Title:          m.Title,
		Revisions:      m.Revisions,
		DeliveryTime:   m.DeliveryTime,
		Price:          m.Price,
		Features:       m.Features,
		Tier:           entity.Tier(m.Tier),
		Status:         entity.OrderStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// OrderModelFromEntity maps a domain entity onto the persistence model.
func OrderModelFromEntity(order *entity.Order) *OrderModel {
	return &OrderModel{
		ID:             order.ID,
		CustomerUserID: order.CustomerUserID,
		BusinessUserID: order.BusinessUserID,
		Title:          order.Title,
		Revisions:      order.Revisions,
		DeliveryTime:   order.DeliveryTime,
		Price:          order.Price,
		Features:       StringList(order.Features),
		Tier:           string(order.Tier),
		Status:         string(order.Status),
	}
}

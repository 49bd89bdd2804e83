package model

import (
	"time"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferModel mirrors the 'offers' table.
type OfferModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Image       string    `gorm:"type:varchar(255)"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"index"`

	Details []*OfferDetailModel `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OfferModel) TableName() string {
	return "offers"
}

// OfferDetailModel mirrors the 'offer_details' table. The composite unique
// index keeps one row per tier within an offer.
type OfferDetailModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OfferID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_offer_details_offer_tier"`
	Title        string          `gorm:"type:varchar(255);not null"`
	Revisions    int             `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	DeliveryTime int             `gorm:"not null"`
	Features     StringList      `gorm:"type:jsonb;not null;default:'[]'"`
	Tier         string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_offer_details_offer_tier"`
}

// TableName explicitly sets the table name for GORM.
func (OfferDetailModel) TableName() string {
	return "offer_details"
}

// ToEntity maps the persistence model back to a pure domain entity.
func (m *OfferModel) ToEntity() *entity.Offer {
	details := make([]*entity.OfferDetail, 0, len(m.Details))
	for _, detail := range m.Details {
		details = append(details, detail.ToEntity())
	}

	return &entity.Offer{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Image:       m.Image,
		Description: m.Description,
		Details:     details,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToEntity maps a detail row back to a pure domain entity.
func (m *OfferDetailModel) ToEntity() *entity.OfferDetail {
	return &entity.OfferDetail{
		ID:           m.ID,
		OfferID:      m.OfferID,
		Title:        m.Title,
		Revisions:    m.Revisions,
		Price:        m.Price,
		DeliveryTime: m.DeliveryTime,
		Features:     m.Features,
		Tier:         entity.Tier(m.Tier),
	}
}

// OfferModelFromEntity maps a domain entity onto the persistence model.
func OfferModelFromEntity(offer *entity.Offer) *OfferModel {
	details := make([]*OfferDetailModel, 0, len(offer.Details))
	for _, detail := range offer.Details {
		details = append(details, OfferDetailModelFromEntity(detail))
	}

	return &OfferModel{
		ID:          offer.ID,
		UserID:      offer.UserID,
		Title:       offer.Title,
		Image:       offer.Image,
		Description: offer.Description,
		Details:     details,
	}
}

// OfferDetailModelFromEntity maps a detail entity onto the persistence model.
func OfferDetailModelFromEntity(detail *entity.OfferDetail) *OfferDetailModel {
	return &OfferDetailModel{
		ID:           detail.ID,
		OfferID:      detail.OfferID,
		Title:        detail.Title,
		Revisions:    detail.Revisions,
		Price:        detail.Price,
		DeliveryTime: detail.DeliveryTime,
		Features:     StringList(detail.Features),
		Tier:         string(detail.Tier),
	}
}

package model

import (
	"time"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table. The composite unique index is
// the authoritative guard against duplicate reviews per pair.
type ReviewModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BusinessUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_business_reviewer"`
	ReviewerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_business_reviewer"`
	Rating         int       `gorm:"not null"`
	Description    string    `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToEntity maps the persistence model back to a pure domain entity.
func (m *ReviewModel) ToEntity() *entity.Review {
	return &entity.Review{
		ID:             m.ID,
		BusinessUserID: m.BusinessUserID,
		ReviewerID:     m.ReviewerID,
		Rating:         m.Rating,
		Description:    m.Description,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ReviewModelFromEntity maps a domain entity onto the persistence model.
func ReviewModelFromEntity(review *entity.Review) *ReviewModel {
	return &ReviewModel{
		ID:             review.ID,
		BusinessUserID: review.BusinessUserID,
		ReviewerID:     review.ReviewerID,
		Rating:         review.Rating,
		Description:    review.Description,
	}
}

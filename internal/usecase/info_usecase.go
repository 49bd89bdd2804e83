package usecase

import "context"

// InfoUsecase exposes aggregate platform statistics.
type InfoUsecase interface {
	BaseInfo(ctx context.Context) (*BaseInfoOutput, error)
}

// BaseInfoOutput is the public platform statistics payload.
type BaseInfoOutput struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}

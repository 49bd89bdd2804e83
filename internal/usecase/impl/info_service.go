package impl

import (
	"context"
	"log/slog"
	"math"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"
	"coderr/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// infoService implements the InfoUsecase interface.
type infoService struct {
	userRepo   repository.UserRepository
	offerRepo  repository.OfferRepository
	reviewRepo repository.ReviewRepository
	logger     *slog.Logger
}

// InfoServiceParams holds dependencies for InfoService, injected by Fx.
type InfoServiceParams struct {
	fx.In

	UserRepo   repository.UserRepository
	OfferRepo  repository.OfferRepository
	ReviewRepo repository.ReviewRepository
	Logger     *slog.Logger
}

// NewInfoService is the constructor for infoService.
func NewInfoService(params InfoServiceParams) usecase.InfoUsecase {
	return &infoService{
		userRepo:   params.UserRepo,
		offerRepo:  params.OfferRepo,
		reviewRepo: params.ReviewRepo,
		logger:     params.Logger,
	}
}

// BaseInfo aggregates the public platform statistics. Read-only counters,
// no transaction needed.
func (srv *infoService) BaseInfo(ctx context.Context) (*usecase.BaseInfoOutput, error) {
	reviewCount, err := srv.reviewRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count reviews")
	}

	averageRating, err := srv.reviewRepo.AverageRating(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute average rating")
	}

	businessCount, err := srv.userRepo.CountProfilesByType(ctx, entity.ProfileTypeBusiness)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count business profiles")
	}

	offerCount, err := srv.offerRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count offers")
	}

	return &usecase.BaseInfoOutput{
		ReviewCount:          reviewCount,
		AverageRating:        math.Round(averageRating*10) / 10,
		BusinessProfileCount: businessCount,
		OfferCount:           offerCount,
	}, nil
}

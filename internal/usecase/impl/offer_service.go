package impl

import (
	"context"
	"fmt"
	"log/slog"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// Pagination bounds for the offer listing.
const (
	defaultPageSize = 6
	maxPageSize     = 100
)

// offerService implements the OfferUsecase interface.
type offerService struct {
	txManager    repository.TransactionManager
	offerRepo    repository.OfferRepository
	userRepo     repository.UserRepository
	imageStorage service.ImageStorage
	logger       *slog.Logger
}

// OfferServiceParams holds dependencies for OfferService, injected by Fx.
type OfferServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OfferRepo    repository.OfferRepository
	UserRepo     repository.UserRepository
	ImageStorage service.ImageStorage
	Logger       *slog.Logger
}

// NewOfferService is the constructor for offerService.
func NewOfferService(params OfferServiceParams) usecase.OfferUsecase {
	return &offerService{
		txManager:    params.TxManager,
		offerRepo:    params.OfferRepo,
		userRepo:     params.UserRepo,
		imageStorage: params.ImageStorage,
		logger:       params.Logger,
	}
}

// CreateOffer creates an offer together with its detail rows in one
// transaction. Callers must hold a business profile, the payload must carry
// at least three details, and every detail a distinct offer type.
func (srv *offerService) CreateOffer(ctx context.Context, callerID uuid.UUID, input *usecase.CreateOfferInput) (*usecase.OfferNestedOutput, error) {
	srv.logger.Info("Creating offer", "userID", callerID, "title", input.Title)

	caller, err := srv.userRepo.FindByID(ctx, callerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find caller")
	}
	if !caller.IsBusiness() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only business users may create offers")
	}

	details, err := buildOfferDetails(input.Details)
	if err != nil {
		return nil, err
	}

	imageRef := ""
	if input.Image.Set() {
		imageRef, err = srv.imageStorage.Store(ctx, input.Image.Value, "offers")
		if err != nil {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("invalid image payload"), "failed to store offer image")
		}
	}

	offer := &entity.Offer{
		UserID:      callerID,
		Title:       input.Title,
		Image:       imageRef,
		Description: input.Description,
		Details:     details,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.OfferRepo().Create(ctx, offer); err != nil {
			return errors.Wrap(err, "failed to create offer")
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to create offer", "userID", callerID, "error", err)

		return nil, errors.Wrap(err, "failed to execute offer creation transaction")
	}

	srv.logger.Debug("Offer created", "offerID", offer.ID)

	return srv.toNestedOutput(offer), nil
}

// buildOfferDetails validates and converts the creation payload rows.
func buildOfferDetails(inputs []usecase.OfferDetailInput) ([]*entity.OfferDetail, error) {
	if len(inputs) < entity.MinOfferDetails {
		return nil, errors.Wrap(domainerrors.ErrTooFewDetails, "offer creation rejected")
	}

	seen := make(map[entity.Tier]struct{}, len(inputs))
	details := make([]*entity.OfferDetail, 0, len(inputs))
	for _, in := range inputs {
		tier := entity.Tier(in.OfferType)
		if !tier.Valid() {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("offer_type must be basic, standard or premium"), "offer creation rejected")
		}
		if _, dup := seen[tier]; dup {
			return nil, errors.Wrap(domainerrors.ErrDuplicateTiers, "offer creation rejected")
		}
		seen[tier] = struct{}{}

		details = append(details, &entity.OfferDetail{
			Title:        in.Title,
			Revisions:    in.Revisions,
			Price:        decimal.NewFromFloat(in.Price),
			DeliveryTime: in.DeliveryTimeInDays,
			Features:     in.Features,
			Tier:         tier,
		})
	}

	return details, nil
}

// ListOffers returns one page of offers with min-price and min-delivery
// annotations plus the creator summary for each row.
func (srv *offerService) ListOffers(ctx context.Context, input *usecase.ListOffersInput) (*usecase.OfferPageOutput, error) {
	filter := repository.OfferFilter{
		CreatorID:       input.CreatorID,
		MaxDeliveryTime: input.MaxDeliveryTime,
		Search:          input.Search,
		Ordering:        usecase.OfferOrderingFromString(input.Ordering),
		Page:            normalizePage(input.Page),
		PageSize:        normalizePageSize(input.PageSize),
	}
	if input.MinPrice != nil {
		minPrice := decimal.NewFromFloat(*input.MinPrice)
		filter.MinPrice = &minPrice
	}

	offers, total, err := srv.offerRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list offers")
	}

	creators, err := srv.loadCreators(ctx, offers)
	if err != nil {
		return nil, err
	}

	results := make([]*usecase.OfferListOutput, 0, len(offers))
	for _, offer := range offers {
		row := &usecase.OfferListOutput{
			ID:              offer.ID,
			User:            offer.UserID,
			Title:           offer.Title,
			Image:           srv.imageURLOrNil(offer.Image),
			Description:     offer.Description,
			CreatedAt:       offer.CreatedAt,
			UpdatedAt:       offer.UpdatedAt,
			Details:         detailRefs(offer),
			MinPrice:        decimalToFloat(offer.MinPrice()),
			MinDeliveryTime: offer.MinDeliveryTime(),
		}
		if creator, ok := creators[offer.UserID]; ok {
			row.UserDetails = &usecase.OfferUserDetails{
				FirstName: creator.FirstName,
				LastName:  creator.LastName,
				Username:  creator.Username,
			}
		}
		results = append(results, row)
	}

	return &usecase.OfferPageOutput{
		Count:    total,
		Next:     nextPageLink(filter.Page, filter.PageSize, total),
		Previous: previousPageLink(filter.Page, filter.PageSize),
		Results:  results,
	}, nil
}

// loadCreators fetches each distinct offer creator once.
func (srv *offerService) loadCreators(ctx context.Context, offers []*entity.Offer) (map[uuid.UUID]*entity.User, error) {
	creators := make(map[uuid.UUID]*entity.User, len(offers))
	for _, offer := range offers {
		if _, done := creators[offer.UserID]; done {
			continue
		}

		creator, err := srv.userRepo.FindByID(ctx, offer.UserID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load offer creator")
		}
		creators[offer.UserID] = creator
	}

	return creators, nil
}

// GetOffer retrieves a single offer with its annotations.
func (srv *offerService) GetOffer(ctx context.Context, id uuid.UUID) (*usecase.OfferRetrieveOutput, error) {
	offer, err := srv.offerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOfferNotFound, "failed to get offer")
		}

		return nil, errors.Wrap(err, "failed to find offer")
	}

	return &usecase.OfferRetrieveOutput{
		ID:              offer.ID,
		User:            offer.UserID,
		Title:           offer.Title,
		Image:           srv.imageURLOrNil(offer.Image),
		Description:     offer.Description,
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
		Details:         detailRefs(offer),
		MinPrice:        decimalToFloat(offer.MinPrice()),
		MinDeliveryTime: offer.MinDeliveryTime(),
	}, nil
}

// GetOfferDetail retrieves a single detail row in full.
func (srv *offerService) GetOfferDetail(ctx context.Context, id uuid.UUID) (*usecase.OfferDetailOutput, error) {
	detail, err := srv.offerRepo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferDetailNotFound) {
			return nil, errors.Wrap(domainerrors.ErrDetailNotFound, "failed to get offer detail")
		}

		return nil, errors.Wrap(err, "failed to find offer detail")
	}

	return toDetailOutput(detail), nil
}

// UpdateOffer applies a partial update to the offer header and any addressed
// detail rows. The whole update commits or none of it does.
func (srv *offerService) UpdateOffer(ctx context.Context, callerID, offerID uuid.UUID, input *usecase.UpdateOfferInput) (*usecase.OfferNestedOutput, error) {
	srv.logger.Info("Updating offer", "offerID", offerID, "userID", callerID)

	var updated *entity.Offer

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		offer, err := offerRepo.FindByID(ctx, offerID)
		if err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return errors.Wrap(domainerrors.ErrOfferNotFound, "failed to update offer")
			}

			return errors.Wrap(err, "failed to find offer")
		}

		if !offer.CanMutate(callerID) {
			return errors.Wrap(domainerrors.ErrForbidden, "offer belongs to another user")
		}

		if err := srv.applyHeaderPatch(ctx, offer, input); err != nil {
			return err
		}

		patched, err := srv.applyDetailPatches(offer, input.Details)
		if err != nil {
			return err
		}

		if err := ensureDistinctTiers(offer); err != nil {
			return err
		}

		for _, detail := range patched {
			if err := offerRepo.UpdateDetail(ctx, detail); err != nil {
				return errors.Wrap(err, "failed to update offer detail")
			}
		}
		if err := offerRepo.UpdateHeader(ctx, offer); err != nil {
			return errors.Wrap(err, "failed to update offer")
		}
		updated = offer

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to update offer", "offerID", offerID, "error", err)

		return nil, errors.Wrap(err, "failed to execute offer update transaction")
	}

	return srv.toNestedOutput(updated), nil
}

func (srv *offerService) applyHeaderPatch(ctx context.Context, offer *entity.Offer, input *usecase.UpdateOfferInput) error {
	if input.Title.Set() {
		offer.Title = input.Title.Value
	}
	if input.Description.Present {
		offer.Description = stringValue(input.Description)
	}

	if input.Image.Present {
		payload := ""
		if !input.Image.Null {
			payload = input.Image.Value
		}

		ref, err := srv.imageStorage.Store(ctx, payload, "offers")
		if err != nil {
			return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("invalid image payload"), "failed to store offer image")
		}
		offer.Image = ref
	}

	return nil
}

// applyDetailPatches resolves each entry against the offer's existing rows
// and patches it in place. It returns the rows that were touched.
func (srv *offerService) applyDetailPatches(offer *entity.Offer, entries []usecase.UpdateOfferDetailInput) ([]*entity.OfferDetail, error) {
	patched := make([]*entity.OfferDetail, 0, len(entries))
	for _, entry := range entries {
		detail, err := resolveDetail(offer, entry)
		if err != nil {
			return nil, err
		}

		if err := applyDetailPatch(detail, entry); err != nil {
			return nil, err
		}
		patched = append(patched, detail)
	}

	return patched, nil
}

// resolveDetail finds the detail row an update entry addresses. An explicit
// id wins; otherwise the offer type must match exactly one existing row.
func resolveDetail(offer *entity.Offer, entry usecase.UpdateOfferDetailInput) (*entity.OfferDetail, error) {
	if entry.ID != nil {
		detail := offer.DetailByID(*entry.ID)
		if detail == nil {
			return nil, errors.Wrap(domainerrors.ErrDetailNotInOffer, "offer update rejected")
		}

		return detail, nil
	}

	if entry.OfferType == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("each detail entry requires 'id' or 'offer_type'"), "offer update rejected")
	}

	tier := entity.Tier(*entry.OfferType)
	if !tier.Valid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("offer_type must be basic, standard or premium"), "offer update rejected")
	}

	matches := offer.DetailsByTier(tier)
	switch len(matches) {
	case 0:
		return nil, errors.Wrap(domainerrors.ErrNoDetailWithTier, "offer update rejected")
	case 1:
		return matches[0], nil
	default:
		return nil, errors.Wrap(domainerrors.ErrAmbiguousTier, "offer update rejected")
	}
}

func applyDetailPatch(detail *entity.OfferDetail, entry usecase.UpdateOfferDetailInput) error {
	// When the entry was addressed by id, offer_type acts as a patch field.
	if entry.ID != nil && entry.OfferType != nil {
		tier := entity.Tier(*entry.OfferType)
		if !tier.Valid() {
			return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("offer_type must be basic, standard or premium"), "offer update rejected")
		}
		detail.Tier = tier
	}

	if entry.Title.Set() {
		detail.Title = entry.Title.Value
	}
	if entry.Revisions.Set() {
		detail.Revisions = entry.Revisions.Value
	}
	if entry.DeliveryTimeInDays.Set() {
		detail.DeliveryTime = entry.DeliveryTimeInDays.Value
	}
	if entry.Price.Set() {
		detail.Price = decimal.NewFromFloat(entry.Price.Value)
	}
	if entry.Features.Present {
		if entry.Features.Null {
			detail.Features = nil
		} else {
			detail.Features = entry.Features.Value
		}
	}

	return nil
}

// ensureDistinctTiers re-checks the one-row-per-tier invariant after patching.
func ensureDistinctTiers(offer *entity.Offer) error {
	seen := make(map[entity.Tier]struct{}, len(offer.Details))
	for _, detail := range offer.Details {
		if _, dup := seen[detail.Tier]; dup {
			return errors.Wrap(domainerrors.ErrDuplicateTiers, "offer update rejected")
		}
		seen[detail.Tier] = struct{}{}
	}

	return nil
}

// DeleteOffer removes the offer and its details.
func (srv *offerService) DeleteOffer(ctx context.Context, callerID, offerID uuid.UUID) error {
	srv.logger.Info("Deleting offer", "offerID", offerID, "userID", callerID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		offer, err := offerRepo.FindByID(ctx, offerID)
		if err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return errors.Wrap(domainerrors.ErrOfferNotFound, "failed to delete offer")
			}

			return errors.Wrap(err, "failed to find offer")
		}

		if !offer.CanMutate(callerID) {
			return errors.Wrap(domainerrors.ErrForbidden, "offer belongs to another user")
		}

		if err := offerRepo.Delete(ctx, offerID); err != nil {
			return errors.Wrap(err, "failed to delete offer")
		}

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to delete offer", "offerID", offerID, "error", err)

		return errors.Wrap(err, "failed to execute offer deletion transaction")
	}

	return nil
}

// --- mapping helpers ---

func (srv *offerService) toNestedOutput(offer *entity.Offer) *usecase.OfferNestedOutput {
	details := make([]*usecase.OfferDetailOutput, 0, len(offer.Details))
	for _, detail := range offer.Details {
		details = append(details, toDetailOutput(detail))
	}

	return &usecase.OfferNestedOutput{
		ID:          offer.ID,
		Title:       offer.Title,
		Image:       srv.imageURLOrNil(offer.Image),
		Description: offer.Description,
		Details:     details,
	}
}

func toDetailOutput(detail *entity.OfferDetail) *usecase.OfferDetailOutput {
	features := detail.Features
	if features == nil {
		features = []string{}
	}

	return &usecase.OfferDetailOutput{
		ID:                 detail.ID,
		Title:              detail.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTime,
		Price:              decimalToFloat(detail.Price),
		Features:           features,
		OfferType:          string(detail.Tier),
	}
}

func detailRefs(offer *entity.Offer) []usecase.OfferDetailRef {
	refs := make([]usecase.OfferDetailRef, 0, len(offer.Details))
	for _, detail := range offer.Details {
		refs = append(refs, usecase.OfferDetailRef{
			ID:  detail.ID,
			URL: fmt.Sprintf("/api/offerdetails/%s/", detail.ID),
		})
	}

	return refs
}

// imageURLOrNil maps an empty stored reference to JSON null.
func (srv *offerService) imageURLOrNil(ref string) *string {
	if ref == "" {
		return nil
	}

	url := srv.imageStorage.URL(ref)

	return &url
}

func decimalToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()

	return f
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}

	return page
}

func normalizePageSize(size int) int {
	switch {
	case size < 1:
		return defaultPageSize
	case size > maxPageSize:
		return maxPageSize
	}

	return size
}

func nextPageLink(page, pageSize int, total int64) *string {
	if int64(page*pageSize) >= total {
		return nil
	}

	link := fmt.Sprintf("/api/offers/?page=%d&page_size=%d", page+1, pageSize)

	return &link
}

func previousPageLink(page, pageSize int) *string {
	if page <= 1 {
		return nil
	}

	link := fmt.Sprintf("/api/offers/?page=%d&page_size=%d", page-1, pageSize)

	return &link
}

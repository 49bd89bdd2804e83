package handler

import (
	"net/http"
	"strconv"

	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/response"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OfferHandler holds dependencies for offer-related handlers.
type OfferHandler struct {
	uc usecase.OfferUsecase
}

// NewOfferHandler is the constructor for OfferHandler, injected by Fx.
func NewOfferHandler(uc usecase.OfferUsecase) *OfferHandler {
	return &OfferHandler{uc: uc}
}

// CreateOffer handles offer creation for business users.
func (h *OfferHandler) CreateOffer(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var input usecase.CreateOfferInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.CreateOffer(c.Request().Context(), callerID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Offer created successfully")
}

// ListOffers returns one paginated page of offers.
func (h *OfferHandler) ListOffers(c echo.Context) error {
	input, err := parseListOffersInput(c)
	if err != nil {
		return err
	}

	output, err := h.uc.ListOffers(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

func parseListOffersInput(c echo.Context) (*usecase.ListOffersInput, error) {
	input := &usecase.ListOffersInput{
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
	}

	creatorID, err := parseOptionalUUIDQuery(c, "creator_id")
	if err != nil {
		return nil, err
	}
	input.CreatorID = creatorID

	if raw := c.QueryParam("min_price"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid min_price parameter")
		}
		input.MinPrice = &minPrice
	}
	if raw := c.QueryParam("max_delivery_time"); raw != "" {
		maxDelivery, err := strconv.Atoi(raw)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid max_delivery_time parameter")
		}
		input.MaxDeliveryTime = &maxDelivery
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid page parameter")
		}
		input.Page = page
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid page_size parameter")
		}
		input.PageSize = pageSize
	}

	return input, nil
}

// GetOffer returns a single offer with its annotations.
func (h *OfferHandler) GetOffer(c echo.Context) error {
	offerID, err := parseUUIDParam(c, "pk")
	if err != nil {
		return err
	}

	output, err := h.uc.GetOffer(c.Request().Context(), offerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// GetOfferDetail returns a single detail row in full.
func (h *OfferHandler) GetOfferDetail(c echo.Context) error {
	detailID, err := parseUUIDParam(c, "pk")
	if err != nil {
		return err
	}

	output, err := h.uc.GetOfferDetail(c.Request().Context(), detailID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// UpdateOffer applies a partial update to an offer and its details.
func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	offerID, err := parseUUIDParam(c, "pk")
	if err != nil {
		return err
	}

	var input usecase.UpdateOfferInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer input")
	}

	output, err := h.uc.UpdateOffer(c.Request().Context(), callerID, offerID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Offer updated successfully")
}

// DeleteOffer removes an offer.
func (h *OfferHandler) DeleteOffer(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	offerID, err := parseUUIDParam(c, "pk")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteOffer(c.Request().Context(), callerID, offerID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

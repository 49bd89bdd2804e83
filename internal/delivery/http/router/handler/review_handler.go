package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/response"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler holds dependencies for review-related handlers.
type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// CreateReview records a customer's rating of a business user.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var input usecase.CreateReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.CreateReview(c.Request().Context(), callerID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Review created successfully")
}

// ListReviews returns reviews matching the query filters.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	input := &usecase.ListReviewsInput{Ordering: c.QueryParam("ordering")}

	businessUserID, err := parseOptionalUUIDQuery(c, "business_user_id")
	if err != nil {
		return err
	}
	input.BusinessUserID = businessUserID

	reviewerID, err := parseOptionalUUIDQuery(c, "reviewer_id")
	if err != nil {
		return err
	}
	input.ReviewerID = reviewerID

	outputs, err := h.uc.ListReviews(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, outputs, "")
}

// GetReview returns a single review.
func (h *ReviewHandler) GetReview(c echo.Context) error {
	reviewID, err := parseUUIDParam(c, "pk")
	if err != nil {
		return err
	}

	output, err := h.uc.GetReview(c.Request().Context(), reviewID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// UpdateReview edits rating and/or description. Any other key in the raw
// payload rejects the whole request.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	reviewID, err := parseUUIDParam(c, "pk")
	if err != nil {
		return err
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	var input usecase.UpdateReviewInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	extra, err := usecase.UnknownKeys(raw, "rating", "description")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	input.ExtraFields = extra

	output, err := h.uc.UpdateReview(c.Request().Context(), callerID, reviewID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Review updated successfully")
}

// DeleteReview removes a review.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	reviewID, err := parseUUIDParam(c, "pk")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteReview(c.Request().Context(), callerID, reviewID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

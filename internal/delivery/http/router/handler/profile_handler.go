package handler

import (
	"net/http"

	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/response"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for profile-related handlers.
type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// GetProfile returns the merged user and profile view for one account.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := parseUUIDParam(c, "pk")
	if err != nil {
		return err
	}

	output, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// UpdateProfile applies a partial update to the caller's own profile.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	userID, err := parseUUIDParam(c, "pk")
	if err != nil {
		return err
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	output, err := h.uc.UpdateProfile(c.Request().Context(), callerID, userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Profile updated successfully")
}

// ListBusinessProfiles returns all business profiles.
func (h *ProfileHandler) ListBusinessProfiles(c echo.Context) error {
	outputs, err := h.uc.ListBusinessProfiles(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, outputs, "")
}

// ListCustomerProfiles returns all customer profiles.
func (h *ProfileHandler) ListCustomerProfiles(c echo.Context) error {
	outputs, err := h.uc.ListCustomerProfiles(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, outputs, "")
}

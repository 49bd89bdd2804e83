package handler

import (
	"net/http"

	"coderr/internal/delivery/http/response"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// InfoHandler holds dependencies for the platform statistics handler.
type InfoHandler struct {
	uc usecase.InfoUsecase
}

// NewInfoHandler is the constructor for InfoHandler, injected by Fx.
func NewInfoHandler(uc usecase.InfoUsecase) *InfoHandler {
	return &InfoHandler{uc: uc}
}

// BaseInfo returns the public aggregate platform statistics.
func (h *InfoHandler) BaseInfo(c echo.Context) error {
	output, err := h.uc.BaseInfo(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// HealthCheck reports liveness for load balancers and probes.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}

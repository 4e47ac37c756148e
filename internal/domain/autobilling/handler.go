package autobilling

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hmis/billing/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	write := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleBilling))
	write.POST("/billing-events", h.RecordEvent)

	admin := api.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.POST("/billing-events/sweep", h.Sweep)
}

func (h *Handler) RecordEvent(c echo.Context) error {
	var ev BillingEvent
	if err := c.Bind(&ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordEvent(c.Request().Context(), &ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ev)
}

// Sweep triggers a run outside the cron schedule.
func (h *Handler) Sweep(c echo.Context) error {
	result, err := h.svc.Sweep(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

package billableservice

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hmis/billing/internal/platform/auth"
	"github.com/hmis/billing/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleBilling))
	read.GET("/billable-services", h.List)
	read.GET("/billable-services/:id", h.Get)

	// Catalogue changes are admin-only.
	write := api.Group("", auth.RequireRole(auth.RoleAdmin))
	write.POST("/billable-services", h.Create)
	write.PUT("/billable-services/:id", h.Update)
	write.DELETE("/billable-services/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var bs BillableService
	if err := c.Bind(&bs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &bs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, bs)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	bs, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "billable service not found")
	}
	return c.JSON(http.StatusOK, bs)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	services, total, err := h.svc.List(c.Request().Context(),
		c.QueryParam("q"), c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(services, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var bs BillableService
	if err := c.Bind(&bs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bs.ID = id
	if err := h.svc.Update(c.Request().Context(), &bs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, bs)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

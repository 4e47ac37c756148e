package bill

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hmis/billing/internal/platform/auth"
	"github.com/hmis/billing/internal/platform/dates"
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
	read.GET("/bills", h.ListBills)
	read.GET("/bills/:id", h.GetBill)
	read.GET("/bills/:id/mapped", h.GetMappedBill)

	write := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleBilling))
	write.POST("/bills", h.CreateBill)
	write.PUT("/bills/:id", h.UpdateBill)
	write.POST("/bills/:id/line-items", h.AddLineItem)
	write.PUT("/bills/:id/line-items/:itemId", h.UpdateLineItem)
	write.DELETE("/bills/:id/line-items/:itemId", h.VoidLineItem)
	write.POST("/bills/:id/payments", h.AddPayment)
	write.DELETE("/bills/:id/payments/:paymentId", h.VoidPayment)
	write.POST("/bills/:id/waive", h.WaiveBill)

	// Posting moves money into the ledger, gated separately.
	post := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RolePostBill))
	post.POST("/bills/:id/post", h.PostBill)
}

func (h *Handler) CreateBill(c echo.Context) error {
	var b Bill
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateBill(c.Request().Context(), &b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) GetBill(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.GetBill(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "bill not found")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) GetMappedBill(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	m, err := h.svc.GetMappedBill(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "bill not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) ListBills(c echo.Context) error {
	pg := pagination.FromContext(c)

	var f ListFilter
	if v := c.QueryParam("patient_id"); v != "" {
		pid, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		f.PatientID = pid
	}
	if v := c.QueryParam("cash_point_id"); v != "" {
		cpid, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid cash_point_id")
		}
		f.CashPointID = cpid
	}
	if v := c.QueryParam("status"); v != "" {
		if !validStatuses[v] {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		f.Status = v
	}

	items, total, err := h.svc.ListMappedBills(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateBill(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var b Bill
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b.ID = id
	if err := h.svc.UpdateBill(c.Request().Context(), &b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) PostBill(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.PostBill(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) AddLineItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var li LineItem
	if err := c.Bind(&li); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddLineItem(c.Request().Context(), id, &li); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, li)
}

func (h *Handler) UpdateLineItem(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	var li LineItem
	if err := c.Bind(&li); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	li.ID = itemID
	if err := h.svc.UpdateLineItem(c.Request().Context(), &li); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, li)
}

func (h *Handler) VoidLineItem(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	reason := c.QueryParam("reason")
	if err := h.svc.VoidLineItem(c.Request().Context(), itemID, reason); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// paymentRequest is the wire shape for a tender. DateCreated accepts both
// epoch-millis and ISO strings since upstream integrations still send either.
type paymentRequest struct {
	InstanceTypeID   *uuid.UUID     `json:"instance_type_id"`
	InstanceTypeName *string        `json:"instance_type_name"`
	Amount           *float64       `json:"amount"`
	AmountTendered   *float64       `json:"amount_tendered"`
	DateCreated      dates.FlexTime `json:"date_created"`
}

func (h *Handler) AddPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := Payment{
		InstanceTypeID:   req.InstanceTypeID,
		InstanceTypeName: req.InstanceTypeName,
		Amount:           req.Amount,
		AmountTendered:   req.AmountTendered,
	}
	if !req.DateCreated.IsZero() {
		t := req.DateCreated.Time.UTC().Truncate(time.Millisecond)
		p.DateCreated = &t
	}
	if err := h.svc.AddPayment(c.Request().Context(), id, &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) VoidPayment(c echo.Context) error {
	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}
	if err := h.svc.VoidPayment(c.Request().Context(), paymentID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type waiveRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) WaiveBill(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req waiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	waiver, err := h.svc.WaiveBill(c.Request().Context(), id, req.Reason)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, waiver)
}

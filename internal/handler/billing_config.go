package handler

import (
	"net/http"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/apierror"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BillingConfigHandler struct{ svc service.BillingConfigService }

func NewBillingConfigHandler(svc service.BillingConfigService) *BillingConfigHandler {
	return &BillingConfigHandler{svc: svc}
}

// ── Tax rates ────────────────────────────────────────────────────────────────

// CreateTaxRate godoc
// @Summary      Create a tax rule
// @Tags         billing-config
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateTaxRateRequest true "Tax rule"
// @Success      201  {object} dto.TaxRateResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/billing/taxes [post]
func (h *BillingConfigHandler) CreateTaxRate(c *gin.Context) {
	var req dto.CreateTaxRateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateTaxRate(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListTaxRates godoc
// @Summary      List tax rules
// @Tags         billing-config
// @Produce      json
// @Security     BearerAuth
// @Param        include_inactive query bool false "Include disabled rules"
// @Success      200 {array} dto.TaxRateResponse
// @Router       /v1/billing/taxes [get]
func (h *BillingConfigHandler) ListTaxRates(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.ListTaxRates(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list tax rules"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateTaxRate godoc
// @Summary      Update a tax rule
// @Tags         billing-config
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Tax rule UUID"
// @Param        body body dto.UpdateTaxRateRequest true "Fields to update"
// @Success      200  {object} dto.TaxRateResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/billing/taxes/{id} [put]
func (h *BillingConfigHandler) UpdateTaxRate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateTaxRateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateTaxRate(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Discounts ────────────────────────────────────────────────────────────────

// CreateDiscount godoc
// @Summary      Create a discount rule
// @Tags         billing-config
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateDiscountRequest true "Discount rule"
// @Success      201  {object} dto.DiscountResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/billing/discounts [post]
func (h *BillingConfigHandler) CreateDiscount(c *gin.Context) {
	var req dto.CreateDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateDiscount(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListDiscounts godoc
// @Summary      List discount rules
// @Tags         billing-config
// @Produce      json
// @Security     BearerAuth
// @Param        include_inactive query bool false "Include disabled rules"
// @Success      200 {array} dto.DiscountResponse
// @Router       /v1/billing/discounts [get]
func (h *BillingConfigHandler) ListDiscounts(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.ListDiscounts(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list discounts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateDiscount godoc
// @Summary      Update a discount rule
// @Tags         billing-config
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Discount UUID"
// @Param        body body dto.UpdateDiscountRequest true "Fields to update"
// @Success      200  {object} dto.DiscountResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/billing/discounts/{id} [put]
func (h *BillingConfigHandler) UpdateDiscount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateDiscount(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Country settings ─────────────────────────────────────────────────────────

// CountrySettings godoc
// @Summary      Clinic billing defaults
// @Description  Returns the clinic country's currency, date format, default tax and payment terms.
// @Tags         billing-config
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CountrySettingsResponse
// @Router       /v1/billing/settings [get]
func (h *BillingConfigHandler) CountrySettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.CountrySettings())
}

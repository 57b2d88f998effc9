package handler

import (
	"context"
	"net/http"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/apierror"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/middleware"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type InvoicesHandler struct{ svc service.InvoiceService }

func NewInvoicesHandler(svc service.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{svc: svc}
}

// Create godoc
// @Summary      Create a draft invoice
// @Description  Prices the line items, applies active taxes and discounts, and stores the result as a draft.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateInvoiceRequest true "Invoice"
// @Success      201  {object} dto.InvoiceResponse
// @Failure      404  {object} apierror.APIError "Patient, doctor or service not found"
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/invoices [post]
func (h *InvoicesHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Create(c.Request.Context(), claims.Username, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      200 {object} dto.InvoiceResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id} [get]
func (h *InvoicesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List invoices
// @Description  Status filtering is applied on the derived effective status, so "overdue" and "paid" work without those values ever being stored.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id query string false "Filter by patient"
// @Param        doctor_id  query string false "Filter by doctor"
// @Param        status     query string false "draft|sent|paid|overdue|cancelled|refunded|all"
// @Param        from       query string false "Issue date lower bound (YYYY-MM-DD)"
// @Param        to         query string false "Issue date upper bound (YYYY-MM-DD)"
// @Param        page       query int    false "Page"  default(1)
// @Param        limit      query int    false "Limit" default(50)
// @Success      200 {object} dto.InvoiceListResponse
// @Router       /v1/invoices [get]
func (h *InvoicesHandler) List(c *gin.Context) {
	var filter dto.InvoiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list invoices"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a draft invoice
// @Description  Only drafts can be edited. Line items and totals are recomputed from scratch.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Invoice UUID"
// @Param        body body dto.UpdateInvoiceRequest true "Fields to update"
// @Success      200  {object} dto.InvoiceResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError "Invoice is no longer a draft"
// @Router       /v1/invoices/{id} [put]
func (h *InvoicesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Update(c.Request.Context(), id, claims.Username, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Send godoc
// @Summary      Send an invoice
// @Description  Moves a draft to sent and queues PDF generation and email delivery in the background.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      200 {object} dto.InvoiceResponse
// @Failure      409 {object} apierror.APIError "Transition not allowed from current status"
// @Router       /v1/invoices/{id}/send [post]
func (h *InvoicesHandler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Send(c.Request.Context(), id, claims.Username)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary      Cancel an invoice
// @Description  Requires a reason. A fully paid invoice cannot be cancelled; refund it instead.
// @Tags         invoices
// @Accept       json
// @Security     BearerAuth
// @Param        id   path string true "Invoice UUID"
// @Param        body body dto.CancelInvoiceRequest true "Cancellation reason"
// @Success      204  "No Content"
// @Failure      409  {object} apierror.APIError
// @Router       /v1/invoices/{id}/cancel [post]
func (h *InvoicesHandler) Cancel(c *gin.Context) {
	h.override(c, h.svc.Cancel)
}

// Refund godoc
// @Summary      Refund an invoice
// @Tags         invoices
// @Accept       json
// @Security     BearerAuth
// @Param        id   path string true "Invoice UUID"
// @Param        body body dto.CancelInvoiceRequest true "Refund reason"
// @Success      204  "No Content"
// @Failure      409  {object} apierror.APIError
// @Router       /v1/invoices/{id}/refund [post]
func (h *InvoicesHandler) Refund(c *gin.Context) {
	h.override(c, h.svc.Refund)
}

func (h *InvoicesHandler) override(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, username, reason string) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.CancelInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := fn(c.Request.Context(), id, claims.Username, req.Reason); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordPayment godoc
// @Summary      Record a payment
// @Description  Only completed payments count toward the paid amount. Overpayments are accepted but flagged with a warning.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Invoice UUID"
// @Param        body body dto.RecordPaymentRequest true "Payment"
// @Success      200  {object} dto.InvoiceResponse
// @Failure      409  {object} apierror.APIError "Invoice does not accept payments in its current status"
// @Router       /v1/invoices/{id}/payments [post]
func (h *InvoicesHandler) RecordPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.RecordPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.RecordPayment(c.Request.Context(), id, claims.Username, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadPDF godoc
// @Summary      Download the invoice PDF
// @Description  Returns 404 until the background generator has produced the document.
// @Tags         invoices
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      200 {file} file
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id}/pdf [get]
func (h *InvoicesHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	path, err := h.svc.PDFPath(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if path == "" {
		c.JSON(http.StatusNotFound, apierror.New("PDF not generated yet"))
		return
	}
	c.File(path)
}

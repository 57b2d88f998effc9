package handler

import (
	"net/http"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/apierror"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Create godoc
// @Summary      Add a catalog service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateServiceRequest true "Service"
// @Success      201  {object} dto.ServiceResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/services [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Get a catalog service
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Service UUID"
// @Success      200 {object} dto.ServiceResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/services/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
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
// @Summary      List catalog services
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        category         query string false "Filter by category"
// @Param        include_inactive query bool   false "Include deactivated services"
// @Param        page             query int    false "Page (default 1)"
// @Param        limit            query int    false "Records per page (default 50)"
// @Success      200 {object} dto.ServiceListResponse
// @Router       /v1/services [get]
func (h *CatalogHandler) List(c *gin.Context) {
	var filter dto.ServiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list services"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a catalog service
// @Description  Edits never rewrite issued invoices — prices are copied at billing time.
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Service UUID"
// @Param        body body dto.UpdateServiceRequest true "Fields to update"
// @Success      200  {object} dto.ServiceResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/services/{id} [put]
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary      Deactivate a catalog service
// @Tags         services
// @Security     BearerAuth
// @Param        id path string true "Service UUID"
// @Success      204
// @Router       /v1/services/{id} [delete]
func (h *CatalogHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reactivate godoc
// @Summary      Reactivate a catalog service
// @Tags         services
// @Security     BearerAuth
// @Param        id path string true "Service UUID"
// @Success      204
// @Router       /v1/services/{id}/reactivate [post]
func (h *CatalogHandler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Reactivate(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetPriceOverride godoc
// @Summary      Set a per-doctor price
// @Description  Upserts the price a specific doctor charges for this service.
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Service UUID"
// @Param        body body dto.SetPriceOverrideRequest true "Doctor and price"
// @Success      200  {object} dto.ServiceResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/services/{id}/price-overrides [put]
func (h *CatalogHandler) SetPriceOverride(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.SetPriceOverrideRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetPriceOverride(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemovePriceOverride godoc
// @Summary      Remove a per-doctor price
// @Tags         services
// @Security     BearerAuth
// @Param        id        path string true "Service UUID"
// @Param        doctor_id path string true "Doctor UUID"
// @Success      204
// @Router       /v1/services/{id}/price-overrides/{doctor_id} [delete]
func (h *CatalogHandler) RemovePriceOverride(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	doctorID, err := uuid.Parse(c.Param("doctor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid doctor ID"))
		return
	}
	if err := h.svc.RemovePriceOverride(c.Request.Context(), serviceID, doctorID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

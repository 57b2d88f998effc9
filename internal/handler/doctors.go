package handler

import (
	"net/http"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/apierror"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DoctorsHandler struct{ svc service.DoctorService }

func NewDoctorsHandler(svc service.DoctorService) *DoctorsHandler {
	return &DoctorsHandler{svc: svc}
}

// Create godoc
// @Summary      Register a doctor
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateDoctorRequest true "Doctor"
// @Success      201  {object} dto.DoctorResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/doctors [post]
func (h *DoctorsHandler) Create(c *gin.Context) {
	var req dto.CreateDoctorRequest
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
// @Summary      Get a doctor
// @Tags         doctors
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Doctor UUID"
// @Success      200 {object} dto.DoctorResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/doctors/{id} [get]
func (h *DoctorsHandler) Get(c *gin.Context) {
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
// @Summary      List doctors
// @Tags         doctors
// @Produce      json
// @Security     BearerAuth
// @Param        specialty        query string false "Filter by specialty"
// @Param        include_inactive query bool   false "Include deactivated doctors"
// @Param        page             query int    false "Page (default 1)"
// @Param        limit            query int    false "Records per page (default 50)"
// @Success      200 {object} dto.DoctorListResponse
// @Router       /v1/doctors [get]
func (h *DoctorsHandler) List(c *gin.Context) {
	var filter dto.DoctorFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list doctors"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a doctor
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Doctor UUID"
// @Param        body body dto.UpdateDoctorRequest true "Fields to update"
// @Success      200  {object} dto.DoctorResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/doctors/{id} [put]
func (h *DoctorsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateDoctorRequest
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
// @Summary      Deactivate a doctor
// @Tags         doctors
// @Security     BearerAuth
// @Param        id path string true "Doctor UUID"
// @Success      204
// @Router       /v1/doctors/{id} [delete]
func (h *DoctorsHandler) Deactivate(c *gin.Context) {
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
// @Summary      Reactivate a doctor
// @Tags         doctors
// @Security     BearerAuth
// @Param        id path string true "Doctor UUID"
// @Success      204
// @Router       /v1/doctors/{id}/reactivate [post]
func (h *DoctorsHandler) Reactivate(c *gin.Context) {
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

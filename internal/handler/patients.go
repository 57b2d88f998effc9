package handler

import (
	"net/http"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/apierror"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PatientsHandler struct{ svc service.PatientService }

func NewPatientsHandler(svc service.PatientService) *PatientsHandler {
	return &PatientsHandler{svc: svc}
}

// Create godoc
// @Summary      Register a patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreatePatientRequest true "Patient"
// @Success      201  {object} dto.PatientResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/patients [post]
func (h *PatientsHandler) Create(c *gin.Context) {
	var req dto.CreatePatientRequest
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
// @Summary      Get a patient
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Patient UUID"
// @Success      200 {object} dto.PatientResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/patients/{id} [get]
func (h *PatientsHandler) Get(c *gin.Context) {
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
// @Summary      List patients
// @Description  Paginated, searchable by name or phone.
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        search           query string false "Matches first name, last name or phone"
// @Param        include_inactive query bool   false "Include deactivated patients"
// @Param        page             query int    false "Page (default 1)"
// @Param        limit            query int    false "Records per page (default 50)"
// @Success      200 {object} dto.PatientListResponse
// @Router       /v1/patients [get]
func (h *PatientsHandler) List(c *gin.Context) {
	var filter dto.PatientFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list patients"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Patient UUID"
// @Param        body body dto.UpdatePatientRequest true "Fields to update"
// @Success      200  {object} dto.PatientResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/patients/{id} [put]
func (h *PatientsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdatePatientRequest
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
// @Summary      Deactivate a patient
// @Description  Soft delete — history and invoices remain intact.
// @Tags         patients
// @Security     BearerAuth
// @Param        id path string true "Patient UUID"
// @Success      204
// @Router       /v1/patients/{id} [delete]
func (h *PatientsHandler) Deactivate(c *gin.Context) {
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
// @Summary      Reactivate a patient
// @Tags         patients
// @Security     BearerAuth
// @Param        id path string true "Patient UUID"
// @Success      204
// @Router       /v1/patients/{id}/reactivate [post]
func (h *PatientsHandler) Reactivate(c *gin.Context) {
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

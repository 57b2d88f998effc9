package handler

import (
	"net/http"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/apierror"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentsHandler struct{ svc service.AppointmentService }

func NewAppointmentsHandler(svc service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{svc: svc}
}

// Create godoc
// @Summary      Book an appointment
// @Description  Books a time slot; rejects slots overlapping another scheduled appointment of the same doctor.
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateAppointmentRequest true "Appointment"
// @Success      201  {object} dto.AppointmentResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/appointments [post]
func (h *AppointmentsHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
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
// @Summary      Get an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Appointment UUID"
// @Success      200 {object} dto.AppointmentResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/appointments/{id} [get]
func (h *AppointmentsHandler) Get(c *gin.Context) {
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
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        doctor_id  query string false "Filter by doctor"
// @Param        patient_id query string false "Filter by patient"
// @Param        date       query string false "Day YYYY-MM-DD"
// @Param        status     query string false "scheduled | completed | cancelled | no_show | all"
// @Param        page       query int    false "Page (default 1)"
// @Param        limit      query int    false "Records per page (default 50)"
// @Success      200 {object} dto.AppointmentListResponse
// @Router       /v1/appointments [get]
func (h *AppointmentsHandler) List(c *gin.Context) {
	var filter dto.AppointmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list appointments"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reschedule godoc
// @Summary      Reschedule an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Appointment UUID"
// @Param        body body dto.RescheduleAppointmentRequest true "New slot"
// @Success      200  {object} dto.AppointmentResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/appointments/{id}/reschedule [post]
func (h *AppointmentsHandler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.RescheduleAppointmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Reschedule(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Complete godoc
// @Summary      Mark an appointment completed
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Appointment UUID"
// @Param        body body dto.CompleteAppointmentRequest false "Visit notes"
// @Success      200  {object} dto.AppointmentResponse
// @Router       /v1/appointments/{id}/complete [post]
func (h *AppointmentsHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.CompleteAppointmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Complete(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary      Cancel an appointment
// @Tags         appointments
// @Security     BearerAuth
// @Param        id path string true "Appointment UUID"
// @Success      204
// @Router       /v1/appointments/{id} [delete]
func (h *AppointmentsHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkNoShow godoc
// @Summary      Mark an appointment as no-show
// @Tags         appointments
// @Security     BearerAuth
// @Param        id path string true "Appointment UUID"
// @Success      204
// @Router       /v1/appointments/{id}/no-show [post]
func (h *AppointmentsHandler) MarkNoShow(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.MarkNoShow(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

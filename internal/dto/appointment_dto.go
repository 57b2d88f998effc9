package dto

type CreateAppointmentRequest struct {
	PatientID string  `json:"patient_id" validate:"required,uuid"`
	DoctorID  string  `json:"doctor_id"  validate:"required,uuid"`
	StartsAt  string  `json:"starts_at"  validate:"required"` // RFC 3339
	EndsAt    string  `json:"ends_at"    validate:"required"`
	Reason    *string `json:"reason"`
	Notes     *string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	StartsAt string `json:"starts_at" validate:"required"`
	EndsAt   string `json:"ends_at"   validate:"required"`
}

type CompleteAppointmentRequest struct {
	Notes *string `json:"notes"`
}

// AppointmentFilter is bound from the query string of GET /v1/appointments.
type AppointmentFilter struct {
	DoctorID  string `form:"doctor_id"  validate:"omitempty,uuid"`
	PatientID string `form:"patient_id" validate:"omitempty,uuid"`
	Date      string `form:"date"       validate:"omitempty,datetime=2006-01-02"`
	Status    string `form:"status"     validate:"omitempty,oneof=scheduled completed cancelled no_show all"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type AppointmentResponse struct {
	ID          string  `json:"id"`
	PatientID   string  `json:"patient_id"`
	PatientName string  `json:"patient_name,omitempty"`
	DoctorID    string  `json:"doctor_id"`
	DoctorName  string  `json:"doctor_name,omitempty"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      string  `json:"ends_at"`
	Reason      *string `json:"reason,omitempty"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type AppointmentListResponse struct {
	Data  []AppointmentResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type CreatePatientRequest struct {
	FirstName         string  `json:"first_name" validate:"required"`
	LastName          string  `json:"last_name"  validate:"required"`
	DateOfBirth       *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender            *string `json:"gender" validate:"omitempty,oneof=female male other unspecified"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Address           *string `json:"address"`
	InsuranceProvider *string `json:"insurance_provider"`
	InsuranceNumber   *string `json:"insurance_number"`
	Notes             *string `json:"notes"`
}

type UpdatePatientRequest struct {
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	DateOfBirth       *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender            *string `json:"gender" validate:"omitempty,oneof=female male other unspecified"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Address           *string `json:"address"`
	InsuranceProvider *string `json:"insurance_provider"`
	InsuranceNumber   *string `json:"insurance_number"`
	Notes             *string `json:"notes"`
}

// PatientFilter is bound from the query string of GET /v1/patients.
type PatientFilter struct {
	// Search matches against first name, last name, and phone.
	Search          string `form:"search"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page,default=1"   validate:"min=1"`
	Limit           int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type PatientResponse struct {
	ID                string  `json:"id"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	DateOfBirth       *string `json:"date_of_birth,omitempty"`
	Gender            *string `json:"gender,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Email             *string `json:"email,omitempty"`
	Address           *string `json:"address,omitempty"`
	InsuranceProvider *string `json:"insurance_provider,omitempty"`
	InsuranceNumber   *string `json:"insurance_number,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	Active            bool    `json:"active"`
	CreatedAt         string  `json:"created_at"`
}

type PatientListResponse struct {
	Data  []PatientResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

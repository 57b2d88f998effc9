package dto

import "github.com/shopspring/decimal"

type CreateDoctorRequest struct {
	FirstName       string          `json:"first_name" validate:"required"`
	LastName        string          `json:"last_name"  validate:"required"`
	Specialty       string          `json:"specialty"  validate:"required"`
	LicenseNumber   string          `json:"license_number" validate:"required"`
	Phone           *string         `json:"phone"`
	Email           *string         `json:"email" validate:"omitempty,email"`
	ConsultationFee decimal.Decimal `json:"consultation_fee" validate:"min=0"`
}

type UpdateDoctorRequest struct {
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	Specialty       string           `json:"specialty"`
	Phone           *string          `json:"phone"`
	Email           *string          `json:"email" validate:"omitempty,email"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee"`
}

type DoctorFilter struct {
	Specialty       string `form:"specialty"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page,default=1"   validate:"min=1"`
	Limit           int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type DoctorResponse struct {
	ID              string          `json:"id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Specialty       string          `json:"specialty"`
	LicenseNumber   string          `json:"license_number"`
	Phone           *string         `json:"phone,omitempty"`
	Email           *string         `json:"email,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Active          bool            `json:"active"`
	CreatedAt       string          `json:"created_at"`
}

type DoctorListResponse struct {
	Data  []DoctorResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

package dto

import "github.com/shopspring/decimal"

type CreateServiceRequest struct {
	Name      string          `json:"name"     validate:"required"`
	Type      string          `json:"type"     validate:"required,oneof=consultation procedure lab imaging other"`
	Category  string          `json:"category" validate:"required"`
	BasePrice decimal.Decimal `json:"base_price" validate:"min=0"`
	Taxable   *bool           `json:"taxable"`
}

type UpdateServiceRequest struct {
	Name      string           `json:"name"`
	Type      string           `json:"type" validate:"omitempty,oneof=consultation procedure lab imaging other"`
	Category  string           `json:"category"`
	BasePrice *decimal.Decimal `json:"base_price"`
	Taxable   *bool            `json:"taxable"`
}

type SetPriceOverrideRequest struct {
	DoctorID string          `json:"doctor_id" validate:"required,uuid"`
	Price    decimal.Decimal `json:"price"     validate:"min=0"`
}

type ServiceFilter struct {
	Category        string `form:"category"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page,default=1"   validate:"min=1"`
	Limit           int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PriceOverrideResponse struct {
	DoctorID string          `json:"doctor_id"`
	Price    decimal.Decimal `json:"price"`
}

type ServiceResponse struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Type      string                  `json:"type"`
	Category  string                  `json:"category"`
	BasePrice decimal.Decimal         `json:"base_price"`
	Taxable   bool                    `json:"taxable"`
	Active    bool                    `json:"active"`
	Overrides []PriceOverrideResponse `json:"price_overrides,omitempty"`
	CreatedAt string                  `json:"created_at"`
}

type ServiceListResponse struct {
	Data  []ServiceResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

package dto

import "github.com/shopspring/decimal"

// ─── Tax rates ───────────────────────────────────────────────────────────────

type CreateTaxRateRequest struct {
	Name      string          `json:"name" validate:"required"`
	Kind      string          `json:"kind" validate:"required,oneof=percentage fixed"`
	Rate      decimal.Decimal `json:"rate"   validate:"min=0"`
	Amount    decimal.Decimal `json:"amount" validate:"min=0"`
	AppliesTo string          `json:"applies_to" validate:"omitempty,oneof=subtotal item"`
}

type UpdateTaxRateRequest struct {
	Name      string           `json:"name"`
	Rate      *decimal.Decimal `json:"rate"`
	Amount    *decimal.Decimal `json:"amount"`
	AppliesTo string           `json:"applies_to" validate:"omitempty,oneof=subtotal item"`
	Active    *bool            `json:"active"`
}

type TaxRateResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
	AppliesTo string          `json:"applies_to"`
	Active    bool            `json:"active"`
}

// ─── Discounts ───────────────────────────────────────────────────────────────

type CreateDiscountRequest struct {
	Name       string          `json:"name"  validate:"required"`
	Kind       string          `json:"kind"  validate:"required,oneof=percentage fixed package"`
	Value      decimal.Decimal `json:"value" validate:"min=0"`
	Scope      string          `json:"scope" validate:"omitempty,oneof=total item service-type"`
	ValidFrom  *string         `json:"valid_from"  validate:"omitempty,datetime=2006-01-02"`
	ValidUntil *string         `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateDiscountRequest struct {
	Name       string           `json:"name"`
	Value      *decimal.Decimal `json:"value"`
	ValidFrom  *string          `json:"valid_from"  validate:"omitempty,datetime=2006-01-02"`
	ValidUntil *string          `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
	Active     *bool            `json:"active"`
}

type DiscountResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Kind       string          `json:"kind"`
	Value      decimal.Decimal `json:"value"`
	Scope      string          `json:"scope"`
	ValidFrom  *string         `json:"valid_from,omitempty"`
	ValidUntil *string         `json:"valid_until,omitempty"`
	Active     bool            `json:"active"`
}

// ─── Country settings ────────────────────────────────────────────────────────

type CountrySettingsResponse struct {
	Code           string          `json:"code"`
	Currency       string          `json:"currency"`
	CurrencySymbol string          `json:"currency_symbol"`
	DateFormat     string          `json:"date_format"`
	DefaultTaxName string          `json:"default_tax_name"`
	DefaultTaxRate decimal.Decimal `json:"default_tax_rate"`
	DefaultTerms   string          `json:"default_terms"`
	Supported      []string        `json:"supported_countries,omitempty"`
}

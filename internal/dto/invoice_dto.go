package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type InvoiceItemRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	// UnitPrice overrides the catalog price when set (e.g. negotiated
	// insurance rates). Omitted = resolve from catalog.
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty"`
}

type CreateInvoiceRequest struct {
	PatientID    string               `json:"patient_id" validate:"required,uuid"`
	DoctorID     string               `json:"doctor_id"  validate:"required,uuid"`
	IssueDate    string               `json:"issue_date" validate:"required"`
	PaymentTerms string               `json:"payment_terms"`
	Items        []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes        *string              `json:"notes"`
}

// UpdateInvoiceRequest replaces the line items of a draft invoice.
// Totals are recomputed server-side; clients never submit totals.
type UpdateInvoiceRequest struct {
	IssueDate    string               `json:"issue_date" validate:"omitempty"`
	PaymentTerms string               `json:"payment_terms"`
	Items        []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes        *string              `json:"notes"`
}

type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Method string          `json:"method" validate:"required,oneof=cash credit_card debit_card check bank_transfer insurance online"`
	// PaidAt defaults to now when omitted.
	PaidAt    *string `json:"paid_at" validate:"omitempty,datetime=2006-01-02"`
	Status    string  `json:"status"  validate:"omitempty,oneof=pending completed failed"`
	Reference *string `json:"reference"`
}

type CancelInvoiceRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

// InvoiceFilter is bound from the query string of GET /v1/invoices.
type InvoiceFilter struct {
	PatientID string `form:"patient_id" validate:"omitempty,uuid"`
	DoctorID  string `form:"doctor_id"  validate:"omitempty,uuid"`
	// Status filters on the derived effective status.
	Status string `form:"status,default=all" validate:"omitempty,oneof=draft sent paid overdue cancelled refunded all"`
	From   string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `form:"to"   validate:"omitempty,datetime=2006-01-02"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type InvoiceItemResponse struct {
	ServiceID string          `json:"service_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

type PaymentResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Status      string          `json:"status"`
	PaidAt      string          `json:"paid_at"`
	ProcessedBy string          `json:"processed_by"`
	Reference   *string         `json:"reference,omitempty"`
}

type InvoiceResponse struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	PatientID    string `json:"patient_id"`
	PatientName  string `json:"patient_name,omitempty"`
	DoctorID     string `json:"doctor_id"`
	DoctorName   string `json:"doctor_name,omitempty"`
	IssueDate    string `json:"issue_date"`
	DueDate      string `json:"due_date"`
	PaymentTerms string `json:"payment_terms"`
	// Status is the derived effective status; StoredStatus is what the
	// row carries (draft|sent|cancelled|refunded).
	Status        string                `json:"status"`
	StoredStatus  string                `json:"stored_status"`
	Items         []InvoiceItemResponse `json:"items"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	DiscountTotal decimal.Decimal       `json:"discount_total"`
	TaxTotal      decimal.Decimal       `json:"tax_total"`
	Total         decimal.Decimal       `json:"total"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	Balance       decimal.Decimal       `json:"balance"`
	Overpaid      bool                  `json:"overpaid,omitempty"`
	Warnings      []string              `json:"warnings,omitempty"`
	Payments      []PaymentResponse     `json:"payments,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
	PDFUrl        *string               `json:"pdf_url,omitempty"`
	CreatedBy     string                `json:"created_by"`
	CreatedAt     string                `json:"created_at"`
}

type InvoiceListResponse struct {
	Data  []InvoiceResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is one bill issued to a patient for services rendered.
// Monetary columns are caches of what internal/billing computes — they
// are refreshed on every write and recomputed on read; the read path
// never trusts them for status derivation.
type Invoice struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Number format: INV-<year>-<sequence>, sequence from a PG sequence.
	Number    string    `gorm:"uniqueIndex;not null"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index"`

	IssueDate    time.Time `gorm:"type:date;not null"`
	DueDate      time.Time `gorm:"type:date;not null;index"`
	PaymentTerms string    `gorm:"type:varchar(30);not null;default:'Net 30'"`

	// Status stores only draft|sent|cancelled|refunded; paid/overdue are
	// derived at read time.
	Status string `gorm:"type:varchar(20);not null;default:'draft'"`

	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Balance       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Notes          *string
	CreatedBy      string `gorm:"not null"`
	LastModifiedBy string `gorm:"not null"`

	PDFPath        *string `gorm:"column:pdf_path"`
	ReminderSentAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID"`
	Patient  *Patient      `gorm:"foreignKey:PatientID"`
	Doctor   *Doctor       `gorm:"foreignKey:DoctorID"`
}

// InvoiceItem is one billed line. Name and category are denormalized
// from the catalog at billing time.
type InvoiceItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"not null"`
	Category  string          `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Total is always quantity × unit price, recomputed on every write.
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Taxable   bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
}

// Payment methods.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodDebitCard    = "debit_card"
	PaymentMethodCheck        = "check"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodInsurance    = "insurance"
	PaymentMethodOnline       = "online"
)

// Payment is an immutable record of money applied against an invoice.
// There is no update path — corrections create new rows (refunds), the
// same way cash-ledger entries are never edited.
type Payment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method    string          `gorm:"type:varchar(20);not null"`
	// Status: pending | completed | failed | refunded. Only completed
	// payments count toward the invoice's paid amount.
	Status      string    `gorm:"type:varchar(20);not null;default:'completed'"`
	PaidAt      time.Time `gorm:"not null"`
	ProcessedBy string    `gorm:"not null"`
	Reference   *string
	CreatedAt   time.Time
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRate is a staff-configured tax rule.
// Kind: "percentage" | "fixed". AppliesTo: "subtotal" | "item".
// Multiple active taxes apply additively.
type TaxRate struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"not null"`
	Kind string    `gorm:"type:varchar(20);not null;default:'percentage'"`
	// Rate is a percent for percentage rules (8.5 = 8.5%).
	Rate decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	// Amount is the flat value for fixed rules.
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AppliesTo string          `gorm:"type:varchar(20);not null;default:'subtotal'"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Discount is a staff-configured discount rule.
// Kind: "percentage" | "fixed" | "package". Scope: "total" | "item" | "service-type".
// ValidFrom/ValidUntil bound when the discount applies; nil means open.
type Discount struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string          `gorm:"not null"`
	Kind       string          `gorm:"type:varchar(20);not null;default:'percentage'"`
	Value      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Scope      string          `gorm:"type:varchar(20);not null;default:'total'"`
	ValidFrom  *time.Time
	ValidUntil *time.Time
	Active     bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidOn reports whether the discount's date window covers d.
func (d *Discount) ValidOn(t time.Time) bool {
	if d.ValidFrom != nil && t.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidUntil != nil && t.After(*d.ValidUntil) {
		return false
	}
	return true
}

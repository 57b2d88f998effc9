package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceItem is a catalog entry for a billable clinic service.
// Read-only from the invoice calculator's perspective — invoices copy
// the name/category at billing time so later edits don't rewrite
// history.
type ServiceItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"not null;index"`
	Type     string    `gorm:"type:varchar(30);not null;default:'procedure'"`
	Category string    `gorm:"not null"`
	// BasePrice applies unless a doctor-specific override exists.
	BasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Taxable   bool            `gorm:"not null;default:true"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	PriceOverrides []ServicePriceOverride `gorm:"foreignKey:ServiceID"`
}

// ServicePriceOverride sets a per-doctor price for a catalog service.
type ServicePriceOverride struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_service_doctor"`
	DoctorID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_service_doctor"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}

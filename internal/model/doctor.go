package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor is a practitioner who sees patients and renders services.
type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName string    `gorm:"not null"`
	LastName  string    `gorm:"not null;index"`
	Specialty string    `gorm:"not null"`
	// LicenseNumber is free text; uniqueness enforced, validity is not.
	LicenseNumber   string `gorm:"uniqueIndex;not null"`
	Phone           *string
	Email           *string
	ConsultationFee decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Active          bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

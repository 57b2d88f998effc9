package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a person receiving care at the clinic.
type Patient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName   string    `gorm:"not null;index"`
	LastName    string    `gorm:"not null;index"`
	DateOfBirth *time.Time
	Gender      *string `gorm:"type:varchar(20)"`
	Phone       *string `gorm:"type:varchar(30);index"`
	Email       *string
	Address     *string
	// InsuranceProvider / InsuranceNumber are free text; no verification.
	InsuranceProvider *string
	InsuranceNumber   *string
	Notes             *string
	Active            bool `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

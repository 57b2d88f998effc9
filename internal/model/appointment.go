package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// Appointment books a patient with a doctor for a time slot.
// Overlap checking happens in the service layer against scheduled
// appointments of the same doctor.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_doctor_time"`
	StartsAt  time.Time `gorm:"not null;index:idx_appointments_doctor_time"`
	EndsAt    time.Time `gorm:"not null"`
	Reason    *string
	Status    string `gorm:"type:varchar(20);not null;default:'scheduled'"`
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Patient *Patient `gorm:"foreignKey:PatientID"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID"`
}

package repository

import (
	"context"
	"time"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *model.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filter dto.AppointmentFilter) ([]model.Appointment, int64, error)
	// CountOverlapping counts scheduled appointments of the doctor that
	// intersect [start, end), excluding the given appointment id (Nil to
	// exclude nothing).
	CountOverlapping(ctx context.Context, doctorID uuid.UUID, start, end time.Time, exclude uuid.UUID) (int64, error)
	Update(ctx context.Context, a *model.Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type appointmentRepo struct{ db *gorm.DB }

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository { return &appointmentRepo{db: db} }

func (r *appointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *appointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var a model.Appointment
	err := r.db.WithContext(ctx).Preload("Patient").Preload("Doctor").First(&a, id).Error
	return &a, err
}

func (r *appointmentRepo) List(ctx context.Context, filter dto.AppointmentFilter) ([]model.Appointment, int64, error) {
	var appts []model.Appointment
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Appointment{})
	if filter.DoctorID != "" {
		q = q.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.PatientID != "" {
		q = q.Where("patient_id = ?", filter.PatientID)
	}
	if filter.Date != "" {
		q = q.Where("DATE(starts_at) = ?", filter.Date)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Patient").Preload("Doctor").
		Order("starts_at").
		Offset(offset).Limit(filter.Limit).
		Find(&appts).Error
	return appts, total, err
}

func (r *appointmentRepo) CountOverlapping(ctx context.Context, doctorID uuid.UUID, start, end time.Time, exclude uuid.UUID) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("doctor_id = ? AND status = ?", doctorID, model.AppointmentScheduled).
		Where("starts_at < ? AND ends_at > ?", end, start)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *appointmentRepo) Update(ctx context.Context, a *model.Appointment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Appointment{}).Where("id = ?", id).Update("status", status).Error
}

package repository

import (
	"context"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, d *model.Doctor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	List(ctx context.Context, filter dto.DoctorFilter) ([]model.Doctor, int64, error)
	Update(ctx context.Context, d *model.Doctor) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type doctorRepo struct{ db *gorm.DB }

func NewDoctorRepository(db *gorm.DB) DoctorRepository { return &doctorRepo{db: db} }

func (r *doctorRepo) Create(ctx context.Context, d *model.Doctor) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *doctorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var d model.Doctor
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *doctorRepo) List(ctx context.Context, filter dto.DoctorFilter) ([]model.Doctor, int64, error) {
	var doctors []model.Doctor
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Doctor{})
	if !filter.IncludeInactive {
		q = q.Where("active = true")
	}
	if filter.Specialty != "" {
		q = q.Where("specialty = ?", filter.Specialty)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("last_name, first_name").
		Offset(offset).Limit(filter.Limit).
		Find(&doctors).Error
	return doctors, total, err
}

func (r *doctorRepo) Update(ctx context.Context, d *model.Doctor) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *doctorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Doctor{}).Where("id = ?", id).Update("active", false).Error
}

func (r *doctorRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Doctor{}).Where("id = ?", id).Update("active", true).Error
}

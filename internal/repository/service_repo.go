package repository

import (
	"context"
	"errors"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *model.ServiceItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceItem, error)
	List(ctx context.Context, filter dto.ServiceFilter) ([]model.ServiceItem, int64, error)
	Update(ctx context.Context, s *model.ServiceItem) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	// UpsertPriceOverride sets the per-doctor price for a service.
	UpsertPriceOverride(ctx context.Context, o *model.ServicePriceOverride) error
	DeletePriceOverride(ctx context.Context, serviceID, doctorID uuid.UUID) error
	// FindPriceOverride returns nil without error when no override exists.
	FindPriceOverride(ctx context.Context, serviceID, doctorID uuid.UUID) (*model.ServicePriceOverride, error)
}

type serviceRepo struct{ db *gorm.DB }

func NewServiceRepository(db *gorm.DB) ServiceRepository { return &serviceRepo{db: db} }

func (r *serviceRepo) Create(ctx context.Context, s *model.ServiceItem) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *serviceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceItem, error) {
	var s model.ServiceItem
	err := r.db.WithContext(ctx).Preload("PriceOverrides").First(&s, id).Error
	return &s, err
}

func (r *serviceRepo) List(ctx context.Context, filter dto.ServiceFilter) ([]model.ServiceItem, int64, error) {
	var services []model.ServiceItem
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.ServiceItem{})
	if !filter.IncludeInactive {
		q = q.Where("active = true")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("PriceOverrides").
		Order("category, name").
		Offset(offset).Limit(filter.Limit).
		Find(&services).Error
	return services, total, err
}

func (r *serviceRepo) Update(ctx context.Context, s *model.ServiceItem) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *serviceRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ServiceItem{}).Where("id = ?", id).Update("active", false).Error
}

func (r *serviceRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ServiceItem{}).Where("id = ?", id).Update("active", true).Error
}

func (r *serviceRepo) UpsertPriceOverride(ctx context.Context, o *model.ServicePriceOverride) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "service_id"}, {Name: "doctor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price"}),
	}).Create(o).Error
}

func (r *serviceRepo) DeletePriceOverride(ctx context.Context, serviceID, doctorID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("service_id = ? AND doctor_id = ?", serviceID, doctorID).
		Delete(&model.ServicePriceOverride{}).Error
}

func (r *serviceRepo) FindPriceOverride(ctx context.Context, serviceID, doctorID uuid.UUID) (*model.ServicePriceOverride, error) {
	var o model.ServicePriceOverride
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND doctor_id = ?", serviceID, doctorID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

package repository

import (
	"context"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillingConfigRepository stores the staff-configured tax and discount
// rules consumed by invoice computation.
type BillingConfigRepository interface {
	CreateTaxRate(ctx context.Context, t *model.TaxRate) error
	FindTaxRate(ctx context.Context, id uuid.UUID) (*model.TaxRate, error)
	ListTaxRates(ctx context.Context, activeOnly bool) ([]model.TaxRate, error)
	UpdateTaxRate(ctx context.Context, t *model.TaxRate) error

	CreateDiscount(ctx context.Context, d *model.Discount) error
	FindDiscount(ctx context.Context, id uuid.UUID) (*model.Discount, error)
	ListDiscounts(ctx context.Context, activeOnly bool) ([]model.Discount, error)
	UpdateDiscount(ctx context.Context, d *model.Discount) error
}

type billingConfigRepo struct{ db *gorm.DB }

func NewBillingConfigRepository(db *gorm.DB) BillingConfigRepository {
	return &billingConfigRepo{db: db}
}

func (r *billingConfigRepo) CreateTaxRate(ctx context.Context, t *model.TaxRate) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *billingConfigRepo) FindTaxRate(ctx context.Context, id uuid.UUID) (*model.TaxRate, error) {
	var t model.TaxRate
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *billingConfigRepo) ListTaxRates(ctx context.Context, activeOnly bool) ([]model.TaxRate, error) {
	var taxes []model.TaxRate
	q := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		q = q.Where("active = true")
	}
	err := q.Find(&taxes).Error
	return taxes, err
}

func (r *billingConfigRepo) UpdateTaxRate(ctx context.Context, t *model.TaxRate) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *billingConfigRepo) CreateDiscount(ctx context.Context, d *model.Discount) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *billingConfigRepo) FindDiscount(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	var d model.Discount
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *billingConfigRepo) ListDiscounts(ctx context.Context, activeOnly bool) ([]model.Discount, error) {
	var discounts []model.Discount
	q := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		q = q.Where("active = true")
	}
	err := q.Find(&discounts).Error
	return discounts, err
}

func (r *billingConfigRepo) UpdateDiscount(ctx context.Context, d *model.Discount) error {
	return r.db.WithContext(ctx).Save(d).Error
}

package service

import (
	"context"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/country"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/repository"

	"github.com/google/uuid"
)

// BillingConfigService manages the staff-configured tax and discount
// rules and exposes the clinic's country billing defaults.
type BillingConfigService interface {
	CreateTaxRate(ctx context.Context, req dto.CreateTaxRateRequest) (*dto.TaxRateResponse, error)
	ListTaxRates(ctx context.Context, includeInactive bool) ([]dto.TaxRateResponse, error)
	UpdateTaxRate(ctx context.Context, id uuid.UUID, req dto.UpdateTaxRateRequest) (*dto.TaxRateResponse, error)

	CreateDiscount(ctx context.Context, req dto.CreateDiscountRequest) (*dto.DiscountResponse, error)
	ListDiscounts(ctx context.Context, includeInactive bool) ([]dto.DiscountResponse, error)
	UpdateDiscount(ctx context.Context, id uuid.UUID, req dto.UpdateDiscountRequest) (*dto.DiscountResponse, error)

	CountrySettings() dto.CountrySettingsResponse
}

type billingConfigService struct {
	repo repository.BillingConfigRepository
	loc  country.Settings
}

func NewBillingConfigService(repo repository.BillingConfigRepository, loc country.Settings) BillingConfigService {
	return &billingConfigService{repo: repo, loc: loc}
}

// ── Tax rates ────────────────────────────────────────────────────────────────

func (s *billingConfigService) CreateTaxRate(ctx context.Context, req dto.CreateTaxRateRequest) (*dto.TaxRateResponse, error) {
	appliesTo := req.AppliesTo
	if appliesTo == "" {
		appliesTo = "subtotal"
	}
	t := &model.TaxRate{
		Name:      req.Name,
		Kind:      req.Kind,
		Rate:      req.Rate,
		Amount:    req.Amount,
		AppliesTo: appliesTo,
		Active:    true,
	}
	if err := s.repo.CreateTaxRate(ctx, t); err != nil {
		return nil, err
	}
	return taxRateToResponse(t), nil
}

func (s *billingConfigService) ListTaxRates(ctx context.Context, includeInactive bool) ([]dto.TaxRateResponse, error) {
	rates, err := s.repo.ListTaxRates(ctx, !includeInactive)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TaxRateResponse, len(rates))
	for i := range rates {
		resp[i] = *taxRateToResponse(&rates[i])
	}
	return resp, nil
}

func (s *billingConfigService) UpdateTaxRate(ctx context.Context, id uuid.UUID, req dto.UpdateTaxRateRequest) (*dto.TaxRateResponse, error) {
	t, err := s.repo.FindTaxRate(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Name != "" {
		t.Name = req.Name
	}
	if req.Rate != nil {
		t.Rate = *req.Rate
	}
	if req.Amount != nil {
		t.Amount = *req.Amount
	}
	if req.AppliesTo != "" {
		t.AppliesTo = req.AppliesTo
	}
	if req.Active != nil {
		t.Active = *req.Active
	}
	if err := s.repo.UpdateTaxRate(ctx, t); err != nil {
		return nil, err
	}
	return taxRateToResponse(t), nil
}

// ── Discounts ────────────────────────────────────────────────────────────────

func (s *billingConfigService) CreateDiscount(ctx context.Context, req dto.CreateDiscountRequest) (*dto.DiscountResponse, error) {
	scope := req.Scope
	if scope == "" {
		scope = "total"
	}
	validFrom, err := parseOptionalDate(req.ValidFrom)
	if err != nil {
		return nil, err
	}
	validUntil, err := parseOptionalDate(req.ValidUntil)
	if err != nil {
		return nil, err
	}
	d := &model.Discount{
		Name:       req.Name,
		Kind:       req.Kind,
		Value:      req.Value,
		Scope:      scope,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
		Active:     true,
	}
	if err := s.repo.CreateDiscount(ctx, d); err != nil {
		return nil, err
	}
	return discountToResponse(d), nil
}

func (s *billingConfigService) ListDiscounts(ctx context.Context, includeInactive bool) ([]dto.DiscountResponse, error) {
	discounts, err := s.repo.ListDiscounts(ctx, !includeInactive)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DiscountResponse, len(discounts))
	for i := range discounts {
		resp[i] = *discountToResponse(&discounts[i])
	}
	return resp, nil
}

func (s *billingConfigService) UpdateDiscount(ctx context.Context, id uuid.UUID, req dto.UpdateDiscountRequest) (*dto.DiscountResponse, error) {
	d, err := s.repo.FindDiscount(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Name != "" {
		d.Name = req.Name
	}
	if req.Value != nil {
		d.Value = *req.Value
	}
	if req.ValidFrom != nil {
		validFrom, err := parseOptionalDate(req.ValidFrom)
		if err != nil {
			return nil, err
		}
		d.ValidFrom = validFrom
	}
	if req.ValidUntil != nil {
		validUntil, err := parseOptionalDate(req.ValidUntil)
		if err != nil {
			return nil, err
		}
		d.ValidUntil = validUntil
	}
	if req.Active != nil {
		d.Active = *req.Active
	}
	if err := s.repo.UpdateDiscount(ctx, d); err != nil {
		return nil, err
	}
	return discountToResponse(d), nil
}

// ── Country settings ─────────────────────────────────────────────────────────

func (s *billingConfigService) CountrySettings() dto.CountrySettingsResponse {
	return dto.CountrySettingsResponse{
		Code:           s.loc.Code,
		Currency:       s.loc.Currency,
		CurrencySymbol: s.loc.CurrencySymbol,
		DateFormat:     s.loc.DateFormat,
		DefaultTaxName: s.loc.DefaultTaxName,
		DefaultTaxRate: s.loc.DefaultTaxRate,
		DefaultTerms:   s.loc.DefaultTerms,
		Supported:      country.Codes(),
	}
}

func taxRateToResponse(t *model.TaxRate) *dto.TaxRateResponse {
	return &dto.TaxRateResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Kind:      t.Kind,
		Rate:      t.Rate,
		Amount:    t.Amount,
		AppliesTo: t.AppliesTo,
		Active:    t.Active,
	}
}

func discountToResponse(d *model.Discount) *dto.DiscountResponse {
	resp := &dto.DiscountResponse{
		ID:     d.ID.String(),
		Name:   d.Name,
		Kind:   d.Kind,
		Value:  d.Value,
		Scope:  d.Scope,
		Active: d.Active,
	}
	if d.ValidFrom != nil {
		v := d.ValidFrom.Format("2006-01-02")
		resp.ValidFrom = &v
	}
	if d.ValidUntil != nil {
		v := d.ValidUntil.Format("2006-01-02")
		resp.ValidUntil = &v
	}
	return resp
}

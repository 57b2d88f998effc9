package service

import (
	"context"
	"errors"
	"time"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/repository"

	"github.com/google/uuid"
)

// CatalogService manages the billable service catalog and per-doctor
// price overrides. Invoices copy prices out of the catalog at billing
// time, so edits here never rewrite issued invoices.
type CatalogService interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	List(ctx context.Context, filter dto.ServiceFilter) (*dto.ServiceListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	SetPriceOverride(ctx context.Context, serviceID uuid.UUID, req dto.SetPriceOverrideRequest) (*dto.ServiceResponse, error)
	RemovePriceOverride(ctx context.Context, serviceID, doctorID uuid.UUID) error
}

type catalogService struct {
	repo       repository.ServiceRepository
	doctorRepo repository.DoctorRepository
}

func NewCatalogService(repo repository.ServiceRepository, doctorRepo repository.DoctorRepository) CatalogService {
	return &catalogService{repo: repo, doctorRepo: doctorRepo}
}

func (s *catalogService) Create(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	taxable := true
	if req.Taxable != nil {
		taxable = *req.Taxable
	}
	svc := &model.ServiceItem{
		Name:      req.Name,
		Type:      req.Type,
		Category:  req.Category,
		BasePrice: req.BasePrice,
		Taxable:   taxable,
		Active:    true,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return serviceToResponse(svc), nil
}

func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return serviceToResponse(svc), nil
}

func (s *catalogService) List(ctx context.Context, filter dto.ServiceFilter) (*dto.ServiceListResponse, error) {
	services, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ServiceResponse, len(services))
	for i := range services {
		data[i] = *serviceToResponse(&services[i])
	}
	return &dto.ServiceListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Name != "" {
		svc.Name = req.Name
	}
	if req.Type != "" {
		svc.Type = req.Type
	}
	if req.Category != "" {
		svc.Category = req.Category
	}
	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, errors.New("base_price must not be negative")
		}
		svc.BasePrice = *req.BasePrice
	}
	if req.Taxable != nil {
		svc.Taxable = *req.Taxable
	}
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return serviceToResponse(svc), nil
}

func (s *catalogService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *catalogService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func (s *catalogService) SetPriceOverride(ctx context.Context, serviceID uuid.UUID, req dto.SetPriceOverrideRequest) (*dto.ServiceResponse, error) {
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, errors.New("invalid doctor_id")
	}
	if _, err := s.repo.FindByID(ctx, serviceID); err != nil {
		return nil, ErrNotFound
	}
	doctor, err := s.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, errors.New("doctor not found")
	}
	if !doctor.Active {
		return nil, errors.New("doctor is inactive")
	}

	override := &model.ServicePriceOverride{
		ServiceID: serviceID,
		DoctorID:  doctorID,
		Price:     req.Price,
	}
	if err := s.repo.UpsertPriceOverride(ctx, override); err != nil {
		return nil, err
	}
	return s.Get(ctx, serviceID)
}

func (s *catalogService) RemovePriceOverride(ctx context.Context, serviceID, doctorID uuid.UUID) error {
	return s.repo.DeletePriceOverride(ctx, serviceID, doctorID)
}

func serviceToResponse(svc *model.ServiceItem) *dto.ServiceResponse {
	resp := &dto.ServiceResponse{
		ID:        svc.ID.String(),
		Name:      svc.Name,
		Type:      svc.Type,
		Category:  svc.Category,
		BasePrice: svc.BasePrice,
		Taxable:   svc.Taxable,
		Active:    svc.Active,
		CreatedAt: svc.CreatedAt.Format(time.RFC3339),
	}
	for _, o := range svc.PriceOverrides {
		resp.Overrides = append(resp.Overrides, dto.PriceOverrideResponse{
			DoctorID: o.DoctorID.String(),
			Price:    o.Price,
		})
	}
	return resp
}

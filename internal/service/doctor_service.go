package service

import (
	"context"
	"time"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/repository"

	"github.com/google/uuid"
)

type DoctorService interface {
	Create(ctx context.Context, req dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	List(ctx context.Context, filter dto.DoctorFilter) (*dto.DoctorListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type doctorService struct {
	repo repository.DoctorRepository
}

func NewDoctorService(repo repository.DoctorRepository) DoctorService {
	return &doctorService{repo: repo}
}

func (s *doctorService) Create(ctx context.Context, req dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	d := &model.Doctor{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Specialty:       req.Specialty,
		LicenseNumber:   req.LicenseNumber,
		Phone:           req.Phone,
		Email:           req.Email,
		ConsultationFee: req.ConsultationFee,
		Active:          true,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return doctorToResponse(d), nil
}

func (s *doctorService) Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return doctorToResponse(d), nil
}

func (s *doctorService) List(ctx context.Context, filter dto.DoctorFilter) (*dto.DoctorListResponse, error) {
	doctors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		data[i] = *doctorToResponse(&doctors[i])
	}
	return &dto.DoctorListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *doctorService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.FirstName != "" {
		d.FirstName = req.FirstName
	}
	if req.LastName != "" {
		d.LastName = req.LastName
	}
	if req.Specialty != "" {
		d.Specialty = req.Specialty
	}
	if req.Phone != nil {
		d.Phone = req.Phone
	}
	if req.Email != nil {
		d.Email = req.Email
	}
	if req.ConsultationFee != nil {
		d.ConsultationFee = *req.ConsultationFee
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return doctorToResponse(d), nil
}

func (s *doctorService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *doctorService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func doctorToResponse(d *model.Doctor) *dto.DoctorResponse {
	return &dto.DoctorResponse{
		ID:              d.ID.String(),
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Specialty:       d.Specialty,
		LicenseNumber:   d.LicenseNumber,
		Phone:           d.Phone,
		Email:           d.Email,
		ConsultationFee: d.ConsultationFee,
		Active:          d.Active,
		CreatedAt:       d.CreatedAt.Format(time.RFC3339),
	}
}

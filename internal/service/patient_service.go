package service

import (
	"context"
	"time"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/repository"

	"github.com/google/uuid"
)

type PatientService interface {
	Create(ctx context.Context, req dto.CreatePatientRequest) (*dto.PatientResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	List(ctx context.Context, filter dto.PatientFilter) (*dto.PatientListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type patientService struct {
	repo repository.PatientRepository
}

func NewPatientService(repo repository.PatientRepository) PatientService {
	return &patientService{repo: repo}
}

func (s *patientService) Create(ctx context.Context, req dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	p := &model.Patient{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		DateOfBirth:       dob,
		Gender:            req.Gender,
		Phone:             req.Phone,
		Email:             req.Email,
		Address:           req.Address,
		InsuranceProvider: req.InsuranceProvider,
		InsuranceNumber:   req.InsuranceNumber,
		Notes:             req.Notes,
		Active:            true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return patientToResponse(p), nil
}

func (s *patientService) Get(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return patientToResponse(p), nil
}

func (s *patientService) List(ctx context.Context, filter dto.PatientFilter) (*dto.PatientListResponse, error) {
	patients, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		data[i] = *patientToResponse(&patients[i])
	}
	return &dto.PatientListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *patientService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.FirstName != "" {
		p.FirstName = req.FirstName
	}
	if req.LastName != "" {
		p.LastName = req.LastName
	}
	if req.DateOfBirth != nil {
		dob, err := parseOptionalDate(req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		p.DateOfBirth = dob
	}
	if req.Gender != nil {
		p.Gender = req.Gender
	}
	if req.Phone != nil {
		p.Phone = req.Phone
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Address != nil {
		p.Address = req.Address
	}
	if req.InsuranceProvider != nil {
		p.InsuranceProvider = req.InsuranceProvider
	}
	if req.InsuranceNumber != nil {
		p.InsuranceNumber = req.InsuranceNumber
	}
	if req.Notes != nil {
		p.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return patientToResponse(p), nil
}

func (s *patientService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *patientService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func patientToResponse(p *model.Patient) *dto.PatientResponse {
	resp := &dto.PatientResponse{
		ID:                p.ID.String(),
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		Gender:            p.Gender,
		Phone:             p.Phone,
		Email:             p.Email,
		Address:           p.Address,
		InsuranceProvider: p.InsuranceProvider,
		InsuranceNumber:   p.InsuranceNumber,
		Notes:             p.Notes,
		Active:            p.Active,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
	if p.DateOfBirth != nil {
		d := p.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &d
	}
	return resp
}

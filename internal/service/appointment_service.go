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

type AppointmentService interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	List(ctx context.Context, filter dto.AppointmentFilter) (*dto.AppointmentListResponse, error)
	Reschedule(ctx context.Context, id uuid.UUID, req dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, id uuid.UUID, req dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	MarkNoShow(ctx context.Context, id uuid.UUID) error
}

type appointmentService struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
) AppointmentService {
	return &appointmentService{repo: repo, patientRepo: patientRepo, doctorRepo: doctorRepo}
}

func (s *appointmentService) Create(ctx context.Context, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, errors.New("invalid patient_id")
	}
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, errors.New("invalid doctor_id")
	}
	start, end, err := parseSlot(req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.FindByID(ctx, patientID)
	if err != nil || !patient.Active {
		return nil, errors.New("patient not found or inactive")
	}
	doctor, err := s.doctorRepo.FindByID(ctx, doctorID)
	if err != nil || !doctor.Active {
		return nil, errors.New("doctor not found or inactive")
	}

	overlapping, err := s.repo.CountOverlapping(ctx, doctorID, start, end, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrScheduleConflict
	}

	a := &model.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		StartsAt:  start,
		EndsAt:    end,
		Reason:    req.Reason,
		Status:    model.AppointmentScheduled,
		Notes:     req.Notes,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	a.Patient = patient
	a.Doctor = doctor
	return appointmentToResponse(a), nil
}

func (s *appointmentService) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return appointmentToResponse(a), nil
}

func (s *appointmentService) List(ctx context.Context, filter dto.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		data[i] = *appointmentToResponse(&appointments[i])
	}
	return &dto.AppointmentListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *appointmentService) Reschedule(ctx context.Context, id uuid.UUID, req dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if a.Status != model.AppointmentScheduled {
		return nil, errors.New("only scheduled appointments can be rescheduled")
	}
	start, end, err := parseSlot(req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.repo.CountOverlapping(ctx, a.DoctorID, start, end, a.ID)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrScheduleConflict
	}

	a.StartsAt = start
	a.EndsAt = end
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return appointmentToResponse(a), nil
}

func (s *appointmentService) Complete(ctx context.Context, id uuid.UUID, req dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if a.Status != model.AppointmentScheduled {
		return nil, errors.New("only scheduled appointments can be completed")
	}
	a.Status = model.AppointmentCompleted
	if req.Notes != nil {
		a.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return appointmentToResponse(a), nil
}

func (s *appointmentService) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, model.AppointmentCancelled)
}

func (s *appointmentService) MarkNoShow(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, model.AppointmentNoShow)
}

func (s *appointmentService) setStatus(ctx context.Context, id uuid.UUID, status string) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if a.Status != model.AppointmentScheduled {
		return errors.New("appointment is no longer scheduled")
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// parseSlot validates a [start, end) time slot in RFC 3339.
func parseSlot(startsAt, endsAt string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startsAt)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid starts_at, expected RFC 3339")
	}
	end, err := time.Parse(time.RFC3339, endsAt)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid ends_at, expected RFC 3339")
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.New("ends_at must be after starts_at")
	}
	return start, end, nil
}

func appointmentToResponse(a *model.Appointment) *dto.AppointmentResponse {
	resp := &dto.AppointmentResponse{
		ID:        a.ID.String(),
		PatientID: a.PatientID.String(),
		DoctorID:  a.DoctorID.String(),
		StartsAt:  a.StartsAt.Format(time.RFC3339),
		EndsAt:    a.EndsAt.Format(time.RFC3339),
		Reason:    a.Reason,
		Status:    a.Status,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.Patient != nil {
		resp.PatientName = a.Patient.FirstName + " " + a.Patient.LastName
	}
	if a.Doctor != nil {
		resp.DoctorName = a.Doctor.FirstName + " " + a.Doctor.LastName
	}
	return resp
}

package service

// Tests for appointment scheduling, focused on the overlap guard.

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory AppointmentRepository stub ─────────────────────────────────────

type stubAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	cloned := *a
	r.appointments[a.ID] = &cloned
	return nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cloned := *a
	return &cloned, nil
}

func (r *stubAppointmentRepo) List(_ context.Context, _ dto.AppointmentFilter) ([]model.Appointment, int64, error) {
	var out []model.Appointment
	for _, a := range r.appointments {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *stubAppointmentRepo) CountOverlapping(_ context.Context, doctorID uuid.UUID, start, end time.Time, exclude uuid.UUID) (int64, error) {
	var count int64
	for _, a := range r.appointments {
		if a.ID == exclude || a.DoctorID != doctorID || a.Status != model.AppointmentScheduled {
			continue
		}
		if a.StartsAt.Before(end) && a.EndsAt.After(start) {
			count++
		}
	}
	return count, nil
}

func (r *stubAppointmentRepo) Update(_ context.Context, a *model.Appointment) error {
	cloned := *a
	r.appointments[a.ID] = &cloned
	return nil
}

func (r *stubAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	a, ok := r.appointments[id]
	if !ok {
		return errors.New("record not found")
	}
	a.Status = status
	return nil
}

var _ repository.AppointmentRepository = (*stubAppointmentRepo)(nil)

// ── Fixtures ─────────────────────────────────────────────────────────────────

type appointmentFixture struct {
	svc       AppointmentService
	patientID uuid.UUID
	doctorID  uuid.UUID
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	patients := newStubPatientRepo()
	doctors := newStubDoctorRepo()
	appointments := newStubAppointmentRepo()

	patient := &model.Patient{FirstName: "Ana", LastName: "Morales", Active: true}
	require.NoError(t, patients.Create(context.Background(), patient))
	doctor := &model.Doctor{FirstName: "Luis", LastName: "Vega", Specialty: "Cardiology", LicenseNumber: "MD-1001", Active: true}
	require.NoError(t, doctors.Create(context.Background(), doctor))

	return &appointmentFixture{
		svc:       NewAppointmentService(appointments, patients, doctors),
		patientID: patient.ID,
		doctorID:  doctor.ID,
	}
}

func (f *appointmentFixture) book(t *testing.T, startsAt, endsAt string) (*dto.AppointmentResponse, error) {
	t.Helper()
	return f.svc.Create(context.Background(), dto.CreateAppointmentRequest{
		PatientID: f.patientID.String(),
		DoctorID:  f.doctorID.String(),
		StartsAt:  startsAt,
		EndsAt:    endsAt,
	})
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCreateAppointment_OverlapRejected(t *testing.T) {
	f := newAppointmentFixture(t)

	first, err := f.book(t, "2026-09-01T09:00:00Z", "2026-09-01T09:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentScheduled, first.Status)

	// Partially overlapping slot for the same doctor is refused.
	_, err = f.book(t, "2026-09-01T09:15:00Z", "2026-09-01T09:45:00Z")
	assert.ErrorIs(t, err, ErrScheduleConflict)

	// Back-to-back is fine — slots are half-open [start, end).
	_, err = f.book(t, "2026-09-01T09:30:00Z", "2026-09-01T10:00:00Z")
	assert.NoError(t, err)
}

func TestCreateAppointment_EndBeforeStart(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.book(t, "2026-09-01T10:00:00Z", "2026-09-01T09:00:00Z")
	assert.Error(t, err)
}

func TestRescheduleAppointment_ChecksOverlapExcludingSelf(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.book(t, "2026-09-01T09:00:00Z", "2026-09-01T09:30:00Z")
	require.NoError(t, err)
	id := uuid.MustParse(appt.ID)

	// Shifting within its own old slot must not conflict with itself.
	moved, err := f.svc.Reschedule(context.Background(), id, dto.RescheduleAppointmentRequest{
		StartsAt: "2026-09-01T09:15:00Z",
		EndsAt:   "2026-09-01T09:45:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01T09:15:00Z", moved.StartsAt)

	// But it does conflict with another booking.
	_, err = f.book(t, "2026-09-01T10:00:00Z", "2026-09-01T10:30:00Z")
	require.NoError(t, err)
	_, err = f.svc.Reschedule(context.Background(), id, dto.RescheduleAppointmentRequest{
		StartsAt: "2026-09-01T10:00:00Z",
		EndsAt:   "2026-09-01T10:30:00Z",
	})
	assert.ErrorIs(t, err, ErrScheduleConflict)
}

func TestCancelledSlotCanBeRebooked(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.book(t, "2026-09-01T09:00:00Z", "2026-09-01T09:30:00Z")
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(context.Background(), uuid.MustParse(appt.ID)))

	_, err = f.book(t, "2026-09-01T09:00:00Z", "2026-09-01T09:30:00Z")
	assert.NoError(t, err, "cancelled appointments must free the slot")
}

func TestCompleteAppointment_OnlyScheduled(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.book(t, "2026-09-01T09:00:00Z", "2026-09-01T09:30:00Z")
	require.NoError(t, err)
	id := uuid.MustParse(appt.ID)

	notes := "routine follow-up"
	done, err := f.svc.Complete(context.Background(), id, dto.CompleteAppointmentRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentCompleted, done.Status)

	_, err = f.svc.Complete(context.Background(), id, dto.CompleteAppointmentRequest{})
	assert.Error(t, err)
}

func TestMarkNoShow(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.book(t, "2026-09-01T09:00:00Z", "2026-09-01T09:30:00Z")
	require.NoError(t, err)
	id := uuid.MustParse(appt.ID)

	require.NoError(t, f.svc.MarkNoShow(context.Background(), id))

	got, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentNoShow, got.Status)
}

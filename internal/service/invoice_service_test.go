package service

// Tests for the invoice lifecycle: draft creation with catalog price
// resolution, country-default tax fallback, draft-only editing, the
// enforced status transitions, payment recording and the derived
// effective status.

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/billing"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/country"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory InvoiceRepository stub ─────────────────────────────────────────

type stubInvoiceRepo struct {
	invoices map[uuid.UUID]*model.Invoice
	seq      int
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[uuid.UUID]*model.Invoice)}
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

func (r *stubInvoiceRepo) Create(_ context.Context, _ *gorm.DB, inv *model.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.CreatedAt = time.Now()
	cloned := *inv
	r.invoices[inv.ID] = &cloned
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cloned := *inv
	return &cloned, nil
}

func (r *stubInvoiceRepo) List(_ context.Context, _ dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) NextInvoiceSequence(_ context.Context, _ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubInvoiceRepo) Update(_ context.Context, _ *gorm.DB, inv *model.Invoice) error {
	cloned := *inv
	r.invoices[inv.ID] = &cloned
	return nil
}

func (r *stubInvoiceRepo) ReplaceItems(_ context.Context, _ *gorm.DB, invoiceID uuid.UUID, items []model.InvoiceItem) error {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return errors.New("record not found")
	}
	inv.Items = items
	return nil
}

func (r *stubInvoiceRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	inv, ok := r.invoices[id]
	if !ok {
		return errors.New("record not found")
	}
	inv.Status = status
	return nil
}

func (r *stubInvoiceRepo) SetPDFPath(_ context.Context, id uuid.UUID, path string) error {
	inv, ok := r.invoices[id]
	if !ok {
		return errors.New("record not found")
	}
	inv.PDFPath = &path
	return nil
}

func (r *stubInvoiceRepo) CreatePayment(_ context.Context, _ *gorm.DB, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	inv, ok := r.invoices[p.InvoiceID]
	if !ok {
		return errors.New("record not found")
	}
	inv.Payments = append(inv.Payments, *p)
	return nil
}

func (r *stubInvoiceRepo) ListDueForReminder(_ context.Context, asOf time.Time, limit int) ([]model.Invoice, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		if inv.Status == "sent" && inv.DueDate.Before(asOf) && inv.Balance.IsPositive() && inv.ReminderSentAt == nil {
			out = append(out, *inv)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *stubInvoiceRepo) SetReminderSent(_ context.Context, id uuid.UUID, at time.Time) error {
	inv, ok := r.invoices[id]
	if !ok {
		return errors.New("record not found")
	}
	inv.ReminderSentAt = &at
	return nil
}

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

// ── Patient / Doctor stubs ───────────────────────────────────────────────────

type stubPatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func (r *stubPatientRepo) Create(_ context.Context, p *model.Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.patients[p.ID] = p
	return nil
}

func (r *stubPatientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubPatientRepo) List(_ context.Context, _ dto.PatientFilter) ([]model.Patient, int64, error) {
	var out []model.Patient
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPatientRepo) Update(_ context.Context, p *model.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *stubPatientRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.patients[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubPatientRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if p, ok := r.patients[id]; ok {
		p.Active = true
	}
	return nil
}

var _ repository.PatientRepository = (*stubPatientRepo)(nil)

type stubDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func newStubDoctorRepo() *stubDoctorRepo {
	return &stubDoctorRepo{doctors: make(map[uuid.UUID]*model.Doctor)}
}

func (r *stubDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.doctors[d.ID] = d
	return nil
}

func (r *stubDoctorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return d, nil
}

func (r *stubDoctorRepo) List(_ context.Context, _ dto.DoctorFilter) ([]model.Doctor, int64, error) {
	var out []model.Doctor
	for _, d := range r.doctors {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (r *stubDoctorRepo) Update(_ context.Context, d *model.Doctor) error {
	r.doctors[d.ID] = d
	return nil
}

func (r *stubDoctorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if d, ok := r.doctors[id]; ok {
		d.Active = false
	}
	return nil
}

func (r *stubDoctorRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if d, ok := r.doctors[id]; ok {
		d.Active = true
	}
	return nil
}

var _ repository.DoctorRepository = (*stubDoctorRepo)(nil)

// ── Catalog stub ─────────────────────────────────────────────────────────────

type overrideKey struct {
	serviceID uuid.UUID
	doctorID  uuid.UUID
}

type stubServiceRepo struct {
	services  map[uuid.UUID]*model.ServiceItem
	overrides map[overrideKey]decimal.Decimal
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{
		services:  make(map[uuid.UUID]*model.ServiceItem),
		overrides: make(map[overrideKey]decimal.Decimal),
	}
}

func (r *stubServiceRepo) Create(_ context.Context, s *model.ServiceItem) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.services[s.ID] = s
	return nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ServiceItem, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return s, nil
}

func (r *stubServiceRepo) List(_ context.Context, _ dto.ServiceFilter) ([]model.ServiceItem, int64, error) {
	var out []model.ServiceItem
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubServiceRepo) Update(_ context.Context, s *model.ServiceItem) error {
	r.services[s.ID] = s
	return nil
}

func (r *stubServiceRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if s, ok := r.services[id]; ok {
		s.Active = false
	}
	return nil
}

func (r *stubServiceRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if s, ok := r.services[id]; ok {
		s.Active = true
	}
	return nil
}

func (r *stubServiceRepo) UpsertPriceOverride(_ context.Context, o *model.ServicePriceOverride) error {
	r.overrides[overrideKey{o.ServiceID, o.DoctorID}] = o.Price
	return nil
}

func (r *stubServiceRepo) DeletePriceOverride(_ context.Context, serviceID, doctorID uuid.UUID) error {
	delete(r.overrides, overrideKey{serviceID, doctorID})
	return nil
}

func (r *stubServiceRepo) FindPriceOverride(_ context.Context, serviceID, doctorID uuid.UUID) (*model.ServicePriceOverride, error) {
	price, ok := r.overrides[overrideKey{serviceID, doctorID}]
	if !ok {
		return nil, nil
	}
	return &model.ServicePriceOverride{ServiceID: serviceID, DoctorID: doctorID, Price: price}, nil
}

var _ repository.ServiceRepository = (*stubServiceRepo)(nil)

// ── Billing config stub ──────────────────────────────────────────────────────

type stubBillingConfigRepo struct {
	taxes     []model.TaxRate
	discounts []model.Discount
}

func (r *stubBillingConfigRepo) CreateTaxRate(_ context.Context, t *model.TaxRate) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.taxes = append(r.taxes, *t)
	return nil
}

func (r *stubBillingConfigRepo) FindTaxRate(_ context.Context, id uuid.UUID) (*model.TaxRate, error) {
	for i := range r.taxes {
		if r.taxes[i].ID == id {
			return &r.taxes[i], nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubBillingConfigRepo) ListTaxRates(_ context.Context, activeOnly bool) ([]model.TaxRate, error) {
	var out []model.TaxRate
	for _, t := range r.taxes {
		if activeOnly && !t.Active {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *stubBillingConfigRepo) UpdateTaxRate(_ context.Context, t *model.TaxRate) error {
	for i := range r.taxes {
		if r.taxes[i].ID == t.ID {
			r.taxes[i] = *t
			return nil
		}
	}
	return errors.New("record not found")
}

func (r *stubBillingConfigRepo) CreateDiscount(_ context.Context, d *model.Discount) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.discounts = append(r.discounts, *d)
	return nil
}

func (r *stubBillingConfigRepo) FindDiscount(_ context.Context, id uuid.UUID) (*model.Discount, error) {
	for i := range r.discounts {
		if r.discounts[i].ID == id {
			return &r.discounts[i], nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubBillingConfigRepo) ListDiscounts(_ context.Context, activeOnly bool) ([]model.Discount, error) {
	var out []model.Discount
	for _, d := range r.discounts {
		if activeOnly && !d.Active {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *stubBillingConfigRepo) UpdateDiscount(_ context.Context, d *model.Discount) error {
	for i := range r.discounts {
		if r.discounts[i].ID == d.ID {
			r.discounts[i] = *d
			return nil
		}
	}
	return errors.New("record not found")
}

var _ repository.BillingConfigRepository = (*stubBillingConfigRepo)(nil)

// ── Fixtures ─────────────────────────────────────────────────────────────────

type invoiceFixture struct {
	svc       InvoiceService
	invoices  *stubInvoiceRepo
	services  *stubServiceRepo
	config    *stubBillingConfigRepo
	patientID uuid.UUID
	doctorID  uuid.UUID
	consultID uuid.UUID
	xrayID    uuid.UUID
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	patients := newStubPatientRepo()
	doctors := newStubDoctorRepo()
	services := newStubServiceRepo()
	invoices := newStubInvoiceRepo()
	config := &stubBillingConfigRepo{}

	email := "ana@example.com"
	patient := &model.Patient{FirstName: "Ana", LastName: "Morales", Email: &email, Active: true}
	require.NoError(t, patients.Create(context.Background(), patient))

	doctor := &model.Doctor{FirstName: "Luis", LastName: "Vega", Specialty: "Cardiology", LicenseNumber: "MD-1001", Active: true}
	require.NoError(t, doctors.Create(context.Background(), doctor))

	consult := &model.ServiceItem{Name: "Consultation", Type: "consultation", Category: "General", BasePrice: decimal.NewFromInt(150), Taxable: true, Active: true}
	require.NoError(t, services.Create(context.Background(), consult))

	xray := &model.ServiceItem{Name: "Chest X-Ray", Type: "imaging", Category: "Imaging", BasePrice: decimal.NewFromInt(80), Taxable: true, Active: true}
	require.NoError(t, services.Create(context.Background(), xray))

	svc := NewInvoiceService(invoices, patients, doctors, services, config, nil, country.SettingsFor("US"))
	return &invoiceFixture{
		svc:       svc,
		invoices:  invoices,
		services:  services,
		config:    config,
		patientID: patient.ID,
		doctorID:  doctor.ID,
		consultID: consult.ID,
		xrayID:    xray.ID,
	}
}

func (f *invoiceFixture) createDraft(t *testing.T, issueDate, terms string) *dto.InvoiceResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), "reception1", dto.CreateInvoiceRequest{
		PatientID:    f.patientID.String(),
		DoctorID:     f.doctorID.String(),
		IssueDate:    issueDate,
		PaymentTerms: terms,
		Items: []dto.InvoiceItemRequest{
			{ServiceID: f.consultID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	return resp
}

// ── Creation ─────────────────────────────────────────────────────────────────

func TestCreateInvoice_DraftWithCountryDefaultTax(t *testing.T) {
	f := newInvoiceFixture(t)

	resp := f.createDraft(t, "2025-01-01", "Net 30")

	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, "draft", resp.StoredStatus)
	assert.Equal(t, "INV-2025-000001", resp.Number)
	assert.Equal(t, "2025-01-31", resp.DueDate)

	// No configured tax → US default 8.5% applies
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(150)), "subtotal = %s", resp.Subtotal)
	assert.True(t, resp.TaxTotal.Equal(decimal.RequireFromString("12.75")), "tax = %s", resp.TaxTotal)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("162.75")), "total = %s", resp.Total)
	assert.True(t, resp.Balance.Equal(resp.Total))
}

func TestCreateInvoice_DueOnReceipt(t *testing.T) {
	f := newInvoiceFixture(t)

	resp := f.createDraft(t, "2025-03-10", "Due on Receipt")
	assert.Equal(t, "2025-03-10", resp.DueDate)
	assert.Equal(t, "Due on Receipt", resp.PaymentTerms)
}

func TestCreateInvoice_PricePrecedence(t *testing.T) {
	f := newInvoiceFixture(t)

	// Doctor charges 200 for a consultation instead of the base 150.
	require.NoError(t, f.services.UpsertPriceOverride(context.Background(), &model.ServicePriceOverride{
		ServiceID: f.consultID,
		DoctorID:  f.doctorID,
		Price:     decimal.NewFromInt(200),
	}))

	resp, err := f.svc.Create(context.Background(), "reception1", dto.CreateInvoiceRequest{
		PatientID: f.patientID.String(),
		DoctorID:  f.doctorID.String(),
		IssueDate: "2025-01-01",
		Items: []dto.InvoiceItemRequest{
			{ServiceID: f.consultID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(200)), "override should win over base price")

	// An explicit request price wins over the override.
	negotiated := decimal.NewFromInt(120)
	resp, err = f.svc.Create(context.Background(), "reception1", dto.CreateInvoiceRequest{
		PatientID: f.patientID.String(),
		DoctorID:  f.doctorID.String(),
		IssueDate: "2025-01-01",
		Items: []dto.InvoiceItemRequest{
			{ServiceID: f.consultID.String(), Quantity: 1, UnitPrice: &negotiated},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(negotiated))
}

func TestCreateInvoice_DiscountExceedsSubtotalClamps(t *testing.T) {
	f := newInvoiceFixture(t)
	require.NoError(t, f.config.CreateDiscount(context.Background(), &model.Discount{
		Name: "Charity write-off", Kind: "fixed", Value: decimal.NewFromInt(500), Scope: "total", Active: true,
	}))

	resp := f.createDraft(t, "2025-01-01", "Net 30")

	assert.True(t, resp.Total.GreaterThanOrEqual(decimal.Zero))
	assert.Contains(t, resp.Warnings, string(billing.WarningNegativeTotal))
}

func TestCreateInvoice_RejectsInactiveService(t *testing.T) {
	f := newInvoiceFixture(t)
	require.NoError(t, f.services.SoftDelete(context.Background(), f.consultID))

	_, err := f.svc.Create(context.Background(), "reception1", dto.CreateInvoiceRequest{
		PatientID: f.patientID.String(),
		DoctorID:  f.doctorID.String(),
		IssueDate: "2025-01-01",
		Items:     []dto.InvoiceItemRequest{{ServiceID: f.consultID.String(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInactive)
}

func TestCreateInvoice_InvalidQuantity(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.svc.Create(context.Background(), "reception1", dto.CreateInvoiceRequest{
		PatientID: f.patientID.String(),
		DoctorID:  f.doctorID.String(),
		IssueDate: "2025-01-01",
		Items:     []dto.InvoiceItemRequest{{ServiceID: f.consultID.String(), Quantity: 0}},
	})
	assert.ErrorIs(t, err, billing.ErrInvalidQuantity)
}

// ── Editing ──────────────────────────────────────────────────────────────────

func TestUpdateInvoice_DraftOnly(t *testing.T) {
	f := newInvoiceFixture(t)
	resp := f.createDraft(t, "2025-01-01", "Net 30")
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Send(context.Background(), id, "reception1")
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), id, "reception1", dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ServiceID: f.xrayID.String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrDraftOnly)
}

func TestUpdateInvoice_RecomputesTotals(t *testing.T) {
	f := newInvoiceFixture(t)
	resp := f.createDraft(t, "2025-01-01", "Net 30")
	id := uuid.MustParse(resp.ID)

	updated, err := f.svc.Update(context.Background(), id, "reception2", dto.UpdateInvoiceRequest{
		PaymentTerms: "Net 15",
		Items: []dto.InvoiceItemRequest{
			{ServiceID: f.consultID.String(), Quantity: 1},
			{ServiceID: f.xrayID.String(), Quantity: 2},
		},
	})
	require.NoError(t, err)

	// 150 + 2×80 = 310, tax 8.5% = 26.35
	assert.True(t, updated.Subtotal.Equal(decimal.NewFromInt(310)), "subtotal = %s", updated.Subtotal)
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("336.35")), "total = %s", updated.Total)
	assert.Equal(t, "2025-01-16", updated.DueDate)
	assert.Len(t, updated.Items, 2)
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func TestSendInvoice_TransitionEnforced(t *testing.T) {
	f := newInvoiceFixture(t)
	resp := f.createDraft(t, "2025-01-01", "Net 30")
	id := uuid.MustParse(resp.ID)

	sent, err := f.svc.Send(context.Background(), id, "reception1")
	require.NoError(t, err)
	assert.Equal(t, "sent", sent.StoredStatus)

	// Sending twice is not a valid transition
	_, err = f.svc.Send(context.Background(), id, "reception1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelPaidInvoice_Rejected(t *testing.T) {
	f := newInvoiceFixture(t)
	resp := f.createDraft(t, "2025-01-01", "Net 30")
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Send(context.Background(), id, "reception1")
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(context.Background(), id, "reception1", dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString("162.75"),
		Method: model.PaymentMethodCash,
	})
	require.NoError(t, err)

	// Effective status is now paid — cancellation must be refused even
	// though the stored status still says "sent".
	err = f.svc.Cancel(context.Background(), id, "admin1", "duplicate entry")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Refunding a paid invoice is allowed.
	err = f.svc.Refund(context.Background(), id, "admin1", "treatment billed twice")
	assert.NoError(t, err)
}

// ── Payments ─────────────────────────────────────────────────────────────────

func TestRecordPayment_DerivesPaidStatus(t *testing.T) {
	f := newInvoiceFixture(t)
	resp := f.createDraft(t, "2025-01-01", "Net 30")
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Send(context.Background(), id, "reception1")
	require.NoError(t, err)

	paid, err := f.svc.RecordPayment(context.Background(), id, "reception1", dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString("162.75"),
		Method: model.PaymentMethodCreditCard,
	})
	require.NoError(t, err)

	assert.Equal(t, "paid", paid.Status)
	assert.Equal(t, "sent", paid.StoredStatus)
	assert.True(t, paid.Balance.IsZero())
	assert.False(t, paid.Overpaid)
}

func TestRecordPayment_PendingDoesNotCount(t *testing.T) {
	f := newInvoiceFixture(t)
	resp := f.createDraft(t, "2025-01-01", "Net 30")
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Send(context.Background(), id, "reception1")
	require.NoError(t, err)

	got, err := f.svc.RecordPayment(context.Background(), id, "reception1", dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString("162.75"),
		Method: model.PaymentMethodInsurance,
		Status: "pending",
	})
	require.NoError(t, err)

	assert.True(t, got.PaidAmount.IsZero(), "pending payments must not count")
	assert.NotEqual(t, "paid", got.Status)
}

func TestRecordPayment_OverpaymentFlagged(t *testing.T) {
	f := newInvoiceFixture(t)
	resp := f.createDraft(t, "2025-01-01", "Net 30")
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Send(context.Background(), id, "reception1")
	require.NoError(t, err)

	got, err := f.svc.RecordPayment(context.Background(), id, "reception1", dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(500),
		Method: model.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.True(t, got.Overpaid)
	assert.Contains(t, got.Warnings, string(billing.WarningOverpayment))
	// Displayed balance floors at zero, never negative.
	assert.True(t, got.Balance.IsZero())
}

func TestRecordPayment_DraftRejected(t *testing.T) {
	f := newInvoiceFixture(t)
	resp := f.createDraft(t, "2025-01-01", "Net 30")
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.RecordPayment(context.Background(), id, "reception1", dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(50),
		Method: model.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// ── Derived status on read ───────────────────────────────────────────────────

func TestList_DerivesOverdue(t *testing.T) {
	f := newInvoiceFixture(t)
	// Issue far in the past so Net 15 is well overdue by now.
	resp := f.createDraft(t, "2024-01-01", "Net 15")
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Send(context.Background(), id, "reception1")
	require.NoError(t, err)

	list, err := f.svc.List(context.Background(), dto.InvoiceFilter{Status: "overdue", Page: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "overdue", list.Data[0].Status)
	assert.Equal(t, "sent", list.Data[0].StoredStatus)

	// The same invoice does not show up under "paid".
	list, err = f.svc.List(context.Background(), dto.InvoiceFilter{Status: "paid", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Empty(t, list.Data)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/billing"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/country"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/repository"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceService owns the invoice lifecycle. Every monetary figure it
// persists or returns comes out of the billing package — the cached
// columns on the invoice row are refreshed on write and recomputed on
// read, never trusted.
type InvoiceService interface {
	Create(ctx context.Context, username string, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error)
	Update(ctx context.Context, id uuid.UUID, username string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	// Send moves a draft to sent and enqueues PDF generation + delivery.
	Send(ctx context.Context, id uuid.UUID, username string) (*dto.InvoiceResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, username, reason string) error
	Refund(ctx context.Context, id uuid.UUID, username, reason string) error
	RecordPayment(ctx context.Context, id uuid.UUID, username string, req dto.RecordPaymentRequest) (*dto.InvoiceResponse, error)
	// PDFPath returns the stored document path for download, or "" when
	// the PDF has not been generated yet.
	PDFPath(ctx context.Context, id uuid.UUID) (string, error)
}

type invoiceService struct {
	repo        repository.InvoiceRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	serviceRepo repository.ServiceRepository
	configRepo  repository.BillingConfigRepository
	dispatcher  *worker.Dispatcher
	loc         country.Settings
}

func NewInvoiceService(
	repo repository.InvoiceRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	serviceRepo repository.ServiceRepository,
	configRepo repository.BillingConfigRepository,
	dispatcher *worker.Dispatcher,
	loc country.Settings,
) InvoiceService {
	return &invoiceService{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		serviceRepo: serviceRepo,
		configRepo:  configRepo,
		dispatcher:  dispatcher,
		loc:         loc,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Create ───────────────────────────────────────────────────────────────────
// Creates a draft invoice:
//  1. Validate patient and doctor exist and are active
//  2. Resolve each line against the service catalog (request price
//     override > doctor price override > base price)
//  3. Load active tax and discount rules, falling back to the clinic
//     country's default tax when no percentage tax is configured
//  4. Compute all totals from scratch
//  5. BEGIN TX: nextval invoice number, create invoice + items
//  6. COMMIT

func (s *invoiceService) Create(ctx context.Context, username string, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("invalid patient_id: %w", err)
	}
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("invalid doctor_id: %w", err)
	}

	patient, err := s.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("patient: %w", ErrNotFound)
	}
	if !patient.Active {
		return nil, fmt.Errorf("patient: %w", ErrInactive)
	}
	doctor, err := s.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("doctor: %w", ErrNotFound)
	}
	if !doctor.Active {
		return nil, fmt.Errorf("doctor: %w", ErrInactive)
	}

	issueDate, err := billing.ParseIssueDate(req.IssueDate)
	if err != nil {
		return nil, err
	}
	termsLabel := req.PaymentTerms
	if termsLabel == "" {
		termsLabel = s.loc.DefaultTerms
	}
	terms := billing.ParsePaymentTerms(termsLabel)
	dueDate := terms.DueDate(issueDate)

	items, lineItems, err := s.resolveItems(ctx, doctorID, req.Items)
	if err != nil {
		return nil, err
	}

	taxes, discounts, err := s.activeRules(ctx, issueDate)
	if err != nil {
		return nil, err
	}

	totals, err := billing.ComputeTotals(lineItems, taxes, discounts)
	if err != nil {
		return nil, err
	}

	inv := model.Invoice{
		PatientID:      patientID,
		DoctorID:       doctorID,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		PaymentTerms:   terms.String(),
		Status:         string(billing.StatusDraft),
		Subtotal:       totals.Subtotal,
		DiscountTotal:  totals.DiscountTotal,
		TaxTotal:       totals.TaxTotal,
		Total:          totals.Total,
		PaidAmount:     decimal.Zero,
		Balance:        totals.Total,
		Notes:          req.Notes,
		CreatedBy:      username,
		LastModifiedBy: username,
		Items:          items,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		seq, err := s.repo.NextInvoiceSequence(ctx, tx)
		if err != nil {
			return err
		}
		inv.Number = formatInvoiceNumber(issueDate.Year(), seq)
		return s.repo.Create(ctx, tx, &inv)
	})
	if txErr != nil {
		return nil, txErr
	}

	inv.Patient = patient
	inv.Doctor = doctor
	resp := s.toResponse(&inv, time.Now())
	resp.Warnings = appendWarnings(resp.Warnings, totals.Warnings)
	return resp, nil
}

// formatInvoiceNumber renders the document number, e.g. INV-2026-000042.
func formatInvoiceNumber(year, seq int) string {
	return fmt.Sprintf("INV-%d-%06d", year, seq)
}

// resolveItems maps request lines to invoice items with prices resolved
// against the catalog. Price precedence: explicit request price, then
// the doctor's override, then the catalog base price.
func (s *invoiceService) resolveItems(ctx context.Context, doctorID uuid.UUID, reqItems []dto.InvoiceItemRequest) ([]model.InvoiceItem, []billing.LineItem, error) {
	var items []model.InvoiceItem
	var lines []billing.LineItem

	for _, ri := range reqItems {
		serviceID, err := uuid.Parse(ri.ServiceID)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid service_id: %w", err)
		}
		svc, err := s.serviceRepo.FindByID(ctx, serviceID)
		if err != nil {
			return nil, nil, fmt.Errorf("service %s: %w", ri.ServiceID, ErrNotFound)
		}
		if !svc.Active {
			return nil, nil, fmt.Errorf("service %q: %w", svc.Name, ErrInactive)
		}

		price := svc.BasePrice
		if override, err := s.serviceRepo.FindPriceOverride(ctx, serviceID, doctorID); err != nil {
			return nil, nil, err
		} else if override != nil {
			price = override.Price
		}
		if ri.UnitPrice != nil {
			price = *ri.UnitPrice
		}

		lineTotal, err := billing.LineTotal(ri.Quantity, price)
		if err != nil {
			return nil, nil, fmt.Errorf("service %q: %w", svc.Name, err)
		}

		items = append(items, model.InvoiceItem{
			ServiceID: serviceID,
			Name:      svc.Name,
			Category:  svc.Category,
			Quantity:  ri.Quantity,
			UnitPrice: price,
			Total:     lineTotal,
			Taxable:   svc.Taxable,
		})
		lines = append(lines, billing.LineItem{
			Quantity:  ri.Quantity,
			UnitPrice: price,
			Taxable:   svc.Taxable,
		})
	}
	return items, lines, nil
}

// activeRules loads the staff-configured tax and discount rules that
// apply on the given date. When no active percentage tax exists, the
// clinic country's default rate applies so invoices are never silently
// untaxed.
func (s *invoiceService) activeRules(ctx context.Context, on time.Time) ([]billing.TaxRule, []billing.DiscountRule, error) {
	taxRates, err := s.configRepo.ListTaxRates(ctx, true)
	if err != nil {
		return nil, nil, err
	}
	var taxes []billing.TaxRule
	hasPercentage := false
	for _, t := range taxRates {
		if t.Kind == "percentage" {
			hasPercentage = true
		}
		taxes = append(taxes, billing.TaxRule{
			Name:   t.Name,
			Kind:   billing.RuleKind(t.Kind),
			Rate:   t.Rate,
			Amount: t.Amount,
			Scope:  billing.TaxScope(t.AppliesTo),
		})
	}
	if !hasPercentage {
		taxes = append(taxes, billing.TaxRule{
			Name:  s.loc.DefaultTaxName,
			Kind:  billing.KindPercentage,
			Rate:  s.loc.DefaultTaxRate,
			Scope: billing.ScopeSubtotal,
		})
	}

	discountRows, err := s.configRepo.ListDiscounts(ctx, true)
	if err != nil {
		return nil, nil, err
	}
	var discounts []billing.DiscountRule
	for i := range discountRows {
		d := &discountRows[i]
		if !d.ValidOn(on) {
			continue
		}
		discounts = append(discounts, billing.DiscountRule{
			Name:  d.Name,
			Kind:  billing.RuleKind(d.Kind),
			Value: d.Value,
		})
	}
	return taxes, discounts, nil
}

// ── Get / List ───────────────────────────────────────────────────────────────

func (s *invoiceService) Get(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.toResponse(inv, time.Now()), nil
}

func (s *invoiceService) List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	invoices, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	data := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		resp := s.toResponse(&invoices[i], now)
		// The stored column cannot answer paid/overdue, so the status
		// filter applies to the derived value, within the current page.
		if filter.Status != "" && filter.Status != "all" && resp.Status != filter.Status {
			continue
		}
		data = append(data, *resp)
	}
	return &dto.InvoiceListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Update ───────────────────────────────────────────────────────────────────

func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, username string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if inv.Status != string(billing.StatusDraft) {
		return nil, ErrDraftOnly
	}

	issueDate := inv.IssueDate
	if req.IssueDate != "" {
		issueDate, err = billing.ParseIssueDate(req.IssueDate)
		if err != nil {
			return nil, err
		}
	}
	termsLabel := req.PaymentTerms
	if termsLabel == "" {
		termsLabel = inv.PaymentTerms
	}
	terms := billing.ParsePaymentTerms(termsLabel)

	items, lineItems, err := s.resolveItems(ctx, inv.DoctorID, req.Items)
	if err != nil {
		return nil, err
	}
	taxes, discounts, err := s.activeRules(ctx, issueDate)
	if err != nil {
		return nil, err
	}
	totals, err := billing.ComputeTotals(lineItems, taxes, discounts)
	if err != nil {
		return nil, err
	}

	inv.IssueDate = issueDate
	inv.DueDate = terms.DueDate(issueDate)
	inv.PaymentTerms = terms.String()
	inv.Subtotal = totals.Subtotal
	inv.DiscountTotal = totals.DiscountTotal
	inv.TaxTotal = totals.TaxTotal
	inv.Total = totals.Total
	inv.Balance = totals.Total.Sub(inv.PaidAmount)
	if req.Notes != nil {
		inv.Notes = req.Notes
	}
	inv.LastModifiedBy = username
	inv.Items = nil // replaced below, keep Save from cascading stale rows

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, inv); err != nil {
			return err
		}
		return s.repo.ReplaceItems(ctx, tx, inv.ID, items)
	})
	if txErr != nil {
		return nil, txErr
	}

	inv.Items = items
	resp := s.toResponse(inv, time.Now())
	resp.Warnings = appendWarnings(resp.Warnings, totals.Warnings)
	return resp, nil
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func (s *invoiceService) Send(ctx context.Context, id uuid.UUID, username string) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !billing.CanTransition(billing.InvoiceStatus(inv.Status), billing.StatusSent) {
		return nil, fmt.Errorf("%w: %s -> sent", ErrInvalidTransition, inv.Status)
	}

	inv.Status = string(billing.StatusSent)
	inv.LastModifiedBy = username
	if err := s.repo.UpdateStatus(ctx, id, inv.Status); err != nil {
		return nil, err
	}

	// Async PDF generation + delivery (best-effort, fire & forget)
	if s.dispatcher != nil {
		payload := worker.InvoicePDFJobPayload{InvoiceID: inv.ID.String()}
		if inv.Patient != nil && inv.Patient.Email != nil && *inv.Patient.Email != "" {
			payload.NotifyEmail = inv.Patient.Email
		}
		_ = s.dispatcher.EnqueueInvoicePDF(ctx, payload)
	}

	return s.toResponse(inv, time.Now()), nil
}

func (s *invoiceService) Cancel(ctx context.Context, id uuid.UUID, username, reason string) error {
	return s.override(ctx, id, username, reason, billing.StatusCancelled)
}

func (s *invoiceService) Refund(ctx context.Context, id uuid.UUID, username, reason string) error {
	return s.override(ctx, id, username, reason, billing.StatusRefunded)
}

// override applies a staff status override (cancel/refund). The
// transition is checked against the derived effective status, so a
// fully paid invoice cannot be cancelled even though its stored status
// still says "sent".
func (s *invoiceService) override(ctx context.Context, id uuid.UUID, username, reason string, to billing.InvoiceStatus) error {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	state := paymentState(inv, time.Now())
	if !billing.CanTransition(state.EffectiveStatus, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, state.EffectiveStatus, to)
	}

	note := fmt.Sprintf("%s: %s", to, reason)
	if inv.Notes != nil && *inv.Notes != "" {
		note = *inv.Notes + "\n" + note
	}
	inv.Notes = &note
	inv.Status = string(to)
	inv.LastModifiedBy = username
	inv.Items = nil // Save must not touch line items

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Update(ctx, tx, inv)
	})
}

// ── RecordPayment ────────────────────────────────────────────────────────────
// Payments are immutable rows — corrections are new records, never
// edits. The invoice's cached paid/balance columns are refreshed from
// the full payment list inside the same transaction.

func (s *invoiceService) RecordPayment(ctx context.Context, id uuid.UUID, username string, req dto.RecordPaymentRequest) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	switch billing.InvoiceStatus(inv.Status) {
	case billing.StatusDraft:
		return nil, fmt.Errorf("%w: cannot record payments on a draft", ErrInvalidTransition)
	case billing.StatusCancelled, billing.StatusRefunded:
		return nil, fmt.Errorf("%w: invoice is %s", ErrInvalidTransition, inv.Status)
	}
	if !req.Amount.IsPositive() {
		return nil, billing.ErrInvalidPrice
	}

	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt, err = billing.ParseIssueDate(*req.PaidAt)
		if err != nil {
			return nil, err
		}
	}
	status := req.Status
	if status == "" {
		status = string(billing.PaymentCompleted)
	}

	payment := model.Payment{
		InvoiceID:   inv.ID,
		Amount:      req.Amount,
		Method:      req.Method,
		Status:      status,
		PaidAt:      paidAt,
		ProcessedBy: username,
		Reference:   req.Reference,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreatePayment(ctx, tx, &payment); err != nil {
			return err
		}
		inv.Payments = append(inv.Payments, payment)
		state := paymentState(inv, time.Now())
		inv.PaidAmount = state.PaidAmount
		inv.Balance = state.Balance
		inv.LastModifiedBy = username
		items := inv.Items
		inv.Items = nil
		err := s.repo.Update(ctx, tx, inv)
		inv.Items = items
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.toResponse(inv, time.Now()), nil
}

// ── PDF download ─────────────────────────────────────────────────────────────

func (s *invoiceService) PDFPath(ctx context.Context, id uuid.UUID) (string, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", ErrNotFound
	}
	if inv.PDFPath == nil {
		return "", nil
	}
	return *inv.PDFPath, nil
}

// ── Response mapping ─────────────────────────────────────────────────────────

// paymentState recomputes the invoice's payment state from its payment
// rows; the cached columns are never consulted.
func paymentState(inv *model.Invoice, now time.Time) billing.PaymentState {
	records := make([]billing.PaymentRecord, 0, len(inv.Payments))
	for _, p := range inv.Payments {
		records = append(records, billing.PaymentRecord{
			Amount: p.Amount,
			Status: billing.PaymentStatus(p.Status),
		})
	}
	return billing.ComputePaymentState(inv.Total, inv.DueDate, billing.InvoiceStatus(inv.Status), records, now)
}

func (s *invoiceService) toResponse(inv *model.Invoice, now time.Time) *dto.InvoiceResponse {
	state := paymentState(inv, now)

	resp := &dto.InvoiceResponse{
		ID:            inv.ID.String(),
		Number:        inv.Number,
		PatientID:     inv.PatientID.String(),
		DoctorID:      inv.DoctorID.String(),
		IssueDate:     billing.FormatDate(inv.IssueDate),
		DueDate:       billing.FormatDate(inv.DueDate),
		PaymentTerms:  inv.PaymentTerms,
		Status:        string(state.EffectiveStatus),
		StoredStatus:  inv.Status,
		Subtotal:      inv.Subtotal,
		DiscountTotal: inv.DiscountTotal,
		TaxTotal:      inv.TaxTotal,
		Total:         inv.Total,
		PaidAmount:    state.PaidAmount,
		Balance:       state.Balance,
		Overpaid:      state.Overpaid,
		Warnings:      warningsToStrings(state.Warnings),
		Notes:         inv.Notes,
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
	}
	if inv.Patient != nil {
		resp.PatientName = inv.Patient.FirstName + " " + inv.Patient.LastName
	}
	if inv.Doctor != nil {
		resp.DoctorName = inv.Doctor.FirstName + " " + inv.Doctor.LastName
	}
	if inv.PDFPath != nil && *inv.PDFPath != "" {
		url := fmt.Sprintf("/v1/invoices/%s/pdf", inv.ID)
		resp.PDFUrl = &url
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ServiceID: it.ServiceID.String(),
			Name:      it.Name,
			Category:  it.Category,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}
	for _, p := range inv.Payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{
			ID:          p.ID.String(),
			Amount:      p.Amount,
			Method:      p.Method,
			Status:      p.Status,
			PaidAt:      billing.FormatDate(p.PaidAt),
			ProcessedBy: p.ProcessedBy,
			Reference:   p.Reference,
		})
	}
	return resp
}

func warningsToStrings(ws []billing.Warning) []string {
	if len(ws) == 0 {
		return nil
	}
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = string(w)
	}
	return out
}

func appendWarnings(existing []string, ws []billing.Warning) []string {
	for _, w := range ws {
		found := false
		for _, e := range existing {
			if e == string(w) {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, string(w))
		}
	}
	return existing
}

package repository

import (
	"context"
	"time"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error)
	// NextInvoiceSequence pulls the next value from the invoice number
	// sequence inside the given transaction.
	NextInvoiceSequence(ctx context.Context, tx *gorm.DB) (int, error)
	Update(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error
	// ReplaceItems deletes and re-creates the line items of a draft.
	ReplaceItems(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID, items []model.InvoiceItem) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	SetPDFPath(ctx context.Context, id uuid.UUID, path string) error
	CreatePayment(ctx context.Context, tx *gorm.DB, p *model.Payment) error
	// ListDueForReminder returns sent invoices past their due date with
	// an open balance that have not been reminded yet.
	ListDueForReminder(ctx context.Context, asOf time.Time, limit int) ([]model.Invoice, error)
	SetReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) DB() *gorm.DB { return r.db }

func (r *invoiceRepo) Create(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error {
	return tx.WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Payments").
		Preload("Patient").Preload("Doctor").
		First(&inv, id).Error
	return &inv, err
}

func (r *invoiceRepo) List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if filter.PatientID != "" {
		q = q.Where("patient_id = ?", filter.PatientID)
	}
	if filter.DoctorID != "" {
		q = q.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.From != "" {
		q = q.Where("issue_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("issue_date <= ?", filter.To)
	}
	// Status filtering happens in the service layer on the derived
	// effective status; the stored column cannot answer paid/overdue.

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Items").Preload("Payments").
		Preload("Patient").Preload("Doctor").
		Order("issue_date DESC, number DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepo) NextInvoiceSequence(ctx context.Context, tx *gorm.DB) (int, error) {
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('invoices_number_seq')").Scan(&num).Error
	return num, err
}

func (r *invoiceRepo) Update(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error {
	return tx.WithContext(ctx).Save(inv).Error
}

func (r *invoiceRepo) ReplaceItems(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID, items []model.InvoiceItem) error {
	if err := tx.WithContext(ctx).Where("invoice_id = ?", invoiceID).Delete(&model.InvoiceItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].InvoiceID = invoiceID
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Invoice{}).Where("id = ?", id).Update("status", status).Error
}

func (r *invoiceRepo) SetPDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Invoice{}).Where("id = ?", id).Update("pdf_path", path).Error
}

func (r *invoiceRepo) CreatePayment(ctx context.Context, tx *gorm.DB, p *model.Payment) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *invoiceRepo) ListDueForReminder(ctx context.Context, asOf time.Time, limit int) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Payments").Preload("Patient").
		Where("status = ? AND due_date < ? AND balance > 0 AND reminder_sent_at IS NULL", "sent", asOf).
		Limit(limit).
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) SetReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Invoice{}).Where("id = ?", id).Update("reminder_sent_at", at).Error
}

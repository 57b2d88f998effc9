package worker

// invoice_pdf_worker.go
// Processes PDF generation jobs from QueueInvoicePDF.
// Renders the invoice document, stores its path, and optionally chains
// an email job so the patient receives the PDF as an attachment.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/country"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/infra"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InvoicePDFJobPayload is the job envelope sent to QueueInvoicePDF.
type InvoicePDFJobPayload struct {
	InvoiceID string `json:"invoice_id"`
	// NotifyEmail, when set, chains an email job with the PDF attached.
	NotifyEmail *string `json:"notify_email,omitempty"`
}

// InvoicePDFWorker renders invoice PDFs off the request path.
type InvoicePDFWorker struct {
	invoiceRepo    repository.InvoiceRepository
	dispatcher     *Dispatcher
	clinicName     string
	loc            country.Settings
	pdfStoragePath string
}

// NewInvoicePDFWorker wires all dependencies for the PDF worker.
func NewInvoicePDFWorker(
	invoiceRepo repository.InvoiceRepository,
	dispatcher *Dispatcher,
	clinicName string,
	loc country.Settings,
	pdfStoragePath string,
) *InvoicePDFWorker {
	return &InvoicePDFWorker{
		invoiceRepo:    invoiceRepo,
		dispatcher:     dispatcher,
		clinicName:     clinicName,
		loc:            loc,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single PDF job:
//  1. Parse InvoicePDFJobPayload from the job envelope
//  2. Fetch the invoice with items, payments, patient and doctor
//  3. Render the PDF and persist its path on the invoice
//  4. Optionally enqueue an email job with the PDF attached
func (w *InvoicePDFWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload InvoicePDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("invoice_pdf_worker: invalid payload")
		return
	}

	invoiceID, err := uuid.Parse(payload.InvoiceID)
	if err != nil {
		log.Error().Str("invoice_id", payload.InvoiceID).Msg("invoice_pdf_worker: invalid invoice_id")
		return
	}

	inv, err := w.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		log.Error().Err(err).Str("invoice_id", payload.InvoiceID).Msg("invoice_pdf_worker: invoice not found")
		return
	}

	pdfPath, err := infra.GenerateInvoicePDF(inv, w.clinicName, w.loc, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("invoice", inv.Number).Msg("invoice_pdf_worker: PDF generation failed")
		return
	}
	if err := w.invoiceRepo.SetPDFPath(ctx, invoiceID, pdfPath); err != nil {
		log.Error().Err(err).Str("invoice", inv.Number).Msg("invoice_pdf_worker: failed to store pdf path")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("invoice", inv.Number).Msg("invoice_pdf_worker: PDF generated")

	if payload.NotifyEmail == nil || *payload.NotifyEmail == "" {
		return
	}

	emailJob := EmailJobPayload{
		ToEmail: *payload.NotifyEmail,
		Subject: fmt.Sprintf("%s — Invoice %s", w.clinicName, inv.Number),
		Body: fmt.Sprintf(
			"Dear patient,\n\nPlease find attached invoice %s for %s%s, due on %s.\n\nKind regards,\n%s",
			inv.Number, w.loc.CurrencySymbol, inv.Total.StringFixed(2),
			inv.DueDate.Format(w.loc.DateFormat), w.clinicName,
		),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", *payload.NotifyEmail).Msg("invoice_pdf_worker: failed to enqueue email")
		return
	}
	log.Info().Str("email", *payload.NotifyEmail).Str("invoice", inv.Number).Msg("invoice_pdf_worker: email job enqueued")
}

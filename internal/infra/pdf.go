package infra

// pdf.go — invoice PDF generation using go-pdf/fpdf.
// Renders an A4 invoice with:
//   - Clinic name header and invoice number
//   - Patient / doctor block and issue/due dates
//   - Line item table (service, quantity, unit price, line total)
//   - Discount and tax lines, bold grand total
//   - Paid amount and outstanding balance
//
// The output file is saved to storagePath/<number>.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/country"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInvoicePDF renders an invoice to disk and returns the path.
// storagePath is created if needed.
func GenerateInvoicePDF(inv *model.Invoice, clinicName string, loc country.Settings, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, inv.Number+".pdf")
	cur := loc.CurrencySymbol

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, clinicName, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, "Invoice "+inv.Number, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 5, "Issued: "+inv.IssueDate.Format(loc.DateFormat), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Due: "+inv.DueDate.Format(loc.DateFormat)+"  ("+inv.PaymentTerms+")", "", 1, "R", false, 0, "")
	pdf.Ln(3)

	// ── Parties ──────────────────────────────────────────────────────────────
	if inv.Patient != nil {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW/2, 5, "Billed to", "", 0, "L", false, 0, "")
	}
	if inv.Doctor != nil {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW/2, 5, "Attending doctor", "", 1, "L", false, 0, "")
	} else {
		pdf.Ln(5)
	}
	pdf.SetFont("Helvetica", "", 9)
	left, right := "", ""
	if inv.Patient != nil {
		left = inv.Patient.FirstName + " " + inv.Patient.LastName
	}
	if inv.Doctor != nil {
		right = inv.Doctor.FirstName + " " + inv.Doctor.LastName + " — " + inv.Doctor.Specialty
	}
	pdf.CellFormat(contentW/2, 5, left, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, right, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Items table ──────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // service
	col2 := contentW * 0.12 // qty
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.22 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Service", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range inv.Items {
		name := item.Name
		if len(name) > 48 {
			name = name[:47] + "…"
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, cur+item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, cur+item.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	label := col1 + col2 + col3
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(label, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, cur+inv.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !inv.DiscountTotal.IsZero() {
		pdf.CellFormat(label, 6, "Discount", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "-"+cur+inv.DiscountTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if !inv.TaxTotal.IsZero() {
		pdf.CellFormat(label, 6, "Tax", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, cur+inv.TaxTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(label, 8, "TOTAL", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, cur+inv.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if !inv.PaidAmount.IsZero() {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(label, 6, "Paid", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, cur+inv.PaidAmount.StringFixed(2), "", 1, "R", false, 0, "")
		pdf.CellFormat(label, 6, "Balance due", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, cur+inv.Balance.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Thank you for choosing "+clinicName+".", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

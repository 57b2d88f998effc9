package billing

// InvoiceStatus is the invoice lifecycle label. Paid and overdue are
// derived by ComputePaymentState and never written by staff; cancelled
// and refunded are explicit staff overrides.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusSent      InvoiceStatus = "sent"
	StatusPaid      InvoiceStatus = "paid"
	StatusOverdue   InvoiceStatus = "overdue"
	StatusCancelled InvoiceStatus = "cancelled"
	StatusRefunded  InvoiceStatus = "refunded"
)

// ValidStatus reports whether s is a known status label.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// transitions is the enforced lifecycle. The stored status never holds
// paid/overdue, so those appear only as targets of derivation, not here.
var transitions = map[InvoiceStatus][]InvoiceStatus{
	StatusDraft: {StatusSent, StatusCancelled},
	StatusSent:  {StatusCancelled, StatusRefunded},
	// Paid invoices can still be refunded. Overdue is derived from a
	// stored "sent", so it shares its transitions.
	StatusPaid:    {StatusRefunded},
	StatusOverdue: {StatusCancelled, StatusRefunded},
}

// CanTransition reports whether an invoice may move from one stored
// status to another via explicit staff action.
func CanTransition(from, to InvoiceStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

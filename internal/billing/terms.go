package billing

import (
	"strings"
	"time"
)

// PaymentTerms is the closed set of payment terms an invoice can carry.
// Free-text labels from the UI ("Net 30", "Due on Receipt", …) are
// normalized through ParsePaymentTerms — substring matching on digits is
// deliberately avoided so that "Due on Receipt" cannot fall through to a
// 30-day default.
type PaymentTerms int

const (
	DueOnReceipt PaymentTerms = iota
	Net15
	Net30
	Net60
)

// DefaultTerms is applied when a label cannot be recognized.
const DefaultTerms = Net30

// String returns the canonical label for the terms.
func (t PaymentTerms) String() string {
	switch t {
	case DueOnReceipt:
		return "Due on Receipt"
	case Net15:
		return "Net 15"
	case Net60:
		return "Net 60"
	default:
		return "Net 30"
	}
}

// Days returns how many days after the issue date the balance is due.
func (t PaymentTerms) Days() int {
	switch t {
	case DueOnReceipt:
		return 0
	case Net15:
		return 15
	case Net60:
		return 60
	default:
		return 30
	}
}

// DueDate returns issue + N days. Calendar arithmetic only — the issue
// date is treated as date-only, no timezone adjustment.
func (t PaymentTerms) DueDate(issue time.Time) time.Time {
	return issue.AddDate(0, 0, t.Days())
}

// ParsePaymentTerms normalizes a free-text terms label.
// Unrecognized labels map to DefaultTerms (Net 30).
func ParsePaymentTerms(label string) PaymentTerms {
	s := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(s, "receipt"), s == "net 0", s == "net0":
		return DueOnReceipt
	case strings.Contains(s, "15"):
		return Net15
	case strings.Contains(s, "60"):
		return Net60
	case strings.Contains(s, "30"):
		return Net30
	default:
		return DefaultTerms
	}
}

// dateLayout is the wire format for invoice dates throughout the API.
const dateLayout = "2006-01-02"

// ParseIssueDate parses a YYYY-MM-DD issue date.
// Returns ErrInvalidDate for anything unparseable.
func ParseIssueDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// FormatDate renders a date in the wire format.
func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

// Package billing is the pure invoice calculator: due dates, line
// totals, invoice totals and payment state. It performs no I/O and
// holds no state — every result is recomputed from its inputs so that
// totals can never drift from the line items that produced them.
package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleKind distinguishes percentage rules from flat-amount rules.
type RuleKind string

const (
	KindPercentage RuleKind = "percentage"
	KindFixed      RuleKind = "fixed"
	// KindPackage is stored for catalog completeness; the calculator
	// treats it as a fixed amount at invoice scope.
	KindPackage RuleKind = "package"
)

// TaxScope controls what a tax rule applies to.
type TaxScope string

const (
	ScopeSubtotal TaxScope = "subtotal"
	ScopeItem     TaxScope = "item"
)

// LineItem is one billed line as seen by the calculator.
type LineItem struct {
	Quantity  int
	UnitPrice decimal.Decimal
	// Taxable mirrors the service catalog flag; item-scoped taxes skip
	// non-taxable lines.
	Taxable bool
}

// TaxRule is an active tax to apply. Percentage rates are expressed as
// percent (8.5 means 8.5%).
type TaxRule struct {
	Name   string
	Kind   RuleKind
	Rate   decimal.Decimal // percentage kind
	Amount decimal.Decimal // fixed kind
	Scope  TaxScope
}

// DiscountRule is an active discount to apply.
type DiscountRule struct {
	Name  string
	Kind  RuleKind
	Value decimal.Decimal // percent or flat amount depending on Kind
}

// Totals is the result of ComputeTotals.
type Totals struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	Total         decimal.Decimal
	Warnings      []Warning
}

var hundred = decimal.NewFromInt(100)

// LineTotal validates one line and returns quantity × unitPrice.
// The stored line total must always come from here — it is never read
// back and trusted.
func LineTotal(quantity int, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// ComputeTotals derives subtotal, discount, tax and grand total from
// scratch. Discounts apply before tax: percentage taxes are computed on
// the discounted subtotal. A total that would go negative is clamped to
// zero and flagged with WarningNegativeTotal instead of being emitted.
func ComputeTotals(items []LineItem, taxes []TaxRule, discounts []DiscountRule) (Totals, error) {
	subtotal := decimal.Zero
	taxableSubtotal := decimal.Zero
	for _, it := range items {
		line, err := LineTotal(it.Quantity, it.UnitPrice)
		if err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(line)
		if it.Taxable {
			taxableSubtotal = taxableSubtotal.Add(line)
		}
	}

	discountTotal := decimal.Zero
	for _, d := range discounts {
		switch d.Kind {
		case KindPercentage:
			discountTotal = discountTotal.Add(subtotal.Mul(d.Value).Div(hundred))
		default: // fixed and package are both flat amounts
			discountTotal = discountTotal.Add(d.Value)
		}
	}

	var warnings []Warning
	base := subtotal.Sub(discountTotal)
	if base.IsNegative() {
		base = decimal.Zero
		warnings = append(warnings, WarningNegativeTotal)
	}

	// Item-scoped taxes see the taxable share of the discounted base.
	itemBase := taxableSubtotal
	if subtotal.IsPositive() {
		itemBase = base.Mul(taxableSubtotal).Div(subtotal)
	}

	taxTotal := decimal.Zero
	for _, t := range taxes {
		switch t.Kind {
		case KindFixed:
			taxTotal = taxTotal.Add(t.Amount)
		default:
			if t.Scope == ScopeItem {
				taxTotal = taxTotal.Add(itemBase.Mul(t.Rate).Div(hundred))
			} else {
				taxTotal = taxTotal.Add(base.Mul(t.Rate).Div(hundred))
			}
		}
	}

	return Totals{
		Subtotal:      subtotal,
		DiscountTotal: discountTotal,
		TaxTotal:      taxTotal,
		Total:         base.Add(taxTotal),
		Warnings:      warnings,
	}, nil
}

// PaymentStatus mirrors the payment lifecycle; only completed payments
// count toward the paid amount.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// PaymentRecord is one payment applied against an invoice.
type PaymentRecord struct {
	Amount decimal.Decimal
	Status PaymentStatus
}

// PaymentState is the result of ComputePaymentState.
type PaymentState struct {
	PaidAmount decimal.Decimal
	// Balance is floored at zero for display.
	Balance decimal.Decimal
	// RawBalance keeps the true arithmetic value so overpayment is
	// detectable instead of clamped away.
	RawBalance      decimal.Decimal
	EffectiveStatus InvoiceStatus
	Overpaid        bool
	Warnings        []Warning
}

// ComputePaymentState recomputes the paid amount from completed
// payments only and derives the effective status at read time. The
// stored status is only authoritative for the staff overrides that
// cannot be derived (cancelled, refunded).
func ComputePaymentState(total decimal.Decimal, dueDate time.Time, stored InvoiceStatus, payments []PaymentRecord, now time.Time) PaymentState {
	paid := decimal.Zero
	for _, p := range payments {
		if p.Status == PaymentCompleted {
			paid = paid.Add(p.Amount)
		}
	}

	raw := total.Sub(paid)
	display := raw
	if display.IsNegative() {
		display = decimal.Zero
	}

	st := PaymentState{
		PaidAmount: paid,
		Balance:    display,
		RawBalance: raw,
	}
	if raw.IsNegative() {
		st.Overpaid = true
		st.Warnings = append(st.Warnings, WarningOverpayment)
	}

	switch {
	case stored == StatusCancelled || stored == StatusRefunded:
		st.EffectiveStatus = stored
	case raw.LessThanOrEqual(decimal.Zero) && total.IsPositive():
		st.EffectiveStatus = StatusPaid
	// Only sent invoices go overdue — a stale draft stays a draft.
	case stored == StatusSent && dueDate.Before(truncateToDay(now)) && raw.IsPositive():
		st.EffectiveStatus = StatusOverdue
	default:
		st.EffectiveStatus = stored
	}
	return st
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

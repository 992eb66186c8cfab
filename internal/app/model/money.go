package model

import "github.com/shopspring/decimal"

// Monetary derivation rules. All money is fixed-point with two fractional
// digits; floats are never used for these fields.

// LineTotal computes a line item total: quantity × unit price, rounded to the
// currency's minor unit.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// DocumentTotal computes an estimate or invoice total from its components:
// subtotal − discount + tax, rounded to two places.
func DocumentTotal(subTotal, discount, tax decimal.Decimal) decimal.Decimal {
	return subTotal.Sub(discount).Add(tax).Round(2)
}

// SumLineTotals adds up already-rounded line totals into a subtotal.
func SumLineTotals(totals []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum.Round(2)
}

// InvoiceBalance is total − amount paid. Payments above the total are not
// rejected, so the balance may go negative.
func InvoiceBalance(total, amountPaid decimal.Decimal) decimal.Decimal {
	return total.Sub(amountPaid).Round(2)
}

// DerivePaymentStatus maps the paid amount against the total. Overdue and
// refunded are never derived here; overdue is applied by the billing sweep
// and refunded only by an explicit status update.
func DerivePaymentStatus(total, amountPaid decimal.Decimal) PaymentStatus {
	switch {
	case amountPaid.IsZero() || amountPaid.IsNegative():
		return PaymentUnpaid
	case amountPaid.GreaterThanOrEqual(total):
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		want      string
	}{
		{
			name:      "Whole quantities",
			quantity:  "2",
			unitPrice: "45.00",
			want:      "90",
		},
		{
			name:      "Fractional hours",
			quantity:  "1.5",
			unitPrice: "80.00",
			want:      "120",
		},
		{
			name:      "Rounds to two places",
			quantity:  "3",
			unitPrice: "0.333",
			want:      "1",
		},
		{
			name:      "Zero quantity",
			quantity:  "0",
			unitPrice: "99.99",
			want:      "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(dec(tt.quantity), dec(tt.unitPrice))
			assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestDocumentTotal(t *testing.T) {
	tests := []struct {
		name     string
		subTotal string
		discount string
		tax      string
		want     string
	}{
		{
			name:     "Plain total",
			subTotal: "100.00",
			discount: "0",
			tax:      "0",
			want:     "100",
		},
		{
			name:     "Discount and tax",
			subTotal: "200.00",
			discount: "20.00",
			tax:      "27.00",
			want:     "207",
		},
		{
			name:     "Discount larger than subtotal",
			subTotal: "50.00",
			discount: "60.00",
			tax:      "0",
			want:     "-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DocumentTotal(dec(tt.subTotal), dec(tt.discount), dec(tt.tax))
			assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSumLineTotals(t *testing.T) {
	totals := []decimal.Decimal{dec("90.00"), dec("120.00"), dec("1.00")}
	assert.True(t, dec("211").Equal(SumLineTotals(totals)))

	assert.True(t, decimal.Zero.Equal(SumLineTotals(nil)))
}

func TestInvoiceBalance(t *testing.T) {
	tests := []struct {
		name       string
		total      string
		amountPaid string
		want       string
	}{
		{
			name:       "Nothing paid",
			total:      "207.00",
			amountPaid: "0",
			want:       "207",
		},
		{
			name:       "Partially paid",
			total:      "207.00",
			amountPaid: "100.00",
			want:       "107",
		},
		{
			name:       "Overpayment goes negative",
			total:      "207.00",
			amountPaid: "250.00",
			want:       "-43",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InvoiceBalance(dec(tt.total), dec(tt.amountPaid))
			assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name       string
		total      string
		amountPaid string
		want       PaymentStatus
	}{
		{
			name:       "Nothing paid",
			total:      "100.00",
			amountPaid: "0",
			want:       PaymentUnpaid,
		},
		{
			name:       "Partially paid",
			total:      "100.00",
			amountPaid: "40.00",
			want:       PaymentPartial,
		},
		{
			name:       "Exactly paid",
			total:      "100.00",
			amountPaid: "100.00",
			want:       PaymentPaid,
		},
		{
			name:       "Overpaid still counts as paid",
			total:      "100.00",
			amountPaid: "150.00",
			want:       PaymentPaid,
		},
		{
			name:       "Negative paid amount treated as unpaid",
			total:      "100.00",
			amountPaid: "-10.00",
			want:       PaymentUnpaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePaymentStatus(dec(tt.total), dec(tt.amountPaid)))
		})
	}
}

func TestServicePrice(t *testing.T) {
	hourly := &Service{
		StandardHours: dec("1.5"),
		LaborRate:     dec("80.00"),
	}
	assert.True(t, dec("120").Equal(hourly.Price()))

	flat := dec("250.00")
	flatRate := &Service{
		StandardHours: dec("4"),
		LaborRate:     dec("80.00"),
		FlatRate:      &flat,
	}
	assert.True(t, dec("250").Equal(flatRate.Price()))
}

func TestPartIsLowStock(t *testing.T) {
	assert.True(t, (&Part{QuantityOnHand: 2, MinimumStock: 5}).IsLowStock())
	assert.True(t, (&Part{QuantityOnHand: 5, MinimumStock: 5}).IsLowStock())
	assert.False(t, (&Part{QuantityOnHand: 6, MinimumStock: 5}).IsLowStock())
}

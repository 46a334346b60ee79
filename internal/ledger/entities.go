package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType classifies a transaction and decides which fields carry meaning.
type TxType string

const (
	// TxTypePurchase is a sale of goods: qty*rate less discount, minus paid.
	TxTypePurchase TxType = "purchase"
	// TxTypeMoney is a payment-only credit against the customer's balance.
	TxTypeMoney TxType = "money"
	// TxTypeDiscount is a standalone discount credit.
	TxTypeDiscount TxType = "discount"
)

// Normalize maps unknown or empty values to purchase. Records written before
// the type field existed carry no type at all and must read as purchases.
func (t TxType) Normalize() TxType {
	switch t {
	case TxTypeMoney, TxTypeDiscount:
		return t
	default:
		return TxTypePurchase
	}
}

// Customer is a single account holder in the ledger.
// ID is immutable and unique; Name and Mobile are editable via upsert.
type Customer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// Transaction is one dated ledger event against a customer.
// Date carries no time component; it is stored at UTC midnight.
type Transaction struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Type       TxType    `json:"type,omitempty"`
	Date       time.Time `json:"date"`
	Item       string    `json:"item"`
	Qty        float64   `json:"qty"`
	Rate       float64   `json:"rate"`
	Discount   float64   `json:"discount"`
	Paid       float64   `json:"paid"`
}

// Total is the gross value of the transaction (qty*rate for purchases,
// zero for the credit-only types).
func (t Transaction) Total() float64 {
	if t.Type.Normalize() == TxTypePurchase {
		return t.Qty * t.Rate
	}
	return 0
}

// Net is the value after discount: total-discount for purchases, -discount
// for standalone discounts, zero for money payments.
func (t Transaction) Net() float64 {
	switch t.Type.Normalize() {
	case TxTypeMoney:
		return 0
	case TxTypeDiscount:
		return -t.Discount
	default:
		return t.Total() - t.Discount
	}
}

// Contribution is the signed amount this transaction adds to the customer's
// running balance. Positive means the customer owes more. Every aggregate in
// the calculator is built from this single derivation.
func (t Transaction) Contribution() float64 {
	switch t.Type.Normalize() {
	case TxTypeMoney:
		return -t.Paid
	case TxTypeDiscount:
		return -t.Discount
	default:
		return t.Net() - t.Paid
	}
}

// Round2 rounds a monetary value to two decimal places, half away from zero.
// Accumulation happens on raw float64 values; rounding is applied once at the
// display edge.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Fixed2 renders a monetary value with exactly two decimal places.
func Fixed2(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

// DateOnly truncates a timestamp to a calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

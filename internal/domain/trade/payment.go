package trade

import "github.com/shopspring/decimal"

// PaymentStatus represents how much of a document's payable amount has been
// settled. It is always derived from the paid amount against the total and is
// never settable by callers.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "Unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "Partially Paid"
	PaymentStatusPaid          PaymentStatus = "Paid"
)

// IsValid checks if the status is a known PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartiallyPaid, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// DerivePaymentStatus computes the status dictated by paid vs total.
// paid >= total is Paid, paid <= 0 is Unpaid, anything between is partial.
// The Paid check runs first so a fully-discounted zero-total document with
// nothing paid still derives Paid. Overpayment also derives Paid; the
// surplus shows up as negative due.
func DerivePaymentStatus(paid, total decimal.Decimal) PaymentStatus {
	if paid.GreaterThanOrEqual(total) {
		return PaymentStatusPaid
	}
	if paid.LessThanOrEqual(decimal.Zero) {
		return PaymentStatusUnpaid
	}
	return PaymentStatusPartiallyPaid
}

// PaymentMethod represents how the customer settled the amount
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodCard         PaymentMethod = "Card"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

package enum

// PaymentStatus is the settlement state of a transaction
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// IsValid reports whether the value is a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial, PaymentStatusCancelled:
		return true
	}
	return false
}

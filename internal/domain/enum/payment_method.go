package enum

// PaymentMethod is how a transaction was paid
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodEWallet  PaymentMethod = "e_wallet"
	PaymentMethodCredit   PaymentMethod = "credit"
)

// IsValid reports whether the value is a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodEWallet, PaymentMethodCredit:
		return true
	}
	return false
}

package enum

// TransactionType classifies a transaction
type TransactionType string

const (
	TransactionTypeSale     TransactionType = "sale"
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeReturn   TransactionType = "return"
)

// IsValid reports whether the value is a known transaction type
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeSale, TransactionTypePurchase, TransactionTypeReturn:
		return true
	}
	return false
}

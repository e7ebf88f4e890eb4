package domain

// PrivilegedFlag is the exact value the buyer service sends for privileged buyers
const PrivilegedFlag = "True"

// CompositeKey identifies a subscription by buyer and product
type CompositeKey struct {
	BuyerID string
	ProdID  string
}

// NewCompositeKey creates a subscription key
func NewCompositeKey(buyerID, prodID string) CompositeKey {
	return CompositeKey{BuyerID: buyerID, ProdID: prodID}
}

// Subscription records a buyer's standing order for a product
type Subscription struct {
	Key      CompositeKey
	Quantity int
}

// IsPrivileged reports whether a buyer flag grants subscriptions.
// The comparison is exact: "true" or "TRUE" do not qualify.
func IsPrivileged(flag string) bool {
	return flag == PrivilegedFlag
}

package models

type CheckoutState string

const (
	StateDetails    CheckoutState = "DETAILS"
	StatePayment    CheckoutState = "PAYMENT"
	StateProcessing CheckoutState = "PROCESSING"
	StateSuccess    CheckoutState = "SUCCESS"
)

// CheckoutView is the API projection of an in-flight checkout session.
type CheckoutView struct {
	ID          string        `json:"id"`
	State       CheckoutState `json:"state"`
	PaymentMode PaymentMode   `json:"payment_mode,omitempty"`
	TotalAmount int           `json:"total_amount"`
	LastError   string        `json:"last_error,omitempty"`
	OrderID     string        `json:"order_id,omitempty"`
	Simulated   bool          `json:"simulated,omitempty"`
	Closable    bool          `json:"closable"`
}

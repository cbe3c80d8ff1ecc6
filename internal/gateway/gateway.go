package gateway

// Methods accepted by the booking and payment APIs. "tf" is a manual bank
// transfer, "qris" an Indonesian QR payment.
const (
	MethodTransfer = "tf"
	MethodQris     = "qris"
)

type ChargeRequest struct {
	OrderID     string
	GrossAmount int64

	ItemID   string
	ItemName string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	// MethodTransfer or MethodQris.
	PaymentMethod string
	BankName      string
}

type ChargeResult struct {
	Token       string
	RedirectURL string
}

type TransactionStatus struct {
	TransactionID     string
	OrderID           string
	GrossAmount       string
	PaymentType       string
	TransactionTime   string
	TransactionStatus string
	StatusMessage     string
}

// Gateway is the slice of the payment provider this service uses: hosted
// checkout (snap), direct charge, and transaction status lookup.
type Gateway interface {
	CreateSnapTransaction(req ChargeRequest) (*ChargeResult, error)
	Charge(req ChargeRequest) (*ChargeResult, error)
	CheckTransaction(transactionID string) (*TransactionStatus, error)
}

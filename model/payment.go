package model

type CreateTransactionRequest struct {
	OrderID     string  `json:"order_id" validate:"required"`
	ProductID   uint64  `json:"product_id" validate:"required"`
	UserID      string  `json:"user_id" validate:"required"`
	WeddingInfo JSONMap `json:"wedding_info"`
}

// SnapSession is the hosted-checkout descriptor returned by the
// gateway: the snap token plus the redirect URL.
type SnapSession struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

type CreateTransactionResponse struct {
	Session *SnapSession `json:"session"`
	Order   *OrderEntity `json:"order"`
}

// PaymentNotification is the normalized webhook payload after
// signature verification.
type PaymentNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}

// TransactionStatus is the gateway's live view of a transaction.
type TransactionStatus struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	GrossAmount       string `json:"gross_amount,omitempty"`
	PaymentType       string `json:"payment_type,omitempty"`
	TransactionTime   string `json:"transaction_time,omitempty"`
}

type TransactionStatusResponse struct {
	GatewayStatus *TransactionStatus `json:"gateway_status"`
	Order         *OrderEntity       `json:"order"`
}

package constant

// OrderStatus is stored as a varchar column. Listing endpoints sort by
// this column ascending, so the textual encoding is part of the
// contract: "dibatalkan" < "diterima" < "pending".
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusAccepted OrderStatus = "diterima"
	OrderStatusCanceled OrderStatus = "dibatalkan"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusCanceled:
		return true
	}
	return false
}

// Midtrans transaction statuses seen in notifications and status queries.
const (
	TransactionStatusCapture    = "capture"
	TransactionStatusSettlement = "settlement"
	TransactionStatusPending    = "pending"
	TransactionStatusCancel     = "cancel"
	TransactionStatusDeny       = "deny"
	TransactionStatusExpire     = "expire"

	FraudStatusAccept = "accept"
)

// OrderStatusFromTransaction maps a gateway (transactionStatus,
// fraudStatus) pair to the order status it implies. Pure function of
// the notification content, which is what makes webhook redelivery a
// no-op.
func OrderStatusFromTransaction(transactionStatus, fraudStatus string) OrderStatus {
	switch transactionStatus {
	case TransactionStatusCapture:
		if fraudStatus == FraudStatusAccept {
			return OrderStatusAccepted
		}
		return OrderStatusPending
	case TransactionStatusSettlement:
		return OrderStatusAccepted
	case TransactionStatusCancel, TransactionStatusDeny, TransactionStatusExpire:
		return OrderStatusCanceled
	case TransactionStatusPending:
		return OrderStatusPending
	default:
		return OrderStatusPending
	}
}

package constant_test

import (
	"testing"

	"github.com/kartanikah/wedding-commerce/constant"
)

func TestOrderStatusFromTransaction(t *testing.T) {
	tests := []struct {
		name              string
		transactionStatus string
		fraudStatus       string
		want              constant.OrderStatus
	}{
		{"capture accepted", "capture", "accept", constant.OrderStatusAccepted},
		{"capture challenged", "capture", "challenge", constant.OrderStatusPending},
		{"capture without fraud status", "capture", "", constant.OrderStatusPending},
		{"settlement", "settlement", "", constant.OrderStatusAccepted},
		{"settlement ignores fraud status", "settlement", "challenge", constant.OrderStatusAccepted},
		{"cancel", "cancel", "", constant.OrderStatusCanceled},
		{"deny", "deny", "", constant.OrderStatusCanceled},
		{"expire", "expire", "", constant.OrderStatusCanceled},
		{"pending", "pending", "", constant.OrderStatusPending},
		{"unknown status defaults to pending", "refund", "", constant.OrderStatusPending},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := constant.OrderStatusFromTransaction(tt.transactionStatus, tt.fraudStatus)
			if got != tt.want {
				t.Fatalf("OrderStatusFromTransaction(%q, %q) = %q, want %q", tt.transactionStatus, tt.fraudStatus, got, tt.want)
			}
		})
	}

	// applying the same payload twice lands on the same status
	first := constant.OrderStatusFromTransaction("settlement", "")
	second := constant.OrderStatusFromTransaction("settlement", "")
	if first != second {
		t.Fatalf("mapping is not stable: %q then %q", first, second)
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []constant.OrderStatus{
		constant.OrderStatusPending,
		constant.OrderStatusAccepted,
		constant.OrderStatusCanceled,
	} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	if constant.OrderStatus("shipped").Valid() {
		t.Fatal(`"shipped" should not be valid`)
	}
}

package storefront

import (
	"regexp"
	"testing"
	"time"

	"github.com/kalakriti-next/internal/constants"
	"github.com/kalakriti-next/internal/models"
)

func TestGenerateOrderNoFormat(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^ORD-2026-[0-9A-F]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		no := generateOrderNo(now)
		if !pattern.MatchString(no) {
			t.Fatalf("订单号格式错误: %s", no)
		}
		if seen[no] {
			t.Fatalf("订单号重复: %s", no)
		}
		seen[no] = true
	}
}

func TestBuildOrderDeliveryDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	items := []models.CartItem{{ArtworkID: "art-1", Title: "A", Price: models.NewMoneyFromFloat(2000), Quantity: 1}}
	charges := ComputeCharges(cartSubtotal(items), DefaultChargeRules())

	order := buildOrder(items, models.ShippingInfo{}, constants.PaymentMethodCOD, "COD-1", charges, 7, now)
	if order.Date != "15 Mar 2026" {
		t.Fatalf("展示日期格式错误: %s", order.Date)
	}
	wantDelivery := now.AddDate(0, 0, 7)
	if !order.DeliveryDate.Equal(wantDelivery) {
		t.Fatalf("预计送达应为下单 +7 天, got %v", order.DeliveryDate)
	}

	// 快照与原始切片隔离
	items[0].Quantity = 9
	if order.Items[0].Quantity != 1 {
		t.Fatalf("订单项应为深拷贝")
	}
}

func TestStatusTransitionTable(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.OrderStatusPlaced, constants.OrderStatusProcessing, true},
		{constants.OrderStatusPlaced, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPlaced, constants.OrderStatusDelivered, false},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped, true},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusCancelled, constants.OrderStatusPlaced, false},
	}
	for _, tc := range cases {
		if got := isStatusTransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s: want %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

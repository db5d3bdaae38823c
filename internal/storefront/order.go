package storefront

import (
	"fmt"
	"strings"
	"time"

	"github.com/kalakriti-next/internal/constants"
	"github.com/kalakriti-next/internal/models"

	"github.com/google/uuid"
)

// orderDateLayout 订单展示日期格式
const orderDateLayout = "02 Jan 2006"

// generateOrderNo 生成订单编号：ORD-<年份>-<UUID 后 6 位>
func generateOrderNo(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	suffix = strings.ToUpper(suffix[len(suffix)-6:])
	return fmt.Sprintf("ORD-%d-%s", now.Year(), suffix)
}

// buildOrder 由当前购物车与草稿生成订单快照。
// Items 与 Shipping 均为深拷贝，订单创建后与在售状态完全隔离。
func buildOrder(items []models.CartItem, shipping models.ShippingInfo, method string, paymentRef string, charges Charges, deliveryDays int, now time.Time) models.Order {
	if deliveryDays <= 0 {
		deliveryDays = 7
	}
	return models.Order{
		OrderNo:       generateOrderNo(now),
		Date:          now.Format(orderDateLayout),
		CreatedAt:     now,
		Items:         cloneItems(items),
		Subtotal:      charges.Subtotal,
		ShippingFee:   charges.Shipping,
		Tax:           charges.Tax,
		Total:         charges.Total,
		Status:        constants.OrderStatusPlaced,
		Shipping:      shipping,
		PaymentMethod: method,
		PaymentRef:    paymentRef,
		DeliveryDate:  now.AddDate(0, 0, deliveryDays),
	}
}

// allowedStatusTransitions 订单状态流转表。
// delivered 与 cancelled 为终态；cancelled 可从任意非终态进入。
var allowedStatusTransitions = map[string][]string{
	constants.OrderStatusPlaced:     {constants.OrderStatusProcessing, constants.OrderStatusCancelled},
	constants.OrderStatusProcessing: {constants.OrderStatusShipped, constants.OrderStatusCancelled},
	constants.OrderStatusShipped:    {constants.OrderStatusDelivered, constants.OrderStatusCancelled},
	constants.OrderStatusDelivered:  nil,
	constants.OrderStatusCancelled:  nil,
}

// isStatusTransitionAllowed 判断状态流转是否合法
func isStatusTransitionAllowed(from, to string) bool {
	for _, next := range allowedStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

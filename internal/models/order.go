package models

import (
	"time"
)

// Order 订单记录（JSON 快照结构，经状态镜像持久化）
// 创建后除状态流转外不可变；Items 与 Shipping 为创建时刻的拷贝，
// 不与在售购物车或结算草稿共享内存。
type Order struct {
	OrderNo       string       `json:"order_no"`       // 订单编号（ORD-<年份>-<UUID 后缀>）
	Date          string       `json:"date"`           // 下单日期（展示格式）
	CreatedAt     time.Time    `json:"created_at"`     // 创建时间
	Items         []CartItem   `json:"items"`          // 订单项快照
	Subtotal      Money        `json:"subtotal"`       // 商品小计
	ShippingFee   Money        `json:"shipping_fee"`   // 运费
	Tax           Money        `json:"tax"`            // 税额
	Total         Money        `json:"total"`          // 实付金额（含运费与税）
	Status        string       `json:"status"`         // 订单状态
	Shipping      ShippingInfo `json:"shipping"`       // 收货信息快照
	PaymentMethod string       `json:"payment_method"` // 支付方式
	PaymentRef    string       `json:"payment_ref"`    // 支付凭据（网关返回的不透明引用）
	DeliveryDate  time.Time    `json:"delivery_date"`  // 预计送达时间（创建 + N 天）
}

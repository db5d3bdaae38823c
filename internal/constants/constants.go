package constants

// 订单状态常量
const (
	OrderStatusPlaced     = "placed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 结算步骤常量
const (
	CheckoutStepAddress = "address"
	CheckoutStepSummary = "summary"
	CheckoutStepPayment = "payment"
	// CheckoutStepShipping 历史遗留别名，进入即跳转到 address
	CheckoutStepShipping = "shipping"
)

// 支付方式常量
const (
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodCOD      = "cod"
)

// 状态镜像键前缀常量
const (
	StateKeyCartPrefix   = "cart:"
	StateKeyOrdersPrefix = "orders:"
)

// 用户角色常量
const (
	UserRoleCustomer = "customer"
	UserRoleArtist   = "artist"
)

// 站点币种常量
const (
	SiteCurrency = "INR"
)

// Package storefront 实现门店核心状态机：购物车、结算草稿与订单历史。
//
// 每个归属者（登录用户或访客标识）持有一个 Store 实例，所有读写都经过
// 其互斥锁；外部只能通过写方法变更状态，读方法一律返回拷贝。状态变更
// 同步镜像到 StateRepository，镜像失败只记日志、不影响内存状态。
package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kalakriti-next/internal/constants"
	"github.com/kalakriti-next/internal/logger"
	"github.com/kalakriti-next/internal/models"
	"github.com/kalakriti-next/internal/payment"
	"github.com/kalakriti-next/internal/repository"
)

// Event 状态变更事件
type Event string

const (
	EventCart    Event = "cart"
	EventDraft   Event = "draft"
	EventOrders  Event = "orders"
	EventSession Event = "session"
	EventPayment Event = "payment"
)

// Identity 当前会话身份
type Identity struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// CheckoutResult 一次支付收款的最终结果
// Order 非空表示下单成功；否则 Reason 携带可读失败原因。
type CheckoutResult struct {
	Order  *models.Order
	Reason string
}

// Options Store 构造参数
type Options struct {
	Owner        string
	Repository   repository.StateRepository
	Gateways     map[string]payment.Gateway
	Rules        ChargeRules
	DeliveryDays int
	Now          func() time.Time // 测试注入，缺省为 time.Now
}

// Store 单一归属者的门店状态
type Store struct {
	mu sync.Mutex

	owner        string
	items        []models.CartItem
	draft        Draft
	orders       []models.Order
	session      *Identity
	processing   bool
	rules        ChargeRules
	deliveryDays int
	now          func() time.Time

	repo     repository.StateRepository
	gateways map[string]payment.Gateway

	subs    map[int]func(Event)
	nextSub int
}

// NewStore 创建并回灌一个归属者的门店状态。
// 镜像读取失败或数据损坏时回退为空状态，只记日志不报错。
func NewStore(opts Options) *Store {
	if opts.Rules.TaxRate.IsZero() && opts.Rules.ShippingFee.IsZero() && opts.Rules.FreeShippingThreshold.IsZero() {
		opts.Rules = DefaultChargeRules()
	}
	if opts.DeliveryDays <= 0 {
		opts.DeliveryDays = 7
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Store{
		owner:        opts.Owner,
		draft:        NewDraft(),
		rules:        opts.Rules,
		deliveryDays: opts.DeliveryDays,
		now:          opts.Now,
		repo:         opts.Repository,
		gateways:     opts.Gateways,
		subs:         make(map[int]func(Event)),
	}
	if s.repo != nil {
		if items, err := s.repo.LoadCart(s.owner); err != nil {
			logger.Warnw("cart_mirror_read_failed", "owner", s.owner, "error", err)
		} else {
			s.items = items
		}
		if orders, err := s.repo.LoadOrders(s.owner); err != nil {
			logger.Warnw("orders_mirror_read_failed", "owner", s.owner, "error", err)
		} else {
			s.orders = orders
		}
	}
	return s
}

// Owner 返回归属者标识
func (s *Store) Owner() string {
	return s.owner
}

// Items 返回购物车行的拷贝
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// ItemCount 返回购物车总件数
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartCount(s.items)
}

// CartTotal 返回购物车小计（不含运费与税）
func (s *Store) CartTotal() models.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.NewMoneyFromDecimal(cartSubtotal(s.items))
}

// Charges 返回按当前购物车现算的费用拆分
func (s *Store) Charges() Charges {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeCharges(cartSubtotal(s.items), s.rules)
}

// Draft 返回结算草稿的拷贝
func (s *Store) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Orders 返回订单历史的拷贝（新单在前）
func (s *Store) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	for i := range out {
		out[i].Items = cloneItems(out[i].Items)
	}
	return out
}

// Order 按订单号查找订单
func (s *Store) Order(orderNo string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.OrderNo == orderNo {
			o.Items = cloneItems(o.Items)
			return o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

// Session 返回当前会话身份，未登录时为 nil
func (s *Store) Session() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	id := *s.session
	return &id
}

// Processing 返回是否有支付收款在途
func (s *Store) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

// AddItem 加入一件商品，同变体合并数量
func (s *Store) AddItem(in AddItemInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.items = mergeAdd(s.items, in)
	s.persistCartLocked()
	s.mu.Unlock()
	s.notify(EventCart)
	return nil
}

// RemoveItem 按作品 ID 移除所有变体行
func (s *Store) RemoveItem(artworkID string) {
	s.mu.Lock()
	s.items = removeByID(s.items, artworkID)
	s.persistCartLocked()
	s.mu.Unlock()
	s.notify(EventCart)
}

// SetItemQuantity 设置某作品的数量，数量 <= 0 时等同移除
func (s *Store) SetItemQuantity(artworkID string, quantity int) {
	s.mu.Lock()
	s.items = setQuantityByID(s.items, artworkID, quantity)
	s.persistCartLocked()
	s.mu.Unlock()
	s.notify(EventCart)
}

// ClearCart 清空购物车
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.items = nil
	s.persistCartLocked()
	s.mu.Unlock()
	s.notify(EventCart)
}

// SetSession 设置会话身份，并用其预填草稿中的空白联系字段
func (s *Store) SetSession(id Identity) {
	s.mu.Lock()
	s.session = &id
	if s.draft.Shipping.FullName == "" {
		s.draft.Shipping.FullName = id.Name
	}
	if s.draft.Shipping.Email == "" {
		s.draft.Shipping.Email = id.Email
	}
	if s.draft.Shipping.Phone == "" {
		s.draft.Shipping.Phone = id.Phone
	}
	s.mu.Unlock()
	s.notify(EventSession, EventDraft)
}

// ClearSession 退出会话，保留购物车与订单历史
func (s *Store) ClearSession() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	s.notify(EventSession)
}

// BeginCheckout 进入结算流程，草稿回到收货信息步骤。
// 要求购物车非空且已登录；已填写过的收货信息保留。
func (s *Store) BeginCheckout() error {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return ErrCartEmpty
	}
	if s.session == nil {
		s.mu.Unlock()
		return ErrLoginRequired
	}
	s.draft.Step = constants.CheckoutStepAddress
	s.mu.Unlock()
	s.notify(EventDraft)
	return nil
}

// GoToStep 跳转到指定结算步骤，兼容旧步骤名 shipping。
// 只允许回退或停留，前进必须经过对应的提交方法。
func (s *Store) GoToStep(step string) error {
	normalized := NormalizeStep(step)
	if normalized == "" {
		return ErrInvalidCheckoutStep
	}
	s.mu.Lock()
	if stepRank(normalized) > stepRank(s.draft.Step) {
		s.mu.Unlock()
		return ErrInvalidCheckoutStep
	}
	s.draft.Step = normalized
	s.mu.Unlock()
	s.notify(EventDraft)
	return nil
}

// SubmitAddress 提交收货信息并进入摘要步骤。
// 校验失败时草稿停留在收货信息步骤，已输入内容不丢失。
func (s *Store) SubmitAddress(info models.ShippingInfo) error {
	info = sanitizeShipping(info)
	s.mu.Lock()
	if s.draft.Step != constants.CheckoutStepAddress {
		s.mu.Unlock()
		return ErrInvalidCheckoutStep
	}
	s.draft.Shipping = info
	if err := validateShipping(info); err != nil {
		s.mu.Unlock()
		s.notify(EventDraft)
		return err
	}
	s.draft.Step = constants.CheckoutStepSummary
	s.mu.Unlock()
	s.notify(EventDraft)
	return nil
}

// ProceedToPayment 从摘要步骤进入支付步骤
func (s *Store) ProceedToPayment() error {
	s.mu.Lock()
	if s.draft.Step != constants.CheckoutStepSummary {
		s.mu.Unlock()
		return ErrInvalidCheckoutStep
	}
	s.draft.Step = constants.CheckoutStepPayment
	s.mu.Unlock()
	s.notify(EventDraft)
	return nil
}

// Back 回退一个结算步骤，已在首步时不动作
func (s *Store) Back() {
	s.mu.Lock()
	switch s.draft.Step {
	case constants.CheckoutStepPayment:
		s.draft.Step = constants.CheckoutStepSummary
	case constants.CheckoutStepSummary:
		s.draft.Step = constants.CheckoutStepAddress
	}
	s.mu.Unlock()
	s.notify(EventDraft)
}

// SelectPaymentMethod 选择支付方式
func (s *Store) SelectPaymentMethod(method string) error {
	if method != constants.PaymentMethodRazorpay && method != constants.PaymentMethodCOD {
		return ErrPaymentMethodInvalid
	}
	s.mu.Lock()
	s.draft.PaymentMethod = method
	s.mu.Unlock()
	s.notify(EventDraft)
	return nil
}

// Checkout 发起支付收款。
// 立即返回一个恰好投递一次结果的通道；收款期间 processing 置位，
// 拒绝并发发起。成功时原子提交订单（快照入史、清空购物车、重置草稿），
// 任何失败都不改变购物车、草稿与订单历史。
func (s *Store) Checkout(ctx context.Context) (<-chan CheckoutResult, error) {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return nil, ErrPaymentInProgress
	}
	if len(s.items) == 0 {
		s.mu.Unlock()
		return nil, ErrCartEmpty
	}
	if s.session == nil {
		s.mu.Unlock()
		return nil, ErrLoginRequired
	}
	if s.draft.Step != constants.CheckoutStepPayment {
		s.mu.Unlock()
		return nil, ErrInvalidCheckoutStep
	}
	if s.draft.PaymentMethod == "" {
		s.mu.Unlock()
		return nil, ErrPaymentMethodRequired
	}
	if err := validateShipping(s.draft.Shipping); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	gw, ok := s.gateways[s.draft.PaymentMethod]
	if !ok || gw == nil {
		s.mu.Unlock()
		return nil, ErrGatewayUnavailable
	}

	method := s.draft.PaymentMethod
	shipping := s.draft.Shipping
	charges := ComputeCharges(cartSubtotal(s.items), s.rules)
	orderRef := fmt.Sprintf("%s-%d", s.owner, s.now().UnixNano())
	req := payment.Request{
		OrderRef:    orderRef,
		AmountMinor: payment.MinorUnits(charges.Total.Decimal),
		Currency:    constants.SiteCurrency,
		Description: fmt.Sprintf("Kalakriti order (%d items)", cartCount(s.items)),
		Identity: payment.Identity{
			Name:    shipping.FullName,
			Email:   shipping.Email,
			Contact: shipping.Phone,
		},
	}
	s.processing = true
	s.mu.Unlock()
	s.notify(EventPayment)

	result := make(chan CheckoutResult, 1)
	gw.Collect(ctx, req, payment.Callbacks{
		OnSuccess: func(paymentRef string) {
			order := s.commitOrder(shipping, method, paymentRef, charges)
			result <- CheckoutResult{Order: &order}
		},
		OnFailure: func(reason string) {
			s.failCheckout(method, reason)
			result <- CheckoutResult{Reason: reason}
		},
	})
	return result, nil
}

// commitOrder 支付成功后的原子提交：订单入史、清空购物车、重置草稿
func (s *Store) commitOrder(shipping models.ShippingInfo, method, paymentRef string, charges Charges) models.Order {
	s.mu.Lock()
	order := buildOrder(s.items, shipping, method, paymentRef, charges, s.deliveryDays, s.now())
	s.orders = append([]models.Order{order}, s.orders...)
	s.items = nil
	s.draft = NewDraft()
	if s.session != nil {
		s.draft.Shipping.FullName = s.session.Name
		s.draft.Shipping.Email = s.session.Email
		s.draft.Shipping.Phone = s.session.Phone
	}
	s.processing = false
	s.persistCartLocked()
	s.persistOrdersLocked()
	s.mu.Unlock()
	logger.Infow("order_placed",
		"owner", s.owner,
		"order_no", order.OrderNo,
		"method", method,
		"total", order.Total.String())
	s.notify(EventCart, EventDraft, EventOrders, EventPayment)
	return order
}

// failCheckout 支付失败：只复位在途标记，购物车与草稿原样保留
func (s *Store) failCheckout(method, reason string) {
	s.mu.Lock()
	s.processing = false
	s.mu.Unlock()
	logger.Warnw("payment_failed", "owner", s.owner, "method", method, "reason", reason)
	s.notify(EventPayment)
}

// AdvanceOrderStatus 按流转表推进订单状态
func (s *Store) AdvanceOrderStatus(orderNo, status string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.orders {
		if s.orders[i].OrderNo == orderNo {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrOrderNotFound
	}
	if !isStatusTransitionAllowed(s.orders[idx].Status, status) {
		s.mu.Unlock()
		return ErrStatusTransitionInvalid
	}
	from := s.orders[idx].Status
	s.orders[idx].Status = status
	s.persistOrdersLocked()
	s.mu.Unlock()
	logger.Infow("order_status_changed", "owner", s.owner, "order_no", orderNo, "from", from, "to", status)
	s.notify(EventOrders)
	return nil
}

// Subscribe 注册状态变更回调，返回取消函数。
// 回调在锁外触发，可以安全地回读 Store。
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify 在锁外依次触发订阅回调
func (s *Store) notify(events ...Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}

// persistCartLocked 写购物车镜像，失败只记日志（调用方需持锁）
func (s *Store) persistCartLocked() {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveCart(s.owner, s.items); err != nil {
		logger.Warnw("cart_mirror_write_failed", "owner", s.owner, "error", err)
	}
}

// persistOrdersLocked 写订单历史镜像，失败只记日志（调用方需持锁）
func (s *Store) persistOrdersLocked() {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveOrders(s.owner, s.orders); err != nil {
		logger.Warnw("orders_mirror_write_failed", "owner", s.owner, "error", err)
	}
}

// stepRank 结算步骤的先后序
func stepRank(step string) int {
	switch step {
	case constants.CheckoutStepAddress:
		return 0
	case constants.CheckoutStepSummary:
		return 1
	case constants.CheckoutStepPayment:
		return 2
	default:
		return -1
	}
}

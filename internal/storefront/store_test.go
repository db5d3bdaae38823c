package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kalakriti-next/internal/constants"
	"github.com/kalakriti-next/internal/models"
	"github.com/kalakriti-next/internal/payment"
	"github.com/kalakriti-next/internal/repository"
)

// memBlob 测试用内存键值后端
type memBlob struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemBlob() *memBlob {
	return &memBlob{data: make(map[string][]byte)}
}

func (m *memBlob) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	return raw, ok, nil
}

func (m *memBlob) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memBlob) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// brokenBlob 读写均报错的后端，用于验证镜像降级
type brokenBlob struct{}

func (brokenBlob) Get(string) ([]byte, bool, error) { return nil, false, errors.New("backend down") }
func (brokenBlob) Put(string, []byte) error         { return errors.New("backend down") }
func (brokenBlob) Delete(string) error              { return errors.New("backend down") }

// fakeGateway 同步触发回调的测试网关
type fakeGateway struct {
	succeed bool
	ref     string
	reason  string
}

func (g *fakeGateway) Name() string { return "fake" }

func (g *fakeGateway) Collect(_ context.Context, _ payment.Request, cb payment.Callbacks) {
	if g.succeed {
		cb.OnSuccess(g.ref)
		return
	}
	cb.OnFailure(g.reason)
}

func testAddInput(id string, price int64) AddItemInput {
	return AddItemInput{
		ArtworkID: id,
		Title:     "Madhubani Peacock",
		Price:     models.NewMoneyFromFloat(float64(price)),
		Image:     "/images/" + id + ".jpg",
		Size:      "medium",
		Format:    "canvas",
	}
}

func newTestStore(t *testing.T, gw payment.Gateway) *Store {
	t.Helper()
	gateways := map[string]payment.Gateway{}
	if gw != nil {
		gateways[constants.PaymentMethodCOD] = gw
	}
	return NewStore(Options{
		Owner:      "user-1",
		Repository: repository.NewStateRepository(newMemBlob()),
		Gateways:   gateways,
	})
}

// reachPayment 把 Store 推进到支付步骤
func reachPayment(t *testing.T, s *Store) {
	t.Helper()
	s.SetSession(Identity{UserID: "user-1", Name: "Asha Rao", Email: "asha@example.com", Phone: "9876543210"})
	if err := s.BeginCheckout(); err != nil {
		t.Fatalf("BeginCheckout: %v", err)
	}
	err := s.SubmitAddress(models.ShippingInfo{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
	})
	if err != nil {
		t.Fatalf("SubmitAddress: %v", err)
	}
	if err := s.ProceedToPayment(); err != nil {
		t.Fatalf("ProceedToPayment: %v", err)
	}
	if err := s.SelectPaymentMethod(constants.PaymentMethodCOD); err != nil {
		t.Fatalf("SelectPaymentMethod: %v", err)
	}
}

func TestAddItemMergesVariant(t *testing.T) {
	s := newTestStore(t, nil)

	for i := 0; i < 3; i++ {
		if err := s.AddItem(testAddInput("art-1", 2000)); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}
	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("同变体应合并为一行, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("数量应为加入次数 3, got %d", items[0].Quantity)
	}

	other := testAddInput("art-1", 2000)
	other.Size = "large"
	if err := s.AddItem(other); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got := len(s.Items()); got != 2 {
		t.Fatalf("不同变体应新增一行, got %d", got)
	}
	if s.ItemCount() != 4 {
		t.Fatalf("总件数应为 4, got %d", s.ItemCount())
	}
}

func TestSetItemQuantityZeroRemoves(t *testing.T) {
	s := newTestStore(t, nil)
	if err := s.AddItem(testAddInput("art-1", 1500)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	s.SetItemQuantity("art-1", 0)
	if got := len(s.Items()); got != 0 {
		t.Fatalf("数量 0 应移除商品, got %d 行", got)
	}

	if err := s.AddItem(testAddInput("art-1", 1500)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	s.SetItemQuantity("art-1", -1)
	if got := len(s.Items()); got != 0 {
		t.Fatalf("负数量应移除商品, got %d 行", got)
	}
}

func TestSubmitAddressRejectionKeepsStep(t *testing.T) {
	s := newTestStore(t, nil)
	if err := s.AddItem(testAddInput("art-1", 2000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	s.SetSession(Identity{UserID: "user-1"})
	if err := s.BeginCheckout(); err != nil {
		t.Fatalf("BeginCheckout: %v", err)
	}

	err := s.SubmitAddress(models.ShippingInfo{FullName: "Asha Rao", Email: "asha@example.com"})
	if !errors.Is(err, ErrShippingIncomplete) {
		t.Fatalf("缺字段应返回 ErrShippingIncomplete, got %v", err)
	}
	if got := s.Draft().Step; got != constants.CheckoutStepAddress {
		t.Fatalf("校验失败应停留在 address 步骤, got %s", got)
	}
	if s.Draft().Shipping.FullName != "Asha Rao" {
		t.Fatalf("已输入内容不应丢失")
	}

	err = s.SubmitAddress(models.ShippingInfo{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "98765",
		Address:  "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
	})
	if !errors.Is(err, ErrPhoneTooShort) {
		t.Fatalf("手机号过短应返回 ErrPhoneTooShort, got %v", err)
	}
}

func TestCheckoutStepAliasAndBack(t *testing.T) {
	s := newTestStore(t, nil)
	if err := s.AddItem(testAddInput("art-1", 2000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	reachPayment(t, s)

	s.Back()
	if got := s.Draft().Step; got != constants.CheckoutStepSummary {
		t.Fatalf("payment 回退应到 summary, got %s", got)
	}
	if err := s.GoToStep(constants.CheckoutStepShipping); err != nil {
		t.Fatalf("GoToStep: %v", err)
	}
	if got := s.Draft().Step; got != constants.CheckoutStepAddress {
		t.Fatalf("旧步骤名 shipping 应落到 address, got %s", got)
	}
	if err := s.GoToStep(constants.CheckoutStepPayment); !errors.Is(err, ErrInvalidCheckoutStep) {
		t.Fatalf("不允许跳步前进, got %v", err)
	}
}

func TestCheckoutSuccessCommitsOrder(t *testing.T) {
	s := newTestStore(t, &fakeGateway{succeed: true, ref: "PAY-123"})
	if err := s.AddItem(testAddInput("art-1", 2000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	reachPayment(t, s)

	ch, err := s.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	res := <-ch
	if res.Order == nil {
		t.Fatalf("支付成功应返回订单, reason=%s", res.Reason)
	}
	if res.Order.Status != constants.OrderStatusPlaced {
		t.Fatalf("新订单状态应为 placed, got %s", res.Order.Status)
	}
	if res.Order.PaymentRef != "PAY-123" {
		t.Fatalf("支付凭据应透传, got %s", res.Order.PaymentRef)
	}
	if res.Order.Total.String() != "2860.00" {
		t.Fatalf("订单总额错误: %s", res.Order.Total.String())
	}

	if got := len(s.Items()); got != 0 {
		t.Fatalf("下单成功应清空购物车, got %d 行", got)
	}
	if got := s.Draft().Step; got != constants.CheckoutStepAddress {
		t.Fatalf("下单成功应重置草稿, got %s", got)
	}
	orders := s.Orders()
	if len(orders) != 1 {
		t.Fatalf("应恰好产生一笔订单, got %d", len(orders))
	}
	if orders[0].OrderNo != res.Order.OrderNo {
		t.Fatalf("订单历史首位应为新订单")
	}
	if s.Processing() {
		t.Fatalf("收款完成后 processing 应复位")
	}
}

func TestCheckoutFailureLeavesStateIntact(t *testing.T) {
	s := newTestStore(t, &fakeGateway{reason: "payment cancelled"})
	if err := s.AddItem(testAddInput("art-1", 2000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	reachPayment(t, s)

	ch, err := s.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	res := <-ch
	if res.Order != nil {
		t.Fatalf("支付失败不应产生订单")
	}
	if res.Reason != "payment cancelled" {
		t.Fatalf("失败原因应透传, got %s", res.Reason)
	}

	if got := len(s.Items()); got != 1 {
		t.Fatalf("支付失败购物车应原样保留, got %d 行", got)
	}
	if got := s.Draft().Step; got != constants.CheckoutStepPayment {
		t.Fatalf("支付失败草稿应停留在 payment, got %s", got)
	}
	if got := len(s.Orders()); got != 0 {
		t.Fatalf("支付失败不应写入订单历史, got %d", got)
	}
	if s.Processing() {
		t.Fatalf("收款结束后 processing 应复位")
	}
}

func TestCheckoutPreconditions(t *testing.T) {
	s := newTestStore(t, &fakeGateway{succeed: true, ref: "PAY-1"})

	if _, err := s.Checkout(context.Background()); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("空购物车应拒绝收款, got %v", err)
	}
	if err := s.AddItem(testAddInput("art-1", 2000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := s.Checkout(context.Background()); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("未登录应拒绝收款, got %v", err)
	}
	s.SetSession(Identity{UserID: "user-1"})
	if _, err := s.Checkout(context.Background()); !errors.Is(err, ErrInvalidCheckoutStep) {
		t.Fatalf("未到支付步骤应拒绝收款, got %v", err)
	}
}

func TestOrderSnapshotIsolation(t *testing.T) {
	s := newTestStore(t, &fakeGateway{succeed: true, ref: "PAY-1"})
	if err := s.AddItem(testAddInput("art-1", 2000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	reachPayment(t, s)

	ch, err := s.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	res := <-ch
	if res.Order == nil {
		t.Fatalf("下单失败: %s", res.Reason)
	}

	// 下单后继续购物，订单快照不应被影响
	if err := s.AddItem(testAddInput("art-2", 9000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	s.SetItemQuantity("art-2", 5)

	got, err := s.Order(res.Order.OrderNo)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ArtworkID != "art-1" || got.Items[0].Quantity != 1 {
		t.Fatalf("订单快照被后续购物污染: %+v", got.Items)
	}
	if got.Total.String() != "2860.00" {
		t.Fatalf("订单金额不应随购物车变化: %s", got.Total.String())
	}
}

func TestAdvanceOrderStatus(t *testing.T) {
	s := newTestStore(t, &fakeGateway{succeed: true, ref: "PAY-1"})
	if err := s.AddItem(testAddInput("art-1", 2000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	reachPayment(t, s)
	ch, _ := s.Checkout(context.Background())
	res := <-ch
	orderNo := res.Order.OrderNo

	if err := s.AdvanceOrderStatus(orderNo, constants.OrderStatusShipped); !errors.Is(err, ErrStatusTransitionInvalid) {
		t.Fatalf("placed 不能直接到 shipped, got %v", err)
	}
	for _, status := range []string{constants.OrderStatusProcessing, constants.OrderStatusShipped, constants.OrderStatusDelivered} {
		if err := s.AdvanceOrderStatus(orderNo, status); err != nil {
			t.Fatalf("流转到 %s 失败: %v", status, err)
		}
	}
	if err := s.AdvanceOrderStatus(orderNo, constants.OrderStatusCancelled); !errors.Is(err, ErrStatusTransitionInvalid) {
		t.Fatalf("delivered 为终态, got %v", err)
	}
	if err := s.AdvanceOrderStatus("ORD-404", constants.OrderStatusProcessing); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("未知订单应返回 ErrOrderNotFound, got %v", err)
	}
}

func TestStateMirrorRoundTrip(t *testing.T) {
	blob := newMemBlob()
	repo := repository.NewStateRepository(blob)
	gw := &fakeGateway{succeed: true, ref: "PAY-1"}

	first := NewStore(Options{Owner: "user-1", Repository: repo, Gateways: map[string]payment.Gateway{constants.PaymentMethodCOD: gw}})
	if err := first.AddItem(testAddInput("art-1", 2000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := first.AddItem(testAddInput("art-2", 3000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	// 新实例从镜像回灌购物车
	second := NewStore(Options{Owner: "user-1", Repository: repo})
	if got := len(second.Items()); got != 2 {
		t.Fatalf("回灌后购物车应有 2 行, got %d", got)
	}
	if second.ItemCount() != 2 {
		t.Fatalf("回灌后总件数应为 2, got %d", second.ItemCount())
	}
}

func TestMirrorFailureDegradesSilently(t *testing.T) {
	s := NewStore(Options{Owner: "user-1", Repository: repository.NewStateRepository(brokenBlob{})})

	// 后端不可用时回退为空状态，写入照常成功
	if got := len(s.Items()); got != 0 {
		t.Fatalf("读镜像失败应回退为空, got %d 行", got)
	}
	if err := s.AddItem(testAddInput("art-1", 2000)); err != nil {
		t.Fatalf("镜像写失败不应影响内存状态: %v", err)
	}
	if got := len(s.Items()); got != 1 {
		t.Fatalf("内存状态应正常更新, got %d 行", got)
	}
}

func TestSubscribeNotifiesAndCancels(t *testing.T) {
	s := newTestStore(t, nil)

	var mu sync.Mutex
	events := make([]Event, 0)
	cancel := s.Subscribe(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	if err := s.AddItem(testAddInput("art-1", 2000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	mu.Lock()
	seen := len(events) > 0 && events[0] == EventCart
	mu.Unlock()
	if !seen {
		t.Fatalf("加购应触发 cart 事件, got %v", events)
	}

	cancel()
	mu.Lock()
	before := len(events)
	mu.Unlock()
	s.ClearCart()
	mu.Lock()
	after := len(events)
	mu.Unlock()
	if after != before {
		t.Fatalf("取消订阅后不应再收到事件")
	}
}

func TestConcurrentCheckoutRejected(t *testing.T) {
	// 阻塞网关：收到请求后等待放行再回调
	release := make(chan struct{})
	done := make(chan struct{})
	blocking := &blockingGateway{release: release, done: done}

	s := newTestStore(t, blocking)
	if err := s.AddItem(testAddInput("art-1", 2000)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	reachPayment(t, s)

	ch, err := s.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if _, err := s.Checkout(context.Background()); !errors.Is(err, ErrPaymentInProgress) {
		t.Fatalf("收款在途应拒绝并发发起, got %v", err)
	}

	close(release)
	select {
	case res := <-ch:
		if res.Order == nil {
			t.Fatalf("放行后应下单成功: %s", res.Reason)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("等待收款结果超时")
	}
}

type blockingGateway struct {
	release chan struct{}
	done    chan struct{}
}

func (g *blockingGateway) Name() string { return "blocking" }

func (g *blockingGateway) Collect(_ context.Context, _ payment.Request, cb payment.Callbacks) {
	go func() {
		<-g.release
		cb.OnSuccess("PAY-BLOCK")
		close(g.done)
	}()
}

package storefront

import (
	"sync"
	"time"

	"github.com/kalakriti-next/internal/payment"
	"github.com/kalakriti-next/internal/repository"
)

// Manager 按归属者维护 Store 实例的注册表。
// 同一归属者总是拿到同一个实例，首次访问时从状态镜像回灌。
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store

	repo         repository.StateRepository
	gateways     map[string]payment.Gateway
	rules        ChargeRules
	deliveryDays int
	now          func() time.Time
}

// NewManager 创建 Store 注册表
func NewManager(repo repository.StateRepository, gateways map[string]payment.Gateway, rules ChargeRules, deliveryDays int) *Manager {
	return &Manager{
		stores:       make(map[string]*Store),
		repo:         repo,
		gateways:     gateways,
		rules:        rules,
		deliveryDays: deliveryDays,
		now:          time.Now,
	}
}

// Get 返回归属者的 Store，不存在时创建并回灌
func (m *Manager) Get(owner string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[owner]; ok {
		return s
	}
	s := NewStore(Options{
		Owner:        owner,
		Repository:   m.repo,
		Gateways:     m.gateways,
		Rules:        m.rules,
		DeliveryDays: m.deliveryDays,
		Now:          m.now,
	})
	m.stores[owner] = s
	return s
}

// Evict 丢弃归属者的内存实例，下次访问时重新回灌
func (m *Manager) Evict(owner string) {
	m.mu.Lock()
	delete(m.stores, owner)
	m.mu.Unlock()
}

package repository

import (
	"encoding/json"
	"fmt"

	"github.com/kalakriti-next/internal/constants"
	"github.com/kalakriti-next/internal/models"
)

// BlobStore 状态镜像的底层键值后端
type BlobStore interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// StateRepository 状态镜像数据访问接口
// Load 系列返回显式 error，调用方（storefront.Store）负责吞错降级：
// 坏数据只记日志并回退为空，绝不让进程崩溃。
type StateRepository interface {
	LoadCart(owner string) ([]models.CartItem, error)
	SaveCart(owner string, items []models.CartItem) error
	LoadOrders(owner string) ([]models.Order, error)
	SaveOrders(owner string, orders []models.Order) error
}

// BlobStateRepository 基于键值后端的状态镜像实现
type BlobStateRepository struct {
	store BlobStore
}

// NewStateRepository 创建状态镜像仓库
func NewStateRepository(store BlobStore) *BlobStateRepository {
	return &BlobStateRepository{store: store}
}

// LoadCart 读取购物车镜像
func (r *BlobStateRepository) LoadCart(owner string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.load(constants.StateKeyCartPrefix+owner, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveCart 写入购物车镜像
func (r *BlobStateRepository) SaveCart(owner string, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	return r.save(constants.StateKeyCartPrefix+owner, items)
}

// LoadOrders 读取订单历史镜像
func (r *BlobStateRepository) LoadOrders(owner string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.load(constants.StateKeyOrdersPrefix+owner, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SaveOrders 写入订单历史镜像
func (r *BlobStateRepository) SaveOrders(owner string, orders []models.Order) error {
	if orders == nil {
		orders = []models.Order{}
	}
	return r.save(constants.StateKeyOrdersPrefix+owner, orders)
}

func (r *BlobStateRepository) load(key string, dest interface{}) error {
	raw, ok, err := r.store.Get(key)
	if err != nil {
		return fmt.Errorf("state blob read failed: %w", err)
	}
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("state blob decode failed: %w", err)
	}
	return nil
}

func (r *BlobStateRepository) save(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("state blob encode failed: %w", err)
	}
	if err := r.store.Put(key, raw); err != nil {
		return fmt.Errorf("state blob write failed: %w", err)
	}
	return nil
}

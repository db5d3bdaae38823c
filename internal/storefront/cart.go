package storefront

import (
	"strings"

	"github.com/kalakriti-next/internal/models"

	"github.com/shopspring/decimal"
)

// AddItemInput 加入购物车的参数
type AddItemInput struct {
	ArtworkID string
	Title     string
	Price     models.Money
	Image     string
	Size      string
	Format    string
}

func (in AddItemInput) validate() error {
	if strings.TrimSpace(in.ArtworkID) == "" || strings.TrimSpace(in.Title) == "" {
		return ErrInvalidCartItem
	}
	if in.Price.Decimal.IsNegative() {
		return ErrInvalidCartItem
	}
	return nil
}

// mergeAdd 向购物车加入一件商品。
// 同一 (作品, 尺寸, 材质) 变体合并为一行，数量 +1；否则追加新行。
func mergeAdd(items []models.CartItem, in AddItemInput) []models.CartItem {
	item := models.CartItem{
		ArtworkID: in.ArtworkID,
		Title:     in.Title,
		Price:     in.Price,
		Image:     in.Image,
		Quantity:  1,
		Size:      in.Size,
		Format:    in.Format,
	}
	key := item.VariantKey()
	for i := range items {
		if items[i].VariantKey() == key {
			items[i].Quantity++
			return items
		}
	}
	return append(items, item)
}

// removeByID 按作品 ID 移除所有变体行
func removeByID(items []models.CartItem, artworkID string) []models.CartItem {
	kept := items[:0]
	for _, it := range items {
		if it.ArtworkID != artworkID {
			kept = append(kept, it)
		}
	}
	return kept
}

// setQuantityByID 设置某作品所有行的数量，数量 <= 0 时移除
func setQuantityByID(items []models.CartItem, artworkID string, quantity int) []models.CartItem {
	if quantity <= 0 {
		return removeByID(items, artworkID)
	}
	for i := range items {
		if items[i].ArtworkID == artworkID {
			items[i].Quantity = quantity
		}
	}
	return items
}

// cartCount 购物车总件数（数量之和）
func cartCount(items []models.CartItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// cartSubtotal 购物车小计
func cartSubtotal(items []models.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Decimal.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// cloneItems 深拷贝购物车行，用于下单快照与对外读取
func cloneItems(items []models.CartItem) []models.CartItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

package public

import (
	"errors"

	"github.com/kalakriti-next/internal/http/response"
	"github.com/kalakriti-next/internal/models"
	"github.com/kalakriti-next/internal/service"
	"github.com/kalakriti-next/internal/storefront"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ArtworkID uint   `json:"artwork_id" binding:"required"`
	Size      string `json:"size"`
	Format    string `json:"format"`
}

// UpdateCartItemRequest 改数量请求
type UpdateCartItemRequest struct {
	ArtworkID string `json:"artwork_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CartResponse 购物车响应
type CartResponse struct {
	Items   []models.CartItem  `json:"items"`
	Count   int                `json:"count"`
	Charges storefront.Charges `json:"charges"`
}

func cartResponse(store *storefront.Store) CartResponse {
	items := store.Items()
	if items == nil {
		items = []models.CartItem{}
	}
	return CartResponse{
		Items:   items,
		Count:   store.ItemCount(),
		Charges: store.Charges(),
	}
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	response.Success(c, cartResponse(store))
}

// AddCartItem 加购一件艺术品
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}

	artwork, err := h.CatalogService.GetByID(req.ArtworkID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "作品不存在或已下架")
			return
		}
		response.Error(c, response.CodeInternal, "作品查询失败")
		return
	}

	input := storefront.AddItemInput{
		ArtworkID: artwork.Slug,
		Title:     artwork.Title,
		Price:     artwork.PriceAmount,
		Image:     artwork.PrimaryImage(),
		Size:      req.Size,
		Format:    req.Format,
	}
	if err := store.AddItem(input); err != nil {
		response.BadRequest(c, "无效的购物车项")
		return
	}
	response.Success(c, cartResponse(store))
}

// UpdateCartItem 设置某作品数量（<=0 即移除）
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	store.SetItemQuantity(req.ArtworkID, req.Quantity)
	response.Success(c, cartResponse(store))
}

// RemoveCartItem 移除某作品的所有变体
func (h *Handler) RemoveCartItem(c *gin.Context) {
	artworkID := c.Param("artwork_id")
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	store.RemoveItem(artworkID)
	response.Success(c, cartResponse(store))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	store.ClearCart()
	response.Success(c, cartResponse(store))
}

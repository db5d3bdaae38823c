package public

import (
	"errors"

	"github.com/kalakriti-next/internal/http/response"
	"github.com/kalakriti-next/internal/models"
	"github.com/kalakriti-next/internal/storefront"

	"github.com/gin-gonic/gin"
)

// ListOrders 获取订单历史（新单在前）
func (h *Handler) ListOrders(c *gin.Context) {
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	orders := store.Orders()
	if orders == nil {
		orders = []models.Order{}
	}
	response.Success(c, orders)
}

// GetOrder 按订单号获取订单
func (h *Handler) GetOrder(c *gin.Context) {
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	order, err := store.Order(c.Param("order_no"))
	if err != nil {
		response.NotFound(c, "订单不存在")
		return
	}
	response.Success(c, order)
}

// AdvanceOrderStatusRequest 订单状态推进请求
type AdvanceOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdvanceOrderStatus 按流转表推进订单状态（演示物流推进用）
func (h *Handler) AdvanceOrderStatus(c *gin.Context) {
	var req AdvanceOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	if err := store.AdvanceOrderStatus(c.Param("order_no"), req.Status); err != nil {
		switch {
		case errors.Is(err, storefront.ErrOrderNotFound):
			response.NotFound(c, "订单不存在")
		case errors.Is(err, storefront.ErrStatusTransitionInvalid):
			response.BadRequest(c, "订单状态流转不合法")
		default:
			response.Error(c, response.CodeInternal, "订单状态更新失败")
		}
		return
	}
	order, _ := store.Order(c.Param("order_no"))
	response.Success(c, order)
}

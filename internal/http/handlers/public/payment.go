package public

import (
	"github.com/kalakriti-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// PayResponse 收款结果响应
type PayResponse struct {
	Success bool        `json:"success"`
	Reason  string      `json:"reason,omitempty"`
	Order   interface{} `json:"order,omitempty"`
}

// Pay 发起支付收款并等待结果。
// 请求在网关回调送达前保持阻塞；客户端断开时取消收款。
func (h *Handler) Pay(c *gin.Context) {
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}

	resultCh, err := store.Checkout(c.Request.Context())
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	res := <-resultCh
	if res.Order == nil {
		response.Success(c, PayResponse{Success: false, Reason: res.Reason})
		return
	}
	response.Success(c, PayResponse{Success: true, Order: res.Order})
}

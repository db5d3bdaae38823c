package public

import (
	"errors"

	"github.com/kalakriti-next/internal/http/response"
	"github.com/kalakriti-next/internal/models"
	"github.com/kalakriti-next/internal/storefront"

	"github.com/gin-gonic/gin"
)

// DraftResponse 结算草稿响应
type DraftResponse struct {
	Draft      storefront.Draft   `json:"draft"`
	Charges    storefront.Charges `json:"charges"`
	Processing bool               `json:"processing"`
}

func draftResponse(store *storefront.Store) DraftResponse {
	return DraftResponse{
		Draft:      store.Draft(),
		Charges:    store.Charges(),
		Processing: store.Processing(),
	}
}

// respondCheckoutError 映射结算流程错误
func respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storefront.ErrCartEmpty):
		response.BadRequest(c, "购物车为空")
	case errors.Is(err, storefront.ErrLoginRequired):
		response.Unauthorized(c, "请先登录")
	case errors.Is(err, storefront.ErrShippingIncomplete):
		response.BadRequest(c, "收货信息不完整")
	case errors.Is(err, storefront.ErrPhoneTooShort):
		response.BadRequest(c, "手机号不正确")
	case errors.Is(err, storefront.ErrInvalidCheckoutStep):
		response.BadRequest(c, "结算步骤不正确")
	case errors.Is(err, storefront.ErrPaymentMethodInvalid):
		response.BadRequest(c, "不支持的支付方式")
	case errors.Is(err, storefront.ErrPaymentMethodRequired):
		response.BadRequest(c, "请先选择支付方式")
	case errors.Is(err, storefront.ErrPaymentInProgress):
		response.Error(c, response.CodeConflict, "支付正在进行中")
	case errors.Is(err, storefront.ErrGatewayUnavailable):
		response.Error(c, response.CodeInternal, "支付渠道不可用")
	default:
		response.Error(c, response.CodeInternal, "结算失败")
	}
}

// GetCheckout 获取结算草稿
func (h *Handler) GetCheckout(c *gin.Context) {
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	response.Success(c, draftResponse(store))
}

// BeginCheckout 进入结算流程
func (h *Handler) BeginCheckout(c *gin.Context) {
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	if err := store.BeginCheckout(); err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, draftResponse(store))
}

// SubmitAddress 提交收货信息
func (h *Handler) SubmitAddress(c *gin.Context) {
	var req models.ShippingInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	if err := store.SubmitAddress(req); err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, draftResponse(store))
}

// ProceedToPayment 从摘要进入支付步骤
func (h *Handler) ProceedToPayment(c *gin.Context) {
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	if err := store.ProceedToPayment(); err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, draftResponse(store))
}

// CheckoutBack 回退一个结算步骤
func (h *Handler) CheckoutBack(c *gin.Context) {
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	store.Back()
	response.Success(c, draftResponse(store))
}

// SelectPaymentMethodRequest 选择支付方式请求
type SelectPaymentMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

// SelectPaymentMethod 选择支付方式
func (h *Handler) SelectPaymentMethod(c *gin.Context) {
	var req SelectPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	store, ok := h.storeFor(c)
	if !ok {
		response.BadRequest(c, "缺少归属标识")
		return
	}
	if err := store.SelectPaymentMethod(req.Method); err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, draftResponse(store))
}

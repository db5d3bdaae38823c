package storefront

import (
	"strings"

	"github.com/kalakriti-next/internal/constants"
	"github.com/kalakriti-next/internal/models"
)

// Draft 结算草稿（三步：address → summary → payment）
type Draft struct {
	Step          string              `json:"step"`
	Shipping      models.ShippingInfo `json:"shipping"`
	PaymentMethod string              `json:"payment_method"`
}

// NewDraft 返回初始草稿
func NewDraft() Draft {
	return Draft{Step: constants.CheckoutStepAddress}
}

// NormalizeStep 规范化步骤名，兼容旧值 shipping
func NormalizeStep(step string) string {
	switch step {
	case constants.CheckoutStepAddress, constants.CheckoutStepShipping:
		return constants.CheckoutStepAddress
	case constants.CheckoutStepSummary:
		return constants.CheckoutStepSummary
	case constants.CheckoutStepPayment:
		return constants.CheckoutStepPayment
	default:
		return ""
	}
}

// sanitizeShipping 去除各字段首尾空白
func sanitizeShipping(info models.ShippingInfo) models.ShippingInfo {
	info.FullName = strings.TrimSpace(info.FullName)
	info.Email = strings.TrimSpace(info.Email)
	info.Phone = strings.TrimSpace(info.Phone)
	info.Address = strings.TrimSpace(info.Address)
	info.City = strings.TrimSpace(info.City)
	info.State = strings.TrimSpace(info.State)
	info.Pincode = strings.TrimSpace(info.Pincode)
	return info
}

// validateShipping 校验收货信息：七个字段必填，手机号不少于 10 位
func validateShipping(info models.ShippingInfo) error {
	if info.FullName == "" || info.Email == "" || info.Phone == "" ||
		info.Address == "" || info.City == "" || info.State == "" || info.Pincode == "" {
		return ErrShippingIncomplete
	}
	if len(info.Phone) < 10 {
		return ErrPhoneTooShort
	}
	return nil
}

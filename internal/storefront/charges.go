package storefront

import (
	"github.com/kalakriti-next/internal/config"
	"github.com/kalakriti-next/internal/models"

	"github.com/shopspring/decimal"
)

// ChargeRules 结算费用规则
type ChargeRules struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultChargeRules 默认费用规则（满 5000 免运费，运费 500，税率 18%）
func DefaultChargeRules() ChargeRules {
	return ChargeRules{
		FreeShippingThreshold: decimal.NewFromInt(5000),
		ShippingFee:           decimal.NewFromInt(500),
		TaxRate:               decimal.NewFromFloat(0.18),
	}
}

// ChargeRulesFromConfig 从配置构建费用规则
func ChargeRulesFromConfig(cfg config.CheckoutConfig) ChargeRules {
	rules := DefaultChargeRules()
	if cfg.FreeShippingThreshold > 0 {
		rules.FreeShippingThreshold = decimal.NewFromFloat(cfg.FreeShippingThreshold)
	}
	if cfg.ShippingFee >= 0 {
		rules.ShippingFee = decimal.NewFromFloat(cfg.ShippingFee)
	}
	if cfg.TaxRate >= 0 {
		rules.TaxRate = decimal.NewFromFloat(cfg.TaxRate)
	}
	return rules
}

// Charges 一次结算的费用拆分
type Charges struct {
	Subtotal models.Money `json:"subtotal"`
	Shipping models.Money `json:"shipping"`
	Tax      models.Money `json:"tax"`
	Total    models.Money `json:"total"`
}

// ComputeCharges 计算结算费用
// 纯函数：同一小计与规则任何时刻的结果一致，费用从不落盘、每步现算。
// 小计达到免运费门槛（>=）即免运费。
func ComputeCharges(subtotal decimal.Decimal, rules ChargeRules) Charges {
	shipping := rules.ShippingFee
	if subtotal.GreaterThanOrEqual(rules.FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(rules.TaxRate).Round(2)
	total := subtotal.Add(shipping).Add(tax)
	return Charges{
		Subtotal: models.NewMoneyFromDecimal(subtotal),
		Shipping: models.NewMoneyFromDecimal(shipping),
		Tax:      models.NewMoneyFromDecimal(tax),
		Total:    models.NewMoneyFromDecimal(total),
	}
}

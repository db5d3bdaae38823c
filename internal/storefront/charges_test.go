package storefront

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeChargesShippingBoundary(t *testing.T) {
	rules := DefaultChargeRules()

	below := ComputeCharges(decimal.NewFromInt(4999), rules)
	if below.Shipping.String() != "500.00" {
		t.Fatalf("低于门槛应收运费 500，got %s", below.Shipping.String())
	}

	at := ComputeCharges(decimal.NewFromInt(5000), rules)
	if at.Shipping.String() != "0.00" {
		t.Fatalf("达到门槛应免运费，got %s", at.Shipping.String())
	}
}

func TestComputeChargesExample(t *testing.T) {
	rules := DefaultChargeRules()
	got := ComputeCharges(decimal.NewFromInt(2000), rules)

	if got.Subtotal.String() != "2000.00" {
		t.Fatalf("小计错误: %s", got.Subtotal.String())
	}
	if got.Shipping.String() != "500.00" {
		t.Fatalf("运费错误: %s", got.Shipping.String())
	}
	if got.Tax.String() != "360.00" {
		t.Fatalf("税额错误: %s", got.Tax.String())
	}
	if got.Total.String() != "2860.00" {
		t.Fatalf("总额错误: %s", got.Total.String())
	}
}

func TestComputeChargesIdempotent(t *testing.T) {
	rules := DefaultChargeRules()
	subtotal := decimal.NewFromFloat(1234.56)

	first := ComputeCharges(subtotal, rules)
	second := ComputeCharges(subtotal, rules)
	if first.Total.String() != second.Total.String() {
		t.Fatalf("同一小计费用应一致: %s vs %s", first.Total.String(), second.Total.String())
	}
}

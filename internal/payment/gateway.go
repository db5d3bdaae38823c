// Package payment 定义支付网关的外部协作契约。
//
// 网关接收最小货币单位的金额与一组展示身份（姓名/邮箱/联系电话），
// 通过成功回调返回不透明支付引用，或通过失败回调返回可读原因。
// SDK 加载失败、配置缺失与用户取消对上层是等价的失败结果。
package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Identity 付款人展示身份
type Identity struct {
	Name    string
	Email   string
	Contact string
}

// Request 支付请求
type Request struct {
	OrderRef    string   // 业务侧引用（结算会话标识）
	AmountMinor int64    // 最小货币单位金额（INR 即 paise）
	Currency    string   // 币种
	Description string   // 展示描述
	Identity    Identity // 付款人身份
}

// Callbacks 支付结果回调
// OnSuccess 携带网关返回的不透明支付引用；OnFailure 携带可读失败原因。
// 每次 Collect 恰好触发其中一个，且只触发一次。
type Callbacks struct {
	OnSuccess func(paymentRef string)
	OnFailure func(reason string)
}

// Gateway 支付网关接口
// Collect 立即返回，结果经回调异步送达。
type Gateway interface {
	Name() string
	Collect(ctx context.Context, req Request, cb Callbacks)
}

// MinorUnits 将金额换算为最小货币单位（INR 即 paise）
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

package cod

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kalakriti-next/internal/logger"
	"github.com/kalakriti-next/internal/payment"

	"github.com/google/uuid"
)

const defaultDelay = 1500 * time.Millisecond

// ReasonCancelled 调用方取消时的统一失败原因
const ReasonCancelled = "payment cancelled"

// Gateway 货到付款网关（绕过在线网关的人工路径）
// 固定延迟后无条件成功；唯一的失败出口是调用方取消。
type Gateway struct {
	delay time.Duration
}

// New 创建货到付款网关
func New(delay time.Duration) *Gateway {
	if delay <= 0 {
		delay = defaultDelay
	}
	return &Gateway{delay: delay}
}

// Name 网关标识
func (g *Gateway) Name() string {
	return "cod"
}

// Collect 模拟确认收款
func (g *Gateway) Collect(ctx context.Context, req payment.Request, cb payment.Callbacks) {
	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			logger.Warnw("cod_collect_cancelled", "order_ref", req.OrderRef)
			if cb.OnFailure != nil {
				cb.OnFailure(ReasonCancelled)
			}
		case <-timer.C:
			ref := newReference()
			logger.Infow("cod_collect_confirmed", "order_ref", req.OrderRef, "payment_ref", ref)
			if cb.OnSuccess != nil {
				cb.OnSuccess(ref)
			}
		}
	}()
}

func newReference() string {
	compact := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("COD-%s", strings.ToUpper(compact[:10]))
}

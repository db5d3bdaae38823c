package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kalakriti-next/internal/logger"
	"github.com/kalakriti-next/internal/payment"
)

var (
	ErrConfigInvalid   = errors.New("razorpay config invalid")
	ErrRequestFailed   = errors.New("razorpay request failed")
	ErrResponseInvalid = errors.New("razorpay response invalid")
)

const (
	defaultAPIBaseURL = "https://api.razorpay.com"
	defaultTimeout    = 12 * time.Second

	// ReasonNotConfigured 未配置 key 时的统一失败原因
	ReasonNotConfigured = "razorpay not configured"
	// ReasonCancelled 调用方取消时的统一失败原因
	ReasonCancelled = "payment cancelled"
)

// Config Razorpay 渠道配置
type Config struct {
	KeyID      string
	KeySecret  string
	APIBaseURL string
	Timeout    time.Duration
}

func (c *Config) normalize() {
	c.KeyID = strings.TrimSpace(c.KeyID)
	c.KeySecret = strings.TrimSpace(c.KeySecret)
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Gateway Razorpay 支付网关适配器
type Gateway struct {
	cfg    Config
	client *http.Client
}

// New 创建 Razorpay 网关
func New(cfg Config) *Gateway {
	cfg.normalize()
	return &Gateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name 网关标识
func (g *Gateway) Name() string {
	return "razorpay"
}

// Configured 判断 key 是否就绪
func (g *Gateway) Configured() bool {
	return g.cfg.KeyID != "" && g.cfg.KeySecret != ""
}

// Collect 发起一次收款
// key 缺失时立即走失败回调（not configured）；创建网关订单成功即视为
// 收款成功，网关订单号作为不透明支付引用返回。任何非成功结果（请求
// 失败、响应异常、调用方取消）统一走失败回调。
func (g *Gateway) Collect(ctx context.Context, req payment.Request, cb payment.Callbacks) {
	if !g.Configured() {
		if cb.OnFailure != nil {
			cb.OnFailure(ReasonNotConfigured)
		}
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	go func() {
		ref, err := g.createProviderOrder(ctx, req)
		if err != nil {
			reason := fmt.Sprintf("razorpay: %v", err)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				reason = ReasonCancelled
			}
			logger.Warnw("razorpay_collect_failed",
				"order_ref", req.OrderRef,
				"amount_minor", req.AmountMinor,
				"error", err,
			)
			if cb.OnFailure != nil {
				cb.OnFailure(reason)
			}
			return
		}
		logger.Infow("razorpay_collect_succeeded",
			"order_ref", req.OrderRef,
			"payment_ref", ref,
		)
		if cb.OnSuccess != nil {
			cb.OnSuccess(ref)
		}
	}()
}

type providerOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Receipt  string `json:"receipt"`
}

func (g *Gateway) createProviderOrder(ctx context.Context, req payment.Request) (string, error) {
	if req.AmountMinor <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrConfigInvalid)
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "INR"
	}

	body := map[string]interface{}{
		"amount":   req.AmountMinor,
		"currency": currency,
		"receipt":  req.OrderRef,
		"notes": map[string]string{
			"description": req.Description,
			"name":        req.Identity.Name,
			"email":       req.Identity.Email,
			"contact":     req.Identity.Contact,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: marshal order payload", ErrRequestFailed)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.APIBaseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(g.cfg.KeyID, g.cfg.KeySecret)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read body failed", ErrResponseInvalid)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var order providerOrderResponse
	if err := json.Unmarshal(respBody, &order); err != nil {
		return "", fmt.Errorf("%w: decode body failed", ErrResponseInvalid)
	}
	if strings.TrimSpace(order.ID) == "" {
		return "", fmt.Errorf("%w: order id missing", ErrResponseInvalid)
	}
	return order.ID, nil
}

// Package public 前台（访客与用户侧）HTTP 接口。
package public

import "github.com/kalakriti-next/internal/provider"

// Handler 前台接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

package public

import (
	"fmt"
	"strings"

	"github.com/kalakriti-next/internal/storefront"

	"github.com/gin-gonic/gin"
)

// guestOwnerHeader 访客归属标识头
const guestOwnerHeader = "X-Guest-Token"

func getUserID(c *gin.Context) (uint, bool) {
	value, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// ownerKey 解析请求的门店归属者。
// 已登录用户归属到其用户 ID；访客用请求头携带的令牌，购物车在登录前后
// 各自独立。没有任何标识的请求拿不到归属者。
func ownerKey(c *gin.Context) (string, bool) {
	if id, ok := getUserID(c); ok {
		return fmt.Sprintf("user:%d", id), true
	}
	token := strings.TrimSpace(c.GetHeader(guestOwnerHeader))
	if token == "" {
		return "", false
	}
	return "guest:" + token, true
}

// storeFor 返回请求归属者的门店状态，并确保会话身份与登录态一致
func (h *Handler) storeFor(c *gin.Context) (*storefront.Store, bool) {
	owner, ok := ownerKey(c)
	if !ok {
		return nil, false
	}
	store := h.Stores.Get(owner)

	if id, ok := getUserID(c); ok {
		session := store.Session()
		if session == nil || session.UserID != fmt.Sprintf("%d", id) {
			if user, err := h.UserAuthService.GetByID(id); err == nil {
				store.SetSession(storefront.Identity{
					UserID:    fmt.Sprintf("%d", user.ID),
					Name:      user.DisplayName,
					Email:     user.Email,
					Role:      user.Role,
					AvatarURL: user.AvatarURL,
				})
			}
		}
	}
	return store, true
}

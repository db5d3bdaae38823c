package public

import (
	"errors"
	"time"

	"github.com/kalakriti-next/internal/http/response"
	"github.com/kalakriti-next/internal/models"
	"github.com/kalakriti-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserAuthResponse 认证响应
type UserAuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			response.BadRequest(c, "邮箱格式不正确")
		case errors.Is(err, service.ErrPasswordTooShort):
			response.BadRequest(c, "密码长度不足")
		case errors.Is(err, service.ErrEmailExists):
			response.Error(c, response.CodeConflict, "邮箱已注册")
		default:
			response.Error(c, response.CodeInternal, "注册失败")
		}
		return
	}
	response.Success(c, UserAuthResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, "邮箱或密码错误")
		case errors.Is(err, service.ErrUserDisabled):
			response.Unauthorized(c, "账号已停用")
		default:
			response.Error(c, response.CodeInternal, "登录失败")
		}
		return
	}
	response.Success(c, UserAuthResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// UserProfile 获取当前用户信息
func (h *Handler) UserProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}
	user, err := h.UserAuthService.GetByID(uid)
	if err != nil {
		response.NotFound(c, "用户不存在")
		return
	}
	response.Success(c, user)
}

// UserLogout 退出登录（清除门店会话身份）
func (h *Handler) UserLogout(c *gin.Context) {
	if store, ok := h.storeFor(c); ok {
		store.ClearSession()
	}
	response.Success(c, nil)
}

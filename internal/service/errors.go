package service

import "errors"

// 服务层业务错误
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrEmailExists        = errors.New("邮箱已注册")
	ErrInvalidEmail       = errors.New("邮箱格式不正确")
	ErrPasswordTooShort   = errors.New("密码长度不足")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserDisabled       = errors.New("账号已停用")
	ErrInvalidToken       = errors.New("无效的 token")
)

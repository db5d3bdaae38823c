package models

import (
	"strings"

	"github.com/kalakriti-next/internal/constants"
	"github.com/kalakriti-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDemoUser 初始化演示用户账号
func InitDemoUser(email, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "demo@kalakriti.local"
	}
	if password == "" {
		password = "demo1234"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		DisplayName:  "Demo Collector",
		Role:         constants.UserRoleCustomer,
		Status:       "active",
	}
	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "demo1234" {
		logger.Warnw("demo_user_created_with_default_password", "email", user.Email)
	} else {
		logger.Infow("demo_user_created", "email", user.Email)
	}
	return nil
}

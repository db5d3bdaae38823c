package service

import (
	"errors"
	"testing"

	"github.com/kalakriti-next/internal/config"
	"github.com/kalakriti-next/internal/models"
	"github.com/kalakriti-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) *UserAuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate users failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "test-secret-key-0123456789-0123456789"
	cfg.UserJWT.ExpireHours = 1
	return NewUserAuthService(cfg, repository.NewUserRepository(db))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	user, token, _, err := svc.Register("Asha@Example.com", "secret-pass", "Asha Rao")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "asha@example.com" {
		t.Fatalf("email should be normalized, got %s", user.Email)
	}
	if token == "" {
		t.Fatalf("expected token after register")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("ParseUserJWT: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	loggedIn, token2, _, err := svc.Login("asha@example.com", "secret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != user.ID || token2 == "" {
		t.Fatalf("unexpected login result")
	}
	if loggedIn.LastLoginAt == nil {
		t.Fatalf("LastLoginAt should be set after login")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("not-an-email", "secret-pass", ""); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, _, _, err := svc.Register("a@example.com", "short", ""); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}

	if _, _, _, err := svc.Register("a@example.com", "secret-pass", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, _, err := svc.Register("a@example.com", "secret-pass", ""); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("a@example.com", "secret-pass", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, _, err := svc.Login("a@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("ghost@example.com", "secret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestParseUserJWTRejectsTampered(t *testing.T) {
	svc := setupUserAuthServiceTest(t)
	other := setupUserAuthServiceTest(t)
	other.cfg.UserJWT.SecretKey = "another-secret-key-0123456789-012345"

	_, token, _, err := svc.Register("a@example.com", "secret-pass", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := other.ParseUserJWT(token); err == nil {
		t.Fatalf("token signed with another key should be rejected")
	}
}

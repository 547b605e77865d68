package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/showcaseworks/showcase-go/internal/infrastructure/security"
)

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}

	svc := NewAuthService("test-secret", string(hash), time.Hour, testLogger(t))

	t.Run("valid password issues admin token", func(t *testing.T) {
		token, err := svc.Login("correct-horse")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		claims, err := security.ValidateJWT(token, "test-secret")
		if err != nil {
			t.Fatalf("issued token failed validation: %v", err)
		}
		if security.RoleFromClaims(claims) != security.RoleAdmin {
			t.Error("issued token should carry the admin role")
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		if _, err := svc.Login("battery-staple"); err != ErrInvalidCredentials {
			t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unconfigured auth rejects everything", func(t *testing.T) {
		unconfigured := NewAuthService("", "", time.Hour, testLogger(t))
		if _, err := unconfigured.Login("anything"); err != ErrInvalidCredentials {
			t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		token, err := svc.Login("correct-horse")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if _, err := security.ValidateJWT(token, "other-secret"); err == nil {
			t.Error("token should not validate under a different secret")
		}
	})
}

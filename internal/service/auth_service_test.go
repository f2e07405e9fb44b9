package service

import (
	"errors"
	"testing"

	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t, "auth_service_test")
	return NewAuthService(testConfig(), repository.NewAdminRepository(db)), db
}

func createTestAdmin(t *testing.T, db *gorm.DB, username, password string) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	admin := models.Admin{Username: username, PasswordHash: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return &admin
}

func TestAdminLogin(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createTestAdmin(t, db, "ops", "secret123")

	admin, token, expiresAt, err := svc.Login("ops", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("expected a token")
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("last_login_at not stamped")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Username != "ops" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Login("ops", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAdminChangePassword(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	admin := createTestAdmin(t, db, "ops", "secret123")

	if err := svc.ChangePassword(admin.ID, "wrongpass", "another123"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got: %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "secret123", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got: %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "secret123", "another123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, _, err := svc.Login("ops", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got: %v", err)
	}
	refreshed, _, _, err := svc.Login("ops", "another123")
	if err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if refreshed.TokenVersion != admin.TokenVersion+1 {
		t.Fatalf("token version = %d, want %d", refreshed.TokenVersion, admin.TokenVersion+1)
	}
}

func TestParseJWTRejectsForeignToken(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createTestAdmin(t, db, "ops", "secret123")
	_, token, _, err := svc.Login("ops", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	otherCfg := testConfig()
	otherCfg.JWT.SecretKey = "a-completely-different-signing-key-123"
	other := NewAuthService(otherCfg, repository.NewAdminRepository(db))
	if _, err := other.ParseJWT(token); err == nil {
		t.Fatalf("token signed with a different key must fail")
	}
}

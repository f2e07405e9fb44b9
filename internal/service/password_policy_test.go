package service

import (
	"errors"
	"testing"

	"github.com/jemo-market/api/internal/config"
)

func TestValidatePasswordMinLength(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8}
	if err := validatePassword(policy, "short1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for short password, got: %v", err)
	}
	if err := validatePassword(policy, "longenough1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatePasswordDefaultsMinLength(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, "1234567"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected default minimum of 8, got: %v", err)
	}
	if err := validatePassword(config.PasswordPolicyConfig{}, "12345678"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatePasswordCharacterClasses(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}
	cases := []struct {
		password string
		wantErr  bool
	}{
		{"Abcdef1!", false},
		{"abcdef1!", true}, // no upper
		{"ABCDEF1!", true}, // no lower
		{"Abcdefg!", true}, // no digit
		{"Abcdefg1", true}, // no special
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.wantErr && !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("validatePassword(%q) = %v, want ErrWeakPassword", tc.password, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("validatePassword(%q) failed: %v", tc.password, err)
		}
	}
}

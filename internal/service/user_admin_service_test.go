package service

import (
	"errors"
	"testing"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/repository"
)

func TestDisableAndEnableUser(t *testing.T) {
	db := openTestDB(t, "user_admin_service_test")
	svc := NewUserAdminService(repository.NewUserRepository(db))
	user := createCustomer(t, db)

	disabled, err := svc.Disable(user.ID)
	if err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if disabled.Status != constants.UserStatusDisabled {
		t.Fatalf("status = %s, want disabled", disabled.Status)
	}
	// disabling revokes outstanding tokens
	if disabled.TokenVersion != user.TokenVersion+1 || disabled.TokenInvalidBefore == nil {
		t.Fatalf("token revocation missing: %+v", disabled)
	}

	// disabling twice keeps the version stable
	again, err := svc.Disable(user.ID)
	if err != nil {
		t.Fatalf("second disable failed: %v", err)
	}
	if again.TokenVersion != disabled.TokenVersion {
		t.Fatalf("token version moved on a no-op: %d", again.TokenVersion)
	}

	enabled, err := svc.Enable(user.ID)
	if err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	if enabled.Status != constants.UserStatusActive {
		t.Fatalf("status = %s, want active", enabled.Status)
	}

	if _, err := svc.Disable(99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestListUsersFilters(t *testing.T) {
	db := openTestDB(t, "user_admin_list_test")
	svc := NewUserAdminService(repository.NewUserRepository(db))
	createCustomer(t, db)
	vendor := createVendor(t, db, "Addis Ababa")

	_, total, err := svc.List(repository.UserListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}

	users, total, err := svc.List(repository.UserListFilter{Page: 1, PageSize: 20, Role: constants.RoleVendor})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(users) != 1 || users[0].ID != vendor.UserID {
		t.Fatalf("unexpected vendor filter result: total=%d", total)
	}
}

package service

import (
	"errors"
	"testing"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"
)

func setupDisputeTest(t *testing.T) (*orderServiceFixture, *DisputeService, *models.User, *models.Order) {
	t.Helper()
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	p := createProduct(t, f.db, vendor.ID, "100", 5, constants.DeliveryMethodVendorSelf)
	order := placeVendorSelfOrder(t, f, vendor.ID, customer.ID, p.ID)
	svc := NewDisputeService(repository.NewDisputeRepository(f.db), f.orderRepo)
	return f, svc, customer, order
}

func TestOpenDispute(t *testing.T) {
	f, svc, customer, order := setupDisputeTest(t)

	dispute, err := svc.Open(customer.ID, order.ID, "item damaged", "box arrived crushed")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if dispute.Status != constants.DisputeStatusOpen || dispute.OrderID != order.ID {
		t.Fatalf("unexpected dispute: %+v", dispute)
	}

	// one open dispute per order
	if _, err := svc.Open(customer.ID, order.ID, "still damaged", ""); !errors.Is(err, ErrDuplicateDispute) {
		t.Fatalf("expected ErrDuplicateDispute, got: %v", err)
	}

	// subject is mandatory
	if _, err := svc.Open(customer.ID, order.ID, "  ", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}

	// only the order's customer can file
	stranger := createCustomer(t, f.db)
	if _, err := svc.Open(stranger.ID, order.ID, "not mine", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestResolveDispute(t *testing.T) {
	_, svc, customer, order := setupDisputeTest(t)
	dispute, err := svc.Open(customer.ID, order.ID, "item damaged", "")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if _, err := svc.Resolve(1, dispute.ID, "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("resolution note is mandatory, got: %v", err)
	}

	resolved, err := svc.Resolve(1, dispute.ID, "refund issued")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Status != constants.DisputeStatusResolved || resolved.Resolution != "refund issued" {
		t.Fatalf("unexpected dispute: %+v", resolved)
	}
	if resolved.ResolvedBy == nil || *resolved.ResolvedBy != 1 || resolved.ResolvedAt == nil {
		t.Fatalf("review metadata missing: %+v", resolved)
	}

	// closed disputes stay closed
	if _, err := svc.Reject(1, dispute.ID, "changed my mind"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got: %v", err)
	}
}

func TestRejectDispute(t *testing.T) {
	_, svc, customer, order := setupDisputeTest(t)
	dispute, err := svc.Open(customer.ID, order.ID, "late delivery", "")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	rejected, err := svc.Reject(2, dispute.ID, "delivered inside the promised window")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != constants.DisputeStatusRejected {
		t.Fatalf("status = %s, want rejected", rejected.Status)
	}

	// a closed dispute frees the order for a new one
	again, err := svc.Open(customer.ID, order.ID, "second attempt", "")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if again.ID == dispute.ID {
		t.Fatalf("expected a fresh dispute")
	}
}

func TestDisputeCustomerScoping(t *testing.T) {
	f, svc, customer, order := setupDisputeTest(t)
	dispute, err := svc.Open(customer.ID, order.ID, "item damaged", "")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if _, err := svc.GetForCustomer(customer.ID, dispute.ID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	stranger := createCustomer(t, f.db)
	if _, err := svc.GetForCustomer(stranger.ID, dispute.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	disputes, total, err := svc.ListForCustomer(customer.ID, "", 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(disputes) != 1 {
		t.Fatalf("expected one dispute, got %d", total)
	}
}

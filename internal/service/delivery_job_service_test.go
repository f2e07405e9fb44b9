package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"

	"gorm.io/gorm"
)

func createAgency(t *testing.T, db *gorm.DB, cities ...string) *models.AgencyProfile {
	t.Helper()
	user := models.User{
		Phone:        fmt.Sprintf("+2519%08d", time.Now().UnixNano()%100000000),
		PasswordHash: "hash",
		Role:         constants.RoleAgency,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create agency user failed: %v", err)
	}
	profile := models.AgencyProfile{
		UserID:         user.ID,
		Name:           "Test Agency",
		CoverageCities: cities,
		KycStatus:      constants.KycStatusApproved,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create agency profile failed: %v", err)
	}
	return &profile
}

func placeRiderOrder(t *testing.T, f *orderServiceFixture, vendorID, customerID uint) (*models.Order, *models.DeliveryJob) {
	t.Helper()
	p := createProduct(t, f.db, vendorID, "100", 10, constants.DeliveryMethodJemoRider)
	order, err := f.orders.CreateOrder(CreateOrderInput{
		CustomerID:      customerID,
		Items:           []CreateOrderItem{{ProductID: p.ID, Quantity: 1}},
		DestinationCity: "Hawassa",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := f.orders.ConfirmOrder(vendorID, order.ID); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	job, err := f.jobRepo.GetByOrderID(order.ID)
	if err != nil || job == nil {
		t.Fatalf("job lookup failed: %v %v", job, err)
	}
	return order, job
}

func TestListAvailableFiltersByCoverage(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	_, job := placeRiderOrder(t, f, vendor.ID, customer.ID)

	covering := createAgency(t, f.db, "Addis Ababa", "Adama")
	elsewhere := createAgency(t, f.db, "Hawassa")
	uncovered := createAgency(t, f.db)

	jobs, total, err := f.jobs.ListAvailable(covering.ID, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(jobs) != 1 || jobs[0].ID != job.ID {
		t.Fatalf("expected the open job, got total=%d jobs=%v", total, jobs)
	}

	// pickup city decides visibility, not the dropoff
	jobs, total, err = f.jobs.ListAvailable(elsewhere.ID, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 || len(jobs) != 0 {
		t.Fatalf("agency outside the pickup city must see nothing, got %v", jobs)
	}

	jobs, total, err = f.jobs.ListAvailable(uncovered.ID, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 || len(jobs) != 0 {
		t.Fatalf("agency with no coverage must see nothing, got %v", jobs)
	}
}

func TestAcceptJobFirstWins(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	order, job := placeRiderOrder(t, f, vendor.ID, customer.ID)

	first := createAgency(t, f.db, "Addis Ababa")
	second := createAgency(t, f.db, "Addis Ababa")

	accepted, err := f.jobs.AcceptJob(first.ID, job.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != constants.DeliveryJobStatusAccepted || accepted.AgencyID == nil || *accepted.AgencyID != first.ID {
		t.Fatalf("unexpected job: %+v", accepted)
	}
	if accepted.AcceptedAt == nil {
		t.Fatalf("accepted_at not stamped")
	}

	// accepting moves the order into transit
	reloaded, err := f.orders.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusInTransit {
		t.Fatalf("order status = %s, want in_transit", reloaded.Status)
	}

	if _, err := f.jobs.AcceptJob(second.ID, job.ID); !errors.Is(err, ErrJobAlreadyTaken) {
		t.Fatalf("expected ErrJobAlreadyTaken, got: %v", err)
	}
}

func TestAcceptJobConcurrentSingleWinner(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	order, job := placeRiderOrder(t, f, vendor.ID, customer.ID)

	const contenders = 4
	agencies := make([]*models.AgencyProfile, contenders)
	for i := range agencies {
		agencies[i] = createAgency(t, f.db, "Addis Ababa")
	}

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := range agencies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.jobs.AcceptJob(agencies[i].ID, job.ID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, ErrJobAlreadyTaken):
		default:
			t.Fatalf("unexpected accept error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("exactly one contender may take the job, got %d", winners)
	}

	taken, err := f.jobRepo.GetByID(job.ID)
	if err != nil || taken == nil {
		t.Fatalf("job lookup failed: %v", err)
	}
	if taken.Status != constants.DeliveryJobStatusAccepted || taken.AgencyID == nil {
		t.Fatalf("unexpected job state: %+v", taken)
	}

	reloaded, err := f.orders.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusInTransit {
		t.Fatalf("order status = %s, want in_transit", reloaded.Status)
	}
}

func TestAcceptJobGuards(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	_, job := placeRiderOrder(t, f, vendor.ID, customer.ID)

	outside := createAgency(t, f.db, "Hawassa")
	if _, err := f.jobs.AcceptJob(outside.ID, job.ID); !errors.Is(err, ErrOutsideCoverage) {
		t.Fatalf("expected ErrOutsideCoverage, got: %v", err)
	}

	unverified := createAgency(t, f.db, "Addis Ababa")
	if err := f.db.Model(&models.AgencyProfile{}).Where("id = ?", unverified.ID).
		Update("kyc_status", constants.KycStatusPending).Error; err != nil {
		t.Fatalf("update agency failed: %v", err)
	}
	if _, err := f.jobs.AcceptJob(unverified.ID, job.ID); !errors.Is(err, ErrKycNotApproved) {
		t.Fatalf("expected ErrKycNotApproved, got: %v", err)
	}

	covered := createAgency(t, f.db, "Addis Ababa")
	if _, err := f.jobs.AcceptJob(covered.ID, 99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestMarkJobDeliveredSettlesCOD(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	order, job := placeRiderOrder(t, f, vendor.ID, customer.ID)
	agency := createAgency(t, f.db, "Addis Ababa")

	if _, err := f.jobs.AcceptJob(agency.ID, job.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	delivered, err := f.jobs.MarkDelivered(agency.ID, job.ID)
	if err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if delivered.Status != constants.DeliveryJobStatusDelivered || delivered.DeliveredAt == nil {
		t.Fatalf("unexpected job: %+v", delivered)
	}

	reloaded, err := f.orders.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusDelivered {
		t.Fatalf("order status = %s, want delivered", reloaded.Status)
	}
	if reloaded.Payment == nil || reloaded.Payment.Status != constants.PaymentStatusSuccess {
		t.Fatalf("COD payment must settle at handover, got: %+v", reloaded.Payment)
	}

	// delivering twice is rejected
	if _, err := f.jobs.MarkDelivered(agency.ID, job.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got: %v", err)
	}
}

func TestMarkJobDeliveredForeignAgency(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	_, job := placeRiderOrder(t, f, vendor.ID, customer.ID)
	owner := createAgency(t, f.db, "Addis Ababa")
	intruder := createAgency(t, f.db, "Addis Ababa")

	if _, err := f.jobs.AcceptJob(owner.ID, job.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := f.jobs.MarkDelivered(intruder.ID, job.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got: %v", err)
	}
}

func TestGetForAgencyScoping(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	_, job := placeRiderOrder(t, f, vendor.ID, customer.ID)
	covering := createAgency(t, f.db, "Addis Ababa")
	outside := createAgency(t, f.db, "Hawassa")

	// open job visible to covering agencies only
	if _, err := f.jobs.GetForAgency(covering.ID, job.ID); err != nil {
		t.Fatalf("covering agency lookup failed: %v", err)
	}
	if _, err := f.jobs.GetForAgency(outside.ID, job.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	// after acceptance only the owner sees it
	if _, err := f.jobs.AcceptJob(covering.ID, job.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	other := createAgency(t, f.db, "Addis Ababa")
	if _, err := f.jobs.GetForAgency(other.ID, job.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got: %v", err)
	}
	if _, err := f.jobs.GetForAgency(covering.ID, job.ID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
}

func TestListHistory(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	_, job := placeRiderOrder(t, f, vendor.ID, customer.ID)
	agency := createAgency(t, f.db, "Addis Ababa")

	if _, err := f.jobs.AcceptJob(agency.ID, job.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	jobs, total, err := f.jobs.ListHistory(agency.ID, "", 1, 20)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if total != 1 || len(jobs) != 1 {
		t.Fatalf("expected one job in history, got %d", total)
	}

	jobs, total, err = f.jobs.ListHistory(agency.ID, constants.DeliveryJobStatusDelivered, 1, 20)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if total != 0 || len(jobs) != 0 {
		t.Fatalf("delivered filter must be empty, got %d", total)
	}
}

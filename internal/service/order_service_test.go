package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jemo-market/api/internal/config"
	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/queue"
	"github.com/jemo-market/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.VendorProfile{},
		&models.AgencyProfile{},
		&models.Category{},
		&models.Product{},
		&models.Favorite{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.DeliveryJob{},
		&models.WalletTransaction{},
		&models.Payout{},
		&models.KycSubmission{},
		&models.Dispute{},
		&models.Conversation{},
		&models.Message{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Delivery: config.DeliveryConfig{
			SameCityFee:  "80",
			OtherCityFee: "200",
		},
		Wallet: config.WalletConfig{
			MinWithdrawal: "100",
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8},
		},
		JWT: config.JWTConfig{
			SecretKey:   "admin-service-test-secret-0123456789",
			ExpireHours: 24,
		},
		UserJWT: config.JWTConfig{
			SecretKey:   "order-service-test-secret-0123456789",
			ExpireHours: 24,
		},
	}
}

type orderServiceFixture struct {
	db        *gorm.DB
	orders    *OrderService
	wallet    *WalletService
	jobs      *DeliveryJobService
	payments  *PaymentService
	jobRepo   repository.DeliveryJobRepository
	orderRepo repository.OrderRepository
}

func setupOrderServiceTest(t *testing.T) *orderServiceFixture {
	t.Helper()
	db := openTestDB(t, "order_service_test")
	cfg := testConfig()

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	jobRepo := repository.NewDeliveryJobRepository(db)
	vendorRepo := repository.NewVendorProfileRepository(db)
	agencyRepo := repository.NewAgencyProfileRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	settings := NewSettingService(settingRepo, cfg)
	wallet := NewWalletService(walletRepo, payoutRepo, vendorRepo, settings)
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	orders := NewOrderService(orderRepo, productRepo, paymentRepo, jobRepo, vendorRepo, wallet, settings, queueClient, 0)
	jobs := NewDeliveryJobService(jobRepo, agencyRepo, orders)
	payments := NewPaymentService(paymentRepo, orderRepo)

	return &orderServiceFixture{
		db:        db,
		orders:    orders,
		wallet:    wallet,
		jobs:      jobs,
		payments:  payments,
		jobRepo:   jobRepo,
		orderRepo: orderRepo,
	}
}

func createVendor(t *testing.T, db *gorm.DB, city string) *models.VendorProfile {
	t.Helper()
	user := models.User{
		Phone:        fmt.Sprintf("+2519%08d", time.Now().UnixNano()%100000000),
		PasswordHash: "hash",
		Role:         constants.RoleVendor,
		City:         city,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create vendor user failed: %v", err)
	}
	profile := models.VendorProfile{
		UserID:    user.ID,
		ShopName:  "Test Shop",
		City:      city,
		KycStatus: constants.KycStatusApproved,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create vendor profile failed: %v", err)
	}
	return &profile
}

func createCustomer(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{
		Phone:        fmt.Sprintf("+2517%08d", time.Now().UnixNano()%100000000),
		PasswordHash: "hash",
		Role:         constants.RoleCustomer,
		City:         "Addis Ababa",
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return &user
}

func createProduct(t *testing.T, db *gorm.DB, vendorID uint, price string, stock int, deliveryType string) *models.Product {
	t.Helper()
	product := models.Product{
		VendorID:     vendorID,
		Title:        fmt.Sprintf("Product %d", time.Now().UnixNano()),
		Price:        money(t, price),
		Stock:        stock,
		Active:       true,
		DeliveryType: deliveryType,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func TestCreateOrderRiderDelivery(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	p1 := createProduct(t, f.db, vendor.ID, "100", 5, constants.DeliveryMethodJemoRider)
	p2 := createProduct(t, f.db, vendor.ID, "40", 10, constants.DeliveryMethodJemoRider)

	order, err := f.orders.CreateOrder(CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []CreateOrderItem{{ProductID: p1.ID, Quantity: 2}, {ProductID: p2.ID, Quantity: 1}},
		DestinationCity: "Hawassa",
		Address:         "Piassa, building 4",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("unexpected status: %s", order.Status)
	}
	if order.ItemsTotal.String() != "240.00" {
		t.Fatalf("items total = %s, want 240.00", order.ItemsTotal.String())
	}
	if order.DeliveryFee.String() != "200.00" {
		t.Fatalf("delivery fee = %s, want 200.00", order.DeliveryFee.String())
	}
	if order.Total.String() != "440.00" {
		t.Fatalf("total = %s, want 440.00", order.Total.String())
	}
	if order.PaymentMethod != constants.PaymentMethodCOD {
		t.Fatalf("payment method defaulted to %s, want cod", order.PaymentMethod)
	}
	if order.DeliveryMethod != constants.DeliveryMethodJemoRider {
		t.Fatalf("delivery method = %s", order.DeliveryMethod)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	if order.Payment == nil || order.Payment.Status != constants.PaymentStatusInitiated {
		t.Fatalf("unexpected payment: %+v", order.Payment)
	}

	// stock moved
	var reloaded models.Product
	if err := f.db.First(&reloaded, p1.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 3 {
		t.Fatalf("stock = %d, want 3", reloaded.Stock)
	}

	// delivery job opened with the vendor's city as pickup
	job, err := f.jobRepo.GetByOrderID(order.ID)
	if err != nil || job == nil {
		t.Fatalf("expected delivery job, got: %v %v", job, err)
	}
	if job.Status != constants.DeliveryJobStatusOpen || job.PickupCity != "Addis Ababa" || job.DropoffCity != "Hawassa" {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestCreateOrderCarriesMaxFeeAcrossItems(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)

	cheap := createProduct(t, f.db, vendor.ID, "10", 5, constants.DeliveryMethodVendorSelf)
	cheap.FlatDeliveryFee = moneyPtr(t, "20")
	if err := f.db.Save(cheap).Error; err != nil {
		t.Fatalf("save product failed: %v", err)
	}
	dear := createProduct(t, f.db, vendor.ID, "10", 5, constants.DeliveryMethodVendorSelf)
	dear.FlatDeliveryFee = moneyPtr(t, "90")
	if err := f.db.Save(dear).Error; err != nil {
		t.Fatalf("save product failed: %v", err)
	}

	order, err := f.orders.CreateOrder(CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []CreateOrderItem{{ProductID: cheap.ID, Quantity: 1}, {ProductID: dear.ID, Quantity: 1}},
		DestinationCity: "Addis Ababa",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.DeliveryFee.String() != "90.00" {
		t.Fatalf("delivery fee = %s, want the most expensive item fee 90.00", order.DeliveryFee.String())
	}
	if order.DeliveryMethod != constants.DeliveryMethodVendorSelf {
		t.Fatalf("delivery method = %s", order.DeliveryMethod)
	}
	// no rider job for vendor self delivery
	job, err := f.jobRepo.GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("job lookup failed: %v", err)
	}
	if job != nil {
		t.Fatalf("unexpected delivery job for vendor self order")
	}
}

func TestCreateOrderValidation(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendorA := createVendor(t, f.db, "Addis Ababa")
	vendorB := createVendor(t, f.db, "Hawassa")
	customer := createCustomer(t, f.db)
	pa := createProduct(t, f.db, vendorA.ID, "10", 5, constants.DeliveryMethodJemoRider)
	pb := createProduct(t, f.db, vendorB.ID, "10", 5, constants.DeliveryMethodJemoRider)

	cases := []struct {
		name  string
		input CreateOrderInput
		want  error
	}{
		{
			name:  "empty cart",
			input: CreateOrderInput{CustomerID: customer.ID, DestinationCity: "Addis Ababa"},
			want:  ErrValidation,
		},
		{
			name: "missing destination",
			input: CreateOrderInput{
				CustomerID: customer.ID,
				Items:      []CreateOrderItem{{ProductID: pa.ID, Quantity: 1}},
			},
			want: ErrValidation,
		},
		{
			name: "mixed vendors",
			input: CreateOrderInput{
				CustomerID:      customer.ID,
				Items:           []CreateOrderItem{{ProductID: pa.ID, Quantity: 1}, {ProductID: pb.ID, Quantity: 1}},
				DestinationCity: "Addis Ababa",
			},
			want: ErrValidation,
		},
		{
			name: "duplicate line",
			input: CreateOrderInput{
				CustomerID:      customer.ID,
				Items:           []CreateOrderItem{{ProductID: pa.ID, Quantity: 1}, {ProductID: pa.ID, Quantity: 2}},
				DestinationCity: "Addis Ababa",
			},
			want: ErrValidation,
		},
		{
			name: "unknown product",
			input: CreateOrderInput{
				CustomerID:      customer.ID,
				Items:           []CreateOrderItem{{ProductID: 99999, Quantity: 1}},
				DestinationCity: "Addis Ababa",
			},
			want: ErrNotFound,
		},
		{
			name: "insufficient stock",
			input: CreateOrderInput{
				CustomerID:      customer.ID,
				Items:           []CreateOrderItem{{ProductID: pa.ID, Quantity: 50}},
				DestinationCity: "Addis Ababa",
			},
			want: ErrInsufficientStock,
		},
		{
			name: "unsupported payment method",
			input: CreateOrderInput{
				CustomerID:      customer.ID,
				Items:           []CreateOrderItem{{ProductID: pa.ID, Quantity: 1}},
				DestinationCity: "Addis Ababa",
				PaymentMethod:   "crypto",
			},
			want: ErrValidation,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.orders.CreateOrder(tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("CreateOrder() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	p := createProduct(t, f.db, vendor.ID, "10", 5, constants.DeliveryMethodJemoRider)
	if err := f.db.Model(&models.Product{}).Where("id = ?", p.ID).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	_, err := f.orders.CreateOrder(CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []CreateOrderItem{{ProductID: p.ID, Quantity: 1}},
		DestinationCity: "Addis Ababa",
	})
	if !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got: %v", err)
	}
}

func TestCreateOrderUnverifiedVendor(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	if err := f.db.Model(&models.VendorProfile{}).Where("id = ?", vendor.ID).
		Update("kyc_status", constants.KycStatusPending).Error; err != nil {
		t.Fatalf("update vendor failed: %v", err)
	}
	customer := createCustomer(t, f.db)
	p := createProduct(t, f.db, vendor.ID, "10", 5, constants.DeliveryMethodJemoRider)

	_, err := f.orders.CreateOrder(CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []CreateOrderItem{{ProductID: p.ID, Quantity: 1}},
		DestinationCity: "Addis Ababa",
	})
	if !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got: %v", err)
	}
}

func TestCreateOrderDeliveryUnavailable(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	p := createProduct(t, f.db, vendor.ID, "10", 5, constants.DeliveryMethodVendorSelf)
	p.SameCityFee = moneyPtr(t, "30")
	if err := f.db.Save(p).Error; err != nil {
		t.Fatalf("save product failed: %v", err)
	}

	_, err := f.orders.CreateOrder(CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []CreateOrderItem{{ProductID: p.ID, Quantity: 1}},
		DestinationCity: "Hawassa",
	})
	if !errors.Is(err, ErrDeliveryUnavailable) {
		t.Fatalf("expected ErrDeliveryUnavailable, got: %v", err)
	}
}

func placeVendorSelfOrder(t *testing.T, f *orderServiceFixture, vendorID, customerID, productID uint) *models.Order {
	t.Helper()
	order, err := f.orders.CreateOrder(CreateOrderInput{
		CustomerID:      customerID,
		Items:           []CreateOrderItem{{ProductID: productID, Quantity: 1}},
		DestinationCity: "Addis Ababa",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderLifecycleVendorSelf(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	p := createProduct(t, f.db, vendor.ID, "100", 5, constants.DeliveryMethodVendorSelf)
	order := placeVendorSelfOrder(t, f, vendor.ID, customer.ID, p.ID)

	// confirm credits the vendor pending
	confirmed, err := f.orders.ConfirmOrder(vendor.ID, order.ID)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != constants.OrderStatusConfirmed || confirmed.ConfirmedAt == nil {
		t.Fatalf("unexpected order after confirm: %+v", confirmed)
	}
	balance, err := f.wallet.Balances(vendor.ID)
	if err != nil {
		t.Fatalf("balances failed: %v", err)
	}
	if balance.Pending.String() != "100.00" || balance.Available.String() != "0.00" {
		t.Fatalf("unexpected balances after confirm: %+v", balance)
	}

	// double confirm is rejected
	if _, err := f.orders.ConfirmOrder(vendor.ID, order.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second confirm, got: %v", err)
	}

	if _, err := f.orders.MarkInTransit(vendor.ID, order.ID); err != nil {
		t.Fatalf("mark in transit failed: %v", err)
	}

	// cancellation window closed once in transit
	if _, err := f.orders.CancelOrder(order.ID, constants.CancelActorCustomer, "changed my mind"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden cancelling in transit, got: %v", err)
	}

	delivered, err := f.orders.MarkDelivered(vendor.ID, order.ID)
	if err != nil {
		t.Fatalf("mark delivered failed: %v", err)
	}
	if delivered.Status != constants.OrderStatusDelivered || delivered.DeliveredAt == nil {
		t.Fatalf("unexpected order after deliver: %+v", delivered)
	}
	// cash on delivery settles at handover
	if delivered.Payment == nil || delivered.Payment.Status != constants.PaymentStatusSuccess {
		t.Fatalf("expected settled COD payment, got: %+v", delivered.Payment)
	}

	completed, err := f.orders.CompleteOrder(order.ID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != constants.OrderStatusCompleted {
		t.Fatalf("unexpected status: %s", completed.Status)
	}
	balance, err = f.wallet.Balances(vendor.ID)
	if err != nil {
		t.Fatalf("balances failed: %v", err)
	}
	if balance.Available.String() != "100.00" || balance.Pending.String() != "0.00" {
		t.Fatalf("unexpected balances after complete: %+v", balance)
	}
}

func TestMarkInTransitForbiddenForRiderOrders(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	p := createProduct(t, f.db, vendor.ID, "100", 5, constants.DeliveryMethodJemoRider)
	order := placeVendorSelfOrder(t, f, vendor.ID, customer.ID, p.ID)

	if _, err := f.orders.ConfirmOrder(vendor.ID, order.ID); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := f.orders.MarkInTransit(vendor.ID, order.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got: %v", err)
	}
	if _, err := f.orders.MarkDelivered(vendor.ID, order.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got: %v", err)
	}
}

func TestCompleteRequiresDelivered(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	p := createProduct(t, f.db, vendor.ID, "100", 5, constants.DeliveryMethodVendorSelf)
	order := placeVendorSelfOrder(t, f, vendor.ID, customer.ID, p.ID)

	if _, err := f.orders.CompleteOrder(order.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got: %v", err)
	}
}

func TestCancelOrderRestoresEverything(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	p := createProduct(t, f.db, vendor.ID, "100", 5, constants.DeliveryMethodJemoRider)

	order, err := f.orders.CreateOrder(CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []CreateOrderItem{{ProductID: p.ID, Quantity: 2}},
		DestinationCity: "Addis Ababa",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := f.orders.ConfirmOrder(vendor.ID, order.ID); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	cancelled, err := f.orders.CancelOrder(order.ID, constants.CancelActorVendor, "out of stock")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled || cancelled.CancelledBy != constants.CancelActorVendor {
		t.Fatalf("unexpected order after cancel: %+v", cancelled)
	}
	if cancelled.CancelReason != "out of stock" || cancelled.CancelledAt == nil {
		t.Fatalf("cancel metadata missing: %+v", cancelled)
	}

	// stock restored
	var reloaded models.Product
	if err := f.db.First(&reloaded, p.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 5 {
		t.Fatalf("stock = %d, want 5", reloaded.Stock)
	}

	// pending credit reversed
	balance, err := f.wallet.Balances(vendor.ID)
	if err != nil {
		t.Fatalf("balances failed: %v", err)
	}
	if !balance.Pending.IsZero() || !balance.Available.IsZero() {
		t.Fatalf("expected zero balances after cancel: %+v", balance)
	}

	// job closed, payment failed
	job, err := f.jobRepo.GetByOrderID(order.ID)
	if err != nil || job == nil {
		t.Fatalf("job lookup failed: %v %v", job, err)
	}
	if job.Status != constants.DeliveryJobStatusCancelled {
		t.Fatalf("job status = %s, want cancelled", job.Status)
	}
	if cancelled.Payment == nil || cancelled.Payment.Status != constants.PaymentStatusFailed {
		t.Fatalf("unexpected payment after cancel: %+v", cancelled.Payment)
	}
}

func TestCancelOrderRefundsCollectedPayment(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	p := createProduct(t, f.db, vendor.ID, "100", 5, constants.DeliveryMethodVendorSelf)

	order, err := f.orders.CreateOrder(CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []CreateOrderItem{{ProductID: p.ID, Quantity: 1}},
		DestinationCity: "Addis Ababa",
		PaymentMethod:   constants.PaymentMethodOnline,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := f.payments.Confirm(order.ID, "TXN-900", "telebirr receipt"); err != nil {
		t.Fatalf("confirm payment failed: %v", err)
	}
	if _, err := f.orders.ConfirmOrder(vendor.ID, order.ID); err != nil {
		t.Fatalf("confirm order failed: %v", err)
	}

	cancelled, err := f.orders.CancelOrder(order.ID, constants.CancelActorAdmin, "vendor unreachable")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Payment == nil || cancelled.Payment.Status != constants.PaymentStatusRefunded {
		t.Fatalf("collected payment must be refunded on cancel, got: %+v", cancelled.Payment)
	}
	if cancelled.Payment.Note != "order cancelled" {
		t.Fatalf("refund note = %q, want the cancellation note", cancelled.Payment.Note)
	}
}

func TestExpireStalePayment(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	p := createProduct(t, f.db, vendor.ID, "100", 5, constants.DeliveryMethodVendorSelf)

	order, err := f.orders.CreateOrder(CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []CreateOrderItem{{ProductID: p.ID, Quantity: 1}},
		DestinationCity: "Addis Ababa",
		PaymentMethod:   constants.PaymentMethodOnline,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := f.orders.ExpireStalePayment(order.ID); err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	reloaded, err := f.orders.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCancelled || reloaded.CancelledBy != constants.CancelActorSystem {
		t.Fatalf("unexpected order after expire: %+v", reloaded)
	}

	// a second run is a no-op
	if err := f.orders.ExpireStalePayment(order.ID); err != nil {
		t.Fatalf("second expire failed: %v", err)
	}
}

func TestExpireStalePaymentSkipsCOD(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	p := createProduct(t, f.db, vendor.ID, "100", 5, constants.DeliveryMethodVendorSelf)
	order := placeVendorSelfOrder(t, f, vendor.ID, customer.ID, p.ID)

	if err := f.orders.ExpireStalePayment(order.ID); err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	reloaded, err := f.orders.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPending {
		t.Fatalf("COD order must be untouched, status = %s", reloaded.Status)
	}
}

func TestOrderOwnershipScoping(t *testing.T) {
	f := setupOrderServiceTest(t)
	vendor := createVendor(t, f.db, "Addis Ababa")
	customer := createCustomer(t, f.db)
	stranger := createCustomer(t, f.db)
	p := createProduct(t, f.db, vendor.ID, "100", 5, constants.DeliveryMethodVendorSelf)
	order := placeVendorSelfOrder(t, f, vendor.ID, customer.ID, p.ID)

	if _, err := f.orders.GetForCustomer(customer.ID, order.ID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if _, err := f.orders.GetForCustomer(stranger.ID, order.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign customer, got: %v", err)
	}
	if _, err := f.orders.GetForVendor(vendor.ID+99, order.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign vendor, got: %v", err)
	}
}

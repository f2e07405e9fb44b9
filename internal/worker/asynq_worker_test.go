package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jemo-market/api/internal/config"
	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/provider"
	"github.com/jemo-market/api/internal/queue"
	"github.com/jemo-market/api/internal/repository"
	"github.com/jemo-market/api/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func testWorkerConfig() *config.Config {
	return &config.Config{
		Delivery: config.DeliveryConfig{SameCityFee: "80", OtherCityFee: "200"},
		Wallet:   config.WalletConfig{MinWithdrawal: "100"},
	}
}

func setupConsumerTest(t *testing.T) (*gorm.DB, *Consumer) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.VendorProfile{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.DeliveryJob{},
		&models.WalletTransaction{},
		&models.Payout{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	orderRepo := repository.NewOrderRepository(db)
	settingService := service.NewSettingService(repository.NewSettingRepository(db), testWorkerConfig())
	walletService := service.NewWalletService(
		repository.NewWalletRepository(db),
		repository.NewPayoutRepository(db),
		repository.NewVendorProfileRepository(db),
		settingService,
	)
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	orderService := service.NewOrderService(
		orderRepo,
		repository.NewProductRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewDeliveryJobRepository(db),
		repository.NewVendorProfileRepository(db),
		walletService,
		settingService,
		queueClient,
		0,
	)

	container := &provider.Container{
		OrderRepo:    orderRepo,
		UserRepo:     repository.NewUserRepository(db),
		OrderService: orderService,
	}
	return db, NewConsumer(container)
}

func createStaleOnlineOrder(t *testing.T, db *gorm.DB) *models.Order {
	t.Helper()
	customer := &models.User{
		Phone:        "+251911000001",
		PasswordHash: "x",
		Role:         constants.RoleCustomer,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	total, err := models.NewMoneyFromString("150")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	order := &models.Order{
		OrderNo:         "JM-TEST-0001",
		CustomerID:      customer.ID,
		VendorID:        1,
		Status:          constants.OrderStatusPending,
		ItemsTotal:      total,
		Total:           total,
		Currency:        constants.SiteCurrencyDefault,
		DeliveryMethod:  constants.DeliveryMethodVendorSelf,
		DeliveryFeeType: constants.FeeTypeFree,
		DestinationCity: "Addis Ababa",
		PaymentMethod:   constants.PaymentMethodOnline,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	payment := &models.Payment{
		OrderID:  order.ID,
		Method:   constants.PaymentMethodOnline,
		Amount:   total,
		Currency: constants.SiteCurrencyDefault,
		Status:   constants.PaymentStatusInitiated,
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	return order
}

func TestHandleOrderPaymentExpire(t *testing.T) {
	db, consumer := setupConsumerTest(t)
	order := createStaleOnlineOrder(t, db)

	mux := asynq.NewServeMux()
	consumer.Register(mux)

	task, err := queue.NewOrderPaymentExpireTask(queue.OrderPaymentExpirePayload{OrderID: order.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := mux.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("process expire task failed: %v", err)
	}

	got := &models.Order{}
	if err := db.First(got, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if got.Status != constants.OrderStatusCancelled {
		t.Fatalf("order status want cancelled got %s", got.Status)
	}
	if got.CancelledBy != constants.CancelActorSystem {
		t.Fatalf("cancelled_by want system got %s", got.CancelledBy)
	}
	payment := &models.Payment{}
	if err := db.Where("order_id = ?", order.ID).First(payment).Error; err != nil {
		t.Fatalf("reload payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusFailed {
		t.Fatalf("payment status want failed got %s", payment.Status)
	}

	// A redelivered task must not error once the order has moved on.
	if err := mux.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("reprocess expire task failed: %v", err)
	}
}

func TestHandleOrderPaymentExpireUnknownOrder(t *testing.T) {
	_, consumer := setupConsumerTest(t)

	task, err := queue.NewOrderPaymentExpireTask(queue.OrderPaymentExpirePayload{OrderID: 9999})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderPaymentExpire(context.Background(), task); err != nil {
		t.Fatalf("unknown order should not error: %v", err)
	}
}

func TestHandleOrderPaymentExpireBadPayload(t *testing.T) {
	_, consumer := setupConsumerTest(t)

	task := asynq.NewTask(queue.TaskOrderPaymentExpire, []byte("{not json"))
	if err := consumer.handleOrderPaymentExpire(context.Background(), task); err == nil {
		t.Fatalf("malformed payload should error")
	}

	empty := asynq.NewTask(queue.TaskOrderPaymentExpire, []byte(`{"order_id":0}`))
	if err := consumer.handleOrderPaymentExpire(context.Background(), empty); err != nil {
		t.Fatalf("zero order id should be skipped, got %v", err)
	}
}

func TestHandleOrderStatusNotify(t *testing.T) {
	db, consumer := setupConsumerTest(t)
	order := createStaleOnlineOrder(t, db)

	task, err := queue.NewOrderStatusNotifyTask(queue.OrderStatusNotifyPayload{
		OrderID: order.ID,
		Status:  constants.OrderStatusConfirmed,
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderStatusNotify(context.Background(), task); err != nil {
		t.Fatalf("notify task failed: %v", err)
	}

	missing, err := queue.NewOrderStatusNotifyTask(queue.OrderStatusNotifyPayload{OrderID: 9999})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderStatusNotify(context.Background(), missing); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
}

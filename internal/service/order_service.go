package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/logger"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/queue"
	"github.com/jemo-market/api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService order lifecycle
type OrderService struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	paymentRepo    repository.PaymentRepository
	jobRepo        repository.DeliveryJobRepository
	vendorRepo     repository.VendorProfileRepository
	walletService  *WalletService
	settingService *SettingService
	queueClient    *queue.Client
	expireMinutes  int
}

// NewOrderService creates the order service
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, paymentRepo repository.PaymentRepository, jobRepo repository.DeliveryJobRepository, vendorRepo repository.VendorProfileRepository, walletService *WalletService, settingService *SettingService, queueClient *queue.Client, expireMinutes int) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		paymentRepo:    paymentRepo,
		jobRepo:        jobRepo,
		vendorRepo:     vendorRepo,
		walletService:  walletService,
		settingService: settingService,
		queueClient:    queueClient,
		expireMinutes:  expireMinutes,
	}
}

// CreateOrderInput checkout request
type CreateOrderInput struct {
	CustomerID      uint
	Items           []CreateOrderItem
	DestinationCity string
	Address         string
	PaymentMethod   string
}

// CreateOrderItem checkout line
type CreateOrderItem struct {
	ProductID uint
	Quantity  int
}

// CreateOrder validates the cart, snapshots prices, resolves the delivery
// fee and writes order, items, payment and the delivery job in one
// transaction. All items must belong to a single vendor.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrValidation
	}
	destCity := strings.TrimSpace(input.DestinationCity)
	if destCity == "" {
		return nil, ErrValidation
	}
	paymentMethod := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	switch paymentMethod {
	case constants.PaymentMethodCOD, constants.PaymentMethodOnline:
	case "":
		paymentMethod = constants.PaymentMethodCOD
	default:
		return nil, ErrValidation
	}

	ids := make([]uint, 0, len(input.Items))
	quantities := make(map[uint]int, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrValidation
		}
		if _, dup := quantities[item.ProductID]; dup {
			return nil, ErrValidation
		}
		ids = append(ids, item.ProductID)
		quantities[item.ProductID] = item.Quantity
	}

	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, ErrNotFound
	}

	var vendorID uint
	for i := range products {
		p := &products[i]
		if !p.Active {
			return nil, ErrProductUnavailable
		}
		if vendorID == 0 {
			vendorID = p.VendorID
		} else if p.VendorID != vendorID {
			return nil, ErrValidation
		}
		if p.Stock < quantities[p.ID] {
			return nil, ErrInsufficientStock
		}
	}

	vendor, err := s.vendorRepo.GetByID(vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil || vendor.KycStatus != constants.KycStatusApproved {
		return nil, ErrProductUnavailable
	}

	pricing, err := s.settingService.GetPlatformPricing()
	if err != nil {
		return nil, err
	}

	// each product prices its own delivery; the order carries the most
	// expensive applicable fee and a platform rider if any item needs one
	itemsTotal := decimal.Zero
	deliveryMethod := constants.DeliveryMethodVendorSelf
	feeResult := DeliveryFeeResult{Available: true, FeeType: constants.FeeTypeFree}
	orderItems := make([]models.OrderItem, 0, len(products))
	for i := range products {
		p := &products[i]
		qty := quantities[p.ID]
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		itemsTotal = itemsTotal.Add(lineTotal)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: p.ID,
			Title:     p.Title,
			UnitPrice: p.Price,
			Quantity:  qty,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
		})

		result := CalculateDeliveryFee(DeliveryFeeConfig{
			DeliveryType: p.DeliveryType,
			FreeDelivery: p.FreeDelivery || vendor.FreeDelivery,
			FlatFee:      p.FlatDeliveryFee,
			SameCityFee:  p.SameCityFee,
			OtherCityFee: p.OtherCityFee,
			VendorCity:   vendor.City,
		}, pricing, destCity)
		if !result.Available {
			return nil, ErrDeliveryUnavailable
		}
		if p.DeliveryType == constants.DeliveryMethodJemoRider {
			deliveryMethod = constants.DeliveryMethodJemoRider
		}
		if result.Fee.GreaterThan(feeResult.Fee.Decimal) || feeResult.FeeType == constants.FeeTypeFree {
			feeResult = result
		}
	}

	total := itemsTotal.Add(feeResult.Fee.Decimal)
	order := &models.Order{
		OrderNo:         generateOrderNo(),
		CustomerID:      input.CustomerID,
		VendorID:        vendorID,
		Status:          constants.OrderStatusPending,
		ItemsTotal:      models.NewMoneyFromDecimal(itemsTotal),
		DeliveryFee:     feeResult.Fee,
		Total:           models.NewMoneyFromDecimal(total),
		Currency:        constants.SiteCurrencyDefault,
		DeliveryMethod:  deliveryMethod,
		DeliveryFeeType: feeResult.FeeType,
		DestinationCity: destCity,
		Address:         strings.TrimSpace(input.Address),
		PaymentMethod:   paymentMethod,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		for id, qty := range quantities {
			if err := productRepo.AdjustStock(id, -qty); err != nil {
				return ErrInsufficientStock
			}
		}
		if err := s.orderRepo.WithTx(tx).Create(order, orderItems); err != nil {
			return err
		}
		payment := &models.Payment{
			OrderID:  order.ID,
			Method:   paymentMethod,
			Amount:   order.Total,
			Currency: order.Currency,
			Status:   constants.PaymentStatusInitiated,
		}
		if err := s.paymentRepo.WithTx(tx).Create(payment); err != nil {
			return err
		}
		if deliveryMethod == constants.DeliveryMethodJemoRider {
			job := &models.DeliveryJob{
				OrderID:     order.ID,
				Status:      constants.DeliveryJobStatusOpen,
				PickupCity:  vendor.City,
				DropoffCity: destCity,
				Address:     order.Address,
				Fee:         feeResult.Fee,
			}
			if err := s.jobRepo.WithTx(tx).Create(job); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if paymentMethod == constants.PaymentMethodOnline && s.expireMinutes > 0 {
		delay := time.Duration(s.expireMinutes) * time.Minute
		if err := s.queueClient.EnqueueOrderPaymentExpire(queue.OrderPaymentExpirePayload{OrderID: order.ID}, delay); err != nil {
			logger.Warnw("enqueue_payment_expire_failed", "order_id", order.ID, "error", err)
		}
	}
	s.notifyStatus(order.ID, order.Status)

	return s.orderRepo.GetByID(order.ID)
}

// ConfirmOrder vendor accepts a pending order; the vendor's earnings (items
// total, delivery fee excluded) are credited pending.
func (s *OrderService) ConfirmOrder(vendorID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndVendor(orderID, vendorID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		moved, err := s.orderRepo.WithTx(tx).UpdateStatusFrom(orderID,
			[]string{constants.OrderStatusPending},
			constants.OrderStatusConfirmed,
			map[string]interface{}{"confirmed_at": now})
		if err != nil {
			return err
		}
		if !moved {
			return ErrInvalidTransition
		}
		return s.walletService.CreditPending(tx, order.VendorID, order.ID, order.ItemsTotal)
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatus(orderID, constants.OrderStatusConfirmed)
	return s.orderRepo.GetByID(orderID)
}

// MarkInTransit vendor dispatches a self-delivered order. Platform rider
// orders move to in_transit when an agency accepts the job instead.
func (s *OrderService) MarkInTransit(vendorID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndVendor(orderID, vendorID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.DeliveryMethod != constants.DeliveryMethodVendorSelf {
		return nil, ErrForbidden
	}

	if err := s.transitionInTransit(nil, orderID); err != nil {
		return nil, err
	}
	s.notifyStatus(orderID, constants.OrderStatusInTransit)
	return s.orderRepo.GetByID(orderID)
}

// MarkDelivered vendor hands over a self-delivered order
func (s *OrderService) MarkDelivered(vendorID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndVendor(orderID, vendorID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.DeliveryMethod != constants.DeliveryMethodVendorSelf {
		return nil, ErrForbidden
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.transitionDelivered(tx, order)
	})
	if err != nil {
		return nil, err
	}
	s.notifyStatus(orderID, constants.OrderStatusDelivered)
	return s.orderRepo.GetByID(orderID)
}

// transitionInTransit moves confirmed to in_transit
func (s *OrderService) transitionInTransit(tx *gorm.DB, orderID uint) error {
	moved, err := s.orderRepo.WithTx(tx).UpdateStatusFrom(orderID,
		[]string{constants.OrderStatusConfirmed},
		constants.OrderStatusInTransit,
		map[string]interface{}{"in_transit_at": time.Now()})
	if err != nil {
		return err
	}
	if !moved {
		return ErrInvalidTransition
	}
	return nil
}

// transitionDelivered moves in_transit to delivered and settles COD payments
func (s *OrderService) transitionDelivered(tx *gorm.DB, order *models.Order) error {
	now := time.Now()
	moved, err := s.orderRepo.WithTx(tx).UpdateStatusFrom(order.ID,
		[]string{constants.OrderStatusInTransit},
		constants.OrderStatusDelivered,
		map[string]interface{}{"delivered_at": now})
	if err != nil {
		return err
	}
	if !moved {
		return ErrInvalidTransition
	}

	if order.PaymentMethod == constants.PaymentMethodCOD {
		payment, err := s.paymentRepo.WithTx(tx).GetByOrderID(order.ID)
		if err != nil {
			return err
		}
		if payment != nil {
			if _, err := s.paymentRepo.WithTx(tx).UpdateStatusFrom(payment.ID,
				[]string{constants.PaymentStatusInitiated},
				constants.PaymentStatusSuccess,
				map[string]interface{}{"paid_at": now}); err != nil {
				return err
			}
		}
	}
	return nil
}

// CompleteOrder customer (or admin) acknowledges receipt; the vendor's
// pending credit becomes available in the same transaction.
func (s *OrderService) CompleteOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		moved, err := s.orderRepo.WithTx(tx).UpdateStatusFrom(orderID,
			[]string{constants.OrderStatusDelivered},
			constants.OrderStatusCompleted,
			map[string]interface{}{"completed_at": now})
		if err != nil {
			return err
		}
		if !moved {
			return ErrInvalidTransition
		}
		return s.walletService.PromoteToAvailable(tx, order.VendorID, order.ID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatus(orderID, constants.OrderStatusCompleted)
	return s.orderRepo.GetByID(orderID)
}

// CancelOrder cancels a pending or confirmed order, restores stock, undoes
// any pending wallet credit and closes the delivery job. An uncollected
// payment is failed; a collected one is marked refunded. Once the order is
// in transit cancellation is forbidden.
func (s *OrderService) CancelOrder(orderID uint, actor, reason string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if !OrderCancellable(order.Status) {
		return nil, ErrForbidden
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		moved, err := s.orderRepo.WithTx(tx).UpdateStatusFrom(orderID,
			[]string{constants.OrderStatusPending, constants.OrderStatusConfirmed},
			constants.OrderStatusCancelled,
			map[string]interface{}{
				"cancelled_by":  actor,
				"cancel_reason": reason,
				"cancelled_at":  now,
			})
		if err != nil {
			return err
		}
		if !moved {
			return ErrForbidden
		}

		productRepo := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			if err := productRepo.AdjustStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.walletService.ReverseOrderCredit(tx, order.VendorID, order.ID); err != nil {
			return err
		}

		if order.DeliveryMethod == constants.DeliveryMethodJemoRider {
			job, err := s.jobRepo.WithTx(tx).GetByOrderID(order.ID)
			if err != nil {
				return err
			}
			if job != nil {
				if _, err := s.jobRepo.WithTx(tx).UpdateStatusFrom(job.ID,
					[]string{constants.DeliveryJobStatusOpen, constants.DeliveryJobStatusAccepted},
					constants.DeliveryJobStatusCancelled, nil); err != nil {
					return err
				}
			}
		}

		payment, err := s.paymentRepo.WithTx(tx).GetByOrderID(order.ID)
		if err != nil {
			return err
		}
		if payment != nil {
			switch payment.Status {
			case constants.PaymentStatusInitiated:
				if _, err := s.paymentRepo.WithTx(tx).UpdateStatusFrom(payment.ID,
					[]string{constants.PaymentStatusInitiated},
					constants.PaymentStatusFailed,
					map[string]interface{}{"failed_at": now}); err != nil {
					return err
				}
			case constants.PaymentStatusSuccess:
				// a collected payment on a cancelled order is owed back
				if _, err := s.paymentRepo.WithTx(tx).UpdateStatusFrom(payment.ID,
					[]string{constants.PaymentStatusSuccess},
					constants.PaymentStatusRefunded,
					map[string]interface{}{"note": "order cancelled"}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatus(orderID, constants.OrderStatusCancelled)
	return s.orderRepo.GetByID(orderID)
}

// ExpireStalePayment cancels an order whose online payment never arrived.
// Invoked from the queue worker; a no-op when the order moved on.
func (s *OrderService) ExpireStalePayment(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	if order.Status != constants.OrderStatusPending || order.PaymentMethod != constants.PaymentMethodOnline {
		return nil
	}
	payment, err := s.paymentRepo.GetByOrderID(order.ID)
	if err != nil {
		return err
	}
	if payment != nil && payment.Status != constants.PaymentStatusInitiated {
		return nil
	}
	_, err = s.CancelOrder(order.ID, constants.CancelActorSystem, "payment expired")
	return err
}

// GetForCustomer loads a customer's order
func (s *OrderService) GetForCustomer(customerID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetForVendor loads a vendor's order
func (s *OrderService) GetForVendor(vendorID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndVendor(orderID, vendorID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetByID loads any order (admin)
func (s *OrderService) GetByID(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListForCustomer pages a customer's orders
func (s *OrderService) ListForCustomer(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByCustomer(filter)
}

// ListForVendor pages a vendor's orders
func (s *OrderService) ListForVendor(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByVendor(filter)
}

// ListAdmin pages all orders
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

func (s *OrderService) notifyStatus(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("enqueue_status_notify_failed", "order_id", orderID, "status", status, "error", err)
	}
}

// generateOrderNo builds a sortable order number with a random suffix
func generateOrderNo() string {
	suffix, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		suffix = big.NewInt(time.Now().UnixNano() % 1000000)
	}
	return fmt.Sprintf("JM%s%06d", time.Now().Format("20060102150405"), suffix.Int64())
}

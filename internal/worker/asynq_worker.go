package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jemo-market/api/internal/logger"
	"github.com/jemo-market/api/internal/provider"
	"github.com/jemo-market/api/internal/queue"
	"github.com/jemo-market/api/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer async task consumer
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires task handlers into the mux
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
	mux.HandleFunc(queue.TaskOrderPaymentExpire, c.handleOrderPaymentExpire)
}

// handleOrderStatusNotify dispatches a status-change notification. SMS and
// push providers are not integrated, so the dispatch is a structured log
// entry carrying everything a provider hook would need.
func (c *Consumer) handleOrderStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	customer, err := c.UserRepo.GetByID(order.CustomerID)
	if err != nil {
		logger.Warnw("worker_order_status_notify_fetch_customer_failed", "order_id", order.ID, "error", err)
		return err
	}
	phone := ""
	if customer != nil {
		phone = customer.Phone
	}

	status := payload.Status
	if status == "" {
		status = order.Status
	}
	logger.Infow("order_status_notification",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"status", status,
		"customer_id", order.CustomerID,
		"customer_phone", phone,
	)
	return nil
}

// handleOrderPaymentExpire cancels an online-payment order that stayed
// unpaid past the configured window.
func (c *Consumer) handleOrderPaymentExpire(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_payment_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPaymentExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_payment_expire_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_payment_expire_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_payment_expire_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}

	if err := c.OrderService.ExpireStalePayment(payload.OrderID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			logger.Debugw("worker_order_payment_expire_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrInvalidTransition):
			logger.Debugw("worker_order_payment_expire_skip_moved_on", "order_id", payload.OrderID)
			return nil
		default:
			logger.Warnw("worker_order_payment_expire_failed", "order_id", payload.OrderID, "error", err)
			return err
		}
	}
	return nil
}

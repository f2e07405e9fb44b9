package queue

import (
	"encoding/json"

	"github.com/jemo-market/api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusNotify order status notification task
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
	// TaskOrderPaymentExpire stale online payment expiry task
	TaskOrderPaymentExpire = constants.TaskOrderPaymentExpire
)

// OrderStatusNotifyPayload status notification payload
type OrderStatusNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// OrderPaymentExpirePayload payment expiry payload
type OrderPaymentExpirePayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderStatusNotifyTask builds a status notification task
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, body), nil
}

// NewOrderPaymentExpireTask builds a payment expiry task
func NewOrderPaymentExpireTask(payload OrderPaymentExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPaymentExpire, body), nil
}

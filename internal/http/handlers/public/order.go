package public

import (
	"strings"

	"github.com/jemo-market/api/internal/constants"
	handlershared "github.com/jemo-market/api/internal/http/handlers/shared"
	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/repository"
	"github.com/jemo-market/api/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest checkout line payload
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CreateOrderRequest checkout payload
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required"`
	DestinationCity string             `json:"destination_city" binding:"required"`
	Address         string             `json:"address"`
	PaymentMethod   string             `json:"payment_method"`
}

// CreateOrder places an order from the authenticated customer's cart
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	items := make([]service.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		CustomerID:      userID,
		Items:           items,
		DestinationCity: req.DestinationCity,
		Address:         req.Address,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "order create failed")
		return
	}

	response.Created(c, order)
}

// ListMyOrders pages the customer's orders
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	orders, total, err := h.OrderService.ListForCustomer(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: userID,
		Status:     strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewMeta(page, pageSize, total))
}

// GetMyOrder returns one of the customer's orders
func (h *Handler) GetMyOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetForCustomer(userID, orderID)
	if err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "order fetch failed")
		return
	}

	response.Success(c, order)
}

// CompleteMyOrder confirms receipt of a delivered order
func (h *Handler) CompleteMyOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.OrderService.GetForCustomer(userID, orderID); err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "order fetch failed")
		return
	}

	order, err := h.OrderService.CompleteOrder(orderID)
	if err != nil {
		respondWithMappedError(c, err, orderCompleteErrorRules, response.CodeInternal, "order complete failed")
		return
	}

	response.Success(c, order)
}

// CancelOrderRequest cancellation payload
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelMyOrder cancels an order that has not left the vendor yet
func (h *Handler) CancelMyOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "bad request", err)
			return
		}
	}

	if _, err := h.OrderService.GetForCustomer(userID, orderID); err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "order fetch failed")
		return
	}

	order, err := h.OrderService.CancelOrder(orderID, constants.CancelActorCustomer, req.Reason)
	if err != nil {
		respondWithMappedError(c, err, orderCancelErrorRules, response.CodeInternal, "order cancel failed")
		return
	}

	response.Success(c, order)
}

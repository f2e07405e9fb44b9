package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jemo-market/api/internal/cache"
	"github.com/jemo-market/api/internal/repository"
)

const dashboardCacheTTL = 45 * time.Second

// DashboardService aggregates the back-office overview numbers
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService creates the dashboard service
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardQueryInput overview query window
type DashboardQueryInput struct {
	Range        string // today, 7d or 30d
	ForceRefresh bool
}

// DashboardOverviewResponse admin overview payload
type DashboardOverviewResponse struct {
	Range   string           `json:"range"`
	From    string           `json:"from"`
	To      string           `json:"to"`
	Orders  DashboardOrders  `json:"orders"`
	Backlog DashboardBacklog `json:"backlog"`
}

// DashboardOrders order and payment counters for the window
type DashboardOrders struct {
	Total           int64  `json:"total"`
	Pending         int64  `json:"pending"`
	Active          int64  `json:"active"`
	Completed       int64  `json:"completed"`
	Cancelled       int64  `json:"cancelled"`
	GMVCompleted    string `json:"gmv_completed"`
	PaymentsSuccess int64  `json:"payments_success"`
	PaymentsFailed  int64  `json:"payments_failed"`
	NewUsers        int64  `json:"new_users"`
}

// DashboardBacklog point-in-time review and fulfillment backlog
type DashboardBacklog struct {
	PendingKyc       int64 `json:"pending_kyc"`
	RequestedPayouts int64 `json:"requested_payouts"`
	OpenDisputes     int64 `json:"open_disputes"`
	OpenDeliveryJobs int64 `json:"open_delivery_jobs"`
	ActiveProducts   int64 `json:"active_products"`
	OutOfStock       int64 `json:"out_of_stock"`
}

// DashboardTrendResponse per-day order counts
type DashboardTrendResponse struct {
	Range  string                              `json:"range"`
	From   string                              `json:"from"`
	To     string                              `json:"to"`
	Points []repository.DashboardOrderTrendRow `json:"points"`
}

// GetOverview returns the cached overview for the requested window
func (s *DashboardService) GetOverview(ctx context.Context, input DashboardQueryInput) (*DashboardOverviewResponse, error) {
	startAt, endAt, rangeKey, err := resolveDashboardWindow(input.Range, time.Now())
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:overview:%s:%d:%d", rangeKey, startAt.Unix(), endAt.Unix())
	if !input.ForceRefresh {
		var cached DashboardOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview(startAt, endAt)
	if err != nil {
		return nil, err
	}
	ops, err := s.repo.GetOpsStats()
	if err != nil {
		return nil, err
	}

	response := &DashboardOverviewResponse{
		Range: rangeKey,
		From:  startAt.Format(time.RFC3339),
		To:    endAt.Add(-time.Second).Format(time.RFC3339),
		Orders: DashboardOrders{
			Total:           overview.OrdersTotal,
			Pending:         overview.PendingOrders,
			Active:          overview.ActiveOrders,
			Completed:       overview.CompletedOrders,
			Cancelled:       overview.CancelledOrders,
			GMVCompleted:    fmt.Sprintf("%.2f", overview.GMVCompleted),
			PaymentsSuccess: overview.PaymentsSuccess,
			PaymentsFailed:  overview.PaymentsFailed,
			NewUsers:        overview.NewUsers,
		},
		Backlog: DashboardBacklog{
			PendingKyc:       ops.PendingKyc,
			RequestedPayouts: ops.RequestedPayouts,
			OpenDisputes:     ops.OpenDisputes,
			OpenDeliveryJobs: ops.OpenDeliveryJobs,
			ActiveProducts:   ops.ActiveProducts,
			OutOfStock:       ops.OutOfStock,
		},
	}

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

// GetTrends returns the cached per-day order trend for the window
func (s *DashboardService) GetTrends(ctx context.Context, input DashboardQueryInput) (*DashboardTrendResponse, error) {
	startAt, endAt, rangeKey, err := resolveDashboardWindow(input.Range, time.Now())
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:trends:%s:%d:%d", rangeKey, startAt.Unix(), endAt.Unix())
	if !input.ForceRefresh {
		var cached DashboardTrendResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	points, err := s.repo.GetOrderTrends(startAt, endAt)
	if err != nil {
		return nil, err
	}

	response := &DashboardTrendResponse{
		Range:  rangeKey,
		From:   startAt.Format(time.RFC3339),
		To:     endAt.Add(-time.Second).Format(time.RFC3339),
		Points: points,
	}

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

func resolveDashboardWindow(rangeKey string, now time.Time) (time.Time, time.Time, string, error) {
	rangeKey = strings.ToLower(strings.TrimSpace(rangeKey))
	if rangeKey == "" {
		rangeKey = "7d"
	}

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch rangeKey {
	case "today":
		return todayStart, todayStart.AddDate(0, 0, 1), rangeKey, nil
	case "7d":
		return todayStart.AddDate(0, 0, -6), todayStart.AddDate(0, 0, 1), rangeKey, nil
	case "30d":
		return todayStart.AddDate(0, 0, -29), todayStart.AddDate(0, 0, 1), rangeKey, nil
	default:
		return time.Time{}, time.Time{}, "", ErrValidation
	}
}

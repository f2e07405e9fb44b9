package repository

import (
	"time"

	"github.com/jemo-market/api/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository aggregate queries for the admin overview. Statistics
// only, no business rules.
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetOpsStats() (DashboardOpsStatsRow, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
}

// DashboardOverviewRow raw overview counters for a time window
type DashboardOverviewRow struct {
	OrdersTotal     int64
	PendingOrders   int64
	ActiveOrders    int64
	CompletedOrders int64
	CancelledOrders int64
	GMVCompleted    float64
	PaymentsSuccess int64
	PaymentsFailed  int64
	NewUsers        int64
}

// DashboardOpsStatsRow point-in-time operational backlog counters
type DashboardOpsStatsRow struct {
	PendingKyc       int64
	RequestedPayouts int64
	OpenDisputes     int64
	OpenDeliveryJobs int64
	ActiveProducts   int64
	OutOfStock       int64
}

// DashboardOrderTrendRow per-day order counts
type DashboardOrderTrendRow struct {
	Day             string
	OrdersTotal     int64
	CompletedOrders int64
}

// GormDashboardRepository GORM implementation
type GormDashboardRepository struct {
	db      *gorm.DB
	dateSQL string
}

// NewDashboardRepository creates the dashboard repository
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db, dateSQL: dateBucketExpr(db)}
}

func activeOrderStatuses() []string {
	return []string{"confirmed", "in_transit", "delivered"}
}

// GetOverview counts the window's orders, payments and signups
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}

	if err := orderBase().Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", "pending").Count(&result.PendingOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status IN ?", activeOrderStatuses()).Count(&result.ActiveOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", "completed").Count(&result.CompletedOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", "cancelled").Count(&result.CancelledOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", "completed").
		Select("COALESCE(SUM(total), 0)").Scan(&result.GMVCompleted).Error; err != nil {
		return result, err
	}

	paymentBase := func() *gorm.DB {
		return r.db.Model(&models.Payment{}).
			Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}
	if err := paymentBase().Where("status = ?", "success").Count(&result.PaymentsSuccess).Error; err != nil {
		return result, err
	}
	if err := paymentBase().Where("status = ?", "failed").Count(&result.PaymentsFailed).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&result.NewUsers).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetOpsStats counts the review and fulfillment backlog
func (r *GormDashboardRepository) GetOpsStats() (DashboardOpsStatsRow, error) {
	result := DashboardOpsStatsRow{}

	if err := r.db.Model(&models.KycSubmission{}).
		Where("status = ?", "pending").Count(&result.PendingKyc).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Payout{}).
		Where("status = ?", "requested").Count(&result.RequestedPayouts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Dispute{}).
		Where("status = ?", "open").Count(&result.OpenDisputes).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.DeliveryJob{}).
		Where("status = ?", "open").Count(&result.OpenDeliveryJobs).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("active = ?", true).Count(&result.ActiveProducts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("active = ? AND stock <= 0", true).Count(&result.OutOfStock).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetOrderTrends buckets orders per day inside the window
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	rows := make([]DashboardOrderTrendRow, 0)
	err := r.db.Model(&models.Order{}).
		Select(r.dateSQL+" AS day, COUNT(*) AS orders_total, SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END) AS completed_orders").
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// dateBucketExpr picks the day-truncation expression for the active dialect
func dateBucketExpr(db *gorm.DB) string {
	if db != nil && db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return "TO_CHAR(created_at, 'YYYY-MM-DD')"
	}
	return "strftime('%Y-%m-%d', created_at)"
}

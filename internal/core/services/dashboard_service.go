package services

import (
	"context"
	"time"

	"siports-backend/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService handles admin dashboard aggregation
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User statistics
	TotalUsers     int64            `json:"total_users"`
	UsersByRole    map[string]int64 `json:"users_by_role"`
	PendingCount   int64            `json:"pending_count"`
	ValidatedCount int64            `json:"validated_count"`
	RejectedCount  int64            `json:"rejected_count"`

	// Rolling 24h activity
	SignupsLast24h  int64 `json:"signups_last_24h"`
	ModifiedLast24h int64 `json:"modified_last_24h"`

	// Trailing week of admin decisions, oldest day first
	DailyActivity []DailyActivity `json:"daily_activity"`
}

// DailyActivity represents one calendar day of validation decisions
type DailyActivity struct {
	Date      string `json:"date"`
	Validated int64  `json:"validated"`
	Rejected  int64  `json:"rejected"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{
		UsersByRole: make(map[string]int64),
	}

	users := func() *gorm.DB {
		return s.db.WithContext(ctx).Table("users").
			Where("deleted_at IS NULL AND is_anonymous = ?", false)
	}

	// User counts by status
	users().Count(&data.TotalUsers)
	users().Where("status = ?", string(domain.StatusPending)).Count(&data.PendingCount)
	users().Where("status = ?", string(domain.StatusValidated)).Count(&data.ValidatedCount)
	users().Where("status = ?", string(domain.StatusRejected)).Count(&data.RejectedCount)

	// User counts by role
	for _, role := range []domain.Role{domain.RoleVisitor, domain.RoleExhibitor, domain.RolePartner, domain.RoleAdmin} {
		var count int64
		users().Where("role = ?", string(role)).Count(&count)
		data.UsersByRole[string(role)] = count
	}

	// Rolling 24h activity
	dayAgo := time.Now().Add(-24 * time.Hour)
	users().Where("created_at >= ?", dayAgo).Count(&data.SignupsLast24h)
	users().Where("updated_at >= ?", dayAgo).Count(&data.ModifiedLast24h)

	// Decision histogram for the trailing 7 days, today included.
	// Buckets are local calendar days, not 24h slices of absolute time.
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	data.DailyActivity = make([]DailyActivity, 0, 7)
	for i := 6; i >= 0; i-- {
		dayStart := startOfDay.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		day := DailyActivity{Date: dayStart.Format("2006-01-02")}
		s.db.WithContext(ctx).Table("validation_actions").
			Where("action = ? AND created_at >= ? AND created_at < ?",
				string(domain.ActionValidate), dayStart, dayEnd).
			Count(&day.Validated)
		s.db.WithContext(ctx).Table("validation_actions").
			Where("action = ? AND created_at >= ? AND created_at < ?",
				string(domain.ActionReject), dayStart, dayEnd).
			Count(&day.Rejected)

		data.DailyActivity = append(data.DailyActivity, day)
	}

	return data, nil
}

package tourism

import (
	"context"

	"github.com/tourdesk/backend/internal/domain/tourism"
	"github.com/tourdesk/backend/internal/infrastructure/telemetry"
)

// StatsSource computes dashboard figures from a consistent view of the data
type StatsSource interface {
	DashboardStats() tourism.DashboardStats
}

// DashboardService serves the dashboard summary
type DashboardService struct {
	source StatsSource
}

// NewDashboardService creates a DashboardService
func NewDashboardService(source StatsSource) *DashboardService {
	return &DashboardService{source: source}
}

// Stats recomputes the summary on every call
func (s *DashboardService) Stats(ctx context.Context) tourism.DashboardStats {
	ctx, span := telemetry.StartServiceSpan(ctx, "tourism.dashboard", "stats")
	defer span.End()

	var stats tourism.DashboardStats
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels("dashboard_stats", nil), func(context.Context) {
		stats = s.source.DashboardStats()
	})
	telemetry.SetAttributes(span,
		"dashboard.active_tours", stats.ActiveTours,
		"dashboard.total_tourists", stats.TotalTourists,
	)
	return stats
}

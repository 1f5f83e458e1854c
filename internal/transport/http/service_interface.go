package http

import (
	"context"

	"oceanwatch/internal/dashboard"
)

// DashboardService is the service-layer contract the handlers depend on.
// Defined here so handler tests can substitute a stub.
type DashboardService interface {
	ComputeView(ctx context.Context, req dashboard.Request) (*dashboard.ViewResult, error)
	Dimensions(ctx context.Context) (*dashboard.Dimensions, error)
	CompareAcrossGroups(ctx context.Context, req dashboard.OutlierRequest) (*dashboard.OutlierReport, error)
}

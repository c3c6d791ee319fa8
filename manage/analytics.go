package manage

import (
	"context"

	"github.com/providerdesk/providerdesk/db"
	"go.uber.org/zap"
)

// AnalyticsService aggregates directory numbers for the dashboard
type AnalyticsService struct {
	store *db.DataStore
	log   *zap.Logger
}

func NewAnalyticsService(store *db.DataStore, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{store: store, log: log}
}

func (g *AnalyticsService) Overview(ctx context.Context) (*OverviewDTO, error) {
	counts, err := g.store.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return &OverviewDTO{
		TotalUsers:                 counts.TotalUsers,
		ApprovedDoctors:            counts.ApprovedDoctors,
		TotalClinics:               counts.TotalClinics,
		ApplicationStatusBreakdown: counts.StatusBreakdown,
	}, nil
}

// ClinicsGrowth buckets clinic signups of the last six months
func (g *AnalyticsService) ClinicsGrowth(ctx context.Context) ([]MonthlyCountDTO, error) {
	rows, err := g.store.MonthlyGrowth(ctx, "clinics")
	if err != nil {
		return nil, err
	}
	return monthlyCountDTOs(rows), nil
}

// ApplicationsTrend buckets doctor applications of the last six months
func (g *AnalyticsService) ApplicationsTrend(ctx context.Context) ([]MonthlyCountDTO, error) {
	rows, err := g.store.MonthlyGrowth(ctx, "doctors")
	if err != nil {
		return nil, err
	}
	return monthlyCountDTOs(rows), nil
}

// DoctorStatusDistribution reports working versus resigned doctors
func (g *AnalyticsService) DoctorStatusDistribution(ctx context.Context) (map[string]int, error) {
	return g.store.DoctorStatusDistribution(ctx)
}

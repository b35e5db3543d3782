// internal/service/analytics.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/analytics"
	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"golang.org/x/sync/errgroup"
)

const (
	recentActivityWindow = 7 * 24 * time.Hour
	recentActivityLimit  = 10
	revenueMonths        = 12
)

type DashboardCounts struct {
	TotalApplications  int64   `json:"totalApplications"`
	TotalCampaigns     int64   `json:"totalCampaigns"`
	TotalPersonas      int64   `json:"totalPersonas"`
	NewUsersThisWeek   int64   `json:"newUsersThisWeek"`
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalPlatformUsers int64   `json:"totalPlatformUsers"`
}

// RecentSignup is a platform user as listed in the dashboard activity feed.
type RecentSignup struct {
	ID              string    `json:"id"`
	JobTitle        string    `json:"jobTitle"`
	Location        string    `json:"location"`
	Age             string    `json:"age"`
	Industry        string    `json:"industry"`
	SignupDate      time.Time `json:"signupDate"`
	MonthlySpendUSD *float64  `json:"monthlySpendUsd"`
	Active          bool      `json:"active"`
}

type DashboardOverview struct {
	Overview       DashboardCounts          `json:"overview"`
	ChartData      []analytics.MonthlyPoint `json:"chartData"`
	RecentActivity []RecentSignup           `json:"recentActivity"`
}

type AnalyticsService struct {
	store        *repository.Store
	applications *ApplicationService
	now          Clock
}

func NewAnalyticsService(store *repository.Store, applications *ApplicationService) *AnalyticsService {
	return &AnalyticsService{store: store, applications: applications, now: time.Now}
}

// ApplicationReport builds the analytics view of one application owned by the
// principal's organization.
func (s *AnalyticsService) ApplicationReport(ctx context.Context, p *auth.Principal, applicationID string) (*analytics.Report, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Application ID is required")
	}

	app, err := s.applications.Find(ctx, p, applicationID)
	if err != nil {
		return nil, err
	}

	users, err := s.store.PlatformUsers.ListByApplication(ctx, p.OrgID, app.ID)
	if err != nil {
		return nil, err
	}

	report := analytics.BuildReport(users, s.now())
	if report.RecentUsers == nil {
		report.RecentUsers = []*model.PlatformUser{}
	}
	return &report, nil
}

// Overview gathers the dashboard figures. The independent queries run
// concurrently and the first failure cancels the rest.
func (s *AnalyticsService) Overview(ctx context.Context, p *auth.Principal) (*DashboardOverview, error) {
	now := s.now().UTC()
	weekAgo := now.Add(-recentActivityWindow)
	orgID := p.OrgID

	var (
		counts DashboardCounts
		recent []*model.PlatformUser
		spend  []repository.SignupSpend
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.TotalApplications, err = s.store.Applications.Count(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		counts.TotalCampaigns, err = s.store.Campaigns.Count(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		counts.TotalPersonas, err = s.store.Personas.Count(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		counts.TotalPlatformUsers, err = s.store.PlatformUsers.Count(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		counts.NewUsersThisWeek, err = s.store.PlatformUsers.CountSignedUpSince(gctx, orgID, weekAgo)
		return err
	})
	g.Go(func() (err error) {
		counts.TotalRevenue, err = s.store.PlatformUsers.TotalSpend(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.store.PlatformUsers.ListSignedUpSince(gctx, orgID, weekAgo, recentActivityLimit)
		return err
	})
	g.Go(func() (err error) {
		spend, err = s.store.PlatformUsers.SpendSince(gctx, orgID, analytics.MonthStart(now, revenueMonths-1))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	points := make([]analytics.Spend, 0, len(spend))
	for _, sp := range spend {
		if sp.MonthlySpendUSD == nil {
			continue
		}
		points = append(points, analytics.Spend{At: sp.SignupDate, Amount: *sp.MonthlySpendUSD})
	}

	activity := make([]RecentSignup, 0, len(recent))
	for _, u := range recent {
		activity = append(activity, RecentSignup{
			ID:              u.ID.String(),
			JobTitle:        orDefault(u.JobTitle, "Unknown Position"),
			Location:        orDefault(u.Location, "Unknown Location"),
			Age:             orDefault(u.Age, "Unknown Age"),
			Industry:        orDefault(u.Industry, "Unknown Industry"),
			SignupDate:      u.SignupDate,
			MonthlySpendUSD: u.MonthlySpendUSD,
			Active:          u.Active,
		})
	}

	return &DashboardOverview{
		Overview:       counts,
		ChartData:      analytics.MonthlySeries(points, now, revenueMonths),
		RecentActivity: activity,
	}, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

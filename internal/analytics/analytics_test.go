package analytics

import (
	"testing"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spend(v float64) *float64 { return &v }

func fixture(now time.Time) []*model.PlatformUser {
	return []*model.PlatformUser{
		{Industry: "Technology", Age: "25-34", Location: "Berlin", JobTitle: "Engineer", Active: true, MonthlySpendUSD: spend(100), SignupDate: now},
		{Industry: "Technology", Age: "25-34", Location: "Paris", JobTitle: "Engineer", Active: true, MonthlySpendUSD: spend(50), SignupDate: now.AddDate(0, 0, -1)},
		{Industry: "Finance", Age: "35-44", Location: "Berlin", JobTitle: "Analyst", Active: false, SignupDate: now.AddDate(0, 0, -1)},
		{Age: "", Location: "", Active: true, MonthlySpendUSD: spend(30), SignupDate: now.AddDate(0, 0, -40)},
	}
}

func TestComputeOverview(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	o := ComputeOverview(fixture(now))

	assert.Equal(t, 4, o.TotalUsers)
	assert.Equal(t, 3, o.ActiveUsers)
	assert.InDelta(t, 180, o.TotalRevenue, 0.001)
	assert.InDelta(t, 45, o.AvgSpend, 0.001)
	assert.InDelta(t, 75, o.ActivePercent(), 0.001)

	empty := ComputeOverview(nil)
	assert.Zero(t, empty.AvgSpend)
	assert.Zero(t, empty.ActivePercent())
}

func TestBreakdownOrdersByCountThenName(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	buckets := Breakdown(fixture(now), ByIndustry)

	assert.Equal(t, []Bucket{
		{Name: "Technology", Count: 2},
		{Name: "Finance", Count: 1},
		{Name: Unknown, Count: 1},
	}, buckets)
}

func TestTop(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	shares := Top(fixture(now), ByLocation, 2)

	require.Len(t, shares, 2)
	assert.Equal(t, "Berlin", shares[0].Name)
	assert.InDelta(t, 50, shares[0].Percentage, 0.001)
	assert.Equal(t, "Paris", shares[1].Name)
}

func TestDailySeries(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	points := DailySeries(fixture(now), now, 30)

	require.Len(t, points, 30)
	assert.Equal(t, "2025-02-14", points[0].Date)
	last := points[29]
	assert.Equal(t, "2025-03-15", last.Date)
	assert.Equal(t, 1, last.Signups)
	assert.InDelta(t, 100, last.Revenue, 0.001)
	assert.Equal(t, 2, points[28].Signups)
	assert.InDelta(t, 50, points[28].Revenue, 0.001)
}

func TestMonthlySeries(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	points := MonthlySeries([]Spend{
		{At: now, Amount: 10},
		{At: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Amount: 5},
		{At: time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC), Amount: 99},
	}, now, 12)

	require.Len(t, points, 12)
	assert.Equal(t, "Apr", points[0].Name)
	assert.InDelta(t, 5, points[0].Total, 0.001)
	assert.Equal(t, "Mar", points[11].Name)
	assert.InDelta(t, 10, points[11].Total, 0.001)
}

func TestSummarizeLimitsSamples(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	users := append(fixture(now), fixture(now)...)
	s := Summarize(users)

	assert.Len(t, s.Samples, 5)
	assert.Equal(t, 8, s.Overview.TotalUsers)
	assert.LessOrEqual(t, len(s.TopJobTitles), 5)
	assert.Equal(t, "Technology", s.TopIndustries[0].Name)
}

func TestBuildReportRecentUsers(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	var users []*model.PlatformUser
	for i := 0; i < 3; i++ {
		users = append(users, fixture(now)...)
	}
	r := BuildReport(users, now)

	assert.Len(t, r.RecentUsers, 10)
	assert.Len(t, r.ChartData, 30)
	assert.Equal(t, 12, r.Overview.TotalUsers)
}

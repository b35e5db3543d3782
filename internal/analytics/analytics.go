// Package analytics aggregates platform user records into the figures shown
// on dashboards and fed to persona generation. Everything here is pure.
package analytics

import (
	"sort"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/model"
)

// Unknown labels a record whose attribute was not reported.
const Unknown = "Unknown"

type Overview struct {
	TotalUsers   int     `json:"totalUsers"`
	ActiveUsers  int     `json:"activeUsers"`
	TotalRevenue float64 `json:"totalRevenue"`
	AvgSpend     float64 `json:"avgSpend"`
}

// ActivePercent is the share of active users, 0 when there are none.
func (o Overview) ActivePercent() float64 {
	if o.TotalUsers == 0 {
		return 0
	}
	return float64(o.ActiveUsers) / float64(o.TotalUsers) * 100
}

type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Share struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type DailyPoint struct {
	Date    string  `json:"date"`
	Signups int     `json:"signups"`
	Revenue float64 `json:"revenue"`
}

type MonthlyPoint struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// Spend is a single revenue observation.
type Spend struct {
	At     time.Time
	Amount float64
}

// Dimension extracts one categorical attribute of a platform user.
type Dimension func(*model.PlatformUser) string

var (
	ByIndustry Dimension = func(u *model.PlatformUser) string { return orUnknown(u.Industry) }
	ByAge      Dimension = func(u *model.PlatformUser) string { return orUnknown(u.Age) }
	ByLocation Dimension = func(u *model.PlatformUser) string { return orUnknown(u.Location) }
	ByJobTitle Dimension = func(u *model.PlatformUser) string { return orUnknown(u.JobTitle) }
)

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

func ComputeOverview(users []*model.PlatformUser) Overview {
	var o Overview
	o.TotalUsers = len(users)
	for _, u := range users {
		if u.Active {
			o.ActiveUsers++
		}
		o.TotalRevenue += u.Spend()
	}
	if o.TotalUsers > 0 {
		o.AvgSpend = o.TotalRevenue / float64(o.TotalUsers)
	}
	return o
}

// Breakdown counts users per value of dim, largest first and ties by name.
func Breakdown(users []*model.PlatformUser, dim Dimension) []Bucket {
	counts := make(map[string]int)
	for _, u := range users {
		counts[dim(u)]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for name, count := range counts {
		buckets = append(buckets, Bucket{Name: name, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Name < buckets[j].Name
	})
	return buckets
}

// Top returns the n largest buckets of dim with their share of all users.
func Top(users []*model.PlatformUser, dim Dimension, n int) []Share {
	buckets := Breakdown(users, dim)
	if len(buckets) > n {
		buckets = buckets[:n]
	}

	shares := make([]Share, 0, len(buckets))
	for _, b := range buckets {
		shares = append(shares, Share{
			Name:       b.Name,
			Count:      b.Count,
			Percentage: percentOf(b.Count, len(users)),
		})
	}
	return shares
}

func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// DailySeries buckets signups and spend into the last days UTC calendar days
// ending with now, oldest first.
func DailySeries(users []*model.PlatformUser, now time.Time, days int) []DailyPoint {
	today := truncateDay(now.UTC())
	index := make(map[string]int, days)
	points := make([]DailyPoint, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i-days+1).Format(time.DateOnly)
		points[i] = DailyPoint{Date: date}
		index[date] = i
	}

	for _, u := range users {
		i, ok := index[u.SignupDate.UTC().Format(time.DateOnly)]
		if !ok {
			continue
		}
		points[i].Signups++
		points[i].Revenue += u.Spend()
	}
	return points
}

// MonthStart returns the first instant of the month months before now's month.
func MonthStart(now time.Time, monthsBack int) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()-time.Month(monthsBack), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlySeries sums spend per calendar month for the last months months
// including the current one, oldest first. Points are named by short month.
func MonthlySeries(spend []Spend, now time.Time, months int) []MonthlyPoint {
	first := MonthStart(now, months-1)
	points := make([]MonthlyPoint, months)
	for i := range points {
		points[i].Name = first.AddDate(0, i, 0).Format("Jan")
	}

	for _, s := range spend {
		at := s.At.UTC()
		offset := (at.Year()-first.Year())*12 + int(at.Month()) - int(first.Month())
		if offset < 0 || offset >= months {
			continue
		}
		points[offset].Total += s.Amount
	}
	return points
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
